package repository

import (
	"github.com/yourusername/dailyquiz-api/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с вопросами
type QuestionRepository interface {
	Create(question *entity.Question) error
	GetByID(id uint) (*entity.Question, error)
	// GetByIDs возвращает вопросы по списку ID в порядке переданных идентификаторов.
	// Отсутствующие вопросы молча пропускаются — обнаружение недостачи лежит на вызывающем.
	GetByIDs(ids []uint) ([]entity.Question, error)
	List(limit, offset int) ([]entity.Question, error)
	Delete(id uint) error
}
