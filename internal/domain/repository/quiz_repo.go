package repository

import (
	"github.com/yourusername/dailyquiz-api/internal/domain/entity"
)

// QuizRepository определяет методы для работы с запланированными викторинами
type QuizRepository interface {
	// Create сохраняет викторину. Для даты, на которую викторина
	// уже запланирована, возвращает apperrors.ErrConflict.
	Create(quiz *entity.Quiz) error
	GetByID(id uint) (*entity.Quiz, error)
	// GetByDate возвращает викторину, запланированную на календарную дату
	// (YYYY-MM-DD), или apperrors.ErrNotFound, если на эту дату ничего нет.
	// Уникальный индекс гарантирует не более одной викторины на дату;
	// при его обходе побеждает первая запись в порядке сохранения.
	GetByDate(date string) (*entity.Quiz, error)
	List(limit, offset int) ([]entity.Quiz, error)
	Delete(id uint) error
}
