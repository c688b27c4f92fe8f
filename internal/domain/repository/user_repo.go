package repository

import (
	"github.com/yourusername/dailyquiz-api/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	List(limit, offset int) ([]entity.User, error)
	// ListStudents возвращает студентов, опционально отфильтрованных по учебной группе.
	// Пустой class означает "все группы".
	ListStudents(class string) ([]entity.User, error)
	Delete(id uint) error
}
