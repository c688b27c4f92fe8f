package repository

import (
	"github.com/yourusername/dailyquiz-api/internal/domain/entity"
)

// AttemptRepository определяет методы для работы с попытками
type AttemptRepository interface {
	// Create атомарно сохраняет попытку при условии, что для пары
	// (user_id, date) ещё нет записи. Проверка и вставка выполняются
	// одним условным INSERT: при дубликате возвращается
	// ErrDuplicateAttempt, и два конкурентных сабмита не могут
	// пройти оба.
	Create(attempt *entity.Attempt) error
	GetByUserAndDate(userID uint, date string) (*entity.Attempt, error)
	ListByUser(userID uint) ([]entity.Attempt, error)
	// ListByDateRange возвращает попытки всех студентов в диапазоне дат
	// [from, to] включительно (YYYY-MM-DD).
	ListByDateRange(from, to string) ([]entity.Attempt, error)
	List(limit, offset int) ([]entity.Attempt, error)
}
