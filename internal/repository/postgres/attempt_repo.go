package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/dailyquiz-api/internal/domain/entity"
	"github.com/yourusername/dailyquiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/dailyquiz-api/internal/pkg/errors"
)

// AttemptRepo реализует repository.AttemptRepository
type AttemptRepo struct {
	db *gorm.DB
}

// NewAttemptRepo создает новый репозиторий попыток
func NewAttemptRepo(db *gorm.DB) *AttemptRepo {
	return &AttemptRepo{db: db}
}

// Create атомарно сохраняет попытку для пары (user_id, date).
// Используется единственный условный INSERT с ON CONFLICT DO NOTHING
// по уникальному индексу idx_attempts_user_date: никакого отдельного
// чтения перед записью, поэтому два конкурентных сабмита не могут
// пройти оба — второй получит ErrDuplicateAttempt.
func (r *AttemptRepo) Create(attempt *entity.Attempt) error {
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoNothing: true,
	}).Create(attempt)

	if result.Error != nil {
		// Драйвер может вернуть 23505 вместо DO NOTHING
		if isUniqueViolation(result.Error) {
			return fmt.Errorf("%w: user #%d, date %s", repository.ErrDuplicateAttempt, attempt.UserID, attempt.Date)
		}
		return result.Error
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: user #%d, date %s", repository.ErrDuplicateAttempt, attempt.UserID, attempt.Date)
	}

	return nil
}

// GetByUserAndDate возвращает попытку пользователя за указанную дату
func (r *AttemptRepo) GetByUserAndDate(userID uint, date string) (*entity.Attempt, error) {
	var attempt entity.Attempt
	err := r.db.Where("user_id = ? AND date = ?", userID, date).First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &attempt, nil
}

// ListByUser возвращает все попытки пользователя в хронологическом порядке
func (r *AttemptRepo) ListByUser(userID uint) ([]entity.Attempt, error) {
	var attempts []entity.Attempt
	err := r.db.Where("user_id = ?", userID).Order("date").Find(&attempts).Error
	return attempts, err
}

// ListByDateRange возвращает попытки всех студентов в диапазоне [from, to] включительно
func (r *AttemptRepo) ListByDateRange(from, to string) ([]entity.Attempt, error) {
	var attempts []entity.Attempt
	err := r.db.Where("date >= ? AND date <= ?", from, to).
		Order("date").
		Find(&attempts).Error
	return attempts, err
}

// List возвращает список попыток с пагинацией
func (r *AttemptRepo) List(limit, offset int) ([]entity.Attempt, error) {
	var attempts []entity.Attempt
	err := r.db.Limit(limit).Offset(offset).Order("id DESC").Find(&attempts).Error
	return attempts, err
}
