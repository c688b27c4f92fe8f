package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/dailyquiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/dailyquiz-api/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create создает новый вопрос
func (r *QuestionRepo) Create(question *entity.Question) error {
	return r.db.Create(question).Error
}

// GetByID возвращает вопрос по ID
func (r *QuestionRepo) GetByID(id uint) (*entity.Question, error) {
	var question entity.Question
	err := r.db.First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// GetByIDs возвращает вопросы по списку ID в порядке переданных идентификаторов.
// Отсутствующие вопросы пропускаются без ошибки.
func (r *QuestionRepo) GetByIDs(ids []uint) ([]entity.Question, error) {
	if len(ids) == 0 {
		return []entity.Question{}, nil
	}

	var found []entity.Question
	if err := r.db.Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}

	// Восстанавливаем порядок переданных идентификаторов
	byID := make(map[uint]entity.Question, len(found))
	for _, q := range found {
		byID[q.ID] = q
	}

	questions := make([]entity.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			questions = append(questions, q)
		}
	}
	return questions, nil
}

// List возвращает список вопросов с пагинацией
func (r *QuestionRepo) List(limit, offset int) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.Limit(limit).Offset(offset).Order("id").Find(&questions).Error
	return questions, err
}

// Delete удаляет вопрос.
// Ссылки из прошлых попыток сохраняются: при пересчёте результатов
// такой вопрос деградирует до "Unknown" в обзоре ответов.
func (r *QuestionRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Question{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
