package service

import (
	"fmt"
	"log"

	"github.com/yourusername/dailyquiz-api/internal/domain/entity"
	"github.com/yourusername/dailyquiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/dailyquiz-api/internal/pkg/errors"
)

// QuizService предоставляет административные операции над викторинами и вопросами
type QuizService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	cacheRepo    repository.CacheRepository
}

// NewQuizService создает новый сервис викторин
func NewQuizService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	cacheRepo repository.CacheRepository,
) *QuizService {
	return &QuizService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		cacheRepo:    cacheRepo,
	}
}

// CreateQuestion создает новый вопрос
func (s *QuizService) CreateQuestion(text string, options []string, answer, difficulty string) (*entity.Question, error) {
	if difficulty == "" {
		difficulty = entity.DifficultyMedium
	}
	if !entity.IsValidDifficulty(difficulty) {
		return nil, fmt.Errorf("%w: unknown difficulty %q", apperrors.ErrValidation, difficulty)
	}

	question := &entity.Question{
		Text:       text,
		Options:    options,
		Answer:     answer,
		Difficulty: difficulty,
	}

	// Канонический ответ обязан входить в список вариантов,
	// иначе вопрос невозможно ответить правильно
	if !question.HasOption(answer) {
		return nil, fmt.Errorf("%w: answer must be one of the options", apperrors.ErrValidation)
	}

	if err := s.questionRepo.Create(question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return question, nil
}

// GetQuestion возвращает вопрос по ID (для администратора, с ответом)
func (s *QuizService) GetQuestion(id uint) (*entity.Question, error) {
	return s.questionRepo.GetByID(id)
}

// ListQuestions возвращает список вопросов с пагинацией
func (s *QuizService) ListQuestions(limit, offset int) ([]entity.Question, error) {
	return s.questionRepo.List(normalizeLimit(limit), offset)
}

// DeleteQuestion удаляет вопрос.
// Прошлые попытки при этом не трогаются: их разбор деградирует
// до "Unknown" для удалённого вопроса.
func (s *QuizService) DeleteQuestion(id uint) error {
	return s.questionRepo.Delete(id)
}

// ScheduleQuiz планирует викторину на календарную дату.
// Требования: корректная дата, окно времени парой, ровно два различных
// существующих вопроса, не более одной викторины на дату.
func (s *QuizService) ScheduleQuiz(date, startTime, endTime string, questionIDs []uint) (*entity.Quiz, error) {
	quiz := &entity.Quiz{
		Date:        date,
		StartTime:   startTime,
		EndTime:     endTime,
		QuestionIDs: questionIDs,
	}

	if err := quiz.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	// Оба вопроса должны существовать на момент планирования
	questions, err := s.questionRepo.GetByIDs(questionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load quiz questions: %w", err)
	}
	if len(questions) != entity.QuizQuestionCount {
		return nil, fmt.Errorf("%w: some of the referenced questions do not exist", apperrors.ErrValidation)
	}

	if err := s.quizRepo.Create(quiz); err != nil {
		return nil, err
	}

	s.invalidateTodayCache(quiz.Date)
	return quiz, nil
}

// GetQuiz возвращает викторину по ID
func (s *QuizService) GetQuiz(id uint) (*entity.Quiz, error) {
	return s.quizRepo.GetByID(id)
}

// ListQuizzes возвращает список викторин с пагинацией
func (s *QuizService) ListQuizzes(limit, offset int) ([]entity.Quiz, error) {
	return s.quizRepo.List(normalizeLimit(limit), offset)
}

// DeleteQuiz удаляет викторину
func (s *QuizService) DeleteQuiz(id uint) error {
	quiz, err := s.quizRepo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.quizRepo.Delete(id); err != nil {
		return err
	}

	s.invalidateTodayCache(quiz.Date)
	return nil
}

// invalidateTodayCache сбрасывает кеш выдачи викторины на дату
func (s *QuizService) invalidateTodayCache(date string) {
	if s.cacheRepo == nil {
		return
	}
	if err := s.cacheRepo.Delete(todayQuizCacheKey(date)); err != nil {
		log.Printf("[QuizService] Не удалось сбросить кеш викторины на %s: %v", date, err)
	}
}

// normalizeLimit приводит лимит пагинации к разумным границам
func normalizeLimit(limit int) int {
	if limit < 1 {
		return 20
	}
	if limit > 100 {
		return 100
	}
	return limit
}
