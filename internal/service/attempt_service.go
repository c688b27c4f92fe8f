package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/dailyquiz-api/internal/domain/entity"
	"github.com/yourusername/dailyquiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/dailyquiz-api/internal/pkg/errors"
)

// todayQuizCacheTTL - время жизни кеша сегодняшней викторины
const todayQuizCacheTTL = 5 * time.Minute

// EventBroadcaster рассылает события live-дашборду преподавателей
type EventBroadcaster interface {
	BroadcastEvent(event string, data interface{})
}

// QuestionView представляет вопрос, спроецированный для студента.
// Канонический ответ сюда не попадает.
type QuestionView struct {
	ID      uint     `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// TodayQuizView представляет сегодняшнюю викторину для студента
type TodayQuizView struct {
	Available bool           `json:"available"`
	Date      string         `json:"date,omitempty"`
	StartTime string         `json:"start_time,omitempty"`
	EndTime   string         `json:"end_time,omitempty"`
	Questions []QuestionView `json:"questions,omitempty"`
}

// SubmitResult представляет итог успешного сабмита
type SubmitResult struct {
	Score          int            `json:"score"`
	TotalQuestions int            `json:"total_questions"`
	Percentage     int            `json:"percentage"`
	Reviews        []AnswerReview `json:"detailed_results"`
}

// AttemptService реализует основной цикл ежедневной викторины:
// выдача сегодняшних вопросов и приём единственной попытки.
type AttemptService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	attemptRepo  repository.AttemptRepository
	cacheRepo    repository.CacheRepository
	broadcaster  EventBroadcaster
}

// NewAttemptService создает новый сервис попыток
func NewAttemptService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.AttemptRepository,
	cacheRepo repository.CacheRepository,
	broadcaster EventBroadcaster,
) *AttemptService {
	return &AttemptService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		cacheRepo:    cacheRepo,
		broadcaster:  broadcaster,
	}
}

// TodayQuiz возвращает викторину на календарную дату момента now.
// Если викторина не запланирована, возвращается Available=false.
// Вопросы проецируются без канонических ответов. Доступность
// определяется только датой: окно начала/окончания отдаётся клиенту
// для отображения, а принудительно проверяется при сабмите.
func (s *AttemptService) TodayQuiz(now time.Time) (*TodayQuizView, error) {
	date := now.Format(entity.QuizDateLayout)
	cacheKey := todayQuizCacheKey(date)

	// Сначала пробуем кеш
	if s.cacheRepo != nil {
		var cached TodayQuizView
		if err := s.cacheRepo.GetJSON(cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	quiz, err := s.quizRepo.GetByDate(date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &TodayQuizView{Available: false}, nil
		}
		return nil, err
	}

	questions, err := s.projectQuestions(quiz)
	if err != nil {
		return nil, err
	}

	view := &TodayQuizView{
		Available: true,
		Date:      quiz.Date,
		StartTime: quiz.StartTime,
		EndTime:   quiz.EndTime,
		Questions: questions,
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(cacheKey, view, todayQuizCacheTTL); err != nil {
			log.Printf("[AttemptService] Не удалось закешировать викторину на %s: %v", date, err)
		}
	}

	return view, nil
}

// projectQuestions возвращает два вопроса викторины без канонических ответов.
// Если хотя бы один вопрос не найден, викторина считается неправильно
// сконфигурированной — усечённый список не отдаётся.
func (s *AttemptService) projectQuestions(quiz *entity.Quiz) ([]QuestionView, error) {
	questions, err := s.questionRepo.GetByIDs(quiz.QuestionIDs)
	if err != nil {
		return nil, err
	}
	if len(questions) < entity.QuizQuestionCount {
		return nil, fmt.Errorf("%w: quiz #%d expects %d questions, found %d",
			ErrQuizMisconfigured, quiz.ID, entity.QuizQuestionCount, len(questions))
	}

	views := make([]QuestionView, len(questions))
	for i, q := range questions {
		views[i] = QuestionView{
			ID:      q.ID,
			Text:    q.Text,
			Options: q.Options,
		}
	}
	return views, nil
}

// Submit обрабатывает попытку студента строго последовательно:
// нет викторины -> отказ; окно закрыто -> отказ; оценка; условная
// вставка попытки -> отказ при дубликате. Ретраи не предусмотрены,
// неуспех терминален для данного вызова.
func (s *AttemptService) Submit(userID uint, now time.Time, answers []entity.SubmittedAnswer, timeTakenSec int) (*SubmitResult, error) {
	if err := validateSubmission(answers); err != nil {
		return nil, err
	}

	date := now.Format(entity.QuizDateLayout)

	quiz, err := s.quizRepo.GetByDate(date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrNoQuizToday
		}
		return nil, err
	}

	if !quiz.IsOpenAt(now) {
		return nil, ErrQuizClosed
	}

	questions, err := s.questionRepo.GetByIDs(quiz.QuestionIDs)
	if err != nil {
		return nil, err
	}

	score, reviews := gradeSubmission(answers, questions)

	attempt := &entity.Attempt{
		UserID:       userID,
		Date:         date,
		Answers:      answers,
		Score:        score,
		TimeTakenSec: timeTakenSec,
	}

	// Единственное место, где важна конкурентная корректность:
	// проверка "уже сдавал" и создание попытки - один условный INSERT
	if err := s.attemptRepo.Create(attempt); err != nil {
		if errors.Is(err, repository.ErrDuplicateAttempt) {
			return nil, ErrAlreadyAttempted
		}
		return nil, err
	}

	result := &SubmitResult{
		Score:          score,
		TotalQuestions: len(answers),
		Percentage:     roundPercent(score, len(answers)),
		Reviews:        reviews,
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastEvent("attempt:submitted", map[string]interface{}{
			"user_id":    userID,
			"date":       date,
			"score":      result.Score,
			"percentage": result.Percentage,
		})
	}

	return result, nil
}

// MyAttempts возвращает все попытки пользователя
func (s *AttemptService) MyAttempts(userID uint) ([]entity.Attempt, error) {
	return s.attemptRepo.ListByUser(userID)
}

// validateSubmission отклоняет заведомо некорректный сабмит.
// Пустой список ответов допустим (оценивается в 0 баллов и 0%),
// но дубликаты вопросов и лишние пары - ошибка валидации.
func validateSubmission(answers []entity.SubmittedAnswer) error {
	if len(answers) > entity.QuizQuestionCount {
		return fmt.Errorf("%w: at most %d answers are accepted", apperrors.ErrValidation, entity.QuizQuestionCount)
	}

	seen := make(map[uint]bool, len(answers))
	for _, a := range answers {
		if seen[a.QuestionID] {
			return fmt.Errorf("%w: duplicate answer for question #%d", apperrors.ErrValidation, a.QuestionID)
		}
		seen[a.QuestionID] = true
	}
	return nil
}

// todayQuizCacheKey формирует ключ кеша сегодняшней викторины
func todayQuizCacheKey(date string) string {
	return "quiz:today:" + date
}
