package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/dailyquiz-api/internal/domain/entity"
	"github.com/yourusername/dailyquiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/dailyquiz-api/internal/pkg/errors"
)

// ============================================================================
// Моки репозиториев для тестов сервисов.
// Переиспользуются также в quiz_service_test.go и report_service_test.go.
// ============================================================================

// MockQuizRepository реализует repository.QuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) Create(quiz *entity.Quiz) error {
	args := m.Called(quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) GetByID(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) GetByDate(date string) (*entity.Quiz, error) {
	args := m.Called(date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) List(limit, offset int) ([]entity.Quiz, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockQuestionRepository реализует repository.QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(question *entity.Question) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetByID(id uint) (*entity.Question, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetByIDs(ids []uint) ([]entity.Question, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) List(limit, offset int) ([]entity.Question, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockAttemptRepository реализует repository.AttemptRepository
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) Create(attempt *entity.Attempt) error {
	args := m.Called(attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) GetByUserAndDate(userID uint, date string) (*entity.Attempt, error) {
	args := m.Called(userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Attempt), args.Error(1)
}

func (m *MockAttemptRepository) ListByUser(userID uint) ([]entity.Attempt, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Attempt), args.Error(1)
}

func (m *MockAttemptRepository) ListByDateRange(from, to string) ([]entity.Attempt, error) {
	args := m.Called(from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Attempt), args.Error(1)
}

func (m *MockAttemptRepository) List(limit, offset int) ([]entity.Attempt, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Attempt), args.Error(1)
}

// MockUserRepository реализует repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*entity.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) List(limit, offset int) ([]entity.User, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockUserRepository) ListStudents(class string) ([]entity.User, error) {
	args := m.Called(class)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockUserRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockBroadcaster реализует EventBroadcaster
type MockBroadcaster struct {
	mock.Mock
}

func (m *MockBroadcaster) BroadcastEvent(event string, data interface{}) {
	m.Called(event, data)
}

// ============================================================================
// Тесты AttemptService
// ============================================================================

// testNow - среда 2025-09-17, 10:00 UTC
var testNow = time.Date(2025, 9, 17, 10, 0, 0, 0, time.UTC)

func testQuizQuestions() []entity.Question {
	return []entity.Question{
		{ID: 1, Text: "Столица Франции?", Options: entity.StringArray{"Париж", "Лион"}, Answer: "Париж"},
		{ID: 2, Text: "2+2?", Options: entity.StringArray{"3", "4"}, Answer: "4"},
	}
}

func testQuiz() *entity.Quiz {
	return &entity.Quiz{
		ID:          10,
		Date:        "2025-09-17",
		QuestionIDs: entity.UintArray{1, 2},
	}
}

func TestAttemptService_TodayQuiz_NoQuizScheduled(t *testing.T) {
	// Arrange
	mockQuizRepo := new(MockQuizRepository)
	mockQuizRepo.On("GetByDate", "2025-09-17").Return(nil, apperrors.ErrNotFound)

	svc := NewAttemptService(mockQuizRepo, nil, nil, nil, nil)

	// Act
	view, err := svc.TodayQuiz(testNow)

	// Assert
	require.NoError(t, err, "Отсутствие викторины - не ошибка")
	assert.False(t, view.Available, "Викторина должна быть недоступна")
	assert.Empty(t, view.Questions)
	mockQuizRepo.AssertExpectations(t)
}

func TestAttemptService_TodayQuiz_ProjectsQuestionsWithoutAnswers(t *testing.T) {
	// Arrange
	mockQuizRepo := new(MockQuizRepository)
	mockQuestionRepo := new(MockQuestionRepository)

	mockQuizRepo.On("GetByDate", "2025-09-17").Return(testQuiz(), nil)
	mockQuestionRepo.On("GetByIDs", []uint{1, 2}).Return(testQuizQuestions(), nil)

	svc := NewAttemptService(mockQuizRepo, mockQuestionRepo, nil, nil, nil)

	// Act
	view, err := svc.TodayQuiz(testNow)

	// Assert
	require.NoError(t, err)
	assert.True(t, view.Available)
	assert.Equal(t, "2025-09-17", view.Date)
	require.Len(t, view.Questions, 2, "Студент должен получить ровно два вопроса")
	assert.Equal(t, "Столица Франции?", view.Questions[0].Text)
	assert.Equal(t, []string{"Париж", "Лион"}, view.Questions[0].Options)
	mockQuizRepo.AssertExpectations(t)
	mockQuestionRepo.AssertExpectations(t)
}

func TestAttemptService_TodayQuiz_MisconfiguredQuiz(t *testing.T) {
	// Arrange: один из двух вопросов был удалён
	mockQuizRepo := new(MockQuizRepository)
	mockQuestionRepo := new(MockQuestionRepository)

	mockQuizRepo.On("GetByDate", "2025-09-17").Return(testQuiz(), nil)
	mockQuestionRepo.On("GetByIDs", []uint{1, 2}).Return(testQuizQuestions()[:1], nil)

	svc := NewAttemptService(mockQuizRepo, mockQuestionRepo, nil, nil, nil)

	// Act
	view, err := svc.TodayQuiz(testNow)

	// Assert
	assert.ErrorIs(t, err, ErrQuizMisconfigured, "Усечённая викторина не должна отдаваться")
	assert.Nil(t, view)
}

func TestAttemptService_Submit_Success(t *testing.T) {
	// Arrange
	mockQuizRepo := new(MockQuizRepository)
	mockQuestionRepo := new(MockQuestionRepository)
	mockAttemptRepo := new(MockAttemptRepository)
	mockBroadcaster := new(MockBroadcaster)

	mockQuizRepo.On("GetByDate", "2025-09-17").Return(testQuiz(), nil)
	mockQuestionRepo.On("GetByIDs", []uint{1, 2}).Return(testQuizQuestions(), nil)
	mockAttemptRepo.On("Create", mock.AnythingOfType("*entity.Attempt")).Return(nil)
	mockBroadcaster.On("BroadcastEvent", "attempt:submitted", mock.Anything).Return()

	svc := NewAttemptService(mockQuizRepo, mockQuestionRepo, mockAttemptRepo, nil, mockBroadcaster)

	answers := []entity.SubmittedAnswer{
		{QuestionID: 1, Answer: "Париж"},
		{QuestionID: 2, Answer: "3"},
	}

	// Act
	result, err := svc.Submit(42, testNow, answers, 95)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, result.Score, "Верен только один ответ")
	assert.Equal(t, 2, result.TotalQuestions)
	assert.Equal(t, 50, result.Percentage)
	require.Len(t, result.Reviews, 2)
	assert.True(t, result.Reviews[0].IsCorrect)
	assert.False(t, result.Reviews[1].IsCorrect)
	assert.Equal(t, "4", result.Reviews[1].CorrectAnswer)
	mockAttemptRepo.AssertExpectations(t)
	mockBroadcaster.AssertExpectations(t)
}

func TestAttemptService_Submit_NoQuizToday(t *testing.T) {
	// Arrange
	mockQuizRepo := new(MockQuizRepository)
	mockQuizRepo.On("GetByDate", "2025-09-17").Return(nil, apperrors.ErrNotFound)

	svc := NewAttemptService(mockQuizRepo, nil, nil, nil, nil)

	// Act
	result, err := svc.Submit(42, testNow, nil, 0)

	// Assert
	assert.ErrorIs(t, err, ErrNoQuizToday)
	assert.Nil(t, result)
}

func TestAttemptService_Submit_AlreadyAttempted(t *testing.T) {
	// Arrange: условная вставка сообщает о дубликате
	mockQuizRepo := new(MockQuizRepository)
	mockQuestionRepo := new(MockQuestionRepository)
	mockAttemptRepo := new(MockAttemptRepository)

	mockQuizRepo.On("GetByDate", "2025-09-17").Return(testQuiz(), nil)
	mockQuestionRepo.On("GetByIDs", []uint{1, 2}).Return(testQuizQuestions(), nil)
	mockAttemptRepo.On("Create", mock.AnythingOfType("*entity.Attempt")).Return(repository.ErrDuplicateAttempt)

	svc := NewAttemptService(mockQuizRepo, mockQuestionRepo, mockAttemptRepo, nil, nil)

	answers := []entity.SubmittedAnswer{{QuestionID: 1, Answer: "Париж"}}

	// Act
	result, err := svc.Submit(42, testNow, answers, 30)

	// Assert
	assert.ErrorIs(t, err, ErrAlreadyAttempted, "Вторая попытка за день должна быть отклонена")
	assert.Nil(t, result)
	mockAttemptRepo.AssertExpectations(t)
}

func TestAttemptService_Submit_QuizClosed(t *testing.T) {
	// Arrange: окно викторины 08:00-09:00, сабмит в 10:00
	mockQuizRepo := new(MockQuizRepository)

	quiz := testQuiz()
	quiz.StartTime = "08:00"
	quiz.EndTime = "09:00"
	mockQuizRepo.On("GetByDate", "2025-09-17").Return(quiz, nil)

	svc := NewAttemptService(mockQuizRepo, nil, nil, nil, nil)

	// Act
	result, err := svc.Submit(42, testNow, nil, 0)

	// Assert
	assert.ErrorIs(t, err, ErrQuizClosed)
	assert.Nil(t, result)
}

func TestAttemptService_Submit_DuplicateQuestionAnswers(t *testing.T) {
	// Arrange
	svc := NewAttemptService(nil, nil, nil, nil, nil)

	answers := []entity.SubmittedAnswer{
		{QuestionID: 1, Answer: "Париж"},
		{QuestionID: 1, Answer: "Лион"},
	}

	// Act
	result, err := svc.Submit(42, testNow, answers, 10)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrValidation, "Дубликат вопроса в сабмите - ошибка валидации")
	assert.Nil(t, result)
}

func TestAttemptService_Submit_TooManyAnswers(t *testing.T) {
	// Arrange
	svc := NewAttemptService(nil, nil, nil, nil, nil)

	answers := []entity.SubmittedAnswer{
		{QuestionID: 1, Answer: "a"},
		{QuestionID: 2, Answer: "b"},
		{QuestionID: 3, Answer: "c"},
	}

	// Act
	result, err := svc.Submit(42, testNow, answers, 10)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Nil(t, result)
}

func TestAttemptService_Submit_EmptyAnswersScoredAsZero(t *testing.T) {
	// Arrange: пустой сабмит допустим и фиксирует попытку с нулём баллов
	mockQuizRepo := new(MockQuizRepository)
	mockQuestionRepo := new(MockQuestionRepository)
	mockAttemptRepo := new(MockAttemptRepository)

	mockQuizRepo.On("GetByDate", "2025-09-17").Return(testQuiz(), nil)
	mockQuestionRepo.On("GetByIDs", []uint{1, 2}).Return(testQuizQuestions(), nil)
	mockAttemptRepo.On("Create", mock.AnythingOfType("*entity.Attempt")).Return(nil)

	svc := NewAttemptService(mockQuizRepo, mockQuestionRepo, mockAttemptRepo, nil, nil)

	// Act
	result, err := svc.Submit(42, testNow, []entity.SubmittedAnswer{}, 5)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 0, result.Percentage, "Пустой сабмит не должен приводить к делению на ноль")
	mockAttemptRepo.AssertExpectations(t)
}
