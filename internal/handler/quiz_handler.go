package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/dailyquiz-api/internal/domain/entity"
	"github.com/yourusername/dailyquiz-api/internal/handler/dto"
	"github.com/yourusername/dailyquiz-api/internal/middleware"
	apperrors "github.com/yourusername/dailyquiz-api/internal/pkg/errors"
	"github.com/yourusername/dailyquiz-api/internal/service"
)

// QuizHandler обрабатывает запросы, связанные с викторинами и попытками
type QuizHandler struct {
	quizService    *service.QuizService
	attemptService *service.AttemptService
}

// NewQuizHandler создает новый обработчик викторин
func NewQuizHandler(quizService *service.QuizService, attemptService *service.AttemptService) *QuizHandler {
	return &QuizHandler{
		quizService:    quizService,
		attemptService: attemptService,
	}
}

// GetTodayQuiz возвращает сегодняшнюю викторину для студента.
// Вопросы отдаются без канонических ответов; если на сегодня ничего
// не запланировано, available=false.
func (h *QuizHandler) GetTodayQuiz(c *gin.Context) {
	view, err := h.attemptService.TodayQuiz(time.Now())
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// SubmitAnswerRequest представляет один ответ в сабмите
type SubmitAnswerRequest struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	Answer     string `json:"answer"`
}

// SubmitAttemptRequest представляет запрос на сдачу викторины
type SubmitAttemptRequest struct {
	Answers      []SubmitAnswerRequest `json:"answers"`
	TimeTakenSec int                   `json:"time_taken_sec" binding:"omitempty,min=0"`
}

// SubmitAttempt принимает единственную дневную попытку студента
func (h *QuizHandler) SubmitAttempt(c *gin.Context) {
	var req SubmitAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answers := make([]entity.SubmittedAnswer, len(req.Answers))
	for i, a := range req.Answers {
		answers[i] = entity.SubmittedAnswer{QuestionID: a.QuestionID, Answer: a.Answer}
	}

	userID := middleware.UserID(c)
	result, err := h.attemptService.Submit(userID, time.Now(), answers, req.TimeTakenSec)
	if err != nil {
		h.handleSubmitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"score":            result.Score,
		"total_questions":  result.TotalQuestions,
		"percentage":       result.Percentage,
		"detailed_results": result.Reviews,
	})
}

// MyAttempts возвращает попытки аутентифицированного студента
func (h *QuizHandler) MyAttempts(c *gin.Context) {
	attempts, err := h.attemptService.MyAttempts(middleware.UserID(c))
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListAttemptResponse(attempts))
}

// ScheduleQuizRequest представляет запрос на планирование викторины
type ScheduleQuizRequest struct {
	Date        string `json:"date" binding:"required"`
	StartTime   string `json:"start_time" binding:"omitempty"`
	EndTime     string `json:"end_time" binding:"omitempty"`
	QuestionIDs []uint `json:"question_ids" binding:"required,len=2"`
}

// ScheduleQuiz обрабатывает запрос администратора на планирование викторины
func (h *QuizHandler) ScheduleQuiz(c *gin.Context) {
	var req ScheduleQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := h.quizService.ScheduleQuiz(req.Date, req.StartTime, req.EndTime, req.QuestionIDs)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuizResponse(quiz))
}

// ListQuizzes возвращает список запланированных викторин
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	quizzes, err := h.quizService.ListQuizzes(limit, offset)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListQuizResponse(quizzes))
}

// GetQuiz возвращает викторину по ID
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint) // Получаем из контекста

	quiz, err := h.quizService.GetQuiz(quizID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz))
}

// DeleteQuiz удаляет запланированную викторину
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint) // Получаем из контекста

	if err := h.quizService.DeleteQuiz(quizID); err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CreateQuestionRequest представляет запрос на создание вопроса
type CreateQuestionRequest struct {
	Text       string   `json:"text" binding:"required,min=3,max=500"`
	Options    []string `json:"options" binding:"required,min=2,max=6"`
	Answer     string   `json:"answer" binding:"required"`
	Difficulty string   `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}

// CreateQuestion обрабатывает запрос администратора на создание вопроса
func (h *QuizHandler) CreateQuestion(c *gin.Context) {
	var req CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.quizService.CreateQuestion(req.Text, req.Options, req.Answer, req.Difficulty)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAdminQuestionResponse(question))
}

// ListQuestions возвращает список вопросов (для администратора, с ответами)
func (h *QuizHandler) ListQuestions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	questions, err := h.quizService.ListQuestions(limit, offset)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListAdminQuestionResponse(questions))
}

// GetQuestion возвращает вопрос по ID (для администратора, с ответом)
func (h *QuizHandler) GetQuestion(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint) // Получаем из контекста

	question, err := h.quizService.GetQuestion(questionID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAdminQuestionResponse(question))
}

// DeleteQuestion удаляет вопрос
func (h *QuizHandler) DeleteQuestion(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint) // Получаем из контекста

	if err := h.quizService.DeleteQuestion(questionID); err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// handleSubmitError отображает исходы state machine сабмита:
// отказ - терминальное состояние данного вызова, ретраи не предусмотрены
func (h *QuizHandler) handleSubmitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoQuizToday):
		c.JSON(http.StatusConflict, gin.H{"success": false, "reason": "no-quiz"})
	case errors.Is(err, service.ErrAlreadyAttempted):
		c.JSON(http.StatusConflict, gin.H{"success": false, "reason": "already-attempted"})
	case errors.Is(err, service.ErrQuizClosed):
		c.JSON(http.StatusConflict, gin.H{"success": false, "reason": "quiz-closed"})
	default:
		h.handleQuizError(c, err)
	}
}

// handleQuizError преобразует ошибки сервиса в HTTP-ответы
func (h *QuizHandler) handleQuizError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrQuizMisconfigured):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Quiz is misconfigured"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
