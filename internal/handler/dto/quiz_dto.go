package dto

import (
	"time"

	"github.com/yourusername/dailyquiz-api/internal/domain/entity"
)

// QuizResponse представляет запланированную викторину в формате для ответа клиенту
type QuizResponse struct {
	ID          uint      `json:"id"`
	Date        string    `json:"date"`
	StartTime   string    `json:"start_time,omitempty"`
	EndTime     string    `json:"end_time,omitempty"`
	QuestionIDs []uint    `json:"question_ids"`
	CreatedAt   time.Time `json:"created_at"`
}

// AdminQuestionResponse представляет вопрос для администратора.
// Единственное место, где канонический ответ отдается наружу.
type AdminQuestionResponse struct {
	ID         uint      `json:"id"`
	Text       string    `json:"text"`
	Options    []string  `json:"options"`
	Answer     string    `json:"answer"`
	Difficulty string    `json:"difficulty"`
	CreatedAt  time.Time `json:"created_at"`
}

// AttemptResponse представляет попытку в формате для ответа клиенту
type AttemptResponse struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user_id"`
	Date           string    `json:"date"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     int       `json:"percentage"`
	TimeTakenSec   int       `json:"time_taken_sec"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewQuizResponse создает DTO для викторины
func NewQuizResponse(quiz *entity.Quiz) *QuizResponse {
	if quiz == nil {
		return nil
	}
	return &QuizResponse{
		ID:          quiz.ID,
		Date:        quiz.Date,
		StartTime:   quiz.StartTime,
		EndTime:     quiz.EndTime,
		QuestionIDs: quiz.QuestionIDs,
		CreatedAt:   quiz.CreatedAt,
	}
}

// NewListQuizResponse создает список DTO викторин
func NewListQuizResponse(quizzes []entity.Quiz) []*QuizResponse {
	list := make([]*QuizResponse, len(quizzes))
	for i := range quizzes {
		list[i] = NewQuizResponse(&quizzes[i])
	}
	return list
}

// NewAdminQuestionResponse создает DTO вопроса для администратора
func NewAdminQuestionResponse(q *entity.Question) *AdminQuestionResponse {
	if q == nil {
		return nil
	}
	return &AdminQuestionResponse{
		ID:         q.ID,
		Text:       q.Text,
		Options:    q.Options,
		Answer:     q.Answer,
		Difficulty: q.Difficulty,
		CreatedAt:  q.CreatedAt,
	}
}

// NewListAdminQuestionResponse создает список DTO вопросов для администратора
func NewListAdminQuestionResponse(questions []entity.Question) []*AdminQuestionResponse {
	list := make([]*AdminQuestionResponse, len(questions))
	for i := range questions {
		list[i] = NewAdminQuestionResponse(&questions[i])
	}
	return list
}

// NewAttemptResponse создает DTO для попытки
func NewAttemptResponse(a *entity.Attempt) *AttemptResponse {
	if a == nil {
		return nil
	}
	return &AttemptResponse{
		ID:             a.ID,
		UserID:         a.UserID,
		Date:           a.Date,
		Score:          a.Score,
		TotalQuestions: a.TotalQuestions(),
		Percentage:     a.Percentage(),
		TimeTakenSec:   a.TimeTakenSec,
		CreatedAt:      a.CreatedAt,
	}
}

// NewListAttemptResponse создает список DTO попыток
func NewListAttemptResponse(attempts []entity.Attempt) []*AttemptResponse {
	list := make([]*AttemptResponse, len(attempts))
	for i := range attempts {
		list[i] = NewAttemptResponse(&attempts[i])
	}
	return list
}
