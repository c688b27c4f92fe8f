package service

import (
	"math"

	"github.com/yourusername/dailyquiz-api/internal/domain/entity"
)

// unknownQuestionPlaceholder подставляется в обзор ответа, когда вопрос
// не найден (например, был удалён администратором после попытки).
const unknownQuestionPlaceholder = "Unknown"

// AnswerReview содержит детальный разбор одного ответа студента
type AnswerReview struct {
	QuestionID    uint   `json:"question_id"`
	QuestionText  string `json:"question_text"`
	StudentAnswer string `json:"student_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
}

// gradeSubmission сверяет ответы студента с каноническими ответами.
// Для каждой пары ищется вопрос; ответ на неизвестный вопрос помечается
// неправильным с каноническим ответом "Unknown" — сабмит целиком
// из-за этого не отклоняется. Сравнение строгое и регистрозависимое.
func gradeSubmission(answers []entity.SubmittedAnswer, questions []entity.Question) (int, []AnswerReview) {
	byID := make(map[uint]*entity.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	score := 0
	reviews := make([]AnswerReview, 0, len(answers))

	for _, a := range answers {
		question, ok := byID[a.QuestionID]
		if !ok {
			reviews = append(reviews, AnswerReview{
				QuestionID:    a.QuestionID,
				QuestionText:  unknownQuestionPlaceholder,
				StudentAnswer: a.Answer,
				CorrectAnswer: unknownQuestionPlaceholder,
				IsCorrect:     false,
			})
			continue
		}

		isCorrect := question.CheckAnswer(a.Answer)
		if isCorrect {
			score++
		}

		reviews = append(reviews, AnswerReview{
			QuestionID:    a.QuestionID,
			QuestionText:  question.Text,
			StudentAnswer: a.Answer,
			CorrectAnswer: question.Answer,
			IsCorrect:     isCorrect,
		})
	}

	return score, reviews
}

// roundPercent вычисляет процент score/total, округлённый по правилу
// round-half-up. Для total == 0 процент определён как 0: пустой сабмит
// не должен приводить к делению на ноль.
func roundPercent(score, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}
