package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttempt_Percentage_RoundHalfUp(t *testing.T) {
	// Arrange & Act & Assert: округление по стандартному правилу
	attempt := &Attempt{
		Score: 1,
		Answers: AnswerList{
			{QuestionID: 1, Answer: "A"},
			{QuestionID: 2, Answer: "B"},
			{QuestionID: 3, Answer: "C"},
		},
	}
	assert.Equal(t, 33, attempt.Percentage(), "1 из 3 должен давать 33%")

	attempt.Score = 2
	assert.Equal(t, 67, attempt.Percentage(), "2 из 3 должен давать 67%")

	attempt.Score = 1
	attempt.Answers = AnswerList{{QuestionID: 1, Answer: "A"}, {QuestionID: 2, Answer: "B"}}
	assert.Equal(t, 50, attempt.Percentage(), "1 из 2 должен давать 50%")
}

func TestAttempt_Percentage_EmptyAnswers(t *testing.T) {
	// Arrange: пустая попытка не должна приводить к делению на ноль
	attempt := &Attempt{Score: 0, Answers: AnswerList{}}

	// Act & Assert
	assert.Equal(t, 0, attempt.Percentage(), "Процент пустой попытки равен 0")
	assert.Equal(t, 0, attempt.TotalQuestions())
}
