package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/dailyquiz-api/internal/domain/entity"
)

func TestGradeSubmission_ExactMatch(t *testing.T) {
	// Arrange
	questions := []entity.Question{
		{ID: 1, Text: "Вопрос 1", Answer: "b"},
		{ID: 2, Text: "Вопрос 2", Answer: "x"},
	}
	answers := []entity.SubmittedAnswer{
		{QuestionID: 1, Answer: "b"},
		{QuestionID: 2, Answer: "x"},
	}

	// Act
	score, reviews := gradeSubmission(answers, questions)

	// Assert
	assert.Equal(t, 2, score)
	require.Len(t, reviews, 2)
	assert.True(t, reviews[0].IsCorrect)
	assert.True(t, reviews[1].IsCorrect)
}

func TestGradeSubmission_CaseSensitive(t *testing.T) {
	// Arrange: сравнение регистрозависимое, "B" не равно "b"
	questions := []entity.Question{{ID: 1, Text: "Вопрос", Answer: "b"}}
	answers := []entity.SubmittedAnswer{{QuestionID: 1, Answer: "B"}}

	// Act
	score, reviews := gradeSubmission(answers, questions)

	// Assert
	assert.Equal(t, 0, score, "Ответ в другом регистре не засчитывается")
	require.Len(t, reviews, 1)
	assert.False(t, reviews[0].IsCorrect)
	assert.Equal(t, "b", reviews[0].CorrectAnswer)
}

func TestGradeSubmission_UnknownQuestion(t *testing.T) {
	// Arrange: вопрос 99 удалён из банка
	questions := []entity.Question{{ID: 1, Text: "Вопрос", Answer: "a"}}
	answers := []entity.SubmittedAnswer{
		{QuestionID: 1, Answer: "a"},
		{QuestionID: 99, Answer: "b"},
	}

	// Act
	score, reviews := gradeSubmission(answers, questions)

	// Assert: сабмит не отклоняется, неизвестный вопрос помечается placeholder-ом
	assert.Equal(t, 1, score)
	require.Len(t, reviews, 2)
	assert.Equal(t, "Unknown", reviews[1].QuestionText)
	assert.Equal(t, "Unknown", reviews[1].CorrectAnswer)
	assert.False(t, reviews[1].IsCorrect)
}

func TestRoundPercent(t *testing.T) {
	// Округление round-half-up
	assert.Equal(t, 33, roundPercent(1, 3), "1/3 округляется до 33%")
	assert.Equal(t, 67, roundPercent(2, 3), "2/3 округляется до 67%")
	assert.Equal(t, 50, roundPercent(1, 2))
	assert.Equal(t, 100, roundPercent(2, 2))
	assert.Equal(t, 0, roundPercent(0, 2))
	assert.Equal(t, 0, roundPercent(0, 0), "Деление на ноль определено как 0%")
}
