package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuiz_Validate_Success(t *testing.T) {
	// Arrange
	quiz := &Quiz{
		Date:        "2025-09-17",
		StartTime:   "09:00",
		EndTime:     "09:30",
		QuestionIDs: UintArray{1, 2},
	}

	// Act & Assert
	require.NoError(t, quiz.Validate(), "Корректная викторина должна проходить валидацию")
}

func TestQuiz_Validate_DuplicateQuestionIDs(t *testing.T) {
	// Arrange: оба вопроса указывают на один и тот же ID
	quiz := &Quiz{
		Date:        "2025-09-17",
		QuestionIDs: UintArray{7, 7},
	}

	// Act
	err := quiz.Validate()

	// Assert
	require.Error(t, err, "Викторина с одинаковыми вопросами не должна проходить валидацию")
	assert.Contains(t, err.Error(), "distinct")
}

func TestQuiz_Validate_WrongQuestionCount(t *testing.T) {
	// Arrange & Act & Assert: всегда ровно два вопроса
	quiz := &Quiz{Date: "2025-09-17", QuestionIDs: UintArray{1}}
	assert.Error(t, quiz.Validate(), "Один вопрос — ошибка")

	quiz.QuestionIDs = UintArray{1, 2, 3}
	assert.Error(t, quiz.Validate(), "Три вопроса — ошибка")

	quiz.QuestionIDs = UintArray{}
	assert.Error(t, quiz.Validate(), "Без вопросов — ошибка")
}

func TestQuiz_Validate_BadDateAndWindow(t *testing.T) {
	quiz := &Quiz{Date: "17.09.2025", QuestionIDs: UintArray{1, 2}}
	assert.Error(t, quiz.Validate(), "Дата в неверном формате должна отклоняться")

	quiz = &Quiz{Date: "2025-09-17", StartTime: "10:00", EndTime: "", QuestionIDs: UintArray{1, 2}}
	assert.Error(t, quiz.Validate(), "Окно должно задаваться парой start/end")

	quiz = &Quiz{Date: "2025-09-17", StartTime: "11:00", EndTime: "10:00", QuestionIDs: UintArray{1, 2}}
	assert.Error(t, quiz.Validate(), "Начало окна должно быть раньше конца")
}

func TestQuiz_IsOpenAt(t *testing.T) {
	// Arrange
	quiz := &Quiz{
		Date:        "2025-09-17",
		StartTime:   "09:00",
		EndTime:     "09:30",
		QuestionIDs: UintArray{1, 2},
	}

	inWindow := time.Date(2025, 9, 17, 9, 15, 0, 0, time.UTC)
	beforeWindow := time.Date(2025, 9, 17, 8, 59, 0, 0, time.UTC)
	afterWindow := time.Date(2025, 9, 17, 9, 31, 0, 0, time.UTC)
	otherDay := time.Date(2025, 9, 18, 9, 15, 0, 0, time.UTC)

	// Act & Assert
	assert.True(t, quiz.IsOpenAt(inWindow), "Внутри окна викторина открыта")
	assert.True(t, quiz.IsOpenAt(time.Date(2025, 9, 17, 9, 0, 0, 0, time.UTC)), "Граница начала включается")
	assert.True(t, quiz.IsOpenAt(time.Date(2025, 9, 17, 9, 30, 0, 0, time.UTC)), "Граница конца включается")
	assert.False(t, quiz.IsOpenAt(beforeWindow), "До начала окна викторина закрыта")
	assert.False(t, quiz.IsOpenAt(afterWindow), "После окончания окна викторина закрыта")
	assert.False(t, quiz.IsOpenAt(otherDay), "В другой день викторина закрыта")
}

func TestQuiz_IsOpenAt_NoWindow(t *testing.T) {
	// Arrange: викторина без окна открыта весь день
	quiz := &Quiz{Date: "2025-09-17", QuestionIDs: UintArray{1, 2}}

	// Act & Assert
	assert.True(t, quiz.IsOpenAt(time.Date(2025, 9, 17, 0, 1, 0, 0, time.UTC)))
	assert.True(t, quiz.IsOpenAt(time.Date(2025, 9, 17, 23, 59, 0, 0, time.UTC)))
	assert.False(t, quiz.IsOpenAt(time.Date(2025, 9, 16, 12, 0, 0, 0, time.UTC)))
}
