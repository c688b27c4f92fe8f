package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"math"
	"time"
)

// SubmittedAnswer представляет один ответ студента в рамках попытки
type SubmittedAnswer struct {
	QuestionID uint   `json:"question_id"`
	Answer     string `json:"answer"`
}

// AnswerList - пользовательский тип для хранения ответов попытки в JSONB
type AnswerList []SubmittedAnswer

// Scan реализует интерфейс sql.Scanner для AnswerList
func (o *AnswerList) Scan(value interface{}) error {
	if value == nil {
		*o = AnswerList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*o = AnswerList{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value реализует интерфейс driver.Valuer для AnswerList
func (o AnswerList) Value() (driver.Value, error) {
	if o == nil || len(o) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(o)
}

// Attempt представляет единственную дневную попытку студента.
// Инвариант "не более одной попытки на (user_id, date)" обеспечивается
// уникальным индексом и условной вставкой в репозитории.
// Попытка никогда не изменяется после создания.
type Attempt struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"not null;index;uniqueIndex:idx_attempts_user_date" json:"user_id"`
	Date         string     `gorm:"size:10;not null;index;uniqueIndex:idx_attempts_user_date" json:"date"` // YYYY-MM-DD
	Answers      AnswerList `gorm:"type:jsonb;not null" json:"answers"`
	Score        int        `gorm:"not null;default:0" json:"score"`
	TimeTakenSec int        `gorm:"not null;default:0" json:"time_taken_sec"`
	CreatedAt    time.Time  `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Attempt) TableName() string {
	return "attempts"
}

// TotalQuestions возвращает количество ответов в попытке
func (a *Attempt) TotalQuestions() int {
	return len(a.Answers)
}

// Percentage возвращает процент правильных ответов попытки,
// округлённый по стандартному правилу round-half-up.
// Для пустой попытки процент равен 0.
func (a *Attempt) Percentage() int {
	total := a.TotalQuestions()
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(a.Score) / float64(total) * 100))
}
