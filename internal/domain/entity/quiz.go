package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// QuizDateLayout - формат календарной даты викторины
const QuizDateLayout = "2006-01-02"

// QuizTimeLayout - формат времени начала/окончания викторины
const QuizTimeLayout = "15:04"

// QuizQuestionCount - ежедневная викторина всегда содержит ровно два вопроса
const QuizQuestionCount = 2

// UintArray - пользовательский тип для хранения списка ID в JSONB
type UintArray []uint

// Scan реализует интерфейс sql.Scanner для UintArray
func (o *UintArray) Scan(value interface{}) error {
	if value == nil {
		*o = UintArray{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*o = UintArray{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value реализует интерфейс driver.Valuer для UintArray
func (o UintArray) Value() (driver.Value, error) {
	if o == nil || len(o) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(o)
}

// Quiz представляет запланированную на календарную дату викторину.
// На одну дату может быть запланирована не более одной викторины.
type Quiz struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Date        string    `gorm:"size:10;not null;uniqueIndex" json:"date"` // YYYY-MM-DD
	StartTime   string    `gorm:"size:5;not null;default:''" json:"start_time"`
	EndTime     string    `gorm:"size:5;not null;default:''" json:"end_time"`
	QuestionIDs UintArray `gorm:"type:jsonb;not null" json:"question_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Quiz) TableName() string {
	return "quizzes"
}

// Validate проверяет инварианты викторины: корректная дата,
// ровно два различных вопроса, корректное окно времени (если задано).
func (q *Quiz) Validate() error {
	if _, err := time.Parse(QuizDateLayout, q.Date); err != nil {
		return errors.New("quiz date must be in YYYY-MM-DD format")
	}

	if len(q.QuestionIDs) != QuizQuestionCount {
		return errors.New("quiz must reference exactly two questions")
	}
	if q.QuestionIDs[0] == q.QuestionIDs[1] {
		return errors.New("quiz question ids must be distinct")
	}

	if (q.StartTime == "") != (q.EndTime == "") {
		return errors.New("start_time and end_time must be set together")
	}
	if q.StartTime != "" {
		start, err := time.Parse(QuizTimeLayout, q.StartTime)
		if err != nil {
			return errors.New("start_time must be in HH:MM format")
		}
		end, err := time.Parse(QuizTimeLayout, q.EndTime)
		if err != nil {
			return errors.New("end_time must be in HH:MM format")
		}
		if !start.Before(end) {
			return errors.New("start_time must be before end_time")
		}
	}

	return nil
}

// IsOpenAt проверяет, открыто ли окно сдачи викторины в момент t.
// Викторина без заданного окна считается открытой весь день.
func (q *Quiz) IsOpenAt(t time.Time) bool {
	if t.Format(QuizDateLayout) != q.Date {
		return false
	}
	if q.StartTime == "" || q.EndTime == "" {
		return true
	}

	clock := t.Format(QuizTimeLayout)
	return clock >= q.StartTime && clock <= q.EndTime
}
