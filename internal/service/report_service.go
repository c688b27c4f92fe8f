package service

import (
	"math"
	"time"

	"github.com/yourusername/dailyquiz-api/internal/domain/entity"
	"github.com/yourusername/dailyquiz-api/internal/domain/repository"
)

// AttendanceMark - отметка посещаемости за один учебный день
type AttendanceMark struct {
	Date     string `json:"date"`
	Attended bool   `json:"attended"`
}

// AttemptSummary - краткий итог одной попытки для отчёта
type AttemptSummary struct {
	Date           string `json:"date"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"total_questions"`
	Percentage     int    `json:"percentage"`
	TimeTakenSec   int    `json:"time_taken_sec"`
}

// StudentReport - строка отчёта по одному студенту
type StudentReport struct {
	StudentID  uint             `json:"student_id"`
	Student    string           `json:"student"`
	Class      string           `json:"class"`
	Attendance []AttendanceMark `json:"attendance"`
	TotalMarks int              `json:"total_marks"`
	Attempts   []AttemptSummary `json:"attempts"`
}

// PerformanceReport - агрегированный отчёт посещаемости и успеваемости
// за одну учебную неделю
type PerformanceReport struct {
	WeekID            string          `json:"week_id"`
	Dates             []string        `json:"dates"` // Понедельник..пятница
	TotalStudents     int             `json:"total_students"`
	CompletedToday    int             `json:"completed_today"`
	MissedToday       int             `json:"missed_today"`
	AveragePercentage int             `json:"average_percentage"`
	Students          []StudentReport `json:"students"`
}

// ReportService строит отчёты для преподавателей.
// Это единственная авторитетная реализация агрегации посещаемости:
// студент "присутствовал" в дату тогда и только тогда, когда за эту
// дату существует его попытка.
type ReportService struct {
	userRepo    repository.UserRepository
	attemptRepo repository.AttemptRepository
}

// NewReportService создает новый сервис отчётов
func NewReportService(userRepo repository.UserRepository, attemptRepo repository.AttemptRepository) *ReportService {
	return &ReportService{
		userRepo:    userRepo,
		attemptRepo: attemptRepo,
	}
}

// PerformanceReport строит отчёт за ISO-неделю weekID (пустая строка -
// текущая неделя момента now) по студентам группы classFilter (пустая
// строка - все группы). "Сегодня" в сводке - это календарная дата now,
// а не день выбранной недели.
func (s *ReportService) PerformanceReport(weekID, classFilter string, now time.Time) (*PerformanceReport, error) {
	if weekID == "" {
		weekID = currentWeekID(now)
	}

	year, week, err := parseWeekID(weekID)
	if err != nil {
		return nil, err
	}
	dates := schoolWeekDates(year, week)

	students, err := s.userRepo.ListStudents(classFilter)
	if err != nil {
		return nil, err
	}

	attempts, err := s.attemptRepo.ListByDateRange(dates[0], dates[len(dates)-1])
	if err != nil {
		return nil, err
	}

	// Отчёт считает только попытки студентов из выбранного набора
	studentIDs := make(map[uint]bool, len(students))
	for _, st := range students {
		studentIDs[st.ID] = true
	}

	byStudent := make(map[uint][]entity.Attempt)
	for _, a := range attempts {
		if studentIDs[a.UserID] {
			byStudent[a.UserID] = append(byStudent[a.UserID], a)
		}
	}

	today := now.Format(entity.QuizDateLayout)
	completedToday := 0
	percentageSum := 0
	attemptCount := 0

	rows := make([]StudentReport, 0, len(students))
	for _, st := range students {
		studentAttempts := byStudent[st.ID]

		attended := make(map[string]bool, len(studentAttempts))
		totalMarks := 0
		summaries := make([]AttemptSummary, 0, len(studentAttempts))

		for _, a := range studentAttempts {
			attended[a.Date] = true
			totalMarks += a.Score
			percentageSum += a.Percentage()
			attemptCount++
			if a.Date == today {
				completedToday++
			}

			summaries = append(summaries, AttemptSummary{
				Date:           a.Date,
				Score:          a.Score,
				TotalQuestions: a.TotalQuestions(),
				Percentage:     a.Percentage(),
				TimeTakenSec:   a.TimeTakenSec,
			})
		}

		marks := make([]AttendanceMark, len(dates))
		for i, d := range dates {
			marks[i] = AttendanceMark{Date: d, Attended: attended[d]}
		}

		rows = append(rows, StudentReport{
			StudentID:  st.ID,
			Student:    st.FullName,
			Class:      st.Class,
			Attendance: marks,
			TotalMarks: totalMarks,
			Attempts:   summaries,
		})
	}

	// Средний процент по всем попыткам диапазона; 0 при отсутствии попыток
	average := 0
	if attemptCount > 0 {
		average = int(math.Round(float64(percentageSum) / float64(attemptCount)))
	}

	return &PerformanceReport{
		WeekID:            weekID,
		Dates:             dates,
		TotalStudents:     len(students),
		CompletedToday:    completedToday,
		MissedToday:       len(students) - completedToday,
		AveragePercentage: average,
		Students:          rows,
	}, nil
}
