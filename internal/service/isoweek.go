package service

import (
	"fmt"
	"time"

	"github.com/yourusername/dailyquiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/dailyquiz-api/internal/pkg/errors"
)

// schoolWeekDays - учебная неделя длится с понедельника по пятницу
const schoolWeekDays = 5

// parseWeekID разбирает идентификатор ISO-недели вида "2025-W38"
func parseWeekID(weekID string) (year, week int, err error) {
	if _, err := fmt.Sscanf(weekID, "%d-W%d", &year, &week); err != nil {
		return 0, 0, fmt.Errorf("%w: week id must look like 2025-W38", apperrors.ErrValidation)
	}
	if week < 1 || week > 53 {
		return 0, 0, fmt.Errorf("%w: week number must be between 1 and 53", apperrors.ErrValidation)
	}
	return year, week, nil
}

// isoWeekMonday возвращает понедельник заданной ISO-недели.
// По стандарту ISO-8601 первая неделя года - та, что содержит 4 января
// (неделя первого четверга), поэтому понедельник вычисляется якорем от 4 января.
func isoWeekMonday(year, week int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7 // Воскресенье считаем седьмым днём
	}
	return jan4.AddDate(0, 0, -(weekday-1)+(week-1)*7)
}

// schoolWeekDates возвращает пять дат учебной недели [понедельник, пятница]
// в формате YYYY-MM-DD
func schoolWeekDates(year, week int) []string {
	monday := isoWeekMonday(year, week)
	dates := make([]string, schoolWeekDays)
	for i := 0; i < schoolWeekDays; i++ {
		dates[i] = monday.AddDate(0, 0, i).Format(entity.QuizDateLayout)
	}
	return dates
}

// currentWeekID возвращает идентификатор ISO-недели для момента now
func currentWeekID(now time.Time) string {
	year, week := now.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}
