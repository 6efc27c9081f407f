package formatting

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/clinic_scheduler/internal/model"
)

// DefaultTimeLayout формат времени слота по умолчанию
const DefaultTimeLayout = "03:04 PM"

// TimeFormatter форматирует время слотов в часовом поясе клиники
type TimeFormatter struct {
	layout string
	loc    *time.Location
}

func NewTimeFormatter(layout string, loc *time.Location) *TimeFormatter {
	if layout == "" {
		layout = DefaultTimeLayout
	}
	if loc == nil {
		loc = time.UTC
	}
	return &TimeFormatter{layout: layout, loc: loc}
}

// FormatTime форматирует только время
func (f *TimeFormatter) FormatTime(t time.Time) string {
	return t.In(f.loc).Format(f.layout)
}

// FormatDate форматирует только дату
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatSessionRange форматирует сессию как "mon 09:00-11:00"
func FormatSessionRange(s *model.DoctorSession) string {
	return fmt.Sprintf("%s %s-%s", s.Day, s.StartTime, s.EndTime)
}

// FormatDuration форматирует длительность в минутах
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d h", hours)
	}
	return fmt.Sprintf("%d h %d min", hours, mins)
}
