package service

import (
	"sort"
	"time"

	"github.com/Freeeeeet/clinic_scheduler/internal/model"
	"go.uber.org/zap"
)

// DayPlan is the split result for one weekday of a schedule save.
type DayPlan struct {
	Weekday  time.Weekday
	Day      string
	Enabled  bool
	Windows  []model.Window
	Warnings []model.ScheduleWarning
}

// Skipped reports whether an enabled day produced no sessions.
func (p DayPlan) Skipped() bool {
	return p.Enabled && len(p.Windows) == 0
}

// SessionSplitter turns a day's main session and breaks into contiguous sub-sessions.
type SessionSplitter struct {
	logger *zap.Logger
}

func NewSessionSplitter(logger *zap.Logger) *SessionSplitter {
	return &SessionSplitter{logger: logger}
}

// Split validates one day of schedule input. Only an unknown day name is an error;
// a missing or inverted main session skips the day and invalid breaks are dropped,
// both with warnings.
func (s *SessionSplitter) Split(input model.DaySchedule) (DayPlan, error) {
	wd, err := model.ParseWeekday(input.Day)
	if err != nil {
		return DayPlan{}, invalidSchedule("field day: %v", err)
	}

	plan := DayPlan{
		Weekday: wd,
		Day:     model.WeekdayKey(wd),
		Enabled: input.Enabled,
	}
	if !input.Enabled {
		return plan, nil
	}

	main, ok := s.mainWindow(plan.Day, input.MainSession)
	if !ok {
		plan.Warnings = append(plan.Warnings, skippedDay(plan.Day, input.MainSession))
		return plan, nil
	}

	breaks := make([]model.Window, 0, len(input.Breaks))
	for _, br := range input.Breaks {
		w, reason := parseBreak(br, main)
		if reason != "" {
			s.logger.Warn("Discarding invalid break",
				zap.String("day", plan.Day),
				zap.String("start", br.Start),
				zap.String("end", br.End),
				zap.String("reason", reason))
			plan.Warnings = append(plan.Warnings, model.ScheduleWarning{
				Day:    plan.Day,
				Reason: reason,
				Start:  br.Start,
				End:    br.End,
			})
			continue
		}
		breaks = append(breaks, w)
	}

	plan.Windows = SplitWindow(main, breaks)
	return plan, nil
}

func (s *SessionSplitter) mainWindow(day string, main *model.TimeRange) (model.Window, bool) {
	if main == nil || main.Start == "" || main.End == "" {
		s.logger.Warn("Skipping day without main session", zap.String("day", day))
		return model.Window{}, false
	}

	start, err := model.ParseTimeOfDay(main.Start)
	if err != nil {
		s.logger.Warn("Skipping day with unparsable main session start",
			zap.String("day", day), zap.Error(err))
		return model.Window{}, false
	}
	end, err := model.ParseTimeOfDay(main.End)
	if err != nil {
		s.logger.Warn("Skipping day with unparsable main session end",
			zap.String("day", day), zap.Error(err))
		return model.Window{}, false
	}
	if end <= start {
		s.logger.Warn("Skipping day with empty main session",
			zap.String("day", day),
			zap.String("start", main.Start),
			zap.String("end", main.End))
		return model.Window{}, false
	}

	return model.Window{Start: start, End: end}, true
}

func skippedDay(day string, main *model.TimeRange) model.ScheduleWarning {
	w := model.ScheduleWarning{Day: day, Skipped: true, Reason: "main session missing or empty"}
	if main != nil {
		w.Start = main.Start
		w.End = main.End
	}
	return w
}

func parseBreak(br model.TimeRange, main model.Window) (model.Window, string) {
	start, err := model.ParseTimeOfDay(br.Start)
	if err != nil {
		return model.Window{}, "break start is not a time"
	}
	end, err := model.ParseTimeOfDay(br.End)
	if err != nil {
		return model.Window{}, "break end is not a time"
	}
	if start >= end {
		return model.Window{}, "break ends before it starts"
	}
	if start < main.Start || end > main.End {
		return model.Window{}, "break outside main session"
	}
	return model.Window{Start: start, End: end}, ""
}

// SplitWindow returns main minus breaks as ordered non-empty windows. Breaks must lie
// inside main with Start < End; overlapping breaks are merged.
func SplitWindow(main model.Window, breaks []model.Window) []model.Window {
	sorted := make([]model.Window, len(breaks))
	copy(sorted, breaks)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	var out []model.Window
	cursor := main.Start
	for _, br := range sorted {
		if br.Start > cursor {
			out = append(out, model.Window{Start: cursor, End: br.Start})
		}
		if br.End > cursor {
			cursor = br.End
		}
	}
	if cursor < main.End {
		out = append(out, model.Window{Start: cursor, End: main.End})
	}
	return out
}
