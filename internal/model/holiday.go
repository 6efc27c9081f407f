package model

import (
	"fmt"
	"time"
)

type HolidayModule string

const (
	HolidayModuleDoctor HolidayModule = "doctor"
	HolidayModuleClinic HolidayModule = "clinic"
)

type SelectionMode string

const (
	SelectionModeRange    SelectionMode = "range"
	SelectionModeMultiple SelectionMode = "multiple"
	SelectionModeSingle   SelectionMode = "single"
)

// Holiday is a schedule override blocking all or part of some dates for a doctor or a clinic.
type Holiday struct {
	ID       int64         `json:"id"`
	Module   HolidayModule `json:"module_type"`
	ModuleID int64         `json:"module_id"`
	Active   bool          `json:"status"`
	Rule     HolidayRule   `json:"-"`
}

// Covers reports whether the holiday applies to the calendar date of d.
func (h *Holiday) Covers(d time.Time) bool {
	return h.Active && h.Rule != nil && h.Rule.Covers(d)
}

// DateSelection decides which calendar dates a rule applies to.
type DateSelection interface {
	Contains(d time.Time) bool
}

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	From time.Time
	To   time.Time
}

func (r DateRange) Contains(d time.Time) bool {
	k := DateKey(d)
	return DateKey(r.From) <= k && k <= DateKey(r.To)
}

// DateList is an explicit set of calendar dates.
type DateList []time.Time

func (l DateList) Contains(d time.Time) bool {
	k := DateKey(d)
	for _, item := range l {
		if DateKey(item) == k {
			return true
		}
	}
	return false
}

// HolidayRule is one of FullRange, MultipleDates or TimeSpecific.
type HolidayRule interface {
	Covers(d time.Time) bool
	holidayRule()
}

// FullRange blocks whole days from From to To (range and single modes).
type FullRange struct {
	Range DateRange
}

// MultipleDates blocks whole days picked one by one.
type MultipleDates struct {
	Dates DateList
}

// TimeSpecific blocks only Window on the selected dates.
// Window is nil when the record carries no usable bounds; such a rule blocks nothing.
type TimeSpecific struct {
	Dates  DateSelection
	Window *Window
}

func (r FullRange) Covers(d time.Time) bool     { return r.Range.Contains(d) }
func (r MultipleDates) Covers(d time.Time) bool { return r.Dates.Contains(d) }
func (r TimeSpecific) Covers(d time.Time) bool  { return r.Dates != nil && r.Dates.Contains(d) }

func (FullRange) holidayRule()     {}
func (MultipleDates) holidayRule() {}
func (TimeSpecific) holidayRule()  {}

// NewHolidayRule builds the rule for a stored override row.
func NewHolidayRule(
	mode SelectionMode,
	startDate, endDate time.Time,
	selectedDates []time.Time,
	timeSpecific bool,
	startTime, endTime *TimeOfDay,
) (HolidayRule, error) {
	var dates DateSelection
	switch mode {
	case SelectionModeRange, SelectionModeSingle:
		dates = DateRange{From: startDate, To: endDate}
	case SelectionModeMultiple:
		dates = DateList(selectedDates)
	default:
		return nil, fmt.Errorf("unknown selection mode %q", mode)
	}

	if timeSpecific {
		rule := TimeSpecific{Dates: dates}
		if startTime != nil && endTime != nil && *startTime < *endTime {
			rule.Window = &Window{Start: *startTime, End: *endTime}
		}
		return rule, nil
	}

	if mode == SelectionModeMultiple {
		return MultipleDates{Dates: DateList(selectedDates)}, nil
	}
	return FullRange{Range: DateRange{From: startDate, To: endDate}}, nil
}

// DateKey maps a time to its calendar date as yyyymmdd, ignoring the clock and zone.
func DateKey(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}
