package model

import (
	"fmt"
	"strings"
	"time"
)

var weekdayShort = [...]string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

var weekdayFull = [...]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// ParseWeekday accepts abbreviated or full day names in any case.
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i := range weekdayShort {
		if name == weekdayShort[i] || name == weekdayFull[i] {
			return time.Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

// WeekdayKey is the stored abbreviation for wd.
func WeekdayKey(wd time.Weekday) string {
	return weekdayShort[wd]
}

// WeekdayFullName is the lowercase full name for wd, used to match legacy rows.
func WeekdayFullName(wd time.Weekday) string {
	return weekdayFull[wd]
}
