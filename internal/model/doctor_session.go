package model

import (
	"time"

	"github.com/google/uuid"
)

// DoctorSession is one contiguous working interval of a doctor at a clinic on a weekday.
// A day split by breaks is stored as several rows; the first row of the day has no
// parent and the rest point at it.
type DoctorSession struct {
	ID         int64     `json:"id"`
	DoctorID   int64     `json:"doctor_id"`
	ClinicID   int64     `json:"clinic_id"`
	Day        string    `json:"day"` // "mon".."sun"
	StartTime  TimeOfDay `json:"start_time"`
	EndTime    TimeOfDay `json:"end_time"`
	TimeSlot   int       `json:"time_slot"` // minutes
	ParentID   *int64    `json:"parent_id"`
	RevisionID uuid.UUID `json:"revision_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Minutes returns the length of the session.
func (s *DoctorSession) Minutes() int {
	return int(s.EndTime - s.StartTime)
}

// IsRoot reports whether the session starts a day chain.
func (s *DoctorSession) IsRoot() bool {
	return s.ParentID == nil
}

// TimeRange is a start/end pair as entered on the schedule form.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DaySchedule is the schedule input for one weekday.
type DaySchedule struct {
	Day         string      `json:"day" validate:"required"`
	Enabled     bool        `json:"enabled"`
	MainSession *TimeRange  `json:"main_session"`
	Breaks      []TimeRange `json:"breaks"`
}

// WeeklySchedule is the full payload of a schedule save for one doctor at one clinic.
type WeeklySchedule struct {
	DoctorID int64         `json:"doctor_id" validate:"required,gt=0"`
	ClinicID int64         `json:"clinic_id" validate:"required,gt=0"`
	TimeSlot int           `json:"time_slot" validate:"gte=0,lte=1440"`
	Days     []DaySchedule `json:"days" validate:"required,min=1,dive"`
}

// Window is a validated [Start, End) interval within one day.
type Window struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// ScheduleWarning is a non-fatal problem found while saving a schedule.
type ScheduleWarning struct {
	Day     string `json:"day"`
	Reason  string `json:"reason"`
	Start   string `json:"start,omitempty"`
	End     string `json:"end,omitempty"`
	Skipped bool   `json:"skipped_day,omitempty"`
}
