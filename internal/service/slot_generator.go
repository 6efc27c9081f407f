package service

import (
	"sort"
	"strings"
	"time"

	"github.com/Freeeeeet/clinic_scheduler/internal/model"
	"github.com/go-playground/validator/v10"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// TimeFormatter renders the display time of a slot.
type TimeFormatter interface {
	FormatTime(t time.Time) string
}

// SlotDateLayouts are the accepted request date formats, tried in order.
var SlotDateLayouts = []string{"2006-1-2", "2-1-2006", "1/2/2006", "2006/1/2"}

// ParseSlotDate parses a request date in loc.
func ParseSlotDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range SlotDateLayouts {
		if d, err := time.ParseInLocation(layout, s, loc); err == nil {
			return d, nil
		}
	}
	return time.Time{}, invalidSlotRequest("field date: %q is not a recognised date", s)
}

// MaxSlotMinutes caps a slot at one day.
const MaxSlotMinutes = 24 * 60

// SlotGenerationData is the input of GenerateSlots.
type SlotGenerationData struct {
	Date                string                 `json:"date" validate:"required"`
	DoctorID            int64                  `json:"doctor_id" validate:"required,gt=0"`
	ClinicID            int64                  `json:"clinic_id" validate:"required,gt=0"`
	ServiceDurationSum  int                    `json:"service_duration_sum" validate:"required,gt=0,lte=1440"`
	Sessions            []*model.DoctorSession `json:"sessions"`
	Appointments        []model.Appointment    `json:"appointments"`
	AppointmentIDToSkip int64                  `json:"appointment_id" validate:"gte=0"`
	OnlyAvailableSlots  bool                   `json:"only_available_slots"`
}

// SlotGenerator computes per-session slot lists. It holds no mutable state and is
// safe for concurrent use.
type SlotGenerator struct {
	clock     Clock
	loc       *time.Location
	formatter TimeFormatter
	validate  *validator.Validate
}

func NewSlotGenerator(clock Clock, loc *time.Location, formatter TimeFormatter) *SlotGenerator {
	if clock == nil {
		clock = SystemClock{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &SlotGenerator{
		clock:     clock,
		loc:       loc,
		formatter: formatter,
		validate:  newValidator(),
	}
}

type interval struct {
	start time.Time
	end   time.Time
}

func (i interval) overlaps(o interval) bool {
	return i.start.Before(o.end) && o.start.Before(i.end)
}

// GenerateSlots validates data and lays out slots for every session in input order.
// Invalid input fails before any slot is computed.
func (g *SlotGenerator) GenerateSlots(data *SlotGenerationData) (*model.DaySlots, error) {
	if data == nil {
		return nil, invalidSlotRequest("missing slot generation data")
	}
	if err := validateStruct(g.validate, ErrInvalidSlotRequest, data); err != nil {
		return nil, err
	}
	date, err := ParseSlotDate(data.Date, g.loc)
	if err != nil {
		return nil, err
	}

	now := g.clock.Now()
	busy := g.busyIntervals(data.Appointments, data.AppointmentIDToSkip)

	result := &model.DaySlots{
		Date:     date.Format("2006-01-02"),
		Sessions: make([]model.SessionSlots, 0, len(data.Sessions)),
	}

	for i, session := range data.Sessions {
		entry := model.SessionSlots{Index: i, State: model.NoSessionDefined}
		if session == nil {
			result.Sessions = append(result.Sessions, entry)
			continue
		}
		entry.SessionID = session.ID

		window := interval{
			start: session.StartTime.On(date, g.loc),
			end:   session.EndTime.On(date, g.loc),
		}
		minutes := placementDuration(data.ServiceDurationSum, session)
		if minutes <= 0 || minutes > MaxSlotMinutes {
			return nil, invalidSlotRequest("field service_duration_sum: slot length %d is out of range", minutes)
		}
		step := time.Duration(minutes) * time.Minute

		if data.OnlyAvailableSlots {
			entry.Slots = g.compactSlots(session.ID, window, busy, step, now)
		} else {
			entry.Slots = g.exhaustiveSlots(session.ID, window, busy, step, now)
		}

		if len(entry.Slots) > 0 {
			entry.State = model.SessionWithSlots
		} else {
			entry.State = model.SessionWithNoSlots
		}
		result.Sessions = append(result.Sessions, entry)
	}

	return result, nil
}

func placementDuration(serviceDurationSum int, session *model.DoctorSession) int {
	if serviceDurationSum > 0 {
		return serviceDurationSum
	}
	if session.TimeSlot > 0 {
		return session.TimeSlot
	}
	return serviceDurationSum
}

func (g *SlotGenerator) busyIntervals(appointments []model.Appointment, skipID int64) []interval {
	busy := make([]interval, 0, len(appointments))
	for i := range appointments {
		a := &appointments[i]
		if !a.OccupiesTime() {
			continue
		}
		if skipID > 0 && a.ID == skipID && !a.IsSynthetic() {
			continue
		}
		start, end := a.Interval(g.loc)
		if !start.Before(end) {
			continue
		}
		busy = append(busy, interval{start: start, end: end})
	}
	return busy
}

// compactSlots places slots only in the gaps between appointments and drops slots that
// do not start after now.
func (g *SlotGenerator) compactSlots(sessionID int64, window interval, busy []interval, step time.Duration, now time.Time) []model.Slot {
	var overlapping []interval
	for _, b := range busy {
		if b.overlaps(window) {
			overlapping = append(overlapping, b)
		}
	}
	sort.Slice(overlapping, func(i, j int) bool {
		return overlapping[i].start.Before(overlapping[j].start)
	})

	var chunks []interval
	cursor := window.start
	for _, b := range overlapping {
		if b.start.After(cursor) {
			chunks = append(chunks, interval{start: cursor, end: b.start})
		}
		if b.end.After(cursor) {
			cursor = b.end
		}
	}
	if cursor.Before(window.end) {
		chunks = append(chunks, interval{start: cursor, end: window.end})
	}

	slots := []model.Slot{}
	for _, chunk := range chunks {
		for t := chunk.start; !t.Add(step).After(chunk.end); t = t.Add(step) {
			if !t.After(now) {
				continue
			}
			slots = append(slots, g.slot(sessionID, t, step, true, false))
		}
	}
	return slots
}

// exhaustiveSlots lays slots over the whole window and flags the booked ones.
func (g *SlotGenerator) exhaustiveSlots(sessionID int64, window interval, busy []interval, step time.Duration, now time.Time) []model.Slot {
	slots := []model.Slot{}
	for t := window.start; !t.Add(step).After(window.end); t = t.Add(step) {
		candidate := interval{start: t, end: t.Add(step)}
		booked := false
		for _, b := range busy {
			if candidate.overlaps(b) {
				booked = true
				break
			}
		}
		slots = append(slots, g.slot(sessionID, t, step, t.After(now) && !booked, booked))
	}
	return slots
}

func (g *SlotGenerator) slot(sessionID int64, start time.Time, step time.Duration, available, booked bool) model.Slot {
	display := start.Format("15:04")
	if g.formatter != nil {
		display = g.formatter.FormatTime(start)
	}
	return model.Slot{
		Time:      display,
		Available: available,
		Booked:    booked,
		Datetime:  start.Format(model.DateTimeLayout),
		SessionID: sessionID,
		Start:     start,
		End:       start.Add(step),
	}
}
