package model

import "time"

// DateTimeLayout is the machine-readable datetime of a slot.
const DateTimeLayout = "2006-01-02 15:04:05"

// Slot is a candidate appointment start within a session. Never persisted.
type Slot struct {
	Time      string    `json:"time"`
	Available bool      `json:"available"`
	Booked    bool      `json:"booked"`
	Datetime  string    `json:"datetime"`
	SessionID int64     `json:"session_id"`
	Start     time.Time `json:"-"`
	End       time.Time `json:"-"`
}

// SessionSlotState distinguishes why a session index has no slots.
type SessionSlotState int

const (
	NoSessionDefined SessionSlotState = iota
	SessionWithNoSlots
	SessionWithSlots
)

func (s SessionSlotState) String() string {
	switch s {
	case SessionWithNoSlots:
		return "no_slots"
	case SessionWithSlots:
		return "slots"
	default:
		return "no_session"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s SessionSlotState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// SessionSlots is the slot list of one session.
type SessionSlots struct {
	Index     int              `json:"index"`
	SessionID int64            `json:"session_id"`
	State     SessionSlotState `json:"state"`
	Slots     []Slot           `json:"slots"`
}

// DaySlots holds the slot lists of every session of a day, in session order.
type DaySlots struct {
	Date     string         `json:"date"`
	Sessions []SessionSlots `json:"sessions"`
}

// At returns the slots of the session at index i; indexes without a session
// report NoSessionDefined.
func (d *DaySlots) At(i int) SessionSlots {
	if d == nil || i < 0 || i >= len(d.Sessions) {
		return SessionSlots{Index: i, State: NoSessionDefined}
	}
	return d.Sessions[i]
}

// Available returns every available slot of the day in session order.
func (d *DaySlots) Available() []Slot {
	if d == nil {
		return nil
	}
	var out []Slot
	for _, s := range d.Sessions {
		for _, slot := range s.Slots {
			if slot.Available {
				out = append(out, slot)
			}
		}
	}
	return out
}

// Count returns the number of slots over all sessions.
func (d *DaySlots) Count() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, s := range d.Sessions {
		n += len(s.Slots)
	}
	return n
}
