package planner

import (
	"fmt"
	"strings"
	"time"
)

// DayOfWeek is a weekday name as chosen in the planner setup.
type DayOfWeek string

const (
	Monday    DayOfWeek = "Monday"
	Tuesday   DayOfWeek = "Tuesday"
	Wednesday DayOfWeek = "Wednesday"
	Thursday  DayOfWeek = "Thursday"
	Friday    DayOfWeek = "Friday"
	Saturday  DayOfWeek = "Saturday"
	Sunday    DayOfWeek = "Sunday"
)

// AllDays lists the weekdays in calendar order, Monday first.
var AllDays = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// DayFromWeekday converts a time.Weekday to its DayOfWeek name.
func DayFromWeekday(wd time.Weekday) DayOfWeek {
	return DayOfWeek(wd.String())
}

// Weekday returns the time.Weekday for d. Unknown names map to -1.
func (d DayOfWeek) Weekday() time.Weekday {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if wd.String() == string(d) {
			return wd
		}
	}
	return -1
}

// Valid reports whether d names one of the seven weekdays.
func (d DayOfWeek) Valid() bool {
	return d.Weekday() >= 0
}

// Short returns the three-letter abbreviation ("Mon").
func (d DayOfWeek) Short() string {
	if len(d) < 3 {
		return string(d)
	}
	return string(d[:3])
}

// ParseDay accepts full weekday names or three-letter abbreviations in any case.
func ParseDay(s string) (DayOfWeek, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	for _, d := range AllDays {
		full := strings.ToLower(string(d))
		if s == full || (len(s) >= 3 && strings.HasPrefix(full, s)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown day %q", s)
}

// Availability describes when and how the learner wants to practice.
// It is built once by the setup flow and never mutated by the generator.
type Availability struct {
	Days []DayOfWeek `json:"days"`

	// TimeSlots maps a day to a preferred time of day ("08:00").
	// Carried through to the plan owner; generation does not consult it.
	TimeSlots map[DayOfWeek]string `json:"timeSlots,omitempty"`

	// DurationMinutes is one of DurationChoices.
	DurationMinutes int `json:"durationMinutes"`

	// TargetBand is the band score goal, 5.0-9.0 in 0.5 steps.
	TargetBand float64 `json:"targetBand"`

	// Weaknesses are free-text focus areas, e.g. "Fluency".
	Weaknesses []string `json:"weaknesses"`
}

// HasDay reports whether d is one of the available days.
func (a Availability) HasDay(d DayOfWeek) bool {
	for _, day := range a.Days {
		if day == d {
			return true
		}
	}
	return false
}

// SessionType identifies what a study session practices.
type SessionType string

const (
	TypePart1  SessionType = "part1"
	TypePart2  SessionType = "part2"
	TypePart3  SessionType = "part3"
	TypeVocab  SessionType = "vocab"
	TypeMock   SessionType = "mock"
	TypeReview SessionType = "review"
)

// SessionTypes lists every session type.
var SessionTypes = []SessionType{TypePart1, TypePart2, TypePart3, TypeVocab, TypeMock, TypeReview}

// Valid reports whether t is a known session type.
func (t SessionType) Valid() bool {
	for _, st := range SessionTypes {
		if st == t {
			return true
		}
	}
	return false
}

// Label returns the display name used on calendar cards.
func (t SessionType) Label() string {
	switch t {
	case TypePart1:
		return "Part 1"
	case TypePart2:
		return "Part 2"
	case TypePart3:
		return "Part 3"
	case TypeVocab:
		return "Vocab"
	case TypeMock:
		return "Mock Test"
	case TypeReview:
		return "Review"
	}
	return string(t)
}

// Status is the lifecycle state of a study session.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusMissed    Status = "missed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusMissed:
		return true
	}
	return false
}

// StudySession is one scheduled practice day.
type StudySession struct {
	// ID identifies the session for list rendering only.
	ID       string      `json:"id"`
	Date     time.Time   `json:"date"`
	Duration int         `json:"duration"` // minutes
	Type     SessionType `json:"type"`
	Topic    string      `json:"topic"`

	// Status is always pending at generation. Only consumers change it.
	Status Status `json:"status"`
}

// Weekday returns the session's weekday name.
func (s StudySession) Weekday() DayOfWeek {
	return DayFromWeekday(s.Date.Weekday())
}

// StudyPlan is the generated calendar of sessions.
type StudyPlan struct {
	StartDate time.Time      `json:"startDate"`
	EndDate   time.Time      `json:"endDate"`
	Sessions  []StudySession `json:"sessions"`
}

// HorizonDays is the fixed length of a plan in calendar days.
const HorizonDays = 28
