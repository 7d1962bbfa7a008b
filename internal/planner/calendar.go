package planner

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrSessionNotFound is returned when no session has the given ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidStatus is returned for a status outside pending/completed/missed.
	ErrInvalidStatus = errors.New("invalid session status")
)

// Week is one Monday-to-Sunday row of the calendar.
type Week struct {
	Start time.Time        `json:"start"`
	Days  [7]*StudySession `json:"days"` // Monday first; nil when nothing is scheduled
}

// Progress summarizes how far the learner is through a plan.
type Progress struct {
	Total            int                 `json:"total"`
	Pending          int                 `json:"pending"`
	Completed        int                 `json:"completed"`
	Missed           int                 `json:"missed"`
	ByType           map[SessionType]int `json:"byType"`
	PlannedMinutes   int                 `json:"plannedMinutes"`
	CompletedMinutes int                 `json:"completedMinutes"`
	CompletionRate   float64             `json:"completionRate"` // completed / total, 0 for an empty plan
}

// SameDay reports whether a and b fall on the same calendar date in a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the Monday on or before t.
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return StartOfDay(t).AddDate(0, 0, -offset)
}

// SessionOn returns the session scheduled on date's calendar day.
func (p *StudyPlan) SessionOn(date time.Time) (*StudySession, bool) {
	for i := range p.Sessions {
		if SameDay(p.Sessions[i].Date, date) {
			return &p.Sessions[i], true
		}
	}
	return nil, false
}

// Session returns the session with the given ID.
func (p *StudyPlan) Session(id string) (*StudySession, bool) {
	for i := range p.Sessions {
		if p.Sessions[i].ID == id {
			return &p.Sessions[i], true
		}
	}
	return nil, false
}

// Weeks groups the plan into Monday-start weeks spanning StartDate to EndDate.
func (p *StudyPlan) Weeks() []Week {
	var weeks []Week
	last := StartOfDay(p.EndDate)
	for start := StartOfWeek(p.StartDate); !start.After(last); start = start.AddDate(0, 0, 7) {
		w := Week{Start: start}
		for i := range w.Days {
			if s, ok := p.SessionOn(start.AddDate(0, 0, i)); ok {
				w.Days[i] = s
			}
		}
		weeks = append(weeks, w)
	}
	return weeks
}

// Upcoming returns up to n sessions dated on or after from's calendar day.
func (p *StudyPlan) Upcoming(from time.Time, n int) []StudySession {
	day := StartOfDay(from)
	out := make([]StudySession, 0, n)
	for _, s := range p.Sessions {
		if len(out) >= n {
			break
		}
		if StartOfDay(s.Date.In(from.Location())).Before(day) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// SetStatus records a consumer-driven status change.
func (p *StudyPlan) SetStatus(id string, status Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	s, ok := p.Session(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	s.Status = status
	return nil
}

// Progress tallies sessions by status and type.
func (p *StudyPlan) Progress() Progress {
	pr := Progress{ByType: make(map[SessionType]int)}
	for _, s := range p.Sessions {
		pr.Total++
		pr.ByType[s.Type]++
		pr.PlannedMinutes += s.Duration
		switch s.Status {
		case StatusCompleted:
			pr.Completed++
			pr.CompletedMinutes += s.Duration
		case StatusMissed:
			pr.Missed++
		default:
			pr.Pending++
		}
	}
	if pr.Total > 0 {
		pr.CompletionRate = float64(pr.Completed) / float64(pr.Total)
	}
	return pr
}
