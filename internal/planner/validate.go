package planner

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// ValidationError lists every problem found in an Availability.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid availability: %s", strings.Join(e.Problems, "; "))
}

// Validate checks the setup-form constraints the generator assumes but
// does not enforce. It returns *ValidationError or nil.
func (a Availability) Validate() error {
	var problems []string

	if len(a.Days) == 0 {
		problems = append(problems, "at least one day is required")
	}
	seen := make(map[DayOfWeek]bool, len(a.Days))
	for _, d := range a.Days {
		if !d.Valid() {
			problems = append(problems, fmt.Sprintf("unknown day %q", d))
			continue
		}
		if seen[d] {
			problems = append(problems, fmt.Sprintf("duplicate day %q", d))
		}
		seen[d] = true
	}

	if !validDuration(a.DurationMinutes) {
		problems = append(problems, fmt.Sprintf("duration %d must be one of %v", a.DurationMinutes, DurationChoices))
	}

	if a.TargetBand < MinTargetBand || a.TargetBand > MaxTargetBand {
		problems = append(problems, fmt.Sprintf("target band %.1f outside %.1f-%.1f", a.TargetBand, MinTargetBand, MaxTargetBand))
	} else if math.Mod(a.TargetBand*2, 1) != 0 {
		problems = append(problems, fmt.Sprintf("target band %v must be a multiple of 0.5", a.TargetBand))
	}

	for i, w := range a.Weaknesses {
		if strings.TrimSpace(w) == "" {
			problems = append(problems, fmt.Sprintf("weakness %d is blank", i))
		}
	}

	slotDays := make([]DayOfWeek, 0, len(a.TimeSlots))
	for d := range a.TimeSlots {
		slotDays = append(slotDays, d)
	}
	sort.Slice(slotDays, func(i, j int) bool { return slotDays[i] < slotDays[j] })
	for _, d := range slotDays {
		slot := a.TimeSlots[d]
		if !seen[d] {
			problems = append(problems, fmt.Sprintf("time slot for %q, which is not an available day", d))
		}
		if !validClock(slot) {
			problems = append(problems, fmt.Sprintf("time slot %q for %s must be HH:MM", slot, d))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func validDuration(m int) bool {
	for _, d := range DurationChoices {
		if d == m {
			return true
		}
	}
	return false
}

// validClock accepts 24-hour "HH:MM".
func validClock(s string) bool {
	var h, m int
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	if _, err := fmt.Sscanf(s, "%02d:%02d", &h, &m); err != nil {
		return false
	}
	return h >= 0 && h < 24 && m >= 0 && m < 60
}
