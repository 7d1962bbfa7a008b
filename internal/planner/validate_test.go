package planner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAvailability() Availability {
	return Availability{
		Days:            []DayOfWeek{Monday, Wednesday, Saturday},
		TimeSlots:       map[DayOfWeek]string{Monday: "07:30", Saturday: "10:00"},
		DurationMinutes: 30,
		TargetBand:      7.0,
		Weaknesses:      []string{"Fluency"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(a *Availability)
		problem string
	}{
		{"valid", func(a *Availability) {}, ""},
		{"no weaknesses", func(a *Availability) { a.Weaknesses = nil }, ""},
		{"no days", func(a *Availability) { a.Days = nil; a.TimeSlots = nil }, "at least one day"},
		{"unknown day", func(a *Availability) { a.Days = append(a.Days, "Funday") }, `unknown day "Funday"`},
		{"duplicate day", func(a *Availability) { a.Days = append(a.Days, Monday) }, `duplicate day "Monday"`},
		{"bad duration", func(a *Availability) { a.DurationMinutes = 20 }, "duration 20"},
		{"band too low", func(a *Availability) { a.TargetBand = 4.5 }, "target band 4.5 outside"},
		{"band too high", func(a *Availability) { a.TargetBand = 9.5 }, "outside"},
		{"band off step", func(a *Availability) { a.TargetBand = 6.25 }, "multiple of 0.5"},
		{"band max", func(a *Availability) { a.TargetBand = 9 }, ""},
		{"blank weakness", func(a *Availability) { a.Weaknesses = []string{"Grammar", "  "} }, "weakness 1 is blank"},
		{"slot for unavailable day", func(a *Availability) { a.TimeSlots[Friday] = "09:00" }, "not an available day"},
		{"slot not a clock", func(a *Availability) { a.TimeSlots[Monday] = "7am" }, "must be HH:MM"},
		{"slot out of range", func(a *Availability) { a.TimeSlots[Monday] = "25:00" }, "must be HH:MM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAvailability()
			tt.mutate(&a)
			err := a.Validate()
			if tt.problem == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Contains(t, ve.Error(), tt.problem)
		})
	}
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	a := Availability{Days: []DayOfWeek{"Someday"}, DurationMinutes: 90, TargetBand: 3}
	err := a.Validate()

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Problems, 3)
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		in      string
		want    DayOfWeek
		wantErr bool
	}{
		{"Monday", Monday, false},
		{"monday", Monday, false},
		{"Tue", Tuesday, false},
		{" sat ", Saturday, false},
		{"thurs", Thursday, false},
		{"Su", "", true},
		{"noday", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDay(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDayOfWeek_Weekday(t *testing.T) {
	for _, d := range AllDays {
		assert.Equal(t, d, DayFromWeekday(d.Weekday()))
	}
	assert.False(t, DayOfWeek("Caturday").Valid())
}
