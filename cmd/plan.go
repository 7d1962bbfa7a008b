package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/speakplan/internal/planner"
	"github.com/abhisek/speakplan/internal/ui/calendar"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a four-week speaking plan",
	Example: `  speakplan plan --days Mon,Wed,Sat --duration 30 --band 7 --weakness Fluency
  speakplan plan --days Tue,Thu --slot Tue=07:30 --seed 42 --json`,
	RunE: runPlan,
}

func init() {
	addPlanFlags(planCmd)
}

func addPlanFlags(c *cobra.Command) {
	f := c.Flags()
	f.StringSlice("days", nil, "Days you can practice (Mon,Tue,... or full names)")
	f.Int("duration", planner.DefaultDuration, "Session length in minutes (15, 30, 45 or 60)")
	f.Float64("band", planner.DefaultTargetBand, "Target band score (5.0-9.0 in 0.5 steps)")
	f.StringSlice("weakness", nil, "Areas to focus on, e.g. Fluency,Grammar")
	f.StringSlice("slot", nil, "Preferred time per day, e.g. Mon=08:00")
	f.Uint64("seed", 0, "Seed for reproducible topics (0 picks a random seed)")
	f.Int("mock-cap", 0, "Maximum mock tests in the plan (0 = no cap)")
	f.StringSlice("protect", nil, "Session types never replaced by a weakness focus, e.g. mock,review")
	f.Bool("rotation-skips-mocks", false, "Keep mock tests out of the session rotation count")
	f.Bool("json", false, "Print the plan as JSON")

	c.MarkFlagRequired("days")
}

func runPlan(cmd *cobra.Command, args []string) error {
	a, err := availabilityFromFlags(cmd)
	if err != nil {
		return err
	}
	if err := a.Validate(); err != nil {
		var verr *planner.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("invalid setup:\n  - %s", strings.Join(verr.Problems, "\n  - "))
		}
		return err
	}

	opts, err := generatorOptions(cmd)
	if err != nil {
		return err
	}

	now := time.Now()
	plan := planner.Generate(a, now, opts...)

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"availability": a,
			"plan":         plan,
		})
	}

	styled, width := terminalStyle(cmd)
	r := calendar.Renderer{Width: width, Styled: styled, Now: now}
	fmt.Fprint(out, r.Plan(a, plan))
	return nil
}

func availabilityFromFlags(cmd *cobra.Command) (planner.Availability, error) {
	f := cmd.Flags()
	rawDays, _ := f.GetStringSlice("days")
	duration, _ := f.GetInt("duration")
	band, _ := f.GetFloat64("band")
	weaknesses, _ := f.GetStringSlice("weakness")
	rawSlots, _ := f.GetStringSlice("slot")

	days, err := parseDays(rawDays)
	if err != nil {
		return planner.Availability{}, err
	}
	slots, err := parseSlots(rawSlots)
	if err != nil {
		return planner.Availability{}, err
	}
	if weaknesses == nil {
		weaknesses = []string{}
	}

	return planner.Availability{
		Days:            days,
		TimeSlots:       slots,
		DurationMinutes: duration,
		TargetBand:      band,
		Weaknesses:      weaknesses,
	}, nil
}

func generatorOptions(cmd *cobra.Command) ([]planner.Option, error) {
	f := cmd.Flags()
	var opts []planner.Option

	if seed, _ := f.GetUint64("seed"); seed != 0 {
		opts = append(opts, planner.WithSeed(seed))
	}
	if capN, _ := f.GetInt("mock-cap"); capN != 0 {
		if capN < 0 {
			return nil, fmt.Errorf("--mock-cap must not be negative")
		}
		opts = append(opts, planner.WithMockCap(capN))
	}
	if skip, _ := f.GetBool("rotation-skips-mocks"); skip {
		opts = append(opts, planner.WithRotationSkipsMocks())
	}

	protect, _ := f.GetStringSlice("protect")
	if len(protect) > 0 {
		types := make([]planner.SessionType, 0, len(protect))
		for _, p := range protect {
			t := planner.SessionType(strings.ToLower(strings.TrimSpace(p)))
			if !t.Valid() {
				return nil, fmt.Errorf("--protect: unknown session type %q", p)
			}
			types = append(types, t)
		}
		opts = append(opts, planner.WithProtectedTypes(types...))
	}
	return opts, nil
}

func parseDays(raw []string) ([]planner.DayOfWeek, error) {
	days := make([]planner.DayOfWeek, 0, len(raw))
	for _, s := range raw {
		d, err := planner.ParseDay(s)
		if err != nil {
			return nil, fmt.Errorf("--days: %w", err)
		}
		days = append(days, d)
	}
	return days, nil
}

// parseSlots reads "Day=HH:MM" pairs. Clock format is checked later by
// Availability.Validate.
func parseSlots(raw []string) (map[planner.DayOfWeek]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	slots := make(map[planner.DayOfWeek]string, len(raw))
	for _, s := range raw {
		day, clock, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("--slot %q: want Day=HH:MM", s)
		}
		d, err := planner.ParseDay(day)
		if err != nil {
			return nil, fmt.Errorf("--slot: %w", err)
		}
		slots[d] = strings.TrimSpace(clock)
	}
	return slots, nil
}
