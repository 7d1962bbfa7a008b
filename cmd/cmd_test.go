package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/speakplan/internal/planner"
	"github.com/abhisek/speakplan/internal/practice"
	"github.com/abhisek/speakplan/internal/ui/layout"
)

func TestParseDays(t *testing.T) {
	days, err := parseDays([]string{"Mon", "wednesday", "SAT"})
	require.NoError(t, err)
	assert.Equal(t, []planner.DayOfWeek{planner.Monday, planner.Wednesday, planner.Saturday}, days)

	_, err = parseDays([]string{"Funday"})
	assert.Error(t, err)
}

func TestParseSlots(t *testing.T) {
	slots, err := parseSlots([]string{"Mon=08:00", "fri= 19:30"})
	require.NoError(t, err)
	assert.Equal(t, map[planner.DayOfWeek]string{
		planner.Monday: "08:00",
		planner.Friday: "19:30",
	}, slots)

	slots, err = parseSlots(nil)
	require.NoError(t, err)
	assert.Nil(t, slots)

	_, err = parseSlots([]string{"Mon 08:00"})
	assert.Error(t, err)
}

func TestDisplayVersion(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"(devel)", "(devel)"},
		{"1.2", "v1.2.0"},
		{"v0.3.1", "v0.3.1"},
		{"v1.0.0+build.5", "v1.0.0"},
		{"nightly", "nightly"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, displayVersion(tt.in), tt.in)
	}
}

func newPlanCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "plan"}
	addPlanFlags(c)
	require.NoError(t, c.ParseFlags(args))
	return c
}

func TestGeneratorOptions(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    int
		wantErr string
	}{
		{"defaults", nil, 0, ""},
		{"seed", []string{"--seed", "9"}, 1, ""},
		{"mock cap", []string{"--mock-cap", "2"}, 1, ""},
		{"negative mock cap", []string{"--mock-cap", "-1"}, 0, "--mock-cap"},
		{"rotation flag", []string{"--rotation-skips-mocks"}, 1, ""},
		{"protect", []string{"--protect", "Mock, review"}, 1, ""},
		{"unknown protect", []string{"--protect", "mock,karaoke"}, 0, `unknown session type "karaoke"`},
		{"all", []string{"--seed", "9", "--mock-cap", "3", "--rotation-skips-mocks", "--protect", "mock"}, 4, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := generatorOptions(newPlanCmd(t, tt.args...))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, opts, tt.want)
		})
	}
}

func TestGeneratorOptions_RotationFlag(t *testing.T) {
	a := planner.Availability{
		Days:            []planner.DayOfWeek{planner.Saturday, planner.Sunday},
		DurationMinutes: 30,
		TargetBand:      7,
		Weaknesses:      []string{},
	}
	now := time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)
	types := func(p *planner.StudyPlan) []planner.SessionType {
		var out []planner.SessionType
		for _, s := range p.Sessions {
			out = append(out, s.Type)
		}
		return out
	}

	for _, skip := range []bool{false, true} {
		args := []string{"--seed", "5"}
		want := []planner.Option{planner.WithSeed(5)}
		if skip {
			args = append(args, "--rotation-skips-mocks")
			want = append(want, planner.WithRotationSkipsMocks())
		}
		opts, err := generatorOptions(newPlanCmd(t, args...))
		require.NoError(t, err)
		assert.Equal(t, types(planner.Generate(a, now, want...)), types(planner.Generate(a, now, opts...)), "skip=%v", skip)
	}

	plain, err := generatorOptions(newPlanCmd(t))
	require.NoError(t, err)
	skipping, err := generatorOptions(newPlanCmd(t, "--rotation-skips-mocks"))
	require.NoError(t, err)
	assert.NotEqual(t, types(planner.Generate(a, now, plain...)), types(planner.Generate(a, now, skipping...)))
}

func TestRunPlan_JSON(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"plan", "--days", "Mon,Sat", "--duration", "45", "--seed", "3", "--json"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		planCmd.Flags().Set("json", "false")
	})

	require.NoError(t, rootCmd.Execute())

	var out struct {
		Availability planner.Availability `json:"availability"`
		Plan         planner.StudyPlan    `json:"plan"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, []planner.DayOfWeek{planner.Monday, planner.Saturday}, out.Availability.Days)
	assert.Equal(t, 45, out.Availability.DurationMinutes)
	require.NotEmpty(t, out.Plan.Sessions)
	assert.Equal(t, planner.HorizonDays, int(out.Plan.EndDate.Sub(out.Plan.StartDate).Hours()/24+0.5))
	for _, s := range out.Plan.Sessions {
		assert.Contains(t, []planner.DayOfWeek{planner.Monday, planner.Saturday}, s.Weekday())
		assert.Equal(t, 45, s.Duration)
		assert.Equal(t, planner.StatusPending, s.Status)
	}
}

func TestRunDiscussion(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		tally     string
		contains  []string
		lastShown int
	}{
		{"quit straight away", "q\n", "0 / 5", nil, 1},
		{"answer two", "\n\nn\n\n\nq\n", "2 / 5", []string{"● REC", "Answered in"}, 2},
		{"first question bound", "p\n", "0 / 5", []string{"Already on the first question."}, 1},
		{"moving drops recording", "\nn\n", "0 / 5", nil, 2},
		{"unknown command", "skip\n", "0 / 5", []string{"Enter toggles recording"}, 1},
		{"last question bound", "n\nn\nn\nn\nn\n", "0 / 5", []string{"That was the last question."}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, runDiscussion(strings.NewReader(tt.input), &out, layout.Painter(false)))

			got := out.String()
			assert.Contains(t, got, "Part 3 · Discussion · "+practice.DiscussionTopic)
			assert.Contains(t, got, "Questions answered "+tt.tally)
			assert.Contains(t, got, "Question 1 of 5")
			assert.Contains(t, got, practice.DiscussionQuestions[tt.lastShown-1])
			for _, c := range tt.contains {
				assert.Contains(t, got, c)
			}
		})
	}
}
