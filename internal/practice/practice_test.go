package practice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimer_Countdown(t *testing.T) {
	completed := 0
	tm := NewTimer(Countdown, 12, func() { completed++ })

	assert.Equal(t, "00:12", tm.Display())
	assert.Equal(t, TimerPaused, tm.State())

	tm.Tick() // paused timers ignore ticks
	assert.Equal(t, 0, tm.Elapsed())

	require.NoError(t, tm.Start())
	tm.Tick()
	assert.Equal(t, 11, tm.Value())
	assert.False(t, tm.IsLow())
	tm.Tick()
	assert.True(t, tm.IsLow())
	assert.InDelta(t, 10.0/12*100, tm.Progress(), 1e-9)

	for i := 0; i < 20; i++ {
		tm.Tick()
	}
	assert.Equal(t, TimerFinished, tm.State())
	assert.Equal(t, 0, tm.Value())
	assert.Equal(t, "00:00", tm.Display())
	assert.Equal(t, 1, completed)
}

func TestTimer_Stopwatch(t *testing.T) {
	tm := NewTimer(Stopwatch, 120, nil)
	require.NoError(t, tm.Start())
	for i := 0; i < 75; i++ {
		tm.Tick()
	}
	assert.Equal(t, "01:15", tm.Display())
	assert.Equal(t, 45, tm.Remaining())
	assert.False(t, tm.IsLow())
	assert.InDelta(t, 62.5, tm.Progress(), 1e-9)
}

func TestTimer_Transitions(t *testing.T) {
	tm := NewTimer(Countdown, 2, nil)

	err := tm.Pause()
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	require.NoError(t, tm.Start())
	require.NoError(t, tm.Start())
	tm.Tick()
	require.NoError(t, tm.Pause())
	tm.Tick()
	assert.Equal(t, 1, tm.Elapsed())

	require.NoError(t, tm.Start())
	tm.Tick()
	assert.Equal(t, TimerFinished, tm.State())
	assert.ErrorIs(t, tm.Start(), ErrInvalidTransition)

	tm.Reset()
	assert.Equal(t, TimerPaused, tm.State())
	assert.Equal(t, "00:02", tm.Display())
}

func TestTimer_RunFinishes(t *testing.T) {
	var seen []int
	tm := NewTimer(Countdown, 3, nil)
	err := tm.Run(context.Background(), time.Millisecond, func(tm *Timer) {
		seen = append(seen, tm.Value())
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1, 0}, seen)
	assert.Equal(t, TimerFinished, tm.State())
}

func TestTimer_RunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	tm := NewTimer(Countdown, 1000, nil)

	err := tm.Run(ctx, time.Millisecond, func(tm *Timer) {
		if tm.Elapsed() == 2 {
			cancel()
		}
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, TimerPaused, tm.State())
	assert.GreaterOrEqual(t, tm.Elapsed(), 2)
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestRecorder(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)}
	rec := NewRecorder(clock.now)

	assert.Equal(t, RecorderIdle, rec.State())
	assert.ErrorIs(t, rec.Stop(), ErrInvalidTransition)

	require.NoError(t, rec.Toggle())
	assert.Equal(t, RecorderRecording, rec.State())
	assert.ErrorIs(t, rec.Start(), ErrInvalidTransition)

	clock.t = clock.t.Add(42 * time.Second)
	assert.Equal(t, 42*time.Second, rec.Elapsed())

	require.NoError(t, rec.Toggle())
	assert.Equal(t, RecorderDone, rec.State())
	clock.t = clock.t.Add(time.Minute)
	assert.Equal(t, 42*time.Second, rec.Elapsed())

	// Retake.
	require.NoError(t, rec.Start())
	assert.Zero(t, rec.Elapsed())

	rec.Reset()
	assert.Equal(t, RecorderIdle, rec.State())
	assert.Zero(t, rec.Elapsed())
}

func TestRoundFor(t *testing.T) {
	tests := []struct {
		name    string
		kind    RoundKind
		seconds int
		phases  int
		wantErr bool
	}{
		{"part1", KindPart1, 0, 1, false},
		{"part2", KindPart2, 0, 2, false},
		{"part3 untimed", KindPart3, 0, 0, false},
		{"random default", KindRandom, 0, 1, false},
		{"random two minutes", KindRandom, 120, 1, false},
		{"random odd length", KindRandom, 45, 0, true},
		{"unknown", RoundKind("part9"), 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := RoundFor(tt.kind, tt.seconds)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, r.Phases, tt.phases)
		})
	}

	r, _ := RoundFor(KindRandom, 0)
	assert.Equal(t, DefaultRandomTalkSeconds, r.Phases[0].Seconds)

	r, _ = RoundFor(KindPart2, 0)
	assert.Equal(t, Countdown, r.Phases[0].Mode)
	assert.False(t, r.Phases[0].Records)
	assert.Equal(t, Stopwatch, r.Phases[1].Mode)
	assert.Equal(t, 120, r.Phases[1].Seconds)
}

func TestRound_Run(t *testing.T) {
	round := Round{Kind: KindPart2, Phases: []Phase{
		{Name: "Preparation", Mode: Countdown, Seconds: 2},
		{Name: "Speaking", Mode: Stopwatch, Seconds: 3, Records: true},
	}}
	rec := NewRecorder(nil)

	ticks := map[string]int{}
	results, err := round.Run(context.Background(), rec, time.Millisecond, func(ph Phase, _ *Timer) {
		ticks[ph.Name]++
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, 2, ticks["Preparation"])
	assert.Equal(t, 3, ticks["Speaking"])
	assert.Zero(t, results[0].Spoken)
	assert.Equal(t, 3, results[1].Elapsed)
	assert.Positive(t, results[1].Spoken)
	assert.Equal(t, RecorderDone, rec.State())
}

func TestRound_RunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	round, err := RoundFor(KindPart1, 0)
	require.NoError(t, err)
	rec := NewRecorder(nil)

	results, err := round.Run(ctx, rec, time.Millisecond, func(_ Phase, tm *Timer) {
		if tm.Elapsed() == 1 {
			cancel()
		}
	})
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 1)
	assert.Equal(t, RecorderDone, rec.State())
}

type fixedIndex int

func (f fixedIndex) IntN(n int) int { return int(f) % n }

func TestRandomTopic(t *testing.T) {
	assert.Equal(t, RandomTopics[3], RandomTopic(fixedIndex(3)))
	assert.Equal(t, RandomTopics[0], RandomTopic(fixedIndex(len(RandomTopics))))
}
