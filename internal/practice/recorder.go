package practice

import (
	"fmt"
	"time"
)

// RecorderState is the state of a speaking attempt.
type RecorderState int

const (
	RecorderIdle      RecorderState = iota // nothing recorded yet
	RecorderRecording                      // learner is speaking
	RecorderDone                           // attempt finished, feedback can be shown
)

func (s RecorderState) String() string {
	switch s {
	case RecorderRecording:
		return "recording"
	case RecorderDone:
		return "done"
	}
	return "idle"
}

// Recorder tracks a single speaking attempt. No audio is captured; it
// only records when the learner started and stopped talking.
type Recorder struct {
	state     RecorderState
	now       func() time.Time
	startedAt time.Time
	stoppedAt time.Time
}

// NewRecorder creates an idle recorder. A nil clock means time.Now.
func NewRecorder(clock func() time.Time) *Recorder {
	if clock == nil {
		clock = time.Now
	}
	return &Recorder{now: clock}
}

// Start begins an attempt. Starting from done discards the previous attempt.
func (r *Recorder) Start() error {
	if r.state == RecorderRecording {
		return fmt.Errorf("%w: already recording", ErrInvalidTransition)
	}
	r.state = RecorderRecording
	r.startedAt = r.now()
	r.stoppedAt = time.Time{}
	return nil
}

// Stop ends the current attempt.
func (r *Recorder) Stop() error {
	if r.state != RecorderRecording {
		return fmt.Errorf("%w: stop while %s", ErrInvalidTransition, r.state)
	}
	r.state = RecorderDone
	r.stoppedAt = r.now()
	return nil
}

// Toggle starts when not recording and stops when recording, like the
// record button.
func (r *Recorder) Toggle() error {
	if r.state == RecorderRecording {
		return r.Stop()
	}
	return r.Start()
}

// Reset discards any attempt and returns to idle.
func (r *Recorder) Reset() {
	r.state = RecorderIdle
	r.startedAt = time.Time{}
	r.stoppedAt = time.Time{}
}

// State returns the current state.
func (r *Recorder) State() RecorderState { return r.state }

// Elapsed is how long the learner has spoken in the current attempt.
func (r *Recorder) Elapsed() time.Duration {
	switch r.state {
	case RecorderRecording:
		return r.now().Sub(r.startedAt)
	case RecorderDone:
		return r.stoppedAt.Sub(r.startedAt)
	}
	return 0
}
