package practice

import (
	"fmt"
	"time"
)

// DiscussionTopic is the theme of the built-in Part 3 question set.
const DiscussionTopic = "Tourism & Travel"

// DiscussionQuestions are the built-in Part 3 follow-up questions.
var DiscussionQuestions = []string{
	"Why do you think some places become popular tourist destinations?",
	"How has tourism changed in your country over the years?",
	"Do you think tourism has more positive or negative effects on local communities?",
	"What role does social media play in promoting travel destinations?",
	"How might tourism change in the future with technology advancements?",
}

// Discussion is an untimed Part 3 round. The learner moves back and forth
// through a fixed list of questions; stopping a recording marks the
// current question answered.
type Discussion struct {
	Topic     string
	Questions []string

	rec      *Recorder
	current  int
	answered map[int]time.Duration
}

// NewDiscussion starts on the first question. A nil recorder gets a
// fresh one on the wall clock.
func NewDiscussion(topic string, questions []string, rec *Recorder) (*Discussion, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("discussion %q has no questions", topic)
	}
	if rec == nil {
		rec = NewRecorder(nil)
	}
	return &Discussion{
		Topic:     topic,
		Questions: questions,
		rec:       rec,
		answered:  make(map[int]time.Duration),
	}, nil
}

// Current returns the index and text of the question being discussed.
func (d *Discussion) Current() (int, string) {
	return d.current, d.Questions[d.current]
}

// Next moves to the following question. It reports false on the last one.
func (d *Discussion) Next() bool {
	if d.current >= len(d.Questions)-1 {
		return false
	}
	d.move(d.current + 1)
	return true
}

// Previous moves back one question. It reports false on the first one.
func (d *Discussion) Previous() bool {
	if d.current == 0 {
		return false
	}
	d.move(d.current - 1)
	return true
}

// move abandons an unfinished recording so it never counts as an answer.
func (d *Discussion) move(i int) {
	if d.rec.State() == RecorderRecording {
		d.rec.Reset()
	}
	d.current = i
}

// Toggle starts or stops a recording for the current question. Stopping
// marks the question answered and keeps the longest attempt. It reports
// whether a recording is now running.
func (d *Discussion) Toggle() (bool, error) {
	if err := d.rec.Toggle(); err != nil {
		return false, err
	}
	if d.rec.State() == RecorderRecording {
		return true, nil
	}
	if spoken := d.rec.Elapsed(); spoken >= d.answered[d.current] {
		d.answered[d.current] = spoken
	}
	return false, nil
}

// Recording reports whether the learner is speaking right now.
func (d *Discussion) Recording() bool {
	return d.rec.State() == RecorderRecording
}

// IsAnswered reports whether question i has at least one finished recording.
func (d *Discussion) IsAnswered(i int) bool {
	_, ok := d.answered[i]
	return ok
}

// Spoken is the longest finished attempt on question i.
func (d *Discussion) Spoken(i int) time.Duration {
	return d.answered[i]
}

// Answered counts questions with a finished recording.
func (d *Discussion) Answered() int { return len(d.answered) }

// Total is the number of questions.
func (d *Discussion) Total() int { return len(d.Questions) }

// Tally renders the answered count as "2 / 5".
func (d *Discussion) Tally() string {
	return fmt.Sprintf("%d / %d", d.Answered(), d.Total())
}
