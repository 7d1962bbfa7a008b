package practice

import (
	"context"
	"fmt"
	"time"
)

// RoundKind names a practice flow.
type RoundKind string

const (
	KindPart1  RoundKind = "part1"
	KindPart2  RoundKind = "part2"
	KindPart3  RoundKind = "part3"
	KindRandom RoundKind = "random"
)

// RandomTalkDurations are the speaking lengths offered for random talk, in seconds.
var RandomTalkDurations = []int{30, 60, 120}

// DefaultRandomTalkSeconds is preselected for random talk.
const DefaultRandomTalkSeconds = 60

// RandomTopics are the open prompts used for random talk.
var RandomTopics = []string{
	"Talk about your last vacation and what made it memorable.",
	"Describe a skill you would like to learn and why.",
	"What's your opinion on working from home?",
	"Talk about a book, movie, or TV show that influenced you.",
	"Describe your ideal weekend.",
	"What do you think about the role of technology in education?",
	"Talk about a person who inspires you.",
	"Describe a challenge you overcame recently.",
}

// Phase is one timed stage of a round.
type Phase struct {
	Name    string
	Mode    Mode
	Seconds int
	Records bool // the learner speaks during this phase
}

// Round is an ordered list of phases.
type Round struct {
	Kind   RoundKind
	Phases []Phase
}

// RoundFor builds the phases for kind. seconds only applies to random
// talk; zero picks DefaultRandomTalkSeconds. Part 3 is untimed and has no
// phases; it is driven by a Discussion instead.
func RoundFor(kind RoundKind, seconds int) (Round, error) {
	switch kind {
	case KindPart1:
		return Round{Kind: kind, Phases: []Phase{
			{Name: "Answer", Mode: Countdown, Seconds: 30, Records: true},
		}}, nil
	case KindPart2:
		return Round{Kind: kind, Phases: []Phase{
			{Name: "Preparation", Mode: Countdown, Seconds: 60},
			{Name: "Speaking", Mode: Stopwatch, Seconds: 120, Records: true},
		}}, nil
	case KindPart3:
		return Round{Kind: kind}, nil
	case KindRandom:
		if seconds == 0 {
			seconds = DefaultRandomTalkSeconds
		}
		if !validTalkDuration(seconds) {
			return Round{}, fmt.Errorf("random talk duration %ds must be one of %v", seconds, RandomTalkDurations)
		}
		return Round{Kind: kind, Phases: []Phase{
			{Name: "Talk", Mode: Countdown, Seconds: seconds, Records: true},
		}}, nil
	}
	return Round{}, fmt.Errorf("unknown round kind %q", kind)
}

func validTalkDuration(s int) bool {
	for _, d := range RandomTalkDurations {
		if d == s {
			return true
		}
	}
	return false
}

// RandomTopic picks one of RandomTopics.
func RandomTopic(r interface{ IntN(int) int }) string {
	return RandomTopics[r.IntN(len(RandomTopics))]
}

// PhaseResult reports how one phase went.
type PhaseResult struct {
	Phase   Phase
	Elapsed int           // timer seconds counted
	Spoken  time.Duration // zero for phases without recording
}

// Run plays every phase in order, ticking each phase's timer every
// interval. Recording phases start the recorder before the timer and stop
// it when the timer finishes. On cancellation the results gathered so far
// are returned with ctx.Err().
func (r Round) Run(ctx context.Context, rec *Recorder, interval time.Duration, onTick func(Phase, *Timer)) ([]PhaseResult, error) {
	results := make([]PhaseResult, 0, len(r.Phases))
	for _, ph := range r.Phases {
		if ph.Records {
			if err := rec.Start(); err != nil {
				return results, err
			}
		}

		timer := NewTimer(ph.Mode, ph.Seconds, nil)
		runErr := timer.Run(ctx, interval, func(t *Timer) {
			if onTick != nil {
				onTick(ph, t)
			}
		})

		res := PhaseResult{Phase: ph, Elapsed: timer.Elapsed()}
		if ph.Records {
			if err := rec.Stop(); err != nil {
				return results, err
			}
			res.Spoken = rec.Elapsed()
		}
		results = append(results, res)

		if runErr != nil {
			return results, runErr
		}
	}
	return results, nil
}
