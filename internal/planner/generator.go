package planner

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// WeaknessOverrideProbability is the chance that a session's topic is
// replaced with a focus reminder for one of the learner's weaknesses.
const WeaknessOverrideProbability = 0.3

// DefaultMockCap is the suggested mock-test limit for a 4-week plan.
const DefaultMockCap = 4

// rotation is the cycle of non-mock session types.
var rotation = [...]SessionType{TypePart1, TypeVocab, TypePart2, TypePart3, TypeReview}

// Rand is the random source used for topic draws and the weakness roll.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Option configures a single Generate call.
type Option func(*genConfig)

type genConfig struct {
	rng       Rand
	newID     func() string
	mockCap   int
	protected map[SessionType]bool

	rotationSkipsMocks bool
}

// WithRand injects the random source.
func WithRand(r Rand) Option {
	return func(c *genConfig) { c.rng = r }
}

// WithSeed uses a PCG source seeded with seed, making topics reproducible.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed)))
}

// WithIDFunc overrides how session IDs are minted.
func WithIDFunc(fn func() string) Option {
	return func(c *genConfig) { c.newID = fn }
}

// WithMockCap limits the number of mock-test sessions. Once the cap is
// reached, Saturdays join the regular rotation. n <= 0 means no cap.
func WithMockCap(n int) Option {
	return func(c *genConfig) { c.mockCap = n }
}

// WithRotationSkipsMocks keys the rotation on non-mock sessions only, so
// any five consecutive non-mock sessions cover all five types even when
// Saturday is selected. By default every placed session, mock tests
// included, advances the rotation.
func WithRotationSkipsMocks() Option {
	return func(c *genConfig) { c.rotationSkipsMocks = true }
}

// WithProtectedTypes exempts the given session types from the weakness
// override, so their topic always matches their type.
func WithProtectedTypes(types ...SessionType) Option {
	return func(c *genConfig) {
		if c.protected == nil {
			c.protected = make(map[SessionType]bool)
		}
		for _, t := range types {
			c.protected[t] = true
		}
	}
}

// Generate builds a plan covering HorizonDays calendar days from now,
// inclusive at both ends, with one session per date whose weekday is in
// a.Days.
//
// Saturdays become mock tests. Every other day takes the next type in the
// rotation part1, vocab, part2, part3, review, indexed by how many sessions
// have been placed so far, mock tests included. Without Saturday any five
// consecutive sessions cover all five types; WithRotationSkipsMocks extends
// that to plans with Saturday. Topics
// come from the type's pool, and when the learner listed weaknesses each
// session's topic has a 30% chance of being replaced by
// "Focus on: <weakness>".
//
// Random draws happen in a fixed order per placed session: topic index
// (pool types only), override roll, weakness index (only when the roll
// hits). Generate never fails and does not validate a.
func Generate(a Availability, now time.Time, opts ...Option) *StudyPlan {
	cfg := genConfig{
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	days := make(map[DayOfWeek]bool, len(a.Days))
	for _, d := range a.Days {
		days[d] = true
	}

	plan := &StudyPlan{
		StartDate: now,
		EndDate:   now.AddDate(0, 0, HorizonDays),
		Sessions:  []StudySession{},
	}

	mocks, rotated := 0, 0
	for d := now; !d.After(plan.EndDate); d = d.AddDate(0, 0, 1) {
		day := DayFromWeekday(d.Weekday())
		if !days[day] {
			continue
		}

		var sessionType SessionType
		var topic string

		if day == Saturday && (cfg.mockCap <= 0 || mocks < cfg.mockCap) {
			sessionType = TypeMock
			topic = MockTopic
			mocks++
		} else {
			idx := len(plan.Sessions)
			if cfg.rotationSkipsMocks {
				idx = rotated
			}
			sessionType = rotation[idx%len(rotation)]
			topic = pickTopic(sessionType, cfg.rng)
			rotated++
		}

		if len(a.Weaknesses) > 0 && !cfg.protected[sessionType] &&
			cfg.rng.Float64() < WeaknessOverrideProbability {
			topic = FocusPrefix + a.Weaknesses[cfg.rng.IntN(len(a.Weaknesses))]
		}

		plan.Sessions = append(plan.Sessions, StudySession{
			ID:       cfg.newID(),
			Date:     d,
			Duration: a.DurationMinutes,
			Type:     sessionType,
			Topic:    topic,
			Status:   StatusPending,
		})
	}

	return plan
}

// pickTopic draws a topic for a rotating session type.
func pickTopic(t SessionType, r Rand) string {
	if t == TypeReview {
		return ReviewTopic
	}
	pool := TopicPools[t]
	if len(pool) == 0 {
		return t.Label()
	}
	return pool[r.IntN(len(pool))]
}
