// Package circuitbreaker guards calls to a dependency that may be down,
// failing fast once the dependency has proven itself unhealthy.
package circuitbreaker

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrOpen is returned while the breaker refuses calls.
var ErrOpen = errors.New("circuit breaker open")

// State is the breaker's position in its lifecycle.
type State uint8

const (
	// Closed lets calls through and counts failures.
	Closed State = iota
	// Open rejects calls until the cooldown elapses.
	Open
	// HalfOpen lets trial calls through to probe for recovery.
	HalfOpen
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	}
	return "unknown"
}

// Option configures a Breaker.
type Option func(*Breaker)

// WithMaxFailures sets how many consecutive failures trip the breaker.
func WithMaxFailures(n int) Option {
	return func(b *Breaker) { b.maxFailures = n }
}

// WithCooldown sets how long the breaker stays open before probing.
func WithCooldown(d time.Duration) Option {
	return func(b *Breaker) { b.cooldown = d }
}

// WithTrialCalls sets how many half-open successes close the breaker.
func WithTrialCalls(n int) Option {
	return func(b *Breaker) { b.trialCalls = n }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(b *Breaker) { b.now = now }
}

// Breaker is a named circuit breaker. The zero value is not usable,
// construct with New.
type Breaker struct {
	name        string
	maxFailures int
	cooldown    time.Duration
	trialCalls  int
	now         func() time.Time

	mu       sync.Mutex
	state    State
	failures int
	trials   int
	openedAt time.Time
}

// New creates a closed breaker. Defaults: 5 failures trip it, a 30s
// cooldown, 2 trial successes to close again.
func New(name string, opts ...Option) *Breaker {
	b := &Breaker{
		name:        name,
		maxFailures: 5,
		cooldown:    30 * time.Second,
		trialCalls:  2,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Do runs op unless the breaker is open, and feeds the outcome back
// into the breaker state. Returns ErrOpen without calling op while the
// cooldown is still running.
func (b *Breaker) Do(op func() error) error {
	if err := b.admit(); err != nil {
		return err
	}
	if err := op(); err != nil {
		b.fail()
		return err
	}
	b.succeed()
	return nil
}

func (b *Breaker) admit() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != Open {
		return nil
	}
	if b.now().Sub(b.openedAt) < b.cooldown {
		return ErrOpen
	}
	b.state = HalfOpen
	b.trials = 0
	log.Info().Str("breaker", b.name).Msg("Circuit breaker half-open, probing")
	return nil
}

func (b *Breaker) fail() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case Closed:
		b.failures++
		if b.failures < b.maxFailures {
			return
		}
	case HalfOpen:
		// A failed probe restarts the cooldown immediately.
	case Open:
		return
	}

	b.state = Open
	b.openedAt = b.now()
	log.Warn().
		Str("breaker", b.name).
		Int("failures", b.failures).
		Msg("Circuit breaker opened")
}

func (b *Breaker) succeed() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case Closed:
		b.failures = 0
	case HalfOpen:
		b.trials++
		if b.trials >= b.trialCalls {
			b.state = Closed
			b.failures = 0
			log.Info().Str("breaker", b.name).Msg("Circuit breaker closed after recovery")
		}
	}
}

// State returns the breaker's current state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Name returns the breaker's name.
func (b *Breaker) Name() string {
	return b.name
}

// Snapshot is a point-in-time view of the breaker, for health reporting.
type Snapshot struct {
	Name     string
	State    State
	Failures int
	OpenedAt time.Time
}

// Healthy reports whether the breaker is letting all calls through.
func (s Snapshot) Healthy() bool {
	return s.State == Closed
}

// Snapshot returns the breaker's current state and counters.
func (b *Breaker) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Snapshot{
		Name:     b.name,
		State:    b.state,
		Failures: b.failures,
		OpenedAt: b.openedAt,
	}
}
