package clients

import (
	"sync"
	"time"
)

// State is the circuit breaker state.
type State int

const (
	// StateClosed allows all requests through.
	StateClosed State = iota

	// StateOpen blocks all requests until the open timeout passes.
	StateOpen

	// StateHalfOpen lets a limited number of probes through to test recovery.
	StateHalfOpen
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// BreakerConfig configures the circuit breaker.
type BreakerConfig struct {
	// MaxFailures is the consecutive failure count that opens the circuit.
	MaxFailures int

	// Timeout is how long the circuit stays open before probing.
	Timeout time.Duration

	// HalfOpenLimit is both the probe concurrency cap and the consecutive
	// success count that closes the circuit again.
	HalfOpenLimit int
}

// CircuitBreaker blocks requests to a downstream that keeps failing, so a
// dead notifier daemon costs one failed call instead of a retry storm on
// every reconcile.
//
// Transitions: closed opens after MaxFailures consecutive failures; open goes
// half-open once Timeout passes; half-open closes after HalfOpenLimit
// consecutive successes and reopens on any failure.
type CircuitBreaker struct {
	mu          sync.RWMutex
	state       State
	failures    int
	successes   int
	probes      int
	lastFailure time.Time
	cfg         BreakerConfig

	onStateChange func(from, to State)

	// now is overridable for tests.
	now func() time.Time
}

// NewCircuitBreaker creates a circuit breaker in the closed state.
func NewCircuitBreaker(cfg BreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		state: StateClosed,
		cfg:   cfg,
		now:   time.Now,
	}
}

// OnStateChange registers a callback invoked on every state transition.
func (cb *CircuitBreaker) OnStateChange(fn func(from, to State)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.onStateChange = fn
}

// Allow reports whether a request may proceed. May move the circuit from
// open to half-open when the open timeout has passed.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		return true

	case StateOpen:
		if cb.now().Sub(cb.lastFailure) >= cb.cfg.Timeout {
			cb.transitionTo(StateHalfOpen)
			cb.probes = 1

			return true
		}

		return false

	case StateHalfOpen:
		if cb.probes >= cb.cfg.HalfOpenLimit {
			return false
		}

		cb.probes++

		return true

	default:
		return false
	}
}

// RecordSuccess records a successful request.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		cb.failures = 0

	case StateHalfOpen:
		cb.probes--
		cb.successes++

		if cb.successes >= cb.cfg.HalfOpenLimit {
			cb.transitionTo(StateClosed)
		}
	}
}

// RecordFailure records a failed request.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.lastFailure = cb.now()

	switch cb.state {
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.cfg.MaxFailures {
			cb.transitionTo(StateOpen)
		}

	case StateHalfOpen:
		cb.probes--
		cb.transitionTo(StateOpen)
	}
}

// State returns the current state.
func (cb *CircuitBreaker) State() State {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	return cb.state
}

// transitionTo changes state and resets counters. Caller holds the lock.
func (cb *CircuitBreaker) transitionTo(newState State) {
	if cb.state == newState {
		return
	}

	oldState := cb.state
	cb.state = newState
	cb.failures = 0
	cb.successes = 0

	if cb.onStateChange != nil {
		// Run outside the lock.
		go cb.onStateChange(oldState, newState)
	}
}
