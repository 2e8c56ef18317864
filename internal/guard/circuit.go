// Package guard protects the request path from slow or failing
// collaborators that are not required for a write to succeed.
package guard

import (
	"fmt"
	"sync"
	"time"
)

// CircuitState represents the state of a circuit breaker.
type CircuitState int

const (
	CircuitClosed CircuitState = iota
	CircuitOpen
	CircuitHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half_open"
	default:
		return "closed"
	}
}

// Result is the outcome of a Check.
type Result struct {
	Allowed bool
	Reason  string
}

// CircuitBreaker tracks one circuit per key (for the change feed, the topic).
type CircuitBreaker struct {
	mu            sync.Mutex
	circuits      map[string]*circuit
	failThreshold int
	resetTimeout  time.Duration
	now           func() time.Time
}

type circuit struct {
	state       CircuitState
	failures    int
	probing     bool
	lastFailure time.Time
}

// NewCircuitBreaker opens a circuit after failThreshold consecutive failures
// and lets a single probe through once resetTimeout has passed.
func NewCircuitBreaker(failThreshold int, resetTimeout time.Duration) *CircuitBreaker {
	return NewCircuitBreakerWithClock(failThreshold, resetTimeout, time.Now)
}

// NewCircuitBreakerWithClock is NewCircuitBreaker with an injected clock.
func NewCircuitBreakerWithClock(failThreshold int, resetTimeout time.Duration, now func() time.Time) *CircuitBreaker {
	if failThreshold < 1 {
		failThreshold = 1
	}
	return &CircuitBreaker{
		circuits:      make(map[string]*circuit),
		failThreshold: failThreshold,
		resetTimeout:  resetTimeout,
		now:           now,
	}
}

// Check reports whether a call for key may proceed.
func (cb *CircuitBreaker) Check(key string) Result {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	c := cb.circuit(key)
	switch c.state {
	case CircuitOpen:
		elapsed := cb.now().Sub(c.lastFailure)
		if elapsed < cb.resetTimeout {
			return Result{Reason: fmt.Sprintf("circuit open for %s, resets in %s", key, cb.resetTimeout-elapsed)}
		}
		c.state = CircuitHalfOpen
		c.probing = true
		return Result{Allowed: true}
	case CircuitHalfOpen:
		if c.probing {
			return Result{Reason: "circuit half-open, probe in flight"}
		}
		c.probing = true
		return Result{Allowed: true}
	default:
		return Result{Allowed: true}
	}
}

// RecordSuccess closes the circuit for key.
func (cb *CircuitBreaker) RecordSuccess(key string) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	c := cb.circuit(key)
	c.state = CircuitClosed
	c.failures = 0
	c.probing = false
}

// RecordFailure counts a failure; a failed probe reopens the circuit at once.
func (cb *CircuitBreaker) RecordFailure(key string) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	c := cb.circuit(key)
	c.failures++
	c.lastFailure = cb.now()
	c.probing = false
	if c.state == CircuitHalfOpen || c.failures >= cb.failThreshold {
		c.state = CircuitOpen
	}
}

// State returns the current state for key.
func (cb *CircuitBreaker) State(key string) CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.circuit(key).state
}

// circuit must be called with mu held.
func (cb *CircuitBreaker) circuit(key string) *circuit {
	c, ok := cb.circuits[key]
	if !ok {
		c = &circuit{state: CircuitClosed}
		cb.circuits[key] = c
	}
	return c
}
