package guard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestBreaker(threshold int) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)}
	return NewCircuitBreakerWithClock(threshold, 30*time.Second, clock.now), clock
}

func TestCircuitBreaker_ClosedByDefault(t *testing.T) {
	cb, _ := newTestBreaker(3)

	assert.True(t, cb.Check("squadroom.changes").Allowed)
	assert.Equal(t, CircuitClosed, cb.State("squadroom.changes"))
}

func TestCircuitBreaker_OpensOnThreshold(t *testing.T) {
	cb, _ := newTestBreaker(2)

	cb.RecordFailure("topic")
	assert.True(t, cb.Check("topic").Allowed)
	cb.RecordFailure("topic")

	result := cb.Check("topic")
	assert.False(t, result.Allowed)
	assert.Contains(t, result.Reason, "circuit open for topic")
	assert.Equal(t, "open", cb.State("topic").String())
}

func TestCircuitBreaker_SuccessResets(t *testing.T) {
	cb, _ := newTestBreaker(2)

	cb.RecordFailure("topic")
	cb.RecordSuccess("topic")
	cb.RecordFailure("topic")

	assert.True(t, cb.Check("topic").Allowed)
}

func TestCircuitBreaker_HalfOpenProbe(t *testing.T) {
	cb, clock := newTestBreaker(1)
	cb.RecordFailure("topic")
	assert.False(t, cb.Check("topic").Allowed)

	clock.t = clock.t.Add(31 * time.Second)
	assert.True(t, cb.Check("topic").Allowed, "one probe after the reset timeout")
	assert.Equal(t, CircuitHalfOpen, cb.State("topic"))
	assert.False(t, cb.Check("topic").Allowed, "only one probe at a time")

	cb.RecordFailure("topic")
	assert.Equal(t, CircuitOpen, cb.State("topic"))
	assert.False(t, cb.Check("topic").Allowed)

	clock.t = clock.t.Add(31 * time.Second)
	assert.True(t, cb.Check("topic").Allowed)
	cb.RecordSuccess("topic")
	assert.Equal(t, CircuitClosed, cb.State("topic"))
}

func TestCircuitBreaker_KeysAreIndependent(t *testing.T) {
	cb, _ := newTestBreaker(1)
	cb.RecordFailure("a")

	assert.False(t, cb.Check("a").Allowed)
	assert.True(t, cb.Check("b").Allowed)
}
