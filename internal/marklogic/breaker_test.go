package marklogic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCircuitBreaker(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cb := newCircuitBreaker(2, time.Minute)
	cb.now = func() time.Time { return now }

	assert.True(t, cb.Allow())

	cb.RecordFailure()
	assert.True(t, cb.Allow(), "below threshold stays closed")

	cb.RecordFailure()
	assert.False(t, cb.Allow(), "threshold opens the circuit")

	now = now.Add(time.Minute)
	assert.True(t, cb.Allow(), "cooldown lets a probe through")

	cb.RecordFailure()
	assert.False(t, cb.Allow(), "failed probe re-opens")

	now = now.Add(time.Minute)
	cb.RecordSuccess()
	cb.RecordSuccess()
	assert.Equal(t, circuitClosed, cb.state)

	cb.RecordFailure()
	assert.True(t, cb.Allow(), "failure count was reset on close")
}
