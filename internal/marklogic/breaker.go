package marklogic

import (
	"sync"
	"time"
)

// circuitBreaker tracks consecutive store outages:
// - Open after failureThreshold consecutive failures; requests fail fast while open.
// - After cooldown, requests are let through again.
// - Close after successThreshold consecutive successes; any failure re-opens.
type circuitBreaker struct {
	mu               sync.Mutex
	state            circuitState
	openedAt         time.Time
	failureCount     int
	successCount     int
	failureThreshold int
	successThreshold int
	cooldown         time.Duration
	now              func() time.Time
}

type circuitState int

const (
	circuitClosed circuitState = iota
	circuitOpen
)

func newCircuitBreaker(failureThreshold int, cooldown time.Duration) *circuitBreaker {
	return &circuitBreaker{
		state:            circuitClosed,
		failureThreshold: failureThreshold,
		successThreshold: 2,
		cooldown:         cooldown,
		now:              time.Now,
	}
}

// Allow reports whether a request may be sent.
func (c *circuitBreaker) Allow() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == circuitClosed || c.now().Sub(c.openedAt) >= c.cooldown
}

func (c *circuitBreaker) RecordFailure() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failureCount++
	c.successCount = 0
	if c.state == circuitOpen || c.failureCount >= c.failureThreshold {
		c.state = circuitOpen
		c.openedAt = c.now()
	}
}

func (c *circuitBreaker) RecordSuccess() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == circuitOpen {
		c.successCount++
		if c.successCount >= c.successThreshold {
			c.state = circuitClosed
			c.failureCount = 0
			c.successCount = 0
		}
		return
	}
	c.failureCount = 0
}
