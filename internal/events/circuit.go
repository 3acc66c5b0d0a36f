package events

import (
	"sync"
	"time"
)

const (
	circuitBreakerThreshold  = 3
	circuitBreakerResetAfter = 5 * time.Minute
	halfOpenSuccessesToClose = 2
)

// circuitBreaker guards one provider: after repeated failures requests are
// blocked until a cool-down passes, then a half-open probe decides whether
// the provider recovered.
type circuitBreaker struct {
	mu           sync.Mutex
	failures     int
	lastFailure  time.Time
	state        circuitState
	successCount int

	now func() time.Time
}

type circuitState int

const (
	circuitClosed circuitState = iota
	circuitOpen
	circuitHalfOpen
)

func newCircuitBreaker() *circuitBreaker {
	return &circuitBreaker{state: circuitClosed, now: time.Now}
}

func (cb *circuitBreaker) canAttempt() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case circuitClosed:
		return true
	case circuitOpen:
		if cb.now().Sub(cb.lastFailure) > circuitBreakerResetAfter {
			cb.state = circuitHalfOpen
			cb.successCount = 0

			return true
		}

		return false
	case circuitHalfOpen:
		return true
	default:
		return false
	}
}

func (cb *circuitBreaker) recordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures = 0

	if cb.state == circuitHalfOpen {
		cb.successCount++
		if cb.successCount >= halfOpenSuccessesToClose {
			cb.state = circuitClosed
		}
	}
}

func (cb *circuitBreaker) recordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures++
	cb.lastFailure = cb.now()

	if cb.failures >= circuitBreakerThreshold {
		cb.state = circuitOpen
	}
}
