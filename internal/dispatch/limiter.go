package dispatch

import (
	"sync"
	"time"
)

// Limiter enforces the minimum start-to-start interval between consecutive
// send attempts. It is injected into the dispatcher as a dependency so
// tests can build isolated instances; there is no package-level state.
type Limiter struct {
	minInterval time.Duration

	mu   sync.Mutex
	last time.Time

	// overridable in tests
	sleep func(time.Duration)
	now   func() time.Time
}

func NewLimiter(minInterval time.Duration) *Limiter {
	return &Limiter{
		minInterval: minInterval,
		sleep:       time.Sleep,
		now:         time.Now,
	}
}

// Wait blocks until the minimum interval since the previous attempt has
// elapsed. The first attempt after construction never waits.
func (l *Limiter) Wait() {
	l.mu.Lock()
	var deficit time.Duration
	if !l.last.IsZero() {
		elapsed := l.now().Sub(l.last)
		if elapsed < l.minInterval {
			deficit = l.minInterval - elapsed
		}
	}
	l.mu.Unlock()

	if deficit > 0 {
		l.sleep(deficit)
	}
}

// Stamp records that an attempt just completed. Called after every attempt,
// success and failure alike: a failed send still consumes its slot in the
// schedule.
func (l *Limiter) Stamp() {
	l.mu.Lock()
	l.last = l.now()
	l.mu.Unlock()
}
