package authservice

import (
	"sync"
	"time"
)

const (
	maxLoginAttempts = 5
	attemptWindow    = 15 * time.Minute
)

// loginLimiter throttles failed login attempts per source address within a
// fixed window. Entries are pruned in place on every check.
type loginLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	max      int
	window   time.Duration
	now      func() time.Time
}

func newLoginLimiter(max int, window time.Duration) *loginLimiter {
	return &loginLimiter{
		attempts: make(map[string][]time.Time),
		max:      max,
		window:   window,
		now:      time.Now,
	}
}

// check reports whether the address is still under the attempt threshold.
// It does not record an attempt; call record on authentication failure.
func (l *loginLimiter) check(ip string) bool {
	cutoff := l.now().Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	hits := l.attempts[ip]
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) == 0 {
		delete(l.attempts, ip)
	} else {
		l.attempts[ip] = kept
	}

	return len(kept) < l.max
}

func (l *loginLimiter) record(ip string) {
	l.mu.Lock()
	l.attempts[ip] = append(l.attempts[ip], l.now())
	l.mu.Unlock()
}
