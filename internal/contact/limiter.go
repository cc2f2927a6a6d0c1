package contact

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	limiterExpiry   = time.Hour
	cleanupInterval = 5 * time.Minute
)

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// Limiter throttles submissions per client key (the remote IP).
type Limiter struct {
	mu          sync.Mutex
	limit       rate.Limit
	burst       int
	clients     map[string]*clientLimiter
	lastCleanup time.Time
	now         func() time.Time
}

// NewLimiter allows perMinute submissions per client with the given burst. A
// non-positive perMinute returns nil, which allows everything.
func NewLimiter(perMinute, burst int) *Limiter {
	if perMinute <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{
		limit:   rate.Limit(float64(perMinute) / 60),
		burst:   burst,
		clients: make(map[string]*clientLimiter),
		now:     time.Now,
	}
}

// Allow reports whether key may submit now.
func (l *Limiter) Allow(key string) bool {
	if l == nil {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastCleanup) >= cleanupInterval {
		l.cleanupLocked(now)
	}
	c, ok := l.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
	}
	c.lastAccess = now
	return c.limiter.AllowN(now, 1)
}

func (l *Limiter) cleanupLocked(now time.Time) {
	for key, c := range l.clients {
		if now.Sub(c.lastAccess) > limiterExpiry {
			delete(l.clients, key)
		}
	}
	l.lastCleanup = now
}

// Len returns the number of tracked clients.
func (l *Limiter) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}
