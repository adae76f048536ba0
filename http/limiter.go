package http

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultMaxKeys bounds how many keys a KeyLimiter tracks at once.
const DefaultMaxKeys = 10000

// sweepInterval is how often idle keys are dropped.
const sweepInterval = time.Minute

// KeyLimiter provides per-key rate limiting using token buckets. Each access
// code gets its own limiter, so one caller cannot starve the others.
//
// Keys whose bucket has refilled are forgotten on the next sweep; a fresh
// bucket behaves the same. At most MaxKeys keys are tracked: once that many
// keys are active, requests for new keys are refused until a sweep frees
// room.
type KeyLimiter struct {
	// MaxKeys may be changed before first use.
	MaxKeys int

	mu        sync.Mutex
	limiters  map[string]*rate.Limiter
	rps       float64
	burst     int
	lastSweep time.Time
}

// NewKeyLimiter creates a new KeyLimiter allowing rps requests per second per
// key with the given burst.
func NewKeyLimiter(rps float64, burst int) *KeyLimiter {
	if burst < 1 {
		burst = 1
	}
	return &KeyLimiter{
		MaxKeys:  DefaultMaxKeys,
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    burst,
	}
}

// Allow reports whether a request for key may proceed now.
func (l *KeyLimiter) Allow(key string) bool {
	return l.AllowAt(key, time.Now())
}

// AllowAt reports whether a request for key may proceed at time now.
func (l *KeyLimiter) AllowAt(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[key]
	if !ok {
		if now.Sub(l.lastSweep) >= sweepInterval || len(l.limiters) >= l.MaxKeys {
			l.sweep(now)
		}
		if len(l.limiters) >= l.MaxKeys {
			return false
		}
		limiter = rate.NewLimiter(rate.Limit(l.rps), l.burst)
		l.limiters[key] = limiter
	}
	return limiter.AllowN(now, 1)
}

// Len returns the number of keys currently tracked.
func (l *KeyLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// sweep drops keys whose bucket is full again at now.
func (l *KeyLimiter) sweep(now time.Time) {
	for key, limiter := range l.limiters {
		if limiter.TokensAt(now) >= float64(l.burst) {
			delete(l.limiters, key)
		}
	}
	l.lastSweep = now
}
