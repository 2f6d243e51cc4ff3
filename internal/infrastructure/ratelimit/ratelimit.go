package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Registry is an injected per-key limiter used for registration spam
// deterrence. It is process-local: across multiple instances it is a coarse
// deterrent, not a strict global throttle.
type Registry struct {
	mu       sync.Mutex
	limiters map[string]*entry
	limit    rate.Limit
	burst    int
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRegistry(perHour, burst int) *Registry {
	if perHour < 1 {
		perHour = 1
	}
	if burst < 1 {
		burst = 1
	}
	return &Registry{
		limiters: make(map[string]*entry),
		limit:    rate.Every(time.Hour / time.Duration(perHour)),
		burst:    burst,
	}
}

// Allow reports whether the key may proceed, consuming one token.
func (r *Registry) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.limiters[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(r.limit, r.burst)}
		r.limiters[key] = e
	}
	e.lastSeen = time.Now()
	return e.limiter.Allow()
}

// Sweep drops idle keys; called from the background maintenance loop.
func (r *Registry) Sweep(idleFor time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-idleFor)
	removed := 0
	for key, e := range r.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(r.limiters, key)
			removed++
		}
	}
	return removed
}
