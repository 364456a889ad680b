package ratelimit

import (
	"sync"
	"time"
)

// Limiter enforces a sliding-window request limit per caller. Buckets for
// callers not seen in a while are dropped by a background sweep.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	maxReqs int
	window  time.Duration
	sweep   *time.Ticker
}

type bucket struct {
	requests []time.Time
	lastSeen time.Time
}

func NewLimiter(maxRequests int, window time.Duration) *Limiter {
	l := &Limiter{
		buckets: make(map[string]*bucket),
		maxReqs: maxRequests,
		window:  window,
		sweep:   time.NewTicker(5 * time.Minute),
	}
	go l.sweepStale()
	return l
}

// Allow records a request for userID and reports whether it fits within the
// window. Requests without a caller identity are not counted.
func (l *Limiter) Allow(userID string) bool {
	if userID == "" {
		return true
	}
	return l.take(userID, l.maxReqs, l.window)
}

// AllowStrict applies a tighter per-identifier limit for sensitive
// endpoints such as login and reminder sending.
func (l *Limiter) AllowStrict(identifier string, maxReqs int, window time.Duration) bool {
	return l.take("strict:"+identifier, maxReqs, window)
}

func (l *Limiter) take(key string, maxReqs int, window time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{}
		l.buckets[key] = b
	}
	b.lastSeen = now

	cutoff := now.Add(-window)
	kept := b.requests[:0]
	for _, t := range b.requests {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	b.requests = kept

	if len(b.requests) >= maxReqs {
		return false
	}
	b.requests = append(b.requests, now)
	return true
}

func (l *Limiter) sweepStale() {
	for range l.sweep.C {
		threshold := time.Now().Add(-15 * time.Minute)
		l.mu.Lock()
		for key, b := range l.buckets {
			if b.lastSeen.Before(threshold) {
				delete(l.buckets, key)
			}
		}
		l.mu.Unlock()
	}
}

func (l *Limiter) Stop() {
	l.sweep.Stop()
}
