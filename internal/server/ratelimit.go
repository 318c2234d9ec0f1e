package server

import (
	"sync"
	"time"
)

// SessionLimiter is a token bucket per client IP that caps how fast one
// client can open new studios.
type SessionLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*tokenBucket
	maxTokens float64
	rate      float64 // tokens per second

	now func() time.Time
}

type tokenBucket struct {
	tokens     float64
	lastRefill time.Time
}

// NewSessionLimiter allows perMinute new sessions per IP with a burst of
// perMinute/6, at least 5. A non-positive perMinute disables limiting.
func NewSessionLimiter(perMinute int) *SessionLimiter {
	if perMinute <= 0 {
		return nil
	}
	burst := float64(perMinute) / 6
	if burst < 5 {
		burst = 5
	}
	return &SessionLimiter{
		buckets:   make(map[string]*tokenBucket),
		maxTokens: burst,
		rate:      float64(perMinute) / 60.0,
		now:       time.Now,
	}
}

// Allow consumes one token for ip. A nil limiter allows everything.
func (l *SessionLimiter) Allow(ip string) bool {
	if l == nil {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[ip]
	if !ok {
		b = &tokenBucket{tokens: l.maxTokens, lastRefill: now}
		l.buckets[ip] = b
	}

	b.tokens += now.Sub(b.lastRefill).Seconds() * l.rate
	if b.tokens > l.maxTokens {
		b.tokens = l.maxTokens
	}
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Sweep drops buckets that have refilled completely.
func (l *SessionLimiter) Sweep() {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for ip, b := range l.buckets {
		if b.tokens+now.Sub(b.lastRefill).Seconds()*l.rate >= l.maxTokens {
			delete(l.buckets, ip)
		}
	}
}

func (l *SessionLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
