// Package ratelimit caps outbound AI-grading calls per provider using a
// rolling time window. State lives in memory for the process lifetime
// and is never persisted.
package ratelimit

import (
	"sync"
	"time"
)

const (
	// DefaultWindow is the trailing interval requests are counted over.
	DefaultWindow = 60 * time.Second

	// DefaultMaxRequests is the per-provider cap within one window.
	DefaultMaxRequests = 10
)

// Status is the externally visible rate-limit state for one provider.
type Status struct {
	CanRequest   bool          `json:"canRequest"`
	WaitTime     time.Duration `json:"waitTime"`
	RequestCount int           `json:"requestCount"`
}

// Limiter tracks request timestamps per provider within a rolling
// window. The clock is injected so tests can drive time directly.
type Limiter struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	now    func() time.Time
	sent   map[string][]time.Time
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// WithWindow overrides the rolling window length.
func WithWindow(d time.Duration) Option {
	return func(l *Limiter) { l.window = d }
}

// WithMaxRequests overrides the per-window cap.
func WithMaxRequests(n int) Option {
	return func(l *Limiter) { l.max = n }
}

// New creates a Limiter with the default 10-per-60s policy.
func New(opts ...Option) *Limiter {
	l := &Limiter{
		window: DefaultWindow,
		max:    DefaultMaxRequests,
		now:    time.Now,
		sent:   make(map[string][]time.Time),
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// prune drops timestamps older than the window. Caller holds l.mu.
func (l *Limiter) prune(provider string, now time.Time) []time.Time {
	stamps := l.sent[provider]
	cutoff := now.Add(-l.window)
	i := 0
	for i < len(stamps) && !stamps[i].After(cutoff) {
		i++
	}
	if i > 0 {
		stamps = stamps[i:]
		l.sent[provider] = stamps
	}
	return stamps
}

// CanRequest reports whether another request to the provider fits in
// the current window.
func (l *Limiter) CanRequest(provider string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.prune(provider, l.now())) < l.max
}

// Record appends the current timestamp for the provider. Call it only
// when a request is actually sent, after a successful CanRequest.
func (l *Limiter) Record(provider string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	l.sent[provider] = append(l.prune(provider, now), now)
}

// Reserve atomically checks capacity and records the request when
// capacity exists. Concurrent graders use this instead of the
// CanRequest/Record pair.
func (l *Limiter) Reserve(provider string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	stamps := l.prune(provider, now)
	if len(stamps) >= l.max {
		return false
	}
	l.sent[provider] = append(stamps, now)
	return true
}

// TimeUntilNextSlot returns how long until the oldest request in a full
// window expires, and zero when a request could be made now.
func (l *Limiter) TimeUntilNextSlot(provider string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	stamps := l.prune(provider, now)
	if len(stamps) < l.max {
		return 0
	}
	wait := l.window - now.Sub(stamps[0])
	if wait < 0 {
		wait = 0
	}
	return wait
}

// Status reports the provider's current window state in one call.
func (l *Limiter) Status(provider string) Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	stamps := l.prune(provider, now)

	st := Status{
		CanRequest:   len(stamps) < l.max,
		RequestCount: len(stamps),
	}
	if !st.CanRequest {
		st.WaitTime = l.window - now.Sub(stamps[0])
		if st.WaitTime < 0 {
			st.WaitTime = 0
		}
	}
	return st
}
