package stream

import (
	"sync"

	"golang.org/x/time/rate"
)

// Throttle caps how often each session may request a live preview. Previews
// recompute the whole track, so a dragging slider must not turn into a
// request per pixel.
type Throttle struct {
	limit    rate.Limit
	burst    int
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewThrottle(perSecond float64, burst int) *Throttle {
	return &Throttle{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		limiters: map[string]*rate.Limiter{},
	}
}

func (t *Throttle) Allow(sessionID string) bool {
	t.mu.Lock()
	limiter, ok := t.limiters[sessionID]
	if !ok {
		limiter = rate.NewLimiter(t.limit, t.burst)
		t.limiters[sessionID] = limiter
	}
	t.mu.Unlock()
	return limiter.Allow()
}

func (t *Throttle) Forget(sessionID string) {
	t.mu.Lock()
	delete(t.limiters, sessionID)
	t.mu.Unlock()
}
