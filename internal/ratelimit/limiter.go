// Package ratelimit throttles bursts of user commands, such as a held-down
// lap key auto-repeating.
package ratelimit

import (
	"golang.org/x/time/rate"

	"lapwatch/internal/core"
)

// Guard is a token bucket evaluated against a core.Clock. A nil Guard
// allows everything.
type Guard struct {
	limiter *rate.Limiter
	clock   core.Clock
}

// NewGuard allows perSecond events on average with the given burst.
// perSecond <= 0 disables limiting and returns nil. A burst below one is
// raised to one so the first event is never dropped.
func NewGuard(perSecond float64, burst int, clock core.Clock) *Guard {
	if perSecond <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &Guard{
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
		clock:   clock,
	}
}

// Allow reports whether an event may happen now and consumes a token if so.
func (g *Guard) Allow() bool {
	if g == nil {
		return true
	}
	return g.limiter.AllowN(g.clock.Now(), 1)
}
