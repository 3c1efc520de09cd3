package engine

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces consecutive network fetches by a fixed delay.
// A zero delay disables pacing.
type Pacer struct {
	lim *rate.Limiter
}

// NewPacer returns a Pacer allowing one fetch per delay.
func NewPacer(delay time.Duration) *Pacer {
	if delay <= 0 {
		return &Pacer{}
	}
	return &Pacer{lim: rate.NewLimiter(rate.Every(delay), 1)}
}

// Wait blocks until the next fetch may start or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil || p.lim == nil {
		return nil
	}
	return p.lim.Wait(ctx)
}
