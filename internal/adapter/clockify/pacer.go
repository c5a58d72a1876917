package clockify

import (
	"context"
	"sync"
	"time"
)

// Pacer spaces outgoing requests at least interval apart. It remembers only
// the time of the last dispatch, so it allows no bursts and knows nothing
// about other processes.
type Pacer struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewPacer returns a Pacer on the wall clock.
func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{interval: interval, now: time.Now, sleep: sleepCtx}
}

// Wait blocks until interval has passed since the previous dispatch, then
// records and returns the new dispatch time.
func (p *Pacer) Wait(ctx context.Context) (time.Time, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.last.IsZero() {
		if wait := p.interval - p.now().Sub(p.last); wait > 0 {
			if err := p.sleep(ctx, wait); err != nil {
				return time.Time{}, err
			}
		}
	}
	p.last = p.now()
	return p.last, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
