package presenter

import (
	"context"
	"math"
	"sync"
	"time"
)

const (
	DefaultRevealDuration = 2 * time.Second
	DefaultRevealInterval = 50 * time.Millisecond
)

// Frame is the score shown elapsed into a reveal of length duration.
func Frame(score int, elapsed, duration time.Duration) int {
	if duration <= 0 || elapsed >= duration {
		return score
	}
	if elapsed <= 0 {
		return 0
	}
	progress := float64(elapsed) / float64(duration)
	return int(math.Floor(progress * float64(score)))
}

// Revealer counts a score up from zero over Duration, emitting a frame every
// Interval. The last frame is always the score itself.
type Revealer struct {
	Duration time.Duration
	Interval time.Duration
	now      func() time.Time
}

// NewRevealer returns a Revealer. Non-positive arguments take the defaults.
func NewRevealer(duration, interval time.Duration) *Revealer {
	if duration <= 0 {
		duration = DefaultRevealDuration
	}
	if interval <= 0 {
		interval = DefaultRevealInterval
	}
	return &Revealer{Duration: duration, Interval: interval, now: time.Now}
}

// Run blocks until the final frame is emitted or ctx is done. No frame is
// emitted after ctx is cancelled.
func (r *Revealer) Run(ctx context.Context, score int, emit func(int)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := r.now()
	emit(0)

	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			elapsed := r.now().Sub(start)
			emit(Frame(score, elapsed, r.Duration))
			if elapsed >= r.Duration {
				return nil
			}
		}
	}
}

// Start runs the reveal in the background. The returned stop function
// cancels it and waits for the goroutine to exit; it is safe to call more
// than once.
func (r *Revealer) Start(ctx context.Context, score int, emit func(int)) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = r.Run(ctx, score, emit)
	}()
	return func() {
		cancel()
		wg.Wait()
	}
}
