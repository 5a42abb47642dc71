package game

import (
	"runtime"
	"time"

	"shadowcaster/internal/config"
)

const (
	// pausedFPS caps the frame rate while the animation is paused.
	pausedFPS = 30
	// spinMargin is the part of each wait spent yielding instead of
	// sleeping; timer slack would otherwise overshoot short frames.
	spinMargin = 200 * time.Microsecond
)

// FPSLimiter paces the frame loop to the configured cap.
type FPSLimiter struct {
	deadline time.Time
}

func NewFPSLimiter() *FPSLimiter {
	return &FPSLimiter{}
}

// limit returns the cap in effect; 0 means uncapped.
func (f *FPSLimiter) limit(paused bool) int {
	l := config.GetFPSLimit()
	if paused && (l <= 0 || l > pausedFPS) {
		return pausedFPS
	}
	return l
}

// period returns the frame duration for the cap in effect, 0 when uncapped.
func (f *FPSLimiter) period(paused bool) time.Duration {
	l := f.limit(paused)
	if l <= 0 {
		return 0
	}
	return time.Second / time.Duration(l)
}

// Wait blocks until the current frame's deadline. Deadlines advance by one
// period per call so short frames absorb long ones; a loop that falls more
// than a period behind starts over from now.
func (f *FPSLimiter) Wait(paused bool) {
	period := f.period(paused)
	if period == 0 {
		f.deadline = time.Time{}
		return
	}

	now := time.Now()
	if f.deadline.IsZero() || now.Sub(f.deadline) > period {
		f.deadline = now.Add(period)
	} else {
		f.deadline = f.deadline.Add(period)
	}

	if sleep := f.deadline.Sub(now) - spinMargin; sleep > 0 {
		time.Sleep(sleep)
	}
	for time.Now().Before(f.deadline) {
		runtime.Gosched()
	}
}
