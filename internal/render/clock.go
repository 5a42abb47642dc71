package render

import "time"

// Clock reports the current time in seconds from an arbitrary origin.
type Clock interface {
	Now() float64
}

// SystemClock measures wall time since it was created.
type SystemClock struct {
	start time.Time
}

func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (c *SystemClock) Now() float64 {
	return time.Since(c.start).Seconds()
}

// FrameTime is the timing handed to the main pass.
type FrameTime struct {
	Total float64 // seconds since the renderer was created
	Delta float64 // seconds since the previous frame
}
