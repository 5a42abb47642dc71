package game

import (
	"testing"
	"time"

	"shadowcaster/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestFPSLimiterLimit(t *testing.T) {
	t.Cleanup(func() { config.SetFPSLimit(60) })
	f := NewFPSLimiter()

	config.SetFPSLimit(120)
	assert.Equal(t, 120, f.limit(false))
	assert.Equal(t, pausedFPS, f.limit(true))

	config.SetFPSLimit(20)
	assert.Equal(t, 20, f.limit(true))

	config.SetFPSLimit(0)
	assert.Equal(t, 0, f.limit(false))
	assert.Equal(t, pausedFPS, f.limit(true))
}

func TestFPSLimiterPeriod(t *testing.T) {
	t.Cleanup(func() { config.SetFPSLimit(60) })
	f := NewFPSLimiter()

	config.SetFPSLimit(100)
	assert.Equal(t, 10*time.Millisecond, f.period(false))
	assert.Equal(t, time.Second/pausedFPS, f.period(true))

	config.SetFPSLimit(0)
	assert.Zero(t, f.period(false))
}

func TestFPSLimiterResyncsAfterHitch(t *testing.T) {
	t.Cleanup(func() { config.SetFPSLimit(60) })
	config.SetFPSLimit(100)
	f := NewFPSLimiter()
	f.deadline = time.Now().Add(-time.Second)

	start := time.Now()
	f.Wait(false)
	elapsed := time.Since(start)
	assert.GreaterOrEqual(t, elapsed, 9*time.Millisecond, "a late loop waits one full period")
	assert.Less(t, elapsed, 500*time.Millisecond)
}

func TestFPSLimiterUncappedDoesNotBlock(t *testing.T) {
	t.Cleanup(func() { config.SetFPSLimit(60) })
	config.SetFPSLimit(0)
	f := NewFPSLimiter()

	start := time.Now()
	for i := 0; i < 100; i++ {
		f.Wait(false)
	}
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestFPSLimiterPacesFrames(t *testing.T) {
	t.Cleanup(func() { config.SetFPSLimit(60) })
	config.SetFPSLimit(100)
	f := NewFPSLimiter()

	start := time.Now()
	for i := 0; i < 5; i++ {
		f.Wait(false)
	}
	assert.GreaterOrEqual(t, time.Since(start), 45*time.Millisecond)
}
