package config

import "sync"

// RuntimeSettings holds values that may change while the renderer runs
type RuntimeSettings struct {
	mu            sync.RWMutex
	fpsLimit      int
	ambientFactor float32
}

var globalRuntimeSettings = &RuntimeSettings{
	fpsLimit:      60,
	ambientFactor: 0.25,
}

// GetFPSLimit returns the frame rate cap; 0 means uncapped
func GetFPSLimit() int {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.fpsLimit
}

// SetFPSLimit sets the frame rate cap
func SetFPSLimit(limit int) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()

	// Clamp to reasonable values
	if limit < 0 {
		limit = 0
	}
	if limit > 1000 {
		limit = 1000
	}

	globalRuntimeSettings.fpsLimit = limit
}

// GetAmbientFactor returns the global ambient light factor
func GetAmbientFactor() float32 {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.ambientFactor
}

// SetAmbientFactor sets the global ambient light factor, clamped to [0, 1]
func SetAmbientFactor(f float32) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()

	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}

	globalRuntimeSettings.ambientFactor = f
}

// Apply pushes the runtime-tunable values of cfg into the global settings
func Apply(cfg *Config) {
	SetFPSLimit(cfg.Window.FPSLimit)
	SetAmbientFactor(cfg.Render.AmbientFactor)
}
