package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// MaxTextureUnits is the number of fragment texture units every OpenGL 4.1
// implementation provides. The main pass uses one for the diffuse texture
// and one per simple and cube light slot.
const MaxTextureUnits = 16

// Config represents the main configuration
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Shadows ShadowsConfig `yaml:"shadows"`
	Lights  LightsConfig  `yaml:"lights"`
	Render  RenderConfig  `yaml:"render"`
	Shaders ShadersConfig `yaml:"shaders"`
	Scene   SceneConfig   `yaml:"scene"`
	Debug   DebugConfig   `yaml:"debug"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig contains window-related configuration
type WindowConfig struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Title    string `yaml:"title"`
	VSync    bool   `yaml:"vsync"`
	FPSLimit int    `yaml:"fps_limit"` // 0 means uncapped
}

// ShadowsConfig contains shadow map configuration
type ShadowsConfig struct {
	MapSize int `yaml:"map_size"`
}

// LightsConfig sets the per-category light budget. The values must match the
// array sizes declared by the main shader; the demo refuses to start
// otherwise.
type LightsConfig struct {
	MaxSimple int `yaml:"max_simple"`
	MaxCube   int `yaml:"max_cube"`
}

// RenderConfig contains main pass configuration
type RenderConfig struct {
	AmbientFactor    float32 `yaml:"ambient_factor"`
	AttributeSlots   int     `yaml:"attribute_slots"`
	ClearColor       RGBA    `yaml:"clear_color"`
	ShadowClearColor RGBA    `yaml:"shadow_clear_color"`
}

// RGBA is a color with float components in [0, 1]
type RGBA struct {
	R float32 `yaml:"r"`
	G float32 `yaml:"g"`
	B float32 `yaml:"b"`
	A float32 `yaml:"a"`
}

// ShadersConfig locates the GLSL sources
type ShadersConfig struct {
	Dir string `yaml:"dir"`
}

// SceneConfig points the demo scene at optional texture files. Empty paths
// use flat colors.
type SceneConfig struct {
	GroundTexture string `yaml:"ground_texture"`
	CubeTexture   string `yaml:"cube_texture"`
}

// DebugConfig controls the periodic renderer summary in the log
type DebugConfig struct {
	Overlay  bool    `yaml:"overlay"`
	Interval float64 `yaml:"interval"` // seconds between summaries
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // optional mirror of console output
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:    800,
			Height:   600,
			Title:    "shadowcaster",
			VSync:    false,
			FPSLimit: 60,
		},
		Shadows: ShadowsConfig{
			MapSize: 1600,
		},
		Lights: LightsConfig{
			MaxSimple: 7,
			MaxCube:   8,
		},
		Render: RenderConfig{
			AmbientFactor:    0.25,
			AttributeSlots:   16,
			ClearColor:       RGBA{0, 0, 0, 1},
			ShadowClearColor: RGBA{1, 1, 1, 1},
		},
		Shaders: ShadersConfig{
			Dir: "assets/shaders",
		},
		Debug: DebugConfig{
			Interval: 1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML configuration file on top of the defaults. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the values the renderer cannot work around.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Shadows.MapSize <= 0 {
		errs = append(errs, fmt.Errorf("shadows.map_size %d must be positive", c.Shadows.MapSize))
	}
	if c.Lights.MaxSimple < 0 || c.Lights.MaxCube < 0 {
		errs = append(errs, fmt.Errorf("light budgets must not be negative (simple=%d, cube=%d)", c.Lights.MaxSimple, c.Lights.MaxCube))
	}
	if units := 1 + c.Lights.MaxSimple + c.Lights.MaxCube; units > MaxTextureUnits {
		errs = append(errs, fmt.Errorf("light budgets need %d texture units, at most %d are available", units, MaxTextureUnits))
	}
	if c.Render.AttributeSlots < 3 {
		errs = append(errs, fmt.Errorf("render.attribute_slots %d is below the 3 slots a draw call needs", c.Render.AttributeSlots))
	}
	if c.Render.AmbientFactor < 0 || c.Render.AmbientFactor > 1 {
		errs = append(errs, fmt.Errorf("render.ambient_factor %v must be within [0, 1]", c.Render.AmbientFactor))
	}
	if c.Debug.Overlay && c.Debug.Interval <= 0 {
		errs = append(errs, fmt.Errorf("debug.interval %v must be positive", c.Debug.Interval))
	}
	return errors.Join(errs...)
}
