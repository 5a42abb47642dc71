package render

import (
	"shadowcaster/internal/config"
	"shadowcaster/internal/gpu"
	"shadowcaster/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
)

// Default light budgets. They size the light arrays of the main shader.
const (
	DefaultMaxSimpleLights = 7
	DefaultMaxCubeLights   = 8
	DefaultAmbientFactor   = 0.25
)

// Options configures a Renderer.
type Options struct {
	// MaxSimpleLights and MaxCubeLights are the number of light slots per
	// category. Every slot gets a depth texture each draw; lights beyond the
	// budget are not shaded.
	MaxSimpleLights int
	MaxCubeLights   int
	// AttributeSlots sizes the vertex attribute slot pool.
	AttributeSlots int
	// AmbientFactor is read once per frame. Nil selects DefaultAmbientFactor.
	AmbientFactor func() float32

	ClearColor       mgl32.Vec4
	ShadowClearColor mgl32.Vec4

	Clock  Clock
	Logger logger.Logger
}

func DefaultOptions() Options {
	return Options{
		MaxSimpleLights:  DefaultMaxSimpleLights,
		MaxCubeLights:    DefaultMaxCubeLights,
		AttributeSlots:   gpu.DefaultSlotCount,
		ClearColor:       mgl32.Vec4{0, 0, 0, 1},
		ShadowClearColor: mgl32.Vec4{1, 1, 1, 1},
	}
}

// OptionsFromConfig maps the render-related sections of cfg. The ambient
// factor follows the runtime setting so it can be tuned while running.
func OptionsFromConfig(cfg *config.Config) Options {
	o := DefaultOptions()
	o.MaxSimpleLights = cfg.Lights.MaxSimple
	o.MaxCubeLights = cfg.Lights.MaxCube
	o.AttributeSlots = cfg.Render.AttributeSlots
	o.AmbientFactor = config.GetAmbientFactor
	o.ClearColor = vec4(cfg.Render.ClearColor)
	o.ShadowClearColor = vec4(cfg.Render.ShadowClearColor)
	return o
}

func vec4(c config.RGBA) mgl32.Vec4 {
	return mgl32.Vec4{c.R, c.G, c.B, c.A}
}

func (o Options) withDefaults() Options {
	if o.MaxSimpleLights < 0 {
		o.MaxSimpleLights = 0
	}
	if o.MaxCubeLights < 0 {
		o.MaxCubeLights = 0
	}
	if o.AmbientFactor == nil {
		o.AmbientFactor = func() float32 { return DefaultAmbientFactor }
	}
	if o.Clock == nil {
		o.Clock = NewSystemClock()
	}
	if o.Logger == nil {
		o.Logger = logger.Nop()
	}
	return o
}
