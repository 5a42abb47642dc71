package render

import (
	"errors"
	"fmt"

	"shadowcaster/internal/gpu"
	"shadowcaster/internal/logger"
	"shadowcaster/internal/profiling"
	"shadowcaster/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// Surface is the window-side state the passes need: viewports and clears of
// whichever framebuffer is bound.
type Surface interface {
	SwitchToShadowViewport()
	SwitchToMainViewport()
	SetClearColor(c mgl32.Vec4)
	ClearBuffers(color, depth bool)
}

// FrameStats describes the most recent call to Render.
type FrameStats struct {
	Time            FrameTime
	Lights          CategorizedLights
	ShadowDraws     int
	DrawCalls       int
	ProgramSwitches int
	Err             error
}

// Renderer draws registered models lit by registered lights in two passes:
// a depth pass per light and a lit pass from the active camera.
type Renderer struct {
	device  gpu.Device
	surface Surface
	opts    Options
	clock   Clock
	log     logger.Logger
	slots   *gpu.SlotPool

	lights  *Registry[scene.Light]
	models  *Registry[scene.Model]
	cameras *Registry[scene.Camera]

	activeCamera string
	deadSimple   scene.Light
	deadCube     scene.Light

	startTime float64
	lastTime  float64
	stats     FrameStats
}

func New(device gpu.Device, surface Surface, opts Options) *Renderer {
	opts = opts.withDefaults()
	now := opts.Clock.Now()
	return &Renderer{
		device:    device,
		surface:   surface,
		opts:      opts,
		clock:     opts.Clock,
		log:       opts.Logger,
		slots:     gpu.NewSlotPool(device, opts.AttributeSlots),
		lights:    NewRegistry[scene.Light](),
		models:    NewRegistry[scene.Model](),
		cameras:   NewRegistry[scene.Camera](),
		startTime: now,
		lastTime:  now,
	}
}

// RegisterLight adds l, replacing any light with the same id.
func (r *Renderer) RegisterLight(l scene.Light) {
	r.lights.Put(l.ID(), l)
	r.log.Debugf("registered light %s (%s)", l.ID(), l.ShadowTarget().Type)
}

func (r *Renderer) DeregisterLight(id string) {
	if r.lights.Delete(id) {
		r.log.Debugf("deregistered light %s", id)
	}
}

// RegisterModel adds m, replacing any model with the same id.
func (r *Renderer) RegisterModel(m scene.Model) {
	r.models.Put(m.ID(), m)
	r.log.Debugf("registered model %s (%s)", m.ID(), m.Name())
}

func (r *Renderer) DeregisterModel(id string) {
	if r.models.Delete(id) {
		r.log.Debugf("deregistered model %s", id)
	}
}

// RegisterCamera adds c, replacing any camera with the same id.
func (r *Renderer) RegisterCamera(c scene.Camera) {
	r.cameras.Put(c.ID(), c)
	r.log.Debugf("registered camera %s", c.ID())
}

// DeregisterCamera removes the camera. If it was active the next Render
// fails with ErrNoActiveCamera until another camera is activated.
func (r *Renderer) DeregisterCamera(id string) {
	if r.cameras.Delete(id) {
		r.log.Debugf("deregistered camera %s", id)
	}
}

// SetActiveCamera selects the camera the main pass renders from. The id is
// resolved at render time.
func (r *Renderer) SetActiveCamera(id string) {
	r.activeCamera = id
}

// RegisterDeadSimpleLight sets the light whose depth texture fills unused
// SIMPLE slots.
func (r *Renderer) RegisterDeadSimpleLight(l scene.Light) error {
	if err := checkDead(l, gpu.ShadowSimple); err != nil {
		return err
	}
	r.deadSimple = l
	r.log.Debugf("registered fallback light %s", l.ID())
	return nil
}

// RegisterDeadCubeLight sets the light whose depth texture fills unused CUBE
// slots.
func (r *Renderer) RegisterDeadCubeLight(l scene.Light) error {
	if err := checkDead(l, gpu.ShadowCube); err != nil {
		return err
	}
	r.deadCube = l
	r.log.Debugf("registered fallback light %s", l.ID())
	return nil
}

func checkDead(l scene.Light, want gpu.ShadowType) error {
	if got := l.ShadowTarget().Type; got != want {
		return fmt.Errorf("%w: fallback light %q is %s, want %s", ErrWrongShadowType, l.ID(), got, want)
	}
	return nil
}

// Render draws one frame: the shadow pass for every light, then the main
// pass for every model. It returns the light snapshots taken this frame.
// Failures of single lights or draws are joined into the error without
// stopping the frame; a missing camera or fallback light skips the main
// pass.
func (r *Renderer) Render() (CategorizedLights, error) {
	defer profiling.Track("render.Render")()
	r.stats = FrameStats{}

	lights, shadowErr := r.shadowPass()

	now := r.clock.Now()
	frameTime := FrameTime{Total: now - r.startTime, Delta: now - r.lastTime}
	mainErr := r.mainPass(lights, frameTime)
	r.lastTime = now

	err := errors.Join(shadowErr, mainErr)
	r.stats.Time = frameTime
	r.stats.Lights = lights.clone()
	r.stats.Err = err
	profiling.Count("draw_calls", r.stats.DrawCalls+r.stats.ShadowDraws)
	profiling.Count("program_switches", r.stats.ProgramSwitches)
	return lights, err
}

// shadowTypes lists the light categories in binding order.
var shadowTypes = []gpu.ShadowType{gpu.ShadowSimple, gpu.ShadowCube}

// budget returns the number of main pass slots of a light category.
func (r *Renderer) budget(t gpu.ShadowType) int {
	if t == gpu.ShadowCube {
		return r.opts.MaxCubeLights
	}
	return r.opts.MaxSimpleLights
}

// dead returns the fallback light of a category, nil if none is registered.
func (r *Renderer) dead(t gpu.ShadowType) scene.Light {
	if t == gpu.ShadowCube {
		return r.deadCube
	}
	return r.deadSimple
}

// unit gives the texture unit of a light slot. Unit 0 is the diffuse
// texture, SIMPLE slots follow and CUBE slots come last.
func (r *Renderer) unit(t gpu.ShadowType, i int) uint32 {
	if t == gpu.ShadowCube {
		return uint32(1 + r.opts.MaxSimpleLights + i)
	}
	return uint32(1 + i)
}
