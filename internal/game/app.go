package game

import (
	"time"

	"shadowcaster/internal/config"
	"shadowcaster/internal/logger"
	"shadowcaster/internal/profiling"
	"shadowcaster/internal/render"
	"shadowcaster/internal/window"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// slowFrame is the frame time above which the top profiling entries are
// logged.
const slowFrame = 16 * time.Millisecond

type App struct {
	window   *window.Window
	renderer *render.Renderer
	demo     *Demo
	overlay  *DebugOverlay
	log      logger.Logger

	fpsLimiter *FPSLimiter
	lastTime   time.Time
	lastErr    string
}

func NewApp(win *window.Window, r *render.Renderer, demo *Demo, debug config.DebugConfig, log logger.Logger) *App {
	return &App{
		window:     win,
		renderer:   r,
		demo:       demo,
		overlay:    NewDebugOverlay(log, debug.Overlay, debug.Interval),
		log:        log,
		fpsLimiter: NewFPSLimiter(),
		lastTime:   time.Now(),
	}
}

func (a *App) Run() {
	for !a.window.ShouldClose() {
		a.tick()
	}
}

func (a *App) tick() {
	profiling.ResetFrame()
	startTick := time.Now() // Measure pure processing time
	dt := startTick.Sub(a.lastTime).Seconds()
	a.lastTime = startTick

	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	a.demo.Update(dt)
	a.render()
	a.overlay.Update(a.renderer.Inspector(), dt)

	func() { defer profiling.Track("glfw.SwapBuffers")(); a.window.SwapBuffers() }()

	if processingDuration := time.Since(startTick); processingDuration > slowFrame {
		a.log.Debugf("Slow frame: %v, %d draw calls. Top tasks: %s",
			processingDuration, profiling.Counter("draw_calls"), profiling.TopN(5))
	}

	a.fpsLimiter.Wait(a.demo.Paused())
}

// render draws a frame. A failing frame is logged once until its error
// changes.
func (a *App) render() {
	_, err := a.renderer.Render()
	if err == nil {
		if a.lastErr != "" {
			a.log.Infof("frame errors cleared")
			a.lastErr = ""
		}
		return
	}
	if msg := err.Error(); msg != a.lastErr {
		a.log.Errorf("render: %v", err)
		a.lastErr = msg
	}
}
