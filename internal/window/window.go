// Package window owns the GLFW window and implements the render surface on
// top of it.
package window

import (
	"fmt"

	"shadowcaster/internal/config"
	"shadowcaster/internal/logger"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// Setup creates a 4.1 core context window, makes it current and loads the GL
// bindings. glfw.Init must have been called.
func Setup(cfg config.WindowConfig) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	handle, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	handle.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		handle.Destroy()
		return nil, fmt.Errorf("init gl: %w", err)
	}

	// Frame pacing is left to the FPS limiter unless vsync is requested.
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	return handle, nil
}

// Window is the render surface: it switches viewports between the shadow
// map size and the framebuffer size and clears whatever is bound.
type Window struct {
	handle     *glfw.Window
	shadowSize int32
	log        logger.Logger

	onResize []func(width, height int)
}

func New(handle *glfw.Window, shadowMapSize int, log logger.Logger) *Window {
	w := &Window{handle: handle, shadowSize: int32(shadowMapSize), log: log}
	handle.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
		w.log.Debugf("framebuffer resized to %dx%d", width, height)
		for _, fn := range w.onResize {
			fn(width, height)
		}
	})
	return w
}

// OnResize registers fn to run when the framebuffer size changes.
func (w *Window) OnResize(fn func(width, height int)) {
	w.onResize = append(w.onResize, fn)
}

func (w *Window) Handle() *glfw.Window {
	return w.handle
}

func (w *Window) SwitchToShadowViewport() {
	gl.Viewport(0, 0, w.shadowSize, w.shadowSize)
}

func (w *Window) SwitchToMainViewport() {
	width, height := w.handle.GetFramebufferSize()
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (w *Window) SetClearColor(c mgl32.Vec4) {
	gl.ClearColor(c.X(), c.Y(), c.Z(), c.W())
}

func (w *Window) ClearBuffers(color, depth bool) {
	if mask := clearMask(color, depth); mask != 0 {
		gl.Clear(mask)
	}
}

func clearMask(color, depth bool) uint32 {
	var mask uint32
	if color {
		mask |= gl.COLOR_BUFFER_BIT
	}
	if depth {
		mask |= gl.DEPTH_BUFFER_BIT
	}
	return mask
}

func (w *Window) FramebufferSize() (int, int) {
	return w.handle.GetFramebufferSize()
}

func (w *Window) ShouldClose() bool {
	return w.handle.ShouldClose()
}

func (w *Window) Close() {
	w.handle.SetShouldClose(true)
}

func (w *Window) SwapBuffers() {
	w.handle.SwapBuffers()
}

// Clock reads GLFW's timer.
type Clock struct{}

func (Clock) Now() float64 {
	return glfw.GetTime()
}
