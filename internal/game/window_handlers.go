package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// SetupWindowHandlers wires window callbacks to the app.
func SetupWindowHandlers(app *App) {
	app.window.OnResize(func(width, height int) {
		app.demo.SetViewport(width, height)
	})

	// The animation only runs while the window has focus
	app.window.Handle().SetFocusCallback(func(w *glfw.Window, focused bool) {
		app.demo.SetPaused(!focused)
	})

	// Repaint while the window is being resized
	app.window.Handle().SetRefreshCallback(func(w *glfw.Window) {
		app.render()
		app.window.SwapBuffers()
	})
}
