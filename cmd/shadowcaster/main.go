package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"shadowcaster/internal/config"
	"shadowcaster/internal/game"
	"shadowcaster/internal/gpu/opengl"
	"shadowcaster/internal/logger"
	"shadowcaster/internal/render"
	"shadowcaster/internal/window"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
)

func init() {
	// GLFW and GL calls must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "shadowcaster.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	config.Apply(cfg)

	log, err := newLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	// On SIGINT/SIGTERM closer runs this from its own goroutine, so it must
	// not touch GL state.
	closer.Bind(func() {
		log.Infof("shutting down")
		log.Close()
	})

	if err := run(cfg, log); err != nil {
		log.Errorf("%v", err)
		closer.Exit(1)
	}
	closer.Close()
}

func newLogger(cfg config.LoggingConfig) (*logger.DefaultLogger, error) {
	level := logger.ParseLevel(cfg.Level)
	if cfg.File == "" {
		return logger.New("shadowcaster", level), nil
	}
	return logger.NewMultiLogger("shadowcaster", level, cfg.File)
}

func run(cfg *config.Config, log logger.Logger) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	handle, err := window.Setup(cfg.Window)
	if err != nil {
		return err
	}
	defer handle.Destroy()
	win := window.New(handle, cfg.Shadows.MapSize, log)

	device := opengl.NewGLDevice()
	defer device.Dispose()

	opts := render.OptionsFromConfig(cfg)
	opts.Clock = window.Clock{}
	opts.Logger = log
	renderer := render.New(device, win, opts)

	width, height := win.FramebufferSize()
	demo, err := game.NewDemo(renderer, cfg, width, height, log)
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}
	defer demo.Release()

	app := game.NewApp(win, renderer, demo, cfg.Debug, log)
	game.SetupWindowHandlers(app)

	log.Infof("running %dx%d, shadow maps %d, lights %d simple / %d cube",
		width, height, cfg.Shadows.MapSize, cfg.Lights.MaxSimple, cfg.Lights.MaxCube)
	app.Run()
	return nil
}
