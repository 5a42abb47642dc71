// Command shadercheck compiles the renderer's GLSL programs in a hidden
// window and lists the uniforms each one keeps after linking.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"

	"shadowcaster/internal/config"
	"shadowcaster/internal/gpu"
	"shadowcaster/internal/gpu/opengl"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	dir := flag.String("dir", "assets/shaders", "directory holding the GLSL sources")
	verbose := flag.Bool("v", false, "print every active uniform")
	configPath := flag.String("config", "shadowcaster.yaml", "config whose light budgets the main program must match")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := glfw.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(64, 64, "shadercheck", nil, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer window.Destroy()
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("OpenGL %s\n", gl.GoStr(gl.GetString(gl.VERSION)))

	failed := 0
	for _, name := range gpu.ProgramNames {
		shader, err := opengl.NewShader(name, gpu.ProgramPaths(*dir, name))
		if err != nil {
			fmt.Printf("FAIL %s: %v\n", name, err)
			failed++
			continue
		}
		uniforms := opengl.ActiveUniforms(shader.ID)
		opengl.DeleteShader(shader)
		if name == gpu.MainProgram {
			if err := gpu.CheckLightSamplers(uniforms, cfg.Lights.MaxSimple, cfg.Lights.MaxCube); err != nil {
				fmt.Printf("FAIL %s: %v\n", name, err)
				failed++
				continue
			}
		}
		sort.Slice(uniforms, func(i, j int) bool { return uniforms[i].Name < uniforms[j].Name })
		fmt.Printf("ok   %s: %d active uniforms\n", name, len(uniforms))
		if *verbose {
			for _, u := range uniforms {
				if u.Size > 1 {
					fmt.Printf("       %s (array of %d)\n", u.Name, u.Size)
				} else {
					fmt.Printf("       %s\n", u.Name)
				}
			}
		}
	}

	if failed > 0 {
		// deferred cleanup is skipped; the process exits anyway
		os.Exit(1)
	}
}
