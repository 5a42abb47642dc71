package gpu

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Shader is a linked program. Uniform locations are looked up by name at draw
// time, so a program is free to omit any optional uniform.
type Shader struct {
	ID   uint32
	Name string
}

// ShaderPaths names the stage sources of a program. Geometry is optional.
type ShaderPaths struct {
	Vertex   string
	Geometry string
	Fragment string
}

// Programs the renderer ships sources for.
const (
	MainProgram         = "main"
	SimpleShadowProgram = "shadow_simple"
	CubeShadowProgram   = "shadow_cube"
)

// ProgramNames lists the shipped programs in load order.
var ProgramNames = []string{MainProgram, SimpleShadowProgram, CubeShadowProgram}

// ProgramPaths returns the stage files of a shipped program under dir:
// <name>.vert, <name>.frag and, for the cube shadow program, <name>.geom.
func ProgramPaths(dir, name string) ShaderPaths {
	base := filepath.Join(dir, name)
	paths := ShaderPaths{Vertex: base + ".vert", Fragment: base + ".frag"}
	if name == CubeShadowProgram {
		paths.Geometry = base + ".geom"
	}
	return paths
}

// Sampler arrays of the main program, one entry per light slot.
const (
	SimpleLightSamplers = "simpleLightTextures"
	CubeLightSamplers   = "cubeLightTextures"
)

// ErrLightBudgetMismatch means a main program's light sampler array is not
// exactly as long as the configured light budget.
var ErrLightBudgetMismatch = errors.New("gpu: light sampler array does not match the light budget")

// Uniform is an active uniform of a linked program. Size is the array length,
// 1 for a plain uniform.
type Uniform struct {
	Name string
	Size int32
}

// CheckLightSamplers compares the main program's light sampler arrays with
// the light budgets. Every entry must be written each draw: an entry left at
// its default unit 0 aliases the diffuse sampler and GL rejects the draw.
func CheckLightSamplers(uniforms []Uniform, maxSimple, maxCube int) error {
	sizes := make(map[string]int, len(uniforms))
	for _, u := range uniforms {
		sizes[strings.TrimSuffix(u.Name, "[0]")] = int(u.Size)
	}

	var errs []error
	for _, c := range []struct {
		name   string
		budget int
	}{
		{SimpleLightSamplers, maxSimple},
		{CubeLightSamplers, maxCube},
	} {
		if got := sizes[c.name]; got != c.budget {
			errs = append(errs, fmt.Errorf("%w: %s has %d entries, budget is %d", ErrLightBudgetMismatch, c.name, got, c.budget))
		}
	}
	return errors.Join(errs...)
}
