package render

import (
	"fmt"

	"shadowcaster/internal/gpu"

	"github.com/go-gl/mathgl/mgl32"
)

// Light uniforms are declared once per shader stage; the stage name is part
// of the uniform name, e.g. "lightDetails_geometry.lightPosition".
var (
	shadowStages = []string{"vertex", "geometry", "fragment"}
	mainStages   = []string{"vertex", "fragment"}
)

// uniforms writes uniforms of one program, resolving each name as it goes.
// Names the program does not declare resolve to gpu.NoLocation and the write
// is dropped.
type uniforms struct {
	device  gpu.Device
	program uint32
}

func (u uniforms) location(name string) int32 {
	return u.device.UniformLocation(u.program, name)
}

func (u uniforms) setInt(name string, v int32) {
	u.device.Uniform1i(u.location(name), v)
}

func (u uniforms) setFloat(name string, v float32) {
	u.device.Uniform1f(u.location(name), v)
}

func (u uniforms) setVec3(name string, v mgl32.Vec3) {
	u.device.Uniform3f(u.location(name), v.X(), v.Y(), v.Z())
}

func (u uniforms) setMat4(name string, m mgl32.Mat4) {
	u.device.UniformMatrix4(u.location(name), m)
}

// stageName builds "<block>_<stage>.<field>".
func stageName(block, stage, field string) string {
	return block + "_" + stage + "." + field
}

func (u uniforms) setIntStages(block, field string, v int32) {
	for _, stage := range shadowStages {
		u.setInt(stageName(block, stage, field), v)
	}
}

func (u uniforms) setFloatStages(block, field string, v float32) {
	for _, stage := range shadowStages {
		u.setFloat(stageName(block, stage, field), v)
	}
}

func (u uniforms) setVec3Stages(block, field string, v mgl32.Vec3) {
	for _, stage := range shadowStages {
		u.setVec3(stageName(block, stage, field), v)
	}
}

func (u uniforms) setMat4Stages(block, field string, m mgl32.Mat4) {
	for _, stage := range shadowStages {
		u.setMat4(stageName(block, stage, field), m)
	}
}

// categoryPrefix is the uniform prefix of a light category in the main
// shader: "simple" or "cube".
func categoryPrefix(t gpu.ShadowType) string {
	if t == gpu.ShadowCube {
		return "cube"
	}
	return "simple"
}

// lightField names one field of a light array entry, e.g.
// "cubeLightDetails_fragment[2].lightColor".
func lightField(t gpu.ShadowType, stage string, i int, field string) string {
	return fmt.Sprintf("%sLightDetails_%s[%d].%s", categoryPrefix(t), stage, i, field)
}

// lightSampler names the depth sampler of a light array entry, e.g.
// "simpleLightTextures[0]".
func lightSampler(t gpu.ShadowType, i int) string {
	array := gpu.SimpleLightSamplers
	if t == gpu.ShadowCube {
		array = gpu.CubeLightSamplers
	}
	return fmt.Sprintf("%s[%d]", array, i)
}

// programTracker skips glUseProgram when the requested program is already
// bound.
type programTracker struct {
	device   gpu.Device
	current  uint32
	bound    bool
	switches int
}

func (p *programTracker) use(s *gpu.Shader) {
	if p.bound && p.current == s.ID {
		return
	}
	p.device.UseProgram(s.ID)
	p.current = s.ID
	p.bound = true
	p.switches++
}
