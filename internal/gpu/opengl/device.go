package opengl

import (
	"shadowcaster/internal/gpu"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// GLDevice issues gpu.Device calls against the current OpenGL context.
// gl.Init must have been called on the thread that owns the context.
type GLDevice struct {
	vao uint32
}

var _ gpu.Device = (*GLDevice)(nil)

// NewGLDevice configures depth testing and binds the single vertex array
// object that all attribute bindings are recorded into. A core profile
// context refuses attribute pointers without a bound VAO.
func NewGLDevice() *GLDevice {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.TEXTURE_CUBE_MAP_SEAMLESS)

	d := &GLDevice{}
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)
	return d
}

func (d *GLDevice) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *GLDevice) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *GLDevice) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (d *GLDevice) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (d *GLDevice) Uniform3f(location int32, x, y, z float32) {
	gl.Uniform3f(location, x, y, z)
}

func (d *GLDevice) UniformMatrix4(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (d *GLDevice) BindFramebuffer(framebuffer uint32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, framebuffer)
}

func (d *GLDevice) ActiveTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
}

func (d *GLDevice) BindTexture(target gpu.TextureTarget, texture uint32) {
	gl.BindTexture(glTextureTarget(target), texture)
}

func (d *GLDevice) BindArrayBuffer(buffer uint32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
}

func (d *GLDevice) EnableVertexAttribArray(slot uint32) {
	gl.EnableVertexAttribArray(slot)
}

func (d *GLDevice) DisableVertexAttribArray(slot uint32) {
	gl.DisableVertexAttribArray(slot)
}

// VertexAttribPointer describes tightly packed float components starting at
// offset zero of the currently bound array buffer.
func (d *GLDevice) VertexAttribPointer(slot uint32, components int32) {
	gl.VertexAttribPointerWithOffset(slot, components, gl.FLOAT, false, 0, 0)
}

func (d *GLDevice) DrawTriangles(first, count int32) {
	gl.DrawArrays(gl.TRIANGLES, first, count)
}

// Dispose deletes the vertex array object created by NewGLDevice.
func (d *GLDevice) Dispose() {
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
}

func glTextureTarget(t gpu.TextureTarget) uint32 {
	if t == gpu.TextureCubeMap {
		return gl.TEXTURE_CUBE_MAP
	}
	return gl.TEXTURE_2D
}
