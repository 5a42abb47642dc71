package gpu

import "github.com/go-gl/mathgl/mgl32"

// NoLocation is what UniformLocation returns for a name the program does not
// declare. Writes to it are discarded by the driver.
const NoLocation int32 = -1

// TextureTarget selects the texture binding point a texture is attached to.
type TextureTarget int

const (
	Texture2D TextureTarget = iota
	TextureCubeMap
)

// Device is the subset of the OpenGL API driven by the render passes.
// Texture units are plain indices (0 for GL_TEXTURE0) rather than GL enums.
type Device interface {
	UseProgram(program uint32)
	UniformLocation(program uint32, name string) int32
	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform3f(location int32, x, y, z float32)
	UniformMatrix4(location int32, m mgl32.Mat4)

	BindFramebuffer(framebuffer uint32)
	ActiveTexture(unit uint32)
	BindTexture(target TextureTarget, texture uint32)

	BindArrayBuffer(buffer uint32)
	EnableVertexAttribArray(slot uint32)
	DisableVertexAttribArray(slot uint32)
	VertexAttribPointer(slot uint32, components int32)
	DrawTriangles(first, count int32)
}
