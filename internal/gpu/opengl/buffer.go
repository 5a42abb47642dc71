package opengl

import "github.com/go-gl/gl/v4.1-core/gl"

// NewArrayBuffer uploads data into a new static array buffer.
func NewArrayBuffer(data []float32) uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vbo
}

// DeleteBuffers frees array buffers, skipping zero handles.
func DeleteBuffers(buffers ...uint32) {
	for _, b := range buffers {
		if b != 0 {
			gl.DeleteBuffers(1, &b)
		}
	}
}
