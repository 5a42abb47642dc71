package opengl

import (
	"fmt"

	"shadowcaster/internal/gpu"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// NewShadowTarget allocates a depth texture of the given type and size and
// attaches it to a framebuffer with no color buffer.
func NewShadowTarget(t gpu.ShadowType, width, height int32) (gpu.ShadowTarget, error) {
	if width <= 0 || height <= 0 {
		return gpu.ShadowTarget{}, fmt.Errorf("shadow target %s: invalid size %dx%d", t, width, height)
	}
	st := gpu.ShadowTarget{Type: t, Width: width, Height: height}

	target := glTextureTarget(t.TextureTarget())
	gl.GenTextures(1, &st.DepthTexture)
	gl.BindTexture(target, st.DepthTexture)

	switch t {
	case gpu.ShadowCube:
		for face := uint32(0); face < 6; face++ {
			gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+face, 0, gl.DEPTH_COMPONENT24,
				width, height, 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
		}
		gl.TexParameteri(target, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(target, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(target, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	default:
		gl.TexImage2D(target, 0, gl.DEPTH_COMPONENT24,
			width, height, 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
		// Outside the light frustum counts as lit.
		gl.TexParameteri(target, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
		gl.TexParameteri(target, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
		border := [4]float32{1, 1, 1, 1}
		gl.TexParameterfv(target, gl.TEXTURE_BORDER_COLOR, &border[0])
	}
	gl.TexParameteri(target, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(target, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	gl.GenFramebuffers(1, &st.Framebuffer)
	gl.BindFramebuffer(gl.FRAMEBUFFER, st.Framebuffer)
	// A cube texture attaches as a layered target; the cube depth shader
	// routes each primitive to a face with gl_Layer.
	gl.FramebufferTexture(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, st.DepthTexture, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(target, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		DeleteShadowTarget(&st)
		return gpu.ShadowTarget{}, fmt.Errorf("shadow target %s: framebuffer incomplete: status=0x%X", t, status)
	}
	return st, nil
}

// DeleteShadowTarget frees the framebuffer and its depth texture.
func DeleteShadowTarget(st *gpu.ShadowTarget) {
	if st.Framebuffer != 0 {
		gl.DeleteFramebuffers(1, &st.Framebuffer)
		st.Framebuffer = 0
	}
	if st.DepthTexture != 0 {
		gl.DeleteTextures(1, &st.DepthTexture)
		st.DepthTexture = 0
	}
}
