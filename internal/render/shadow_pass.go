package render

import (
	"errors"
	"fmt"

	"shadowcaster/internal/profiling"
	"shadowcaster/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// shadowPass renders every model's depth into every light's shadow target
// and snapshots the lights for the main pass. Lights are visited in id order.
func (r *Renderer) shadowPass() (CategorizedLights, error) {
	defer profiling.Track("render.shadowPass")()

	r.surface.SwitchToShadowViewport()
	r.surface.SetClearColor(r.opts.ShadowClearColor)

	var (
		out      CategorizedLights
		errs     []error
		programs = programTracker{device: r.device}
	)
	r.lights.Each(func(id string, light scene.Light) {
		views, projs := light.ViewMatrices(), light.ProjectionMatrices()
		if err := checkLight(light, views, projs); err != nil {
			errs = append(errs, err)
			return
		}
		details := snapshot(light, views, projs)
		target := light.ShadowTarget()
		out.add(target.Type, details)

		r.device.BindFramebuffer(target.Framebuffer)
		r.surface.ClearBuffers(true, true)
		if err := r.drawShadowCasters(&programs, light, details, views, projs); err != nil {
			errs = append(errs, err)
		}
		r.device.BindFramebuffer(0)
	})
	r.stats.ProgramSwitches += programs.switches
	return out, errors.Join(errs...)
}

func (r *Renderer) drawShadowCasters(programs *programTracker, light scene.Light, details LightDetails, views, projs []mgl32.Mat4) error {
	shader := light.Shader()
	if shader == nil {
		return fmt.Errorf("shadow pass: light %q: %w", light.ID(), ErrNoShader)
	}
	programs.use(shader)

	vps := make([]mgl32.Mat4, len(views))
	for i := range views {
		vps[i] = projs[i].Mul4(views[i])
	}
	u := uniforms{device: r.device, program: shader.ID}

	var errs []error
	r.models.Each(func(id string, model scene.Model) {
		if err := r.drawDepth(u, details, vps, model); err != nil {
			err = fmt.Errorf("shadow pass: light %q, model %q: %w", light.ID(), id, err)
			r.log.Warnf("%v", err)
			errs = append(errs, err)
		}
	})
	return errors.Join(errs...)
}

// drawDepth draws one model into the bound shadow target. Only positions are
// streamed; the attribute slot is released before returning.
func (r *Renderer) drawDepth(u uniforms, details LightDetails, vps []mgl32.Mat4, model scene.Model) error {
	u.setIntStages("lightDetails", "vpMatrixCount", int32(len(vps)))
	u.setVec3Stages("lightDetails", "lightPosition", details.Position)
	u.setFloatStages("projectionDetails", "nearPlane", details.NearPlane)
	u.setFloatStages("projectionDetails", "farPlane", details.FarPlane)
	u.setMat4("modelMatrix", model.ModelMatrix())
	for i, vp := range vps {
		u.setMat4Stages("lightDetails", fmt.Sprintf("vpMatrices[%d]", i), vp)
	}

	geometry := model.Geometry()
	positions, err := r.slots.Acquire("VertexArray", geometry.Positions, 3)
	if err != nil {
		return err
	}
	defer positions.Release()
	positions.Enable()

	r.device.DrawTriangles(0, geometry.VertexCount)
	r.stats.ShadowDraws++
	return nil
}
