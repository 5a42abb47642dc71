package render

import (
	"errors"
	"fmt"

	"shadowcaster/internal/gpu"
	"shadowcaster/internal/profiling"
	"shadowcaster/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

const diffuseUnit uint32 = 0

// mainFrame is the per-frame state shared by every main pass draw.
type mainFrame struct {
	view    mgl32.Mat4
	proj    mgl32.Mat4
	time    FrameTime
	ambient float32
	lights  CategorizedLights
}

// mainPass draws every model from the active camera, sampling the depth maps
// produced by the shadow pass.
func (r *Renderer) mainPass(lights CategorizedLights, frameTime FrameTime) error {
	defer profiling.Track("render.mainPass")()

	r.surface.SwitchToMainViewport()
	r.surface.SetClearColor(r.opts.ClearColor)
	r.surface.ClearBuffers(true, true)

	camera, ok := r.cameras.Get(r.activeCamera)
	if !ok {
		return fmt.Errorf("main pass: %w: %q", ErrNoActiveCamera, r.activeCamera)
	}
	if r.models.Len() == 0 {
		return nil
	}
	if err := r.checkFallbacks(lights); err != nil {
		return fmt.Errorf("main pass: %w", err)
	}

	frame := mainFrame{
		view:    camera.ViewMatrix(),
		proj:    camera.ProjectionMatrix(),
		time:    frameTime,
		ambient: r.opts.AmbientFactor(),
		lights:  lights,
	}
	programs := programTracker{device: r.device}
	var errs []error
	r.models.Each(func(id string, model scene.Model) {
		if err := r.drawModel(&programs, frame, model); err != nil {
			err = fmt.Errorf("main pass: model %q: %w", id, err)
			r.log.Warnf("%v", err)
			errs = append(errs, err)
		}
	})
	r.stats.ProgramSwitches += programs.switches
	return errors.Join(errs...)
}

// checkFallbacks reports a missing dead light for any category with fewer
// lights than slots.
func (r *Renderer) checkFallbacks(lights CategorizedLights) error {
	var errs []error
	for _, t := range shadowTypes {
		if len(lights.Bucket(t)) < r.budget(t) && r.dead(t) == nil {
			errs = append(errs, fmt.Errorf("%w: %s", ErrNoFallbackLight, t))
		}
	}
	return errors.Join(errs...)
}

func (r *Renderer) drawModel(programs *programTracker, f mainFrame, model scene.Model) error {
	shader := model.Shader()
	if shader == nil {
		return ErrNoShader
	}
	programs.use(shader)
	u := uniforms{device: r.device, program: shader.ID}

	modelMatrix := model.ModelMatrix()
	u.setMat4("modelDetails.modelMatrix", modelMatrix)
	u.setMat4("modelDetails.viewMatrix", f.view)
	u.setMat4("modelDetails.projectionMatrix", f.proj)
	u.setMat4("modelDetails.mvpMatrix", f.proj.Mul4(f.view).Mul4(modelMatrix))
	u.setFloat("timeDetails.totalTime", float32(f.time.Total))
	u.setFloat("timeDetails.deltaTime", float32(f.time.Delta))
	u.setFloat("ambientFactor", f.ambient)
	u.setInt("simpleLightsCount", int32(min(len(f.lights.Simple), r.opts.MaxSimpleLights)))
	u.setInt("cubeLightsCount", int32(min(len(f.lights.Cube), r.opts.MaxCubeLights)))

	r.device.ActiveTexture(diffuseUnit)
	r.device.BindTexture(gpu.Texture2D, model.DiffuseTexture())
	u.setInt("diffuseTexture", int32(diffuseUnit))

	for _, t := range shadowTypes {
		r.bindLights(u, t, f.lights.Bucket(t))
	}

	geometry := model.Geometry()
	positions, err := r.slots.Acquire("VertexArray", geometry.Positions, 3)
	if err != nil {
		return err
	}
	defer positions.Release()
	uvs, err := r.slots.Acquire("UVArray", geometry.UVs, 2)
	if err != nil {
		return err
	}
	defer uvs.Release()
	normals, err := r.slots.Acquire("NormalArray", geometry.Normals, 3)
	if err != nil {
		return err
	}
	defer normals.Release()

	positions.Enable()
	uvs.Enable()
	normals.Enable()
	r.device.DrawTriangles(0, geometry.VertexCount)
	r.stats.DrawCalls++
	return nil
}

// bindLights fills every slot of one light category. Slots past the
// category's lights keep their old uniforms but sample the dead light's depth
// texture, so no sampler is left pointing at an unbound unit.
func (r *Renderer) bindLights(u uniforms, t gpu.ShadowType, details []LightDetails) {
	target := t.TextureTarget()
	budget := r.budget(t)
	live := min(len(details), budget)
	for i := 0; i < budget; i++ {
		var texture uint32
		if i < live {
			d := details[i]
			for _, stage := range mainStages {
				u.setVec3(lightField(t, stage, i, "lightPosition"), d.Position)
				u.setMat4(lightField(t, stage, i, "lightVpMatrix"), d.VPMatrix)
				u.setVec3(lightField(t, stage, i, "lightColor"), d.Color)
				u.setFloat(lightField(t, stage, i, "lightIntensity"), d.Intensity)
				u.setInt(lightField(t, stage, i, "mapWidth"), d.MapWidth)
				u.setInt(lightField(t, stage, i, "mapHeight"), d.MapHeight)
				u.setFloat(lightField(t, stage, i, "nearPlane"), d.NearPlane)
				u.setFloat(lightField(t, stage, i, "farPlane"), d.FarPlane)
			}
			texture = d.Texture
		} else {
			texture = r.dead(t).ShadowTarget().DepthTexture
		}
		unit := r.unit(t, i)
		r.device.ActiveTexture(unit)
		r.device.BindTexture(target, texture)
		u.setInt(lightSampler(t, i), int32(unit))
	}
}
