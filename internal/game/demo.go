package game

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"shadowcaster/internal/config"
	"shadowcaster/internal/gpu"
	"shadowcaster/internal/gpu/opengl"
	"shadowcaster/internal/logger"
	"shadowcaster/internal/render"
	"shadowcaster/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// Entity ids of the demo scene.
const (
	SpotLightID   = "light-spot"
	PointLightID  = "light-point"
	GroundID      = "model-ground"
	OrbitCameraID = "camera-orbit"
	TopCameraID   = "camera-top"
)

// sceneResources are the GPU objects the demo scene is built from.
type sceneResources struct {
	mainShader         *gpu.Shader
	simpleShadowShader *gpu.Shader
	cubeShadowShader   *gpu.Shader

	spotTarget       gpu.ShadowTarget
	pointTarget      gpu.ShadowTarget
	deadSimpleTarget gpu.ShadowTarget
	deadCubeTarget   gpu.ShadowTarget

	cube  scene.Geometry
	plane scene.Geometry

	groundTexture uint32
	cubeTexture   uint32
}

// orbit positions a camera on a sphere around a center point.
type orbit struct {
	yaw      float32 // radians around +Y
	pitch    float32 // radians above the horizon
	distance float32
}

const (
	minPitch    = -1.4
	maxPitch    = 1.4
	minDistance = 3
	maxDistance = 40
)

// Scripted scene events, in seconds of unpaused animation time.
const (
	orbitSpeed          = 0.25 // radians per second
	spotToggleInterval  = 8.0
	cameraCycleInterval = 15.0
)

func (o orbit) position(center mgl32.Vec3) mgl32.Vec3 {
	cp := float32(math.Cos(float64(o.pitch)))
	return center.Add(mgl32.Vec3{
		o.distance * cp * float32(math.Sin(float64(o.yaw))),
		o.distance * float32(math.Sin(float64(o.pitch))),
		o.distance * cp * float32(math.Cos(float64(o.yaw))),
	})
}

func (o *orbit) move(dYaw, dPitch, dDistance float32) {
	o.yaw += dYaw
	o.pitch = mgl32.Clamp(o.pitch+dPitch, minPitch, maxPitch)
	o.distance = mgl32.Clamp(o.distance+dDistance, minDistance, maxDistance)
}

// Demo is a small scene: a textured ground plane, a few cubes, a spot light
// aimed at the origin and a point light circling above the cubes.
type Demo struct {
	renderer *render.Renderer
	log      logger.Logger
	res      sceneResources
	textures *opengl.TextureCache
	solid    []uint32

	cameras      []*scene.PerspectiveCamera
	activeCamera int
	orbit        orbit

	spot   *scene.SpotLight
	spotOn bool
	point  *scene.PointLight
	cubes  []*scene.MeshModel
	models []scene.Model

	elapsed         float64
	paused          bool
	nextSpotToggle  float64
	nextCameraCycle float64
}

// NewDemo creates the demo's GPU resources and registers its entities with r.
func NewDemo(r *render.Renderer, cfg *config.Config, width, height int, log logger.Logger) (*Demo, error) {
	d := &Demo{renderer: r, log: log, textures: opengl.NewTextureCache()}
	if err := d.load(cfg); err != nil {
		d.Release()
		return nil, err
	}
	if err := d.populate(width, height); err != nil {
		d.Release()
		return nil, err
	}
	log.Infof("demo scene ready: %d models, %d lights", len(d.models), len(r.Inspector().LightIDs()))
	return d, nil
}

func (d *Demo) load(cfg *config.Config) error {
	shaders := map[string]**gpu.Shader{
		gpu.MainProgram:         &d.res.mainShader,
		gpu.SimpleShadowProgram: &d.res.simpleShadowShader,
		gpu.CubeShadowProgram:   &d.res.cubeShadowShader,
	}
	for _, name := range gpu.ProgramNames {
		shader, err := opengl.NewShader(name, gpu.ProgramPaths(cfg.Shaders.Dir, name))
		if err != nil {
			return err
		}
		*shaders[name] = shader
	}
	if err := checkMainProgram(opengl.ActiveUniforms(d.res.mainShader.ID), cfg.Lights); err != nil {
		return err
	}

	size := int32(cfg.Shadows.MapSize)
	targets := []struct {
		dst  *gpu.ShadowTarget
		kind gpu.ShadowType
		size int32
	}{
		{&d.res.spotTarget, gpu.ShadowSimple, size},
		{&d.res.pointTarget, gpu.ShadowCube, size},
		{&d.res.deadSimpleTarget, gpu.ShadowSimple, 1},
		{&d.res.deadCubeTarget, gpu.ShadowCube, 1},
	}
	for _, t := range targets {
		target, err := opengl.NewShadowTarget(t.kind, t.size, t.size)
		if err != nil {
			return err
		}
		*t.dst = target
	}

	d.res.cube = upload(scene.CubeMesh())
	d.res.plane = upload(scene.PlaneMesh(20, 8))
	d.res.groundTexture = d.texture(cfg.Scene.GroundTexture, color.RGBA{R: 150, G: 150, B: 140, A: 255})
	d.res.cubeTexture = d.texture(cfg.Scene.CubeTexture, color.RGBA{R: 200, G: 120, B: 60, A: 255})
	return nil
}

// checkMainProgram rejects a main program whose light sampler arrays differ
// from the configured light budgets.
func checkMainProgram(uniforms []gpu.Uniform, lights config.LightsConfig) error {
	if err := gpu.CheckLightSamplers(uniforms, lights.MaxSimple, lights.MaxCube); err != nil {
		return fmt.Errorf("%s program: %w", gpu.MainProgram, err)
	}
	return nil
}

func upload(mesh scene.MeshData) scene.Geometry {
	return scene.Geometry{
		Positions:   opengl.NewArrayBuffer(mesh.Positions),
		UVs:         opengl.NewArrayBuffer(mesh.UVs),
		Normals:     opengl.NewArrayBuffer(mesh.Normals),
		VertexCount: mesh.VertexCount(),
	}
}

// texture loads path through the cache, falling back to a flat color.
func (d *Demo) texture(path string, fallback color.RGBA) uint32 {
	if path != "" {
		tex, err := d.textures.Get(path)
		if err == nil {
			return tex
		}
		d.log.Warnf("texture %s: %v, using a flat color", path, err)
	}
	tex := opengl.SolidTexture(fallback)
	d.solid = append(d.solid, tex)
	return tex
}

// populate builds the scene entities on top of d.res and registers them.
func (d *Demo) populate(width, height int) error {
	r := d.renderer

	deadSimple, err := scene.NewDeadSimpleLight(d.res.deadSimpleTarget)
	if err != nil {
		return err
	}
	deadCube, err := scene.NewDeadCubeLight(d.res.deadCubeTarget)
	if err != nil {
		return err
	}
	if err := errors.Join(r.RegisterDeadSimpleLight(deadSimple), r.RegisterDeadCubeLight(deadCube)); err != nil {
		return err
	}

	d.spot, err = scene.NewSpotLight(SpotLightID, d.res.simpleShadowShader, d.res.spotTarget)
	if err != nil {
		return err
	}
	d.spot.SetPosition(mgl32.Vec3{6, 10, 6})
	d.spot.SetTarget(mgl32.Vec3{0, 0, 0})
	d.spot.SetColor(mgl32.Vec3{1, 0.9, 0.75})
	d.spot.SetClipPlanes(1, 40)
	r.RegisterLight(d.spot)
	d.spotOn = true

	d.point, err = scene.NewPointLight(PointLightID, d.res.cubeShadowShader, d.res.pointTarget)
	if err != nil {
		return err
	}
	d.point.SetColor(mgl32.Vec3{0.6, 0.7, 1})
	d.point.SetIntensity(0.8)
	r.RegisterLight(d.point)

	ground := scene.NewMeshModel(GroundID, "ground", d.res.mainShader, d.res.plane, d.res.groundTexture)
	ground.SetCollider(scene.Collider{Kind: scene.ColliderBox, HalfExtents: mgl32.Vec3{10, 0.01, 10}})
	d.addModel(ground)

	for i, pos := range []mgl32.Vec3{{-2.5, 0.5, 0}, {0, 1, -1.5}, {2.5, 0.75, 1}} {
		cube := scene.NewMeshModel(fmt.Sprintf("model-cube-%d", i), "cube", d.res.mainShader, d.res.cube, d.res.cubeTexture)
		cube.Transform.Position = pos
		cube.Transform.Scale = mgl32.Vec3{1, 1, 1}.Mul(1 + 0.5*float32(i))
		cube.SetCollider(scene.Collider{Kind: scene.ColliderBox, HalfExtents: mgl32.Vec3{0.5, 0.5, 0.5}})
		d.cubes = append(d.cubes, cube)
		d.addModel(cube)
	}

	d.orbit = orbit{yaw: 0.6, pitch: 0.45, distance: 14}
	orbitCam := scene.NewPerspectiveCamera(OrbitCameraID, width, height)
	topCam := scene.NewPerspectiveCamera(TopCameraID, width, height)
	topCam.Position = mgl32.Vec3{0, 22, 0.01}
	d.cameras = []*scene.PerspectiveCamera{orbitCam, topCam}
	for _, c := range d.cameras {
		r.RegisterCamera(c)
	}
	r.SetActiveCamera(OrbitCameraID)

	d.nextSpotToggle = spotToggleInterval
	d.nextCameraCycle = cameraCycleInterval
	d.Update(0)
	return nil
}

func (d *Demo) addModel(m *scene.MeshModel) {
	d.models = append(d.models, m)
	d.renderer.RegisterModel(m)
}

// Update advances the animation by dt seconds. Besides moving the point light
// and spinning the cubes it slowly orbits the camera, toggles the spot light
// every spotToggleInterval and switches cameras every cameraCycleInterval.
func (d *Demo) Update(dt float64) {
	if !d.paused {
		d.elapsed += dt
		t := d.elapsed
		d.point.SetPosition(mgl32.Vec3{
			float32(4 * math.Cos(t*0.7)),
			float32(3 + 0.5*math.Sin(t*1.3)),
			float32(4 * math.Sin(t*0.7)),
		})
		for i, cube := range d.cubes {
			cube.Rotate(float32(dt)*(0.3+0.2*float32(i)), mgl32.Vec3{0, 1, 0})
		}
		d.orbit.move(float32(dt)*orbitSpeed, 0, 0)

		for d.elapsed >= d.nextSpotToggle {
			d.ToggleSpotLight()
			d.nextSpotToggle += spotToggleInterval
		}
		for d.elapsed >= d.nextCameraCycle {
			d.CycleCamera()
			d.nextCameraCycle += cameraCycleInterval
		}
	}
	d.cameras[0].Position = d.orbit.position(mgl32.Vec3{})
}

// Orbit moves the orbit camera; the change shows on the next Update.
func (d *Demo) Orbit(dYaw, dPitch, dDistance float32) {
	d.orbit.move(dYaw, dPitch, dDistance)
}

// SetPaused freezes or resumes the animation and the scripted events.
func (d *Demo) SetPaused(paused bool) {
	if d.paused != paused {
		d.log.Debugf("animation paused=%v", paused)
	}
	d.paused = paused
}

func (d *Demo) Paused() bool {
	return d.paused
}

// SpotLightOn reports whether the spot light is registered.
func (d *Demo) SpotLightOn() bool {
	return d.spotOn
}

// ToggleSpotLight registers or deregisters the spot light.
func (d *Demo) ToggleSpotLight() {
	if d.spotOn {
		d.renderer.DeregisterLight(SpotLightID)
	} else {
		d.renderer.RegisterLight(d.spot)
	}
	d.spotOn = !d.spotOn
	d.log.Infof("spot light on=%v", d.spotOn)
}

// CycleCamera activates the next camera.
func (d *Demo) CycleCamera() {
	d.activeCamera = (d.activeCamera + 1) % len(d.cameras)
	id := d.cameras[d.activeCamera].ID()
	d.renderer.SetActiveCamera(id)
	d.log.Infof("active camera %s", id)
}

func (d *Demo) ActiveCamera() *scene.PerspectiveCamera {
	return d.cameras[d.activeCamera]
}

// SetViewport keeps every camera's aspect ratio in line with the window.
func (d *Demo) SetViewport(width, height int) {
	for _, c := range d.cameras {
		c.SetViewport(width, height)
	}
}

// Release frees the scene's GPU objects. Call it after the last Render.
func (d *Demo) Release() {
	opengl.DeleteShader(d.res.mainShader)
	opengl.DeleteShader(d.res.simpleShadowShader)
	opengl.DeleteShader(d.res.cubeShadowShader)
	for _, t := range []*gpu.ShadowTarget{&d.res.spotTarget, &d.res.pointTarget, &d.res.deadSimpleTarget, &d.res.deadCubeTarget} {
		opengl.DeleteShadowTarget(t)
	}
	for _, g := range []*scene.Geometry{&d.res.cube, &d.res.plane} {
		opengl.DeleteBuffers(g.Positions, g.UVs, g.Normals)
		*g = scene.Geometry{}
	}
	d.textures.Purge()
	opengl.DeleteTextures(d.solid...)
	d.solid = nil
}
