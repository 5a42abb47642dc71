package game

import (
	"testing"

	"shadowcaster/internal/config"
	"shadowcaster/internal/gpu"
	"shadowcaster/internal/gpu/gputest"
	"shadowcaster/internal/logger"
	"shadowcaster/internal/render"
	"shadowcaster/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock float64

func (c fixedClock) Now() float64 { return float64(c) }

type nopSurface struct{}

func (nopSurface) SwitchToShadowViewport()        {}
func (nopSurface) SwitchToMainViewport()          {}
func (nopSurface) SetClearColor(mgl32.Vec4)       {}
func (nopSurface) ClearBuffers(color, depth bool) {}

func newTestDemo(t *testing.T) (*Demo, *render.Renderer, *gputest.Recorder) {
	t.Helper()
	rec := gputest.NewRecorder()
	opts := render.DefaultOptions()
	opts.Clock = fixedClock(0)
	r := render.New(rec, nopSurface{}, opts)

	target := func(kind gpu.ShadowType, tex uint32, size int32) gpu.ShadowTarget {
		return gpu.ShadowTarget{Type: kind, DepthTexture: tex, Framebuffer: tex + 100, Width: size, Height: size}
	}
	d := &Demo{
		renderer: r,
		log:      logger.Nop(),
		res: sceneResources{
			mainShader:         &gpu.Shader{ID: 1, Name: "main"},
			simpleShadowShader: &gpu.Shader{ID: 2, Name: "shadow_simple"},
			cubeShadowShader:   &gpu.Shader{ID: 3, Name: "shadow_cube"},
			spotTarget:         target(gpu.ShadowSimple, 10, 512),
			pointTarget:        target(gpu.ShadowCube, 11, 512),
			deadSimpleTarget:   target(gpu.ShadowSimple, 12, 1),
			deadCubeTarget:     target(gpu.ShadowCube, 13, 1),
			cube:               scene.Geometry{Positions: 20, UVs: 21, Normals: 22, VertexCount: 36},
			plane:              scene.Geometry{Positions: 30, UVs: 31, Normals: 32, VertexCount: 6},
			groundTexture:      40,
			cubeTexture:        41,
		},
	}
	require.NoError(t, d.populate(800, 600))
	return d, r, rec
}

func TestDemoSceneRenders(t *testing.T) {
	_, r, rec := newTestDemo(t)

	lights, err := r.Render()
	require.NoError(t, err)

	require.Len(t, lights.Simple, 1)
	require.Len(t, lights.Cube, 1)
	assert.Equal(t, SpotLightID, lights.Simple[0].LightID)
	assert.Equal(t, PointLightID, lights.Cube[0].LightID)

	in := r.Inspector()
	assert.Len(t, in.ModelIDs(), 4)
	assert.Equal(t, []string{OrbitCameraID, TopCameraID}, in.CameraIDs())
	assert.Equal(t, OrbitCameraID, in.ActiveCameraID())
	assert.Equal(t, 4, in.LastFrame().DrawCalls)
	assert.Equal(t, 8, in.LastFrame().ShadowDraws)
	assert.Len(t, rec.Draws, 12)
}

func TestDemoToggleSpotLight(t *testing.T) {
	d, r, _ := newTestDemo(t)

	d.ToggleSpotLight()
	lights, err := r.Render()
	require.NoError(t, err)
	assert.Empty(t, lights.Simple)

	d.ToggleSpotLight()
	lights, err = r.Render()
	require.NoError(t, err)
	assert.Len(t, lights.Simple, 1)
}

func TestDemoUpdateMovesPointLightUnlessPaused(t *testing.T) {
	d, _, _ := newTestDemo(t)

	before := d.point.Position()
	d.Update(0.5)
	moved := d.point.Position()
	assert.NotEqual(t, before, moved)

	d.SetPaused(true)
	require.True(t, d.Paused())
	d.Update(0.5)
	assert.Equal(t, moved, d.point.Position())
}

func TestDemoCycleCamera(t *testing.T) {
	d, r, _ := newTestDemo(t)

	d.CycleCamera()
	assert.Equal(t, TopCameraID, r.Inspector().ActiveCameraID())
	assert.Equal(t, TopCameraID, d.ActiveCamera().ID())

	d.CycleCamera()
	assert.Equal(t, OrbitCameraID, r.Inspector().ActiveCameraID())
}

func TestDemoOrbitClamps(t *testing.T) {
	d, _, _ := newTestDemo(t)

	d.Orbit(0, 10, 100)
	assert.Equal(t, float32(maxPitch), d.orbit.pitch)
	assert.Equal(t, float32(maxDistance), d.orbit.distance)

	d.Orbit(0, -20, -100)
	assert.Equal(t, float32(minPitch), d.orbit.pitch)
	assert.Equal(t, float32(minDistance), d.orbit.distance)

	d.Update(0)
	assert.InDelta(t, minDistance, d.cameras[0].Position.Len(), 1e-4)
}

func TestDemoSetViewport(t *testing.T) {
	d, _, _ := newTestDemo(t)

	d.SetViewport(1000, 500)
	for _, c := range d.cameras {
		assert.InDelta(t, 2.0, c.AspectRatio, 1e-6)
	}
}

func TestDemoScriptedEvents(t *testing.T) {
	d, r, _ := newTestDemo(t)
	yaw := d.orbit.yaw

	d.Update(spotToggleInterval - 0.1)
	assert.True(t, d.SpotLightOn())
	assert.Greater(t, d.orbit.yaw, yaw, "camera orbits on its own")

	d.Update(0.2)
	assert.False(t, d.SpotLightOn())
	lights, err := r.Render()
	require.NoError(t, err)
	assert.Empty(t, lights.Simple)
	assert.Equal(t, OrbitCameraID, r.Inspector().ActiveCameraID())

	d.Update(cameraCycleInterval - spotToggleInterval)
	assert.Equal(t, TopCameraID, r.Inspector().ActiveCameraID())
	assert.False(t, d.SpotLightOn())

	d.Update(1)
	assert.True(t, d.SpotLightOn(), "spot light comes back one interval later")
	lights, err = r.Render()
	require.NoError(t, err)
	assert.Len(t, lights.Simple, 1)
}

func TestDemoPausedSkipsScriptedEvents(t *testing.T) {
	d, r, _ := newTestDemo(t)

	d.SetPaused(true)
	d.Update(cameraCycleInterval * 2)
	assert.True(t, d.SpotLightOn())
	assert.Equal(t, OrbitCameraID, r.Inspector().ActiveCameraID())

	d.SetPaused(false)
	d.Update(spotToggleInterval)
	assert.False(t, d.SpotLightOn())
}

func TestCheckMainProgramRejectsBudgetMismatch(t *testing.T) {
	uniforms := []gpu.Uniform{
		{Name: "diffuseTexture", Size: 1},
		{Name: gpu.SimpleLightSamplers + "[0]", Size: 7},
		{Name: gpu.CubeLightSamplers + "[0]", Size: 8},
	}

	assert.NoError(t, checkMainProgram(uniforms, config.LightsConfig{MaxSimple: 7, MaxCube: 8}))

	err := checkMainProgram(uniforms, config.LightsConfig{MaxSimple: 7, MaxCube: 4})
	assert.ErrorIs(t, err, gpu.ErrLightBudgetMismatch)
	assert.ErrorContains(t, err, "main program")
}
