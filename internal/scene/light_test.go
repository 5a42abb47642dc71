package scene

import (
	"strings"
	"testing"

	"shadowcaster/internal/gpu"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	simpleTarget = gpu.ShadowTarget{Type: gpu.ShadowSimple, DepthTexture: 11, Framebuffer: 21, Width: 1024, Height: 1024}
	cubeTarget   = gpu.ShadowTarget{Type: gpu.ShadowCube, DepthTexture: 12, Framebuffer: 22, Width: 512, Height: 512}
)

func TestLightMatrixCounts(t *testing.T) {
	spot, err := NewSpotLight("spot", nil, simpleTarget)
	require.NoError(t, err)
	dir, err := NewDirectionalLight("sun", nil, simpleTarget)
	require.NoError(t, err)
	point, err := NewPointLight("bulb", nil, cubeTarget)
	require.NoError(t, err)

	for _, l := range []Light{spot, dir, point} {
		views, projs := l.ViewMatrices(), l.ProjectionMatrices()
		want := l.ShadowTarget().Type.Views()
		assert.Len(t, views, want, "%s views", l.ID())
		assert.Len(t, projs, want, "%s projections", l.ID())
	}
}

func TestLightRejectsWrongShadowTarget(t *testing.T) {
	_, err := NewSpotLight("spot", nil, cubeTarget)
	assert.Error(t, err)
	_, err = NewDirectionalLight("sun", nil, cubeTarget)
	assert.Error(t, err)
	_, err = NewPointLight("bulb", nil, simpleTarget)
	assert.Error(t, err)
}

func TestLightGeneratesID(t *testing.T) {
	a, err := NewPointLight("", nil, cubeTarget)
	require.NoError(t, err)
	b, err := NewPointLight("", nil, cubeTarget)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a.ID(), "point-"), a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestPointLightFacesLookOutward(t *testing.T) {
	l, err := NewPointLight("bulb", nil, cubeTarget)
	require.NoError(t, err)
	l.SetPosition(mgl32.Vec3{1, 2, 3})

	for i, view := range l.ViewMatrices() {
		// A point one unit along the face direction lands on the view axis,
		// in front of the camera (negative z in view space).
		p := l.Position().Add(cubeFaces[i].dir)
		v := view.Mul4x1(p.Vec4(1))
		assert.InDelta(t, 0, v.X(), 1e-5, "face %d x", i)
		assert.InDelta(t, 0, v.Y(), 1e-5, "face %d y", i)
		assert.InDelta(t, -1, v.Z(), 1e-5, "face %d z", i)
	}
}

func TestSpotLightLooksAtTarget(t *testing.T) {
	l, err := NewSpotLight("spot", nil, simpleTarget)
	require.NoError(t, err)
	l.SetPosition(mgl32.Vec3{0, 10, 0})
	l.SetTarget(mgl32.Vec3{0, 0, 0})

	vp := l.ProjectionMatrices()[0].Mul4(l.ViewMatrices()[0])
	clip := vp.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	ndc := clip.Vec3().Mul(1 / clip.W())
	assert.InDelta(t, 0, ndc.X(), 1e-5)
	assert.InDelta(t, 0, ndc.Y(), 1e-5)
	assert.True(t, ndc.Z() > -1 && ndc.Z() < 1, "target must be inside the depth range, got %v", ndc.Z())
}

func TestDeadLights(t *testing.T) {
	s, err := NewDeadSimpleLight(simpleTarget)
	require.NoError(t, err)
	c, err := NewDeadCubeLight(cubeTarget)
	require.NoError(t, err)

	assert.Equal(t, DeadSimpleLightID, s.ID())
	assert.Equal(t, DeadCubeLightID, c.ID())
	assert.Nil(t, s.Shader())
	assert.Equal(t, uint32(12), c.ShadowTarget().DepthTexture)
}

func TestLightSetters(t *testing.T) {
	l, err := NewDirectionalLight("sun", nil, simpleTarget)
	require.NoError(t, err)

	l.SetColor(mgl32.Vec3{1, 0.5, 0})
	l.SetIntensity(3)
	l.SetClipPlanes(1, 50)
	l.SetDirection(mgl32.Vec3{})

	assert.Equal(t, mgl32.Vec3{1, 0.5, 0}, l.Color())
	assert.Equal(t, float32(3), l.Intensity())
	assert.Equal(t, float32(1), l.NearPlane())
	assert.Equal(t, float32(50), l.FarPlane())
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, l.direction, "zero direction must be ignored")
}
