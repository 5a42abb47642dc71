package render

import (
	"fmt"

	"shadowcaster/internal/gpu"
	"shadowcaster/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// LightDetails is the per-frame snapshot of a light consumed by the main
// pass.
type LightDetails struct {
	LightID   string
	Position  mgl32.Vec3
	VPMatrix  mgl32.Mat4
	Color     mgl32.Vec3
	Intensity float32
	MapWidth  int32
	MapHeight int32
	NearPlane float32
	FarPlane  float32
	Texture   uint32
}

// CategorizedLights partitions a frame's light snapshots by shadow type.
type CategorizedLights struct {
	Simple []LightDetails
	Cube   []LightDetails
}

// Bucket returns the snapshots of one shadow type.
func (c CategorizedLights) Bucket(t gpu.ShadowType) []LightDetails {
	if t == gpu.ShadowCube {
		return c.Cube
	}
	return c.Simple
}

// Len returns the number of snapshots over both buckets.
func (c CategorizedLights) Len() int {
	return len(c.Simple) + len(c.Cube)
}

func (c *CategorizedLights) add(t gpu.ShadowType, d LightDetails) {
	if t == gpu.ShadowCube {
		c.Cube = append(c.Cube, d)
		return
	}
	c.Simple = append(c.Simple, d)
}

func (c CategorizedLights) clone() CategorizedLights {
	return CategorizedLights{
		Simple: append([]LightDetails(nil), c.Simple...),
		Cube:   append([]LightDetails(nil), c.Cube...),
	}
}

// checkLight verifies that a light carries one view/projection pair per view
// of its shadow type.
func checkLight(l scene.Light, views, projs []mgl32.Mat4) error {
	t := l.ShadowTarget().Type
	if t != gpu.ShadowSimple && t != gpu.ShadowCube {
		return fmt.Errorf("%w: light %q has shadow type %s", ErrMalformedLight, l.ID(), t)
	}
	if len(views) != t.Views() || len(projs) != t.Views() {
		return fmt.Errorf("%w: light %q (%s) has %d views and %d projections, want %d",
			ErrMalformedLight, l.ID(), t, len(views), len(projs), t.Views())
	}
	return nil
}

// snapshot captures a light for the main pass. The view-projection matrix is
// built from the first view/projection pair, for cube lights as well.
func snapshot(l scene.Light, views, projs []mgl32.Mat4) LightDetails {
	target := l.ShadowTarget()
	return LightDetails{
		LightID:   l.ID(),
		Position:  l.Position(),
		VPMatrix:  projs[0].Mul4(views[0]),
		Color:     l.Color(),
		Intensity: l.Intensity(),
		MapWidth:  target.Width,
		MapHeight: target.Height,
		NearPlane: l.NearPlane(),
		FarPlane:  l.FarPlane(),
		Texture:   target.DepthTexture,
	}
}
