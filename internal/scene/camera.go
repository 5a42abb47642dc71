package scene

import "github.com/go-gl/mathgl/mgl32"

// Camera supplies the view and projection of the main pass.
type Camera interface {
	ID() string
	ViewMatrix() mgl32.Mat4
	ProjectionMatrix() mgl32.Mat4
}

// PerspectiveCamera looks from Position toward Target.
type PerspectiveCamera struct {
	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32

	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	id string
}

func NewPerspectiveCamera(id string, width, height int) *PerspectiveCamera {
	if id == "" {
		id = NewID("camera")
	}
	c := &PerspectiveCamera{
		FOV:       60.0,
		NearPlane: 0.1,
		FarPlane:  1000.0,
		Position:  mgl32.Vec3{0, 5, 10},
		Up:        mgl32.Vec3{0, 1, 0},
		id:        id,
	}
	c.SetViewport(width, height)
	return c
}

func (c *PerspectiveCamera) ID() string {
	return c.id
}

// SetViewport updates the aspect ratio. Degenerate sizes (a minimized
// window) keep the previous ratio.
func (c *PerspectiveCamera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		if c.AspectRatio == 0 {
			c.AspectRatio = 1
		}
		return
	}
	c.AspectRatio = float32(width) / float32(height)
}

func (c *PerspectiveCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

func (c *PerspectiveCamera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}
