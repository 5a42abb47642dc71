package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestTransformMatrixOrder(t *testing.T) {
	tr := IdentityTransform()
	tr.Position = mgl32.Vec3{10, 0, 0}
	tr.Scale = mgl32.Vec3{2, 2, 2}
	tr.Rotation = mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})

	// scale, then rotate +X onto -Z, then translate
	got := tr.Matrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 10, got.X(), 1e-5)
	assert.InDelta(t, 0, got.Y(), 1e-5)
	assert.InDelta(t, -2, got.Z(), 1e-5)
}

func TestMeshModelDefaults(t *testing.T) {
	m := NewMeshModel("", "crate", nil, Geometry{VertexCount: 36}, 5)

	assert.NotEmpty(t, m.ID())
	assert.Equal(t, "crate", m.Name())
	assert.Equal(t, mgl32.Ident4(), m.ModelMatrix())
	assert.Equal(t, ColliderNone, m.Collider().Kind)

	m.SetCollider(Collider{Kind: ColliderBox, HalfExtents: mgl32.Vec3{0.5, 0.5, 0.5}})
	assert.Equal(t, ColliderBox, m.Collider().Kind)
}

func TestCubeMeshLayout(t *testing.T) {
	m := CubeMesh()

	assert.Equal(t, int32(36), m.VertexCount())
	assert.Len(t, m.UVs, 36*2)
	assert.Len(t, m.Normals, 36*3)

	// Every triangle winds counter-clockwise around its outward normal.
	for tri := 0; tri < 12; tri++ {
		v := func(i int) mgl32.Vec3 {
			o := (tri*3 + i) * 3
			return mgl32.Vec3{m.Positions[o], m.Positions[o+1], m.Positions[o+2]}
		}
		o := tri * 9
		n := mgl32.Vec3{m.Normals[o], m.Normals[o+1], m.Normals[o+2]}
		face := v(1).Sub(v(0)).Cross(v(2).Sub(v(0)))
		if face.Dot(n) <= 0 {
			t.Fatalf("triangle %d winds against its normal %v", tri, n)
		}
		for i := 0; i < 3; i++ {
			p := v(i)
			for axis := 0; axis < 3; axis++ {
				assert.InDelta(t, 0.5, mgl32.Abs(p[axis]), 1e-6, "vertices sit on cube corners")
			}
		}
	}
}

func TestPlaneMesh(t *testing.T) {
	m := PlaneMesh(20, 4)

	assert.Equal(t, int32(6), m.VertexCount())
	for i := 0; i < 6; i++ {
		assert.Equal(t, float32(0), m.Positions[i*3+1])
		assert.Equal(t, float32(1), m.Normals[i*3+1])
		assert.LessOrEqual(t, m.UVs[i*2], float32(4))
	}
	assert.Equal(t, float32(-10), m.Positions[0])
}
