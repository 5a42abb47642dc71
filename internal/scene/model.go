package scene

import (
	"shadowcaster/internal/gpu"

	"github.com/go-gl/mathgl/mgl32"
)

// Geometry holds the array buffers of a non-indexed triangle list.
type Geometry struct {
	Positions   uint32 // vec3 per vertex
	UVs         uint32 // vec2 per vertex
	Normals     uint32 // vec3 per vertex
	VertexCount int32
}

// ColliderKind selects the collider shape of a model.
type ColliderKind int

const (
	ColliderNone ColliderKind = iota
	ColliderBox
	ColliderSphere
)

// Collider describes the shape collision code tests a model against. The
// renderer never reads it.
type Collider struct {
	Kind        ColliderKind
	HalfExtents mgl32.Vec3
	Radius      float32
}

// Model is a renderable, textured mesh.
type Model interface {
	ID() string
	Name() string
	ModelMatrix() mgl32.Mat4
	Shader() *gpu.Shader
	Geometry() Geometry
	DiffuseTexture() uint32
	Collider() Collider
}

// Transform places a model in the world.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// IdentityTransform has no translation or rotation and unit scale.
func IdentityTransform() Transform {
	return Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// Matrix composes translation, rotation and scale, applied to vertices in
// reverse order.
func (t Transform) Matrix() mgl32.Mat4 {
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return translate.Mul4(t.Rotation.Normalize().Mat4()).Mul4(scale)
}

// MeshModel is the stock Model implementation.
type MeshModel struct {
	Transform Transform

	id       string
	name     string
	shader   *gpu.Shader
	geometry Geometry
	texture  uint32
	collider Collider
}

// NewMeshModel creates a model with an identity transform. An empty id is
// replaced with a generated one.
func NewMeshModel(id, name string, shader *gpu.Shader, geometry Geometry, texture uint32) *MeshModel {
	if id == "" {
		id = NewID("model")
	}
	return &MeshModel{
		Transform: IdentityTransform(),
		id:        id,
		name:      name,
		shader:    shader,
		geometry:  geometry,
		texture:   texture,
	}
}

func (m *MeshModel) ID() string              { return m.id }
func (m *MeshModel) Name() string            { return m.name }
func (m *MeshModel) ModelMatrix() mgl32.Mat4 { return m.Transform.Matrix() }
func (m *MeshModel) Shader() *gpu.Shader     { return m.shader }
func (m *MeshModel) Geometry() Geometry      { return m.geometry }
func (m *MeshModel) DiffuseTexture() uint32  { return m.texture }
func (m *MeshModel) Collider() Collider      { return m.collider }

// SetCollider replaces the collider shape.
func (m *MeshModel) SetCollider(c Collider) { m.collider = c }

// Rotate applies an extra rotation of angle radians around axis.
func (m *MeshModel) Rotate(angle float32, axis mgl32.Vec3) {
	m.Transform.Rotation = mgl32.QuatRotate(angle, axis.Normalize()).Mul(m.Transform.Rotation)
}
