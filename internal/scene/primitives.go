package scene

import "github.com/go-gl/mathgl/mgl32"

// MeshData is CPU-side vertex data for a non-indexed triangle list, laid out
// to match Geometry: 3 floats per position, 2 per UV, 3 per normal.
type MeshData struct {
	Positions []float32
	UVs       []float32
	Normals   []float32
}

// VertexCount returns the number of vertices in the mesh.
func (m MeshData) VertexCount() int32 {
	return int32(len(m.Positions) / 3)
}

// corner signs of the two triangles of a quad, counter-clockwise when seen
// from the side the normal points to.
var quadCorners = [6][2]float32{
	{-1, -1}, {1, -1}, {1, 1},
	{-1, -1}, {1, 1}, {-1, 1},
}

// appendQuad emits a square centered at center, spanned by u and v where
// u x v points along normal.
func (m *MeshData) appendQuad(center, normal, u, v mgl32.Vec3, half, uvScale float32) {
	for _, c := range quadCorners {
		p := center.Add(u.Mul(c[0] * half)).Add(v.Mul(c[1] * half))
		m.Positions = append(m.Positions, p.X(), p.Y(), p.Z())
		m.UVs = append(m.UVs, (c[0]+1)*0.5*uvScale, (c[1]+1)*0.5*uvScale)
		m.Normals = append(m.Normals, normal.X(), normal.Y(), normal.Z())
	}
}

// CubeMesh returns a unit cube centered at the origin.
func CubeMesh() MeshData {
	faces := [6][3]mgl32.Vec3{
		// normal, u, v
		{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
		{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
		{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
		{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
		{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
		{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
	}
	var m MeshData
	for _, f := range faces {
		m.appendQuad(f[0].Mul(0.5), f[0], f[1], f[2], 0.5, 1)
	}
	return m
}

// PlaneMesh returns an upward facing square of the given side length in the
// XZ plane, with UVs repeating uvRepeat times across it.
func PlaneMesh(size, uvRepeat float32) MeshData {
	var m MeshData
	m.appendQuad(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, size*0.5, uvRepeat)
	return m
}
