package render

import "math"

// CircleResolution is the number of rim vertices used by Circle.
const CircleResolution = 32

// Mesh is an indexed triangle list. Triangles wind counter-clockwise when seen
// from the side their normals point to.
type Mesh struct {
	Positions []Vec3
	Normals   []Vec3
	Indices   []uint32
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the three vertex indices of triangle i.
func (m *Mesh) Triangle(i int) (uint32, uint32, uint32) {
	return m.Indices[i*3], m.Indices[i*3+1], m.Indices[i*3+2]
}

// Circle is a filled disc of the given radius in the XY plane, facing +Z.
func Circle(radius float32) Mesh {
	m := Mesh{
		Positions: make([]Vec3, 0, CircleResolution+1),
		Normals:   make([]Vec3, 0, CircleResolution+1),
		Indices:   make([]uint32, 0, CircleResolution*3),
	}
	m.Positions = append(m.Positions, Vec3Zero)
	m.Normals = append(m.Normals, Vec3Z)

	for i := 0; i < CircleResolution; i++ {
		s, c := math.Sincos(2 * math.Pi * float64(i) / CircleResolution)
		m.Positions = append(m.Positions, Vec3{radius * float32(c), radius * float32(s), 0})
		m.Normals = append(m.Normals, Vec3Z)

		next := uint32(i+1)%CircleResolution + 1
		m.Indices = append(m.Indices, 0, uint32(i+1), next)
	}
	return m
}

// cuboidFaces lists each face normal with two tangents whose cross product is the normal.
var cuboidFaces = [6][3]Vec3{
	{Vec3X, Vec3Y, Vec3Z},
	{Vec3X.Neg(), Vec3Z, Vec3Y},
	{Vec3Y, Vec3Z, Vec3X},
	{Vec3Y.Neg(), Vec3X, Vec3Z},
	{Vec3Z, Vec3X, Vec3Y},
	{Vec3Z.Neg(), Vec3Y, Vec3X},
}

// Cuboid is an axis-aligned box with the given full extents, centered on the origin.
func Cuboid(x, y, z float32) Mesh {
	half := Vec3{x / 2, y / 2, z / 2}
	m := Mesh{
		Positions: make([]Vec3, 0, 24),
		Normals:   make([]Vec3, 0, 24),
		Indices:   make([]uint32, 0, 36),
	}

	for _, face := range cuboidFaces {
		n, u, v := face[0], face[1].Mul(half), face[2].Mul(half)
		center := n.Mul(half)
		base := uint32(len(m.Positions))

		m.Positions = append(m.Positions,
			center.Sub(u).Sub(v),
			center.Add(u).Sub(v),
			center.Add(u).Add(v),
			center.Sub(u).Add(v),
		)
		m.Normals = append(m.Normals, n, n, n, n)
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}
