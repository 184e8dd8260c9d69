package renderer

import (
	"cmp"
	"slices"

	"github.com/plus3/layercams/render"
)

// Ambient is the light every lit surface receives without any point light.
const Ambient = 0.15

type screenTri struct {
	P     [3][2]float32
	Depth float32
	Color render.Color
}

type litPoint struct {
	Position render.Vec3
	Light    render.PointLight
}

// viewport maps world space into the pixels of one camera target.
type viewport struct {
	view          render.Transform
	proj          render.Mat4
	near          float32
	width, height float32
}

func newViewport(view render.Transform, projection render.Projection, width, height int) viewport {
	return viewport{
		view:   view,
		proj:   projection.Matrix(width, height),
		near:   projection.Near(),
		width:  float32(width),
		height: float32(height),
	}
}

// project returns the pixel position and view depth of p. ok is false when p
// lies behind the near plane.
func (v viewport) project(p render.Vec3) (x, y, depth float32, ok bool) {
	local := v.view.InverseTransformPoint(p)
	depth = -local.Z
	if depth < v.near {
		return 0, 0, depth, false
	}
	clip := v.proj.MulVec4(render.Vec4{X: local.X, Y: local.Y, Z: local.Z, W: 1})
	if clip.W == 0 {
		return 0, 0, depth, false
	}
	nx, ny := clip.X/clip.W, clip.Y/clip.W
	return (nx + 1) / 2 * v.width, (1 - ny) / 2 * v.height, depth, true
}

// appendMesh projects the front-facing triangles of mesh and appends them
// shaded. Triangles crossing the near plane are dropped whole.
func (v viewport) appendMesh(out []screenTri, mesh *render.Mesh, model render.Transform, material render.StandardMaterial, lights []litPoint) []screenTri {
	for i := range mesh.TriangleCount() {
		a, b, c := mesh.Triangle(i)
		world := [3]render.Vec3{
			model.TransformPoint(mesh.Positions[a]),
			model.TransformPoint(mesh.Positions[b]),
			model.TransformPoint(mesh.Positions[c]),
		}

		var tri screenTri
		visible := true
		for k, p := range world {
			x, y, depth, ok := v.project(p)
			if !ok {
				visible = false
				break
			}
			tri.P[k] = [2]float32{x, y}
			tri.Depth += depth / 3
		}
		if !visible || !frontFacing(tri.P) {
			continue
		}

		normal := world[1].Sub(world[0]).Cross(world[2].Sub(world[0])).Normalize()
		center := world[0].Add(world[1]).Add(world[2]).Scale(1.0 / 3)
		tri.Color = shade(material, center, normal, lights)
		out = append(out, tri)
	}
	return out
}

// frontFacing reports whether a triangle that winds counter-clockwise in
// world space still does so on screen. Pixel Y grows downwards, which flips
// the sign of the area.
func frontFacing(p [3][2]float32) bool {
	area := (p[1][0]-p[0][0])*(p[2][1]-p[0][1]) - (p[1][1]-p[0][1])*(p[2][0]-p[0][0])
	return area < 0
}

// shade is flat lambert lighting with linear falloff to each light's range.
func shade(material render.StandardMaterial, p, normal render.Vec3, lights []litPoint) render.Color {
	base := material.BaseColor
	if material.Unlit {
		return base
	}

	r, g, b := float32(Ambient), float32(Ambient), float32(Ambient)
	for _, l := range lights {
		to := l.Position.Sub(p)
		dist := to.Length()
		if dist == 0 || (l.Light.Range > 0 && dist >= l.Light.Range) {
			continue
		}
		lambert := normal.Dot(to.Scale(1 / dist))
		if lambert <= 0 {
			continue
		}
		k := lambert * l.Light.Intensity
		if l.Light.Range > 0 {
			k *= 1 - dist/l.Light.Range
		}
		r += k * l.Light.Color.R
		g += k * l.Light.Color.G
		b += k * l.Light.Color.B
	}
	return render.Color{
		R: min(1, base.R*r),
		G: min(1, base.G*g),
		B: min(1, base.B*b),
		A: base.A,
	}
}

// sortBackToFront orders triangles for the painter's algorithm.
func sortBackToFront(tris []screenTri) {
	slices.SortStableFunc(tris, func(a, b screenTri) int {
		return cmp.Compare(b.Depth, a.Depth)
	})
}
