package render_test

import (
	"math"
	"testing"

	"github.com/plus3/layercams/render"
	"github.com/stretchr/testify/assert"
)

const eps = 1e-4

func TestQuatRotate(t *testing.T) {
	q := render.QuatFromRotationX(-math.Pi / 2)

	assert.True(t, q.Rotate(render.Vec3Z).ApproxEqual(render.Vec3Y, eps), "+Z turns to +Y")
	assert.True(t, q.Rotate(render.Vec3Y).ApproxEqual(render.Vec3Z.Neg(), eps), "+Y turns to -Z")

	back := q.Conjugate().Rotate(q.Rotate(render.V3(1, 2, 3)))
	assert.True(t, back.ApproxEqual(render.V3(1, 2, 3), eps))
}

func TestQuatMulAppliesRightFirst(t *testing.T) {
	a := render.QuatFromRotationY(math.Pi / 2)
	b := render.QuatFromRotationX(math.Pi / 2)

	v := render.V3(0, 1, 0)
	assert.True(t, a.Mul(b).Rotate(v).ApproxEqual(a.Rotate(b.Rotate(v)), eps))
}

func TestLookingAt(t *testing.T) {
	eye := render.V3(-2.5, 4.5, 9)
	tr := render.FromTranslation(eye).LookingAt(render.Vec3Zero, render.Vec3Y)

	assert.True(t, tr.Forward().ApproxEqual(eye.Neg().Normalize(), eps))
	assert.Greater(t, tr.Up().Y, float32(0), "up stays above the horizon")
	assert.InDelta(t, 0, tr.Right().Y, eps, "no roll")
	assert.Equal(t, eye, tr.Translation)
}

func TestLookingAtDegenerate(t *testing.T) {
	tr := render.FromXYZ(0, 5, 0).LookingAt(render.Vec3Zero, render.Vec3Y)

	assert.True(t, tr.Forward().ApproxEqual(render.Vec3Y.Neg(), eps))
}

func TestTransformPointRoundTrip(t *testing.T) {
	tr := render.Transform{
		Translation: render.V3(1, 2, 3),
		Rotation:    render.QuatFromRotationZ(0.7),
		Scale:       render.V3(2, 2, 2),
	}
	p := render.V3(0.5, -1, 4)

	world := tr.TransformPoint(p)
	assert.True(t, tr.Matrix().TransformPoint(p).ApproxEqual(world, eps))
	assert.True(t, tr.InverseTransformPoint(world).ApproxEqual(p, eps))
}

func TestPerspectiveProjection(t *testing.T) {
	m := render.Mat4Perspective(render.Radians(90), 1, 0.1, 100)

	center := m.TransformPoint(render.V3(0, 0, -10))
	assert.InDelta(t, 0, center.X, eps)
	assert.InDelta(t, 0, center.Y, eps)

	edge := m.TransformPoint(render.V3(10, 0, -10))
	assert.InDelta(t, 1, edge.X, eps, "90 degree fov puts x=z on the frustum edge")

	assert.InDelta(t, -1, m.TransformPoint(render.V3(0, 0, -0.1)).Z, eps)
	assert.InDelta(t, 1, m.TransformPoint(render.V3(0, 0, -100)).Z, eps)
}
