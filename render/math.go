package render

import "math"

// Vec3 is a 3D vector or point.
type Vec3 struct {
	X, Y, Z float32
}

var (
	Vec3Zero = Vec3{}
	Vec3One  = Vec3{1, 1, 1}
	Vec3X    = Vec3{1, 0, 0}
	Vec3Y    = Vec3{0, 1, 0}
	Vec3Z    = Vec3{0, 0, 1}
)

// V3 is shorthand for Vec3{x, y, z}.
func V3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Mul multiplies component-wise.
func (v Vec3) Mul(o Vec3) Vec3 {
	return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

func (v Vec3) Dot(o Vec3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.Dot(v))))
}

// Normalize returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// ApproxEqual reports whether every component differs by at most eps.
func (v Vec3) ApproxEqual(o Vec3, eps float32) bool {
	return abs(v.X-o.X) <= eps && abs(v.Y-o.Y) <= eps && abs(v.Z-o.Z) <= eps
}

// Vec4 is a homogeneous coordinate.
type Vec4 struct {
	X, Y, Z, W float32
}

// XYZ drops W without dividing.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// Quat is a unit quaternion rotation.
type Quat struct {
	X, Y, Z, W float32
}

var QuatIdentity = Quat{0, 0, 0, 1}

// QuatFromAxisAngle rotates by angle radians around a unit axis.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	s, c := math.Sincos(float64(angle) / 2)
	a := axis.Scale(float32(s))
	return Quat{a.X, a.Y, a.Z, float32(c)}
}

func QuatFromRotationX(angle float32) Quat { return QuatFromAxisAngle(Vec3X, angle) }
func QuatFromRotationY(angle float32) Quat { return QuatFromAxisAngle(Vec3Y, angle) }
func QuatFromRotationZ(angle float32) Quat { return QuatFromAxisAngle(Vec3Z, angle) }

// QuatFromBasis builds the rotation whose columns are the orthonormal axes x, y and z.
func QuatFromBasis(x, y, z Vec3) Quat {
	m00, m10, m20 := x.X, x.Y, x.Z
	m01, m11, m21 := y.X, y.Y, y.Z
	m02, m12, m22 := z.X, z.Y, z.Z

	var q Quat
	trace := m00 + m11 + m22
	switch {
	case trace > 0:
		s := sqrt(trace+1) * 2
		q = Quat{(m21 - m12) / s, (m02 - m20) / s, (m10 - m01) / s, 0.25 * s}
	case m00 > m11 && m00 > m22:
		s := sqrt(1+m00-m11-m22) * 2
		q = Quat{0.25 * s, (m01 + m10) / s, (m02 + m20) / s, (m21 - m12) / s}
	case m11 > m22:
		s := sqrt(1+m11-m00-m22) * 2
		q = Quat{(m01 + m10) / s, 0.25 * s, (m12 + m21) / s, (m02 - m20) / s}
	default:
		s := sqrt(1+m22-m00-m11) * 2
		q = Quat{(m02 + m20) / s, (m12 + m21) / s, 0.25 * s, (m10 - m01) / s}
	}
	return q.Normalize()
}

// Mul composes rotations: the result applies o first, then q.
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

// Conjugate is the inverse of a unit quaternion.
func (q Quat) Conjugate() Quat {
	return Quat{-q.X, -q.Y, -q.Z, q.W}
}

func (q Quat) Normalize() Quat {
	l := sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if l == 0 {
		return QuatIdentity
	}
	return Quat{q.X / l, q.Y / l, q.Z / l, q.W / l}
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// Mat4 is a column-major 4x4 matrix: element (row r, column c) is m[c*4+r].
type Mat4 [16]float32

var Mat4Identity = Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// Mat4FromTRS builds translation * rotation * scale.
func Mat4FromTRS(t Vec3, r Quat, s Vec3) Mat4 {
	x2, y2, z2 := r.X+r.X, r.Y+r.Y, r.Z+r.Z
	xx, yy, zz := r.X*x2, r.Y*y2, r.Z*z2
	xy, xz, yz := r.X*y2, r.X*z2, r.Y*z2
	wx, wy, wz := r.W*x2, r.W*y2, r.W*z2

	return Mat4{
		(1 - (yy + zz)) * s.X, (xy + wz) * s.X, (xz - wy) * s.X, 0,
		(xy - wz) * s.Y, (1 - (xx + zz)) * s.Y, (yz + wx) * s.Y, 0,
		(xz + wy) * s.Z, (yz - wx) * s.Z, (1 - (xx + yy)) * s.Z, 0,
		t.X, t.Y, t.Z, 1,
	}
}

// Mat4Perspective is a right-handed perspective projection looking down -Z
// that maps the near..far range to NDC depth -1..1.
func Mat4Perspective(fovY, aspect, near, far float32) Mat4 {
	f := 1 / float32(math.Tan(float64(fovY)/2))
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) / (near - far), -1,
		0, 0, 2 * far * near / (near - far), 0,
	}
}

// Mat4Orthographic is a right-handed orthographic projection of the given box.
func Mat4Orthographic(left, right, bottom, top, near, far float32) Mat4 {
	return Mat4{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, -2 / (far - near), 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), -(far + near) / (far - near), 1,
	}
}

// Mul returns m * o.
func (m Mat4) Mul(o Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+r] * o[c*4+k]
			}
			out[c*4+r] = sum
		}
	}
	return out
}

func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// TransformPoint applies m to p with w=1 and divides by the resulting w.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	v := m.MulVec4(Vec4{p.X, p.Y, p.Z, 1})
	if v.W == 0 || v.W == 1 {
		return v.XYZ()
	}
	return v.XYZ().Scale(1 / v.W)
}

func sqrt(f float32) float32 {
	return float32(math.Sqrt(float64(f)))
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * math.Pi / 180
}
