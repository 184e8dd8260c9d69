package render

// Transform places an entity in world space.
type Transform struct {
	Translation Vec3
	Rotation    Quat
	Scale       Vec3
}

// IdentityTransform has no translation, no rotation and unit scale.
func IdentityTransform() Transform {
	return Transform{Rotation: QuatIdentity, Scale: Vec3One}
}

func FromXYZ(x, y, z float32) Transform {
	return FromTranslation(Vec3{x, y, z})
}

func FromTranslation(t Vec3) Transform {
	tr := IdentityTransform()
	tr.Translation = t
	return tr
}

func FromRotation(r Quat) Transform {
	tr := IdentityTransform()
	tr.Rotation = r
	return tr
}

// LookingAt returns a copy of t rotated so that Forward points at target,
// with up as the preferred up direction.
func (t Transform) LookingAt(target, up Vec3) Transform {
	t.LookAt(target, up)
	return t
}

// LookAt rotates t in place so that Forward points at target. If target
// coincides with the translation, or up is parallel to the view direction,
// the nearest valid basis is used instead.
func (t *Transform) LookAt(target, up Vec3) {
	back := t.Translation.Sub(target).Normalize()
	if back == Vec3Zero {
		back = Vec3Z
	}
	right := up.Cross(back).Normalize()
	if right == Vec3Zero {
		right = Vec3Y.Cross(back).Normalize()
		if right == Vec3Zero {
			right = Vec3X
		}
	}
	t.Rotation = QuatFromBasis(right, back.Cross(right), back)
}

// Forward is the local -Z axis in world space.
func (t Transform) Forward() Vec3 {
	return t.Rotation.Rotate(Vec3{0, 0, -1})
}

// Up is the local +Y axis in world space.
func (t Transform) Up() Vec3 {
	return t.Rotation.Rotate(Vec3Y)
}

// Right is the local +X axis in world space.
func (t Transform) Right() Vec3 {
	return t.Rotation.Rotate(Vec3X)
}

// Matrix is the local-to-world matrix.
func (t Transform) Matrix() Mat4 {
	return Mat4FromTRS(t.Translation, t.Rotation, t.Scale)
}

// TransformPoint maps a local point to world space.
func (t Transform) TransformPoint(p Vec3) Vec3 {
	return t.Rotation.Rotate(p.Mul(t.Scale)).Add(t.Translation)
}

// TransformDirection rotates a local direction into world space, ignoring
// translation and scale.
func (t Transform) TransformDirection(d Vec3) Vec3 {
	return t.Rotation.Rotate(d)
}

// InverseTransformPoint maps a world point into t's local space.
func (t Transform) InverseTransformPoint(p Vec3) Vec3 {
	local := t.Rotation.Conjugate().Rotate(p.Sub(t.Translation))
	return Vec3{safeDiv(local.X, t.Scale.X), safeDiv(local.Y, t.Scale.Y), safeDiv(local.Z, t.Scale.Z)}
}

func safeDiv(a, b float32) float32 {
	if b == 0 {
		return 0
	}
	return a / b
}
