package render

// PbrBundle spawns a lit mesh.
type PbrBundle struct {
	Mesh       Handle[Mesh]
	Material   Handle[StandardMaterial]
	Transform  Transform
	Visibility Visibility
}

// NewPbrBundle fills in an identity transform.
func NewPbrBundle(mesh Handle[Mesh], material Handle[StandardMaterial]) PbrBundle {
	return PbrBundle{Mesh: mesh, Material: material, Transform: IdentityTransform()}
}

func (b PbrBundle) Components() []any {
	return []any{b.Mesh, b.Material, b.Transform, b.Visibility}
}

// PointLightBundle spawns a point light.
type PointLightBundle struct {
	PointLight PointLight
	Transform  Transform
	Visibility Visibility
}

func NewPointLightBundle(light PointLight, transform Transform) PointLightBundle {
	return PointLightBundle{PointLight: light, Transform: transform}
}

func (b PointLightBundle) Components() []any {
	return []any{b.PointLight, b.Transform, b.Visibility}
}

// Camera3dBundle spawns a 3D camera with empty VisibleEntities.
type Camera3dBundle struct {
	Camera     Camera
	Projection Projection
	Transform  Transform
}

// NewCamera3dBundle is an active, order-0, window camera at the origin with
// the default perspective projection.
func NewCamera3dBundle() Camera3dBundle {
	return Camera3dBundle{
		Camera:     DefaultCamera(),
		Projection: Projection{Perspective: DefaultPerspective()},
		Transform:  IdentityTransform(),
	}
}

func (b Camera3dBundle) Components() []any {
	return []any{b.Camera, b.Projection, b.Transform, VisibleEntities{}}
}
