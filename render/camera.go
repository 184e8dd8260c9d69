package render

import (
	"cmp"
	"math"
	"slices"

	"github.com/plus3/layercams/ecs"
)

// ClearColorMode selects how a camera prepares its target before drawing.
type ClearColorMode uint8

const (
	// ClearDefault clears with the ClearColor resource.
	ClearDefault ClearColorMode = iota
	// ClearCustom clears with ClearColorConfig.Color.
	ClearCustom
	// ClearNone draws over whatever the target already holds.
	ClearNone
)

func (m ClearColorMode) String() string {
	switch m {
	case ClearCustom:
		return "Custom"
	case ClearNone:
		return "None"
	default:
		return "Default"
	}
}

// ClearColorConfig is a camera's clear behaviour.
type ClearColorConfig struct {
	Mode  ClearColorMode
	Color Color
}

var (
	ClearColorDefault = ClearColorConfig{Mode: ClearDefault}
	ClearColorNone    = ClearColorConfig{Mode: ClearNone}
)

func ClearColorCustom(c Color) ClearColorConfig {
	return ClearColorConfig{Mode: ClearCustom, Color: c}
}

// Resolve returns the color to clear with, or false when the target must not be cleared.
func (c ClearColorConfig) Resolve(fallback ClearColor) (Color, bool) {
	switch c.Mode {
	case ClearNone:
		return Color{}, false
	case ClearCustom:
		return c.Color, true
	default:
		return fallback.Color, true
	}
}

// ClearColor is the resource used by cameras with ClearDefault.
type ClearColor struct {
	Color Color
}

// RenderTarget is where a camera draws: the primary window, or an Image asset.
type RenderTarget struct {
	Image Handle[Image]
}

// WindowTarget renders to the primary window.
var WindowTarget = RenderTarget{}

func ImageTarget(h Handle[Image]) RenderTarget {
	return RenderTarget{Image: h}
}

// IsWindow reports whether the target is the primary window.
func (t RenderTarget) IsWindow() bool {
	return !t.Image.IsValid()
}

// Window is the resource describing the primary window.
type Window struct {
	Title         string
	Width, Height int
}

// Camera renders the entities whose layers intersect its own into Target.
// Cameras draw in ascending Order; ties draw in spawn order.
type Camera struct {
	Order      int
	ClearColor ClearColorConfig
	Target     RenderTarget
	IsActive   bool
}

// DefaultCamera is an active order-0 camera drawing to the window.
func DefaultCamera() Camera {
	return Camera{IsActive: true}
}

// TargetSize returns the pixel size of the camera's target.
func (c *Camera) TargetSize(window *Window, images *Assets[Image]) (int, int) {
	if c.Target.IsWindow() {
		if window == nil {
			return 0, 0
		}
		return window.Width, window.Height
	}
	if images == nil {
		return 0, 0
	}
	if img := images.Get(c.Target.Image); img != nil {
		return img.Width, img.Height
	}
	return 0, 0
}

// ProjectionKind selects the projection in use.
type ProjectionKind uint8

const (
	ProjectionPerspective ProjectionKind = iota
	ProjectionOrthographic
)

// PerspectiveProjection has a vertical field of view in radians.
type PerspectiveProjection struct {
	Fov  float32
	Near float32
	Far  float32
}

// OrthographicProjection shows Scale world units per pixel.
type OrthographicProjection struct {
	Scale float32
	Near  float32
	Far   float32
}

// Projection maps view space to clip space.
type Projection struct {
	Kind         ProjectionKind
	Perspective  PerspectiveProjection
	Orthographic OrthographicProjection
}

// DefaultPerspective is a 45 degree perspective projection.
func DefaultPerspective() PerspectiveProjection {
	return PerspectiveProjection{Fov: math.Pi / 4, Near: 0.1, Far: 1000}
}

// Perspective returns a perspective projection with the given vertical fov
// in radians and default clip planes.
func Perspective(fov float32) Projection {
	p := DefaultPerspective()
	p.Fov = fov
	return Projection{Kind: ProjectionPerspective, Perspective: p}
}

// Orthographic returns an orthographic projection with the given scale.
func Orthographic(scale float32) Projection {
	return Projection{
		Kind:         ProjectionOrthographic,
		Orthographic: OrthographicProjection{Scale: scale, Near: 0, Far: 1000},
	}
}

// Near returns the near clip distance.
func (p Projection) Near() float32 {
	if p.Kind == ProjectionOrthographic {
		return p.Orthographic.Near
	}
	return p.Perspective.Near
}

// Matrix returns the projection matrix for a target of the given pixel size.
func (p Projection) Matrix(width, height int) Mat4 {
	if width <= 0 || height <= 0 {
		return Mat4Identity
	}
	aspect := float32(width) / float32(height)
	if p.Kind == ProjectionOrthographic {
		o := p.Orthographic
		hw, hh := float32(width)*o.Scale/2, float32(height)*o.Scale/2
		return Mat4Orthographic(-hw, hw, -hh, hh, o.Near, o.Far)
	}
	pp := p.Perspective
	return Mat4Perspective(pp.Fov, aspect, pp.Near, pp.Far)
}

// VisibleEntities is filled each frame by VisibilitySystem.
type VisibleEntities struct {
	Meshes []ecs.EntityId
	Lights []ecs.EntityId
}

// Len returns how many entities the camera sees.
func (v *VisibleEntities) Len() int {
	return len(v.Meshes) + len(v.Lights)
}

// SortedCamera is one entry of SortedCameras.
type SortedCamera struct {
	Entity     ecs.EntityId
	Camera     *Camera
	Transform  *Transform
	Projection *Projection
	Layers     RenderLayers
}

type cameraView struct {
	Id ecs.EntityId
	*Camera
	*Transform
	Projection *Projection   `ecs:"optional"`
	Layers     *RenderLayers `ecs:"optional"`
}

// SortedCameras returns the active cameras in draw order.
func SortedCameras(storage *ecs.Storage) []SortedCamera {
	var cameras []SortedCamera
	for item := range ecs.NewView[cameraView](storage).Values() {
		if !item.Camera.IsActive {
			continue
		}
		projection := item.Projection
		if projection == nil {
			projection = &Projection{Perspective: DefaultPerspective()}
		}
		cameras = append(cameras, SortedCamera{
			Entity:     item.Id,
			Camera:     item.Camera,
			Transform:  item.Transform,
			Projection: projection,
			Layers:     layersOr(item.Layers),
		})
	}
	slices.SortStableFunc(cameras, func(a, b SortedCamera) int {
		if c := cmp.Compare(a.Camera.Order, b.Camera.Order); c != 0 {
			return c
		}
		return cmp.Compare(a.Entity.Index(), b.Entity.Index())
	})
	return cameras
}
