package render

// StandardMaterial is a flat-colored surface lit by point lights.
type StandardMaterial struct {
	BaseColor Color
	// Unlit materials ignore lights and draw BaseColor as-is.
	Unlit bool
}

// MaterialFromColor is the default material with the given base color.
func MaterialFromColor(c Color) StandardMaterial {
	return StandardMaterial{BaseColor: c}
}

// PointLight emits light equally in all directions from its Transform.
type PointLight struct {
	Color     Color
	Intensity float32
	Range     float32
	// ShadowsEnabled is recorded for completeness. Shadows are not rendered.
	ShadowsEnabled bool
}

// DefaultPointLight matches a white light reaching 20 units.
func DefaultPointLight() PointLight {
	return PointLight{
		Color:     White,
		Intensity: 1,
		Range:     20,
	}
}

// Visibility hides an entity from every camera when set to Hidden.
type Visibility uint8

const (
	VisibilityInherited Visibility = iota
	Visible
	Hidden
)

func (v Visibility) String() string {
	switch v {
	case Visible:
		return "Visible"
	case Hidden:
		return "Hidden"
	default:
		return "Inherited"
	}
}
