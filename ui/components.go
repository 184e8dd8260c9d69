package ui

import (
	"math"
	"strings"

	"github.com/plus3/layercams/ecs"
	"github.com/plus3/layercams/render"
)

// Node marks a UI entity and holds its computed layout.
type Node struct {
	Rect    Rect
	Border  Edges
	Padding Edges
}

// ContentRect is the area inside the border and padding.
func (n *Node) ContentRect() Rect {
	return n.Rect.Inset(n.Border.Add(n.Padding))
}

type BackgroundColor struct {
	Color render.Color
}

type BorderColor struct {
	Color render.Color
}

// BorderRadius rounds each corner of a node.
type BorderRadius struct {
	TopLeft, TopRight, BottomRight, BottomLeft Val
}

// BorderRadiusMax rounds every corner as far as the node size allows.
var BorderRadiusMax = BorderRadiusAll(Px(math.MaxFloat32))

func BorderRadiusAll(v Val) BorderRadius {
	return BorderRadius{v, v, v, v}
}

// Resolve converts the radii to pixels for a node of the given size. Percent
// radii are relative to the smaller side and every radius is clamped to half of it.
func (b BorderRadius) Resolve(width, height float32) [4]float32 {
	limit := float32(math.Min(float64(width), float64(height)))
	out := [4]float32{}
	for i, v := range [4]Val{b.TopLeft, b.TopRight, b.BottomRight, b.BottomLeft} {
		r := v.resolveOr(limit)
		out[i] = float32(math.Max(0, math.Min(float64(r), float64(limit/2))))
	}
	return out
}

// Button marks a node that reacts to the cursor.
type Button struct{}

// Interaction is the cursor state of a Button.
type Interaction uint8

const (
	InteractionNone Interaction = iota
	InteractionHovered
	InteractionPressed
)

func (i Interaction) String() string {
	switch i {
	case InteractionHovered:
		return "Hovered"
	case InteractionPressed:
		return "Pressed"
	default:
		return "None"
	}
}

// TextStyle is the font size in pixels and the color of a text section.
type TextStyle struct {
	FontSize float32
	Color    render.Color
}

// DefaultTextStyle is 24px white text.
func DefaultTextStyle() TextStyle {
	return TextStyle{FontSize: 24, Color: render.White}
}

// TextSection is a run of text sharing one style.
type TextSection struct {
	Value string
	Style TextStyle
}

// Text is the content of a text node.
type Text struct {
	Sections []TextSection
}

// String concatenates every section.
func (t *Text) String() string {
	var b strings.Builder
	for _, s := range t.Sections {
		b.WriteString(s.Value)
	}
	return b.String()
}

// TargetCamera routes a UI tree to a specific camera. Descendants without
// their own TargetCamera follow the nearest ancestor that has one.
type TargetCamera struct {
	Entity ecs.EntityId
}

// ComputedTarget is the camera a node resolved to and the render layers it
// inherits from that camera. Camera is NoEntity when no camera applies.
type ComputedTarget struct {
	Camera        ecs.EntityId
	Layers        render.RenderLayers
	Window        bool
	Width, Height int
}
