package ui

import "math"

// ValKind says how a Val is interpreted.
type ValKind uint8

const (
	ValAuto ValKind = iota
	ValPx
	ValPercent
)

// Val is a length in pixels, a percentage of the parent, or Auto.
// The zero Val is Auto.
type Val struct {
	Kind  ValKind
	Value float32
}

var Auto = Val{}

func Px(v float32) Val {
	return Val{Kind: ValPx, Value: v}
}

func Percent(v float32) Val {
	return Val{Kind: ValPercent, Value: v}
}

// Resolve converts v to pixels against a parent length. Auto reports false.
func (v Val) Resolve(parent float32) (float32, bool) {
	switch v.Kind {
	case ValPx:
		return v.Value, true
	case ValPercent:
		return parent * v.Value / 100, true
	default:
		return 0, false
	}
}

// resolveOr resolves v, using zero for Auto.
func (v Val) resolveOr(parent float32) float32 {
	px, _ := v.Resolve(parent)
	return px
}

// UiRect holds one Val per edge.
type UiRect struct {
	Left, Right, Top, Bottom Val
}

// UiRectAll uses v for every edge.
func UiRectAll(v Val) UiRect {
	return UiRect{Left: v, Right: v, Top: v, Bottom: v}
}

func (r UiRect) resolve(parentWidth float32) Edges {
	return Edges{
		Left:   r.Left.resolveOr(parentWidth),
		Right:  r.Right.resolveOr(parentWidth),
		Top:    r.Top.resolveOr(parentWidth),
		Bottom: r.Bottom.resolveOr(parentWidth),
	}
}

// AlignItems positions children on the cross axis.
type AlignItems uint8

const (
	// AlignItemsDefault behaves like AlignItemsStretch.
	AlignItemsDefault AlignItems = iota
	AlignItemsStart
	AlignItemsEnd
	AlignItemsFlexStart
	AlignItemsFlexEnd
	AlignItemsCenter
	AlignItemsStretch
)

// JustifyContent distributes children on the main axis.
type JustifyContent uint8

const (
	// JustifyContentDefault behaves like JustifyContentFlexStart.
	JustifyContentDefault JustifyContent = iota
	JustifyContentStart
	JustifyContentEnd
	JustifyContentFlexStart
	JustifyContentFlexEnd
	JustifyContentCenter
	JustifyContentSpaceBetween
	JustifyContentSpaceAround
	JustifyContentSpaceEvenly
)

// FlexDirection is the main axis of a node's children.
type FlexDirection uint8

const (
	FlexDirectionRow FlexDirection = iota
	FlexDirectionColumn
)

// Style is the layout input of a node. The zero Style sizes to content,
// lays children out in a row from the start and stretches them vertically.
// Widths and heights include border and padding.
type Style struct {
	Width, Height  Val
	Margin         UiRect
	Padding        UiRect
	Border         UiRect
	AlignItems     AlignItems
	JustifyContent JustifyContent
	FlexDirection  FlexDirection
}

// Edges is a resolved UiRect in pixels.
type Edges struct {
	Left, Right, Top, Bottom float32
}

func (e Edges) Horizontal() float32 { return e.Left + e.Right }
func (e Edges) Vertical() float32   { return e.Top + e.Bottom }

func (e Edges) Add(o Edges) Edges {
	return Edges{e.Left + o.Left, e.Right + o.Right, e.Top + o.Top, e.Bottom + o.Bottom}
}

// Rect is an axis-aligned rectangle in target pixels, origin top-left.
type Rect struct {
	X, Y, Width, Height float32
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Inset shrinks r by e, never below zero size.
func (r Rect) Inset(e Edges) Rect {
	return Rect{
		X:      r.X + e.Left,
		Y:      r.Y + e.Top,
		Width:  float32(math.Max(0, float64(r.Width-e.Horizontal()))),
		Height: float32(math.Max(0, float64(r.Height-e.Vertical()))),
	}
}
