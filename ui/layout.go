package ui

import "github.com/plus3/layercams/ecs"

type layoutNode struct {
	*Node
	*Style
	Text     *Text         `ecs:"optional"`
	Children *ecs.Children `ecs:"optional"`
}

// LayoutSystem computes Node rects for every UI tree. Roots are laid out
// against their target's viewport starting at its top-left corner; children
// follow a single-line flexbox model without wrapping or grow/shrink.
type LayoutSystem struct {
	Roots ecs.Query[struct {
		Id ecs.EntityId
		*Node
		*ComputedTarget
		Parent *ecs.Parent `ecs:"optional"`
	}]
	Measurer ecs.Singleton[TextMeasurer]

	nodes *ecs.View[layoutNode]
}

func (s *LayoutSystem) Execute(frame *ecs.UpdateFrame) {
	if s.nodes == nil {
		s.nodes = ecs.NewView[layoutNode](frame.Storage)
	}
	l := &layouter{nodes: s.nodes, measure: s.Measurer.Get()}

	for root := range s.Roots.Values() {
		if root.Parent != nil {
			continue
		}
		node := s.nodes.Get(root.Id)
		if node == nil {
			continue
		}
		viewport := Rect{Width: float32(root.ComputedTarget.Width), Height: float32(root.ComputedTarget.Height)}
		w, h := l.size(node, viewport.Width, viewport.Height)
		margin := node.Style.Margin.resolve(viewport.Width)
		l.place(node, Rect{X: margin.Left, Y: margin.Top, Width: w, Height: h}, viewport.Width)
	}
}

type layouter struct {
	nodes   *ecs.View[layoutNode]
	measure *TextMeasurer
}

// place stores rect on the node and lays out its children inside it.
func (l *layouter) place(n *layoutNode, rect Rect, parentWidth float32) {
	n.Node.Rect = rect
	n.Node.Border = n.Style.Border.resolve(parentWidth)
	n.Node.Padding = n.Style.Padding.resolve(parentWidth)
	l.layoutChildren(n)
}

// size resolves a node's border-box size against its parent's content size.
// Auto lengths fall back to the intrinsic size.
func (l *layouter) size(n *layoutNode, parentW, parentH float32) (float32, float32) {
	w, okW := n.Style.Width.Resolve(parentW)
	h, okH := n.Style.Height.Resolve(parentH)
	if okW && okH {
		return w, h
	}
	iw, ih := l.intrinsic(n, parentW)
	if !okW {
		w = iw
	}
	if !okH {
		h = ih
	}
	return w, h
}

// intrinsic is the content size plus border and padding.
func (l *layouter) intrinsic(n *layoutNode, parentW float32) (float32, float32) {
	inset := n.Style.Border.resolve(parentW).Add(n.Style.Padding.resolve(parentW))

	var cw, ch float32
	if n.Text != nil {
		cw, ch = l.measureText(n.Text)
	}

	column := n.Style.FlexDirection == FlexDirectionColumn
	for _, child := range l.children(n) {
		w, h := l.size(child, 0, 0)
		m := child.Style.Margin.resolve(0)
		w += m.Horizontal()
		h += m.Vertical()
		if column {
			ch += h
			cw = max(cw, w)
		} else {
			cw += w
			ch = max(ch, h)
		}
	}
	return cw + inset.Horizontal(), ch + inset.Vertical()
}

func (l *layouter) measureText(t *Text) (float32, float32) {
	var w, h float32
	for _, section := range t.Sections {
		sw, sh := l.measure.MeasureText(section.Value, section.Style.FontSize)
		w += sw
		h = max(h, sh)
	}
	return w, h
}

func (l *layouter) children(n *layoutNode) []*layoutNode {
	if n.Children == nil {
		return nil
	}
	out := make([]*layoutNode, 0, len(n.Children.Entities))
	for _, id := range n.Children.Entities {
		if child := l.nodes.Get(id); child != nil {
			out = append(out, child)
		}
	}
	return out
}

type childBox struct {
	node         *layoutNode
	main, cross  float32
	margin       Edges
	stretchCross bool
}

func (l *layouter) layoutChildren(n *layoutNode) {
	children := l.children(n)
	if len(children) == 0 {
		return
	}

	content := n.Node.ContentRect()
	column := n.Style.FlexDirection == FlexDirectionColumn
	mainLen, crossLen := content.Width, content.Height
	if column {
		mainLen, crossLen = crossLen, mainLen
	}

	align := n.Style.AlignItems
	boxes := make([]childBox, len(children))
	var used float32
	for i, child := range children {
		w, h := l.size(child, content.Width, content.Height)
		box := childBox{node: child, margin: child.Style.Margin.resolve(content.Width)}
		crossVal := child.Style.Height
		if column {
			w, h = h, w
			crossVal = child.Style.Width
		}
		box.main, box.cross = w, h
		box.stretchCross = crossVal.Kind == ValAuto && (align == AlignItemsDefault || align == AlignItemsStretch)
		used += box.main + mainMargins(box.margin, column)
		boxes[i] = box
	}

	start, gap := justify(n.Style.JustifyContent, mainLen-used, len(boxes))
	pos := start
	for _, box := range boxes {
		mStart, mEnd := mainMarginsSplit(box.margin, column)
		cStart, cEnd := crossMarginsSplit(box.margin, column)

		if box.stretchCross {
			box.cross = max(0, crossLen-cStart-cEnd)
		}

		var crossPos float32
		switch align {
		case AlignItemsEnd, AlignItemsFlexEnd:
			crossPos = crossLen - box.cross - cEnd
		case AlignItemsCenter:
			crossPos = (crossLen-box.cross-cStart-cEnd)/2 + cStart
		default:
			crossPos = cStart
		}

		mainPos := pos + mStart
		rect := Rect{X: content.X + mainPos, Y: content.Y + crossPos, Width: box.main, Height: box.cross}
		if column {
			rect = Rect{X: content.X + crossPos, Y: content.Y + mainPos, Width: box.cross, Height: box.main}
		}
		l.place(box.node, rect, content.Width)

		pos += mStart + box.main + mEnd + gap
	}
}

// justify returns the main axis offset of the first child and the extra gap
// between children.
func justify(j JustifyContent, free float32, count int) (float32, float32) {
	switch j {
	case JustifyContentEnd, JustifyContentFlexEnd:
		return free, 0
	case JustifyContentCenter:
		return free / 2, 0
	case JustifyContentSpaceBetween:
		if count < 2 || free < 0 {
			return 0, 0
		}
		return 0, free / float32(count-1)
	case JustifyContentSpaceAround:
		if free < 0 {
			return free / 2, 0
		}
		gap := free / float32(count)
		return gap / 2, gap
	case JustifyContentSpaceEvenly:
		if free < 0 {
			return free / 2, 0
		}
		gap := free / float32(count+1)
		return gap, gap
	default:
		return 0, 0
	}
}

func mainMargins(m Edges, column bool) float32 {
	if column {
		return m.Vertical()
	}
	return m.Horizontal()
}

func mainMarginsSplit(m Edges, column bool) (float32, float32) {
	if column {
		return m.Top, m.Bottom
	}
	return m.Left, m.Right
}

func crossMarginsSplit(m Edges, column bool) (float32, float32) {
	if column {
		return m.Left, m.Right
	}
	return m.Top, m.Bottom
}
