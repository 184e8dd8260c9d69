package ui

import (
	"github.com/plus3/layercams/ecs"
	"github.com/plus3/layercams/render"
)

// Cursor is the pointer state in window pixels.
type Cursor struct {
	X, Y    float32
	Present bool
	Pressed bool
}

// InteractionSystem updates Interaction on buttons shown in the window.
// Buttons drawn into images never see the cursor.
type InteractionSystem struct {
	Buttons ecs.Query[struct {
		*Button
		*Interaction
		*Node
		*ComputedTarget
		Visibility *render.Visibility `ecs:"optional"`
	}]
	Cursor ecs.Singleton[Cursor]
}

func (s *InteractionSystem) Execute(frame *ecs.UpdateFrame) {
	cursor := s.Cursor.Get()
	for item := range s.Buttons.Values() {
		hidden := item.Visibility != nil && *item.Visibility == render.Hidden
		over := cursor != nil && cursor.Present && item.ComputedTarget.Window && !hidden &&
			item.Node.Rect.Contains(cursor.X, cursor.Y)

		switch {
		case over && cursor.Pressed:
			*item.Interaction = InteractionPressed
		case over:
			*item.Interaction = InteractionHovered
		default:
			*item.Interaction = InteractionNone
		}
	}
}
