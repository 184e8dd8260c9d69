package ui

import "github.com/plus3/layercams/render"

// NodeBundle spawns a transparent container.
type NodeBundle struct {
	Style           Style
	BackgroundColor BackgroundColor
	BorderColor     BorderColor
	BorderRadius    BorderRadius
	Visibility      render.Visibility
}

func (b NodeBundle) Components() []any {
	return []any{
		Node{}, ComputedTarget{},
		b.Style, b.BackgroundColor, b.BorderColor, b.BorderRadius, b.Visibility,
	}
}

// ButtonBundle spawns a node that tracks Interaction.
type ButtonBundle struct {
	Style           Style
	BackgroundColor BackgroundColor
	BorderColor     BorderColor
	BorderRadius    BorderRadius
	Visibility      render.Visibility
	Interaction     Interaction
}

// NewButtonBundle is a button with a white background.
func NewButtonBundle(style Style) ButtonBundle {
	return ButtonBundle{Style: style, BackgroundColor: BackgroundColor{Color: render.White}}
}

func (b ButtonBundle) Components() []any {
	return []any{
		Node{}, ComputedTarget{}, Button{}, b.Interaction,
		b.Style, b.BackgroundColor, b.BorderColor, b.BorderRadius, b.Visibility,
	}
}

// TextBundle spawns a node that displays Text.
type TextBundle struct {
	Style      Style
	Text       Text
	Visibility render.Visibility
}

// TextFromSection is a single-section text node.
func TextFromSection(value string, style TextStyle) TextBundle {
	return TextBundle{Text: Text{Sections: []TextSection{{Value: value, Style: style}}}}
}

func (b TextBundle) Components() []any {
	return []any{Node{}, ComputedTarget{}, b.Style, b.Text, b.Visibility}
}
