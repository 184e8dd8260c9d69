package ui

import "unicode/utf8"

// MeasureFunc returns the width and line height of s at the given font size.
type MeasureFunc func(s string, size float32) (float32, float32)

// TextMeasurer is the resource LayoutSystem sizes text with. The renderer
// installs a font-backed measure; until then ApproximateMeasure is used.
type TextMeasurer struct {
	Measure MeasureFunc
}

// MeasureText measures s, falling back to ApproximateMeasure.
func (m *TextMeasurer) MeasureText(s string, size float32) (float32, float32) {
	if m == nil || m.Measure == nil {
		return ApproximateMeasure(s, size)
	}
	return m.Measure(s, size)
}

// ApproximateMeasure assumes every glyph is half as wide as the font size is tall.
func ApproximateMeasure(s string, size float32) (float32, float32) {
	return float32(utf8.RuneCountInString(s)) * size * 0.5, size * 1.2
}
