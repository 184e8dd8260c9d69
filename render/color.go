package render

import (
	"fmt"
	"image/color"
)

// Color is a non-linear sRGB color with straight alpha, each channel in 0..1.
type Color struct {
	R, G, B, A float32
}

var (
	White       = Color{1, 1, 1, 1}
	Black       = Color{0, 0, 0, 1}
	Transparent = Color{}
)

func Srgb(r, g, b float32) Color {
	return Color{r, g, b, 1}
}

func SrgbA(r, g, b, a float32) Color {
	return Color{r, g, b, a}
}

func SrgbU8(r, g, b uint8) Color {
	return Color{float32(r) / 255, float32(g) / 255, float32(b) / 255, 1}
}

// Shade scales the color channels by f, clamped, keeping alpha.
func (c Color) Shade(f float32) Color {
	return Color{clamp01(c.R * f), clamp01(c.G * f), clamp01(c.B * f), c.A}
}

// RGBA converts to a premultiplied 8-bit color.
func (c Color) RGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: to8(clamp01(c.R) * a),
		G: to8(clamp01(c.G) * a),
		B: to8(clamp01(c.B) * a),
		A: to8(a),
	}
}

func (c Color) String() string {
	return fmt.Sprintf("srgba(%.3g, %.3g, %.3g, %.3g)", c.R, c.G, c.B, c.A)
}

func to8(f float32) uint8 {
	return uint8(f*255 + 0.5)
}

func clamp01(f float32) float32 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}
