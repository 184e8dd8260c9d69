package renderer

import (
	"math"

	"github.com/plus3/layercams/ui"
)

// cornerSegments is the number of edges approximating each rounded corner.
const cornerSegments = 8

// outlinePoints is the length of every outline returned by roundedOutline.
const outlinePoints = 4 * (cornerSegments + 1)

// roundedOutline returns the outline of r clockwise on screen, starting at
// the left end of the top-left corner. radii are top-left, top-right,
// bottom-right, bottom-left. Every corner contributes cornerSegments+1
// points, repeated for square corners, so two outlines always pair up.
func roundedOutline(r ui.Rect, radii [4]float32) [][2]float32 {
	type corner struct {
		cx, cy, radius float32
		start          float64
	}
	corners := [4]corner{
		{r.X + radii[0], r.Y + radii[0], radii[0], math.Pi},
		{r.X + r.Width - radii[1], r.Y + radii[1], radii[1], 1.5 * math.Pi},
		{r.X + r.Width - radii[2], r.Y + r.Height - radii[2], radii[2], 0},
		{r.X + radii[3], r.Y + r.Height - radii[3], radii[3], 0.5 * math.Pi},
	}

	out := make([][2]float32, 0, outlinePoints)
	for _, c := range corners {
		for i := 0; i <= cornerSegments; i++ {
			theta := c.start + float64(i)/cornerSegments*math.Pi/2
			out = append(out, [2]float32{
				c.cx + c.radius*float32(math.Cos(theta)),
				c.cy + c.radius*float32(math.Sin(theta)),
			})
		}
	}
	return out
}

// innerRadii shrinks outer corner radii by the border on either side of each corner.
func innerRadii(radii [4]float32, border ui.Edges) [4]float32 {
	shrink := [4]float32{
		max(border.Left, border.Top),
		max(border.Right, border.Top),
		max(border.Right, border.Bottom),
		max(border.Left, border.Bottom),
	}
	for i := range radii {
		radii[i] = max(0, radii[i]-shrink[i])
	}
	return radii
}

func isSquare(radii [4]float32) bool {
	return radii == [4]float32{}
}

// fanIndices triangulates a convex outline around a center vertex at base.
func fanIndices(dst []uint16, base uint16, n int) []uint16 {
	for i := range n {
		next := (i + 1) % n
		dst = append(dst, base, base+1+uint16(i), base+1+uint16(next))
	}
	return dst
}

// ringIndices triangulates the band between an outer outline at base and an
// inner outline of the same length right after it.
func ringIndices(dst []uint16, base uint16, n int) []uint16 {
	inner := base + uint16(n)
	for i := range n {
		next := (i + 1) % n
		o0, o1 := base+uint16(i), base+uint16(next)
		i0, i1 := inner+uint16(i), inner+uint16(next)
		dst = append(dst, o0, o1, i1, o0, i1, i0)
	}
	return dst
}
