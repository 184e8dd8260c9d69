package renderer

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// fonts caches one Go Regular face per pixel size.
type fonts struct {
	source *text.GoTextFaceSource
	faces  map[float32]*text.GoTextFace
}

func loadFonts() (*fonts, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("layercams: load ui font: %w", err)
	}
	return &fonts{source: source, faces: make(map[float32]*text.GoTextFace)}, nil
}

func (f *fonts) face(size float32) *text.GoTextFace {
	if face, ok := f.faces[size]; ok {
		return face
	}
	face := &text.GoTextFace{Source: f.source, Size: float64(size)}
	f.faces[size] = face
	return face
}

func lineHeight(face *text.GoTextFace) float64 {
	m := face.Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}

// Measure returns the advance width and line height of s. It matches
// ui.MeasureFunc.
func (f *fonts) Measure(s string, size float32) (float32, float32) {
	face := f.face(size)
	lh := lineHeight(face)
	w, _ := text.Measure(s, face, lh)
	return float32(w), float32(lh)
}
