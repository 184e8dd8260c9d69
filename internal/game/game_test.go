package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/layercams/ui"
)

func TestCursorState(t *testing.T) {
	tests := []struct {
		name             string
		x, y             int
		pressed, capture bool
		want             ui.Cursor
	}{
		{"inside", 10, 20, false, false, ui.Cursor{X: 10, Y: 20, Present: true}},
		{"inside pressed", 10, 20, true, false, ui.Cursor{X: 10, Y: 20, Present: true, Pressed: true}},
		{"outside", -1, 20, true, false, ui.Cursor{X: -1, Y: 20}},
		{"right edge", 100, 20, false, false, ui.Cursor{X: 100, Y: 20}},
		{"captured by overlay", 10, 20, true, true, ui.Cursor{X: 10, Y: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CursorState(tt.x, tt.y, 100, 50, tt.pressed, tt.capture))
		})
	}
}
