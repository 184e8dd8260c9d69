// Package game runs an engine inside ebiten's game loop.
package game

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/layercams/ecs"
	"github.com/plus3/layercams/internal/debugui"
	debugui_ebiten "github.com/plus3/layercams/internal/debugui/ebiten"
	"github.com/plus3/layercams/internal/engine"
	"github.com/plus3/layercams/internal/renderer"
	"github.com/plus3/layercams/ui"
)

// ToggleOverlayKey shows or hides the debug overlay.
const ToggleOverlayKey = ebiten.KeyF1

// Game implements ebiten.Game. Update feeds input to the world and runs one
// frame; Draw renders every camera and then the debug overlay.
type Game struct {
	engine   *engine.Engine
	renderer *renderer.Renderer
	imgui    *debugui_ebiten.ImguiBackend
	logger   *slog.Logger

	pressed bool
}

// New returns a game for e. imgui may be nil when the overlay is disabled.
func New(e *engine.Engine, r *renderer.Renderer, imgui *debugui_ebiten.ImguiBackend) *Game {
	return &Game{engine: e, renderer: r, imgui: imgui, logger: e.Logger}
}

func (g *Game) Update() error {
	if g.imgui != nil && inpututil.IsKeyJustPressed(ToggleOverlayKey) {
		if overlay := ecs.GetSingleton[debugui.Overlay](g.engine.Storage); overlay != nil {
			overlay.Visible = !overlay.Visible
			g.logger.Debug("debug overlay toggled", "visible", overlay.Visible)
		}
	}

	window := g.engine.Window()
	x, y := ebiten.CursorPosition()
	captured := false
	if state := ecs.GetSingleton[debugui.ImguiInputState](g.engine.Storage); state != nil {
		captured = state.WantCaptureMouse
	}
	if cursor := ecs.GetSingleton[ui.Cursor](g.engine.Storage); cursor != nil {
		*cursor = CursorState(x, y, window.Width, window.Height, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), captured)
	}

	if g.imgui != nil {
		g.imgui.BeginFrame()
	}
	g.engine.Update(1 / float64(ebiten.TPS()))
	if g.imgui != nil {
		g.imgui.EndFrame()
	}

	g.logPresses()
	return nil
}

// logPresses logs each press of a button drawn to the window.
func (g *Game) logPresses() {
	pressed := false
	view := ecs.NewView[struct {
		*ui.Button
		*ui.Interaction
	}](g.engine.Storage)
	for b := range view.Values() {
		if *b.Interaction == ui.InteractionPressed {
			pressed = true
		}
	}
	if pressed && !g.pressed {
		g.logger.Info("button pressed")
	}
	g.pressed = pressed
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
	if g.imgui != nil {
		g.imgui.Draw(screen)
	}
}

// Layout keeps the primary window resource in step with the outside size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if window := g.engine.Window(); window != nil {
		window.Width, window.Height = outsideWidth, outsideHeight
	}
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// CursorState converts raw pointer input into the UI cursor. The cursor is
// absent outside the window or while the overlay captures the mouse.
func CursorState(x, y, width, height int, pressed, captured bool) ui.Cursor {
	inside := x >= 0 && y >= 0 && x < width && y < height
	present := inside && !captured
	return ui.Cursor{
		X:       float32(x),
		Y:       float32(y),
		Present: present,
		Pressed: present && pressed,
	}
}
