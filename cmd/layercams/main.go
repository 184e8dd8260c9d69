// Command layercams opens a window showing a lit 3D scene drawn by one camera
// and a "Play Card" button drawn over it by a second camera on another
// render layer. F1 toggles the debug overlay.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/layercams/internal/debugui"
	debugui_ebiten "github.com/plus3/layercams/internal/debugui/ebiten"
	"github.com/plus3/layercams/internal/engine"
	"github.com/plus3/layercams/internal/game"
	"github.com/plus3/layercams/internal/renderer"
	"github.com/plus3/layercams/internal/scene"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(logger); err != nil {
		logger.Error("layercams failed", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	logger.Info("starting")

	e := engine.New(engine.WithLogger(logger))
	if err := scene.Install(e, scene.DefaultConfig()); err != nil {
		return err
	}

	r, err := renderer.New(e.Storage, logger)
	if err != nil {
		return err
	}
	r.Install()

	window := e.Window()
	backend := debugui_ebiten.NewImguiBackend(window.Title, window.Width, window.Height)
	debugui.SpawnDebugUI(e)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game.New(e, r, &backend)); err != nil {
		return fmt.Errorf("layercams: run game: %w", err)
	}
	return nil
}
