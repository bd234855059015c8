package orrery

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig holds the window settings passed to Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// TPS overrides the tick rate. Zero keeps Ebitengine's default of 60.
	TPS int
}

// Run opens a resizable window and drives scene until the handler returns
// ErrQuit, the window is closed, or a script ends with a quit step. A clean
// exit returns nil; a handler error or a backend failure is returned as is.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("orrery: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	scene.ShowFPS = cfg.ShowFPS
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}

	err := ebiten.RunGame(scene)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
