package cardstack

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
}

// Run opens a window and runs the stack as an Ebitengine game. It blocks until
// the window is closed.
func Run(stack *Stack, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = int(stack.cardW*2), int(stack.cardH*1.5)
	}
	if cfg.Title == "" {
		cfg.Title = "cardstack"
	}
	stack.showFPS = stack.showFPS || cfg.ShowFPS
	stack.width, stack.height = cfg.Width, cfg.Height

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(stack); err != nil {
		return fmt.Errorf("run stack: %w", err)
	}
	return nil
}
