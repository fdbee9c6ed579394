package cardstack

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const hudHeight = 48

var hudText = Color{0.9, 0.9, 0.9, 1}

// FeedbackLabel describes the swipe feedback shown above the stack: the committed
// direction while it is fresh, otherwise the provisional lean.
func FeedbackLabel(s State) string {
	switch {
	case s.Committed != DirNone:
		return "Swiped " + s.Committed.String()
	case s.Leaning != DirNone:
		return "Leaning " + s.Leaning.String()
	}
	return ""
}

// drawHUD draws the feedback label and, when enabled, the FPS counter.
func (s *Stack) drawHUD(screen *ebiten.Image) {
	if label := FeedbackLabel(s.state); label != "" {
		ensureFaces()
		drawCenteredLines(screen, []string{label}, hudFace, hudText,
			0, 0, float64(s.width), hudHeight)
	}
	if s.showFPS {
		ebitenutil.DebugPrint(screen, fpsText(ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func fpsText(fps, tps float64) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f", fps, tps)
}
