package cardstack

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// processInput feeds one pointer reading into the gesture pipeline. Injected
// events take priority over real input; otherwise the mouse is read, and the
// first active touch when the mouse is idle.
func (s *Stack) processInput() {
	if s.processInjectedInput() {
		return
	}
	x, y, pressed := s.readPointer()
	s.Pointer(x, y, pressed)
}

// readPointer returns the position of the mouse, or of the first touch when
// no mouse button is held.
func (s *Stack) readPointer() (x, y float64, pressed bool) {
	mx, my := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		return float64(mx), float64(my), true
	}
	touches := ebiten.AppendTouchIDs(nil)
	if len(touches) > 0 {
		tx, ty := ebiten.TouchPosition(touches[0])
		return float64(tx), float64(ty), true
	}
	return float64(mx), float64(my), false
}
