package cardstack

// syntheticPointerEvent is a single injected pointer reading in screen
// coordinates.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
}

// InjectPress queues a pointer press at the given screen coordinates. Each
// queued event is consumed by one frame's input processing.
func (s *Stack) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (s *Stack) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (s *Stack) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: false})
}

// InjectDrag queues a full drag: press at (fromX, fromY), frames-2 linearly
// interpolated moves, and a release at (toX, toY). The sequence consumes
// frames frames; the minimum is 2 (press + release).
func (s *Stack) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// InjectSwipe queues a drag that starts at the center of the stack and
// travels distance pixels in dir.
func (s *Stack) InjectSwipe(dir Direction, distance float64, frames int) {
	o := s.origin()
	var dx, dy float64
	switch dir {
	case DirLeft:
		dx = -distance
	case DirRight:
		dx = distance
	case DirUp:
		dy = -distance
	case DirDown:
		dy = distance
	}
	s.InjectDrag(o.X, o.Y, o.X+dx, o.Y+dy, frames)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through Pointer. Returns true if an event was consumed, in which
// case real input is skipped for the frame.
func (s *Stack) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	s.Pointer(evt.x, evt.y, evt.pressed)
	return true
}
