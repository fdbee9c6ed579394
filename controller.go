package cardstack

import (
	"log/slog"
	"time"
)

// Controller owns the interaction core of a stack: the state, the frame
// driven timers and the gesture pipeline for the single captured pointer. It
// is renderer independent; Stack embeds one, and other front ends such as the
// terminal renderer drive one directly.
//
// A Controller is not safe for concurrent use. Call it from one goroutine.
type Controller struct {
	deck    *Deck
	state   State
	timers  Timers
	tracker Tracker
	interp  Interpreter

	pointerDown bool
	captured    bool
	clock       time.Duration

	// HitTest reports whether a press at (x, y) lands on the top card. Nil
	// accepts every press.
	HitTest func(x, y float64) bool

	logger *slog.Logger
	sink   EventSink
	debug  bool
}

// NewController returns a controller in the loading phase. A nil logger uses
// slog.Default().
func NewController(deck *Deck, logger *slog.Logger, sink EventSink) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		deck:   deck,
		state:  NewState(),
		logger: logger,
		sink:   sink,
	}
}

// Deck returns the controller's deck.
func (c *Controller) Deck() *Deck {
	return c.deck
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	return c.state
}

// SetEventSink sets the receiver for swipe events.
func (c *Controller) SetEventSink(sink EventSink) {
	c.sink = sink
}

// SetDebugMode enables or disables logging of every state transition at
// debug level.
func (c *Controller) SetDebugMode(enabled bool) {
	c.debug = enabled
}

// Reset returns to the initial state, cancelling pending timers and any
// captured gesture.
func (c *Controller) Reset() {
	c.Dispatch(Event{Type: EventReset})
}

// Dispatch runs ev through the state machine and carries out its effects.
func (c *Controller) Dispatch(ev Event) {
	prev := c.state
	next, effects := Step(c.deck, c.state, ev)
	c.state = next
	if c.debug {
		c.logTransition(prev, next, ev)
	}
	c.timers.Apply(effects)
	for _, e := range effects {
		switch e.Type {
		case EffectCancelGesture:
			c.interp.Lock()
			c.tracker.Cancel()
			c.captured = false
		case EffectEmit:
			c.logger.Debug("swipe event",
				"type", e.Event.Type.String(),
				"card", e.Event.CardIndex,
				"direction", e.Event.Direction.String())
			if c.sink != nil {
				c.sink.EmitEvent(e.Event)
			}
		}
	}
}

// Advance moves the frame clock forward by dt and fires due timers.
func (c *Controller) Advance(dt time.Duration) {
	c.clock += dt
	for _, ev := range c.timers.Advance(dt) {
		c.Dispatch(ev)
	}
}

// Pointer feeds one reading of the pointer into the gesture pipeline. Call it
// once per frame with the pointer position and whether the button is held.
// Only a press on the top card while idle is captured; the release of a
// captured pointer is always processed.
func (c *Controller) Pointer(x, y float64, pressed bool) {
	switch {
	case pressed && !c.pointerDown:
		c.pointerDown = true
		if c.state.Phase != PhaseIdle || (c.HitTest != nil && !c.HitTest(x, y)) {
			return
		}
		c.Dispatch(Event{Type: EventPointerDown})
		if c.state.Phase != PhaseDragging {
			return
		}
		c.captured = true
		c.interp.Reset()
		c.tracker.Capture = c.deck.Card(c.state.CardIndex).Capture
		c.tracker.Press(x, y, c.clock)

	case pressed && c.pointerDown:
		if !c.captured {
			return
		}
		sample, ok := c.tracker.Move(x, y, c.clock)
		if !ok {
			return
		}
		if fb, ok := c.interp.Move(sample); ok {
			c.Dispatch(Event{Type: EventDragMove, Feedback: fb})
		}

	case !pressed && c.pointerDown:
		c.pointerDown = false
		if !c.captured {
			return
		}
		c.captured = false
		sample, ok := c.tracker.Release(x, y, c.clock)
		if !ok {
			// Taps are not drags.
			c.Dispatch(Event{Type: EventDragRelease, Decision: Decision{Outcome: OutcomeCancelled}})
			return
		}
		d := c.interp.Release(sample)
		if d.Outcome == OutcomeIgnored {
			return
		}
		c.Dispatch(Event{Type: EventDragRelease, Decision: d})
	}
}

// Swipe commits the top card in dir without a pointer, as keyboard
// navigation does. It reports false when the stack is not idle or dir is
// DirNone.
func (c *Controller) Swipe(dir Direction) bool {
	if c.state.Phase != PhaseIdle || dir == DirNone || c.pointerDown {
		return false
	}
	axis := AxisY
	if dir == DirLeft || dir == DirRight {
		axis = AxisX
	}
	if c.deck.Card(c.state.CardIndex).Capture == CaptureHorizontal && axis == AxisY {
		return false
	}
	c.Dispatch(Event{Type: EventPointerDown})
	c.Dispatch(Event{Type: EventDragRelease, Decision: Decision{
		Outcome:   OutcomeCommitted,
		Direction: dir,
		Axis:      axis,
	}})
	return true
}
