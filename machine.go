package cardstack

import "time"

// Settle timings.
const (
	SettleDelay   = 200 * time.Millisecond  // commit -> deck rotation
	FeedbackDelay = 1000 * time.Millisecond // rotation -> committed direction cleared
)

// Tally counts committed swipe directions on image cards.
type Tally struct {
	Up, Down, Left, Right int
}

// Add returns the tally with the bucket for dir incremented.
func (t Tally) Add(dir Direction) Tally {
	switch dir {
	case DirUp:
		t.Up++
	case DirDown:
		t.Down++
	case DirLeft:
		t.Left++
	case DirRight:
		t.Right++
	}
	return t
}

// Total returns the sum of all buckets.
func (t Tally) Total() int {
	return t.Up + t.Down + t.Left + t.Right
}

// State is the transient UI state of the stack. It is a value; Step returns
// a modified copy.
type State struct {
	Phase         Phase
	CardIndex     int
	DragX, DragY  float64
	Dragging      bool
	Exiting       bool
	ExitDirection float64 // -1 or +1 while exiting
	ExitAxis      Axis
	Leaning       Direction // provisional feedback while dragging
	Committed     Direction // last committed direction, cleared by the feedback timer
	Tally         Tally
	FilterEnabled bool
	InitialRender bool

	// Timer generations. A timer event whose generation does not match is
	// stale and ignored.
	settleGen   uint64
	feedbackGen uint64
}

// NewState returns the state at mount: loading, index 0, empty tally and the
// filter off.
func NewState() State {
	return State{Phase: PhaseLoading, InitialRender: true}
}

// SettleGen returns the generation of the pending settle timer.
func (s State) SettleGen() uint64 { return s.settleGen }

// FeedbackGen returns the generation of the pending feedback timer.
func (s State) FeedbackGen() uint64 { return s.feedbackGen }

// EventType identifies an input to Step.
type EventType uint8

const (
	EventPreloaded       EventType = iota // preload gate resolved
	EventPointerDown                      // pointer pressed on the top card
	EventDragMove                         // live drag feedback
	EventDragRelease                      // pointer released with a decision
	EventSettleElapsed                    // settle timer fired
	EventFeedbackElapsed                  // feedback timer fired
	EventReset                            // unmount or restart; cancels all timers
)

// Event is a single input to the state machine.
type Event struct {
	Type     EventType
	Feedback Feedback // EventDragMove
	Decision Decision // EventDragRelease
	Gen      uint64   // EventSettleElapsed, EventFeedbackElapsed
}

// EffectType identifies a side effect requested by Step.
type EffectType uint8

const (
	EffectScheduleSettle   EffectType = iota // start the settle timer
	EffectScheduleFeedback                   // start the feedback timer
	EffectCancelTimers                       // drop all pending timers
	EffectCancelGesture                      // stop interpreting the captured pointer
	EffectEmit                               // forward Event to the sink
)

// Effect is a side effect for the runtime to carry out.
type Effect struct {
	Type  EffectType
	Gen   uint64
	Delay time.Duration
	Event SwipeEvent
}

// Step applies ev to s and returns the new state together with the effects
// the caller must carry out. Step never mutates deck and has no other side
// effects.
func Step(deck *Deck, s State, ev Event) (State, []Effect) {
	switch ev.Type {
	case EventPreloaded:
		if s.Phase == PhaseLoading {
			s.Phase = PhaseIdle
		}
		return s, nil

	case EventPointerDown:
		if s.Phase != PhaseIdle {
			return s, nil
		}
		s.Phase = PhaseDragging
		s.Dragging = true
		s.DragX, s.DragY = 0, 0
		s.Leaning = DirNone
		return s, nil

	case EventDragMove:
		if s.Phase != PhaseDragging {
			return s, nil
		}
		s.DragX = ev.Feedback.OffsetX
		s.DragY = ev.Feedback.OffsetY
		s.Leaning = ev.Feedback.Leaning
		return s, nil

	case EventDragRelease:
		if s.Phase != PhaseDragging {
			return s, nil
		}
		switch ev.Decision.Outcome {
		case OutcomeCommitted:
			return commit(deck, s, ev.Decision)
		case OutcomeCancelled:
			s.Phase = PhaseIdle
			s.Dragging = false
			s.DragX, s.DragY = 0, 0
			s.Leaning = DirNone
		}
		return s, nil

	case EventSettleElapsed:
		if s.Phase != PhaseExiting || ev.Gen != s.settleGen {
			return s, nil
		}
		return settle(deck, s)

	case EventFeedbackElapsed:
		if ev.Gen != s.feedbackGen {
			return s, nil
		}
		s.Committed = DirNone
		return s, nil

	case EventReset:
		next := NewState()
		if s.Phase != PhaseLoading {
			next.Phase = PhaseIdle
		}
		next.settleGen = s.settleGen + 1
		next.feedbackGen = s.feedbackGen + 1
		return next, []Effect{{Type: EffectCancelTimers}, {Type: EffectCancelGesture}}
	}
	return s, nil
}

// commit applies the synchronous side effects of an accepted swipe and
// enters the exiting phase.
func commit(deck *Deck, s State, d Decision) (State, []Effect) {
	card := deck.Card(s.CardIndex)
	var effects []Effect

	if card.Kind == KindSwitch && d.Axis == AxisX {
		enabled := card.ResolveAction(d.Direction) == ActionBWFilter
		if enabled != s.FilterEnabled {
			s.FilterEnabled = enabled
			effects = append(effects, emit(SwipeEvent{
				Type: SwipeFilterChanged, CardIndex: s.CardIndex, Kind: card.Kind,
				Direction: d.Direction, Tally: s.Tally, FilterEnabled: enabled,
			}))
		}
	}
	if card.Kind == KindImage {
		s.Tally = s.Tally.Add(d.Direction)
	}
	s.Committed = d.Direction

	s.Phase = PhaseExiting
	s.Dragging = false
	s.Exiting = true
	s.ExitDirection = d.Direction.Sign()
	s.ExitAxis = d.Axis
	s.Leaning = DirNone

	s.settleGen++
	// A new commit supersedes any pending feedback clear.
	s.feedbackGen++

	effects = append(effects,
		Effect{Type: EffectCancelGesture},
		Effect{Type: EffectScheduleSettle, Gen: s.settleGen, Delay: SettleDelay},
		emit(SwipeEvent{
			Type: SwipeCommitted, CardIndex: s.CardIndex, Kind: card.Kind,
			Direction: d.Direction, Tally: s.Tally, FilterEnabled: s.FilterEnabled,
		}),
	)
	return s, effects
}

// settle rotates the deck after the exit animation.
func settle(deck *Deck, s State) (State, []Effect) {
	exited := s.CardIndex
	card := deck.Card(exited)
	var effects []Effect

	s.CardIndex = deck.Next(exited)
	if card.Kind == KindResult && s.Tally != (Tally{}) {
		s.Tally = Tally{}
		effects = append(effects, emit(SwipeEvent{
			Type: SwipeTallyReset, CardIndex: exited, Kind: card.Kind,
			FilterEnabled: s.FilterEnabled,
		}))
	}
	if s.CardIndex == 0 && s.FilterEnabled {
		s.FilterEnabled = false
		effects = append(effects, emit(SwipeEvent{
			Type: SwipeFilterChanged, CardIndex: s.CardIndex, Kind: deck.Card(0).Kind,
			Tally: s.Tally,
		}))
	}

	s.Phase = PhaseIdle
	s.DragX, s.DragY = 0, 0
	s.Exiting = false
	s.ExitDirection = 0
	s.InitialRender = false

	s.feedbackGen++
	effects = append(effects,
		Effect{Type: EffectScheduleFeedback, Gen: s.feedbackGen, Delay: FeedbackDelay},
		emit(SwipeEvent{
			Type: SwipeSettled, CardIndex: s.CardIndex, Kind: deck.Card(s.CardIndex).Kind,
			Direction: s.Committed, Tally: s.Tally, FilterEnabled: s.FilterEnabled,
		}),
	)
	return s, effects
}

func emit(ev SwipeEvent) Effect {
	return Effect{Type: EffectEmit, Event: ev}
}
