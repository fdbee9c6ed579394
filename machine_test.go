package cardstack

import (
	"testing"
)

// scenarioDeck is A(image) B(switch) C(image) D(result).
func scenarioDeck() *Deck {
	return MustDeck([]Card{
		{Kind: KindImage, Content: "a.png"},
		{Kind: KindSwitch, Content: "switch", LeftAction: ActionBWFilter, RightAction: ActionNothing, Capture: CaptureHorizontal},
		{Kind: KindImage, Content: "c.png"},
		{Kind: KindResult, Content: "results"},
	})
}

func idleState(deck *Deck) State {
	s, _ := Step(deck, NewState(), Event{Type: EventPreloaded})
	return s
}

func axisFor(dir Direction) Axis {
	if dir == DirLeft || dir == DirRight {
		return AxisX
	}
	return AxisY
}

func commitEvent(dir Direction) Event {
	return Event{Type: EventDragRelease, Decision: Decision{
		Outcome: OutcomeCommitted, Direction: dir, Axis: axisFor(dir),
	}}
}

// swipe drives one full gesture: press, commit and the settle timer.
func swipe(t *testing.T, deck *Deck, s State, dir Direction) (State, []SwipeEvent) {
	t.Helper()
	var emitted []SwipeEvent
	collect := func(effects []Effect) {
		for _, e := range effects {
			if e.Type == EffectEmit {
				emitted = append(emitted, e.Event)
			}
		}
	}
	s, _ = Step(deck, s, Event{Type: EventPointerDown})
	if s.Phase != PhaseDragging {
		t.Fatalf("phase after pointer down = %v, want dragging", s.Phase)
	}
	s, effects := Step(deck, s, commitEvent(dir))
	collect(effects)
	if s.Phase != PhaseExiting {
		t.Fatalf("phase after commit = %v, want exiting", s.Phase)
	}
	s, effects = Step(deck, s, Event{Type: EventSettleElapsed, Gen: s.SettleGen()})
	collect(effects)
	return s, emitted
}

func hasEffect(effects []Effect, typ EffectType) bool {
	for _, e := range effects {
		if e.Type == typ {
			return true
		}
	}
	return false
}

// --- Loading ---

func TestLoadingIgnoresInput(t *testing.T) {
	deck := scenarioDeck()
	s := NewState()
	if s.Phase != PhaseLoading || !s.InitialRender {
		t.Fatalf("NewState = %+v, want loading with initial render", s)
	}
	s, _ = Step(deck, s, Event{Type: EventPointerDown})
	if s.Phase != PhaseLoading || s.Dragging {
		t.Errorf("pointer down while loading changed state: %+v", s)
	}
	s, _ = Step(deck, s, Event{Type: EventPreloaded})
	if s.Phase != PhaseIdle {
		t.Errorf("phase after preload = %v, want idle", s.Phase)
	}
}

// --- Commit and rotation ---

func TestCommitsAdvanceIndex(t *testing.T) {
	for n := 1; n <= 5; n++ {
		cards := make([]Card, n)
		for i := range cards {
			cards[i] = Card{Kind: KindHTML}
		}
		deck := MustDeck(cards)
		s := idleState(deck)
		dirs := []Direction{DirUp, DirDown, DirLeft, DirRight}
		for k := 1; k <= 2*n+1; k++ {
			s, _ = swipe(t, deck, s, dirs[k%len(dirs)])
			if s.CardIndex != k%n {
				t.Fatalf("n=%d after %d commits CardIndex = %d, want %d", n, k, s.CardIndex, k%n)
			}
			if s.Phase != PhaseIdle || s.Exiting || s.DragX != 0 || s.DragY != 0 {
				t.Fatalf("n=%d state after settle not idle: %+v", n, s)
			}
		}
	}
}

func TestCancelResetsDrag(t *testing.T) {
	deck := scenarioDeck()
	s := idleState(deck)
	s, _ = Step(deck, s, Event{Type: EventPointerDown})
	s, _ = Step(deck, s, Event{Type: EventDragMove, Feedback: Classify(DragSample{DX: 60, DY: 5, Active: true})})
	if s.DragX != 60 || s.DragY != 0 || s.Leaning != DirRight {
		t.Fatalf("drag state = (%v, %v, %v), want (60, 0, right)", s.DragX, s.DragY, s.Leaning)
	}
	d := Decide(DragSample{DX: 60, VX: 0.2})
	s, effects := Step(deck, s, Event{Type: EventDragRelease, Decision: d})
	if s.CardIndex != 0 {
		t.Errorf("CardIndex = %d after cancel, want 0", s.CardIndex)
	}
	if s.DragX != 0 || s.DragY != 0 || s.Dragging || s.Leaning != DirNone {
		t.Errorf("cancel left drag state: %+v", s)
	}
	if s.Phase != PhaseIdle || len(effects) != 0 {
		t.Errorf("cancel phase = %v effects = %v", s.Phase, effects)
	}
}

func TestDragMoveIgnoredWhenIdle(t *testing.T) {
	deck := scenarioDeck()
	s := idleState(deck)
	next, _ := Step(deck, s, Event{Type: EventDragMove, Feedback: Feedback{OffsetX: 40}})
	if next != s {
		t.Errorf("drag move while idle changed state: %+v", next)
	}
}

func TestPointerDownIgnoredWhileExiting(t *testing.T) {
	deck := scenarioDeck()
	s := idleState(deck)
	s, _ = Step(deck, s, Event{Type: EventPointerDown})
	s, _ = Step(deck, s, commitEvent(DirUp))
	next, _ := Step(deck, s, Event{Type: EventPointerDown})
	if next.Phase != PhaseExiting || next.Dragging {
		t.Errorf("pointer down during exit changed phase: %+v", next)
	}
	next, _ = Step(deck, s, commitEvent(DirDown))
	if next.Tally != s.Tally || next.SettleGen() != s.SettleGen() {
		t.Error("second release during exit was not ignored")
	}
}

func TestCommitEffects(t *testing.T) {
	deck := scenarioDeck()
	s := idleState(deck)
	s, _ = Step(deck, s, Event{Type: EventPointerDown})
	s, effects := Step(deck, s, commitEvent(DirLeft))

	if s.ExitDirection != -1 || s.ExitAxis != AxisX || !s.Exiting {
		t.Errorf("exit = (%v, %v, %v), want (-1, x, true)", s.ExitDirection, s.ExitAxis, s.Exiting)
	}
	if s.Committed != DirLeft {
		t.Errorf("Committed = %v, want left", s.Committed)
	}
	if !hasEffect(effects, EffectCancelGesture) {
		t.Error("commit did not cancel the gesture")
	}
	var settle *Effect
	for i := range effects {
		if effects[i].Type == EffectScheduleSettle {
			settle = &effects[i]
		}
	}
	if settle == nil || settle.Delay != SettleDelay || settle.Gen != s.SettleGen() {
		t.Errorf("settle effect = %+v, want delay %v gen %d", settle, SettleDelay, s.SettleGen())
	}
	if s.CardIndex != 0 {
		t.Error("CardIndex advanced before the settle timer fired")
	}
}

// --- Tally ---

func TestTallyCountsImageCardsOnly(t *testing.T) {
	deck := MustDeck([]Card{
		{Kind: KindImage}, {Kind: KindHTML}, {Kind: KindImage}, {Kind: KindSwitch},
	})
	s := idleState(deck)
	s, _ = swipe(t, deck, s, DirRight) // image
	s, _ = swipe(t, deck, s, DirRight) // html
	s, _ = swipe(t, deck, s, DirUp)    // image
	s, _ = swipe(t, deck, s, DirUp)    // switch
	want := Tally{Right: 1, Up: 1}
	if s.Tally != want {
		t.Errorf("Tally = %+v, want %+v", s.Tally, want)
	}
}

func TestTallyTotals(t *testing.T) {
	tl := Tally{}.Add(DirUp).Add(DirUp).Add(DirLeft).Add(DirNone)
	if tl.Up != 2 || tl.Left != 1 || tl.Total() != 3 {
		t.Errorf("Tally = %+v total %d", tl, tl.Total())
	}
}

func TestResultCardResetsTally(t *testing.T) {
	deck := MustDeck([]Card{{Kind: KindImage}, {Kind: KindResult}, {Kind: KindHTML}})
	s := idleState(deck)
	s, _ = swipe(t, deck, s, DirDown)
	if s.Tally.Down != 1 {
		t.Fatalf("Tally.Down = %d, want 1", s.Tally.Down)
	}
	s, emitted := swipe(t, deck, s, DirLeft)
	if s.Tally != (Tally{}) {
		t.Errorf("Tally after result card = %+v, want zero", s.Tally)
	}
	var reset bool
	for _, e := range emitted {
		if e.Type == SwipeTallyReset {
			reset = true
			if e.CardIndex != 1 {
				t.Errorf("tally reset CardIndex = %d, want 1", e.CardIndex)
			}
		}
	}
	if !reset {
		t.Error("no tally reset event emitted")
	}

	// An empty tally does not emit another reset.
	results := MustDeck([]Card{{Kind: KindResult}, {Kind: KindHTML}})
	_, emitted = swipe(t, results, idleState(results), DirUp)
	for _, e := range emitted {
		if e.Type == SwipeTallyReset {
			t.Error("tally reset emitted for an empty tally")
		}
	}
}

// --- Switch ---

func TestSwitchFilter(t *testing.T) {
	tests := []struct {
		name    string
		start   bool
		dir     Direction
		want    bool
		changed bool
	}{
		{"left enables", false, DirLeft, true, true},
		{"left keeps enabled", true, DirLeft, true, false},
		{"right disables", true, DirRight, false, true},
		{"right keeps disabled", false, DirRight, false, false},
		{"vertical leaves enabled", true, DirUp, true, false},
		{"vertical leaves disabled", false, DirDown, false, false},
	}
	deck := MustDeck([]Card{
		{Kind: KindSwitch, LeftAction: ActionBWFilter, RightAction: ActionNothing},
		{Kind: KindHTML},
	})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := idleState(deck)
			s.FilterEnabled = tt.start
			s, _ = Step(deck, s, Event{Type: EventPointerDown})
			s, effects := Step(deck, s, commitEvent(tt.dir))
			if s.FilterEnabled != tt.want {
				t.Errorf("FilterEnabled = %v, want %v", s.FilterEnabled, tt.want)
			}
			var changed bool
			for _, e := range effects {
				if e.Type == EffectEmit && e.Event.Type == SwipeFilterChanged {
					changed = true
				}
			}
			if changed != tt.changed {
				t.Errorf("filter changed event = %v, want %v", changed, tt.changed)
			}
			if s.Tally != (Tally{}) {
				t.Errorf("switch swipe tallied: %+v", s.Tally)
			}
		})
	}
}

func TestFilterClearsOnWrap(t *testing.T) {
	deck := MustDeck([]Card{
		{Kind: KindSwitch, LeftAction: ActionBWFilter, RightAction: ActionNothing},
		{Kind: KindHTML},
	})
	s := idleState(deck)
	s, _ = swipe(t, deck, s, DirLeft)
	if !s.FilterEnabled {
		t.Fatal("filter not enabled by left swipe")
	}
	s, emitted := swipe(t, deck, s, DirUp)
	if s.CardIndex != 0 || s.FilterEnabled {
		t.Errorf("after wrap CardIndex = %d FilterEnabled = %v, want 0 false", s.CardIndex, s.FilterEnabled)
	}
	var off bool
	for _, e := range emitted {
		if e.Type == SwipeFilterChanged && !e.FilterEnabled {
			off = true
		}
	}
	if !off {
		t.Error("no filter changed event on wrap")
	}
}

// --- Timers ---

func TestStaleSettleIgnored(t *testing.T) {
	deck := scenarioDeck()
	s := idleState(deck)
	s, _ = Step(deck, s, Event{Type: EventPointerDown})
	s, _ = Step(deck, s, commitEvent(DirUp))
	stale := s.SettleGen() - 1

	next, effects := Step(deck, s, Event{Type: EventSettleElapsed, Gen: stale})
	if next != s || len(effects) != 0 {
		t.Errorf("stale settle changed state: %+v", next)
	}
}

func TestStaleFeedbackDoesNotClearNewCommit(t *testing.T) {
	deck := scenarioDeck()
	s := idleState(deck)
	s, _ = swipe(t, deck, s, DirUp)
	oldFeedback := s.FeedbackGen()

	// The next commit happens before the first feedback timer fires.
	s, _ = Step(deck, s, Event{Type: EventPointerDown})
	s, _ = Step(deck, s, commitEvent(DirLeft))
	s, _ = Step(deck, s, Event{Type: EventFeedbackElapsed, Gen: oldFeedback})
	if s.Committed != DirLeft {
		t.Errorf("stale feedback cleared Committed: %v", s.Committed)
	}

	s, _ = Step(deck, s, Event{Type: EventSettleElapsed, Gen: s.SettleGen()})
	s, _ = Step(deck, s, Event{Type: EventFeedbackElapsed, Gen: s.FeedbackGen()})
	if s.Committed != DirNone {
		t.Errorf("current feedback did not clear Committed: %v", s.Committed)
	}
}

func TestSettleSchedulesFeedback(t *testing.T) {
	deck := scenarioDeck()
	s := idleState(deck)
	s, _ = Step(deck, s, Event{Type: EventPointerDown})
	s, _ = Step(deck, s, commitEvent(DirDown))
	s, effects := Step(deck, s, Event{Type: EventSettleElapsed, Gen: s.SettleGen()})
	found := false
	for _, e := range effects {
		if e.Type == EffectScheduleFeedback {
			found = true
			if e.Delay != FeedbackDelay || e.Gen != s.FeedbackGen() {
				t.Errorf("feedback effect = %+v", e)
			}
		}
	}
	if !found {
		t.Error("settle did not schedule the feedback timer")
	}
	if s.InitialRender {
		t.Error("InitialRender still set after the first settle")
	}
}

// --- Reset ---

func TestResetInvalidatesTimers(t *testing.T) {
	deck := scenarioDeck()
	s := idleState(deck)
	s, _ = Step(deck, s, Event{Type: EventPointerDown})
	s, _ = Step(deck, s, commitEvent(DirRight))
	gen := s.SettleGen()

	s, effects := Step(deck, s, Event{Type: EventReset})
	if !hasEffect(effects, EffectCancelTimers) || !hasEffect(effects, EffectCancelGesture) {
		t.Errorf("reset effects = %+v", effects)
	}
	if s.Phase != PhaseIdle || s.CardIndex != 0 || s.Tally != (Tally{}) || !s.InitialRender {
		t.Errorf("state after reset = %+v", s)
	}
	next, _ := Step(deck, s, Event{Type: EventSettleElapsed, Gen: gen})
	if next != s {
		t.Error("settle timer from before reset was applied")
	}

	loading, _ := Step(deck, NewState(), Event{Type: EventReset})
	if loading.Phase != PhaseLoading {
		t.Errorf("reset while loading phase = %v, want loading", loading.Phase)
	}
}

// --- End to end ---

func TestScenario(t *testing.T) {
	deck := scenarioDeck()
	s := idleState(deck)

	s, _ = swipe(t, deck, s, DirRight) // A
	if s.CardIndex != 1 || s.Tally.Right != 1 {
		t.Fatalf("after A: index %d tally %+v", s.CardIndex, s.Tally)
	}

	s, _ = swipe(t, deck, s, DirLeft) // B
	if !s.FilterEnabled || s.CardIndex != 2 {
		t.Fatalf("after B: filter %v index %d", s.FilterEnabled, s.CardIndex)
	}

	s, _ = swipe(t, deck, s, DirDown) // C
	if s.Tally.Down != 1 || s.CardIndex != 3 {
		t.Fatalf("after C: tally %+v index %d", s.Tally, s.CardIndex)
	}

	s, _ = swipe(t, deck, s, DirUp) // D
	if s.Tally != (Tally{}) || s.CardIndex != 0 {
		t.Fatalf("after D: tally %+v index %d", s.Tally, s.CardIndex)
	}
}
