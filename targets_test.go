package cardstack

import (
	"testing"
)

var testViewport = Vec2{X: 600, Y: 700}

func TestTargetsPainterOrder(t *testing.T) {
	deck := scenarioDeck()
	s := idleState(deck)
	s.CardIndex = 2
	got := Targets(deck, s, testViewport)
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	wantIdx := []int{1, 0, 3, 2} // bottom first
	for i, tg := range got {
		if tg.DeckIndex != wantIdx[i] {
			t.Errorf("target %d DeckIndex = %d, want %d", i, tg.DeckIndex, wantIdx[i])
		}
		if tg.Position != 3-i || tg.ZIndex != i+1 {
			t.Errorf("target %d position %d z %d", i, tg.Position, tg.ZIndex)
		}
	}
}

func TestTargetsJitterFollowsCard(t *testing.T) {
	deck := MustDeck([]Card{
		{Kind: KindImage, YOffset: 10, RotationOffset: -20},
		{Kind: KindImage, YOffset: -5, RotationOffset: 30},
	})
	s := idleState(deck)
	s.CardIndex = 1
	got := Targets(deck, s, testViewport)
	top := got[1]
	if top.DeckIndex != 1 || top.Y != -5 || top.Rotation != 30 {
		t.Errorf("top = %+v, want deck 1 with its own jitter", top)
	}
	if got[0].Y != 10 || got[0].Rotation != -20 {
		t.Errorf("bottom = %+v, want deck 0 jitter", got[0])
	}
}

func TestTargetsDragging(t *testing.T) {
	deck := MustDeck([]Card{{Kind: KindImage, YOffset: 4}, {Kind: KindHTML}})
	s := idleState(deck)
	s.InitialRender = false
	s, _ = Step(deck, s, Event{Type: EventPointerDown})
	s, _ = Step(deck, s, Event{Type: EventDragMove, Feedback: Feedback{OffsetY: 30}})
	top := Targets(deck, s, testViewport)[1]
	if top.X != 0 || top.Y != 34 {
		t.Errorf("top offset = (%v, %v), want (0, 34)", top.X, top.Y)
	}
	if top.Transition.Kind != TransitionNone {
		t.Errorf("dragging transition = %v, want none", top.Transition.Kind)
	}
	if under := Targets(deck, s, testViewport)[0]; under.Transition.Kind != TransitionSpring {
		t.Errorf("card below transition = %v, want spring", under.Transition.Kind)
	}
}

func TestTargetsExit(t *testing.T) {
	tests := []struct {
		dir   Direction
		wantX float64
		wantY float64
		rot   float64
	}{
		{DirLeft, -600, 0, -45},
		{DirRight, 600, 0, 45},
		{DirUp, 0, -700, -45},
		{DirDown, 0, 700, 45},
	}
	deck := MustDeck([]Card{{Kind: KindHTML}, {Kind: KindHTML}})
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			s := idleState(deck)
			s, _ = Step(deck, s, Event{Type: EventPointerDown})
			s, _ = Step(deck, s, commitEvent(tt.dir))
			top := Targets(deck, s, testViewport)[1]
			if top.X != tt.wantX || top.Y != tt.wantY || top.Rotation != tt.rot {
				t.Errorf("exit target = (%v, %v, %v), want (%v, %v, %v)",
					top.X, top.Y, top.Rotation, tt.wantX, tt.wantY, tt.rot)
			}
			if top.Opacity != 0 {
				t.Errorf("exit opacity = %v, want 0", top.Opacity)
			}
			if top.Transition.Kind != TransitionTween || top.Transition.Duration != ExitDuration || top.Transition.Ease == nil {
				t.Errorf("exit transition = %+v", top.Transition)
			}
		})
	}
}

func TestTargetsInitialRenderSnapsStack(t *testing.T) {
	deck := scenarioDeck()
	s := idleState(deck)
	got := Targets(deck, s, testViewport)
	for _, tg := range got[:len(got)-1] {
		if tg.Transition.Kind != TransitionNone {
			t.Errorf("card %d transition = %v on initial render, want none", tg.DeckIndex, tg.Transition.Kind)
		}
	}
	if top := got[len(got)-1]; top.Transition.Kind != TransitionSpring {
		t.Errorf("top transition = %v, want spring", top.Transition.Kind)
	}

	s, _ = swipe(t, deck, s, DirUp)
	for _, tg := range Targets(deck, s, testViewport) {
		if tg.Transition.Kind != TransitionSpring {
			t.Errorf("card %d transition = %v after settle, want spring", tg.DeckIndex, tg.Transition.Kind)
		}
	}
}
