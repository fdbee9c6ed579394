package cardstack

import (
	"time"

	"github.com/tanema/gween/ease"
)

// Exit animation parameters.
const (
	ExitRotation = 45.0 // degrees
	ExitDuration = 200 * time.Millisecond
)

// SpringParams configures a damped spring.
type SpringParams struct {
	Stiffness float64
	Damping   float64
	Mass      float64
}

// DefaultSpring is the profile for ordinary card motion.
var DefaultSpring = SpringParams{Stiffness: 300, Damping: 30, Mass: 0.5}

// TransitionKind selects how a card moves toward its target.
type TransitionKind uint8

const (
	TransitionSpring TransitionKind = iota // damped spring toward the target
	TransitionTween                        // fixed-duration eased tween
	TransitionNone                         // jump to the target
)

// Transition describes how a card approaches its target.
type Transition struct {
	Kind     TransitionKind
	Spring   SpringParams
	Duration time.Duration
	Ease     ease.TweenFunc
}

// CardTarget is where one card should be, given the current state.
type CardTarget struct {
	DeckIndex  int
	Position   int     // 0 is the top of the stack
	X, Y       float64 // offset from the stack origin, pixels
	Rotation   float64 // degrees
	ZIndex     int
	Opacity    float64
	Transition Transition
}

// Targets computes the target of every card in painter order (bottom card
// first). viewport is the distance an exiting card travels on each axis.
func Targets(deck *Deck, s State, viewport Vec2) []CardTarget {
	n := deck.Len()
	out := make([]CardTarget, n)
	for pos := 0; pos < n; pos++ {
		idx := deck.VisibleIndex(s.CardIndex, pos)
		card := deck.Card(idx)
		t := CardTarget{
			DeckIndex:  idx,
			Position:   pos,
			Y:          card.YOffset,
			Rotation:   card.RotationOffset,
			ZIndex:     n - pos,
			Opacity:    1,
			Transition: Transition{Kind: TransitionSpring, Spring: DefaultSpring},
		}
		if pos == 0 {
			topTarget(&t, s, viewport)
		} else if s.InitialRender {
			t.Transition = Transition{Kind: TransitionNone}
		}
		out[n-1-pos] = t
	}
	return out
}

func topTarget(t *CardTarget, s State, viewport Vec2) {
	if s.Exiting {
		if s.ExitAxis == AxisX {
			t.X = s.ExitDirection * viewport.X
		} else {
			t.Y += s.ExitDirection * viewport.Y
		}
		t.Rotation = s.ExitDirection * ExitRotation
		t.Opacity = 0
		t.Transition = Transition{Kind: TransitionTween, Duration: ExitDuration, Ease: ease.OutQuad}
		return
	}
	t.X = s.DragX
	t.Y += s.DragY
	if s.Dragging {
		// 1:1 tracking under the pointer.
		t.Transition = Transition{Kind: TransitionNone}
	}
}
