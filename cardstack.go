package cardstack

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default card background.
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to a premultiplied color.RGBA for ebiten fills.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions, offsets and viewport sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// CardKind selects how a card is drawn and what a committed swipe does.
type CardKind uint8

const (
	KindImage  CardKind = iota // remote or bundled picture; swipes are tallied
	KindHTML                   // styled text card
	KindSwitch                 // horizontal swipes resolve Left/RightAction
	KindResult                 // shows the tally; leaving it resets the tally
)

var kindNames = [...]string{"image", "html", "switch", "result"}

func (k CardKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseCardKind maps a config name to a CardKind.
func ParseCardKind(s string) (CardKind, error) {
	for i, name := range kindNames {
		if name == s {
			return CardKind(i), nil
		}
	}
	return 0, ErrUnknownKind
}

// Action is the effect attached to one side of a switch card.
type Action uint8

const (
	ActionNone     Action = iota // side has no action configured
	ActionBWFilter               // enables the black and white filter
	ActionNothing                // explicit no-op; disables the filter
)

var actionNames = [...]string{"", "bwfilter", "nothing"}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// ParseAction maps a config name to an Action. The empty string is ActionNone.
func ParseAction(s string) (Action, error) {
	for i, name := range actionNames {
		if name == s {
			return Action(i), nil
		}
	}
	return 0, ErrUnknownAction
}

// Direction is a swipe or lean direction.
type Direction uint8

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

var directionNames = [...]string{"none", "up", "down", "left", "right"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "unknown"
}

// ParseDirection maps a name such as "left" to a Direction. "none" is
// rejected.
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames[1:] {
		if name == s {
			return Direction(i + 1), nil
		}
	}
	return DirNone, ErrUnknownDirection
}

// Sign returns -1 for left/up, +1 for right/down and 0 for none.
func (d Direction) Sign() float64 {
	switch d {
	case DirLeft, DirUp:
		return -1
	case DirRight, DirDown:
		return 1
	}
	return 0
}

// Axis is the dominant axis of a gesture.
type Axis uint8

const (
	AxisX Axis = iota // horizontal
	AxisY             // vertical
)

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// directionOf returns the direction on axis for a signed amount.
func directionOf(axis Axis, sign float64) Direction {
	switch {
	case axis == AxisX && sign < 0:
		return DirLeft
	case axis == AxisX && sign > 0:
		return DirRight
	case axis == AxisY && sign < 0:
		return DirUp
	case axis == AxisY && sign > 0:
		return DirDown
	}
	return DirNone
}

// CaptureMode restricts which axes a drag on a card may move along.
type CaptureMode uint8

const (
	CaptureFree       CaptureMode = iota // both axes, dominant axis wins
	CaptureHorizontal                    // vertical movement is discarded
)

// ParseCaptureMode maps "free" or "horizontal" to a CaptureMode. The empty
// string is CaptureFree.
func ParseCaptureMode(s string) (CaptureMode, error) {
	switch s {
	case "", "free":
		return CaptureFree, nil
	case "horizontal":
		return CaptureHorizontal, nil
	}
	return CaptureFree, ErrUnknownCapture
}

// Phase is the coarse state of the swipe state machine.
type Phase uint8

const (
	PhaseLoading  Phase = iota // preload gate unresolved; input ignored
	PhaseIdle                  // no pointer down
	PhaseDragging              // pointer captured on the top card
	PhaseExiting               // commit accepted, exit animation playing
)

var phaseNames = [...]string{"loading", "idle", "dragging", "exiting"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}
