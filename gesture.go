package cardstack

import (
	"math"
	"time"
)

// Gesture thresholds. Distances are in pixels, velocities in pixels per
// millisecond.
const (
	CommitDistance = 100.0
	CommitVelocity = 0.5
	LeanDistance   = 20.0
	MaxDragOffset  = 10000.0
)

// DragSample is one pointer reading during a drag. DX/DY are cumulative from
// the drag start; VX/VY are instantaneous velocities.
type DragSample struct {
	DX, DY float64
	VX, VY float64
	Active bool // false only for the terminal release sample
}

// --- Tracker ---

// Tracker converts raw pointer positions and timestamps into DragSamples.
// One Tracker follows one pointer.
//
// Velocity is measured against the last reading taken at an earlier
// timestamp, so several readings within one frame share that frame's
// velocity and a frame without movement reports zero.
type Tracker struct {
	Capture CaptureMode

	down         bool
	moved        bool
	startX       float64
	startY       float64
	lastX, lastY float64
	lastAt       time.Duration
	baseX, baseY float64
	baseAt       time.Duration
	vx, vy       float64
}

// Press starts tracking at (x, y).
func (t *Tracker) Press(x, y float64, at time.Duration) {
	t.down = true
	t.moved = false
	t.startX, t.startY = x, y
	t.lastX, t.lastY = x, y
	t.lastAt = at
	t.baseX, t.baseY = x, y
	t.baseAt = at
	t.vx, t.vy = 0, 0
}

// Down reports whether a press is being tracked.
func (t *Tracker) Down() bool {
	return t.down
}

// Move records a new position. ok is false when no press is tracked or the
// pointer did not move; a stationary reading still updates the velocity.
func (t *Tracker) Move(x, y float64, at time.Duration) (s DragSample, ok bool) {
	if !t.down {
		return DragSample{}, false
	}
	stationary := x == t.lastX && y == t.lastY
	t.advance(x, y, at)
	if stationary {
		return DragSample{}, false
	}
	return t.sample(true), true
}

// Release ends tracking at (x, y). ok is false for taps (a release with no
// movement) and when no press is tracked. The release velocity is measured
// up to the release time, so a pointer held still before release reports
// zero.
func (t *Tracker) Release(x, y float64, at time.Duration) (s DragSample, ok bool) {
	if !t.down {
		return DragSample{}, false
	}
	t.advance(x, y, at)
	t.down = false
	if !t.moved {
		return DragSample{}, false
	}
	return t.sample(false), true
}

// Cancel drops the tracked press without producing a sample.
func (t *Tracker) Cancel() {
	t.down = false
	t.moved = false
}

func (t *Tracker) advance(x, y float64, at time.Duration) {
	if at > t.lastAt {
		t.baseX, t.baseY = t.lastX, t.lastY
		t.baseAt = t.lastAt
	}
	t.vx, t.vy = 0, 0
	if elapsed := float64(at-t.baseAt) / float64(time.Millisecond); elapsed > 0 {
		t.vx = (x - t.baseX) / elapsed
		t.vy = (y - t.baseY) / elapsed
	}
	t.lastX, t.lastY = x, y
	t.lastAt = at
	if x != t.startX || y != t.startY {
		t.moved = true
	}
}

func (t *Tracker) sample(active bool) DragSample {
	s := DragSample{
		DX:     t.lastX - t.startX,
		DY:     t.lastY - t.startY,
		VX:     t.vx,
		VY:     t.vy,
		Active: active,
	}
	if t.Capture == CaptureHorizontal {
		s.DY, s.VY = 0, 0
	}
	return s
}

// --- Interpreter ---

// Feedback is the live output of an active drag.
type Feedback struct {
	OffsetX, OffsetY float64
	Axis             Axis
	Leaning          Direction
}

// Outcome classifies a release.
type Outcome uint8

const (
	OutcomeIgnored   Outcome = iota // interpreter locked; sample discarded
	OutcomeCancelled                // spring back to origin
	OutcomeCommitted                // swipe accepted
)

// Decision is the result of a release sample.
type Decision struct {
	Outcome   Outcome
	Direction Direction
	Axis      Axis
}

// Interpreter classifies drag samples into live feedback and a commit or
// cancel decision. After a commit it stays locked until Reset, so no further
// sample can produce a second commit.
type Interpreter struct {
	locked bool
}

// Locked reports whether a commit has been dispatched.
func (in *Interpreter) Locked() bool {
	return in.locked
}

// Lock discards every sample until Reset.
func (in *Interpreter) Lock() {
	in.locked = true
}

// Reset unlocks the interpreter for the next drag.
func (in *Interpreter) Reset() {
	in.locked = false
}

// Move interprets an active sample. ok is false while locked.
func (in *Interpreter) Move(s DragSample) (fb Feedback, ok bool) {
	if in.locked {
		return Feedback{}, false
	}
	return Classify(s), true
}

// Release interprets the terminal sample and locks the interpreter on commit.
func (in *Interpreter) Release(s DragSample) Decision {
	if in.locked {
		return Decision{Outcome: OutcomeIgnored}
	}
	d := Decide(s)
	if d.Outcome == OutcomeCommitted {
		in.locked = true
	}
	return d
}

// Classify computes the live feedback for a sample: the dominant axis keeps
// its offset, the other is pinned to 0, and a leaning direction is reported
// once either axis moved more than LeanDistance.
func Classify(s DragSample) Feedback {
	s = sanitizeSample(s)
	axis := dominantAxis(s.DX, s.DY)
	fb := Feedback{Axis: axis}
	if axis == AxisX {
		fb.OffsetX = clampOffset(s.DX)
	} else {
		fb.OffsetY = clampOffset(s.DY)
	}
	if math.Abs(s.DX) > LeanDistance || math.Abs(s.DY) > LeanDistance {
		if axis == AxisX {
			fb.Leaning = directionOf(AxisX, s.DX)
		} else {
			fb.Leaning = directionOf(AxisY, s.DY)
		}
	}
	return fb
}

// Decide applies the commit threshold to a release sample. The axis is taken
// from the release sample itself.
func Decide(s DragSample) Decision {
	s = sanitizeSample(s)
	axis := dominantAxis(s.DX, s.DY)
	d, v := s.DX, s.VX
	if axis == AxisY {
		d, v = s.DY, s.VY
	}
	if math.Abs(d) <= CommitDistance && math.Abs(v) <= CommitVelocity {
		return Decision{Outcome: OutcomeCancelled, Axis: axis}
	}
	sign := d
	if sign == 0 {
		sign = v
	}
	dir := directionOf(axis, sign)
	if dir == DirNone {
		return Decision{Outcome: OutcomeCancelled, Axis: axis}
	}
	return Decision{Outcome: OutcomeCommitted, Direction: dir, Axis: axis}
}

func dominantAxis(dx, dy float64) Axis {
	if math.Abs(dx) > math.Abs(dy) {
		return AxisX
	}
	return AxisY
}

func sanitizeSample(s DragSample) DragSample {
	s.DX = finiteOrZero(s.DX)
	s.DY = finiteOrZero(s.DY)
	s.VX = finiteOrZero(s.VX)
	s.VY = finiteOrZero(s.VY)
	return s
}

// finiteOrZero maps NaN to 0 and saturates infinities to MaxDragOffset.
func finiteOrZero(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case math.IsInf(v, 1):
		return MaxDragOffset
	case math.IsInf(v, -1):
		return -MaxDragOffset
	}
	return v
}

func clampOffset(v float64) float64 {
	return math.Max(-MaxDragOffset, math.Min(MaxDragOffset, v))
}
