package cardstack

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// cardVisual is the animated on-screen pose of one card. Fields are offsets
// from the stack origin; Rotation is in degrees.
type cardVisual struct {
	X, Y     float64
	Rotation float64
	Alpha    float64
	ZIndex   int

	target CardTarget
	kind   TransitionKind
	tween  *TweenGroup
	spring [4]Spring
	placed bool
}

// fields returns pointers to the animated fields in a fixed order.
func (v *cardVisual) fields() [4]*float64 {
	return [4]*float64{&v.X, &v.Y, &v.Rotation, &v.Alpha}
}

// retarget points the visual at t. Springs keep their velocity so a moving
// card bends smoothly toward a new target; tweens restart from the current
// pose.
func (v *cardVisual) retarget(t CardTarget) {
	v.ZIndex = t.ZIndex
	if !v.placed || t.Transition.Kind == TransitionNone {
		v.snap(t)
		return
	}
	same := v.target.X == t.X && v.target.Y == t.Y &&
		v.target.Rotation == t.Rotation && v.target.Opacity == t.Opacity
	if same && v.kind == t.Transition.Kind {
		v.target = t
		return
	}
	prev := v.kind
	v.target = t
	v.kind = t.Transition.Kind
	switch t.Transition.Kind {
	case TransitionTween:
		fn := t.Transition.Ease
		if fn == nil {
			fn = ease.OutQuad
		}
		v.tween = TweenVisual(v, t, float32(t.Transition.Duration.Seconds()), fn)
	default:
		v.tween = nil
		goals := [4]float64{t.X, t.Y, t.Rotation, t.Opacity}
		for i, f := range v.fields() {
			if prev != TransitionSpring {
				v.spring[i].Velocity = 0
			}
			v.spring[i].Retarget(f, goals[i], t.Transition.Spring)
		}
	}
}

func (v *cardVisual) snap(t CardTarget) {
	v.target = t
	v.kind = TransitionNone
	v.tween = nil
	v.X, v.Y, v.Rotation, v.Alpha = t.X, t.Y, t.Rotation, t.Opacity
	for i := range v.spring {
		v.spring[i] = Spring{Done: true}
	}
	v.placed = true
}

// update advances whichever animation is active by dt seconds.
func (v *cardVisual) update(dt float64) {
	switch v.kind {
	case TransitionTween:
		if v.tween != nil {
			v.tween.Update(float32(dt))
		}
	case TransitionSpring:
		for i := range v.spring {
			v.spring[i].Update(dt)
		}
	}
}

// settled reports whether the visual has reached its target.
func (v *cardVisual) settled() bool {
	switch v.kind {
	case TransitionTween:
		return v.tween == nil || v.tween.Done
	case TransitionSpring:
		for i := range v.spring {
			if !v.spring[i].Done {
				return false
			}
		}
	}
	return true
}

// --- Tweens ---

// TweenGroup animates up to 4 float64 fields simultaneously. Call Update(dt)
// each frame; values are written through to the fields.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenVisual creates a TweenGroup that moves v's position, rotation and
// alpha to the target over duration seconds.
func TweenVisual(v *cardVisual, to CardTarget, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 4}
	goals := [4]float64{to.X, to.Y, to.Rotation, to.Opacity}
	for i, f := range v.fields() {
		g.tweens[i] = gween.New(float32(*f), float32(goals[i]), duration, fn)
		g.fields[i] = f
	}
	return g
}

// --- Springs ---

const (
	springMaxStep   = 1.0 / 240.0 // seconds per integration substep
	springRestDelta = 0.01
	springRestSpeed = 0.01
)

// Spring drives one float64 field toward a goal with a damped spring.
type Spring struct {
	Params   SpringParams
	Velocity float64
	Goal     float64
	Done     bool
	field    *float64
}

// Retarget points the spring at a new goal, keeping its current velocity.
func (sp *Spring) Retarget(field *float64, goal float64, p SpringParams) {
	if p.Mass <= 0 {
		p = DefaultSpring
	}
	sp.field = field
	sp.Goal = goal
	sp.Params = p
	sp.Done = false
}

// Update integrates the spring by dt seconds using semi-implicit Euler in
// fixed substeps.
func (sp *Spring) Update(dt float64) {
	if sp.Done || sp.field == nil || dt <= 0 {
		return
	}
	x := *sp.field
	for dt > 0 {
		h := math.Min(dt, springMaxStep)
		dt -= h
		force := -sp.Params.Stiffness*(x-sp.Goal) - sp.Params.Damping*sp.Velocity
		sp.Velocity += force / sp.Params.Mass * h
		x += sp.Velocity * h
	}
	if math.Abs(x-sp.Goal) < springRestDelta && math.Abs(sp.Velocity) < springRestSpeed {
		x = sp.Goal
		sp.Velocity = 0
		sp.Done = true
	}
	*sp.field = x
}
