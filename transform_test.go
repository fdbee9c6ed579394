package cardstack

import (
	"math"
	"testing"
)

const epsilon = 1e-6

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// --- cardTransform ---

func TestCardTransformUnrotated(t *testing.T) {
	v := &cardVisual{X: 10, Y: -5}
	got := cardTransform(v, 300, 450, Vec2{X: 400, Y: 500})
	assertMatrix(t, "transform", got, [6]float64{1, 0, 0, 1, 400 + 10 - 150, 500 - 5 - 225})
}

func TestCardTransformRotatesAboutCenter(t *testing.T) {
	v := &cardVisual{Rotation: 90}
	m := cardTransform(v, 100, 50, Vec2{X: 200, Y: 200})
	cx, cy := transformPoint(m, 50, 25)
	assertNear(t, "center x", cx, 200)
	assertNear(t, "center y", cy, 200)
	// The top-left corner rotates clockwise to the top-right.
	x, y := transformPoint(m, 0, 0)
	assertNear(t, "corner x", x, 225)
	assertNear(t, "corner y", y, 150)
}

// --- invertAffine ---

func TestInvertAffine(t *testing.T) {
	v := &cardVisual{X: 30, Y: 40, Rotation: 33}
	m := cardTransform(v, 300, 450, Vec2{X: 300, Y: 350})
	inv := invertAffine(m)
	x, y := transformPoint(m, 17, 29)
	lx, ly := transformPoint(inv, x, y)
	assertNear(t, "x", lx, 17)
	assertNear(t, "y", ly, 29)
}

func TestInvertAffineSingularReturnsIdentity(t *testing.T) {
	got := invertAffine([6]float64{0, 0, 0, 0, 5, 5})
	assertMatrix(t, "inverse", got, identityTransform)
}

// --- cardContains ---

func TestCardContains(t *testing.T) {
	origin := Vec2{X: 300, Y: 300}
	flat := cardTransform(&cardVisual{}, 200, 100, origin)
	tilted := cardTransform(&cardVisual{Rotation: 90}, 200, 100, origin)

	tests := []struct {
		name string
		m    [6]float64
		x, y float64
		want bool
	}{
		{"center", flat, 300, 300, true},
		{"inside edge", flat, 399, 349, true},
		{"right of card", flat, 401, 300, false},
		{"below card", flat, 300, 351, false},
		{"rotated tall", tilted, 300, 390, true},
		{"rotated narrow", tilted, 390, 300, false},
	}
	for _, tt := range tests {
		if got := cardContains(tt.m, 200, 100, tt.x, tt.y); got != tt.want {
			t.Errorf("%s: cardContains(%v, %v) = %v, want %v", tt.name, tt.x, tt.y, got, tt.want)
		}
	}
}
