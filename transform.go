package cardstack

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// cardTransform computes the affine matrix that maps card-local pixels
// (origin at the card's top-left) to screen space. The card rotates about its
// center, which sits at origin + (v.X, v.Y). Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Translate(-w/2, -h/2) -> Rotate -> Translate(origin + offset)
func cardTransform(v *cardVisual, w, h float64, origin Vec2) [6]float64 {
	sin, cos := math.Sincos(v.Rotation * math.Pi / 180)
	px, py := -w/2, -h/2
	return [6]float64{
		cos, sin, -sin, cos,
		cos*px - sin*py + origin.X + v.X,
		sin*px + cos*py + origin.Y + v.Y,
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// geoM converts an affine matrix to an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// cardContains reports whether the screen point (x, y) lies on the card
// drawn with transform m.
func cardContains(m [6]float64, w, h, x, y float64) bool {
	lx, ly := transformPoint(invertAffine(m), x, y)
	return Rect{Width: w, Height: h}.Contains(lx, ly)
}
