package cardstack

import (
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	borderWidth     = 2
	gradientBands   = 64
	loadingPulseHz  = 1.0
	brokenTileShade = 0.85
)

// Draw implements ebiten.Game.
func (s *Stack) Draw(screen *ebiten.Image) {
	screen.Fill(s.ClearColor.toRGBA())

	if s.state.Phase == PhaseLoading {
		s.drawLoading(screen)
		s.drawHUD(screen)
		s.flushScreenshots(screen)
		return
	}

	target := screen
	if s.state.FilterEnabled {
		target = s.ensureOffscreen(screen)
		target.Fill(s.ClearColor.toRGBA())
	}
	s.drawCards(target)
	if s.state.FilterEnabled {
		if s.grayscale == nil {
			s.grayscale = NewGrayscaleFilter()
		}
		s.grayscale.Apply(target, screen)
	}

	s.drawHUD(screen)
	s.flushScreenshots(screen)
}

// drawCards draws every visible card in ascending z order.
func (s *Stack) drawCards(dst *ebiten.Image) {
	order := s.paintOrder()
	origin := s.origin()
	var op ebiten.DrawImageOptions
	for _, idx := range order {
		v := &s.visuals[idx]
		if v.Alpha <= 0 {
			continue
		}
		face := s.face(idx)
		op.GeoM = geoM(cardTransform(v, s.cardW, s.cardH, origin))
		op.ColorScale.Reset()
		op.ColorScale.ScaleAlpha(float32(v.Alpha))
		op.Filter = ebiten.FilterLinear
		dst.DrawImage(face, &op)
	}
}

// paintOrder returns deck indices sorted by ZIndex, bottom first. Ties keep
// deck order.
func (s *Stack) paintOrder() []int {
	order := make([]int, len(s.visuals))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return s.visuals[order[a]].ZIndex < s.visuals[order[b]].ZIndex
	})
	return order
}

func (s *Stack) ensureOffscreen(screen *ebiten.Image) *ebiten.Image {
	b := screen.Bounds()
	if s.offscreen == nil || s.offscreen.Bounds().Dx() != b.Dx() || s.offscreen.Bounds().Dy() != b.Dy() {
		if s.offscreen != nil {
			s.offscreen.Deallocate()
		}
		s.offscreen = ebiten.NewImage(b.Dx(), b.Dy())
	}
	return s.offscreen
}

// face returns the cached face image of the card at deck index idx,
// rendering it on first use. Result faces are re-rendered when the tally
// changes.
func (s *Stack) face(idx int) *ebiten.Image {
	card := s.deck.Card(idx)
	img := s.faces[idx]
	if img != nil && (card.Kind != KindResult || s.faceTally[idx] == s.state.Tally) {
		return img
	}
	if img == nil {
		img = ebiten.NewImage(int(s.cardW), int(s.cardH))
		s.faces[idx] = img
	} else {
		img.Clear()
	}
	s.faceTally[idx] = s.state.Tally
	s.renderFace(img, card)
	return img
}

// renderFace draws a card's content into img.
func (s *Stack) renderFace(img *ebiten.Image, card Card) {
	w, h := s.cardW, s.cardH
	if card.Kind == KindImage {
		src := s.imageFor(card)
		if src == nil {
			// Broken or missing image: an empty tile.
			img.Fill(Color{brokenTileShade, brokenTileShade, brokenTileShade, 1}.toRGBA())
			return
		}
		drawCover(img, src, w, h)
		return
	}

	style := card.Style
	if style == (Style{}) {
		style = DefaultStyle
	}
	drawGradient(img, style.From, style.To, w, h)
	if style.Border.A > 0 {
		vector.StrokeRect(img, borderWidth/2, borderWidth/2,
			float32(w-borderWidth), float32(h-borderWidth), borderWidth,
			style.Border.toRGBA(), true)
	}

	ensureFaces()
	lines := ExtractText(card.Content)
	if card.Kind == KindResult {
		lines = append(lines, TallyLines(s.state.Tally)...)
	}
	lines = wrapLines(lines, cardFace, w-32)
	drawCenteredLines(img, lines, cardFace, style.Text, 0, 0, w, h)
}

// drawCover scales src to cover a w x h box, cropping the overflow.
func drawCover(dst, src *ebiten.Image, w, h float64) {
	b := src.Bounds()
	sw, sh := float64(b.Dx()), float64(b.Dy())
	if sw == 0 || sh == 0 {
		return
	}
	scale := math.Max(w/sw, h/sh)
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate((w-sw*scale)/2, (h-sh*scale)/2)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(src, &op)
}

// drawGradient fills a w x h box with a top-to-bottom gradient blended in
// Lab space.
func drawGradient(dst *ebiten.Image, from, to Color, w, h float64) {
	a := colorful.Color{R: from.R, G: from.G, B: from.B}
	b := colorful.Color{R: to.R, G: to.G, B: to.B}
	bandH := h / gradientBands
	for i := 0; i < gradientBands; i++ {
		t := float64(i) / float64(gradientBands-1)
		c := a.BlendLab(b, t).Clamped()
		alpha := from.A + (to.A-from.A)*t
		fill := Color{R: c.R, G: c.G, B: c.B, A: alpha}
		vector.DrawFilledRect(dst, 0, float32(float64(i)*bandH),
			float32(w), float32(bandH+1), fill.toRGBA(), false)
	}
}

// drawLoading draws the pulsing placeholder shown until the gate resolves.
func (s *Stack) drawLoading(dst *ebiten.Image) {
	ensureFaces()
	pulse := 0.6 + 0.4*math.Sin(2*math.Pi*loadingPulseHz*s.loadingTime)
	c := Color{1, 1, 1, pulse}
	drawCenteredLines(dst, []string{"Loading..."}, cardFace, c,
		0, 0, float64(s.width), float64(s.height))
}
