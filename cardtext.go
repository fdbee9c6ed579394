package cardstack

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/net/html"
)

// blockTags end a line of card text.
var blockTags = map[string]bool{
	"br": true, "div": true, "p": true, "h1": true, "h2": true, "h3": true, "li": true,
}

// ExtractText flattens card HTML into display lines. Block elements and <br>
// start a new line; runs of whitespace collapse to one space.
func ExtractText(markup string) []string {
	z := html.NewTokenizer(strings.NewReader(markup))
	var lines []string
	var cur strings.Builder
	flush := func() {
		line := strings.Join(strings.Fields(cur.String()), " ")
		if line != "" {
			lines = append(lines, line)
		}
		cur.Reset()
	}
	for {
		switch z.Next() {
		case html.ErrorToken:
			flush()
			return lines
		case html.TextToken:
			cur.Write(z.Text())
			cur.WriteByte(' ')
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if blockTags[string(name)] {
				flush()
			}
		}
	}
}

// --- Font ---

const (
	cardFontSize = 32
	hudFontSize  = 18
)

// Lazily created; the renderer is single-threaded.
var (
	goRegularSource *text.GoTextFaceSource
	cardFace        *text.GoTextFace
	hudFace         *text.GoTextFace
)

func ensureFaces() {
	if goRegularSource != nil {
		return
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("cardstack: failed to load Go Regular font: " + err.Error())
	}
	goRegularSource = src
	cardFace = &text.GoTextFace{Source: src, Size: cardFontSize}
	hudFace = &text.GoTextFace{Source: src, Size: hudFontSize}
}

// wrapLines greedily wraps each line to maxWidth pixels using face metrics.
func wrapLines(lines []string, face text.Face, maxWidth float64) []string {
	var out []string
	for _, line := range lines {
		words := strings.Fields(line)
		var cur string
		for _, w := range words {
			candidate := w
			if cur != "" {
				candidate = cur + " " + w
			}
			if cur != "" && text.Advance(candidate, face) > maxWidth {
				out = append(out, cur)
				cur = w
				continue
			}
			cur = candidate
		}
		if cur != "" {
			out = append(out, cur)
		}
	}
	return out
}

// drawCenteredLines draws lines centered horizontally and vertically in a
// w x h box at (x, y).
func drawCenteredLines(dst *ebiten.Image, lines []string, face *text.GoTextFace, c Color, x, y, w, h float64) {
	if len(lines) == 0 {
		return
	}
	lineH := face.Size * 1.25
	top := y + (h-lineH*float64(len(lines)))/2
	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.LineSpacing = lineH
	op.ColorScale.ScaleWithColor(c.toRGBA())
	for i, line := range lines {
		op.GeoM.Reset()
		op.GeoM.Translate(x+w/2, top+float64(i)*lineH)
		text.Draw(dst, line, face, op)
	}
}

// TallyLines formats the tally shown on a result card.
func TallyLines(t Tally) []string {
	return []string{
		fmt.Sprintf("↑ %d   ↓ %d", t.Up, t.Down),
		fmt.Sprintf("← %d   → %d", t.Left, t.Right),
	}
}
