// Package term renders a card stack in a terminal with tcell. It drives the
// same Controller as the Ebitengine widget; mouse drags and arrow keys swipe
// cards.
package term

import (
	"context"
	"image"
	"image/color"
	"log/slog"
	"math"
	"os"
	"path"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"github.com/phanxgames/cardstack"
)

// A terminal cell stands in for this many pixels when feeding the gesture
// thresholds, so a commit takes about 13 columns or 7 rows of travel.
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

const (
	cardCols      = 30
	cardRows      = 13
	frameDuration = 16 * time.Millisecond
	followRate    = 14.0 // fraction of the remaining distance closed per second
	swatchSamples = 16
)

var (
	background = cardstack.Color{R: 0.067, G: 0.094, B: 0.153, A: 1}
	hudColor   = cardstack.Color{R: 0.9, G: 0.9, B: 0.9, A: 1}
	brokenTile = cardstack.Color{R: 0.85, G: 0.85, B: 0.85, A: 1}
	imageText  = cardstack.Color{R: 0.1, G: 0.1, B: 0.1, A: 1}
)

// Options configures a Renderer. Zero values select defaults.
type Options struct {
	Loader cardstack.ImageLoader // nil loads http(s) remotely and paths from the working directory
	Logger *slog.Logger          // nil uses slog.Default()
	Sink   cardstack.EventSink
}

// visual is the on-screen pose of one card in pixels relative to the screen
// center.
type visual struct {
	x, y    float64
	opacity float64
	placed  bool
}

// Renderer draws a stack on a tcell screen.
type Renderer struct {
	*cardstack.Controller

	screen   tcell.Screen
	gate     *cardstack.Gate
	swatches map[string]cardstack.Color
	visuals  []visual
	gray     *cardstack.ColorMatrixFilter
	logger   *slog.Logger

	width, height int
}

// New creates a renderer for deck on an initialized screen and starts
// preloading the deck's images. Images are reduced to their average color.
func New(ctx context.Context, screen tcell.Screen, deck *cardstack.Deck, opts Options) *Renderer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r := &Renderer{
		Controller: cardstack.NewController(deck, logger, opts.Sink),
		screen:     screen,
		swatches:   make(map[string]cardstack.Color),
		visuals:    make([]visual, deck.Len()),
		gray:       cardstack.NewGrayscaleFilter(),
		logger:     logger,
	}
	r.HitTest = r.hitTop
	r.width, r.height = screen.Size()

	loader := opts.Loader
	if loader == nil {
		loader = cardstack.MultiLoader{
			Remote: cardstack.HTTPLoader{},
			Local:  cardstack.FSLoader{FS: os.DirFS(".")},
		}
	}
	r.gate = cardstack.Preload(ctx, loader, deck.ImageURLs())
	return r
}

// Run polls terminal events and redraws at about 60 frames per second until
// the user quits or ctx is done.
func (r *Renderer) Run(ctx context.Context) error {
	r.screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	defer r.screen.DisableMouse()

	ticker := time.NewTicker(frameDuration)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	pollCtx, stop := context.WithCancel(ctx)
	defer stop()
	go forwardEvents(pollCtx, r.screen.PollEvent, events)

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !r.HandleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			r.Tick(now.Sub(last))
			last = now
			r.Draw()
		}
	}
}

// forwardEvents sends polled events to out until poll returns nil or ctx is
// done.
func forwardEvents(ctx context.Context, poll func() tcell.Event, out chan<- tcell.Event) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// HandleEvent applies one terminal event. It returns false when the user asked
// to quit.
func (r *Renderer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			r.Swipe(cardstack.DirLeft)
		case tcell.KeyRight:
			r.Swipe(cardstack.DirRight)
		case tcell.KeyUp:
			r.Swipe(cardstack.DirUp)
		case tcell.KeyDown:
			r.Swipe(cardstack.DirDown)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'r':
				if r.State().Phase != cardstack.PhaseLoading {
					r.Reset()
				}
			}
		}

	case *tcell.EventMouse:
		if r.State().Phase == cardstack.PhaseLoading {
			return true
		}
		x, y := ev.Position()
		px, py := r.toPixels(x, y)
		r.Pointer(px, py, ev.Buttons()&tcell.Button1 != 0)

	case *tcell.EventResize:
		r.width, r.height = ev.Size()
		r.screen.Sync()
	}
	return true
}

// Tick advances timers and card animations by dt.
func (r *Renderer) Tick(dt time.Duration) {
	r.pollGate()
	r.Advance(dt)
	if r.State().Phase == cardstack.PhaseLoading {
		return
	}

	step := math.Min(1, followRate*dt.Seconds())
	for _, t := range cardstack.Targets(r.Deck(), r.State(), r.viewport()) {
		v := &r.visuals[t.DeckIndex]
		if !v.placed || t.Transition.Kind == cardstack.TransitionNone {
			v.x, v.y, v.opacity = t.X, t.Y, t.Opacity
			v.placed = true
			continue
		}
		v.x += (t.X - v.x) * step
		v.y += (t.Y - v.y) * step
		v.opacity += (t.Opacity - v.opacity) * step
	}
}

func (r *Renderer) pollGate() {
	if r.State().Phase != cardstack.PhaseLoading {
		return
	}
	res, ok := r.gate.Result()
	if !ok {
		return
	}
	for ref, img := range res.Images {
		r.swatches[ref] = swatch(img)
	}
	for ref, err := range res.Failed {
		r.logger.Warn("failed to load image", "ref", ref, "error", err)
	}
	r.Dispatch(cardstack.Event{Type: cardstack.EventPreloaded})
}

// viewport is the screen size in pixel units.
func (r *Renderer) viewport() cardstack.Vec2 {
	return cardstack.Vec2{X: float64(r.width) * cellWidth, Y: float64(r.height) * cellHeight}
}

// toPixels maps a cell to pixel units relative to the top-left corner.
func (r *Renderer) toPixels(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * cellWidth, (float64(row) + 0.5) * cellHeight
}

// cardRect returns the top-left cell of a card drawn at visual v.
func (r *Renderer) cardRect(v visual) (col, row int) {
	col = r.width/2 + int(math.Round(v.x/cellWidth)) - cardCols/2
	row = r.height/2 + int(math.Round(v.y/cellHeight)) - cardRows/2
	return col, row
}

func (r *Renderer) hitTop(x, y float64) bool {
	col, row := r.cardRect(r.visuals[r.State().CardIndex])
	rect := cardstack.Rect{
		X:      float64(col) * cellWidth,
		Y:      float64(row) * cellHeight,
		Width:  cardCols * cellWidth,
		Height: cardRows * cellHeight,
	}
	return rect.Contains(x, y)
}

// swatch averages a grid of samples from img.
func swatch(img image.Image) cardstack.Color {
	b := img.Bounds()
	if b.Empty() {
		return brokenTile
	}
	var sum cardstack.Color
	n := 0.0
	for i := 0; i < swatchSamples; i++ {
		for j := 0; j < swatchSamples; j++ {
			x := b.Min.X + (b.Dx()*i)/swatchSamples
			y := b.Min.Y + (b.Dy()*j)/swatchSamples
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			sum.R += float64(c.R) / 255
			sum.G += float64(c.G) / 255
			sum.B += float64(c.B) / 255
			n++
		}
	}
	return cardstack.Color{R: sum.R / n, G: sum.G / n, B: sum.B / n, A: 1}
}

// --- Drawing ---

// Draw renders the current frame and shows it.
func (r *Renderer) Draw() {
	r.screen.Fill(' ', r.style(hudColor, background))

	s := r.State()
	if s.Phase == cardstack.PhaseLoading {
		r.drawText(r.height/2, 0, r.width, "Loading...", hudColor, background)
		r.screen.Show()
		return
	}

	for _, t := range cardstack.Targets(r.Deck(), s, r.viewport()) {
		v := r.visuals[t.DeckIndex]
		if v.opacity <= 0.05 {
			continue
		}
		r.drawCard(r.Deck().Card(t.DeckIndex), v, s.Tally)
	}
	r.drawHUD(s)
	r.screen.Show()
}

func (r *Renderer) drawCard(card cardstack.Card, v visual, tally cardstack.Tally) {
	col, row := r.cardRect(v)

	style := card.Style
	if style == (cardstack.Style{}) {
		style = cardstack.DefaultStyle
	}
	from, to, fg := style.From, style.To, style.Text
	var lines []string
	switch card.Kind {
	case cardstack.KindImage:
		c, ok := r.swatches[card.Content]
		if !ok {
			c = brokenTile
		}
		from, to, fg = c, c, imageText
		if luminance(c) < 0.5 {
			fg = hudColor
		}
		lines = []string{path.Base(card.Content)}
	default:
		lines = cardstack.ExtractText(card.Content)
		if card.Kind == cardstack.KindResult {
			lines = append(lines, cardstack.TallyLines(tally)...)
		}
	}

	a := colorful.Color{R: from.R, G: from.G, B: from.B}
	b := colorful.Color{R: to.R, G: to.G, B: to.B}
	rowColors := make([]cardstack.Color, cardRows)
	for i := range rowColors {
		c := a.BlendLab(b, float64(i)/float64(cardRows-1)).Clamped()
		rowColors[i] = fade(cardstack.Color{R: c.R, G: c.G, B: c.B, A: 1}, v.opacity)
	}
	fg = fade(fg, v.opacity)
	for i := 0; i < cardRows; i++ {
		for j := 0; j < cardCols; j++ {
			r.screen.SetContent(col+j, row+i, ' ', nil, r.style(fg, rowColors[i]))
		}
	}
	if style.Border.A > 0 && card.Kind != cardstack.KindImage {
		r.drawBorder(col, row, fade(style.Border, v.opacity), rowColors)
	}

	lines = wrap(lines, cardCols-4)
	top := row + (cardRows-len(lines))/2
	for i, line := range lines {
		y := top + i
		if y <= row || y >= row+cardRows-1 {
			continue
		}
		r.drawText(y, col, cardCols, line, fg, rowColors[y-row])
	}
}

func (r *Renderer) drawBorder(col, row int, c cardstack.Color, rowColors []cardstack.Color) {
	right, bottom := col+cardCols-1, row+cardRows-1
	top, low := r.style(c, rowColors[0]), r.style(c, rowColors[cardRows-1])
	for x := col + 1; x < right; x++ {
		r.screen.SetContent(x, row, tcell.RuneHLine, nil, top)
		r.screen.SetContent(x, bottom, tcell.RuneHLine, nil, low)
	}
	for y := row + 1; y < bottom; y++ {
		st := r.style(c, rowColors[y-row])
		r.screen.SetContent(col, y, tcell.RuneVLine, nil, st)
		r.screen.SetContent(right, y, tcell.RuneVLine, nil, st)
	}
	r.screen.SetContent(col, row, tcell.RuneULCorner, nil, top)
	r.screen.SetContent(right, row, tcell.RuneURCorner, nil, top)
	r.screen.SetContent(col, bottom, tcell.RuneLLCorner, nil, low)
	r.screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, low)
}

func (r *Renderer) drawHUD(s cardstack.State) {
	if label := cardstack.FeedbackLabel(s); label != "" {
		r.drawText(0, 0, r.width, label, hudColor, background)
	}
	r.drawText(r.height-1, 0, r.width, "drag or arrows to swipe  r reset  q quit", hudColor, background)
}

// drawText centers line in the width cells starting at col.
func (r *Renderer) drawText(row, col, width int, line string, fg, bg cardstack.Color) {
	line = runewidth.Truncate(line, width, "…")
	x := col + (width-runewidth.StringWidth(line))/2
	st := r.style(fg, bg)
	for _, ch := range line {
		r.screen.SetContent(x, row, ch, nil, st)
		x += runewidth.RuneWidth(ch)
	}
}

// style builds a tcell style, passing both colors through the black and white
// filter when it is enabled.
func (r *Renderer) style(fg, bg cardstack.Color) tcell.Style {
	if r.State().FilterEnabled {
		fg, bg = r.gray.Transform(fg), r.gray.Transform(bg)
	}
	return tcell.StyleDefault.Foreground(toTcell(fg)).Background(toTcell(bg))
}

func toTcell(c cardstack.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R*255+0.5), int32(c.G*255+0.5), int32(c.B*255+0.5))
}

// fade blends c toward the background by opacity; terminals have no alpha.
func fade(c cardstack.Color, opacity float64) cardstack.Color {
	if opacity >= 1 {
		return c
	}
	bg := colorful.Color{R: background.R, G: background.G, B: background.B}
	out := bg.BlendRgb(colorful.Color{R: c.R, G: c.G, B: c.B}, math.Max(0, opacity))
	return cardstack.Color{R: out.R, G: out.G, B: out.B, A: 1}
}

func luminance(c cardstack.Color) float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// wrap breaks lines on spaces so that none is wider than width cells. Single
// words wider than width are left for drawText to truncate.
func wrap(lines []string, width int) []string {
	var out []string
	for _, line := range lines {
		var cur string
		for _, word := range strings.Fields(line) {
			switch {
			case cur == "":
				cur = word
			case runewidth.StringWidth(cur)+1+runewidth.StringWidth(word) <= width:
				cur += " " + word
			default:
				out = append(out, cur)
				cur = word
			}
		}
		if cur != "" {
			out = append(out, cur)
		}
	}
	return out
}
