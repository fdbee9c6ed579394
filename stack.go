package cardstack

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Default card dimensions in pixels.
const (
	DefaultCardWidth  = 300
	DefaultCardHeight = 450
)

// Options configures a Stack. Zero values select defaults.
type Options struct {
	CardWidth  float64
	CardHeight float64
	ClearColor Color
	Loader     ImageLoader  // nil loads http(s) remotely and paths from the working directory
	Logger     *slog.Logger // nil uses slog.Default()
	Sink       EventSink
	ShowFPS    bool
}

// Stack is the swipeable card-stack widget. It implements ebiten.Game, so it
// can be run directly with Run or embedded in another game by forwarding
// Update, Draw and Layout.
//
// All state changes happen in Update on the game goroutine. The only other
// goroutines are the preload workers, which hand their result over through the
// gate.
type Stack struct {
	*Controller

	visuals []cardVisual
	gate    *Gate
	images  map[string]*ebiten.Image

	width  int
	height int

	// Render state.
	faces       []*ebiten.Image
	faceTally   []Tally // tally a result face was rendered with
	offscreen   *ebiten.Image
	grayscale   *ColorMatrixFilter
	loadingTime float64

	cardW, cardH float64
	ClearColor   Color
	showFPS      bool

	// Tooling.
	injectQueue     []syntheticPointerEvent
	testRunner      *TestRunner
	screenshotQueue []string
	ScreenshotDir   string
}

// NewStack creates a stack over deck and starts preloading every image card.
// Cancelling ctx abandons loads still in flight; the gate then resolves with
// those images marked as failed.
func NewStack(ctx context.Context, deck *Deck, opts Options) *Stack {
	s := &Stack{
		Controller:    NewController(deck, opts.Logger, opts.Sink),
		visuals:       make([]cardVisual, deck.Len()),
		images:        make(map[string]*ebiten.Image),
		faces:         make([]*ebiten.Image, deck.Len()),
		faceTally:     make([]Tally, deck.Len()),
		cardW:         opts.CardWidth,
		cardH:         opts.CardHeight,
		ClearColor:    opts.ClearColor,
		showFPS:       opts.ShowFPS,
		ScreenshotDir: "screenshots",
		width:         int(DefaultCardWidth * 2),
		height:        int(DefaultCardHeight * 1.5),
	}
	if s.cardW <= 0 {
		s.cardW = DefaultCardWidth
	}
	if s.cardH <= 0 {
		s.cardH = DefaultCardHeight
	}
	if s.ClearColor == (Color{}) {
		s.ClearColor = Color{R: 0.067, G: 0.094, B: 0.153, A: 1}
	}
	s.HitTest = s.hitTop
	loader := opts.Loader
	if loader == nil {
		loader = MultiLoader{Remote: HTTPLoader{}, Local: FSLoader{FS: os.DirFS(".")}}
	}
	s.gate = Preload(ctx, loader, deck.ImageURLs())
	return s
}

// Loaded reports whether the preload gate has resolved.
func (s *Stack) Loaded() bool {
	return s.state.Phase != PhaseLoading
}

// Update implements ebiten.Game.
func (s *Stack) Update() error {
	s.update(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

// update advances the stack by one frame of length dt.
func (s *Stack) update(dt time.Duration) {
	s.pollGate()

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	if s.state.Phase != PhaseLoading {
		s.processInput()
	}
	s.Advance(dt)
	s.animate(dt.Seconds())
}

// Layout implements ebiten.Game.
func (s *Stack) Layout(outsideWidth, outsideHeight int) (int, int) {
	s.width, s.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// pollGate converts preloaded images once the gate resolves and opens the
// stack for input.
func (s *Stack) pollGate() {
	if s.state.Phase != PhaseLoading {
		return
	}
	res, ok := s.gate.Result()
	if !ok {
		return
	}
	for ref, img := range res.Images {
		s.images[ref] = ebiten.NewImageFromImage(img)
	}
	for ref, err := range res.Failed {
		s.logger.Warn("failed to load image", "ref", ref, "error", err)
	}
	s.logger.Debug("preload finished",
		"loaded", len(res.Images), "failed", len(res.Failed))
	s.Dispatch(Event{Type: EventPreloaded})
}

// viewport is the distance an exiting card travels.
func (s *Stack) viewport() Vec2 {
	return Vec2{X: float64(s.width), Y: float64(s.height)}
}

// origin is the screen position of the stack's center.
func (s *Stack) origin() Vec2 {
	return Vec2{X: float64(s.width) / 2, Y: float64(s.height) / 2}
}

// animate retargets every card visual from the current state and advances
// the animations.
func (s *Stack) animate(dt float64) {
	if s.state.Phase == PhaseLoading {
		s.loadingTime += dt
		return
	}
	for _, t := range Targets(s.deck, s.state, s.viewport()) {
		v := &s.visuals[t.DeckIndex]
		v.retarget(t)
		v.update(dt)
	}
}

// hitTop reports whether the screen point (x, y) lies on the top card.
func (s *Stack) hitTop(x, y float64) bool {
	v := &s.visuals[s.state.CardIndex]
	m := cardTransform(v, s.cardW, s.cardH, s.origin())
	return cardContains(m, s.cardW, s.cardH, x, y)
}

// imageFor returns the decoded image for an image card, or nil when it
// failed or is not loaded yet.
func (s *Stack) imageFor(card Card) *ebiten.Image {
	return s.images[card.Content]
}
