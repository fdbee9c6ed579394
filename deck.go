package cardstack

import (
	"errors"
	"math/rand/v2"
)

var (
	// ErrEmptyDeck is returned by NewDeck when no cards are given.
	ErrEmptyDeck = errors.New("cardstack: deck must contain at least one card")
	// ErrUnknownKind is returned by ParseCardKind for an unrecognized name.
	ErrUnknownKind = errors.New("cardstack: unknown card kind")
	// ErrUnknownAction is returned by ParseAction for an unrecognized name.
	ErrUnknownAction = errors.New("cardstack: unknown switch action")
	// ErrUnknownDirection is returned by ParseDirection for an unrecognized name.
	ErrUnknownDirection = errors.New("cardstack: unknown direction")
	// ErrUnknownCapture is returned by ParseCaptureMode for an unrecognized name.
	ErrUnknownCapture = errors.New("cardstack: unknown capture mode")
)

// Style is the resolved look of a non-image card.
type Style struct {
	From   Color // top of the background gradient
	To     Color // bottom of the background gradient
	Border Color // zero alpha means no border
	Text   Color
}

// DefaultStyle is used for cards without a style.
var DefaultStyle = Style{
	From: ColorWhite,
	To:   ColorWhite,
	Text: Color{0.1, 0.1, 0.1, 1},
}

// Card is one entry of the deck. Cards are immutable once the deck is built;
// YOffset and RotationOffset stay attached to the card across rotations.
type Card struct {
	Kind           CardKind
	Content        string  // image URL for KindImage, HTML markup otherwise
	YOffset        float64 // vertical jitter in pixels
	RotationOffset float64 // rotation jitter in degrees
	LeftAction     Action  // KindSwitch only
	RightAction    Action  // KindSwitch only
	StyleClass     string  // name of the style this card was configured with
	Style          Style
	Capture        CaptureMode
}

// ResolveAction returns the switch action for a horizontal swipe in dir.
// Vertical directions resolve to ActionNone.
func (c Card) ResolveAction(dir Direction) Action {
	switch dir {
	case DirLeft:
		return c.LeftAction
	case DirRight:
		return c.RightAction
	}
	return ActionNone
}

// Jitter bounds the random offsets that give the stack its loose look.
type Jitter struct {
	MaxOffsetY  float64
	MaxRotation float64
}

// DefaultJitter matches the stack's default look: up to 25px and 45 degrees.
var DefaultJitter = Jitter{MaxOffsetY: 25, MaxRotation: 45}

// ApplyJitter returns a copy of cards where every image card gets a random
// vertical offset in [-MaxOffsetY, MaxOffsetY] and rotation in
// [-MaxRotation, MaxRotation]. Other kinds are left untouched. Pass a seeded
// rng for reproducible decks.
func ApplyJitter(cards []Card, j Jitter, rng *rand.Rand) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	if rng == nil {
		return out
	}
	for i := range out {
		if out[i].Kind != KindImage {
			continue
		}
		out[i].YOffset = j.MaxOffsetY * rng.Float64() * randomSign(rng)
		out[i].RotationOffset = j.MaxRotation * rng.Float64() * randomSign(rng)
	}
	return out
}

func randomSign(rng *rand.Rand) float64 {
	if rng.IntN(2) == 0 {
		return 1
	}
	return -1
}

// Deck is a fixed, cyclic sequence of cards. The visible order is a logical
// rotation of the storage; cards are never physically reordered.
type Deck struct {
	cards []Card
}

// NewDeck copies cards into a new deck. An empty slice is a configuration
// error and returns ErrEmptyDeck.
func NewDeck(cards []Card) (*Deck, error) {
	if len(cards) == 0 {
		return nil, ErrEmptyDeck
	}
	d := &Deck{cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	return d, nil
}

// MustDeck is like NewDeck but panics on error. Intended for static decks.
func MustDeck(cards []Card) *Deck {
	d, err := NewDeck(cards)
	if err != nil {
		panic(err)
	}
	return d
}

// Len returns the number of cards.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Card returns the card at index i, wrapping in both directions.
func (d *Deck) Card(i int) Card {
	return d.cards[d.wrap(i)]
}

// VisibleIndex returns the storage index of the card shown at stack
// position pos (0 = top) when the current index is from.
func (d *Deck) VisibleIndex(from, pos int) int {
	return d.wrap(from + pos)
}

// Rotate returns the cards in visible order starting at from. The returned
// slice is fresh; the deck's storage is not modified.
func (d *Deck) Rotate(from int) []Card {
	n := len(d.cards)
	out := make([]Card, n)
	for pos := 0; pos < n; pos++ {
		out[pos] = d.cards[d.wrap(from+pos)]
	}
	return out
}

// Next returns the index following i.
func (d *Deck) Next(i int) int {
	return d.wrap(i + 1)
}

// ImageURLs returns the content of every image card in deck order.
// Duplicates are kept.
func (d *Deck) ImageURLs() []string {
	var urls []string
	for _, c := range d.cards {
		if c.Kind == KindImage && c.Content != "" {
			urls = append(urls, c.Content)
		}
	}
	return urls
}

func (d *Deck) wrap(i int) int {
	n := len(d.cards)
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
