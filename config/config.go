package config

import (
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/phanxgames/cardstack"
)

// Config holds everything needed to build and show a stack.
type Config struct {
	LogLevel string       `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	Window   WindowConfig `mapstructure:"window" validate:"required"`
	Assets   AssetsConfig `mapstructure:"assets"`
	Deck     DeckConfig   `mapstructure:"deck" validate:"required"`
}

// WindowConfig contains window and card geometry.
type WindowConfig struct {
	Title      string  `mapstructure:"title"`
	Width      int     `mapstructure:"width" validate:"required,gt=0"`
	Height     int     `mapstructure:"height" validate:"required,gt=0"`
	CardWidth  float64 `mapstructure:"card_width" validate:"gt=0"`
	CardHeight float64 `mapstructure:"card_height" validate:"gt=0"`
	Background string  `mapstructure:"background" validate:"omitempty,hexcolor"`
	ShowFPS    bool    `mapstructure:"show_fps"`
}

// AssetsConfig controls where image cards are loaded from.
type AssetsConfig struct {
	// Root is the directory local image paths are resolved against.
	Root    string        `mapstructure:"root"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// DeckConfig describes the cards and their look.
type DeckConfig struct {
	// Seed for the jitter rng. Zero picks a random seed.
	Seed   uint64                 `mapstructure:"seed"`
	Jitter JitterConfig           `mapstructure:"jitter"`
	Styles map[string]StyleConfig `mapstructure:"styles" validate:"dive"`
	Cards  []CardConfig           `mapstructure:"cards" validate:"required,min=1,dive"`
}

// JitterConfig bounds the random offsets given to image cards.
type JitterConfig struct {
	MaxOffsetY  float64 `mapstructure:"max_offset_y" validate:"gte=0"`
	MaxRotation float64 `mapstructure:"max_rotation" validate:"gte=0,lte=180"`
}

// StyleConfig is a named card look. Colors are hex strings.
type StyleConfig struct {
	From   string `mapstructure:"from" validate:"omitempty,hexcolor"`
	To     string `mapstructure:"to" validate:"omitempty,hexcolor"`
	Border string `mapstructure:"border" validate:"omitempty,hexcolor"`
	Text   string `mapstructure:"text" validate:"omitempty,hexcolor"`
}

// CardConfig is one card entry.
type CardConfig struct {
	Kind    string `mapstructure:"kind" validate:"required,oneof=image html switch result"`
	Content string `mapstructure:"content" validate:"required"`
	Style   string `mapstructure:"style"`
	Left    string `mapstructure:"left" validate:"omitempty,oneof=bwfilter nothing"`
	Right   string `mapstructure:"right" validate:"omitempty,oneof=bwfilter nothing"`
	Capture string `mapstructure:"capture" validate:"omitempty,oneof=free horizontal"`
}

// Cards builds the deck's cards. Image cards get jitter from rng; a nil rng
// is seeded from Deck.Seed, or randomly when the seed is zero.
func (c *Config) Cards(rng *rand.Rand) ([]cardstack.Card, error) {
	styles := make(map[string]cardstack.Style, len(c.Deck.Styles))
	for name, sc := range c.Deck.Styles {
		st, err := sc.resolve()
		if err != nil {
			return nil, fmt.Errorf("style %q: %w", name, err)
		}
		styles[name] = st
	}

	cards := make([]cardstack.Card, 0, len(c.Deck.Cards))
	for i, cc := range c.Deck.Cards {
		card, err := cc.card(styles)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i, err)
		}
		cards = append(cards, card)
	}

	if rng == nil {
		seed := c.Deck.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		rng = rand.New(rand.NewPCG(seed, seed))
	}
	j := cardstack.Jitter{MaxOffsetY: c.Deck.Jitter.MaxOffsetY, MaxRotation: c.Deck.Jitter.MaxRotation}
	return cardstack.ApplyJitter(cards, j, rng), nil
}

// Background returns the parsed window background, or the zero Color when
// none is configured.
func (c *Config) Background() (cardstack.Color, error) {
	return parseColor(c.Window.Background)
}

// Loader returns an image loader that fetches http(s) references with the
// configured timeout and reads everything else below Assets.Root.
func (c *Config) Loader() cardstack.ImageLoader {
	root := c.Assets.Root
	if root == "" {
		root = "."
	}
	return cardstack.MultiLoader{
		Remote: cardstack.HTTPLoader{Client: &http.Client{Timeout: c.Assets.Timeout}},
		Local:  cardstack.FSLoader{FS: os.DirFS(root)},
	}
}

func (cc CardConfig) card(styles map[string]cardstack.Style) (cardstack.Card, error) {
	kind, err := cardstack.ParseCardKind(cc.Kind)
	if err != nil {
		return cardstack.Card{}, fmt.Errorf("kind %q: %w", cc.Kind, err)
	}
	left, err := cardstack.ParseAction(cc.Left)
	if err != nil {
		return cardstack.Card{}, fmt.Errorf("left %q: %w", cc.Left, err)
	}
	right, err := cardstack.ParseAction(cc.Right)
	if err != nil {
		return cardstack.Card{}, fmt.Errorf("right %q: %w", cc.Right, err)
	}
	capture, err := cardstack.ParseCaptureMode(cc.Capture)
	if err != nil {
		return cardstack.Card{}, fmt.Errorf("capture %q: %w", cc.Capture, err)
	}

	card := cardstack.Card{
		Kind:        kind,
		Content:     cc.Content,
		LeftAction:  left,
		RightAction: right,
		StyleClass:  cc.Style,
		Capture:     capture,
	}
	if cc.Style != "" {
		st, ok := styles[cc.Style]
		if !ok {
			return cardstack.Card{}, fmt.Errorf("%w: %q", ErrUnknownStyle, cc.Style)
		}
		card.Style = st
	}
	return card, nil
}

// resolve parses the style's colors. Missing gradient stops fall back to
// the default style.
func (sc StyleConfig) resolve() (cardstack.Style, error) {
	st := cardstack.DefaultStyle
	for _, f := range []struct {
		hex string
		dst *cardstack.Color
	}{
		{sc.From, &st.From},
		{sc.To, &st.To},
		{sc.Border, &st.Border},
		{sc.Text, &st.Text},
	} {
		if f.hex == "" {
			continue
		}
		c, err := parseColor(f.hex)
		if err != nil {
			return cardstack.Style{}, err
		}
		*f.dst = c
	}
	return st, nil
}

func parseColor(hex string) (cardstack.Color, error) {
	if hex == "" {
		return cardstack.Color{}, nil
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return cardstack.Color{}, fmt.Errorf("color %q: %w", hex, err)
	}
	return cardstack.Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}
