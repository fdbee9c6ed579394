// Package cardstack is a swipeable card-stack widget for [Ebitengine].
//
// A [Deck] is an ordered, cyclic list of cards. The top card follows the
// pointer while it is dragged; a drag that travels far enough or fast enough
// is committed, the card flies off along the swipe axis and the deck rotates
// so the next card comes to the top. Shorter drags spring back.
//
// # Quick start
//
//	deck, err := cardstack.NewDeck(cards)
//	if err != nil {
//		log.Fatal(err)
//	}
//	stack := cardstack.NewStack(ctx, deck, cardstack.Options{})
//	if err := cardstack.Run(stack, cardstack.RunConfig{
//		Title: "Cards", Width: 600, Height: 700,
//	}); err != nil {
//		log.Fatal(err)
//	}
//
// [Stack] implements [ebiten.Game], so it can also be driven by a host game
// that forwards Update, Draw and Layout.
//
// # Cards
//
// Image cards show a picture and count toward the swipe tally. HTML cards
// show styled text. Switch cards resolve a configured action for horizontal
// swipes; the "bwfilter" action turns the whole stack black and white.
// Result cards display the tally and clear it when they leave the top.
//
// # State machine
//
// The interaction logic is a pure function, [Step], from a [State] and an
// [Event] to a new State plus a list of [Effect] values. The runtime carries
// out the effects: timers are scheduled on the frame clock by [Timers], and
// swipe events are forwarded to an [EventSink]. Because Step has no side
// effects, renderers other than Ebitengine can drive it; the term
// subpackage renders the same stack in a terminal.
//
// Timers carry generation numbers. A timer event whose generation no longer
// matches the state is stale and ignored, so resetting or committing again
// can never be undone by an earlier timer.
//
// # Preloading
//
// NewStack starts loading every image card concurrently through an
// [ImageLoader]. Input is ignored until all loads have finished; images that
// failed are drawn as blank tiles.
//
// # Testing
//
// [Stack.InjectDrag], [Stack.InjectSwipe] and [TestRunner] script gestures
// and screenshots without a real pointer.
//
// [Ebitengine]: https://ebitengine.org
package cardstack
