package cardstack

// SwipeEventType identifies a notification emitted by the state machine.
type SwipeEventType uint8

const (
	SwipeCommitted     SwipeEventType = iota // a swipe passed the threshold
	SwipeSettled                             // the deck rotated after the exit animation
	SwipeTallyReset                          // a result card cleared the tally
	SwipeFilterChanged                       // the black and white filter toggled
)

var swipeEventNames = [...]string{"committed", "settled", "tally_reset", "filter_changed"}

func (t SwipeEventType) String() string {
	if int(t) < len(swipeEventNames) {
		return swipeEventNames[t]
	}
	return "unknown"
}

// SwipeEvent carries the state that changed with a swipe.
type SwipeEvent struct {
	Type          SwipeEventType
	CardIndex     int // index of the card the event concerns
	Kind          CardKind
	Direction     Direction
	Tally         Tally
	FilterEnabled bool
}

// EventSink receives swipe notifications, e.g. to forward them to an ECS.
// When set on a Stack, every emitted SwipeEvent is passed to it.
type EventSink interface {
	EmitEvent(event SwipeEvent)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(SwipeEvent)

// EmitEvent calls f(event).
func (f EventSinkFunc) EmitEvent(event SwipeEvent) { f(event) }
