package ecs

import (
	"github.com/phanxgames/cardstack"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SwipeEventType is the Donburi event type for cardstack swipe events.
var SwipeEventType = events.NewEventType[cardstack.SwipeEvent]()

// Tally mirrors the stack's swipe tally on the sink's entity.
var Tally = donburi.NewComponentType[cardstack.Tally]()

// FilterState records whether the black and white filter is on.
var FilterState = donburi.NewComponentType[bool]()

// DonburiSink publishes swipe events into a Donburi world.
type DonburiSink struct {
	world  donburi.World
	entity donburi.Entity
}

// NewDonburiSink creates a sink and the entity holding its Tally and
// FilterState components. Events are queued on SwipeEventType and delivered
// by events.ProcessAllEvents or SwipeEventType.ProcessEvents.
func NewDonburiSink(world donburi.World) *DonburiSink {
	return &DonburiSink{
		world:  world,
		entity: world.Create(Tally, FilterState),
	}
}

// Entity returns the entity carrying the Tally and FilterState components.
func (s *DonburiSink) Entity() donburi.Entity {
	return s.entity
}

// EmitEvent implements cardstack.EventSink. Every swipe event carries the
// current tally and filter state, so the components are refreshed on each.
func (s *DonburiSink) EmitEvent(event cardstack.SwipeEvent) {
	if entry := s.world.Entry(s.entity); entry.Valid() {
		tally, on := event.Tally, event.FilterEnabled
		Tally.Set(entry, &tally)
		FilterState.Set(entry, &on)
	}
	SwipeEventType.Publish(s.world, event)
}
