// Package ecs provides ECS adapters for cardstack's swipe events.
//
// The primary adapter is [NewDonburiSink], which bridges swipe events
// (commits, settles, tally resets and filter changes) into a [Donburi] world
// as typed events and keeps a [Tally] component in sync. Subscribe to
// [SwipeEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	stack.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
