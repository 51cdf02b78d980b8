// Package timing provides a deterministic, tick-based event scheduler.
//
// Time is counted in ticks. Work that must happen "on the next tick" is
// scheduled at CurrentTime()+1, so everything scheduled while a tick is being
// processed runs in a later tick.
package timing

import "errors"

// VTimeInTick is the virtual time of the engine, counted in ticks.
type VTimeInTick uint64

// ErrEngineStopped is returned when scheduling on an engine that was stopped.
var ErrEngineStopped = errors.New("timing: engine stopped")

// An Event is something going to happen in the future.
type Event interface {
	// Time returns the tick at which the event should happen.
	Time() VTimeInTick

	// Handler returns the handler that should handle the event.
	Handler() Handler
}

// A Handler defines a domain for the events.
type Handler interface {
	Handle(e Event) error
}

// TimeTeller can be used to get the current time.
type TimeTeller interface {
	CurrentTime() VTimeInTick
}

// EventScheduler can be used to schedule future events.
type EventScheduler interface {
	TimeTeller

	// Schedule registers an event. It fails if the scheduler cannot accept
	// events anymore.
	Schedule(e Event) error
}

// EventBase provides the basic fields and getters for other events.
type EventBase struct {
	time    VTimeInTick
	handler Handler
}

// NewEventBase creates a new EventBase.
func NewEventBase(t VTimeInTick, handler Handler) *EventBase {
	return &EventBase{time: t, handler: handler}
}

// Time returns the tick that the event is going to happen.
func (e EventBase) Time() VTimeInTick {
	return e.time
}

// Handler returns the handler to handle the event.
func (e EventBase) Handler() Handler {
	return e.handler
}

// TickEvent is a generic event that a handler uses to wake itself up.
type TickEvent struct {
	EventBase
}

// MakeTickEvent creates a new TickEvent.
func MakeTickEvent(handler Handler, time VTimeInTick) TickEvent {
	evt := TickEvent{}
	evt.handler = handler
	evt.time = time

	return evt
}
