package timing

import "sync"

// TickScheduler coalesces wake-up requests of one handler: however many times
// TickLater is called before the tick happens, a single TickEvent is
// scheduled.
type TickScheduler struct {
	lock    sync.Mutex
	handler Handler
	Engine  EventScheduler

	nextTickTime VTimeInTick
}

// NewTickScheduler creates a scheduler for tick events.
func NewTickScheduler(handler Handler, engine EventScheduler) *TickScheduler {
	return &TickScheduler{
		handler: handler,
		Engine:  engine,
	}
}

// TickLater schedules a tick at the next tick time, unless a tick at or after
// that time is already outstanding.
func (t *TickScheduler) TickLater() error {
	t.lock.Lock()
	defer t.lock.Unlock()

	next := t.Engine.CurrentTime() + 1
	if t.nextTickTime >= next {
		return nil
	}

	evt := MakeTickEvent(t.handler, next)
	if err := t.Engine.Schedule(evt); err != nil {
		return err
	}

	t.nextTickTime = next

	return nil
}

// Outstanding reports whether a scheduled tick has not happened yet.
func (t *TickScheduler) Outstanding() bool {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.nextTickTime > t.Engine.CurrentTime()
}
