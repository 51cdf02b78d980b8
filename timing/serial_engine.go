package timing

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/sarchlab/hookscope/hooking"
)

// HookPosBeforeEvent is a hook position that triggers before handling an event.
var HookPosBeforeEvent = &hooking.HookPos{Name: "BeforeEvent"}

// HookPosAfterEvent is a hook position that triggers after handling an event.
var HookPosAfterEvent = &hooking.HookPos{Name: "AfterEvent"}

// SerialEngine processes scheduled events one after another in time order.
// Nothing runs until Step or Run is called, which makes flush timing fully
// deterministic.
type SerialEngine struct {
	*hooking.HookableBase

	timeLock sync.RWMutex
	now      VTimeInTick

	queue   *eventQueue
	stopped atomic.Bool

	singleRunLock sync.Mutex
}

// NewSerialEngine creates a SerialEngine.
func NewSerialEngine() *SerialEngine {
	return &SerialEngine{
		HookableBase: hooking.NewHookableBase(),
		queue:        newEventQueue(),
	}
}

// Schedule registers an event to be handled in the future.
func (e *SerialEngine) Schedule(evt Event) error {
	if e.stopped.Load() {
		return ErrEngineStopped
	}

	now := e.readNow()
	if evt.Time() < now {
		panic(fmt.Sprintf(
			"timing: cannot schedule event in the past, evt %s @ %d, now %d",
			reflect.TypeOf(evt), evt.Time(), now,
		))
	}

	e.queue.Push(evt)

	return nil
}

func (e *SerialEngine) readNow() VTimeInTick {
	e.timeLock.RLock()
	t := e.now
	e.timeLock.RUnlock()

	return t
}

func (e *SerialEngine) writeNow(t VTimeInTick) {
	e.timeLock.Lock()
	e.now = t
	e.timeLock.Unlock()
}

// Run processes all scheduled events until no event is left. Events
// scheduled while running are processed too.
func (e *SerialEngine) Run() error {
	e.singleRunLock.Lock()
	defer e.singleRunLock.Unlock()

	for e.queue.Len() > 0 {
		if err := e.runTick(); err != nil {
			return err
		}
	}

	return nil
}

// Step processes every event of the earliest scheduled tick and returns
// whether anything ran.
func (e *SerialEngine) Step() (bool, error) {
	e.singleRunLock.Lock()
	defer e.singleRunLock.Unlock()

	if e.queue.Len() == 0 {
		return false, nil
	}

	return true, e.runTick()
}

func (e *SerialEngine) runTick() error {
	tick := e.queue.Peek().Time()

	for {
		next := e.queue.Peek()
		if next == nil || next.Time() != tick {
			return nil
		}

		if err := e.handle(e.queue.Pop()); err != nil {
			return err
		}
	}
}

func (e *SerialEngine) handle(evt Event) error {
	now := e.readNow()
	if evt.Time() < now {
		panic(fmt.Sprintf(
			"timing: cannot run event in the past, evt %s @ %d, now %d",
			reflect.TypeOf(evt), evt.Time(), now,
		))
	}

	e.writeNow(evt.Time())

	hookCtx := hooking.HookCtx{
		Domain: e,
		Pos:    HookPosBeforeEvent,
		Item:   evt,
	}
	e.InvokeHook(hookCtx)

	var err error
	if handler := evt.Handler(); handler != nil {
		err = handler.Handle(evt)
	}

	hookCtx.Pos = HookPosAfterEvent
	e.InvokeHook(hookCtx)

	if err != nil {
		return fmt.Errorf("timing: handling %s @ %d: %w",
			reflect.TypeOf(evt), evt.Time(), err)
	}

	return nil
}

// Pending returns the number of events waiting to be processed.
func (e *SerialEngine) Pending() int {
	return e.queue.Len()
}

// Stop makes the engine refuse new events. Already scheduled events can still
// be processed by Run or Step.
func (e *SerialEngine) Stop() {
	e.stopped.Store(true)
}

// CurrentTime returns the tick of the most recently handled event.
func (e *SerialEngine) CurrentTime() VTimeInTick {
	return e.readNow()
}

var _ EventScheduler = (*SerialEngine)(nil)
