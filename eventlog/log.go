// Package eventlog provides an ordered, append-only log of lifecycle events.
//
// Appends land in a pending buffer and become visible in batches: the first
// append of a synchronous stretch schedules one flush on the next tick of the
// configured scheduler, and every append made before that tick is flushed
// together with it. Entries carry the sequence number they received when they
// were appended, so the visible order is the call order no matter how the
// batches fall.
//
// The log is hookable. Hooks attached to it are told about every append
// (HookPosEntryAppended, Item is an Entry), every flushed batch
// (HookPosFlushed, Item is a []Entry) and every clear (HookPosCleared).
package eventlog

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/sarchlab/hookscope/hooking"
	"github.com/sarchlab/hookscope/idgen"
	"github.com/sarchlab/hookscope/timing"
)

// Hook positions raised by the log.
var (
	HookPosEntryAppended = &hooking.HookPos{Name: "EntryAppended"}
	HookPosFlushed       = &hooking.HookPos{Name: "Flushed"}
	HookPosCleared       = &hooking.HookPos{Name: "Cleared"}
)

// Log is the event log. Use a Builder to create one.
type Log struct {
	*hooking.HookableBase

	lock       sync.Mutex
	seq        *idgen.Sequence
	visible    []Entry
	pending    []Entry
	flushing   bool
	flushAgain bool

	ticker   *timing.TickScheduler
	logger   *log.Logger
	degraded atomic.Bool
}

// Append assigns the next sequence number to the entry and adds it to the
// pending buffer, then makes sure a flush is scheduled.
func (l *Log) Append(in Input) Entry {
	l.lock.Lock()
	e := Entry{
		Sequence:      uint64(l.seq.Next()),
		InstanceLabel: in.InstanceLabel,
		HookName:      in.HookName,
		IsCustomTrace: in.IsCustomTrace,
		Message:       in.Message,
	}
	l.pending = append(l.pending, e)
	l.lock.Unlock()

	l.InvokeHook(hooking.HookCtx{
		Domain: l,
		Pos:    HookPosEntryAppended,
		Item:   e,
	})

	l.ScheduleFlush()

	return e
}

// ScheduleFlush arranges for the pending buffer to be flushed on the next
// tick. Requests made before that tick share it. If the log has no scheduler
// or the scheduler refuses the tick, the log flushes right away instead.
func (l *Log) ScheduleFlush() {
	if l.ticker != nil {
		err := l.ticker.TickLater()
		if err == nil {
			return
		}

		if !l.degraded.Swap(true) {
			l.logger.Printf(
				"eventlog: cannot schedule flush (%v), flushing synchronously", err)
		}
	}

	l.Flush()
}

// Flush makes every pending entry visible and returns them. Hooks see the
// batch once it is visible. Entries appended while the hooks run stay pending
// and are flushed later, never as part of the batch being processed.
//
// A Flush called from a HookPosFlushed hook returns nil at once and leaves
// the pending entries in place. The outer Flush makes them visible as a new
// batch after the hooks return, and includes them in its own result.
func (l *Log) Flush() []Entry {
	l.lock.Lock()
	if l.flushing {
		l.flushAgain = true
		l.lock.Unlock()

		return nil
	}
	l.flushing = true

	var flushed []Entry

	for {
		batch := l.pending
		l.pending = nil
		l.flushAgain = false
		l.visible = append(l.visible, batch...)
		l.lock.Unlock()

		if len(batch) > 0 {
			l.InvokeHook(hooking.HookCtx{
				Domain: l,
				Pos:    HookPosFlushed,
				Item:   batch,
			})
			flushed = append(flushed, batch...)
		}

		l.lock.Lock()
		if !l.flushAgain {
			break
		}
	}

	l.flushing = false
	l.lock.Unlock()

	return flushed
}

// Handle flushes the log when its tick event fires.
func (l *Log) Handle(e timing.Event) error {
	if _, ok := e.(timing.TickEvent); !ok {
		return fmt.Errorf("eventlog: unexpected event %T", e)
	}

	l.Flush()

	return nil
}

// Snapshot returns a copy of the visible entries in ascending sequence order.
// It does not flush.
func (l *Log) Snapshot() []Entry {
	l.lock.Lock()
	defer l.lock.Unlock()

	snapshot := make([]Entry, len(l.visible))
	copy(snapshot, l.visible)

	return snapshot
}

// Len returns the number of visible entries.
func (l *Log) Len() int {
	l.lock.Lock()
	defer l.lock.Unlock()

	return len(l.visible)
}

// Pending returns the number of entries waiting for a flush.
func (l *Log) Pending() int {
	l.lock.Lock()
	defer l.lock.Unlock()

	return len(l.pending)
}

// Clear drops the visible and pending entries and restarts sequence numbers.
// It takes effect immediately. A flush already scheduled finds nothing to do.
func (l *Log) Clear() {
	l.lock.Lock()
	l.visible = nil
	l.pending = nil
	l.seq.Reset()
	l.lock.Unlock()

	l.InvokeHook(hooking.HookCtx{
		Domain: l,
		Pos:    HookPosCleared,
	})
}

var _ timing.Handler = (*Log)(nil)
