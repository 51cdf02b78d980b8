// Package recording exports flushed log entries to files. Every recorder is
// a hook to attach to an event log; it buffers the entries of each flushed
// batch and writes them out when its buffer fills up, when Flush is called
// and when the process exits. Exports are write-only.
package recording

import (
	"sync"

	"github.com/sarchlab/hookscope/eventlog"
	"github.com/sarchlab/hookscope/hooking"
)

// DefaultBufferSize is the number of records a recorder holds before it
// writes them out.
const DefaultBufferSize = 1000

// Record is one exported entry, tagged with the session it came from.
type Record struct {
	SessionID     string `json:"session_id"`
	Sequence      uint64 `json:"sequence"`
	InstanceLabel string `json:"instance_label"`
	HookName      string `json:"hook_name"`
	IsCustomTrace bool   `json:"is_custom_trace"`
	Message       string `json:"message"`
}

// NewRecord converts a log entry.
func NewRecord(sessionID string, e eventlog.Entry) Record {
	return Record{
		SessionID:     sessionID,
		Sequence:      e.Sequence,
		InstanceLabel: e.InstanceLabel,
		HookName:      string(e.HookName),
		IsCustomTrace: e.IsCustomTrace,
		Message:       e.Message,
	}
}

// buffer collects records and hands them to a sink in batches. The first
// sink error sticks and is returned by every later Flush.
type buffer struct {
	lock       sync.Mutex
	sessionID  string
	records    []Record
	bufferSize int
	sink       func(records []Record) error
	err        error
}

func newBuffer(sessionID string, sink func([]Record) error) *buffer {
	return &buffer{
		sessionID:  sessionID,
		bufferSize: DefaultBufferSize,
		sink:       sink,
	}
}

// Func buffers the entries of flushed batches.
func (b *buffer) Func(ctx hooking.HookCtx) {
	if ctx.Pos != eventlog.HookPosFlushed {
		return
	}

	batch, ok := ctx.Item.([]eventlog.Entry)
	if !ok {
		return
	}

	b.lock.Lock()
	defer b.lock.Unlock()

	for _, e := range batch {
		b.records = append(b.records, NewRecord(b.sessionID, e))
	}

	if len(b.records) >= b.bufferSize {
		b.flushLocked()
	}
}

// SetBufferSize changes how many records are held before writing.
func (b *buffer) SetBufferSize(n int) {
	b.lock.Lock()
	defer b.lock.Unlock()

	if n < 1 {
		n = 1
	}

	b.bufferSize = n
}

// Buffered returns the number of records not written yet.
func (b *buffer) Buffered() int {
	b.lock.Lock()
	defer b.lock.Unlock()

	return len(b.records)
}

// Flush writes the buffered records.
func (b *buffer) Flush() error {
	b.lock.Lock()
	defer b.lock.Unlock()

	b.flushLocked()

	return b.err
}

func (b *buffer) flushLocked() {
	if b.err != nil || len(b.records) == 0 {
		return
	}

	records := b.records
	b.records = nil

	b.err = b.sink(records)
}
