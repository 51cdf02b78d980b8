// Package host drives lifecycle instances the way a UI runtime does: it
// mounts them, processes their state updates and props changes in lifecycle
// order and unmounts them. It is a small stand-in for a real runtime, enough
// to exercise instrumented components.
package host

import (
	"errors"
	"fmt"
	"log"

	"github.com/sarchlab/hookscope/lifecycle"
)

// MaxNestedUpdates is how many times one flush may update the same mount
// before the host gives up. Components that update themselves on every update
// would otherwise never settle.
const MaxNestedUpdates = 50

// ErrMaxUpdateDepth is raised with panic when a flush updates one mount more
// than MaxNestedUpdates times.
var ErrMaxUpdateDepth = errors.New("host: maximum update depth exceeded")

// Root owns a set of mounts and the queue of mounts waiting for an update.
// State updates requested outside a batch are processed right away. Inside a
// batch, which includes every mount and update the host is running, they wait
// until the outermost batch ends.
type Root struct {
	batchDepth int
	dirty      []*Mount
	logger     *log.Logger
}

// NewRoot creates a root that reports dropped updates to the standard
// logger.
func NewRoot() *Root {
	return &Root{logger: log.Default()}
}

// WithLogger sets the logger dropped updates are reported to.
func (r *Root) WithLogger(l *log.Logger) *Root {
	r.logger = l
	return r
}

// Mount constructs an instance with the factory and mounts it.
func (r *Root) Mount(f lifecycle.Factory, props lifecycle.Props) *Mount {
	m := &Mount{root: r}

	r.runBatched(func() {
		m.mount(f, props)
	})
	r.flushIfIdle()

	return m
}

// Batch runs fn and processes the state updates it requested once it
// returns.
func (r *Root) Batch(fn func()) {
	r.runBatched(fn)
	r.flushIfIdle()
}

func (r *Root) runBatched(fn func()) {
	r.batchDepth++
	defer func() { r.batchDepth-- }()

	fn()
}

func (r *Root) schedule(m *Mount) {
	if !m.dirty {
		m.dirty = true
		r.dirty = append(r.dirty, m)
	}

	r.flushIfIdle()
}

func (r *Root) flushIfIdle() {
	if r.batchDepth == 0 {
		r.flushUpdates()
	}
}

func (r *Root) flushUpdates() {
	var updated []*Mount

	defer func() {
		for _, m := range updated {
			m.depth = 0
		}
	}()

	for len(r.dirty) > 0 {
		m := r.dirty[0]
		r.dirty = r.dirty[1:]
		m.dirty = false

		if m.unmounted || len(m.queue) == 0 {
			continue
		}

		if m.depth == 0 {
			updated = append(updated, m)
		}

		m.depth++
		if m.depth > MaxNestedUpdates {
			r.dropAll()
			panic(fmt.Errorf("%w: %s updated more than %d times in one flush",
				ErrMaxUpdateDepth, m.name, MaxNestedUpdates))
		}

		r.runBatched(func() {
			m.update(m.props, false)
		})
	}
}

func (r *Root) dropAll() {
	for _, m := range r.dirty {
		m.dirty = false
		m.queue = nil
	}

	r.dirty = nil
}
