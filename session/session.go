// Package session bundles the registry, the event log, the interceptor and
// the correlation index that one instrumentation context shares.
//
// Several sessions can live side by side, for example one per test. Default
// returns a process-wide session for callers that need only one.
package session

import (
	"log"
	"sync"

	"github.com/rs/xid"
	"github.com/sarchlab/hookscope/correlation"
	"github.com/sarchlab/hookscope/eventlog"
	"github.com/sarchlab/hookscope/hooking"
	"github.com/sarchlab/hookscope/identity"
	"github.com/sarchlab/hookscope/intercept"
	"github.com/sarchlab/hookscope/lifecycle"
	"github.com/sarchlab/hookscope/timing"
)

// Session is one instrumentation context.
type Session struct {
	ID          string
	Registry    *identity.Registry
	Log         *eventlog.Log
	Interceptor *intercept.Interceptor
	Index       *correlation.Index
	Scheduler   timing.EventScheduler
}

// Instrument wraps the class with the capability set it implements.
func (s *Session) Instrument(class *lifecycle.Class) (*intercept.Class, error) {
	return s.Interceptor.WrapDetected(class)
}

// ResetIdentity makes every class count its instances from 1 again. The log
// is untouched.
func (s *Session) ResetIdentity() {
	s.Registry.Reset()
}

// ClearLog empties the log. Labels keep counting.
func (s *Session) ClearLog() {
	s.Log.Clear()
}

// Reset clears the log and resets identity.
func (s *Session) Reset() {
	s.ClearLog()
	s.ResetIdentity()
}

type runner interface {
	Run() error
}

// Settle processes every scheduled flush so that all appended entries are
// visible. Schedulers that cannot be run are bypassed by flushing directly.
func (s *Session) Settle() error {
	if r, ok := s.Scheduler.(runner); ok {
		if err := r.Run(); err != nil {
			return err
		}
	}

	s.Log.Flush()

	return nil
}

// Builder can build sessions.
type Builder struct {
	scheduler timing.EventScheduler
	logger    *log.Logger
	hooks     []hooking.Hook
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		logger: log.Default(),
	}
}

// WithScheduler sets the scheduler the log flushes on. By default, each
// session gets its own SerialEngine.
func (b Builder) WithScheduler(s timing.EventScheduler) Builder {
	b.scheduler = s
	return b
}

// WithLogger sets the logger of the event log.
func (b Builder) WithLogger(l *log.Logger) Builder {
	b.logger = l
	return b
}

// WithLogHook attaches a hook to the event log.
func (b Builder) WithLogHook(h hooking.Hook) Builder {
	b.hooks = append(b.hooks[:len(b.hooks):len(b.hooks)], h)
	return b
}

// Build creates a session.
func (b Builder) Build() *Session {
	scheduler := b.scheduler
	if scheduler == nil {
		scheduler = timing.NewSerialEngine()
	}

	eventLog := eventlog.MakeBuilder().
		WithScheduler(scheduler).
		WithLogger(b.logger).
		Build()
	for _, h := range b.hooks {
		eventLog.AcceptHook(h)
	}

	registry := identity.NewRegistry()

	return &Session{
		ID:          xid.New().String(),
		Registry:    registry,
		Log:         eventLog,
		Interceptor: intercept.New(registry, eventLog),
		Index:       correlation.NewIndex(eventLog),
		Scheduler:   scheduler,
	}
}

var (
	defaultOnce    sync.Once
	defaultSession *Session
)

// Default returns the process-wide session, building it on first use.
//
// Its log flushes on a SerialEngine that nothing runs in the background.
// Appended entries reach Log.Snapshot only after Settle, or after a direct
// Log.Flush.
func Default() *Session {
	defaultOnce.Do(func() {
		defaultSession = MakeBuilder().Build()
	})

	return defaultSession
}
