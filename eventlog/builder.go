package eventlog

import (
	"log"

	"github.com/sarchlab/hookscope/hooking"
	"github.com/sarchlab/hookscope/idgen"
	"github.com/sarchlab/hookscope/timing"
)

// Builder can build event logs.
type Builder struct {
	scheduler timing.EventScheduler
	logger    *log.Logger
}

// MakeBuilder creates a builder with default parameters. Without a scheduler,
// the log flushes synchronously on every append.
func MakeBuilder() Builder {
	return Builder{
		logger: log.Default(),
	}
}

// WithScheduler sets the scheduler that flush ticks are scheduled on.
func (b Builder) WithScheduler(s timing.EventScheduler) Builder {
	b.scheduler = s
	return b
}

// WithLogger sets the logger used to report degraded flushing.
func (b Builder) WithLogger(l *log.Logger) Builder {
	b.logger = l
	return b
}

// Build creates a log.
func (b Builder) Build() *Log {
	logger := b.logger
	if logger == nil {
		logger = log.Default()
	}

	l := &Log{
		HookableBase: hooking.NewHookableBase(),
		seq:          idgen.NewSequence(),
		logger:       logger,
	}

	if b.scheduler != nil {
		l.ticker = timing.NewTickScheduler(l, b.scheduler)
	}

	return l
}
