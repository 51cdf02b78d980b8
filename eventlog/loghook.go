package eventlog

import (
	"log"

	"github.com/sarchlab/hookscope/hooking"
)

// LogHook prints flushed entries to a logger.
type LogHook struct {
	*log.Logger
}

// NewLogHook returns a LogHook writing to the logger.
func NewLogHook(logger *log.Logger) *LogHook {
	return &LogHook{Logger: logger}
}

// Func writes one line per flushed entry and a marker when the log is
// cleared.
func (h *LogHook) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case HookPosFlushed:
		batch, ok := ctx.Item.([]Entry)
		if !ok {
			return
		}

		for _, e := range batch {
			h.Println(e.String())
		}
	case HookPosCleared:
		h.Println("---- log cleared ----")
	}
}
