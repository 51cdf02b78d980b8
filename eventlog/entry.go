package eventlog

import (
	"fmt"

	"github.com/sarchlab/hookscope/lifecycle"
)

// Input is what a caller hands to Append.
type Input struct {
	InstanceLabel string
	HookName      lifecycle.HookName
	IsCustomTrace bool
	Message       string
}

// Entry is one immutable record in the log. Sequence is assigned at append
// time, so it reflects the true call order regardless of flush batching.
type Entry struct {
	Sequence      uint64             `json:"sequence"`
	InstanceLabel string             `json:"instance_label"`
	HookName      lifecycle.HookName `json:"hook_name"`
	IsCustomTrace bool               `json:"is_custom_trace"`
	Message       string             `json:"message,omitempty"`
}

func (e Entry) String() string {
	if e.IsCustomTrace {
		if e.HookName == "" {
			return fmt.Sprintf("%4d %s: %s", e.Sequence, e.InstanceLabel, e.Message)
		}

		return fmt.Sprintf("%4d %s [%s]: %s",
			e.Sequence, e.InstanceLabel, e.HookName, e.Message)
	}

	return fmt.Sprintf("%4d %s %s", e.Sequence, e.InstanceLabel, e.HookName)
}
