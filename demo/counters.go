// Package demo has sample components for the modern and the legacy hook
// sets, and named scenarios that drive them.
package demo

import (
	"fmt"

	"github.com/sarchlab/hookscope/lifecycle"
)

// An Incrementer can be asked to count up.
type Incrementer interface {
	Increment()
}

func intOf(v any, fallback int) int {
	if n, ok := v.(int); ok {
		return n
	}

	return fallback
}

// ModernCounter defines every hook of the modern set and traces in all of
// them but render. Deriving state traces only when the step changes.
type ModernCounter struct {
	lifecycle.Base
}

// NewModernCounter creates a counter starting at props["start"].
func NewModernCounter(props lifecycle.Props, tracer lifecycle.Tracer) *ModernCounter {
	c := &ModernCounter{}
	c.InitState(lifecycle.State{"count": intOf(props["start"], 0)})
	tracer.Trace(fmt.Sprintf("initial count %d", c.count()))

	return c
}

func (c *ModernCounter) count() int {
	return intOf(c.State()["count"], 0)
}

func (c *ModernCounter) Render() lifecycle.Node {
	return fmt.Sprintf("count: %d", c.count())
}

func (c *ModernCounter) GetDerivedStateFromProps(
	props lifecycle.Props,
	state lifecycle.State,
) lifecycle.State {
	step := intOf(props["step"], 1)
	if prev, ok := state["step"].(int); ok && prev == step {
		return nil
	}

	c.Trace(fmt.Sprintf("step %d", step))

	return lifecycle.State{"step": step}
}

func (c *ModernCounter) ShouldComponentUpdate(
	_ lifecycle.Props,
	nextState lifecycle.State,
) bool {
	c.Trace(fmt.Sprintf("next count %d", intOf(nextState["count"], 0)))
	return true
}

func (c *ModernCounter) ComponentDidMount() {
	c.Trace("mounted")
}

func (c *ModernCounter) GetSnapshotBeforeUpdate(
	_ lifecycle.Props,
	prevState lifecycle.State,
) any {
	prev := intOf(prevState["count"], 0)
	c.Trace(fmt.Sprintf("previous count %d", prev))

	return prev
}

func (c *ModernCounter) ComponentDidUpdate(
	_ lifecycle.Props,
	_ lifecycle.State,
	snapshot any,
) {
	c.Trace(fmt.Sprintf("count %v -> %d", snapshot, c.count()))
}

func (c *ModernCounter) ComponentWillUnmount() {
	c.Trace("unmounting")
}

// Increment adds the step to the count.
func (c *ModernCounter) Increment() {
	c.SetState(lifecycle.StateUpdate{
		Updater: func(prev lifecycle.State, _ lifecycle.Props) lifecycle.State {
			next := intOf(prev["count"], 0) + intOf(prev["step"], 1)
			c.Trace(fmt.Sprintf("resolved count %d", next))

			return lifecycle.State{"count": next}
		},
		Callback: func() {
			c.Trace(fmt.Sprintf("committed count %d", c.count()))
		},
	})
}

// LegacyCounter defines every hook of the legacy set and traces in all of
// them but render.
type LegacyCounter struct {
	lifecycle.Base
}

// NewLegacyCounter creates a counter starting at props["start"].
func NewLegacyCounter(props lifecycle.Props, tracer lifecycle.Tracer) *LegacyCounter {
	c := &LegacyCounter{}
	c.InitState(lifecycle.State{
		"count": intOf(props["start"], 0),
		"step":  intOf(props["step"], 1),
	})
	tracer.Trace(fmt.Sprintf("initial count %d", c.count()))

	return c
}

func (c *LegacyCounter) count() int {
	return intOf(c.State()["count"], 0)
}

func (c *LegacyCounter) Render() lifecycle.Node {
	return fmt.Sprintf("count: %d", c.count())
}

func (c *LegacyCounter) ComponentWillMount() {
	c.Trace("about to mount")
}

func (c *LegacyCounter) ComponentWillReceiveProps(nextProps lifecycle.Props) {
	step := intOf(nextProps["step"], 1)
	c.Trace(fmt.Sprintf("step %d", step))
	c.SetState(lifecycle.StateUpdate{Partial: lifecycle.State{"step": step}})
}

func (c *LegacyCounter) ShouldComponentUpdate(
	_ lifecycle.Props,
	nextState lifecycle.State,
) bool {
	c.Trace(fmt.Sprintf("next count %d", intOf(nextState["count"], 0)))
	return true
}

func (c *LegacyCounter) ComponentWillUpdate(
	_ lifecycle.Props,
	nextState lifecycle.State,
) {
	c.Trace(fmt.Sprintf("count %d -> %d", c.count(), intOf(nextState["count"], 0)))
}

func (c *LegacyCounter) ComponentDidMount() {
	c.Trace("mounted")
}

func (c *LegacyCounter) ComponentDidUpdate(
	_ lifecycle.Props,
	prevState lifecycle.State,
	_ any,
) {
	c.Trace(fmt.Sprintf("updated from %d", intOf(prevState["count"], 0)))
}

func (c *LegacyCounter) ComponentWillUnmount() {
	c.Trace("unmounting")
}

// Increment adds the step to the count.
func (c *LegacyCounter) Increment() {
	c.SetState(lifecycle.StateUpdate{
		Updater: func(prev lifecycle.State, _ lifecycle.Props) lifecycle.State {
			next := intOf(prev["count"], 0) + intOf(prev["step"], 1)
			c.Trace(fmt.Sprintf("resolved count %d", next))

			return lifecycle.State{"count": next}
		},
		Callback: func() {
			c.Trace(fmt.Sprintf("committed count %d", c.count()))
		},
	})
}

// Minimal only renders.
type Minimal struct {
	Text string
}

func (m *Minimal) Render() lifecycle.Node {
	return m.Text
}

// Classes of the demo components.
var (
	ModernCounterClass = lifecycle.Define("ModernCounter", NewModernCounter)
	LegacyCounterClass = lifecycle.Define("LegacyCounter", NewLegacyCounter)
	MinimalClass       = lifecycle.Define("Minimal",
		func(props lifecycle.Props, _ lifecycle.Tracer) *Minimal {
			text, _ := props["text"].(string)
			return &Minimal{Text: text}
		})
)

// Class returns the class with the given name, or nil.
func Class(name string) *lifecycle.Class {
	for _, c := range []*lifecycle.Class{
		ModernCounterClass,
		LegacyCounterClass,
		MinimalClass,
	} {
		if c.Name() == name {
			return c
		}
	}

	return nil
}
