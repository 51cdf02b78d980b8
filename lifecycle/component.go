package lifecycle

import "maps"

// Props are the inputs a component receives from its owner.
type Props map[string]any

// State is the data a component owns.
type State map[string]any

// Merge returns a new State holding the entries of s overwritten by those of
// partial. Neither map is modified.
func (s State) Merge(partial State) State {
	merged := make(State, len(s)+len(partial))
	maps.Copy(merged, s)
	maps.Copy(merged, partial)

	return merged
}

// Clone returns a shallow copy of the props.
func (p Props) Clone() Props {
	return maps.Clone(p)
}

// Node is whatever a component renders.
type Node = any

// A Component is the minimum a class must implement: it can render.
type Component interface {
	Render() Node
}

// DerivedStateGetter derives state from props before every render. Returning
// nil leaves the state unchanged.
type DerivedStateGetter interface {
	GetDerivedStateFromProps(props Props, state State) State
}

// UpdateGate decides whether a props or state change re-renders.
type UpdateGate interface {
	ShouldComponentUpdate(nextProps Props, nextState State) bool
}

// DidMounter is notified once the first render is committed.
type DidMounter interface {
	ComponentDidMount()
}

// SnapshotGetter captures information right before an update is committed.
// The returned value is handed to ComponentDidUpdate.
type SnapshotGetter interface {
	GetSnapshotBeforeUpdate(prevProps Props, prevState State) any
}

// DidUpdater is notified after every committed update.
type DidUpdater interface {
	ComponentDidUpdate(prevProps Props, prevState State, snapshot any)
}

// WillUnmounter is notified right before the component is removed.
type WillUnmounter interface {
	ComponentWillUnmount()
}

// WillMounter is notified right before the first render.
type WillMounter interface {
	ComponentWillMount()
}

// PropsReceiver is notified when its owner passes new props.
type PropsReceiver interface {
	ComponentWillReceiveProps(nextProps Props)
}

// WillUpdater is notified right before an update re-renders.
type WillUpdater interface {
	ComponentWillUpdate(nextProps Props, nextState State)
}

// Stateful components embed Base and can request state updates.
type Stateful interface {
	ComponentBase() *Base
}

// A Tracer records custom messages while a component runs.
type Tracer interface {
	Trace(msg string)
}

// NopTracer drops every message.
type NopTracer struct{}

// Trace does nothing.
func (NopTracer) Trace(string) {}
