package lifecycle

import "log"

// StateUpdate is one request to change a component's state. When Updater is
// set, it resolves the next partial state from the state at the time the
// update is processed and Partial is ignored. Callback runs once the update
// has been committed.
type StateUpdate struct {
	Partial  State
	Updater  func(prevState State, props Props) State
	Callback func()
}

// An Updater accepts state updates on behalf of one mounted component. Hosts
// provide it; the component never processes updates itself.
type Updater interface {
	EnqueueSetState(update StateUpdate)
}

// UpdaterFunc adapts a function to the Updater interface.
type UpdaterFunc func(update StateUpdate)

// EnqueueSetState calls f(update).
func (f UpdaterFunc) EnqueueSetState(update StateUpdate) {
	f(update)
}

// Base stores the props and state of a component and routes its state
// updates to the host. Components embed it to become Stateful.
type Base struct {
	props   Props
	state   State
	updater Updater
	tracer  Tracer
}

// ComponentBase returns b.
func (b *Base) ComponentBase() *Base {
	return b
}

// Props returns the committed props.
func (b *Base) Props() Props {
	return b.props
}

// State returns the committed state.
func (b *Base) State() State {
	return b.state
}

// InitState sets the initial state. It is meant to be called from the
// constructor, before the component is mounted.
func (b *Base) InitState(s State) {
	b.state = s
}

// SetState asks the host to update the state. The update is dropped if the
// component has no host.
func (b *Base) SetState(update StateUpdate) {
	if b.updater == nil {
		log.Printf("lifecycle: setState on a component without host, update dropped")
		return
	}

	b.updater.EnqueueSetState(update)
}

// Trace records a custom message through the bound tracer, if any.
func (b *Base) Trace(msg string) {
	if b.tracer == nil {
		return
	}

	b.tracer.Trace(msg)
}

// Commit stores the props and state the host has settled on.
func (b *Base) Commit(props Props, state State) {
	b.props = props
	b.state = state
}

// BindUpdater connects the component to the updater of its host.
func (b *Base) BindUpdater(u Updater) {
	b.updater = u
}

// BindTracer sets where Trace messages go.
func (b *Base) BindTracer(t Tracer) {
	b.tracer = t
}

// BoundTracer returns the tracer set by BindTracer.
func (b *Base) BoundTracer() Tracer {
	return b.tracer
}
