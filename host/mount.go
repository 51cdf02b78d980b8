package host

import (
	"github.com/sarchlab/hookscope/lifecycle"
)

// Mount is one mounted instance. It is the updater of the instance: the
// state updates the instance requests are queued on it.
type Mount struct {
	root *Root
	name string
	inst lifecycle.Instance
	base *lifecycle.Base

	props  lifecycle.Props
	state  lifecycle.State
	output lifecycle.Node

	queue     []lifecycle.StateUpdate
	dirty     bool
	depth     int
	mounted   bool
	unmounted bool
}

// Instance returns the mounted instance.
func (m *Mount) Instance() lifecycle.Instance {
	return m.inst
}

// Output returns what the instance rendered last. It is nil once the
// instance is unmounted.
func (m *Mount) Output() lifecycle.Node {
	return m.output
}

// Props returns the committed props.
func (m *Mount) Props() lifecycle.Props {
	return m.props
}

// State returns the committed state.
func (m *Mount) State() lifecycle.State {
	return m.state
}

// Mounted tells if the instance is on screen.
func (m *Mount) Mounted() bool {
	return m.mounted && !m.unmounted
}

// EnqueueSetState queues a state update. Updates of unmounted instances are
// dropped.
func (m *Mount) EnqueueSetState(update lifecycle.StateUpdate) {
	if m.unmounted {
		m.root.logger.Printf("host: setState on unmounted %s, update dropped", m.name)
		return
	}

	m.queue = append(m.queue, update)
	m.root.schedule(m)
}

// SetProps passes new props to the instance and updates it.
func (m *Mount) SetProps(props lifecycle.Props) {
	if m.unmounted {
		m.root.logger.Printf("host: props for unmounted %s dropped", m.name)
		return
	}

	m.root.runBatched(func() {
		m.update(props, true)
	})
	m.root.flushIfIdle()
}

// Unmount removes the instance. Its pending updates are dropped.
func (m *Mount) Unmount() {
	if m.unmounted || !m.mounted {
		return
	}

	m.unmounted = true
	m.queue = nil

	m.root.runBatched(func() {
		if m.inst.HasHook(lifecycle.ComponentWillUnmount) {
			m.inst.ComponentWillUnmount()
		}
	})

	m.output = nil
	m.root.flushIfIdle()
}

func (m *Mount) mount(f lifecycle.Factory, props lifecycle.Props) {
	m.name = f.Name()
	m.inst = f.Construct(props)
	m.base = m.inst.ComponentBase()
	m.props = props

	if m.base != nil {
		m.state = m.base.State()
	}

	m.inst.BindUpdater(m)

	var callbacks []func()

	state := m.state

	switch {
	case m.inst.HasHook(lifecycle.GetDerivedStateFromProps):
		state = m.derive(props, state)
	case !m.modern() && m.inst.HasHook(lifecycle.ComponentWillMount):
		m.inst.ComponentWillMount()
		state, callbacks = m.resolveQueue(state, props)
	}

	m.commit(props, state)
	m.output = m.inst.Render()
	m.mounted = true

	if m.inst.HasHook(lifecycle.ComponentDidMount) {
		m.inst.ComponentDidMount()
	}

	runAll(callbacks)
}

func (m *Mount) update(nextProps lifecycle.Props, propsChanged bool) {
	inst := m.inst
	legacy := !m.modern()
	prevProps, prevState := m.props, m.state

	if propsChanged && legacy &&
		inst.HasHook(lifecycle.ComponentWillReceiveProps) {
		inst.ComponentWillReceiveProps(nextProps)
	}

	nextState, callbacks := m.resolveQueue(prevState, nextProps)

	if inst.HasHook(lifecycle.GetDerivedStateFromProps) {
		nextState = m.derive(nextProps, nextState)
	}

	if inst.HasHook(lifecycle.ShouldComponentUpdate) &&
		!inst.ShouldComponentUpdate(nextProps, nextState) {
		m.commit(nextProps, nextState)
		runAll(callbacks)

		return
	}

	if legacy && inst.HasHook(lifecycle.ComponentWillUpdate) {
		inst.ComponentWillUpdate(nextProps, nextState)
	}

	m.commit(nextProps, nextState)
	m.output = inst.Render()

	var snapshot any
	if inst.HasHook(lifecycle.GetSnapshotBeforeUpdate) {
		snapshot = inst.GetSnapshotBeforeUpdate(prevProps, prevState)
	}

	if inst.HasHook(lifecycle.ComponentDidUpdate) {
		inst.ComponentDidUpdate(prevProps, prevState, snapshot)
	}

	runAll(callbacks)
}

// modern tells if the instance uses derived state or snapshots, in which
// case its legacy hooks are never called.
func (m *Mount) modern() bool {
	return m.inst.HasHook(lifecycle.GetDerivedStateFromProps) ||
		m.inst.HasHook(lifecycle.GetSnapshotBeforeUpdate)
}

func (m *Mount) derive(props lifecycle.Props, state lifecycle.State) lifecycle.State {
	derived := m.inst.GetDerivedStateFromProps(props, state)
	if derived == nil {
		return state
	}

	return state.Merge(derived)
}

// resolveQueue applies the queued updates in order. Resolvers see the state
// produced by the updates before them.
func (m *Mount) resolveQueue(
	state lifecycle.State,
	props lifecycle.Props,
) (lifecycle.State, []func()) {
	queue := m.queue
	m.queue = nil

	var callbacks []func()

	for _, u := range queue {
		partial := u.Partial
		if u.Updater != nil {
			partial = u.Updater(state, props)
		}

		if partial != nil {
			state = state.Merge(partial)
		}

		if u.Callback != nil {
			callbacks = append(callbacks, u.Callback)
		}
	}

	return state, callbacks
}

func (m *Mount) commit(props lifecycle.Props, state lifecycle.State) {
	m.props = props
	m.state = state

	if m.base != nil {
		m.base.Commit(props, state)
	}
}

func runAll(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}

var _ lifecycle.Updater = (*Mount)(nil)
