package intercept

import (
	"fmt"
	"sync"

	"github.com/sarchlab/hookscope/eventlog"
	"github.com/sarchlab/hookscope/identity"
	"github.com/sarchlab/hookscope/lifecycle"
)

// Instance is an instrumented component instance. It records each hook call
// before delegating to the component, and it tags custom traces with the hook
// that is executing.
type Instance struct {
	class *Class
	label string
	comp  lifecycle.Component

	lock   sync.Mutex
	active []lifecycle.HookName
}

// Label returns the label the registry assigned to the instance.
func (i *Instance) Label() string {
	return i.label
}

func (i *Instance) String() string {
	return i.label
}

// Unwrap returns the instrumented component.
func (i *Instance) Unwrap() lifecycle.Component {
	return i.comp
}

// ComponentBase returns the Base of the component, or nil if the component
// does not embed one.
func (i *Instance) ComponentBase() *lifecycle.Base {
	if s, ok := i.comp.(lifecycle.Stateful); ok {
		return s.ComponentBase()
	}

	return nil
}

// HasHook tells if the host should call the hook. Hooks that are recorded
// regardless of the component are always present; the others are present
// only when the component defines them.
func (i *Instance) HasHook(h lifecycle.HookName) bool {
	if !i.class.set.Contains(h.Row()) {
		return false
	}

	if alwaysRecorded(h) {
		return true
	}

	return i.class.target.Defines(h)
}

func alwaysRecorded(h lifecycle.HookName) bool {
	switch h.Row() {
	case lifecycle.Constructor,
		lifecycle.Render,
		lifecycle.ShouldComponentUpdate,
		lifecycle.ComponentDidMount,
		lifecycle.ComponentDidUpdate,
		lifecycle.ComponentWillUnmount,
		lifecycle.SetState:
		return true
	default:
		return false
	}
}

// BindUpdater connects the component to the host, recording the state
// updates the component requests on the way.
func (i *Instance) BindUpdater(u lifecycle.Updater) {
	b := i.ComponentBase()
	if b == nil {
		return
	}

	b.BindUpdater(&recordingUpdater{inst: i, next: u})
}

// Trace appends a custom trace attributed to the instance and the hook that
// is executing.
func (i *Instance) Trace(msg string) {
	i.class.interceptor.appender.Append(eventlog.Input{
		InstanceLabel: i.label,
		HookName:      i.current(),
		IsCustomTrace: true,
		Message:       msg,
	})
}

func (i *Instance) Render() lifecycle.Node {
	var node lifecycle.Node

	i.call(lifecycle.Render, func() {
		node = i.comp.Render()
	})

	return node
}

func (i *Instance) GetDerivedStateFromProps(
	props lifecycle.Props,
	state lifecycle.State,
) lifecycle.State {
	g, ok := i.comp.(lifecycle.DerivedStateGetter)
	if !ok {
		return nil
	}

	var derived lifecycle.State

	i.call(lifecycle.GetDerivedStateFromProps, func() {
		derived = g.GetDerivedStateFromProps(props, state)
	})

	return derived
}

func (i *Instance) ShouldComponentUpdate(
	nextProps lifecycle.Props,
	nextState lifecycle.State,
) bool {
	update := true

	i.call(lifecycle.ShouldComponentUpdate, func() {
		if g, ok := i.comp.(lifecycle.UpdateGate); ok {
			update = g.ShouldComponentUpdate(nextProps, nextState)
		}
	})

	return update
}

func (i *Instance) ComponentDidMount() {
	i.call(lifecycle.ComponentDidMount, func() {
		if m, ok := i.comp.(lifecycle.DidMounter); ok {
			m.ComponentDidMount()
		}
	})
}

func (i *Instance) GetSnapshotBeforeUpdate(
	prevProps lifecycle.Props,
	prevState lifecycle.State,
) any {
	g, ok := i.comp.(lifecycle.SnapshotGetter)
	if !ok {
		return nil
	}

	var snapshot any

	i.call(lifecycle.GetSnapshotBeforeUpdate, func() {
		snapshot = g.GetSnapshotBeforeUpdate(prevProps, prevState)
	})

	return snapshot
}

func (i *Instance) ComponentDidUpdate(
	prevProps lifecycle.Props,
	prevState lifecycle.State,
	snapshot any,
) {
	i.call(lifecycle.ComponentDidUpdate, func() {
		if u, ok := i.comp.(lifecycle.DidUpdater); ok {
			u.ComponentDidUpdate(prevProps, prevState, snapshot)
		}
	})
}

func (i *Instance) ComponentWillUnmount() {
	i.call(lifecycle.ComponentWillUnmount, func() {
		if u, ok := i.comp.(lifecycle.WillUnmounter); ok {
			u.ComponentWillUnmount()
		}
	})
}

func (i *Instance) ComponentWillMount() {
	if m, ok := i.comp.(lifecycle.WillMounter); ok {
		i.call(lifecycle.ComponentWillMount, m.ComponentWillMount)
	}
}

func (i *Instance) ComponentWillReceiveProps(nextProps lifecycle.Props) {
	if r, ok := i.comp.(lifecycle.PropsReceiver); ok {
		i.call(lifecycle.ComponentWillReceiveProps, func() {
			r.ComponentWillReceiveProps(nextProps)
		})
	}
}

func (i *Instance) ComponentWillUpdate(
	nextProps lifecycle.Props,
	nextState lifecycle.State,
) {
	if u, ok := i.comp.(lifecycle.WillUpdater); ok {
		i.call(lifecycle.ComponentWillUpdate, func() {
			u.ComponentWillUpdate(nextProps, nextState)
		})
	}
}

func (i *Instance) call(h lifecycle.HookName, fn func()) {
	i.record(h)
	i.enter(h)
	defer i.leave()

	fn()
}

func (i *Instance) record(h lifecycle.HookName) {
	i.class.interceptor.appender.Append(eventlog.Input{
		InstanceLabel: i.label,
		HookName:      h,
	})
}

func (i *Instance) enter(h lifecycle.HookName) {
	i.lock.Lock()
	defer i.lock.Unlock()

	i.active = append(i.active, h)
}

func (i *Instance) leave() {
	i.lock.Lock()
	defer i.lock.Unlock()

	i.active = i.active[:len(i.active)-1]
}

func (i *Instance) current() lifecycle.HookName {
	i.lock.Lock()
	defer i.lock.Unlock()

	if len(i.active) == 0 {
		return ""
	}

	return i.active[len(i.active)-1]
}

// bindTracer routes Base.Trace to the instance. A component value serves one
// instance only; handing the same value out twice is a labeling error.
func (i *Instance) bindTracer() {
	b := i.ComponentBase()
	if b == nil {
		return
	}

	if owner, ok := b.BoundTracer().(*Instance); ok && owner != i {
		panic(fmt.Errorf("%w: component of %s is already bound to %s",
			identity.ErrRegistryKeyCollision, i.label, owner.label))
	}

	b.BindTracer(i)
}

// recordingUpdater sits between a component and its host. It records every
// state update request and wraps the resolver and callback of the request
// so that the host running them is recorded too.
type recordingUpdater struct {
	inst *Instance
	next lifecycle.Updater
}

func (u *recordingUpdater) EnqueueSetState(update lifecycle.StateUpdate) {
	inst := u.inst

	wrapped := update

	if resolve := update.Updater; resolve != nil {
		wrapped.Updater = func(
			prevState lifecycle.State,
			props lifecycle.Props,
		) lifecycle.State {
			var next lifecycle.State

			inst.call(lifecycle.SetStateUpdater, func() {
				next = resolve(prevState, props)
			})

			return next
		}
	}

	if callback := update.Callback; callback != nil {
		wrapped.Callback = func() {
			inst.call(lifecycle.SetStateCallback, callback)
		}
	}

	inst.call(lifecycle.SetState, func() {
		u.next.EnqueueSetState(wrapped)
	})
}

var (
	_ lifecycle.Instance = (*Instance)(nil)
	_ lifecycle.Tracer   = (*Instance)(nil)
	_ lifecycle.Updater  = (*recordingUpdater)(nil)
)
