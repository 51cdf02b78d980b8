package lifecycle

import "reflect"

// Instance is what a host drives: every hook of both capability sets plus the
// means to tell which of them the instance responds to. Hosts call a hook
// only if HasHook reports it, except ShouldComponentUpdate, whose absence
// means "always update".
type Instance interface {
	Component
	Stateful

	// Unwrap returns the component the instance drives.
	Unwrap() Component

	// HasHook tells if the host should call the hook.
	HasHook(h HookName) bool

	// BindUpdater connects the instance to the host's update queue.
	BindUpdater(u Updater)

	GetDerivedStateFromProps(props Props, state State) State
	ShouldComponentUpdate(nextProps Props, nextState State) bool
	ComponentDidMount()
	GetSnapshotBeforeUpdate(prevProps Props, prevState State) any
	ComponentDidUpdate(prevProps Props, prevState State, snapshot any)
	ComponentWillUnmount()
	ComponentWillMount()
	ComponentWillReceiveProps(nextProps Props)
	ComponentWillUpdate(nextProps Props, nextState State)
}

// Adapt exposes a plain component as an Instance. Hooks the component does
// not define are no-ops, and ShouldComponentUpdate defaults to true.
func Adapt(c Component) Instance {
	return &plainInstance{comp: c, typ: reflect.TypeOf(c)}
}

type plainInstance struct {
	comp Component
	typ  reflect.Type
}

func (p *plainInstance) Render() Node {
	return p.comp.Render()
}

func (p *plainInstance) Unwrap() Component {
	return p.comp
}

func (p *plainInstance) HasHook(h HookName) bool {
	return typeDefines(p.typ, h)
}

func (p *plainInstance) ComponentBase() *Base {
	if s, ok := p.comp.(Stateful); ok {
		return s.ComponentBase()
	}

	return nil
}

func (p *plainInstance) BindUpdater(u Updater) {
	if b := p.ComponentBase(); b != nil {
		b.BindUpdater(u)
	}
}

func (p *plainInstance) GetDerivedStateFromProps(props Props, state State) State {
	if g, ok := p.comp.(DerivedStateGetter); ok {
		return g.GetDerivedStateFromProps(props, state)
	}

	return nil
}

func (p *plainInstance) ShouldComponentUpdate(nextProps Props, nextState State) bool {
	if g, ok := p.comp.(UpdateGate); ok {
		return g.ShouldComponentUpdate(nextProps, nextState)
	}

	return true
}

func (p *plainInstance) ComponentDidMount() {
	if m, ok := p.comp.(DidMounter); ok {
		m.ComponentDidMount()
	}
}

func (p *plainInstance) GetSnapshotBeforeUpdate(prevProps Props, prevState State) any {
	if g, ok := p.comp.(SnapshotGetter); ok {
		return g.GetSnapshotBeforeUpdate(prevProps, prevState)
	}

	return nil
}

func (p *plainInstance) ComponentDidUpdate(prevProps Props, prevState State, snapshot any) {
	if u, ok := p.comp.(DidUpdater); ok {
		u.ComponentDidUpdate(prevProps, prevState, snapshot)
	}
}

func (p *plainInstance) ComponentWillUnmount() {
	if u, ok := p.comp.(WillUnmounter); ok {
		u.ComponentWillUnmount()
	}
}

func (p *plainInstance) ComponentWillMount() {
	if m, ok := p.comp.(WillMounter); ok {
		m.ComponentWillMount()
	}
}

func (p *plainInstance) ComponentWillReceiveProps(nextProps Props) {
	if r, ok := p.comp.(PropsReceiver); ok {
		r.ComponentWillReceiveProps(nextProps)
	}
}

func (p *plainInstance) ComponentWillUpdate(nextProps Props, nextState State) {
	if u, ok := p.comp.(WillUpdater); ok {
		u.ComponentWillUpdate(nextProps, nextState)
	}
}
