package lifecycle

import (
	"fmt"
	"reflect"
)

// hookInterfaces maps each optional hook to the interface defining it.
var hookInterfaces = map[HookName]reflect.Type{
	GetDerivedStateFromProps:  reflect.TypeFor[DerivedStateGetter](),
	ShouldComponentUpdate:     reflect.TypeFor[UpdateGate](),
	ComponentDidMount:         reflect.TypeFor[DidMounter](),
	GetSnapshotBeforeUpdate:   reflect.TypeFor[SnapshotGetter](),
	ComponentDidUpdate:        reflect.TypeFor[DidUpdater](),
	ComponentWillUnmount:      reflect.TypeFor[WillUnmounter](),
	ComponentWillMount:        reflect.TypeFor[WillMounter](),
	ComponentWillReceiveProps: reflect.TypeFor[PropsReceiver](),
	ComponentWillUpdate:       reflect.TypeFor[WillUpdater](),
	SetState:                  reflect.TypeFor[Stateful](),
}

func typeDefines(t reflect.Type, h HookName) bool {
	switch h {
	case Constructor, Render:
		return true
	}

	iface, ok := hookInterfaces[h]

	return ok && t.Implements(iface)
}

// A Factory constructs instances a host can drive.
type Factory interface {
	Name() string
	Construct(props Props) Instance
}

// A Class is a named component type together with its constructor.
type Class struct {
	name  string
	typ   reflect.Type
	newFn func(props Props, tracer Tracer) Component
}

// Define creates a Class from a constructor. The constructor receives the
// initial props and a tracer for custom messages emitted while constructing.
// Which hooks the class defines is decided from T, so it is known before any
// instance exists. An empty name defaults to the name of T.
func Define[T Component](name string, newFn func(props Props, tracer Tracer) T) *Class {
	typ := reflect.TypeFor[T]()
	if name == "" {
		name = typeName(typ)
	}

	return &Class{
		name: name,
		typ:  typ,
		newFn: func(props Props, tracer Tracer) Component {
			return newFn(props, tracer)
		},
	}
}

func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.Name()
}

// Name returns the display name used in instance labels.
func (c *Class) Name() string {
	return c.name
}

// Type returns the component type.
func (c *Class) Type() reflect.Type {
	return c.typ
}

// Defines tells if the class itself implements the hook. Constructor and
// Render are always defined; SetState is defined when the component embeds
// Base.
func (c *Class) Defines(h HookName) bool {
	return typeDefines(c.typ, h)
}

// New runs the constructor. It panics if the constructor returns nil.
func (c *Class) New(props Props, tracer Tracer) Component {
	if tracer == nil {
		tracer = NopTracer{}
	}

	comp := c.newFn(props, tracer)
	if isNil(comp) {
		panic(fmt.Sprintf("lifecycle: constructor of %s returned nil", c.name))
	}

	if s, ok := comp.(Stateful); ok {
		b := s.ComponentBase()
		b.Commit(props, b.State())
	}

	return comp
}

// Construct creates an uninstrumented instance.
func (c *Class) Construct(props Props) Instance {
	return Adapt(c.New(props, nil))
}

func isNil(comp Component) bool {
	if comp == nil {
		return true
	}

	v := reflect.ValueOf(comp)

	return v.Kind() == reflect.Pointer && v.IsNil()
}

var (
	_ Factory = (*Class)(nil)
	_ Definer = (*Class)(nil)
)
