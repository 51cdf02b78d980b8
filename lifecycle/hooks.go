// Package lifecycle describes components with named lifecycle hooks: the hook
// names, the two fixed capability sets, the optional interfaces a component
// implements to define a hook, and the Instance interface a host drives.
package lifecycle

import "errors"

// HookName names a lifecycle hook or one of the sub-events of a state update.
type HookName string

// The lifecycle hooks.
const (
	Constructor               HookName = "constructor"
	GetDerivedStateFromProps  HookName = "getDerivedStateFromProps"
	ShouldComponentUpdate     HookName = "shouldComponentUpdate"
	Render                    HookName = "render"
	ComponentDidMount         HookName = "componentDidMount"
	GetSnapshotBeforeUpdate   HookName = "getSnapshotBeforeUpdate"
	ComponentDidUpdate        HookName = "componentDidUpdate"
	ComponentWillUnmount      HookName = "componentWillUnmount"
	SetState                  HookName = "setState"
	ComponentWillMount        HookName = "componentWillMount"
	ComponentWillReceiveProps HookName = "componentWillReceiveProps"
	ComponentWillUpdate       HookName = "componentWillUpdate"
)

// Sub-events of a state update. Both belong to the SetState row.
const (
	SetStateUpdater  HookName = "setState:update fn"
	SetStateCallback HookName = "setState:callback"
)

// Row returns the hook a name is displayed under. Sub-events map to the hook
// that produced them; every other name maps to itself.
func (h HookName) Row() HookName {
	switch h {
	case SetStateUpdater, SetStateCallback:
		return SetState
	default:
		return h
	}
}

// A CapabilitySet is a fixed, ordered set of hook names.
type CapabilitySet struct {
	name  string
	hooks []HookName
}

// Modern is the hook set of components using derived state and snapshots.
var Modern = &CapabilitySet{
	name: "modern",
	hooks: []HookName{
		Constructor,
		GetDerivedStateFromProps,
		ShouldComponentUpdate,
		Render,
		ComponentDidMount,
		GetSnapshotBeforeUpdate,
		ComponentDidUpdate,
		ComponentWillUnmount,
		SetState,
	},
}

// Legacy is the hook set of components using the will-mount, will-receive-props
// and will-update hooks.
var Legacy = &CapabilitySet{
	name: "legacy",
	hooks: []HookName{
		Constructor,
		ComponentWillMount,
		ComponentWillReceiveProps,
		ShouldComponentUpdate,
		ComponentWillUpdate,
		Render,
		ComponentDidMount,
		ComponentDidUpdate,
		ComponentWillUnmount,
		SetState,
	},
}

// Name returns "modern" or "legacy".
func (s *CapabilitySet) Name() string {
	return s.name
}

// Hooks returns the hooks of the set in display order.
func (s *CapabilitySet) Hooks() []HookName {
	hooks := make([]HookName, len(s.hooks))
	copy(hooks, s.hooks)

	return hooks
}

// Len returns the number of hooks in the set.
func (s *CapabilitySet) Len() int {
	return len(s.hooks)
}

// Contains tells if the hook belongs to the set.
func (s *CapabilitySet) Contains(h HookName) bool {
	for _, hook := range s.hooks {
		if hook == h {
			return true
		}
	}

	return false
}

// Only returns the hooks of s that other does not contain.
func (s *CapabilitySet) Only(other *CapabilitySet) []HookName {
	var only []HookName

	for _, hook := range s.hooks {
		if !other.Contains(hook) {
			only = append(only, hook)
		}
	}

	return only
}

func (s *CapabilitySet) String() string {
	return s.name
}

// A Definer reports which hooks a component class defines itself.
type Definer interface {
	Defines(h HookName) bool
}

// ErrMixedCapabilitySet is returned when a class defines hooks that only exist
// in the modern set together with hooks that only exist in the legacy set.
var ErrMixedCapabilitySet = errors.New("lifecycle: class mixes modern-only and legacy-only hooks")

// DetectSet returns the capability set a class implements. A class that
// defines none of the set-specific hooks is modern.
func DetectSet(d Definer) (*CapabilitySet, error) {
	modern := definesAny(d, Modern.Only(Legacy))
	legacy := definesAny(d, Legacy.Only(Modern))

	switch {
	case modern && legacy:
		return nil, ErrMixedCapabilitySet
	case legacy:
		return Legacy, nil
	default:
		return Modern, nil
	}
}

func definesAny(d Definer, hooks []HookName) bool {
	for _, h := range hooks {
		if d.Defines(h) {
			return true
		}
	}

	return false
}
