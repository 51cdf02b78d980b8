// Package intercept wraps component classes so that every lifecycle hook call
// of their instances is recorded in an event log.
//
// A wrapped class is a drop-in replacement for the class it wraps. The host
// cannot tell the two apart: hooks that would change what the host does when
// present (derived state, snapshots and the legacy will-* hooks) are exposed
// only when the wrapped class defines them. Every other hook of the capability
// set is recorded whether or not the class defines it.
package intercept

import (
	"errors"
	"fmt"

	"github.com/sarchlab/hookscope/eventlog"
	"github.com/sarchlab/hookscope/lifecycle"
)

// ErrUnsupportedCapabilitySet is returned when a class cannot be wrapped with
// the requested capability set.
var ErrUnsupportedCapabilitySet = errors.New("intercept: unsupported capability set")

// A Labeler names newly constructed instances.
type Labeler interface {
	NextLabel(className string) string
}

// An Appender records entries.
type Appender interface {
	Append(in eventlog.Input) eventlog.Entry
}

// Interceptor creates instrumented classes that share one labeler and one
// log.
type Interceptor struct {
	labeler  Labeler
	appender Appender
}

// New creates an interceptor.
func New(labeler Labeler, appender Appender) *Interceptor {
	return &Interceptor{
		labeler:  labeler,
		appender: appender,
	}
}

// Wrap returns an instrumented version of the class for the capability set.
// The set must be lifecycle.Modern or lifecycle.Legacy and the class must not
// define any hook that only the other set has.
func (i *Interceptor) Wrap(
	target *lifecycle.Class,
	set *lifecycle.CapabilitySet,
) (*Class, error) {
	var other *lifecycle.CapabilitySet

	switch set {
	case lifecycle.Modern:
		other = lifecycle.Legacy
	case lifecycle.Legacy:
		other = lifecycle.Modern
	default:
		return nil, fmt.Errorf("%w: only the modern and legacy sets can be instrumented",
			ErrUnsupportedCapabilitySet)
	}

	for _, h := range other.Only(set) {
		if target.Defines(h) {
			return nil, fmt.Errorf("%w: %s defines %s, which is not in the %s set",
				ErrUnsupportedCapabilitySet, target.Name(), h, set)
		}
	}

	return &Class{
		interceptor: i,
		target:      target,
		set:         set,
	}, nil
}

// WrapDetected wraps the class with the capability set it implements.
func (i *Interceptor) WrapDetected(target *lifecycle.Class) (*Class, error) {
	set, err := lifecycle.DetectSet(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w",
			ErrUnsupportedCapabilitySet, target.Name(), err)
	}

	return i.Wrap(target, set)
}

// MustWrap is like Wrap but panics on error.
func (i *Interceptor) MustWrap(
	target *lifecycle.Class,
	set *lifecycle.CapabilitySet,
) *Class {
	c, err := i.Wrap(target, set)
	if err != nil {
		panic(err)
	}

	return c
}

// Class is an instrumented component class.
type Class struct {
	interceptor *Interceptor
	target      *lifecycle.Class
	set         *lifecycle.CapabilitySet
}

// Name returns the name of the wrapped class.
func (c *Class) Name() string {
	return c.target.Name()
}

// Target returns the wrapped class.
func (c *Class) Target() *lifecycle.Class {
	return c.target
}

// CapabilitySet returns the set the class is instrumented for.
func (c *Class) CapabilitySet() *lifecycle.CapabilitySet {
	return c.set
}

// Defines reports what the wrapped class defines. Hooks the instrumentation
// synthesizes do not count.
func (c *Class) Defines(h lifecycle.HookName) bool {
	return c.target.Defines(h)
}

// Construct creates an instrumented instance.
func (c *Class) Construct(props lifecycle.Props) lifecycle.Instance {
	return c.New(props)
}

// New labels a new instance, records its constructor call and runs the
// wrapped constructor.
func (c *Class) New(props lifecycle.Props) *Instance {
	inst := &Instance{
		class: c,
		label: c.interceptor.labeler.NextLabel(c.Name()),
	}

	inst.record(lifecycle.Constructor)
	inst.enter(lifecycle.Constructor)
	comp := c.target.New(props, inst)
	inst.leave()

	inst.comp = comp
	inst.bindTracer()

	return inst
}

var (
	_ lifecycle.Factory = (*Class)(nil)
	_ lifecycle.Definer = (*Class)(nil)
)
