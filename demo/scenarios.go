package demo

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sarchlab/hookscope/eventlog"
	"github.com/sarchlab/hookscope/host"
	"github.com/sarchlab/hookscope/intercept"
	"github.com/sarchlab/hookscope/lifecycle"
	"github.com/sarchlab/hookscope/session"
)

// ErrUnknownScenario is returned by Lookup for names no scenario has.
var ErrUnknownScenario = errors.New("demo: unknown scenario")

// A Scenario drives one instrumented component through part of its life.
type Scenario struct {
	Name        string
	Description string

	run func(d *driver)
}

// Result is what a scenario leaves behind.
type Result struct {
	Class   *intercept.Class
	Mount   *host.Mount
	Entries []eventlog.Entry
}

var scenarios = map[string]Scenario{
	"mount": {
		Name:        "mount",
		Description: "mount one instance",
		run: func(d *driver) {
			d.mount()
		},
	},
	"update": {
		Name:        "update",
		Description: "mount, update the state with a resolver and a callback, unmount",
		run: func(d *driver) {
			d.mount()
			d.update()
			d.unmount()
		},
	},
	"remount": {
		Name:        "remount",
		Description: "mount, unmount, reset the session, mount again",
		run: func(d *driver) {
			d.mount()
			d.unmount()
			d.settle()
			d.session.Reset()
			d.mount()
		},
	},
}

// Scenarios returns every scenario, sorted by name.
func Scenarios() []Scenario {
	list := make([]Scenario, 0, len(scenarios))
	for _, s := range scenarios {
		list = append(list, s)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})

	return list
}

// Lookup finds a scenario by name.
func Lookup(name string) (Scenario, error) {
	s, ok := scenarios[name]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
	}

	return s, nil
}

// Run instruments the class in the session with the capability set and
// drives it through the scenario. A nil set is detected from the class. The
// returned entries are the settled log.
func (sc Scenario) Run(
	s *session.Session,
	target *lifecycle.Class,
	set *lifecycle.CapabilitySet,
	props lifecycle.Props,
) (*Result, error) {
	var (
		class *intercept.Class
		err   error
	)

	if set == nil {
		class, err = s.Instrument(target)
	} else {
		class, err = s.Interceptor.Wrap(target, set)
	}

	if err != nil {
		return nil, err
	}

	d := &driver{
		session: s,
		class:   class,
		root:    host.NewRoot(),
		props:   props,
	}

	sc.run(d)

	if d.err != nil {
		return nil, d.err
	}

	if err := s.Settle(); err != nil {
		return nil, err
	}

	return &Result{
		Class:   class,
		Mount:   d.current,
		Entries: s.Log.Snapshot(),
	}, nil
}

type driver struct {
	session *session.Session
	class   *intercept.Class
	root    *host.Root
	props   lifecycle.Props
	current *host.Mount
	err     error
}

func (d *driver) mount() {
	d.current = d.root.Mount(d.class, d.props)
}

// update increments counters from a batch, the way an event handler would.
// Components that cannot count get new props instead.
func (d *driver) update() {
	if inc, ok := d.current.Instance().Unwrap().(Incrementer); ok {
		d.root.Batch(inc.Increment)
		return
	}

	next := d.props.Clone()
	if next == nil {
		next = lifecycle.Props{}
	}

	next["revision"] = intOf(next["revision"], 0) + 1
	d.current.SetProps(next)
}

func (d *driver) unmount() {
	d.current.Unmount()
}

func (d *driver) settle() {
	if d.err == nil {
		d.err = d.session.Settle()
	}
}
