package demo_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/hookscope/correlation"
	"github.com/sarchlab/hookscope/demo"
	"github.com/sarchlab/hookscope/eventlog"
	"github.com/sarchlab/hookscope/intercept"
	"github.com/sarchlab/hookscope/lifecycle"
	"github.com/sarchlab/hookscope/session"
)

const trace = "+"

// describe renders entries as "<hook>" for hook calls and "<hook>+" for
// custom traces.
func describe(entries []eventlog.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = string(e.HookName)
		if e.IsCustomTrace {
			out[i] += trace
		}
	}

	return out
}

func run(s *session.Session, name string, class *lifecycle.Class) *demo.Result {
	sc, err := demo.Lookup(name)
	Expect(err).NotTo(HaveOccurred())

	res, err := sc.Run(s, class, nil, nil)
	Expect(err).NotTo(HaveOccurred())

	return res
}

var _ = Describe("Scenarios", func() {
	var s *session.Session

	BeforeEach(func() {
		s = session.MakeBuilder().Build()
	})

	It("should list scenarios by name", func() {
		var names []string
		for _, sc := range demo.Scenarios() {
			names = append(names, sc.Name)
		}

		Expect(names).To(Equal([]string{"mount", "remount", "update"}))
	})

	It("should reject unknown scenarios", func() {
		_, err := demo.Lookup("explode")

		Expect(err).To(MatchError(demo.ErrUnknownScenario))
	})

	It("should log constructor, render and mount of a minimal component", func() {
		res := run(s, "mount", demo.MinimalClass)

		Expect(describe(res.Entries)).To(Equal([]string{
			"constructor",
			"render",
			"componentDidMount",
		}))
		for i, e := range res.Entries {
			Expect(e.InstanceLabel).To(Equal("Minimal-1"))
			Expect(e.Sequence).To(Equal(uint64(i + 1)))
		}
	})

	It("should log a full modern life cycle", func() {
		res := run(s, "update", demo.ModernCounterClass)

		Expect(describe(res.Entries)).To(Equal([]string{
			"constructor", "constructor+",
			"getDerivedStateFromProps", "getDerivedStateFromProps+",
			"render",
			"componentDidMount", "componentDidMount+",

			"setState",
			"setState:update fn", "setState:update fn+",
			"getDerivedStateFromProps",
			"shouldComponentUpdate", "shouldComponentUpdate+",
			"render",
			"getSnapshotBeforeUpdate", "getSnapshotBeforeUpdate+",
			"componentDidUpdate", "componentDidUpdate+",
			"setState:callback", "setState:callback+",

			"componentWillUnmount", "componentWillUnmount+",
		}))
		Expect(res.Entries[17].Message).To(Equal("count 0 -> 1"))
		Expect(res.Mount.Mounted()).To(BeFalse())
	})

	It("should log a full legacy life cycle", func() {
		res := run(s, "update", demo.LegacyCounterClass)

		Expect(describe(res.Entries)).To(Equal([]string{
			"constructor", "constructor+",
			"componentWillMount", "componentWillMount+",
			"render",
			"componentDidMount", "componentDidMount+",

			"setState",
			"setState:update fn", "setState:update fn+",
			"shouldComponentUpdate", "shouldComponentUpdate+",
			"componentWillUpdate", "componentWillUpdate+",
			"render",
			"componentDidUpdate", "componentDidUpdate+",
			"setState:callback", "setState:callback+",

			"componentWillUnmount", "componentWillUnmount+",
		}))
	})

	It("should update a minimal component through its props", func() {
		res := run(s, "update", demo.MinimalClass)

		Expect(describe(res.Entries)).To(Equal([]string{
			"constructor",
			"render",
			"componentDidMount",
			"shouldComponentUpdate",
			"render",
			"componentDidUpdate",
			"componentWillUnmount",
		}))
	})

	It("should start over after a reset", func() {
		res := run(s, "remount", demo.ModernCounterClass)

		Expect(res.Entries).To(HaveLen(7))
		Expect(res.Entries[0].Sequence).To(Equal(uint64(1)))
		Expect(res.Entries[0].InstanceLabel).To(Equal("ModernCounter-1"))
		Expect(res.Mount.Output()).To(Equal("count: 0"))
	})

	It("should implement every hook of its set", func() {
		modern := s.Index.Rows(demo.ModernCounterClass, lifecycle.Modern, nil)
		legacy := s.Index.Rows(demo.LegacyCounterClass, lifecycle.Legacy, nil)
		minimal := s.Index.Rows(demo.MinimalClass, lifecycle.Modern, nil)

		Expect(correlation.ImplementedCount(modern)).To(Equal(9))
		Expect(correlation.ImplementedCount(legacy)).To(Equal(10))
		Expect(correlation.ImplementedCount(minimal)).To(Equal(2))
	})

	It("should highlight the row of each entry", func() {
		res := run(s, "update", demo.ModernCounterClass)

		for _, e := range res.Entries {
			rows := s.Index.Rows(res.Class, lifecycle.Modern, &e)

			n := 0
			for _, r := range rows {
				if r.Highlighted {
					n++
					Expect(r.Hook).To(Equal(e.HookName.Row()))
				}
			}
			Expect(n).To(Equal(1))
		}
	})

	It("should count how often hooks fired", func() {
		res := run(s, "update", demo.ModernCounterClass)
		label := res.Entries[0].InstanceLabel

		Expect(s.Index.FireCount(label, lifecycle.Render)).To(Equal(2))
		Expect(s.Index.EntriesForMethod(label, lifecycle.SetState)).To(HaveLen(5))
	})

	It("should refuse a set the class does not fit", func() {
		sc, err := demo.Lookup("mount")
		Expect(err).NotTo(HaveOccurred())

		_, err = sc.Run(s, demo.ModernCounterClass, lifecycle.Legacy, nil)

		Expect(err).To(MatchError(intercept.ErrUnsupportedCapabilitySet))
	})

	It("should run a minimal component with the legacy set", func() {
		sc, err := demo.Lookup("mount")
		Expect(err).NotTo(HaveOccurred())

		res, err := sc.Run(s, demo.MinimalClass, lifecycle.Legacy, nil)

		Expect(err).NotTo(HaveOccurred())
		Expect(res.Class.CapabilitySet()).To(BeIdenticalTo(lifecycle.Legacy))
		Expect(res.Entries).To(HaveLen(3))
	})

	It("should find demo classes by name", func() {
		Expect(demo.Class("LegacyCounter")).To(BeIdenticalTo(demo.LegacyCounterClass))
		Expect(demo.Class("Nope")).To(BeNil())
	})
})
