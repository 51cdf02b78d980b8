package session

import (
	. "github.com/onsi/ginkgo/v2"
	gomega "github.com/onsi/gomega"
	"github.com/sarchlab/hookscope/eventlog"
	"github.com/sarchlab/hookscope/hooking"
	"github.com/sarchlab/hookscope/host"
	"github.com/sarchlab/hookscope/lifecycle"
	"github.com/sarchlab/hookscope/timing"
	gomock "go.uber.org/mock/gomock"
)

type renderOnly struct{}

func (renderOnly) Render() lifecycle.Node { return "A" }

var renderOnlyClass = lifecycle.Define("A",
	func(lifecycle.Props, lifecycle.Tracer) renderOnly { return renderOnly{} })

func labelsAndHooks(entries []eventlog.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.InstanceLabel + " " + string(e.HookName)
	}

	return out
}

var _ = Describe("Session", func() {
	var (
		mockCtrl *gomock.Controller
		s        *Session
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		s = MakeBuilder().Build()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	mountA := func() *host.Mount {
		class, err := s.Instrument(renderOnlyClass)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		return host.NewRoot().Mount(class, nil)
	}

	It("should get a unique id", func() {
		gomega.Expect(s.ID).NotTo(gomega.BeEmpty())
		gomega.Expect(MakeBuilder().Build().ID).NotTo(gomega.Equal(s.ID))
	})

	It("should show a mount once the log settles", func() {
		mountA()

		gomega.Expect(s.Log.Snapshot()).To(gomega.BeEmpty())
		gomega.Expect(s.Settle()).To(gomega.Succeed())
		gomega.Expect(labelsAndHooks(s.Log.Snapshot())).To(gomega.Equal([]string{
			"A-1 constructor",
			"A-1 render",
			"A-1 componentDidMount",
		}))
	})

	It("should flush all entries of a mount in one batch", func() {
		hook := NewMockHook(mockCtrl)
		s = MakeBuilder().WithLogHook(hook).Build()

		hook.EXPECT().
			Func(gomock.Any()).
			Do(func(ctx hooking.HookCtx) {
				gomega.Expect(ctx.Pos).To(gomega.Equal(eventlog.HookPosEntryAppended))
			}).
			Times(3)
		hook.EXPECT().
			Func(gomock.Any()).
			Do(func(ctx hooking.HookCtx) {
				gomega.Expect(ctx.Pos).To(gomega.Equal(eventlog.HookPosFlushed))
				gomega.Expect(ctx.Item).To(gomega.HaveLen(3))
			})

		mountA()
		gomega.Expect(s.Settle()).To(gomega.Succeed())
	})

	It("should restart labels and the log on reset", func() {
		m := mountA()
		m.Unmount()
		gomega.Expect(s.Settle()).To(gomega.Succeed())

		s.Reset()
		mountA()
		gomega.Expect(s.Settle()).To(gomega.Succeed())

		entries := s.Log.Snapshot()
		gomega.Expect(entries).To(gomega.HaveLen(3))
		gomega.Expect(entries[0].Sequence).To(gomega.Equal(uint64(1)))
		gomega.Expect(entries[0].InstanceLabel).To(gomega.Equal("A-1"))
	})

	It("should keep counting labels when only the log is cleared", func() {
		mountA()
		gomega.Expect(s.Settle()).To(gomega.Succeed())

		s.ClearLog()
		mountA()
		gomega.Expect(s.Settle()).To(gomega.Succeed())

		gomega.Expect(s.Log.Snapshot()[0].InstanceLabel).To(gomega.Equal("A-2"))
	})

	It("should keep the log when only identity is reset", func() {
		mountA()
		gomega.Expect(s.Settle()).To(gomega.Succeed())

		s.ResetIdentity()
		mountA()
		gomega.Expect(s.Settle()).To(gomega.Succeed())

		gomega.Expect(labelsAndHooks(s.Log.Snapshot())).To(gomega.Equal([]string{
			"A-1 constructor",
			"A-1 render",
			"A-1 componentDidMount",
			"A-1 constructor",
			"A-1 render",
			"A-1 componentDidMount",
		}))
	})

	It("should settle with a scheduler it cannot run", func() {
		engine := timing.NewSerialEngine()
		s = MakeBuilder().WithScheduler(schedulerOnly{engine}).Build()

		mountA()

		gomega.Expect(s.Settle()).To(gomega.Succeed())
		gomega.Expect(s.Log.Len()).To(gomega.Equal(3))
	})

	It("should keep sessions apart", func() {
		other := MakeBuilder().Build()

		mountA()
		gomega.Expect(s.Settle()).To(gomega.Succeed())

		gomega.Expect(other.Log.Snapshot()).To(gomega.BeEmpty())
		gomega.Expect(other.Registry.Issued("A-1")).To(gomega.BeFalse())
	})

	It("should build the default session once", func() {
		gomega.Expect(Default()).To(gomega.BeIdenticalTo(Default()))
	})

	It("should hold default session entries until settled", func() {
		s := Default()
		defer s.Reset()

		s.Reset()
		s.Log.Append(eventlog.Input{
			InstanceLabel: "A-1",
			HookName:      lifecycle.Render,
		})

		gomega.Expect(s.Log.Snapshot()).To(gomega.BeEmpty())
		gomega.Expect(s.Settle()).To(gomega.Succeed())
		gomega.Expect(s.Log.Snapshot()).To(gomega.HaveLen(1))
	})
})

// schedulerOnly hides everything but the EventScheduler methods.
type schedulerOnly struct {
	timing.EventScheduler
}
