package timing

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/hookscope/hooking"
	gomock "go.uber.org/mock/gomock"
)

type labeledEvent struct {
	EventBase
	label string
}

func newLabeledEvent(label string, t VTimeInTick, h Handler) Event {
	return &labeledEvent{EventBase: *NewEventBase(t, h), label: label}
}

type recordingHandler struct {
	name     string
	engine   EventScheduler
	calls    *[]string
	schedule map[string][]Event
	err      error
}

func (h *recordingHandler) Handle(e Event) error {
	evt := e.(*labeledEvent)
	*h.calls = append(*h.calls, h.name+":"+evt.label)

	for _, next := range h.schedule[evt.label] {
		Expect(h.engine.Schedule(next)).To(Succeed())
	}

	return h.err
}

var _ = Describe("SerialEngine", func() {
	var (
		mockCtrl *gomock.Controller
		engine   *SerialEngine
		calls    []string
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = NewSerialEngine()
		calls = nil
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should handle events in time order", func() {
		handlerA := &recordingHandler{name: "A", engine: engine, calls: &calls}
		handlerB := &recordingHandler{
			name: "B", engine: engine, calls: &calls,
			schedule: map[string][]Event{
				"evt2": {
					newLabeledEvent("evt3", 3, handlerA),
					newLabeledEvent("evt4", 5, handlerA),
				},
			},
		}

		Expect(engine.Schedule(newLabeledEvent("evt1", 4, handlerA))).To(Succeed())
		Expect(engine.Schedule(newLabeledEvent("evt2", 2, handlerB))).To(Succeed())

		Expect(engine.Run()).To(Succeed())

		Expect(calls).To(Equal([]string{"B:evt2", "A:evt3", "A:evt1", "A:evt4"}))
		Expect(engine.CurrentTime()).To(Equal(VTimeInTick(5)))
	})

	It("should keep scheduling order within a tick", func() {
		handler := &recordingHandler{name: "H", engine: engine, calls: &calls}

		for _, label := range []string{"a", "b", "c", "d"} {
			Expect(engine.Schedule(newLabeledEvent(label, 1, handler))).To(Succeed())
		}

		Expect(engine.Run()).To(Succeed())

		Expect(calls).To(Equal([]string{"H:a", "H:b", "H:c", "H:d"}))
	})

	It("should process exactly one tick per step", func() {
		handler := &recordingHandler{name: "H", engine: engine, calls: &calls}
		handler.schedule = map[string][]Event{
			"first": {newLabeledEvent("later", 2, handler)},
		}

		Expect(engine.Schedule(newLabeledEvent("first", 1, handler))).To(Succeed())
		Expect(engine.Schedule(newLabeledEvent("same", 1, handler))).To(Succeed())

		ran, err := engine.Step()
		Expect(err).NotTo(HaveOccurred())
		Expect(ran).To(BeTrue())
		Expect(calls).To(Equal([]string{"H:first", "H:same"}))
		Expect(engine.Pending()).To(Equal(1))

		ran, err = engine.Step()
		Expect(err).NotTo(HaveOccurred())
		Expect(ran).To(BeTrue())
		Expect(calls).To(Equal([]string{"H:first", "H:same", "H:later"}))

		ran, err = engine.Step()
		Expect(err).NotTo(HaveOccurred())
		Expect(ran).To(BeFalse())
	})

	It("should invoke hooks around each event", func() {
		hook := NewMockHook(mockCtrl)
		handler := &recordingHandler{name: "H", engine: engine, calls: &calls}
		evt := newLabeledEvent("evt", 1, handler)

		before := hook.EXPECT().Func(gomock.Any()).Do(func(ctx hooking.HookCtx) {
			Expect(calls).To(BeEmpty())
		})
		hook.EXPECT().Func(gomock.Any()).After(before).Do(func(ctx hooking.HookCtx) {
			Expect(calls).To(HaveLen(1))
		})

		engine.AcceptHook(hook)
		Expect(engine.Schedule(evt)).To(Succeed())
		Expect(engine.Run()).To(Succeed())
	})

	It("should return handler errors", func() {
		failure := errors.New("boom")
		handler := &recordingHandler{
			name: "H", engine: engine, calls: &calls, err: failure,
		}

		Expect(engine.Schedule(newLabeledEvent("evt", 1, handler))).To(Succeed())

		Expect(engine.Run()).To(MatchError(failure))
	})

	It("should refuse events after stop", func() {
		handler := &recordingHandler{name: "H", engine: engine, calls: &calls}
		engine.Stop()

		err := engine.Schedule(newLabeledEvent("evt", 1, handler))

		Expect(err).To(MatchError(ErrEngineStopped))
		Expect(engine.Pending()).To(Equal(0))
	})

	It("should panic when scheduling in the past", func() {
		handler := &recordingHandler{name: "H", engine: engine, calls: &calls}
		Expect(engine.Schedule(newLabeledEvent("evt", 3, handler))).To(Succeed())
		Expect(engine.Run()).To(Succeed())

		Expect(func() {
			_ = engine.Schedule(newLabeledEvent("old", 2, handler))
		}).To(Panic())
	})
})
