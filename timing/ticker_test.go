package timing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type tickCounter struct {
	ticks   []VTimeInTick
	onTick  func()
	handled int
}

func (h *tickCounter) Handle(e Event) error {
	Expect(e).To(BeAssignableToTypeOf(TickEvent{}))
	h.ticks = append(h.ticks, e.Time())
	h.handled++

	if h.onTick != nil {
		h.onTick()
	}

	return nil
}

var _ = Describe("TickScheduler", func() {
	var (
		engine    *SerialEngine
		handler   *tickCounter
		scheduler *TickScheduler
	)

	BeforeEach(func() {
		engine = NewSerialEngine()
		handler = &tickCounter{}
		scheduler = NewTickScheduler(handler, engine)
	})

	It("should coalesce requests made before the tick", func() {
		Expect(scheduler.TickLater()).To(Succeed())
		Expect(scheduler.TickLater()).To(Succeed())
		Expect(scheduler.TickLater()).To(Succeed())

		Expect(engine.Pending()).To(Equal(1))
		Expect(scheduler.Outstanding()).To(BeTrue())

		Expect(engine.Run()).To(Succeed())

		Expect(handler.ticks).To(Equal([]VTimeInTick{1}))
		Expect(scheduler.Outstanding()).To(BeFalse())
	})

	It("should schedule a new tick after the previous one happened", func() {
		Expect(scheduler.TickLater()).To(Succeed())
		Expect(engine.Run()).To(Succeed())

		Expect(scheduler.TickLater()).To(Succeed())
		Expect(engine.Run()).To(Succeed())

		Expect(handler.ticks).To(Equal([]VTimeInTick{1, 2}))
	})

	It("should defer requests made during a tick to the next tick", func() {
		handler.onTick = func() {
			if handler.handled < 3 {
				Expect(scheduler.TickLater()).To(Succeed())
			}
		}

		Expect(scheduler.TickLater()).To(Succeed())
		Expect(engine.Run()).To(Succeed())

		Expect(handler.ticks).To(Equal([]VTimeInTick{1, 2, 3}))
	})

	It("should report scheduling failures", func() {
		engine.Stop()

		Expect(scheduler.TickLater()).To(MatchError(ErrEngineStopped))
		Expect(scheduler.Outstanding()).To(BeFalse())
	})
})
