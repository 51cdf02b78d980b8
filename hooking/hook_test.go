package hooking

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"
)

var _ = Describe("HookableBase", func() {
	var (
		mockCtrl *gomock.Controller
		hookable *HookableBase
		pos      *HookPos
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		hookable = NewHookableBase()
		pos = &HookPos{Name: "Test"}
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should invoke hooks in registration order", func() {
		hook1 := NewMockHook(mockCtrl)
		hook2 := NewMockHook(mockCtrl)
		ctx := HookCtx{Domain: hookable, Pos: pos, Item: 42}

		first := hook1.EXPECT().Func(ctx)
		hook2.EXPECT().Func(ctx).After(first)

		hookable.AcceptHook(hook1)
		hookable.AcceptHook(hook2)
		hookable.InvokeHook(ctx)

		Expect(hookable.NumHooks()).To(Equal(2))
	})

	It("should panic on duplicated hooks", func() {
		hook := NewMockHook(mockCtrl)
		hookable.AcceptHook(hook)

		Expect(func() { hookable.AcceptHook(hook) }).To(Panic())
	})

	It("should accept function hooks", func() {
		var items []any
		hookable.AcceptHook(HookFunc(func(ctx HookCtx) {
			items = append(items, ctx.Item)
		}))

		hookable.InvokeHook(HookCtx{Domain: hookable, Pos: pos, Item: "a"})
		hookable.InvokeHook(HookCtx{Domain: hookable, Pos: pos, Item: "b"})

		Expect(items).To(Equal([]any{"a", "b"}))
	})

	It("should return a copy of the hook list", func() {
		hook := NewMockHook(mockCtrl)
		hookable.AcceptHook(hook)

		hooks := hookable.Hooks()
		hooks[0] = nil

		Expect(hookable.Hooks()[0]).To(BeIdenticalTo(hook))
	})
})
