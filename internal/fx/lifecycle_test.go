package fx

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Runner lifecycle", func() {
	var (
		scene *countScene
		surf  *sizeSurface
		hub   *ResizeHub
		r     *Runner
	)

	BeforeEach(func() {
		scene = &countScene{}
		surf = &sizeSurface{w: 320, h: 240}
		hub = NewResizeHub()
		r = NewRunner(scene)
	})

	Context("when created", func() {
		It("draws nothing", func() {
			Expect(r.Step()).To(BeFalse())
			Expect(surf.clears).To(BeZero())
		})
	})

	Context("when started", func() {
		BeforeEach(func() {
			Expect(r.Start(surf, hub)).To(Succeed())
		})

		It("initialises the scene with the surface size", func() {
			Expect(scene.inits).To(Equal(1))
			Expect(scene.w).To(Equal(320.0))
			Expect(scene.h).To(Equal(240.0))
		})

		It("refuses a second start", func() {
			Expect(r.Start(surf, hub)).To(MatchError(ErrRunning))
		})

		It("resizes without reinitialising", func() {
			surf.w = 640
			hub.Notify()
			Expect(r.Step()).To(BeTrue())
			Expect(scene.inits).To(Equal(1))
			Expect(scene.resizes).To(Equal(1))
			Expect(scene.w).To(Equal(640.0))
		})

		Context("and then stopped", func() {
			BeforeEach(func() {
				Expect(r.RunFrames(context.Background(), 4)).To(Succeed())
				r.Stop()
			})

			It("draws no further frames", func() {
				Expect(r.Step()).To(BeFalse())
				Expect(r.RunFrames(context.Background(), 10)).To(Succeed())
				Expect(r.Frames()).To(Equal(uint64(4)))
				Expect(surf.clears).To(Equal(4))
			})

			It("ignores later resizes", func() {
				hub.Notify()
				Expect(hub.Len()).To(BeZero())
				Expect(scene.resizes).To(BeZero())
			})

			It("cannot be restarted", func() {
				Expect(r.Start(surf, hub)).To(MatchError(ErrStopped))
				Expect(r.State()).To(Equal(Stopped))
			})
		})
	})
})
