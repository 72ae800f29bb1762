package view

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/incrseq/incrseq/pkg/delta"
)

// expectWindow compares a sliced view against recomputing the clamped window
// from the source's current state.
func expectWindow(s *Source[int], v *View[int], from, until int) {
	GinkgoHelper()
	src := s.Materialize()
	lo := min(max(from, 0), len(src))
	hi := min(max(until, lo), len(src))
	Expect(v.Materialize()).To(Equal(src[lo:hi]))
}

var _ = Describe("Slice", func() {
	var (
		src    *Source[int]
		window *View[int]
		m      *mirror[int]
	)

	BeforeEach(func() {
		src = NewSource([]int{1, 2, 3, 4, 5}, WithEquals[int](intEq))
		window = Slice(src.View, 1, 3)
		m = follow(window, intEq)
	})

	It("should materialize the window", func() {
		Expect(window.Materialize()).To(Equal([]int{2, 3}))
	})

	Describe("Updates", func() {
		It("should pass through an in-window update re-indexed", func() {
			Expect(src.Apply(delta.Update(2, 3, 9))).To(Succeed())
			expectSync(window, m, []int{2, 9})
			Expect(m.deltas).To(Equal([]delta.Delta[int]{delta.Update(1, 3, 9)}))
		})

		It("should swallow out-of-window updates", func() {
			Expect(src.Apply(delta.Update(0, 1, 9))).To(Succeed())
			Expect(src.Apply(delta.Update(4, 5, 9))).To(Succeed())
			expectSync(window, m, []int{2, 3})
			Expect(m.deltas).To(BeEmpty())
		})
	})

	Describe("Removals", func() {
		It("should roll the next element in when removing inside the window", func() {
			Expect(src.Apply(delta.Remove(1, 2))).To(Succeed())
			// Source is now [1,3,4,5]: the 4 slides into the window.
			expectSync(window, m, []int{3, 4})
		})

		It("should publish the roll-in as remove plus include", func() {
			Expect(src.Apply(delta.Remove(1, 2))).To(Succeed())
			Expect(m.deltas).To(Equal([]delta.Delta[int]{delta.Batch(
				delta.Remove(0, 2),
				delta.Include(2, 4),
			)}))
		})

		It("should shift the window left when removing before it", func() {
			Expect(src.Apply(delta.Remove(0, 1))).To(Succeed())
			expectSync(window, m, []int{3, 4})
		})

		It("should ignore removals past the window", func() {
			Expect(src.Apply(delta.Remove(4, 5))).To(Succeed())
			expectSync(window, m, []int{2, 3})
			Expect(m.deltas).To(BeEmpty())
		})

		It("should shrink the window when the source gets too short to fill it", func() {
			for _, e := range []int{5, 4, 3} {
				Expect(src.Apply(delta.Remove(src.Len()-1, e))).To(Succeed())
			}
			// Source [1,2]: only position 1 falls inside [1,3).
			expectSync(window, m, []int{2})
		})
	})

	Describe("Insertions", func() {
		It("should roll the last element out when inserting inside a full window", func() {
			Expect(src.Apply(delta.Include(2, 9))).To(Succeed())
			expectSync(window, m, []int{2, 9})
		})

		It("should shift the window right when inserting before it", func() {
			Expect(src.Apply(delta.Include(0, 9))).To(Succeed())
			// Source [9,1,2,3,4,5]: the window now holds positions 1 and 2.
			expectSync(window, m, []int{1, 2})
		})

		It("should ignore insertions past the window", func() {
			Expect(src.Apply(delta.Include(5, 9))).To(Succeed())
			expectSync(window, m, []int{2, 3})
			Expect(m.deltas).To(BeEmpty())
		})

		It("should grow an underfilled window on insertion past it", func() {
			short := NewSource([]int{1, 2}, WithEquals[int](intEq))
			w := Slice(short.View, 1, 3)
			wm := follow(w, intEq)
			Expect(w.Materialize()).To(Equal([]int{2}))

			Expect(short.Apply(delta.Include(2, 3))).To(Succeed())
			expectSync(w, wm, []int{2, 3})
		})
	})

	It("should translate batches member by member", func() {
		err := src.Apply(delta.Batch(
			delta.Remove(1, 2),
			delta.Remove(2, 3),
			delta.Include(5, 6),
		))
		Expect(err).NotTo(HaveOccurred())
		Expect(src.Materialize()).To(Equal([]int{1, 4, 5, 6}))
		expectSync(window, m, []int{4, 5})
	})

	Describe("Take and Drop", func() {
		It("should take the first n elements", func() {
			taken := Take(src.View, 2)
			tm := follow(taken, intEq)
			Expect(taken.Materialize()).To(Equal([]int{1, 2}))

			Expect(src.Apply(delta.Include(0, 0))).To(Succeed())
			expectSync(taken, tm, []int{0, 1})
			Expect(src.Apply(delta.Remove(0, 0))).To(Succeed())
			expectSync(taken, tm, []int{1, 2})
		})

		It("should drop the first n elements", func() {
			dropped := Drop(src.View, 3)
			dm := follow(dropped, intEq)
			Expect(dropped.Materialize()).To(Equal([]int{4, 5}))

			Expect(src.Apply(delta.Remove(0, 1))).To(Succeed())
			expectSync(dropped, dm, []int{5})
			Expect(src.Apply(delta.Include(4, 6))).To(Succeed())
			expectSync(dropped, dm, []int{5, 6})
			Expect(src.Apply(delta.Include(0, 1))).To(Succeed())
			expectSync(dropped, dm, []int{4, 5, 6})
		})
	})

	DescribeTable("should track the clamped window through an edit series",
		func(from, until int) {
			s := NewSource([]int{1, 2, 3, 4, 5, 6}, WithEquals[int](intEq))
			v := Slice(s.View, from, until)
			vm := follow(v, intEq)

			at := func(i int) int {
				e, err := s.At(i)
				Expect(err).NotTo(HaveOccurred())
				return e
			}
			ops := []func() delta.Delta[int]{
				func() delta.Delta[int] { return delta.Include(0, 100) },
				func() delta.Delta[int] { return delta.Remove(3, at(3)) },
				func() delta.Delta[int] { return delta.Update(2, at(2), 200) },
				func() delta.Delta[int] { return delta.Include(s.Len(), 300) },
				func() delta.Delta[int] { return delta.Remove(0, at(0)) },
				func() delta.Delta[int] { return delta.Remove(s.Len()-1, at(s.Len()-1)) },
				func() delta.Delta[int] { return delta.Include(1, 400) },
				func() delta.Delta[int] {
					return delta.Batch(delta.Remove(0, at(0)), delta.Include(s.Len(), 500))
				},
			}
			for _, op := range ops {
				Expect(s.Apply(op())).To(Succeed())
				expectWindow(s, v, from, until)
				Expect(vm.elems).To(Equal(v.Materialize()))
			}
		},
		Entry("prefix", 0, 2),
		Entry("inner", 1, 3),
		Entry("inner wide", 2, 5),
		Entry("suffix with slack", 3, 10),
		Entry("empty window", 2, 2),
		Entry("fully past the source", 10, 12),
		Entry("everything", 0, math.MaxInt),
		Entry("negative from", -2, 3),
	)
})
