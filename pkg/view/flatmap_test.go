package view

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/incrseq/incrseq/pkg/delta"
)

var _ = Describe("FlatMap", func() {
	var (
		src     *Source[string]
		letters *View[string]
		m       *mirror[string]
	)

	strEq := func(a, b string) bool { return a == b }
	split := func(s string) []string { return strings.Split(s, "") }

	BeforeEach(func() {
		src = NewSource([]string{"a", "bb", "ccc"}, WithEquals[string](strEq))
		letters = FlatMap(src.View, split)
		m = follow(letters, strEq)
	})

	It("should materialize the concatenated expansions", func() {
		Expect(letters.Materialize()).To(Equal([]string{"a", "b", "b", "c", "c", "c"}))
	})

	It("should expand an insertion in place", func() {
		Expect(src.Apply(delta.Include(1, "xy"))).To(Succeed())
		expectSync(letters, m, []string{"a", "x", "y", "b", "b", "c", "c", "c"})
	})

	It("should swallow an empty expansion", func() {
		Expect(src.Apply(delta.Include(0, ""))).To(Succeed())
		expectSync(letters, m, []string{"a", "b", "b", "c", "c", "c"})
		Expect(m.deltas).To(BeEmpty())
	})

	It("should remove a whole expansion", func() {
		Expect(src.Apply(delta.Remove(2, "ccc"))).To(Succeed())
		expectSync(letters, m, []string{"a", "b", "b"})
	})

	It("should replace an expansion on update", func() {
		Expect(src.Apply(delta.Update(1, "bb", "x"))).To(Succeed())
		expectSync(letters, m, []string{"a", "x", "c", "c", "c"})

		// The published batch references the pre-change result positions: the
		// two b's leave at their original indices and the replacement anchors
		// at the first surviving position after them.
		Expect(m.deltas).To(Equal([]delta.Delta[string]{delta.Batch(
			delta.Remove(1, "b"),
			delta.Remove(2, "b"),
			delta.Include(3, "x"),
		)}))
	})

	It("should grow an expansion on update", func() {
		Expect(src.Apply(delta.Update(0, "a", "aaa"))).To(Succeed())
		expectSync(letters, m, []string{"a", "a", "a", "b", "b", "c", "c", "c"})
	})

	It("should shrink an expansion to nothing", func() {
		Expect(src.Apply(delta.Update(1, "bb", ""))).To(Succeed())
		expectSync(letters, m, []string{"a", "c", "c", "c"})
	})

	It("should translate batches over several expansions", func() {
		err := src.Apply(delta.Batch(
			delta.Remove(0, "a"),
			delta.Update(2, "ccc", "d"),
			delta.Include(3, "ee"),
		))
		Expect(err).NotTo(HaveOccurred())
		Expect(src.Materialize()).To(Equal([]string{"bb", "d", "ee"}))
		expectSync(letters, m, []string{"b", "b", "d", "e", "e"})
	})

	It("should keep mapping positions after repeated edits", func() {
		Expect(src.Apply(delta.Update(0, "a", ""))).To(Succeed())
		Expect(src.Apply(delta.Include(3, "zz"))).To(Succeed())
		Expect(src.Apply(delta.Remove(1, "bb"))).To(Succeed())
		expectSync(letters, m, []string{"c", "c", "c", "z", "z"})
	})
})
