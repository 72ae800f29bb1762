package view

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/incrseq/incrseq/pkg/delta"
)

var _ = Describe("Index table", func() {
	var t *indexTable

	BeforeEach(func() {
		// Source of four elements expanding to widths 1, 0, 2, 0.
		widths := []int{1, 0, 2, 0}
		t = newIndexTable("test", len(widths), func(i int) int { return widths[i] })
	})

	It("should hold cumulative offsets with a length sentinel", func() {
		Expect(t.srcLen()).To(Equal(4))
		Expect(t.start(0)).To(Equal(0))
		Expect(t.start(2)).To(Equal(1))
		Expect(t.width(2)).To(Equal(2))
		Expect(t.start(4)).To(Equal(3))
	})

	It("should shift later offsets on include", func() {
		start, err := t.include(1, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(start).To(Equal(1))
		Expect(t.srcLen()).To(Equal(5))
		Expect(t.width(1)).To(Equal(3))
		Expect(t.start(3)).To(Equal(4))
		Expect(t.start(5)).To(Equal(6))
	})

	It("should collapse the expansion on remove", func() {
		start, width, err := t.remove(2)
		Expect(err).NotTo(HaveOccurred())
		Expect(start).To(Equal(1))
		Expect(width).To(Equal(2))
		Expect(t.srcLen()).To(Equal(3))
		Expect(t.start(3)).To(Equal(1))
	})

	It("should rewidth on update", func() {
		start, oldWidth, err := t.update(0, 4)
		Expect(err).NotTo(HaveOccurred())
		Expect(start).To(Equal(0))
		Expect(oldWidth).To(Equal(1))
		Expect(t.width(0)).To(Equal(4))
		Expect(t.start(4)).To(Equal(6))
	})

	It("should reject out-of-range source positions", func() {
		_, err := t.include(5, 1)
		Expect(err).To(MatchError(delta.ErrIndexOutOfRange))
		_, _, err = t.remove(4)
		Expect(err).To(MatchError(delta.ErrIndexOutOfRange))
		_, _, err = t.update(-1, 0)
		Expect(err).To(MatchError(delta.ErrIndexOutOfRange))
	})
})
