package view

import (
	"math"

	"github.com/incrseq/incrseq/pkg/delta"
)

// Slice derives a windowed view of the parent: the elements at source
// positions [from, until), both bounds clamped to the source length.
// Inside-window deltas pass through re-indexed; when a removal shrinks the
// window the element just past it rolls in at the window's last position, and
// when an insertion would overflow it the former last element rolls out.
func Slice[T any](parent *View[T], from, until int) *View[T] {
	child := newView[T]("slice", parent.log, parent.chain)
	s := &sliced[T]{
		view:  child,
		from:  from,
		until: until,
		src:   parent.Materialize(),
	}
	lo, hi := s.window(len(s.src))
	child.elems = append(child.elems, s.src[lo:hi]...)

	child.parentSub = parent.deltas().Subscribe(func(d delta.Delta[T]) {
		process(child, s, d)
	})
	return child
}

// Take derives a view of the first n elements of the parent.
func Take[T any](parent *View[T], n int) *View[T] {
	return Slice(parent, 0, n)
}

// Drop derives a view of the parent without its first n elements.
func Drop[T any](parent *View[T], n int) *View[T] {
	return Slice(parent, n, math.MaxInt)
}

// sliced tracks its own mirror of the source sequence: batch members are
// replayed one at a time, and the roll-in elements at the window boundary
// must be read from the source as of the member being translated, not from
// the parent's already fully updated state.
type sliced[T any] struct {
	view  *View[T]
	from  int
	until int
	src   []T
}

// window clamps the requested bounds against a source of length n.
func (s *sliced[T]) window(n int) (int, int) {
	lo := min(max(s.from, 0), n)
	hi := min(max(s.until, lo), n)
	return lo, hi
}

func (s *sliced[T]) translate(d delta.Delta[T]) ([]delta.Delta[T], error) {
	n, preLen := d.Index, len(s.src)
	switch d.Kind {
	case delta.KindInclude:
		if n < 0 || n > preLen {
			return nil, newTableMismatchError("slice", n, preLen)
		}
	case delta.KindRemove, delta.KindUpdate:
		if n < 0 || n >= preLen {
			return nil, newTableMismatchError("slice", n, preLen)
		}
	default:
		return nil, newUnexpectedKindError(d.Kind)
	}
	s.src = applyToSlice(s.src, d)

	switch d.Kind {
	case delta.KindInclude:
		return s.translateInclude(d, preLen), nil
	case delta.KindRemove:
		return s.translateRemove(d, preLen), nil
	default:
		return s.translateUpdate(d, preLen), nil
	}
}

func (s *sliced[T]) translateInclude(d delta.Delta[T], preLen int) []delta.Delta[T] {
	n := d.Index
	lo, hi := s.window(preLen)
	lo2, hi2 := s.window(preLen + 1)
	oldLen, newLen := hi-lo, hi2-lo2

	var out []delta.Delta[T]
	switch {
	case newLen == 0:
		// Window still empty.

	case n >= hi:
		// Insertion at or past the window. The window only changes if it was
		// short of its requested size and now reaches one element further.
		if newLen > oldLen {
			out = append(out, delta.Include(oldLen, s.src[hi2-1]))
		}

	case n >= lo:
		// Insertion inside the window.
		out = append(out, delta.Include(n-lo2, d.Elem))
		if newLen == oldLen {
			// At capacity: the former last element rolls out.
			out = append(out, delta.Remove(oldLen, s.view.elems[oldLen-1]))
		}

	default:
		// Insertion before the window: the whole window shifts right, so the
		// source element now at the window start rolls in at the front.
		out = append(out, delta.Include(0, s.src[lo2]))
		if newLen == oldLen && oldLen > 0 {
			out = append(out, delta.Remove(oldLen, s.view.elems[oldLen-1]))
		}
	}
	return out
}

func (s *sliced[T]) translateRemove(d delta.Delta[T], preLen int) []delta.Delta[T] {
	n := d.Index
	lo, hi := s.window(preLen)
	_, hi2 := s.window(preLen - 1)
	oldLen := hi - lo

	var out []delta.Delta[T]
	switch {
	case oldLen == 0 || n >= hi:
		// Removal past the window never affects it: the window can only end
		// before a removable position if it is bounded by until, and then it
		// keeps its elements.

	case n >= lo:
		out = append(out, delta.Remove(n-lo, s.view.elems[n-lo]))
		if hi2 == hi {
			// An element beyond the old window rolls in at the last position.
			// Read from the post-removal source: hi-1 is the element that
			// slides into the window, not the pre-removal boundary.
			out = append(out, delta.Include(oldLen-1, s.src[hi-1]))
		}

	default:
		// Removal before the window: the window shifts left, its first
		// element leaves and, if the source is long enough, a new last
		// element enters.
		out = append(out, delta.Remove(0, s.view.elems[0]))
		if hi2 == hi {
			out = append(out, delta.Include(oldLen-1, s.src[hi-1]))
		}
	}
	return out
}

func (s *sliced[T]) translateUpdate(d delta.Delta[T], preLen int) []delta.Delta[T] {
	n := d.Index
	lo, hi := s.window(preLen)
	if n < lo || n >= hi {
		return nil
	}
	return []delta.Delta[T]{delta.Update(n-lo, s.view.elems[n-lo], d.NewElem)}
}
