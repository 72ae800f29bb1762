package view

import (
	"github.com/incrseq/incrseq/pkg/delta"
)

// TakeWhile derives a view of the parent's longest prefix of elements
// satisfying pred. The boundary is tracked as the index of the last element
// of the all-true prefix and adjusted incrementally; it is recomputed from
// the per-position validity record only when a change lands at or before the
// position just past the boundary.
func TakeWhile[T any](parent *View[T], pred func(T) bool) *View[T] {
	return newPrefixed(parent, pred, false).view
}

// DropWhile derives a view of the parent without its longest prefix of
// elements satisfying pred, re-indexed from zero.
func DropWhile[T any](parent *View[T], pred func(T) bool) *View[T] {
	return newPrefixed(parent, pred, true).view
}

// prefixed tracks the source mirror, the per-position validity record and
// the boundary. As with sliced, the mirror exists because batch members are
// replayed one at a time and boundary extensions must read the source as of
// the member being translated.
type prefixed[T any] struct {
	view      *View[T]
	pred      func(T) bool
	drop      bool
	src       []T
	valid     []bool
	lastValid int
}

func newPrefixed[T any](parent *View[T], pred func(T) bool, drop bool) *prefixed[T] {
	name := "takewhile"
	if drop {
		name = "dropwhile"
	}
	child := newView[T](name, parent.log, parent.chain)
	p := &prefixed[T]{
		view:  child,
		pred:  pred,
		drop:  drop,
		src:   parent.Materialize(),
		valid: make([]bool, len(parent.elems)),
	}
	for i, e := range p.src {
		p.valid[i] = pred(e)
	}
	p.recompute()

	kept := p.lastValid + 1
	if drop {
		child.elems = append(child.elems, p.src[kept:]...)
	} else {
		child.elems = append(child.elems, p.src[:kept]...)
	}

	child.parentSub = parent.deltas().Subscribe(func(d delta.Delta[T]) {
		process(child, p, d)
	})
	return p
}

// recompute derives the boundary from scratch: the length of the longest
// all-true prefix, minus one.
func (p *prefixed[T]) recompute() {
	b := -1
	for i := 0; i < len(p.valid) && p.valid[i]; i++ {
		b = i
	}
	p.lastValid = b
}

func (p *prefixed[T]) translate(d delta.Delta[T]) ([]delta.Delta[T], error) {
	n := d.Index
	k := p.lastValid + 1 // prefix size before the delta

	// Maintain the source mirror, the validity record and the boundary.
	switch d.Kind {
	case delta.KindInclude:
		if n < 0 || n > len(p.valid) {
			return nil, newTableMismatchError(p.view.name, n, len(p.valid))
		}
		v := p.pred(d.Elem)
		p.valid = append(p.valid, false)
		copy(p.valid[n+1:], p.valid[n:])
		p.valid[n] = v
	case delta.KindRemove:
		if n < 0 || n >= len(p.valid) {
			return nil, newTableMismatchError(p.view.name, n, len(p.valid))
		}
		p.valid = append(p.valid[:n], p.valid[n+1:]...)
	case delta.KindUpdate:
		if n < 0 || n >= len(p.valid) {
			return nil, newTableMismatchError(p.view.name, n, len(p.valid))
		}
		p.valid[n] = p.pred(d.NewElem)
	default:
		return nil, newUnexpectedKindError(d.Kind)
	}
	p.src = applyToSlice(p.src, d)
	if n <= k {
		// The change can move the boundary.
		p.recompute()
	}
	k2 := p.lastValid + 1

	if p.drop {
		return p.translateDrop(d, k, k2), nil
	}
	return p.translateTake(d, k, k2), nil
}

// translateTake emits the child deltas for a take-while view, given the
// prefix sizes before (k) and after (k2) the source delta.
func (p *prefixed[T]) translateTake(d delta.Delta[T], k, k2 int) []delta.Delta[T] {
	n := d.Index
	var out []delta.Delta[T]

	switch d.Kind {
	case delta.KindInclude:
		switch {
		case k2 == k+1:
			// The inserted element joins the prefix.
			out = append(out, delta.Include(n, d.Elem))
		case k2 < k:
			// Prefix truncated at the insertion point: everything from there
			// on leaves the view.
			for j := k2; j < k; j++ {
				out = append(out, delta.Remove(k2, p.view.elems[j]))
			}
		}

	case delta.KindRemove:
		switch {
		case n < k:
			out = append(out, delta.Remove(n, p.view.elems[n]))
		case k2 > k:
			// The blocking element was removed: the prefix extends.
			for i := k; i < k2; i++ {
				out = append(out, delta.Include(i, p.src[i]))
			}
		}

	case delta.KindUpdate:
		switch {
		case k2 < k:
			for j := k2; j < k; j++ {
				out = append(out, delta.Remove(k2, p.view.elems[j]))
			}
		case k2 > k:
			for i := k; i < k2; i++ {
				out = append(out, delta.Include(i, p.src[i]))
			}
		case n < k:
			out = append(out, delta.Update(n, p.view.elems[n], d.NewElem))
		}
	}
	return out
}

// translateDrop emits the child deltas for a drop-while view.
func (p *prefixed[T]) translateDrop(d delta.Delta[T], k, k2 int) []delta.Delta[T] {
	n := d.Index
	var out []delta.Delta[T]

	switch d.Kind {
	case delta.KindInclude:
		switch {
		case n > k:
			out = append(out, delta.Include(n-k, d.Elem))
		case k2 == k+1:
			// The insertion joined the dropped prefix: the suffix is
			// untouched.
		default:
			// The prefix truncated at k2: positions k2..k of the post-insert
			// source enter the view at the front.
			for j := 0; j <= k-k2; j++ {
				out = append(out, delta.Include(j, p.src[k2+j]))
			}
		}

	case delta.KindRemove:
		switch {
		case n > k:
			out = append(out, delta.Remove(n-k, p.view.elems[n-k]))
		case n == k:
			// The first suffix element was removed; if it was the blocker
			// the prefix may extend and more front elements leave.
			for j := 0; j < k2-k+1; j++ {
				out = append(out, delta.Remove(0, p.view.elems[j]))
			}
		}
		// Removals inside the dropped prefix leave the suffix untouched.

	case delta.KindUpdate:
		switch {
		case n > k:
			out = append(out, delta.Update(n-k, p.view.elems[n-k], d.NewElem))
		case n == k:
			if k2 > k {
				// The blocker now satisfies the predicate: the prefix
				// swallows the view's front.
				for j := 0; j < k2-k; j++ {
					out = append(out, delta.Remove(0, p.view.elems[j]))
				}
			} else {
				out = append(out, delta.Update(0, p.view.elems[0], d.NewElem))
			}
		default:
			// Inside the dropped prefix.
			if k2 < k {
				// No longer satisfied: positions k2..k-1 of the source enter
				// the view at the front.
				for j := 0; j < k-k2; j++ {
					out = append(out, delta.Include(j, p.src[k2+j]))
				}
			}
		}
	}
	return out
}
