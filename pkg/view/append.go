package view

import (
	"github.com/incrseq/incrseq/pkg/delta"
)

// Append derives a view concatenating a static tail after the parent's
// elements. Source deltas pass through at their original index; the tail
// shifts implicitly as the source grows and shrinks and never changes itself.
func Append[T any](parent *View[T], tail []T) *View[T] {
	child := newView[T]("append", parent.log, parent.chain)
	child.elems = make([]T, 0, len(parent.elems)+len(tail))
	child.elems = append(child.elems, parent.elems...)
	child.elems = append(child.elems, tail...)

	a := &appended[T]{view: child, srcLen: len(parent.elems)}
	child.parentSub = parent.deltas().Subscribe(func(d delta.Delta[T]) {
		process(child, a, d)
	})
	return child
}

type appended[T any] struct {
	view   *View[T]
	srcLen int
}

func (a *appended[T]) translate(d delta.Delta[T]) ([]delta.Delta[T], error) {
	switch d.Kind {
	case delta.KindInclude:
		if d.Index < 0 || d.Index > a.srcLen {
			return nil, newTableMismatchError("append", d.Index, a.srcLen)
		}
		a.srcLen++
		return []delta.Delta[T]{delta.Include(d.Index, d.Elem)}, nil

	case delta.KindRemove:
		if d.Index < 0 || d.Index >= a.srcLen {
			return nil, newTableMismatchError("append", d.Index, a.srcLen)
		}
		old, err := a.view.At(d.Index)
		if err != nil {
			return nil, err
		}
		a.srcLen--
		return []delta.Delta[T]{delta.Remove(d.Index, old)}, nil

	case delta.KindUpdate:
		if d.Index < 0 || d.Index >= a.srcLen {
			return nil, newTableMismatchError("append", d.Index, a.srcLen)
		}
		old, err := a.view.At(d.Index)
		if err != nil {
			return nil, err
		}
		return []delta.Delta[T]{delta.Update(d.Index, old, d.NewElem)}, nil

	default:
		return nil, newUnexpectedKindError(d.Kind)
	}
}
