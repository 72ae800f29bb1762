package view

import (
	"github.com/incrseq/incrseq/pkg/delta"
)

// FlatMap derives a view expanding every source element into zero or more
// result elements via f, concatenated in source order. The index table maps
// each source position to the start of its expansion in the result.
func FlatMap[T, U any](parent *View[T], f func(T) []U) *View[U] {
	child := newView[U]("flatmap", parent.log, parent.chain)
	widths := make([]int, len(parent.elems))
	for i, e := range parent.elems {
		exp := f(e)
		widths[i] = len(exp)
		child.elems = append(child.elems, exp...)
	}
	fm := &flatmapped[T, U]{
		view:  child,
		f:     f,
		table: newIndexTable("flatmap", len(parent.elems), func(i int) int { return widths[i] }),
	}
	child.parentSub = parent.deltas().Subscribe(func(d delta.Delta[T]) {
		process(child, fm, d)
	})
	return child
}

type flatmapped[T, U any] struct {
	view  *View[U]
	f     func(T) []U
	table *indexTable
}

func (fm *flatmapped[T, U]) translate(d delta.Delta[T]) ([]delta.Delta[U], error) {
	switch d.Kind {
	case delta.KindInclude:
		exp := fm.f(d.Elem)
		start, err := fm.table.include(d.Index, len(exp))
		if err != nil {
			return nil, err
		}
		out := make([]delta.Delta[U], len(exp))
		for j, e := range exp {
			out[j] = delta.Include(start+j, e)
		}
		return out, nil

	case delta.KindRemove:
		start, width, err := fm.table.remove(d.Index)
		if err != nil {
			return nil, err
		}
		out := make([]delta.Delta[U], 0, width)
		for j := 0; j < width; j++ {
			// Successive removals at the same result position: the carried
			// elements are read from the pre-translation state.
			old, err := fm.view.At(start + j)
			if err != nil {
				return nil, err
			}
			out = append(out, delta.Remove(start, old))
		}
		return out, nil

	case delta.KindUpdate:
		exp := fm.f(d.NewElem)
		start, oldWidth, err := fm.table.update(d.Index, len(exp))
		if err != nil {
			return nil, err
		}
		out := make([]delta.Delta[U], 0, oldWidth+len(exp))
		for j := 0; j < oldWidth; j++ {
			old, err := fm.view.At(start + j)
			if err != nil {
				return nil, err
			}
			out = append(out, delta.Remove(start, old))
		}
		for j, e := range exp {
			out = append(out, delta.Include(start+j, e))
		}
		return out, nil

	default:
		return nil, newUnexpectedKindError(d.Kind)
	}
}
