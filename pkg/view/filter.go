package view

import (
	"github.com/incrseq/incrseq/pkg/delta"
)

// Filter derives a view keeping the elements that satisfy pred, in source
// order. The transform is index-tracked: a table of cumulative pass counts
// maps source positions to result positions while deltas are translated.
func Filter[T any](parent *View[T], pred func(T) bool) *View[T] {
	child := newView[T]("filter", parent.log, parent.chain)
	for _, e := range parent.elems {
		if pred(e) {
			child.elems = append(child.elems, e)
		}
	}
	f := &filtered[T]{
		view: child,
		pred: pred,
		table: newIndexTable("filter", len(parent.elems), func(i int) int {
			if pred(parent.elems[i]) {
				return 1
			}
			return 0
		}),
	}
	child.parentSub = parent.deltas().Subscribe(func(d delta.Delta[T]) {
		process(child, f, d)
	})
	return child
}

type filtered[T any] struct {
	view  *View[T]
	pred  func(T) bool
	table *indexTable
}

func (f *filtered[T]) translate(d delta.Delta[T]) ([]delta.Delta[T], error) {
	switch d.Kind {
	case delta.KindInclude:
		width := 0
		if f.pred(d.Elem) {
			width = 1
		}
		start, err := f.table.include(d.Index, width)
		if err != nil {
			return nil, err
		}
		if width == 0 {
			return nil, nil
		}
		return []delta.Delta[T]{delta.Include(start, d.Elem)}, nil

	case delta.KindRemove:
		start, width, err := f.table.remove(d.Index)
		if err != nil {
			return nil, err
		}
		if width == 0 {
			return nil, nil
		}
		old, err := f.view.At(start)
		if err != nil {
			return nil, err
		}
		return []delta.Delta[T]{delta.Remove(start, old)}, nil

	case delta.KindUpdate:
		newWidth := 0
		if f.pred(d.NewElem) {
			newWidth = 1
		}
		start, oldWidth, err := f.table.update(d.Index, newWidth)
		if err != nil {
			return nil, err
		}
		switch {
		case oldWidth == 1 && newWidth == 1:
			old, err := f.view.At(start)
			if err != nil {
				return nil, err
			}
			return []delta.Delta[T]{delta.Update(start, old, d.NewElem)}, nil
		case oldWidth == 1:
			old, err := f.view.At(start)
			if err != nil {
				return nil, err
			}
			return []delta.Delta[T]{delta.Remove(start, old)}, nil
		case newWidth == 1:
			return []delta.Delta[T]{delta.Include(start, d.NewElem)}, nil
		default:
			return nil, nil
		}

	default:
		return nil, newUnexpectedKindError(d.Kind)
	}
}
