package view

import (
	"github.com/incrseq/incrseq/pkg/delta"
)

// Map derives a view applying a pure function to every element. The transform
// is 1:1 and index-preserving: delta translation is identity on indices and
// applies f to the carried elements.
func Map[T, U any](parent *View[T], f func(T) U) *View[U] {
	child := newView[U]("map", parent.log, parent.chain)
	child.elems = make([]U, len(parent.elems))
	for i, e := range parent.elems {
		child.elems[i] = f(e)
	}

	m := &mapped[T, U]{view: child, f: f}
	child.parentSub = parent.deltas().Subscribe(func(d delta.Delta[T]) {
		process(child, m, d)
	})
	return child
}

type mapped[T, U any] struct {
	view *View[U]
	f    func(T) U
}

func (m *mapped[T, U]) translate(d delta.Delta[T]) ([]delta.Delta[U], error) {
	switch d.Kind {
	case delta.KindInclude:
		return []delta.Delta[U]{delta.Include(d.Index, m.f(d.Elem))}, nil

	case delta.KindRemove:
		old, err := m.view.At(d.Index)
		if err != nil {
			return nil, err
		}
		return []delta.Delta[U]{delta.Remove(d.Index, old)}, nil

	case delta.KindUpdate:
		old, err := m.view.At(d.Index)
		if err != nil {
			return nil, err
		}
		return []delta.Delta[U]{delta.Update(d.Index, old, m.f(d.NewElem))}, nil

	default:
		return nil, newUnexpectedKindError(d.Kind)
	}
}
