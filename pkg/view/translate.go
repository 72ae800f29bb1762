package view

import (
	"fmt"

	"github.com/incrseq/incrseq/pkg/delta"
)

// translator converts one sequentially indexed atomic parent delta into the
// sequentially applicable deltas on the child, updating any per-variant state
// (index table, prefix boundary, source length) as it goes. A translator must
// only read the child's materialized state as it was before the member being
// translated; the driver applies the emitted deltas afterwards.
type translator[P, T any] interface {
	translate(d delta.Delta[P]) ([]delta.Delta[T], error)
}

// process drives one incoming parent delta through a derived view: the
// members are flattened and canonically ordered, converted to sequential
// indices with offset carry, translated one by one, applied to the child's
// state, and finally re-published as a single delta (or batch) in the child's
// pre-change coordinates so that consumers can apply the whole group
// atomically.
//
// Runs while the chain guard is held; translation failures are recorded on
// the chain and surface from Source.Apply.
func process[P, T any](v *View[T], tr translator[P, T], d delta.Delta[P]) {
	members := delta.Sequential(delta.Canonical(d))
	norm := newNormalizer(v.elems)

	for _, m := range members {
		outs, err := tr.translate(m)
		if err != nil {
			observeTranslationError(v.name)
			v.chain.report(fmt.Errorf("view %s: translating %s: %w", v.name, m, err))
			v.log.Error(err, "delta translation failed", "delta", m.String())
			return
		}
		for _, o := range outs {
			norm.apply(o)
			v.applySequential(o)
		}
	}

	out, n := norm.batch()
	if n == 0 {
		return
	}
	observeTranslated(v.name, n)
	v.log.V(4).Info("delta translated", "in", d.String(), "out", out.String(), "length", len(v.elems))
	v.publish(out)
}

// applyToSlice mutates a sequence with one sequential atomic delta, without
// validation.
func applyToSlice[T any](s []T, d delta.Delta[T]) []T {
	switch d.Kind {
	case delta.KindInclude:
		s = append(s, d.Elem)
		copy(s[d.Index+1:], s[d.Index:])
		s[d.Index] = d.Elem
	case delta.KindRemove:
		s = append(s[:d.Index], s[d.Index+1:]...)
	case delta.KindUpdate:
		s[d.Index] = d.NewElem
	}
	return s
}

// normEntry mirrors one element of the child sequence while a batch is being
// translated. orig is the element's pre-batch index, or -1 for elements
// inserted by the batch being processed.
type normEntry[T any] struct {
	orig    int
	elem    T
	old     T
	updated bool
}

// normalizer rebuilds a canonical pre-change-coordinate batch from the
// sequential deltas a translation emits. Sequential deltas index the evolving
// child state; batch members must reference the child state before the batch,
// so the normalizer tracks which original positions survive, which were
// removed, and where the batch's insertions land relative to the surviving
// originals. Insert-then-remove pairs cancel and updates fold.
type normalizer[T any] struct {
	origLen int
	entries []normEntry[T]
	removed []delta.Delta[T]
}

func newNormalizer[T any](elems []T) *normalizer[T] {
	entries := make([]normEntry[T], len(elems))
	for i, e := range elems {
		entries[i] = normEntry[T]{orig: i, elem: e, old: e}
	}
	return &normalizer[T]{origLen: len(elems), entries: entries}
}

func (n *normalizer[T]) apply(d delta.Delta[T]) {
	switch d.Kind {
	case delta.KindInclude:
		n.entries = append(n.entries, normEntry[T]{})
		copy(n.entries[d.Index+1:], n.entries[d.Index:])
		n.entries[d.Index] = normEntry[T]{orig: -1, elem: d.Elem}

	case delta.KindRemove:
		e := n.entries[d.Index]
		if e.orig >= 0 {
			// Carry the pre-batch value: if the element was updated earlier
			// in this batch the update folds into the removal.
			n.removed = append(n.removed, delta.Remove(e.orig, e.old))
		}
		n.entries = append(n.entries[:d.Index], n.entries[d.Index+1:]...)

	case delta.KindUpdate:
		e := &n.entries[d.Index]
		e.elem = d.NewElem
		if e.orig >= 0 {
			e.updated = true
		}
	}
}

// batch returns the accumulated change as one delta plus the member count: a
// single atomic delta as-is, several members wrapped in a Batch. Member
// indices reference the pre-batch child state; insertions are anchored at the
// index of the next surviving original element (or the pre-batch length),
// relying on removals sorting before inclusions at equal index.
func (n *normalizer[T]) batch() (delta.Delta[T], int) {
	var members []delta.Delta[T]
	members = append(members, n.removed...)

	// Anchor index for each insertion: the original index of the nearest
	// surviving original element at or after it.
	anchors := make([]int, len(n.entries))
	next := n.origLen
	for i := len(n.entries) - 1; i >= 0; i-- {
		if n.entries[i].orig >= 0 {
			next = n.entries[i].orig
		}
		anchors[i] = next
	}

	for i, e := range n.entries {
		if e.orig >= 0 {
			if e.updated {
				members = append(members, delta.Update(e.orig, e.old, e.elem))
			}
		} else {
			members = append(members, delta.Include(anchors[i], e.elem))
		}
	}

	switch len(members) {
	case 0:
		return delta.Delta[T]{}, 0
	case 1:
		return members[0], 1
	default:
		ordered := delta.Canonical(delta.Batch(members...))
		return delta.Batch(ordered...), len(ordered)
	}
}
