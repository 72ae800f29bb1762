// Package delta implements the atomic change algebra for ordered sequences.
// A Delta describes one mutation of a sequence at a given index (Include,
// Remove, Update) or an ordered group of mutations that occurred together
// (Batch). Deltas are pure data carriers: no index validation happens at
// construction, only at application time.
//
// Batch members reference positions in the sequence as it was before the
// batch: applying a batch sorts the flattened members by original index and
// carries a running offset so that earlier members' inserts and removals are
// accounted for when later members are applied. At equal original index,
// removals apply before updates, and updates before inclusions.
package delta

import (
	"fmt"
	"sort"
	"strings"
)

// Kind discriminates the delta variants.
type Kind int

const (
	KindInclude Kind = iota
	KindRemove
	KindUpdate
	KindBatch
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInclude:
		return "include"
	case KindRemove:
		return "remove"
	case KindUpdate:
		return "update"
	case KindBatch:
		return "batch"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Delta is one atomic, typed description of a sequence mutation. The payload
// fields in use depend on Kind:
//   - KindInclude: Index, Elem (element inserted at Index, following elements
//     shift right by one),
//   - KindRemove: Index, Elem (element previously at Index removed; Elem is
//     informational and must equal what was there before removal),
//   - KindUpdate: Index, OldElem, NewElem (in-place replacement),
//   - KindBatch: Members (ordered group, applied together).
type Delta[T any] struct {
	Kind    Kind
	Index   int
	Elem    T
	OldElem T
	NewElem T
	Members []Delta[T]
}

// Include constructs a delta inserting elem at index.
func Include[T any](index int, elem T) Delta[T] {
	return Delta[T]{Kind: KindInclude, Index: index, Elem: elem}
}

// Remove constructs a delta removing the element at index. The carried elem
// must equal the element at that index before removal.
func Remove[T any](index int, elem T) Delta[T] {
	return Delta[T]{Kind: KindRemove, Index: index, Elem: elem}
}

// Update constructs an in-place replacement delta.
func Update[T any](index int, oldElem, newElem T) Delta[T] {
	return Delta[T]{Kind: KindUpdate, Index: index, OldElem: oldElem, NewElem: newElem}
}

// Batch constructs an ordered group of deltas considered to have occurred
// together. Members reference pre-batch indices.
func Batch[T any](members ...Delta[T]) Delta[T] {
	return Delta[T]{Kind: KindBatch, Members: members}
}

// Flatten expands nested batches into the ordered list of atomic deltas. An
// atomic delta flattens to itself.
func (d Delta[T]) Flatten() []Delta[T] {
	if d.Kind != KindBatch {
		return []Delta[T]{d}
	}
	out := make([]Delta[T], 0, len(d.Members))
	for _, m := range d.Members {
		out = append(out, m.Flatten()...)
	}
	return out
}

// kindRank orders members at equal original index: removal logically precedes
// update, and update precedes insertion.
func kindRank(k Kind) int {
	switch k {
	case KindRemove:
		return 0
	case KindUpdate:
		return 1
	default:
		return 2
	}
}

// Canonical flattens d and stable-sorts the atomic members into canonical
// application order: ascending original index, removals before updates before
// inclusions at equal index, original member order otherwise preserved.
func Canonical[T any](d Delta[T]) []Delta[T] {
	members := d.Flatten()
	sort.SliceStable(members, func(i, j int) bool {
		if members[i].Index != members[j].Index {
			return members[i].Index < members[j].Index
		}
		return kindRank(members[i].Kind) < kindRank(members[j].Kind)
	})
	return members
}

// Sequential converts canonically ordered members (see Canonical) into
// sequentially applicable deltas: each returned delta's index refers to the
// sequence state produced by applying the deltas before it. This is the
// offset-carry step that accounts for earlier members shifting the positions
// referenced by later members.
//
// A removal shifts only members at strictly larger original indices: an
// inclusion at the same original index as a removal lands where the removed
// element was, so the pair acts as a replacement. An inclusion shifts every
// later member, including further inclusions at the same index, which keeps
// producer order among them.
func Sequential[T any](members []Delta[T]) []Delta[T] {
	out := make([]Delta[T], 0, len(members))
	offset := 0
	pending := 0 // removal shifts held back until the original index advances
	cur := 0
	for i, m := range members {
		if i == 0 || m.Index != cur {
			offset += pending
			pending = 0
			cur = m.Index
		}
		s := m
		s.Index = m.Index + offset
		out = append(out, s)
		switch m.Kind {
		case KindInclude:
			offset++
		case KindRemove:
			pending--
		}
	}
	return out
}

// String renders the delta for debugging and log output.
func (d Delta[T]) String() string {
	switch d.Kind {
	case KindInclude:
		return fmt.Sprintf("include(%d, %v)", d.Index, d.Elem)
	case KindRemove:
		return fmt.Sprintf("remove(%d, %v)", d.Index, d.Elem)
	case KindUpdate:
		return fmt.Sprintf("update(%d, %v -> %v)", d.Index, d.OldElem, d.NewElem)
	case KindBatch:
		parts := make([]string, len(d.Members))
		for i, m := range d.Members {
			parts[i] = m.String()
		}
		return fmt.Sprintf("batch[%s]", strings.Join(parts, ", "))
	default:
		return fmt.Sprintf("delta(kind=%d)", int(d.Kind))
	}
}

// Map transforms the elements carried by a delta tree with f, preserving
// indices and structure.
func Map[T, U any](d Delta[T], f func(T) U) Delta[U] {
	switch d.Kind {
	case KindInclude:
		return Include(d.Index, f(d.Elem))
	case KindRemove:
		return Remove(d.Index, f(d.Elem))
	case KindUpdate:
		return Delta[U]{Kind: KindUpdate, Index: d.Index, OldElem: f(d.OldElem), NewElem: f(d.NewElem)}
	default:
		members := make([]Delta[U], len(d.Members))
		for i, m := range d.Members {
			members[i] = Map(m, f)
		}
		return Batch(members...)
	}
}
