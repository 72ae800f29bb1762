package delta

// Apply applies a delta to a sequence and returns the resulting sequence. The
// input slice is never mutated. Batches are flattened, canonically ordered and
// replayed with offset carry (see Canonical and Sequential); atomic deltas
// apply directly.
//
// Application validates the delta against the sequence: indices must be in
// range (inclusions admit [0, len], removals and updates [0, len)), carried
// old elements must match the live element under equals, and batches must be
// non-empty. Application is atomic: on error the original sequence is
// returned unchanged together with the error.
func Apply[T any](s []T, d Delta[T], equals func(T, T) bool) ([]T, error) {
	if d.Kind == KindBatch {
		if err := checkBatch(d); err != nil {
			return s, err
		}
	}

	work := make([]T, len(s))
	copy(work, s)

	for _, m := range Sequential(Canonical(d)) {
		var err error
		work, err = applyAtomic(work, m, equals)
		if err != nil {
			return s, err
		}
	}
	return work, nil
}

// checkBatch rejects empty batches, recursing into nested ones.
func checkBatch[T any](d Delta[T]) error {
	if len(d.Members) == 0 {
		return newMalformedBatchError("batch has no members")
	}
	for _, m := range d.Members {
		if m.Kind == KindBatch {
			if err := checkBatch(m); err != nil {
				return err
			}
		}
	}
	return nil
}

func applyAtomic[T any](s []T, d Delta[T], equals func(T, T) bool) ([]T, error) {
	switch d.Kind {
	case KindInclude:
		if d.Index < 0 || d.Index > len(s) {
			return s, newIndexOutOfRangeError(d, len(s))
		}
		s = append(s, d.Elem)
		copy(s[d.Index+1:], s[d.Index:])
		s[d.Index] = d.Elem
		return s, nil

	case KindRemove:
		if d.Index < 0 || d.Index >= len(s) {
			return s, newIndexOutOfRangeError(d, len(s))
		}
		if !equals(s[d.Index], d.Elem) {
			return s, newInconsistentDeltaError(d, s[d.Index])
		}
		return append(s[:d.Index], s[d.Index+1:]...), nil

	case KindUpdate:
		if d.Index < 0 || d.Index >= len(s) {
			return s, newIndexOutOfRangeError(d, len(s))
		}
		if !equals(s[d.Index], d.OldElem) {
			return s, newInconsistentDeltaError(d, s[d.Index])
		}
		s[d.Index] = d.NewElem
		return s, nil

	default:
		return s, newMalformedBatchError("nested batch survived flattening")
	}
}
