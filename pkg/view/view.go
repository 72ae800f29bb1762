package view

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
	"sync"

	"github.com/go-logr/logr"

	"github.com/incrseq/incrseq/pkg/delta"
	"github.com/incrseq/incrseq/pkg/diff"
	"github.com/incrseq/incrseq/pkg/stream"
)

// chain holds the per-chain guard and the error sink shared by every view
// derived from one source. The guard serializes delta processing across the
// whole chain: one delta is fully translated and applied through all
// descendants before the next is accepted.
type chain struct {
	mu   sync.Mutex
	errs []error
}

// report records a processing failure. Called while the chain guard is held.
func (c *chain) report(err error) {
	c.errs = append(c.errs, err)
}

// take drains the recorded failures. Called while the chain guard is held.
func (c *chain) take() []error {
	errs := c.errs
	c.errs = nil
	return errs
}

// View is an ordered, 0-indexed, read-only view over a source, kept in sync
// via delta translation. Views are created by NewSource and the transform
// builders; the zero value is not usable.
type View[T any] struct {
	name      string
	log       logr.Logger
	chain     *chain
	elems     []T
	stream    *stream.Stream[delta.Delta[T]]
	parentSub interface{ Close() }
}

func newView[T any](name string, log logr.Logger, c *chain) *View[T] {
	return &View[T]{
		name:  name,
		log:   log.WithValues("view", name),
		chain: c,
	}
}

// Len returns the current length of the view.
func (v *View[T]) Len() int { return len(v.elems) }

// At returns the element at index i.
func (v *View[T]) At(i int) (T, error) {
	if i < 0 || i >= len(v.elems) {
		var zero T
		return zero, fmt.Errorf("%w: index %d on view %s of length %d",
			delta.ErrIndexOutOfRange, i, v.name, len(v.elems))
	}
	return v.elems[i], nil
}

// Materialize returns a copy of the current state.
func (v *View[T]) Materialize() []T {
	out := make([]T, len(v.elems))
	copy(out, v.elems)
	return out
}

// Items iterates over the elements in index order.
func (v *View[T]) Items() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, e := range v.elems {
			if !yield(i, e) {
				return
			}
		}
	}
}

// BaselineDeltas returns the edit script from an empty sequence to the
// current state, for late subscribers that need to catch up. The script is
// sequential (see pkg/diff): apply it member by member.
func (v *View[T]) BaselineDeltas() []delta.Delta[T] {
	return diff.Baseline(v.elems)
}

// Subscribe registers a delta handler. Deltas are delivered synchronously, in
// production order; a handler may close its subscription during its own
// invocation.
func (v *View[T]) Subscribe(h func(delta.Delta[T])) *stream.Subscription[delta.Delta[T]] {
	return v.deltas().Subscribe(h)
}

// Close detaches a derived view from its parent. The view keeps its last
// materialized state but no longer receives deltas. Closing the root view of
// a chain is a no-op.
func (v *View[T]) Close() {
	if v.parentSub != nil {
		v.parentSub.Close()
	}
}

// deltas lazily creates the publication point.
func (v *View[T]) deltas() *stream.Stream[delta.Delta[T]] {
	if v.stream == nil {
		v.stream = stream.New[delta.Delta[T]]()
	}
	return v.stream
}

// publish sends a delta to subscribers, if there ever were any.
func (v *View[T]) publish(d delta.Delta[T]) {
	if v.stream == nil {
		return
	}
	v.stream.Publish(d)
}

// applySequential mutates the materialized state with one self-emitted
// delta. No validation: the view trusts its own translation.
func (v *View[T]) applySequential(d delta.Delta[T]) {
	v.elems = applyToSlice(v.elems, d)
}

// Source is the root of a transformation chain. It is the only view mutated
// from the outside: Apply validates a delta, updates the materialized state
// and pushes the delta through every derived view.
type Source[T any] struct {
	*View[T]
	equals func(T, T) bool
}

// Option configures a Source.
type Option[T any] func(*Source[T])

// WithLogger sets the logger used by the source and inherited by every view
// derived from it.
func WithLogger[T any](log logr.Logger) Option[T] {
	return func(s *Source[T]) { s.log = log.WithValues("view", s.name) }
}

// WithEquals sets the element equality used to validate the carried old
// elements of Remove and Update deltas. The default compares with
// reflect.DeepEqual.
func WithEquals[T any](equals func(T, T) bool) Option[T] {
	return func(s *Source[T]) { s.equals = equals }
}

// NewSource creates a source view holding a copy of elems.
func NewSource[T any](elems []T, opts ...Option[T]) *Source[T] {
	s := &Source[T]{
		View:   newView[T]("source", logr.Discard(), &chain{}),
		equals: func(a, b T) bool { return reflect.DeepEqual(a, b) },
	}
	s.elems = make([]T, len(elems))
	copy(s.elems, elems)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Apply applies one delta (or batch) to the source and propagates it through
// the chain. The delta is validated first and the application is atomic: on
// error neither the source nor any derived view changes. Errors raised while
// translating the delta in derived views are collected and returned joined.
func (s *Source[T]) Apply(d delta.Delta[T]) error {
	s.chain.mu.Lock()
	defer s.chain.mu.Unlock()

	next, err := delta.Apply(s.elems, d, s.equals)
	if err != nil {
		observeRejected()
		return fmt.Errorf("applying %s: %w", d, err)
	}
	s.elems = next
	observeApplied(d)

	s.log.V(4).Info("delta applied", "delta", d.String(), "length", len(s.elems))
	s.publish(d)

	if errs := s.chain.take(); len(errs) > 0 {
		return fmt.Errorf("translating %s: %w", d, errors.Join(errs...))
	}
	return nil
}
