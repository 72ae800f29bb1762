// Package view implements incremental transformed views over ordered
// sequences. A view wraps an underlying materialized sequence and keeps it
// synchronized with a source as the source mutates: each source mutation is
// described as a typed delta (see pkg/delta), and every transform stage
// translates incoming deltas into the equivalent deltas on its own output
// instead of recomputing the output from scratch.
//
// Key components:
//   - Source: the root of a transformation chain, mutated via Apply.
//   - View: read access by index/length/iteration plus a lazily created
//     delta publication point.
//   - Transform builders: Map, Filter, FlatMap, Slice, Take, Drop,
//     TakeWhile, DropWhile, Append. Each returns a new view wired to
//     receive and translate the parent's deltas, with an eagerly computed
//     initial state.
//   - Index-tracked machinery for length-changing transforms (filter,
//     flat-map) and prefix-boundary tracking for take-while/drop-while.
//
// Deltas are fully processed through the whole chain, one at a time, under a
// single chain-wide guard: a view's state is mutated only by its own delta
// processing, and no two deltas are ever in flight concurrently. Consumers at
// the tail observe a low-cardinality stream of deltas describing exactly how
// their view must change.
//
// Example usage:
//
//	src := view.NewSource([]int{1, 2, 3})
//	odd := view.Filter(src.View, func(n int) bool { return n%2 == 1 })
//	err := src.Apply(delta.Include(1, 10))
package view
