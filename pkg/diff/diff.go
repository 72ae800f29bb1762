// Package diff computes minimal edit scripts between ordered sequences as
// delta sequences, using a longest-common-subsequence table. The routine is
// intentionally O(n*m) in time and space: it serves one-shot baseline and
// snapshot cases (a consumer attaching mid-stream, materializing a view from
// empty), never the steady-state per-mutation path.
package diff

import (
	"github.com/incrseq/incrseq/pkg/delta"
)

// Diff returns an ordered edit script of Remove and Include deltas that
// transforms a into b under the given equality. Replacement is always
// expressed as remove plus include; no Update is emitted. When several
// minimal scripts exist the back-tracking deterministically keeps matched
// elements at their lowest source-relative order.
//
// The script is sequential: it applies member by member, each index already
// shifted by the edits before it. Do not wrap it in a Batch, whose members
// reference pre-batch indices instead.
func Diff[T any](a, b []T, equals func(T, T) bool) []delta.Delta[T] {
	// lcs[i][j] = length of the LCS of a[i:] and b[j:].
	lcs := make([][]int, len(a)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if equals(a[i], b[j]) {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	var script []delta.Delta[T]
	i, j, pos := 0, 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case equals(a[i], b[j]) && lcs[i][j] == lcs[i+1][j+1]+1:
			i++
			j++
			pos++
		case lcs[i+1][j] >= lcs[i][j+1]:
			// Dropping a[i] preserves the LCS: remove it at the current
			// (already shifted) position.
			script = append(script, delta.Remove(pos, a[i]))
			i++
		default:
			script = append(script, delta.Include(pos, b[j]))
			j++
			pos++
		}
	}
	for ; i < len(a); i++ {
		script = append(script, delta.Remove(pos, a[i]))
	}
	for ; j < len(b); j++ {
		script = append(script, delta.Include(pos, b[j]))
		pos++
	}
	return script
}

// Baseline returns the edit script from the empty sequence to s: one Include
// per element, in order. This is the catch-up script handed to late
// subscribers.
func Baseline[T any](s []T) []delta.Delta[T] {
	script := make([]delta.Delta[T], len(s))
	for i, e := range s {
		script[i] = delta.Include(i, e)
	}
	return script
}
