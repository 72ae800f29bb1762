package view

// indexTable is the shared bookkeeping for transforms whose result length
// differs from the source length (filter, flat-map). It holds one offset per
// source position plus a trailing sentinel: offsets[i] is the result position
// where source element i's expansion starts, offsets[srcLen] the result
// length. For filter the offsets are the cumulative count of elements passing
// the predicate, monotonically non-decreasing.
//
// The table is kept in sync with the current source and result lengths after
// every processed delta, before the next delta is processed.
type indexTable struct {
	name    string
	offsets []int
}

// newIndexTable builds the table for a source of length srcLen by summing the
// per-element expansion widths.
func newIndexTable(name string, srcLen int, width func(i int) int) *indexTable {
	offsets := make([]int, srcLen+1)
	for i := 0; i < srcLen; i++ {
		offsets[i+1] = offsets[i] + width(i)
	}
	return &indexTable{name: name, offsets: offsets}
}

func (t *indexTable) srcLen() int { return len(t.offsets) - 1 }

// start returns the result position corresponding to source position n.
func (t *indexTable) start(n int) int { return t.offsets[n] }

// width returns the number of result elements source position n expands to.
func (t *indexTable) width(n int) int { return t.offsets[n+1] - t.offsets[n] }

// include records a source insertion at n expanding to width result elements
// and returns the result position where the expansion starts.
func (t *indexTable) include(n, width int) (int, error) {
	if n < 0 || n > t.srcLen() {
		return 0, newTableMismatchError(t.name, n, t.srcLen())
	}
	start := t.offsets[n]
	t.offsets = append(t.offsets, 0)
	copy(t.offsets[n+2:], t.offsets[n+1:])
	t.offsets[n+1] = start + width
	for i := n + 2; i < len(t.offsets); i++ {
		t.offsets[i] += width
	}
	return start, nil
}

// remove records a source removal at n and returns the start position and
// width of the expansion that must disappear from the result.
func (t *indexTable) remove(n int) (int, int, error) {
	if n < 0 || n >= t.srcLen() {
		return 0, 0, newTableMismatchError(t.name, n, t.srcLen())
	}
	start, width := t.offsets[n], t.width(n)
	t.offsets = append(t.offsets[:n+1], t.offsets[n+2:]...)
	for i := n + 1; i < len(t.offsets); i++ {
		t.offsets[i] -= width
	}
	return start, width, nil
}

// update records a source update at n whose expansion width changes to
// newWidth, returning the start position and the previous width.
func (t *indexTable) update(n, newWidth int) (int, int, error) {
	if n < 0 || n >= t.srcLen() {
		return 0, 0, newTableMismatchError(t.name, n, t.srcLen())
	}
	start, oldWidth := t.offsets[n], t.width(n)
	for i := n + 1; i < len(t.offsets); i++ {
		t.offsets[i] += newWidth - oldWidth
	}
	return start, oldWidth, nil
}
