package view

import (
	"fmt"

	"github.com/incrseq/incrseq/pkg/delta"
)

func newUnexpectedKindError(k delta.Kind) error {
	return fmt.Errorf("unexpected delta kind %s after flattening", k)
}

func newTableMismatchError(name string, index, srcLen int) error {
	return fmt.Errorf("%w: source index %d on %s index table of length %d",
		delta.ErrIndexOutOfRange, index, name, srcLen)
}
