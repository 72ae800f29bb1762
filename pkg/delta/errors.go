package delta

import (
	"errors"
	"fmt"
)

// Error taxonomy for delta application. All failures are local and
// synchronous: application either succeeds completely or reports one of these
// without partially applying anything.
var (
	// ErrIndexOutOfRange marks a delta referencing a position outside the
	// current bounds of the target sequence.
	ErrIndexOutOfRange = errors.New("delta index out of range")

	// ErrInconsistentDelta marks a Remove or Update whose carried old element
	// does not match the element actually at that position. This indicates a
	// bug in the delta producer.
	ErrInconsistentDelta = errors.New("inconsistent delta")

	// ErrMalformedBatch marks an empty batch (or empty nested batch), treated
	// as a programming error rather than a recoverable condition.
	ErrMalformedBatch = errors.New("malformed batch")
)

func newIndexOutOfRangeError[T any](d Delta[T], length int) error {
	return fmt.Errorf("%w: %s on sequence of length %d", ErrIndexOutOfRange, d, length)
}

func newInconsistentDeltaError[T any](d Delta[T], actual T) error {
	return fmt.Errorf("%w: %s does not match element %v", ErrInconsistentDelta, d, actual)
}

func newMalformedBatchError(message string) error {
	return fmt.Errorf("%w: %s", ErrMalformedBatch, message)
}
