package pairmatch

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPairs is returned when an operation expects a non-empty pair
	// collection, e.g. flattening the result of an enumeration that
	// matched nothing. It indicates an empty result, not a malformed
	// specification.
	ErrNoPairs = errors.New("no pairs found")

	// ErrSamplingExhausted is returned when null-pair sampling failed to
	// find a valid partner within the configured number of tries. It
	// indicates the diffby constraint is too restrictive for the dataset,
	// not that the constraint is malformed.
	ErrSamplingExhausted = errors.New("sampling tries exhausted")

	// ErrInvalidSize is returned when a bulk sampling size is not positive.
	ErrInvalidSize = errors.New("size must be positive")
)

// errUnpaired signals that a drawn row has no valid partner under the given
// diffby constraint. It never escapes SampleNullPair: the retry loop catches
// it and redraws.
type errUnpaired struct {
	ID RowID
}

func (e *errUnpaired) Error() string {
	return fmt.Sprintf("row %d has no valid partner", e.ID)
}
