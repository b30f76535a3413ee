package simulate

import "errors"

var (
	// ErrDimensionMismatch reports a vector or matrix whose length does not
	// match the offset table it is used with.
	ErrDimensionMismatch = errors.New("simulate: dimension mismatch")
	// ErrMissingBlock reports a required dictionary entry that is absent.
	ErrMissingBlock = errors.New("simulate: missing block")
)
