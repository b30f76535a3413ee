package layout

import "fmt"

// UnsupportedShapeError reports a block whose shape cannot be laid out or
// does not match data attached to it.
type UnsupportedShapeError struct {
	Kind  Kind
	Group string
	Block string
	Rows  int
	Cols  int
	// Detail replaces the default reason when set.
	Detail string
}

// Error implements the error interface.
func (e *UnsupportedShapeError) Error() string {
	reason := "dimensions must be positive"
	if e.Detail != "" {
		reason = e.Detail
	}
	return fmt.Sprintf("unsupported shape %dx%d for %s block %q in group %q: %s",
		e.Rows, e.Cols, e.Kind, e.Block, e.Group, reason)
}
