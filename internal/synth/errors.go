package synth

import (
	"fmt"

	"github.com/specialistvlad/mpcexport/internal/problem"
)

// UnsupportedProblemKindError reports a point-to-point variant that is
// neither fixed-time nor free-time.
type UnsupportedProblemKindError struct {
	Kind problem.Point2PointKind
}

// Error implements the error interface.
func (e *UnsupportedProblemKindError) Error() string {
	return fmt.Sprintf("point-to-point problem kind %q is not supported for export (want %q or %q)",
		string(e.Kind), problem.FixedTime, problem.FreeTime)
}

// UnsupportedConfigurationError reports a feature the exporter cannot
// generate correct code for.
type UnsupportedConfigurationError struct {
	Feature string
	Reason  string
}

// Error implements the error interface.
func (e *UnsupportedConfigurationError) Error() string {
	return fmt.Sprintf("unsupported configuration for %s: %s", e.Feature, e.Reason)
}
