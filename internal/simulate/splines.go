package simulate

import (
	"fmt"
	"math"

	"github.com/specialistvlad/mpcexport/internal/synth"
	"gonum.org/v1/gonum/mat"
)

// KnotCrossed reports whether elapsed time t sits on a knot boundary of a
// horizon split into knotIntervals pieces, with the rounding the generated
// guard uses. Times just below a knot multiple count as on it.
func KnotCrossed(t, horizon float64, knotIntervals int) bool {
	if t <= 0 || knotIntervals <= 0 {
		return false
	}
	rounded := math.Round(t*synth.KnotTimeResolution) / synth.KnotTimeResolution
	return math.Abs(math.Remainder(rounded, horizon/float64(knotIntervals))) < synth.KnotTolerance
}

// TransformSplines replaces, for every target and stage, the stage's
// coefficients with their product by the target's transform matrix.
// variables is modified in place; on error it is left untouched.
func TransformSplines(targets []synth.SplineTarget, variables []float64) error {
	for _, s := range targets {
		e := s.Entry
		if len(s.Transform) != e.Rows {
			return fmt.Errorf("spline %s.%s: transform has %d rows, block has %d: %w",
				e.GroupLabel, e.Name, len(s.Transform), e.Rows, ErrDimensionMismatch)
		}
		for i, row := range s.Transform {
			if len(row) != e.Rows {
				return fmt.Errorf("spline %s.%s: transform row %d has %d entries, want %d: %w",
					e.GroupLabel, e.Name, i, len(row), e.Rows, ErrDimensionMismatch)
			}
		}
		if e.End() > len(variables) {
			return fmt.Errorf("spline %s.%s ends at %d, variables has %d entries: %w",
				e.GroupLabel, e.Name, e.End(), len(variables), ErrDimensionMismatch)
		}
	}

	for _, s := range targets {
		e := s.Entry
		m := mat.NewDense(e.Rows, e.Rows, flatten(s.Transform))
		out := mat.NewVecDense(e.Rows, nil)
		for k := 0; k < e.Cols; k++ {
			stage := variables[e.Offset(0, k):e.Offset(0, k+1)]
			out.MulVec(m, mat.NewVecDense(e.Rows, stage))
			copy(stage, out.RawVector().Data)
		}
	}
	return nil
}

// flatten lays a square matrix out row-major, as mat.NewDense expects.
func flatten(rows [][]float64) []float64 {
	data := make([]float64, 0, len(rows)*len(rows))
	for _, row := range rows {
		data = append(data, row...)
	}
	return data
}
