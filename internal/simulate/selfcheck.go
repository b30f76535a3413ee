package simulate

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/mpcexport/internal/ctxlog"
	"github.com/specialistvlad/mpcexport/internal/layout"
	"github.com/specialistvlad/mpcexport/internal/problem"
	"github.com/specialistvlad/mpcexport/internal/synth"
)

// SelfCheck runs the resolved tables through the reference runtime and
// reports every inconsistency it finds: gaps or overlaps in a table, a
// pack/unpack round trip that loses values, bound arrays out of offset
// order, and bound switching that leaves a scalar in neither state.
func SelfCheck(ctx context.Context, p *problem.Problem, tables *layout.Tables) error {
	var errs []error
	for _, tbl := range []*layout.Table{tables.Variables, tables.Parameters, tables.Constraints} {
		if err := tbl.Verify(); err != nil {
			errs = append(errs, err)
		}
	}
	errs = append(errs, checkRoundTrip(tables.Variables))
	errs = append(errs, checkParameters(tables.Parameters))
	errs = append(errs, checkBounds(p, tables.Constraints))

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("self-check failed: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Self-check passed.",
		"n_var", tables.Variables.Size(), "n_par", tables.Parameters.Size(), "n_con", tables.Constraints.Size())
	return nil
}

// marked fills a dictionary so that scalar j of the flat vector holds j+1.
func marked(tbl *layout.Table) Dict {
	dict := make(Dict)
	for _, e := range tbl.Entries() {
		values := make([]float64, e.Size())
		for i := range values {
			values[i] = float64(e.Start + i + 1)
		}
		dict.Set(e.GroupLabel, e.Name, values)
	}
	return dict
}

func checkMarked(kind layout.Kind, vect []float64) error {
	for j, v := range vect {
		if v != float64(j+1) {
			return fmt.Errorf("%s vector: offset %d holds %g, want %d", kind, j, v, j+1)
		}
	}
	return nil
}

func checkRoundTrip(vars *layout.Table) error {
	in := marked(vars)
	vect := make([]float64, vars.Size())
	if err := PackVariables(vars, in, vect); err != nil {
		return err
	}
	if err := checkMarked(layout.Variables, vect); err != nil {
		return err
	}
	out, err := UnpackVariables(vars, vect)
	if err != nil {
		return err
	}
	if diff := cmp.Diff(in, out); diff != "" {
		return fmt.Errorf("variable round trip mismatch (-packed +unpacked):\n%s", diff)
	}
	return nil
}

func checkParameters(params *layout.Table) error {
	vect, err := PackParameters(params, marked(params))
	if err != nil {
		return err
	}
	return checkMarked(layout.Parameters, vect)
}

func checkBounds(p *problem.Problem, cons *layout.Table) error {
	lower, upper, err := synth.BoundArrays(p, cons)
	if err != nil {
		return err
	}
	lbg, ubg, err := DefaultBounds(p, cons)
	if err != nil {
		return err
	}
	if diff := cmp.Diff(lbg, lower); diff != "" {
		return fmt.Errorf("LBG_DEF out of offset order (-runtime +exported):\n%s", diff)
	}
	if diff := cmp.Diff(ubg, upper); diff != "" {
		return fmt.Errorf("UBG_DEF out of offset order (-runtime +exported):\n%s", diff)
	}

	for _, t := range []float64{0, p.HorizonTime / 2, p.HorizonTime} {
		if err := UpdateBounds(p, cons, t, lbg, ubg); err != nil {
			return err
		}
		for _, e := range cons.Entries() {
			c := p.Groups[e.Group].Constraints[e.Block]
			for i := 0; i < e.Size(); i++ {
				lo, up := lbg[e.Start+i], ubg[e.Start+i]
				relaxed := math.IsInf(lo, -1) && math.IsInf(up, 1)
				restored := lo == c.Lower[i] && up == c.Upper[i]
				if !relaxed && !restored {
					return fmt.Errorf("constraint %s.%s scalar %d at t=%g has bounds [%g, %g], neither relaxed nor declared",
						e.GroupLabel, e.Name, i, t, lo, up)
				}
			}
		}
	}
	return nil
}
