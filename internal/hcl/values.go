package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/mpcexport/internal/problem"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// matrixType is what a transform attribute must convert to.
var matrixType = cty.List(cty.List(cty.Number))

// staticValue evaluates an expression without any variables or functions.
func staticValue(expr hcl.Expression) (cty.Value, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	if val.IsNull() || !val.IsWhollyKnown() {
		return cty.NilVal, fmt.Errorf("%s: value must be known and not null", expr.Range().String())
	}
	return val, nil
}

// decodeBounds reads a list of bounds. Elements are numbers or one of the
// strings accepted by problem.ParseBound.
func decodeBounds(expr hcl.Expression) ([]float64, error) {
	val, err := staticValue(expr)
	if err != nil {
		return nil, err
	}
	ty := val.Type()
	if !ty.IsTupleType() && !ty.IsListType() {
		return nil, fmt.Errorf("%s: want a list of bounds, got %s", expr.Range().String(), ty.FriendlyName())
	}

	out := make([]float64, 0, val.LengthInt())
	for it := val.ElementIterator(); it.Next(); {
		idx, elem := it.Element()
		if elem.IsNull() {
			return nil, fmt.Errorf("%s: bound %s is null", expr.Range().String(), idx.AsBigFloat().String())
		}
		switch {
		case elem.Type().Equals(cty.Number):
			var f float64
			if err := gocty.FromCtyValue(elem, &f); err != nil {
				return nil, fmt.Errorf("%s: %w", expr.Range().String(), err)
			}
			out = append(out, f)
		case elem.Type().Equals(cty.String):
			f, err := problem.ParseBound(elem.AsString())
			if err != nil {
				return nil, fmt.Errorf("%s: %w", expr.Range().String(), err)
			}
			out = append(out, f)
		default:
			return nil, fmt.Errorf("%s: bound must be a number or string, got %s", expr.Range().String(), elem.Type().FriendlyName())
		}
	}
	return out, nil
}

// decodeMatrix reads a list of numeric rows.
func decodeMatrix(expr hcl.Expression) ([][]float64, error) {
	val, err := staticValue(expr)
	if err != nil {
		return nil, err
	}
	conv, err := convert.Convert(val, matrixType)
	if err != nil {
		return nil, fmt.Errorf("%s: want a list of numeric rows: %w", expr.Range().String(), err)
	}
	var m [][]float64
	if err := gocty.FromCtyValue(conv, &m); err != nil {
		return nil, fmt.Errorf("%s: %w", expr.Range().String(), err)
	}
	return m, nil
}
