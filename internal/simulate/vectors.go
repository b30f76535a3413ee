package simulate

import (
	"fmt"

	"github.com/specialistvlad/mpcexport/internal/layout"
)

// Dict is the two-level name-keyed dictionary the runtime exchanges with its
// caller: group label, then block name, then the block's stage-contiguous
// values.
type Dict map[string]map[string][]float64

// Set stores a block's values, creating the group as needed.
func (d Dict) Set(group, block string, values []float64) {
	if d[group] == nil {
		d[group] = make(map[string][]float64)
	}
	d[group][block] = values
}

// Get returns a block's values, if present.
func (d Dict) Get(group, block string) ([]float64, bool) {
	g, ok := d[group]
	if !ok {
		return nil, false
	}
	v, ok := g[block]
	return v, ok
}

// PackParameters builds par_vect from par_dict. Every parameter block is
// required.
func PackParameters(params *layout.Table, dict Dict) ([]float64, error) {
	vect := make([]float64, params.Size())
	for _, e := range params.Entries() {
		src, ok := dict.Get(e.GroupLabel, e.Name)
		if !ok {
			return nil, fmt.Errorf("parameter %s.%s: %w", e.GroupLabel, e.Name, ErrMissingBlock)
		}
		if err := copyInto(vect, src, e); err != nil {
			return nil, fmt.Errorf("parameter %s.%s: %w", e.GroupLabel, e.Name, err)
		}
	}
	return vect, nil
}

// PackVariables copies var_dict into var_vect. Groups and blocks absent
// from the dictionary are skipped and leave their range of vect untouched.
func PackVariables(vars *layout.Table, dict Dict, vect []float64) error {
	if len(vect) != vars.Size() {
		return fmt.Errorf("var_vect has %d entries, want %d: %w", len(vect), vars.Size(), ErrDimensionMismatch)
	}
	for _, e := range vars.Entries() {
		src, ok := dict.Get(e.GroupLabel, e.Name)
		if !ok {
			continue
		}
		if err := copyInto(vect, src, e); err != nil {
			return fmt.Errorf("variable %s.%s: %w", e.GroupLabel, e.Name, err)
		}
	}
	return nil
}

// UnpackVariables rebuilds var_dict from var_vect, one fresh slice per
// block.
func UnpackVariables(vars *layout.Table, vect []float64) (Dict, error) {
	if len(vect) != vars.Size() {
		return nil, fmt.Errorf("var_vect has %d entries, want %d: %w", len(vect), vars.Size(), ErrDimensionMismatch)
	}
	dict := make(Dict)
	for _, e := range vars.Entries() {
		values := make([]float64, e.Size())
		copy(values, vect[e.Start:e.End()])
		dict.Set(e.GroupLabel, e.Name, values)
	}
	return dict, nil
}

func copyInto(dst, src []float64, e layout.Entry) error {
	if len(src) < e.Size() {
		return fmt.Errorf("%d values for %d scalars: %w", len(src), e.Size(), ErrDimensionMismatch)
	}
	copy(dst[e.Start:e.End()], src[:e.Size()])
	return nil
}
