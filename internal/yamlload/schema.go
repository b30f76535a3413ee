package yamlload

import (
	"fmt"

	"github.com/specialistvlad/mpcexport/internal/problem"
	"gopkg.in/yaml.v3"
)

type document struct {
	Problem     *settings       `yaml:"problem"`
	Groups      []groupDoc      `yaml:"groups"`
	Substitutes []substituteDoc `yaml:"substitutes"`
}

type settings struct {
	NDim           *int     `yaml:"n_dim"`
	Tolerance      *float64 `yaml:"tolerance"`
	LinearSolver   *string  `yaml:"linear_solver"`
	HorizonTime    *float64 `yaml:"horizon_time"`
	KnotIntervals  *int     `yaml:"knot_intervals"`
	BasisLength    *int     `yaml:"basis_length"`
	Point2Point    *string  `yaml:"point2point"`
	VehicleLabel   *string  `yaml:"vehicle_label"`
	P2PLabel       *string  `yaml:"p2p_label"`
	ObstacleLabels []string `yaml:"obstacle_labels"`
}

type groupDoc struct {
	Label       string          `yaml:"label"`
	Variables   []shapeDoc      `yaml:"variables"`
	Parameters  []shapeDoc      `yaml:"parameters"`
	Constraints []constraintDoc `yaml:"constraints"`
	Splines     []splineDoc     `yaml:"splines"`
}

type shapeDoc struct {
	Name string `yaml:"name"`
	Rows *int   `yaml:"rows"`
	Cols *int   `yaml:"cols"`
}

type constraintDoc struct {
	Name     string  `yaml:"name"`
	Rows     *int    `yaml:"rows"`
	Cols     *int    `yaml:"cols"`
	Lower    []bound `yaml:"lower"`
	Upper    []bound `yaml:"upper"`
	Shutdown string  `yaml:"shutdown"`
}

type splineDoc struct {
	Name        string      `yaml:"name"`
	BasisLength int         `yaml:"basis_length"`
	Transform   [][]float64 `yaml:"transform"`
}

type substituteDoc struct {
	Group string `yaml:"group"`
	Name  string `yaml:"name"`
}

// bound is a number, a YAML infinity (.inf, -.inf) or one of the strings
// accepted by problem.ParseBound.
type bound float64

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *bound) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: bound must be a scalar", node.Line)
	}
	if node.ShortTag() == "!!str" {
		v, err := problem.ParseBound(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*b = bound(v)
		return nil
	}
	var v float64
	if err := node.Decode(&v); err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*b = bound(v)
	return nil
}

func floats(bs []bound) []float64 {
	if bs == nil {
		return nil
	}
	out := make([]float64, len(bs))
	for i, b := range bs {
		out[i] = float64(b)
	}
	return out
}
