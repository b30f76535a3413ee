// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package problem

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidProblem is wrapped by every error Validate returns.
var ErrInvalidProblem = errors.New("invalid problem description")

// Validate checks the structural consistency loaders cannot express in their
// schemas: unique names, bound lengths and square transform matrices.
// Non-positive block dimensions are left to the offset resolver.
func (p *Problem) Validate() error {
	labels := make(map[string]struct{}, len(p.Groups))
	for _, g := range p.Groups {
		if g.Label == "" {
			return fmt.Errorf("%w: group with empty label", ErrInvalidProblem)
		}
		if _, dup := labels[g.Label]; dup {
			return fmt.Errorf("%w: duplicate group %q", ErrInvalidProblem, g.Label)
		}
		labels[g.Label] = struct{}{}

		if err := uniqueBlocks(g.Label, "variable", g.Variables); err != nil {
			return err
		}
		if err := uniqueBlocks(g.Label, "parameter", g.Parameters); err != nil {
			return err
		}
		seen := make(map[string]struct{}, len(g.Constraints))
		for _, c := range g.Constraints {
			if _, dup := seen[c.Name]; dup {
				return fmt.Errorf("%w: duplicate constraint %q in group %q", ErrInvalidProblem, c.Name, g.Label)
			}
			seen[c.Name] = struct{}{}
			if c.Rows > 0 && c.Cols > 0 && (len(c.Lower) != c.Size() || len(c.Upper) != c.Size()) {
				return fmt.Errorf("%w: constraint %q in group %q has %d scalars but %d lower and %d upper bounds",
					ErrInvalidProblem, c.Name, g.Label, c.Size(), len(c.Lower), len(c.Upper))
			}
			if err := boundsAreNumbers(g.Label, c); err != nil {
				return err
			}
		}

		for name, spl := range g.Splines {
			if spl == nil || spl.Transform == nil {
				continue
			}
			for i, row := range spl.Transform {
				if len(row) != len(spl.Transform) {
					return fmt.Errorf("%w: spline %q in group %q has a non-square transform (row %d has %d entries, want %d)",
						ErrInvalidProblem, name, g.Label, i, len(row), len(spl.Transform))
				}
			}
		}
	}

	for key := range p.Shutdown {
		if !p.hasConstraint(key) {
			return fmt.Errorf("%w: shutdown predicate registered for unknown constraint %q", ErrInvalidProblem, key)
		}
	}
	return nil
}

func boundsAreNumbers(group string, c *Constraint) error {
	for side, bounds := range map[string][]float64{"lower": c.Lower, "upper": c.Upper} {
		for i, v := range bounds {
			if math.IsNaN(v) {
				return fmt.Errorf("%w: %s bound %d of constraint %q in group %q is NaN", ErrInvalidProblem, side, i, c.Name, group)
			}
		}
	}
	return nil
}

func uniqueBlocks(group, kind string, blocks []*Block) error {
	seen := make(map[string]struct{}, len(blocks))
	for _, b := range blocks {
		if b.Name == "" {
			return fmt.Errorf("%w: %s with empty name in group %q", ErrInvalidProblem, kind, group)
		}
		if _, dup := seen[b.Name]; dup {
			return fmt.Errorf("%w: duplicate %s %q in group %q", ErrInvalidProblem, kind, b.Name, group)
		}
		seen[b.Name] = struct{}{}
	}
	return nil
}

func (p *Problem) hasConstraint(key string) bool {
	for _, g := range p.Groups {
		for _, c := range g.Constraints {
			if QualifiedName(g.Label, c.Name) == key {
				return true
			}
		}
	}
	return false
}
