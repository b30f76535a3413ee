// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package problem

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Defaults for settings a Problem Description may leave out.
const (
	DefaultNDim         = 2
	DefaultTolerance    = 1e-3
	DefaultLinearSolver = "mumps"
)

// ApplyDefaults fills unset solver settings. An unset BasisLength becomes
// the longest basis of any spline primitive.
func (p *Problem) ApplyDefaults() {
	if p.NDim == 0 {
		p.NDim = DefaultNDim
	}
	if p.Tolerance == 0 {
		p.Tolerance = DefaultTolerance
	}
	if p.LinearSolver == "" {
		p.LinearSolver = DefaultLinearSolver
	}
	if p.Point2Point == "" {
		p.Point2Point = FixedTime
	}
	if p.BasisLength == 0 {
		for _, g := range p.Groups {
			for _, s := range g.Splines {
				if s != nil && s.BasisLength > p.BasisLength {
					p.BasisLength = s.BasisLength
				}
			}
		}
	}
	if p.ObstacleLabels == nil {
		p.ObstacleLabels = []string{}
	}
}

// ParseBound parses the textual spelling of a bound: "inf", "+inf" or
// "-inf" for an infinite bound, or any number strconv accepts. NaN is not a bound.
func ParseBound(s string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inf", "+inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) {
		return 0, fmt.Errorf("invalid bound %q: want a number, \"inf\", \"+inf\" or \"-inf\"", s)
	}
	return v, nil
}
