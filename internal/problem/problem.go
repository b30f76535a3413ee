// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Problem, Group and Block structures.
//
// Why slices instead of maps for groups and blocks?
//
// Offsets in the generated runtime are hard-coded literals, so every consumer
// must walk groups and blocks in exactly the same order on every run. Slices
// preserve declaration order; maps would not.
package problem

import (
	"github.com/specialistvlad/mpcexport/internal/predicate"
)

// Point2PointKind names the point-to-point problem variant.
type Point2PointKind string

const (
	// FixedTime is a fixed-horizon point-to-point problem.
	FixedTime Point2PointKind = "fixedt"
	// FreeTime is a free-horizon point-to-point problem.
	FreeTime Point2PointKind = "freet"
)

// Problem is the root of a Problem Description.
type Problem struct {
	Groups []*Group

	NDim           int
	Tolerance      float64
	LinearSolver   string
	VehicleLabel   string
	P2PLabel       string
	ObstacleLabels []string
	Point2Point    Point2PointKind

	// HorizonTime is the nominal horizon length. The generated runtime reads
	// horizon_time at run time; this value only drives the reference executor.
	HorizonTime   float64
	KnotIntervals int
	// BasisLength is the initial size of the spline transform scratch vector.
	BasisLength int

	// Shutdown maps QualifiedName(group, constraint) to its predicate.
	Shutdown map[string]*predicate.Predicate

	Substitutes []Substitute
}

// Group owns the named blocks of one logical participant.
type Group struct {
	Label       string
	Variables   []*Block
	Parameters  []*Block
	Constraints []*Constraint
	Splines     map[string]*SplinePrimitive
}

// Block is a named, shaped numeric quantity.
type Block struct {
	Name string
	Rows int
	Cols int
}

// Size is the number of scalars in the block.
func (b *Block) Size() int {
	return b.Rows * b.Cols
}

// Constraint is a block with per-scalar bounds.
type Constraint struct {
	Block
	Lower []float64
	Upper []float64
}

// SplinePrimitive describes the basis behind a spline-backed variable.
type SplinePrimitive struct {
	BasisLength int
	// Transform is the square basis-change matrix applied after a knot
	// crossing. Nil when the spline has no initial transform.
	Transform [][]float64
}

// Substitute is an externally generated symbolic function the runtime loads.
type Substitute struct {
	Group string
	Name  string
}

// QualifiedName is the key under which a constraint's shutdown predicate is
// registered.
func QualifiedName(group, block string) string {
	return group + "." + block
}

// Variable returns the named variable of the group, if present.
func (g *Group) Variable(name string) (*Block, bool) {
	for _, v := range g.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return nil, false
}

// Group returns the group with the given label, if present.
func (p *Problem) Group(label string) (*Group, bool) {
	for _, g := range p.Groups {
		if g.Label == label {
			return g, true
		}
	}
	return nil, false
}

// ShutdownFor returns the predicate registered for a constraint, if any.
func (p *Problem) ShutdownFor(group, block string) (*predicate.Predicate, bool) {
	if p.Shutdown == nil {
		return nil, false
	}
	pred, ok := p.Shutdown[QualifiedName(group, block)]
	return pred, ok
}
