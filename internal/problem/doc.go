// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package problem provides the format-agnostic representation of an
// already-built receding-horizon motion-planning problem, as seen by the
// exporter.
//
// # Core Concepts
//
//   - Problem: the root snapshot. It owns the groups in declaration order plus
//     solver metadata (tolerance, linear solver, labels, time-handling kind).
//
//   - Group: a logical owner such as one vehicle. It owns three independent
//     collections of named blocks (variables, parameters, constraints) and a
//     map of spline primitives for its spline-backed variables.
//
//   - Block: a named, shaped numeric quantity. Constraints additionally carry
//     per-scalar lower and upper bounds.
//
// Why a separate problem package?
//
// Loaders for different file formats (HCL, YAML) all translate into this one
// model, and every synthesizer reads only from it. The model is never mutated
// after loading; the exporter derives offset tables and text artifacts from it.
package problem
