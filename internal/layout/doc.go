// Package layout resolves the offset tables that map every named block of a
// Problem Description to a contiguous range of one flat vector.
//
// There is one table per collection (variables, parameters, constraints).
// Groups are walked in declaration order and, inside a group, blocks in
// declaration order; each block takes the next rows*cols offsets. Every
// synthesizer reads offsets from the same table instance, which is what keeps
// independently generated routines consistent with each other.
//
// Within a block, element (row i, stage k) sits at Start + k*Rows + i, so each
// stage (column) of spline coefficients is contiguous.
package layout
