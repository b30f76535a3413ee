// Package synth turns a Problem Description and its offset tables into the
// named artifacts the runtime templates expect: static defines, vector
// packing and unpacking, time-dependent bound switching, spline re-basing
// after a knot crossing, substitute-function loading and build-option echoes.
//
// Every synthesizer reads offsets from the same layout.Tables, resolved once
// by Synthesize before any of them runs.
package synth
