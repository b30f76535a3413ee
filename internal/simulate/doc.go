// Package simulate executes the semantics of the synthesized runtime in Go.
//
// Every function here mirrors one generated routine and reads the same
// offset tables the synthesizers read, so a disagreement between the two
// shows up as a failed self-check before any file is written.
package simulate
