// Package codegen is a small typed representation of the C++ fragments the
// exporter splices into runtime templates, and the formatter that prints them.
//
// Synthesizers build Stmt and Expr values instead of concatenating strings;
// Render turns them into tab-indented source in one place, so every fragment
// shares the same layout and each synthesizer can be tested on structure.
package codegen
