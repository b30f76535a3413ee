// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package problem

import "context"

// Loader is the interface for a format-specific Problem Description loader.
type Loader interface {
	// Load reads every problem file found under the given paths and merges
	// them, in lexical path order, into one validated Problem.
	Load(ctx context.Context, paths ...string) (*Problem, error)
}
