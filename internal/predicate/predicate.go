// Package predicate holds time-dependent shutdown conditions as structured
// boolean expressions over elapsed time.
//
// Predicates are written in HCL expression syntax (`t > 2 && t < 4`) and kept
// as a syntax tree. The tree can be evaluated for a concrete time with cty, or
// emitted as a C++ expression with the time variable renamed, without any
// textual rewriting of the source.
package predicate

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// TimeVariable is the only variable a predicate may reference.
const TimeVariable = "t"

// RuntimeTimeVariable is the name elapsed time has in the generated runtime.
const RuntimeTimeVariable = "current_time"

// functions lists the calls a predicate may make, with their cty
// implementation for evaluation and their C++ spelling for emission.
var functions = map[string]struct {
	impl function.Function
	cpp  string
}{
	"abs":   {stdlib.AbsoluteFunc, "fabs"},
	"min":   {stdlib.MinFunc, "fmin"},
	"max":   {stdlib.MaxFunc, "fmax"},
	"floor": {stdlib.FloorFunc, "floor"},
	"ceil":  {stdlib.CeilFunc, "ceil"},
}

// Predicate is a parsed shutdown condition.
type Predicate struct {
	src  string
	expr hclsyntax.Expression
}

// Parse parses src as an HCL expression and validates that it only uses the
// supported operators, functions and the time variable.
func Parse(src string) (*Predicate, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), "predicate", hcl.Pos{Line: 1, Column: 1, Byte: 0})
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse predicate %q: %w", src, diags)
	}
	return newPredicate(strings.TrimSpace(src), expr)
}

// FromExpression wraps an expression decoded from an HCL body. The source
// text is recovered from the file bytes when available.
func FromExpression(expr hcl.Expression, fileBytes []byte) (*Predicate, error) {
	syn, ok := expr.(hclsyntax.Expression)
	if !ok {
		return nil, fmt.Errorf("predicate must be written in native HCL syntax, got %T", expr)
	}
	rng := expr.Range()
	src := ""
	if fileBytes != nil && rng.End.Byte <= len(fileBytes) && rng.Start.Byte < rng.End.Byte {
		src = string(rng.SliceBytes(fileBytes))
	}
	p, err := newPredicate(strings.TrimSpace(src), syn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rng.String(), err)
	}
	return p, nil
}

func newPredicate(src string, expr hclsyntax.Expression) (*Predicate, error) {
	if err := validate(expr); err != nil {
		return nil, err
	}
	if !isCondition(expr) {
		return nil, fmt.Errorf("predicate must be a boolean condition, such as a comparison of %q", TimeVariable)
	}
	p := &Predicate{src: src, expr: expr}
	if p.src == "" {
		rendered, err := p.Render(TimeVariable)
		if err != nil {
			return nil, err
		}
		p.src = rendered
	}
	return p, nil
}

// String returns the predicate's source text.
func (p *Predicate) String() string {
	return p.src
}

// Eval evaluates the predicate with the time variable bound to t.
func (p *Predicate) Eval(t float64) (bool, error) {
	funcs := make(map[string]function.Function, len(functions))
	for name, f := range functions {
		funcs[name] = f.impl
	}
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{TimeVariable: cty.NumberFloatVal(t)},
		Functions: funcs,
	}
	val, diags := p.expr.Value(evalCtx)
	if diags.HasErrors() {
		return false, fmt.Errorf("failed to evaluate predicate %q: %w", p.src, diags)
	}
	if val.IsNull() || !val.IsKnown() || !val.Type().Equals(cty.Bool) {
		return false, fmt.Errorf("predicate %q does not evaluate to a bool, got %s", p.src, val.Type().FriendlyName())
	}
	return val.True(), nil
}

var conditionOps = map[*hclsyntax.Operation]bool{
	hclsyntax.OpLogicalOr:          true,
	hclsyntax.OpLogicalAnd:         true,
	hclsyntax.OpEqual:              true,
	hclsyntax.OpNotEqual:           true,
	hclsyntax.OpGreaterThan:        true,
	hclsyntax.OpGreaterThanOrEqual: true,
	hclsyntax.OpLessThan:           true,
	hclsyntax.OpLessThanOrEqual:    true,
}

// isCondition reports whether expr yields a bool. The time variable and every
// supported function are numeric.
func isCondition(expr hclsyntax.Expression) bool {
	switch e := expr.(type) {
	case *hclsyntax.LiteralValueExpr:
		return e.Val.Type().Equals(cty.Bool)
	case *hclsyntax.ParenthesesExpr:
		return isCondition(e.Expression)
	case *hclsyntax.UnaryOpExpr:
		return e.Op == hclsyntax.OpLogicalNot
	case *hclsyntax.BinaryOpExpr:
		return conditionOps[e.Op]
	case *hclsyntax.ConditionalExpr:
		return isCondition(e.TrueResult) && isCondition(e.FalseResult)
	default:
		return false
	}
}

// validate walks the tree and rejects anything Render cannot emit.
func validate(expr hclsyntax.Expression) error {
	switch e := expr.(type) {
	case *hclsyntax.LiteralValueExpr:
		if !e.Val.Type().Equals(cty.Number) && !e.Val.Type().Equals(cty.Bool) {
			return fmt.Errorf("unsupported literal of type %s", e.Val.Type().FriendlyName())
		}
		return nil
	case *hclsyntax.ScopeTraversalExpr:
		if len(e.Traversal) != 1 || e.Traversal.RootName() != TimeVariable {
			return fmt.Errorf("predicate may only reference %q, found %q", TimeVariable, e.Traversal.RootName())
		}
		return nil
	case *hclsyntax.ParenthesesExpr:
		return validate(e.Expression)
	case *hclsyntax.UnaryOpExpr:
		if _, ok := unaryOps[e.Op]; !ok {
			return fmt.Errorf("unsupported unary operator")
		}
		return validate(e.Val)
	case *hclsyntax.BinaryOpExpr:
		if _, ok := binaryOps[e.Op]; !ok {
			return fmt.Errorf("unsupported binary operator")
		}
		if err := validate(e.LHS); err != nil {
			return err
		}
		return validate(e.RHS)
	case *hclsyntax.ConditionalExpr:
		for _, sub := range []hclsyntax.Expression{e.Condition, e.TrueResult, e.FalseResult} {
			if err := validate(sub); err != nil {
				return err
			}
		}
		return nil
	case *hclsyntax.FunctionCallExpr:
		if _, ok := functions[e.Name]; !ok {
			return fmt.Errorf("unsupported function %q", e.Name)
		}
		if len(e.Args) == 0 || e.ExpandFinal {
			return fmt.Errorf("function %q needs explicit arguments", e.Name)
		}
		for _, arg := range e.Args {
			if err := validate(arg); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported expression %T", expr)
	}
}
