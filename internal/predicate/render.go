package predicate

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

var unaryOps = map[*hclsyntax.Operation]string{
	hclsyntax.OpLogicalNot: "!",
	hclsyntax.OpNegate:     "-",
}

var binaryOps = map[*hclsyntax.Operation]string{
	hclsyntax.OpLogicalOr:          "||",
	hclsyntax.OpLogicalAnd:         "&&",
	hclsyntax.OpEqual:              "==",
	hclsyntax.OpNotEqual:           "!=",
	hclsyntax.OpGreaterThan:        ">",
	hclsyntax.OpGreaterThanOrEqual: ">=",
	hclsyntax.OpLessThan:           "<",
	hclsyntax.OpLessThanOrEqual:    "<=",
	hclsyntax.OpAdd:                "+",
	hclsyntax.OpSubtract:           "-",
	hclsyntax.OpMultiply:           "*",
	hclsyntax.OpDivide:             "/",
	hclsyntax.OpModulo:             "%",
}

// Render emits the predicate as a C++ boolean expression, spelling the time
// variable as timeVar.
func (p *Predicate) Render(timeVar string) (string, error) {
	var sb strings.Builder
	if err := emit(&sb, p.expr, timeVar, true); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func emit(sb *strings.Builder, expr hclsyntax.Expression, timeVar string, top bool) error {
	switch e := expr.(type) {
	case *hclsyntax.LiteralValueExpr:
		return emitLiteral(sb, e.Val)
	case *hclsyntax.ScopeTraversalExpr:
		sb.WriteString(timeVar)
		return nil
	case *hclsyntax.ParenthesesExpr:
		return emit(sb, e.Expression, timeVar, top)
	case *hclsyntax.UnaryOpExpr:
		var operand strings.Builder
		if err := emit(&operand, e.Val, timeVar, false); err != nil {
			return err
		}
		sb.WriteString(unaryOps[e.Op])
		// A leading sign would fuse into -- or -+ in C++.
		if strings.HasPrefix(operand.String(), "-") || strings.HasPrefix(operand.String(), "+") {
			sb.WriteString("(" + operand.String() + ")")
			return nil
		}
		sb.WriteString(operand.String())
		return nil
	case *hclsyntax.BinaryOpExpr:
		if e.Op == hclsyntax.OpModulo {
			return emitCall(sb, "fmod", []hclsyntax.Expression{e.LHS, e.RHS}, timeVar)
		}
		if !top {
			sb.WriteByte('(')
		}
		if err := emit(sb, e.LHS, timeVar, false); err != nil {
			return err
		}
		fmt.Fprintf(sb, " %s ", binaryOps[e.Op])
		if err := emit(sb, e.RHS, timeVar, false); err != nil {
			return err
		}
		if !top {
			sb.WriteByte(')')
		}
		return nil
	case *hclsyntax.ConditionalExpr:
		if !top {
			sb.WriteByte('(')
		}
		for i, sub := range []hclsyntax.Expression{e.Condition, e.TrueResult, e.FalseResult} {
			switch i {
			case 1:
				sb.WriteString(" ? ")
			case 2:
				sb.WriteString(" : ")
			}
			if err := emit(sb, sub, timeVar, false); err != nil {
				return err
			}
		}
		if !top {
			sb.WriteByte(')')
		}
		return nil
	case *hclsyntax.FunctionCallExpr:
		return emitCall(sb, functions[e.Name].cpp, e.Args, timeVar)
	default:
		return fmt.Errorf("cannot render expression %T", expr)
	}
}

// emitCall folds variadic min/max into nested binary C++ calls.
func emitCall(sb *strings.Builder, name string, args []hclsyntax.Expression, timeVar string) error {
	if len(args) > 2 {
		sb.WriteString(name + "(")
		if err := emit(sb, args[0], timeVar, true); err != nil {
			return err
		}
		sb.WriteString(", ")
		if err := emitCall(sb, name, args[1:], timeVar); err != nil {
			return err
		}
		sb.WriteByte(')')
		return nil
	}
	sb.WriteString(name + "(")
	for i, arg := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		if err := emit(sb, arg, timeVar, true); err != nil {
			return err
		}
	}
	sb.WriteByte(')')
	return nil
}

func emitLiteral(sb *strings.Builder, v cty.Value) error {
	switch {
	case v.Type().Equals(cty.Bool):
		sb.WriteString(strconv.FormatBool(v.True()))
	case v.Type().Equals(cty.Number):
		f, _ := v.AsBigFloat().Float64()
		if v.AsBigFloat().IsInt() && v.AsBigFloat().Cmp(big.NewFloat(1e15)) < 0 {
			// Integral literals keep a decimal point so C++ never does integer division.
			sb.WriteString(strconv.FormatFloat(f, 'f', 1, 64))
			return nil
		}
		sb.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	default:
		return fmt.Errorf("cannot render literal of type %s", v.Type().FriendlyName())
	}
	return nil
}
