package codegen

import (
	"math"
	"strconv"
	"strings"
)

// Expr is a C++ expression.
type Expr interface {
	writeExpr(sb *strings.Builder)
}

// String renders an expression on its own.
func String(e Expr) string {
	var sb strings.Builder
	e.writeExpr(&sb)
	return sb.String()
}

// Ident is a bare identifier.
type Ident string

func (i Ident) writeExpr(sb *strings.Builder) { sb.WriteString(string(i)) }

// Int is an integer literal.
type Int int

func (i Int) writeExpr(sb *strings.Builder) { sb.WriteString(strconv.Itoa(int(i))) }

// Float is a floating-point literal. Infinities print as the runtime's INF macro.
type Float float64

func (f Float) writeExpr(sb *strings.Builder) { sb.WriteString(FormatFloat(float64(f))) }

// FormatFloat prints v in the shortest form that round-trips.
func FormatFloat(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "+INF"
	case math.IsInf(v, -1):
		return "-INF"
	case math.IsNaN(v):
		return "NAN"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Str is a double-quoted string literal.
type Str string

func (s Str) writeExpr(sb *strings.Builder) { sb.WriteString(strconv.Quote(string(s))) }

// Verbatim is an expression already rendered elsewhere, e.g. a predicate.
type Verbatim string

func (v Verbatim) writeExpr(sb *strings.Builder) { sb.WriteString(string(v)) }

// IndexExpr is base[index].
type IndexExpr struct {
	Base  Expr
	Index Expr
}

func (e IndexExpr) writeExpr(sb *strings.Builder) {
	e.Base.writeExpr(sb)
	sb.WriteByte('[')
	e.Index.writeExpr(sb)
	sb.WriteByte(']')
}

// Index builds base[i0][i1]...
func Index(base Expr, indices ...Expr) Expr {
	for _, i := range indices {
		base = IndexExpr{Base: base, Index: i}
	}
	return base
}

// Key builds base["k0"]["k1"]...
func Key(base Expr, keys ...string) Expr {
	for _, k := range keys {
		base = IndexExpr{Base: base, Index: Str(k)}
	}
	return base
}

// BinaryExpr is l op r without surrounding parentheses.
type BinaryExpr struct {
	L  Expr
	Op string
	R  Expr
}

func (e BinaryExpr) writeExpr(sb *strings.Builder) {
	e.L.writeExpr(sb)
	sb.WriteString(e.Op)
	e.R.writeExpr(sb)
}

// Plus builds l+r, dropping a literal zero offset.
func Plus(l Expr, r Expr) Expr {
	if i, ok := l.(Int); ok && i == 0 {
		return r
	}
	return BinaryExpr{L: l, Op: "+", R: r}
}

// Bin builds l op r with op printed as given, spaces included.
func Bin(l Expr, op string, r Expr) Expr {
	return BinaryExpr{L: l, Op: op, R: r}
}

// CallExpr is fn(args...).
type CallExpr struct {
	Fn   Expr
	Args []Expr
}

func (e CallExpr) writeExpr(sb *strings.Builder) {
	e.Fn.writeExpr(sb)
	sb.WriteByte('(')
	writeList(sb, e.Args, ", ")
	sb.WriteByte(')')
}

// Call builds fn(args...).
func Call(fn string, args ...Expr) Expr {
	return CallExpr{Fn: Ident(fn), Args: args}
}

// Method builds recv.name(args...).
func Method(recv Expr, name string, args ...Expr) Expr {
	return CallExpr{Fn: BinaryExpr{L: recv, Op: ".", R: Ident(name)}, Args: args}
}

// Paren wraps an expression in parentheses.
type Paren struct{ X Expr }

func (p Paren) writeExpr(sb *strings.Builder) {
	sb.WriteByte('(')
	p.X.writeExpr(sb)
	sb.WriteByte(')')
}

// Brace is an initializer list {a,b,c}.
type Brace []Expr

func (b Brace) writeExpr(sb *strings.Builder) {
	sb.WriteByte('{')
	writeList(sb, b, ",")
	sb.WriteByte('}')
}

// FloatList builds a Brace of Float literals.
func FloatList(vs []float64) Brace {
	b := make(Brace, len(vs))
	for i, v := range vs {
		b[i] = Float(v)
	}
	return b
}

// StrList builds a Brace of string literals.
func StrList(vs []string) Brace {
	b := make(Brace, len(vs))
	for i, v := range vs {
		b[i] = Str(v)
	}
	return b
}

// Matrix builds a nested Brace, one row per inner list.
func Matrix(rows [][]float64) Brace {
	b := make(Brace, len(rows))
	for i, r := range rows {
		b[i] = FloatList(r)
	}
	return b
}

func writeList(sb *strings.Builder, es []Expr, sep string) {
	for i, e := range es {
		if i > 0 {
			sb.WriteString(sep)
		}
		e.writeExpr(sb)
	}
}
