package codegen

import (
	"fmt"
	"strings"
)

// Stmt is a C++ statement.
type Stmt interface {
	writeStmt(w *writer)
}

type writer struct {
	sb    strings.Builder
	depth int
}

func (w *writer) line(format string, args ...any) {
	w.sb.WriteString(strings.Repeat("\t", w.depth))
	fmt.Fprintf(&w.sb, format, args...)
	w.sb.WriteByte('\n')
}

func (w *writer) block(body []Stmt) {
	w.depth++
	for _, s := range body {
		s.writeStmt(w)
	}
	w.depth--
}

// Assign is l = r;
type Assign struct {
	L, R Expr
}

func (s Assign) writeStmt(w *writer) { w.line("%s = %s;", String(s.L), String(s.R)) }

// AddAssign is l += r;
type AddAssign struct {
	L, R Expr
}

func (s AddAssign) writeStmt(w *writer) { w.line("%s += %s;", String(s.L), String(s.R)) }

// ExprStmt is an expression evaluated for its side effect.
type ExprStmt struct {
	X Expr
}

func (s ExprStmt) writeStmt(w *writer) { w.line("%s;", String(s.X)) }

// Decl declares a local variable, optionally with constructor arguments or
// an initializer.
type Decl struct {
	Type string
	Name string
	Args []Expr
	Init Expr
}

func (s Decl) writeStmt(w *writer) {
	if s.Init != nil {
		w.line("%s %s = %s;", s.Type, s.Name, String(s.Init))
		return
	}
	if len(s.Args) == 0 {
		w.line("%s %s;", s.Type, s.Name)
		return
	}
	var sb strings.Builder
	writeList(&sb, s.Args, ", ")
	w.line("%s %s(%s);", s.Type, s.Name, sb.String())
}

// For is a counted loop `for (int Var=0; Var<Count; Var++)`.
type For struct {
	Var   string
	Count Expr
	Body  []Stmt
}

func (s For) writeStmt(w *writer) {
	w.line("for (int %s=0; %s<%s; %s++){", s.Var, s.Var, String(s.Count), s.Var)
	w.block(s.Body)
	w.line("}")
}

// If is a conditional with an optional else branch.
type If struct {
	Cond Expr
	Then []Stmt
	Else []Stmt
}

func (s If) writeStmt(w *writer) {
	w.line("if (%s){", String(s.Cond))
	w.block(s.Then)
	if len(s.Else) > 0 {
		w.line("}else{")
		w.block(s.Else)
	}
	w.line("}")
}
