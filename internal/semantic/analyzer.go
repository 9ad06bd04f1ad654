// Package semantic performs a best-effort static pass over an Axon program
// before it reaches the compiler: Axon is dynamically scoped and names are
// genuinely resolved at run time (see internal/vm), so this package can
// only ever produce warnings, never hard type errors. It collects
// assigned/used names per scope and flags what's statically detectable
// without blocking on anything genuinely dynamic, covering every
// statement kind (if/while/for/fn/return/break/continue), not just
// let and print.
package semantic

import (
	"fmt"

	"github.com/axon-lang/axon/internal/ast"
	"github.com/axon-lang/axon/internal/token"
)

// Severity classifies a Diagnostic. Nothing this package produces is fatal
// on its own — callers (the CLI, the REPL) decide whether to print
// warnings and continue or to treat them as errors.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityInfo
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "info"
}

// Diagnostic is one finding: a position, a message, and how seriously to
// take it.
type Diagnostic struct {
	Severity Severity
	Message  string
	Pos      token.Position
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Pos, d.Severity, d.Message)
}

// scope tracks which names are definitely assigned by the time a given
// point in the program is reached, for the "used before assignment"
// warning. It is not a type environment — Axon has no static types to
// check — just a set membership check.
type scope struct {
	assigned map[string]bool
	parent   *scope
}

func newScope(parent *scope) *scope {
	return &scope{assigned: make(map[string]bool), parent: parent}
}

func (s *scope) has(name string) bool {
	for sc := s; sc != nil; sc = sc.parent {
		if sc.assigned[name] {
			return true
		}
	}
	return false
}

func (s *scope) assign(name string) {
	s.assigned[name] = true
}

// Analyzer walks a Program collecting diagnostics. It is re-entrant across
// separate programs but not safe for concurrent use on the same instance.
type Analyzer struct {
	diags     []Diagnostic
	loopDepth int
	fnDepth   int
}

// Analyze runs the full pass and returns every diagnostic found, in source
// order.
func Analyze(prog *ast.Program) []Diagnostic {
	a := &Analyzer{}
	top := newScope(nil)
	for _, stmt := range prog.Statements {
		a.walkStatement(stmt, top)
	}
	return a.diags
}

func (a *Analyzer) warn(pos token.Position, format string, args ...any) {
	a.diags = append(a.diags, Diagnostic{Severity: SeverityWarning, Message: fmt.Sprintf(format, args...), Pos: pos})
}

func (a *Analyzer) walkStatement(stmt ast.Statement, sc *scope) {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		a.walkExpression(s.Expr, sc)
		sc.assign(s.Name)
	case *ast.PrintStmt:
		a.walkExpression(s.Expr, sc)
	case *ast.ClearStmt:
		// No names involved.
	case *ast.IfStmt:
		a.walkExpression(s.Cond, sc)
		a.walkBlock(s.Then, sc)
		if s.Else != nil {
			a.walkBlock(s.Else, sc)
		}
	case *ast.WhileStmt:
		a.walkExpression(s.Cond, sc)
		a.loopDepth++
		a.walkBlock(s.Body, sc)
		a.loopDepth--
	case *ast.ForStmt:
		a.walkExpression(s.Start, sc)
		a.walkExpression(s.End, sc)
		body := newScope(sc)
		body.assign(s.Var)
		a.loopDepth++
		a.walkBlock(s.Body, body)
		a.loopDepth--
	case *ast.FnStmt:
		a.fnDepth++
		fnScope := newScope(nil) // functions do not close over the enclosing scope
		for _, p := range s.Params {
			fnScope.assign(p)
		}
		a.walkBlock(s.Body, fnScope)
		a.fnDepth--
	case *ast.ReturnStmt:
		if a.fnDepth == 0 {
			a.warn(s.Pos(), "return outside a function will fail at run time")
		}
		if s.Expr != nil {
			a.walkExpression(s.Expr, sc)
		}
	case *ast.BreakStmt:
		if a.loopDepth == 0 {
			a.warn(s.Pos(), "break outside a loop will fail at run time")
		}
	case *ast.ContinueStmt:
		if a.loopDepth == 0 {
			a.warn(s.Pos(), "continue outside a loop will fail at run time")
		}
	case *ast.ExprStmt:
		a.walkExpression(s.Expr, sc)
	}
}

func (a *Analyzer) walkBlock(block *ast.Block, sc *scope) {
	for _, stmt := range block.Statements {
		a.walkStatement(stmt, sc)
	}
}

func (a *Analyzer) walkExpression(expr ast.Expression, sc *scope) {
	switch e := expr.(type) {
	case *ast.VarExpr:
		if !sc.has(e.Name) {
			a.warn(e.Pos(), "%q is used before any assignment reaches this point", e.Name)
		}
	case *ast.BinOpExpr:
		a.walkExpression(e.Left, sc)
		a.walkExpression(e.Right, sc)
	case *ast.UnaryOpExpr:
		a.walkExpression(e.Expr, sc)
	case *ast.ListExpr:
		for _, el := range e.Elements {
			a.walkExpression(el, sc)
		}
	case *ast.DictExpr:
		for _, entry := range e.Entries {
			a.walkExpression(entry.Key, sc)
			a.walkExpression(entry.Value, sc)
		}
	case *ast.IndexExpr:
		a.walkExpression(e.Collection, sc)
		a.walkExpression(e.Index, sc)
	case *ast.CallExpr:
		for _, arg := range e.Args {
			a.walkExpression(arg, sc)
		}
	}
}
