package bytecode

import "github.com/axon-lang/axon/internal/ast"

// FoldConstants recursively reduces arithmetic over literal operands to a
// single literal, e.g. `2 + 3 * 4` compiles straight to CONST 14 instead of
// three CONSTs and two binary ops. It never folds across a name lookup,
// call, or short-circuit boundary, so it cannot change observable behavior.
// A for-loop's end expression is folded like any other expression; the
// result is still emitted as a CONST just before FOR_LOOP and pushed each
// time the loop statement is reached.
func FoldConstants(expr ast.Expression) ast.Expression {
	switch e := expr.(type) {
	case *ast.BinOpExpr:
		left := FoldConstants(e.Left)
		right := FoldConstants(e.Right)
		folded := &ast.BinOpExpr{Token: e.Token, Op: e.Op, Left: left, Right: right}
		if lit, ok := foldBinOp(folded); ok {
			return lit
		}
		return folded
	case *ast.UnaryOpExpr:
		inner := FoldConstants(e.Expr)
		folded := &ast.UnaryOpExpr{Token: e.Token, Op: e.Op, Expr: inner}
		if lit, ok := foldUnaryOp(folded); ok {
			return lit
		}
		return folded
	case *ast.ListExpr:
		elems := make([]ast.Expression, len(e.Elements))
		for i, el := range e.Elements {
			elems[i] = FoldConstants(el)
		}
		return &ast.ListExpr{Token: e.Token, Elements: elems}
	case *ast.DictExpr:
		entries := make([]ast.DictEntry, len(e.Entries))
		for i, entry := range e.Entries {
			entries[i] = ast.DictEntry{Key: FoldConstants(entry.Key), Value: FoldConstants(entry.Value)}
		}
		return &ast.DictExpr{Token: e.Token, Entries: entries}
	case *ast.IndexExpr:
		return &ast.IndexExpr{Token: e.Token, Collection: FoldConstants(e.Collection), Index: FoldConstants(e.Index)}
	case *ast.CallExpr:
		args := make([]ast.Expression, len(e.Args))
		for i, a := range e.Args {
			args[i] = FoldConstants(a)
		}
		return &ast.CallExpr{Token: e.Token, Name: e.Name, Args: args}
	default:
		return expr
	}
}

func foldBinOp(e *ast.BinOpExpr) (*ast.NumberLit, bool) {
	// and/or are excluded even when both sides are literals: they compile
	// through the short-circuit scheme, which FoldConstants never touches.
	if e.Op == ast.OpAnd || e.Op == ast.OpOr {
		return nil, false
	}
	left, lok := e.Left.(*ast.NumberLit)
	right, rok := e.Right.(*ast.NumberLit)
	if !lok || !rok {
		return nil, false
	}
	switch e.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		return foldArith(e.Op, left, right)
	default:
		// Comparisons fold to a bool, not a NumberLit — left unfolded.
		return nil, false
	}
}

func foldArith(op ast.BinaryOp, left, right *ast.NumberLit) (*ast.NumberLit, bool) {
	isFloat := left.IsFloat || right.IsFloat
	lf, rf := left.FloatVal, right.FloatVal
	li, ri := left.IntVal, right.IntVal
	if !left.IsFloat {
		lf = float64(li)
	}
	if !right.IsFloat {
		rf = float64(ri)
	}

	switch op {
	case ast.OpDiv:
		if rf == 0 {
			return nil, false // let the VM raise the division-by-zero error at run time
		}
		return &ast.NumberLit{Token: left.Token, IsFloat: true, FloatVal: lf / rf}, true
	case ast.OpMod:
		if !isFloat {
			if ri == 0 {
				return nil, false
			}
			return &ast.NumberLit{Token: left.Token, IntVal: li % ri}, true
		}
		return nil, false
	}

	if isFloat {
		var result float64
		switch op {
		case ast.OpAdd:
			result = lf + rf
		case ast.OpSub:
			result = lf - rf
		case ast.OpMul:
			result = lf * rf
		}
		return &ast.NumberLit{Token: left.Token, IsFloat: true, FloatVal: result}, true
	}

	var result int64
	switch op {
	case ast.OpAdd:
		result = li + ri
	case ast.OpSub:
		result = li - ri
	case ast.OpMul:
		result = li * ri
	}
	return &ast.NumberLit{Token: left.Token, IntVal: result}, true
}

func foldUnaryOp(e *ast.UnaryOpExpr) (*ast.NumberLit, bool) {
	if e.Op != ast.OpNeg {
		return nil, false
	}
	lit, ok := e.Expr.(*ast.NumberLit)
	if !ok {
		return nil, false
	}
	if lit.IsFloat {
		return &ast.NumberLit{Token: lit.Token, IsFloat: true, FloatVal: -lit.FloatVal}, true
	}
	return &ast.NumberLit{Token: lit.Token, IntVal: -lit.IntVal}, true
}

// Optimize runs a peephole pass over already-compiled code and any nested
// function/for-loop body CodeObjects it references. Constant folding
// happens earlier, at the AST level (FoldConstants), because by the time a
// CodeObject exists the original expression shape is gone; this pass is the
// hook for future instruction-level peepholes (e.g. dead-store removal)
// that operate purely on the already-resolved jump graph. There are none
// yet that are safe to apply without an explicit NOP opcode to collapse
// jumps into, so this currently only recurses into nested code objects to
// keep the hook consistent for when one is added.
func Optimize(code *CodeObject) {
	for i := range code.Code {
		instr := &code.Code[i]
		if instr.Function != nil {
			Optimize(instr.Function.Code)
		}
		if instr.ForLoop != nil {
			Optimize(instr.ForLoop.Body)
		}
	}
}
