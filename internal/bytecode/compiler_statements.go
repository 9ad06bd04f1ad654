package bytecode

import (
	"github.com/axon-lang/axon/internal/ast"
)

func (c *Compiler) compileStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		return c.compileLetStmt(s)
	case *ast.PrintStmt:
		return c.compilePrintStmt(s)
	case *ast.ClearStmt:
		c.emit(Instruction{Op: OpClear, Line: s.Pos().Line})
		return nil
	case *ast.IfStmt:
		return c.compileIfStmt(s)
	case *ast.WhileStmt:
		return c.compileWhileStmt(s)
	case *ast.ForStmt:
		return c.compileForStmt(s)
	case *ast.FnStmt:
		return c.compileFnStmt(s)
	case *ast.ReturnStmt:
		return c.compileReturnStmt(s)
	case *ast.BreakStmt:
		return c.compileBreakStmt(s)
	case *ast.ContinueStmt:
		return c.compileContinueStmt(s)
	case *ast.ExprStmt:
		return c.compileExprStmt(s)
	default:
		return unhandledNode(stmt)
	}
}

func (c *Compiler) compileBlock(block *ast.Block) error {
	for _, s := range block.Statements {
		if err := c.compileStatement(s); err != nil {
			return err
		}
	}
	return nil
}

func (c *Compiler) compileLetStmt(s *ast.LetStmt) error {
	if err := c.compileExpression(s.Expr); err != nil {
		return err
	}
	c.emit(Instruction{Op: OpStoreName, Name: s.Name, Line: s.Pos().Line})
	return nil
}

func (c *Compiler) compilePrintStmt(s *ast.PrintStmt) error {
	if err := c.compileExpression(s.Expr); err != nil {
		return err
	}
	c.emit(Instruction{Op: OpPrint, Line: s.Pos().Line})
	return nil
}

func (c *Compiler) compileExprStmt(s *ast.ExprStmt) error {
	if err := c.compileExpression(s.Expr); err != nil {
		return err
	}
	// An expression statement's value is never consumed: CALL_FUNCTION and
	// every expression opcode push exactly one value, so a statement built
	// from a bare expression must pop it right back off to keep the
	// pre/post-statement stack depth invariant intact.
	c.emit(Instruction{Op: OpPop, Line: s.Pos().Line})
	return nil
}

// compileIfStmt follows the if/else scheme: JUMP_IF_FALSE over the then
// branch (and, when an else branch exists, over the unconditional jump that
// skips it), then an unconditional jump from the end of the then branch past
// the else branch. The trailing CONST Nil + POP exists purely for
// instruction-stream fidelity to the documented compilation scheme — if ever
// becomes an expression instead of a statement, that Nil is the value it
// would need to leave behind; today nothing is there to consume it, so it is
// popped again immediately.
func (c *Compiler) compileIfStmt(s *ast.IfStmt) error {
	if err := c.compileExpression(s.Cond); err != nil {
		return err
	}
	jumpIfFalse := c.emitJumpPlaceholder(OpJumpIfFalse)
	if err := c.compileBlock(s.Then); err != nil {
		return err
	}

	if s.Else != nil {
		jumpOverElse := c.emitJumpPlaceholder(OpJump)
		c.patchJump(jumpIfFalse, c.currentIndex())
		if err := c.compileBlock(s.Else); err != nil {
			return err
		}
		c.patchJump(jumpOverElse, c.currentIndex())
	} else {
		c.patchJump(jumpIfFalse, c.currentIndex())
	}

	c.emit(Instruction{Op: OpConst, Operand: c.code.AddConstant(Nil)})
	c.emit(Instruction{Op: OpPop})
	return nil
}

func (c *Compiler) compileWhileStmt(s *ast.WhileStmt) error {
	condStart := c.currentIndex()
	lc := c.pushLoop(loopWhile)
	lc.continueTarget = condStart
	lc.continueKnown = true

	if err := c.compileExpression(s.Cond); err != nil {
		return err
	}
	jumpIfFalse := c.emitJumpPlaceholder(OpJumpIfFalse)
	if err := c.compileBlock(s.Body); err != nil {
		return err
	}
	backJump := c.emitJumpPlaceholder(OpJump)
	c.patchJump(backJump, condStart)

	afterLoop := c.currentIndex()
	c.patchJump(jumpIfFalse, afterLoop)
	for _, idx := range lc.breakJumps {
		c.patchJump(idx, afterLoop)
	}
	c.popLoop()
	return nil
}

// compileForStmt implements the corrected for-loop semantics: the bound
// expression is evaluated once, at loop entry, by ordinary bytecode emitted
// immediately before FOR_LOOP (with optimization on, a literal-only bound
// is folded to a single CONST there) — it is never baked into the FOR_LOOP
// instruction. The loop body compiles into its own CodeObject, executed by
// the VM as a child frame on every iteration; that frame shares the
// enclosing frame's locals, so names assigned in the body stay visible
// after the loop.
func (c *Compiler) compileForStmt(s *ast.ForStmt) error {
	if err := c.compileExpression(s.Start); err != nil {
		return err
	}
	c.emit(Instruction{Op: OpStoreName, Name: s.Var, Line: s.Pos().Line})

	if err := c.compileExpression(s.End); err != nil {
		return err
	}

	body := NewCodeObject("<for body>")
	bodyCompiler := &Compiler{code: body, optimize: c.optimize}
	lc := bodyCompiler.pushLoop(loopForBoundary)
	if err := bodyCompiler.compileBlock(s.Body); err != nil {
		return err
	}
	bodyEnd := bodyCompiler.currentIndex()
	for _, idx := range lc.breakJumps {
		bodyCompiler.patchJump(idx, bodyEnd)
	}
	for _, idx := range lc.continueJumps {
		bodyCompiler.patchJump(idx, bodyEnd)
	}
	bodyCompiler.popLoop()

	c.emit(Instruction{
		Op:      OpForLoop,
		Line:    s.Pos().Line,
		ForLoop: &ForLoopProto{Var: s.Var, Body: body},
	})
	return nil
}

func (c *Compiler) compileFnStmt(s *ast.FnStmt) error {
	body := NewCodeObject(s.Name)
	fnCompiler := &Compiler{code: body, optimize: c.optimize}
	if err := fnCompiler.compileBlock(s.Body); err != nil {
		return err
	}
	// A function whose body falls off the end without an explicit return
	// behaves like `return;` — push Nil, then a plain RETURN.
	fnCompiler.emit(Instruction{Op: OpConst, Operand: body.AddConstant(Nil)})
	fnCompiler.emit(Instruction{Op: OpReturn})

	c.emit(Instruction{
		Op:   OpMakeFunction,
		Line: s.Pos().Line,
		Function: &FunctionProto{
			Name:   s.Name,
			Params: s.Params,
			Code:   body,
		},
	})
	c.emit(Instruction{Op: OpStoreName, Name: s.Name, Line: s.Pos().Line})
	return nil
}

func (c *Compiler) compileReturnStmt(s *ast.ReturnStmt) error {
	if s.Expr != nil {
		if err := c.compileExpression(s.Expr); err != nil {
			return err
		}
	} else {
		c.emit(Instruction{Op: OpConst, Operand: c.code.AddConstant(Nil)})
	}
	c.emit(Instruction{Op: OpReturn, Line: s.Pos().Line})
	return nil
}

func (c *Compiler) compileBreakStmt(s *ast.BreakStmt) error {
	lc := c.currentLoop()
	idx := c.emit(Instruction{Op: OpBreak, Line: s.Pos().Line})
	if lc == nil {
		c.code.Code[idx].Unbound = true
		return nil
	}
	if lc.kind == loopForBoundary {
		c.code.Code[idx].CrossesFrame = true
	}
	lc.breakJumps = append(lc.breakJumps, idx)
	return nil
}

func (c *Compiler) compileContinueStmt(s *ast.ContinueStmt) error {
	lc := c.currentLoop()
	idx := c.emit(Instruction{Op: OpContinue, Line: s.Pos().Line})
	if lc == nil {
		c.code.Code[idx].Unbound = true
		return nil
	}
	if lc.continueKnown {
		c.patchJump(idx, lc.continueTarget)
		return nil
	}
	lc.continueJumps = append(lc.continueJumps, idx)
	return nil
}
