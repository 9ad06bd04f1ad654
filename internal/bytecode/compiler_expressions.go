package bytecode

import (
	"github.com/axon-lang/axon/internal/ast"
)

func (c *Compiler) compileExpression(expr ast.Expression) error {
	if c.optimize {
		expr = FoldConstants(expr)
	}
	switch e := expr.(type) {
	case *ast.NumberLit:
		return c.compileNumberLit(e)
	case *ast.StringLit:
		c.emit(Instruction{Op: OpConst, Operand: c.code.AddConstant(StringValue(e.Value))})
		return nil
	case *ast.BoolLit:
		c.emit(Instruction{Op: OpConst, Operand: c.code.AddConstant(BoolValue(e.Value))})
		return nil
	case *ast.VarExpr:
		c.emit(Instruction{Op: OpLoadName, Name: e.Name})
		return nil
	case *ast.BinOpExpr:
		return c.compileBinOp(e)
	case *ast.UnaryOpExpr:
		return c.compileUnaryOp(e)
	case *ast.ListExpr:
		return c.compileListExpr(e)
	case *ast.DictExpr:
		return c.compileDictExpr(e)
	case *ast.IndexExpr:
		return c.compileIndexExpr(e)
	case *ast.CallExpr:
		return c.compileCallExpr(e)
	default:
		return unhandledNode(expr)
	}
}

func (c *Compiler) compileNumberLit(e *ast.NumberLit) error {
	var v Value
	if e.IsFloat {
		v = FloatValue(e.FloatVal)
	} else {
		v = IntValue(e.IntVal)
	}
	c.emit(Instruction{Op: OpConst, Operand: c.code.AddConstant(v)})
	return nil
}

// compileBinOp handles and/or as the required short-circuit schemes and
// everything else as a plain left-then-right-then-op sequence.
func (c *Compiler) compileBinOp(e *ast.BinOpExpr) error {
	switch e.Op {
	case ast.OpAnd:
		return c.compileShortCircuit(e, OpJumpIfFalseNoPop)
	case ast.OpOr:
		return c.compileShortCircuit(e, OpJumpIfTrueNoPop)
	}

	if err := c.compileExpression(e.Left); err != nil {
		return err
	}
	if err := c.compileExpression(e.Right); err != nil {
		return err
	}

	op, ok := binOpcodes[e.Op]
	if !ok {
		return &CompileError{Kind: UnknownOperator, Detail: e.Op.String()}
	}
	c.emit(Instruction{Op: op, Line: e.Pos().Line})
	return nil
}

var binOpcodes = map[ast.BinaryOp]OpCode{
	ast.OpAdd: OpBinaryAdd,
	ast.OpSub: OpBinarySub,
	ast.OpMul: OpBinaryMul,
	ast.OpDiv: OpBinaryDiv,
	ast.OpMod: OpBinaryMod,
	ast.OpEq:  OpCompareEq,
	ast.OpNe:  OpCompareNe,
	ast.OpLt:  OpCompareLt,
	ast.OpLe:  OpCompareLe,
	ast.OpGt:  OpCompareGt,
	ast.OpGe:  OpCompareGe,
}

// compileShortCircuit implements and/or: evaluate the left operand, peek it
// with the no-pop conditional jump so the short-circuit path leaves it as
// the whole expression's result, otherwise discard it and fall through to
// evaluate (and become) the right operand.
func (c *Compiler) compileShortCircuit(e *ast.BinOpExpr, peekOp OpCode) error {
	if err := c.compileExpression(e.Left); err != nil {
		return err
	}
	jumpIdx := c.emitJumpPlaceholder(peekOp)
	c.emit(Instruction{Op: OpPop})
	if err := c.compileExpression(e.Right); err != nil {
		return err
	}
	c.patchJump(jumpIdx, c.currentIndex())
	return nil
}

func (c *Compiler) compileUnaryOp(e *ast.UnaryOpExpr) error {
	if err := c.compileExpression(e.Expr); err != nil {
		return err
	}
	switch e.Op {
	case ast.OpNeg:
		c.emit(Instruction{Op: OpUnaryNeg, Line: e.Pos().Line})
	case ast.OpNot:
		c.emit(Instruction{Op: OpUnaryNot, Line: e.Pos().Line})
	default:
		return &CompileError{Kind: UnknownOperator, Detail: e.Op.String()}
	}
	return nil
}

func (c *Compiler) compileListExpr(e *ast.ListExpr) error {
	for _, el := range e.Elements {
		if err := c.compileExpression(el); err != nil {
			return err
		}
	}
	c.emit(Instruction{Op: OpBuildList, Operand: len(e.Elements)})
	return nil
}

func (c *Compiler) compileDictExpr(e *ast.DictExpr) error {
	for _, entry := range e.Entries {
		if err := c.compileExpression(entry.Key); err != nil {
			return err
		}
		if err := c.compileExpression(entry.Value); err != nil {
			return err
		}
	}
	c.emit(Instruction{Op: OpBuildDict, Operand: len(e.Entries)})
	return nil
}

func (c *Compiler) compileIndexExpr(e *ast.IndexExpr) error {
	if err := c.compileExpression(e.Collection); err != nil {
		return err
	}
	if err := c.compileExpression(e.Index); err != nil {
		return err
	}
	c.emit(Instruction{Op: OpBinarySubscr, Line: e.Pos().Line})
	return nil
}

func (c *Compiler) compileCallExpr(e *ast.CallExpr) error {
	for _, arg := range e.Args {
		if err := c.compileExpression(arg); err != nil {
			return err
		}
	}
	c.emit(Instruction{Op: OpCallFunction, Operand: len(e.Args), Name: e.Name, Line: e.Pos().Line})
	return nil
}
