package bytecode

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/axon-lang/axon/internal/lexer"
	"github.com/axon-lang/axon/internal/parser"
)

func compile(t *testing.T, src string, opts ...CompilerOption) *CodeObject {
	t.Helper()
	p := parser.New(lexer.New(src))
	prog, err := p.ParseProgram()
	require.NoError(t, err)
	code, err := Compile(prog, opts...)
	require.NoError(t, err)
	return code
}

func ops(code *CodeObject) []OpCode {
	out := make([]OpCode, len(code.Code))
	for i, instr := range code.Code {
		out[i] = instr.Op
	}
	return out
}

func TestCompileLetAndPrint(t *testing.T) {
	code := compile(t, `let x = 1; print(x);`)
	require.Equal(t, []OpCode{OpConst, OpStoreName, OpLoadName, OpPrint}, ops(code))
	require.Equal(t, "x", code.Code[1].Name)
}

func TestCompileExprStatementBalancesStack(t *testing.T) {
	code := compile(t, `1 + 2;`, WithOptimize(false))
	require.Equal(t, []OpCode{OpConst, OpConst, OpBinaryAdd, OpPop}, ops(code))
}

func TestCompileIfElseJumpTargets(t *testing.T) {
	code := compile(t, `if 1 { print(1); } else { print(2); }`, WithOptimize(false))

	var jumpIfFalseIdx, jumpIdx int = -1, -1
	for i, instr := range code.Code {
		switch instr.Op {
		case OpJumpIfFalse:
			jumpIfFalseIdx = i
		case OpJump:
			jumpIdx = i
		}
	}
	require.NotEqual(t, -1, jumpIfFalseIdx)
	require.NotEqual(t, -1, jumpIdx)

	// JUMP_IF_FALSE must land exactly where the else branch starts (right
	// after the unconditional JUMP that skips it).
	elseStart := jumpIfFalseIdx + code.Code[jumpIfFalseIdx].Operand
	require.Equal(t, jumpIdx+1, elseStart)

	// The unconditional JUMP must land right after the else branch — the
	// two trailing instructions (CONST Nil, POP) come after that target,
	// not before it.
	jumpTarget := jumpIdx + code.Code[jumpIdx].Operand
	require.Equal(t, len(code.Code)-2, jumpTarget)
	require.Equal(t, OpConst, code.Code[len(code.Code)-2].Op)
	require.Equal(t, OpPop, code.Code[len(code.Code)-1].Op)
}

func TestCompileWhileLoopBackJump(t *testing.T) {
	code := compile(t, `let i = 0; while i { i = 0; }`, WithOptimize(false))

	var condStart, jumpIfFalseIdx, backJumpIdx int = -1, -1, -1
	for i, instr := range code.Code {
		if instr.Op == OpLoadName && instr.Name == "i" && condStart == -1 {
			condStart = i
		}
		if instr.Op == OpJumpIfFalse {
			jumpIfFalseIdx = i
		}
		if instr.Op == OpJump {
			backJumpIdx = i
		}
	}
	require.NotEqual(t, -1, condStart)
	require.NotEqual(t, -1, jumpIfFalseIdx)
	require.NotEqual(t, -1, backJumpIdx)

	backTarget := backJumpIdx + code.Code[backJumpIdx].Operand
	require.Equal(t, condStart, backTarget)

	afterLoop := jumpIfFalseIdx + code.Code[jumpIfFalseIdx].Operand
	require.Equal(t, len(code.Code), afterLoop)
}

func TestCompileShortCircuitAnd(t *testing.T) {
	code := compile(t, `1 and 2;`, WithOptimize(false))
	require.Equal(t, []OpCode{
		OpConst, OpJumpIfFalseNoPop, OpPop, OpConst, OpPop,
	}, ops(code))
	require.Equal(t, OpJumpIfFalseNoPop, code.Code[1].Op)
}

func TestCompileShortCircuitOr(t *testing.T) {
	code := compile(t, `1 or 2;`, WithOptimize(false))
	require.Equal(t, []OpCode{
		OpConst, OpJumpIfTrueNoPop, OpPop, OpConst, OpPop,
	}, ops(code))
}

func TestCompileForLoopBuildsSeparateBodyCode(t *testing.T) {
	code := compile(t, `for i = 0; 3 { print(i); }`, WithOptimize(false))

	var forLoop *Instruction
	for i := range code.Code {
		if code.Code[i].Op == OpForLoop {
			forLoop = &code.Code[i]
		}
	}
	require.NotNil(t, forLoop)
	require.Equal(t, "i", forLoop.ForLoop.Var)
	require.Equal(t, []OpCode{OpLoadName, OpPrint}, ops(forLoop.ForLoop.Body))
}

func TestCompileBreakOutsideLoopIsUnbound(t *testing.T) {
	code := compile(t, `fn f() { break; }`, WithOptimize(false))
	fnProto := code.Code[0].Function
	require.Equal(t, OpBreak, fnProto.Code.Code[0].Op)
	require.True(t, fnProto.Code.Code[0].Unbound)
}

func TestCompileBreakInsideForSetsCrossesFrame(t *testing.T) {
	code := compile(t, `for i = 0; 3 { break; }`, WithOptimize(false))
	var forLoop *Instruction
	for i := range code.Code {
		if code.Code[i].Op == OpForLoop {
			forLoop = &code.Code[i]
		}
	}
	require.NotNil(t, forLoop)
	require.Equal(t, OpBreak, forLoop.ForLoop.Body.Code[0].Op)
	require.True(t, forLoop.ForLoop.Body.Code[0].CrossesFrame)
}

func TestCompileFunctionImplicitReturnsNil(t *testing.T) {
	code := compile(t, `fn f() { let x = 1; }`, WithOptimize(false))
	fnProto := code.Code[0].Function
	last := fnProto.Code.Code[len(fnProto.Code.Code)-1]
	require.Equal(t, OpReturn, last.Op)
	prev := fnProto.Code.Code[len(fnProto.Code.Code)-2]
	require.Equal(t, OpConst, prev.Op)
	require.Equal(t, Nil, fnProto.Code.Constants[prev.Operand])
}

func TestOptimizeFoldsConstantArithmetic(t *testing.T) {
	code := compile(t, `print(1 + 2);`)
	require.Equal(t, []OpCode{OpConst, OpPrint}, ops(code))
	require.Equal(t, IntValue(3), code.Constants[0])
}

func TestForLoopBoundCompiledAsOrdinaryBytecodeBeforeForLoop(t *testing.T) {
	// The end bound is ordinary bytecode emitted right before FOR_LOOP, so
	// it runs fresh every time control reaches the for-statement — not
	// baked into ForLoopProto as a static field.
	code := compile(t, `for i = 0; 1 + 2 { print(i); }`)
	var forLoopIdx int = -1
	for i, instr := range code.Code {
		if instr.Op == OpForLoop {
			forLoopIdx = i
		}
	}
	require.NotEqual(t, -1, forLoopIdx)
	require.Equal(t, OpConst, code.Code[forLoopIdx-1].Op)
	require.Equal(t, IntValue(3), code.Constants[code.Code[forLoopIdx-1].Operand])
}
