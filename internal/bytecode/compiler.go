package bytecode

import (
	"fmt"

	"github.com/axon-lang/axon/internal/ast"
)

// CompilerOption configures a Compiler at construction time.
type CompilerOption func(*Compiler)

// WithOptimize toggles the constant-folding pass (on by default). Disabling
// it is useful for teaching/debugging: the disassembly then mirrors the
// AST one-for-one.
func WithOptimize(enabled bool) CompilerOption {
	return func(c *Compiler) { c.optimize = enabled }
}

type loopKind int

const (
	loopWhile loopKind = iota
	loopForBoundary
)

// loopCtx is compile-time bookkeeping for resolving break/continue targets.
// Nothing in the opcode set pushes or pops a runtime loop marker for a
// plain while-loop (only FOR_LOOP is a dedicated compound instruction), so
// this compiler resolves every break/continue target at compile time via
// backpatching, the same mechanism used for if/while/for's own internal
// jumps; see DESIGN.md for the full rationale.
type loopCtx struct {
	kind          loopKind
	continueTarget int
	continueKnown bool
	breakJumps    []int
	continueJumps []int
}

// Compiler walks an AST and appends instructions/constants to a CodeObject.
type Compiler struct {
	code      *CodeObject
	loopStack []*loopCtx
	optimize  bool
}

// NewCompiler creates a compiler that will emit into a fresh CodeObject
// named name.
func NewCompiler(name string, opts ...CompilerOption) *Compiler {
	c := &Compiler{code: NewCodeObject(name), optimize: true}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile is the embedder-facing entry point: AST Program to CodeObject.
func Compile(prog *ast.Program, opts ...CompilerOption) (*CodeObject, error) {
	c := NewCompiler("__main__", opts...)
	for _, stmt := range prog.Statements {
		if err := c.compileStatement(stmt); err != nil {
			return nil, err
		}
	}
	if c.optimize {
		Optimize(c.code)
	}
	return c.code, nil
}

// emit appends instr to the current code object and returns its index, used
// for later backpatching.
func (c *Compiler) emit(instr Instruction) int {
	return c.code.Emit(instr)
}

// emitJumpPlaceholder emits a jump-family instruction with a zero operand to
// be patched once the target index is known.
func (c *Compiler) emitJumpPlaceholder(op OpCode) int {
	return c.emit(Instruction{Op: op})
}

// patchJump sets the operand of the jump instruction at idx so that
// executing it lands exactly at absolute instruction index target. Jump
// offsets are relative to the instruction following the jump, and the VM
// computes ip = ip(after increment) + operand - 1. Solving for operand in
// terms of the jump's own index and the absolute target gives
// operand = target - idx.
func (c *Compiler) patchJump(idx, target int) {
	c.code.Code[idx].Operand = target - idx
}

func (c *Compiler) currentIndex() int {
	return c.code.Len()
}

func (c *Compiler) pushLoop(kind loopKind) *loopCtx {
	lc := &loopCtx{kind: kind}
	c.loopStack = append(c.loopStack, lc)
	return lc
}

func (c *Compiler) popLoop() {
	c.loopStack = c.loopStack[:len(c.loopStack)-1]
}

func (c *Compiler) currentLoop() *loopCtx {
	if len(c.loopStack) == 0 {
		return nil
	}
	return c.loopStack[len(c.loopStack)-1]
}

func unhandledNode(node ast.Node) error {
	return &CompileError{Kind: UnhandledNode, Detail: fmt.Sprintf("%T at %s", node, node.Pos())}
}
