package vm

import (
	"fmt"

	"github.com/axon-lang/axon/internal/bytecode"
)

// runLoop drives frames until the one that existed when it was entered (and
// everything pushed above it) has been popped.
func (v *VM) runLoop() (bytecode.Value, error) {
	baseDepth := len(v.frames) - 1
	for len(v.frames) > baseDepth {
		if err := v.step(); err != nil {
			return bytecode.Nil, err
		}
	}
	return bytecode.Nil, nil
}

// runFrameSync runs frames until the stack depth drops below targetLen. It
// is used by FOR_LOOP to execute one iteration of a loop body to
// completion before deciding whether to run another — "to completion"
// meaning either the body frame falls off its own end, or a break/return
// unwinds it (and possibly frames beneath it) early.
func (v *VM) runFrameSync(targetLen int) error {
	for len(v.frames) >= targetLen {
		if err := v.step(); err != nil {
			return err
		}
	}
	return nil
}

func (v *VM) step() error {
	f := v.topFrame()
	if f.atEnd() {
		v.popFrame()
		return nil
	}
	instr := f.Code.Code[f.IP]
	f.IP++
	return v.exec(f, instr)
}

func (v *VM) exec(f *Frame, instr bytecode.Instruction) error {
	switch instr.Op {
	case bytecode.OpConst:
		f.push(f.Code.Constants[instr.Operand])

	case bytecode.OpLoadName:
		val, ok := f.lookup(instr.Name)
		if !ok {
			return newErr(NameError, instr.Line, "undefined name %q", instr.Name)
		}
		f.push(val)

	case bytecode.OpStoreName:
		f.Locals[instr.Name] = f.pop()

	case bytecode.OpBuildList:
		n := instr.Operand
		items := make([]bytecode.Value, n)
		for i := n - 1; i >= 0; i-- {
			items[i] = f.pop()
		}
		f.push(bytecode.ListValue(items))

	case bytecode.OpBuildDict:
		n := instr.Operand
		pairs := make([][2]bytecode.Value, n)
		for i := n - 1; i >= 0; i-- {
			val := f.pop()
			key := f.pop()
			pairs[i] = [2]bytecode.Value{key, val}
		}
		d := bytecode.NewDict()
		for _, kv := range pairs {
			if !kv[0].IsHashable() {
				return newErr(TypeError, instr.Line, "unhashable dict key of type %s", kv[0].Kind)
			}
			d.Dict[bytecode.KeyOf(kv[0])] = bytecode.DictEntry{Key: kv[0], Val: kv[1]}
		}
		f.push(d)

	case bytecode.OpBinarySubscr:
		return v.execSubscr(f, instr)

	case bytecode.OpBinaryAdd, bytecode.OpBinarySub, bytecode.OpBinaryMul,
		bytecode.OpBinaryDiv, bytecode.OpBinaryMod:
		return v.execArith(f, instr)

	case bytecode.OpCompareEq, bytecode.OpCompareNe, bytecode.OpCompareLt,
		bytecode.OpCompareLe, bytecode.OpCompareGt, bytecode.OpCompareGe:
		return v.execCompare(f, instr)

	case bytecode.OpBinaryAnd:
		r, l := f.pop(), f.pop()
		f.push(bytecode.BoolValue(l.Truthy() && r.Truthy()))

	case bytecode.OpBinaryOr:
		r, l := f.pop(), f.pop()
		f.push(bytecode.BoolValue(l.Truthy() || r.Truthy()))

	case bytecode.OpUnaryNeg:
		operand := f.pop()
		switch operand.Kind {
		case bytecode.KindInt:
			f.push(bytecode.IntValue(-operand.Int))
		case bytecode.KindFloat:
			f.push(bytecode.FloatValue(-operand.Flt))
		default:
			return newErr(TypeError, instr.Line, "unary - on %s", operand.Kind)
		}

	case bytecode.OpUnaryNot:
		f.push(bytecode.BoolValue(!f.pop().Truthy()))

	case bytecode.OpJumpIfFalseNoPop:
		if !f.peek().Truthy() {
			f.IP += instr.Operand - 1
		}

	case bytecode.OpJumpIfTrueNoPop:
		if f.peek().Truthy() {
			f.IP += instr.Operand - 1
		}

	case bytecode.OpJumpIfFalse:
		if !f.pop().Truthy() {
			f.IP += instr.Operand - 1
		}

	case bytecode.OpJump:
		f.IP += instr.Operand - 1

	case bytecode.OpPop:
		f.pop()

	case bytecode.OpPrint:
		fmt.Fprintln(v.stdout, f.pop().String())

	case bytecode.OpClear:
		return v.clearScreen()

	case bytecode.OpMakeFunction:
		proto := instr.Function
		f.push(bytecode.FunctionValue(&bytecode.Function{
			Name:   proto.Name,
			Params: proto.Params,
			Code:   proto.Code,
		}))

	case bytecode.OpCallFunction:
		return v.execCall(f, instr)

	case bytecode.OpReturn:
		return v.execReturn(f)

	case bytecode.OpBreak:
		if instr.Unbound {
			return newErr(LoopControlOutsideLoop, instr.Line, "break outside a loop")
		}
		f.IP += instr.Operand - 1
		if instr.CrossesFrame {
			f.Broke = true
		}

	case bytecode.OpContinue:
		if instr.Unbound {
			return newErr(LoopControlOutsideLoop, instr.Line, "continue outside a loop")
		}
		f.IP += instr.Operand - 1

	case bytecode.OpForLoop:
		return v.execForLoop(f, instr)

	default:
		return newErr(UnhandledOpcode, instr.Line, "unhandled opcode %s", instr.Op)
	}
	return nil
}

func (v *VM) execReturn(f *Frame) error {
	retVal := f.pop()
	for {
		popped := v.popFrame()
		if popped.IsFunctionFrame {
			if len(v.frames) == 0 {
				return newErr(UnhandledOpcode, 0, "function frame popped with no caller beneath it")
			}
			v.topFrame().push(retVal)
			return nil
		}
		if len(v.frames) == 0 {
			return newErr(ReturnOutsideFunction, 0, "return used outside a function")
		}
	}
}

func (v *VM) execCall(f *Frame, instr bytecode.Instruction) error {
	argc := instr.Operand
	args := make([]bytecode.Value, argc)
	for i := argc - 1; i >= 0; i-- {
		args[i] = f.pop()
	}
	callee, ok := f.lookup(instr.Name)
	if !ok {
		return newErr(NameError, instr.Line, "undefined function %q", instr.Name)
	}
	switch callee.Kind {
	case bytecode.KindHostFn:
		result, err := callee.Host(args)
		if err != nil {
			return err
		}
		f.push(result)
		return nil
	case bytecode.KindFunction:
		fn := callee.Fn
		if len(fn.Params) != argc {
			return newErr(ArityError, instr.Line, "%s expects %d argument(s), got %d", fn.Name, len(fn.Params), argc)
		}
		locals := make(map[string]bytecode.Value, len(fn.Params))
		for i, p := range fn.Params {
			locals[p] = args[i]
		}
		return v.pushFrameRaw(newFrame(fn.Code, locals, v.globals, true))
	default:
		return newErr(TypeError, instr.Line, "%q is not callable (%s)", instr.Name, callee.Kind)
	}
}

// execForLoop implements the corrected for-loop: the end bound was already
// evaluated and pushed by the instructions immediately preceding this one,
// so it is read fresh from the stack on every entry (a literal-only bound may
// have been folded to one CONST by the compiler, but is still pushed here).
// The body runs once per index as a fresh child frame sharing this frame's
// Locals/Globals references — a for-loop is not its own variable scope.
func (v *VM) execForLoop(f *Frame, instr bytecode.Instruction) error {
	bound := f.pop()
	proto := instr.ForLoop

	start, ok := f.lookup(proto.Var)
	if !ok {
		return newErr(UnhandledOpcode, instr.Line, "for-loop variable %q not initialized", proto.Var)
	}
	if start.Kind != bytecode.KindInt || bound.Kind != bytecode.KindInt {
		return newErr(TypeError, instr.Line, "for-loop bounds must be int, got %s..%s", start.Kind, bound.Kind)
	}

	for i := start.Int; i < bound.Int; i++ {
		f.Locals[proto.Var] = bytecode.IntValue(i)

		depthBefore := len(v.frames)
		body := newFrame(proto.Body, f.Locals, f.Globals, false)
		if err := v.pushFrameRaw(body); err != nil {
			return err
		}
		if err := v.runFrameSync(depthBefore + 1); err != nil {
			return err
		}
		if len(v.frames) < depthBefore {
			// A return propagated through this frame (and possibly further);
			// the enclosing frame f no longer exists, so there is nothing
			// left for this instruction to do.
			return nil
		}
		if body.Broke {
			break
		}
	}
	return nil
}

func (v *VM) execSubscr(f *Frame, instr bytecode.Instruction) error {
	idx := f.pop()
	coll := f.pop()
	switch coll.Kind {
	case bytecode.KindList:
		if idx.Kind != bytecode.KindInt {
			return newErr(TypeError, instr.Line, "list index must be int, got %s", idx.Kind)
		}
		i := idx.Int
		if i < 0 {
			i += int64(len(coll.List))
		}
		if i < 0 || i >= int64(len(coll.List)) {
			return newErr(IndexError, instr.Line, "list index %d out of range (len %d)", idx.Int, len(coll.List))
		}
		f.push(coll.List[i])
	case bytecode.KindDict:
		if !idx.IsHashable() {
			return newErr(TypeError, instr.Line, "unhashable dict key of type %s", idx.Kind)
		}
		entry, ok := coll.Dict[bytecode.KeyOf(idx)]
		if !ok {
			return newErr(KeyError, instr.Line, "key %s not found", idx.String())
		}
		f.push(entry.Val)
	case bytecode.KindString:
		if idx.Kind != bytecode.KindInt {
			return newErr(TypeError, instr.Line, "string index must be int, got %s", idx.Kind)
		}
		runes := []rune(coll.Str)
		i := idx.Int
		if i < 0 {
			i += int64(len(runes))
		}
		if i < 0 || i >= int64(len(runes)) {
			return newErr(IndexError, instr.Line, "string index %d out of range (len %d)", idx.Int, len(runes))
		}
		f.push(bytecode.StringValue(string(runes[i])))
	default:
		return newErr(TypeError, instr.Line, "%s is not subscriptable", coll.Kind)
	}
	return nil
}
