package vm

import (
	"github.com/axon-lang/axon/internal/bytecode"
)

// numericPair promotes an (int, int) pair to (float, float) whenever either
// side is a float, mirroring ordinary arithmetic promotion; ok is false
// when either operand is not numeric.
func numericPair(l, r bytecode.Value) (lf, rf float64, bothInt bool, ok bool) {
	switch {
	case l.Kind == bytecode.KindInt && r.Kind == bytecode.KindInt:
		return float64(l.Int), float64(r.Int), true, true
	case l.Kind == bytecode.KindInt && r.Kind == bytecode.KindFloat:
		return float64(l.Int), r.Flt, false, true
	case l.Kind == bytecode.KindFloat && r.Kind == bytecode.KindInt:
		return l.Flt, float64(r.Int), false, true
	case l.Kind == bytecode.KindFloat && r.Kind == bytecode.KindFloat:
		return l.Flt, r.Flt, false, true
	default:
		return 0, 0, false, false
	}
}

func (v *VM) execArith(f *Frame, instr bytecode.Instruction) error {
	r := f.pop()
	l := f.pop()

	if instr.Op == bytecode.OpBinaryAdd {
		if l.Kind == bytecode.KindString && r.Kind == bytecode.KindString {
			f.push(bytecode.StringValue(l.Str + r.Str))
			return nil
		}
		if l.Kind == bytecode.KindList && r.Kind == bytecode.KindList {
			combined := make([]bytecode.Value, 0, len(l.List)+len(r.List))
			combined = append(combined, l.List...)
			combined = append(combined, r.List...)
			f.push(bytecode.ListValue(combined))
			return nil
		}
	}

	lf, rf, bothInt, ok := numericPair(l, r)
	if !ok {
		return newErr(TypeError, instr.Line, "unsupported operand types for %s: %s and %s", instr.Op, l.Kind, r.Kind)
	}

	switch instr.Op {
	case bytecode.OpBinaryAdd:
		return pushArith(f, bothInt, lf+rf)
	case bytecode.OpBinarySub:
		return pushArith(f, bothInt, lf-rf)
	case bytecode.OpBinaryMul:
		return pushArith(f, bothInt, lf*rf)
	case bytecode.OpBinaryDiv:
		if rf == 0 {
			return newErr(TypeError, instr.Line, "division by zero")
		}
		// Division always yields a float, even for two ints (5 / 2 == 2.5):
		// Axon has no separate integer-division operator.
		f.push(bytecode.FloatValue(lf / rf))
		return nil
	case bytecode.OpBinaryMod:
		if rf == 0 {
			return newErr(TypeError, instr.Line, "division by zero")
		}
		if bothInt {
			f.push(bytecode.IntValue(l.Int % r.Int))
			return nil
		}
		f.push(bytecode.FloatValue(modFloat(lf, rf)))
		return nil
	}
	return newErr(UnhandledOpcode, instr.Line, "unhandled arithmetic opcode %s", instr.Op)
}

func modFloat(a, b float64) float64 {
	m := a - b*float64(int64(a/b))
	return m
}

func pushArith(f *Frame, bothInt bool, result float64) error {
	if bothInt {
		f.push(bytecode.IntValue(int64(result)))
		return nil
	}
	f.push(bytecode.FloatValue(result))
	return nil
}

func (v *VM) execCompare(f *Frame, instr bytecode.Instruction) error {
	r := f.pop()
	l := f.pop()

	switch instr.Op {
	case bytecode.OpCompareEq:
		f.push(bytecode.BoolValue(l.Equal(r)))
		return nil
	case bytecode.OpCompareNe:
		f.push(bytecode.BoolValue(!l.Equal(r)))
		return nil
	}

	if l.Kind == bytecode.KindString && r.Kind == bytecode.KindString {
		var result bool
		switch instr.Op {
		case bytecode.OpCompareLt:
			result = l.Str < r.Str
		case bytecode.OpCompareLe:
			result = l.Str <= r.Str
		case bytecode.OpCompareGt:
			result = l.Str > r.Str
		case bytecode.OpCompareGe:
			result = l.Str >= r.Str
		}
		f.push(bytecode.BoolValue(result))
		return nil
	}

	lf, rf, _, ok := numericPair(l, r)
	if !ok {
		return newErr(TypeError, instr.Line, "unsupported operand types for %s: %s and %s", instr.Op, l.Kind, r.Kind)
	}
	var result bool
	switch instr.Op {
	case bytecode.OpCompareLt:
		result = lf < rf
	case bytecode.OpCompareLe:
		result = lf <= rf
	case bytecode.OpCompareGt:
		result = lf > rf
	case bytecode.OpCompareGe:
		result = lf >= rf
	}
	f.push(bytecode.BoolValue(result))
	return nil
}
