package vm

import (
	"fmt"

	"github.com/axon-lang/axon/internal/bytecode"
)

// installBuiltins seeds globals with the host functions every Axon program
// can call without a fn declaration. PRINT and CLS are also reachable as
// dedicated opcodes (PRINT/CLEAR) for the print/cls statement forms; len and
// type are ordinary function calls since they only ever appear as
// expressions.
func installBuiltins(v *VM) {
	v.globals["print"] = bytecode.HostFnValue(func(args []bytecode.Value) (bytecode.Value, error) {
		if len(args) != 1 {
			return bytecode.Nil, &RuntimeError{Kind: ArityError, Detail: fmt.Sprintf("print expects 1 argument, got %d", len(args))}
		}
		_, err := fmt.Fprintln(v.stdout, args[0].String())
		return bytecode.Nil, err
	})
	v.globals["cls"] = bytecode.HostFnValue(func(args []bytecode.Value) (bytecode.Value, error) {
		return bytecode.Nil, v.clearScreen()
	})
	v.globals["len"] = bytecode.HostFnValue(builtinLen)
	v.globals["type"] = bytecode.HostFnValue(builtinType)
}

func builtinLen(args []bytecode.Value) (bytecode.Value, error) {
	if len(args) != 1 {
		return bytecode.Nil, &RuntimeError{Kind: ArityError, Detail: fmt.Sprintf("len expects 1 argument, got %d", len(args))}
	}
	switch args[0].Kind {
	case bytecode.KindString:
		return bytecode.IntValue(int64(len([]rune(args[0].Str)))), nil
	case bytecode.KindList:
		return bytecode.IntValue(int64(len(args[0].List))), nil
	case bytecode.KindDict:
		return bytecode.IntValue(int64(len(args[0].Dict))), nil
	default:
		return bytecode.Nil, &RuntimeError{Kind: TypeError, Detail: fmt.Sprintf("len() has no meaning for %s", args[0].Kind)}
	}
}

func builtinType(args []bytecode.Value) (bytecode.Value, error) {
	if len(args) != 1 {
		return bytecode.Nil, &RuntimeError{Kind: ArityError, Detail: fmt.Sprintf("type expects 1 argument, got %d", len(args))}
	}
	return bytecode.StringValue(args[0].Kind.String()), nil
}
