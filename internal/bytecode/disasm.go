package bytecode

import (
	"fmt"
	"strings"
)

// Disassemble renders a CodeObject as human-readable text, recursing into
// nested function and for-loop body code objects. It is used by the `axon
// dump` command, by `axon compile --disassemble`, and by the golden-listing
// tests in disasm_test.go.
func Disassemble(code *CodeObject) string {
	var b strings.Builder
	disassemble(&b, code, "")
	return b.String()
}

func disassemble(b *strings.Builder, code *CodeObject, indent string) {
	fmt.Fprintf(b, "%s%s:\n", indent, code.Name)
	for i, instr := range code.Code {
		fmt.Fprintf(b, "%s%4d  %-20s", indent, i, instr.Op)
		switch instr.Op {
		case OpConst:
			fmt.Fprintf(b, "%d (%s)", instr.Operand, code.Constants[instr.Operand].String())
		case OpLoadName, OpStoreName:
			fmt.Fprintf(b, "%s", instr.Name)
		case OpCallFunction:
			fmt.Fprintf(b, "%s, argc=%d", instr.Name, instr.Operand)
		case OpBuildList, OpBuildDict:
			fmt.Fprintf(b, "%d", instr.Operand)
		case OpJump, OpJumpIfFalse, OpJumpIfFalseNoPop, OpJumpIfTrueNoPop:
			fmt.Fprintf(b, "%+d -> %d", instr.Operand, i+instr.Operand)
		case OpBreak, OpContinue:
			if instr.Unbound {
				fmt.Fprintf(b, "<unbound>")
			} else {
				fmt.Fprintf(b, "%+d -> %d", instr.Operand, i+instr.Operand)
				if instr.CrossesFrame {
					fmt.Fprintf(b, " (crosses frame)")
				}
			}
		case OpMakeFunction:
			fmt.Fprintf(b, "%s(%s)", instr.Function.Name, strings.Join(instr.Function.Params, ", "))
		case OpForLoop:
			fmt.Fprintf(b, "%s", instr.ForLoop.Var)
		}
		b.WriteByte('\n')
	}
	for _, instr := range code.Code {
		if instr.Function != nil {
			disassemble(b, instr.Function.Code, indent+"  ")
		}
		if instr.ForLoop != nil {
			disassemble(b, instr.ForLoop.Body, indent+"  ")
		}
	}
}
