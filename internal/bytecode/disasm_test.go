package bytecode

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/axon-lang/axon/internal/lexer"
	"github.com/axon-lang/axon/internal/parser"
)

// TestDisassembleGoldenListings pins the exact text Disassemble renders for a
// handful of programs exercising every instruction shape that carries a
// non-trivial operand (jumps, loop bodies, function protos), the same
// golden-output style the wider dependency stack uses for snapshot testing.
func TestDisassembleGoldenListings(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"if_else", `if 1 { print(1); } else { print(2); }`},
		{"while_loop", `let i = 0; while i < 3 { i = i + 1; }`},
		{"for_loop_with_break", `for i = 0; 5 { if i == 2 { break; } print(i); }`},
		{"function_proto", `fn add(a, b) { return a + b; } print(add(1, 2));`},
		{"short_circuit", `print(1 and 2); print(0 or 3);`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := parser.New(lexer.New(tc.src))
			prog, err := p.ParseProgram()
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}
			code, err := Compile(prog, WithOptimize(false))
			if err != nil {
				t.Fatalf("compile error: %v", err)
			}
			snaps.MatchSnapshot(t, tc.name, Disassemble(code))
		})
	}
}
