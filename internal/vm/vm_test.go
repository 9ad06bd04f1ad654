package vm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/axon-lang/axon/internal/bytecode"
	"github.com/axon-lang/axon/internal/lexer"
	"github.com/axon-lang/axon/internal/parser"
)

// runSrc compiles and runs src against a fresh VM, returning everything PRINT
// wrote plus the VM so the test can inspect globals afterward.
func runSrc(t *testing.T, src string) (string, *VM, error) {
	t.Helper()
	p := parser.New(lexer.New(src))
	prog, err := p.ParseProgram()
	require.NoError(t, err)
	code, err := bytecode.Compile(prog)
	require.NoError(t, err)

	var out bytes.Buffer
	machine := New(WithStdout(&out))
	_, runErr := machine.Run(code)
	return out.String(), machine, runErr
}

func TestArithmeticAndPrint(t *testing.T) {
	out, _, err := runSrc(t, `print(2 + 3 * 4);`)
	require.NoError(t, err)
	require.Equal(t, "14\n", out)
}

func TestDivisionAlwaysYieldsFloat(t *testing.T) {
	out, _, err := runSrc(t, `print(4 / 2); print(type(4 / 2));`)
	require.NoError(t, err)
	require.Equal(t, "2\nfloat\n", out) // Float(2) prints without a trailing .0 in %v-style formatting
}

func TestDivisionByZeroRaisesRuntimeError(t *testing.T) {
	_, _, err := runSrc(t, `print(1 / 0);`)
	require.Error(t, err)
	rerr, ok := err.(*RuntimeError)
	require.True(t, ok)
	require.Equal(t, TypeError, rerr.Kind)
}

func TestStringConcatenation(t *testing.T) {
	out, _, err := runSrc(t, `print("a" + "b");`)
	require.NoError(t, err)
	require.Equal(t, "ab\n", out)
}

func TestListConcatenation(t *testing.T) {
	out, _, err := runSrc(t, `print([1, 2] + [3]);`)
	require.NoError(t, err)
	require.Equal(t, "[1, 2, 3]\n", out)
}

func TestListIndexingNegative(t *testing.T) {
	out, _, err := runSrc(t, `let xs = [1, 2, 3]; print(xs[-1]);`)
	require.NoError(t, err)
	require.Equal(t, "3\n", out)
}

func TestListIndexOutOfRange(t *testing.T) {
	_, _, err := runSrc(t, `let xs = [1]; print(xs[5]);`)
	require.Error(t, err)
	rerr := err.(*RuntimeError)
	require.Equal(t, IndexError, rerr.Kind)
}

func TestDictRoundTrip(t *testing.T) {
	out, _, err := runSrc(t, `let d = {"a": 1, "b": 2}; print(d["b"]);`)
	require.NoError(t, err)
	require.Equal(t, "2\n", out)
}

func TestDictMissingKeyRaisesKeyError(t *testing.T) {
	_, _, err := runSrc(t, `let d = {"a": 1}; print(d["z"]);`)
	require.Error(t, err)
	rerr := err.(*RuntimeError)
	require.Equal(t, KeyError, rerr.Kind)
}

func TestWhileLoopAccumulates(t *testing.T) {
	out, _, err := runSrc(t, `
		let i = 0;
		let sum = 0;
		while i < 5 {
			sum = sum + i;
			i = i + 1;
		}
		print(sum);
	`)
	require.NoError(t, err)
	require.Equal(t, "10\n", out)
}

func TestForLoopSharesEnclosingScope(t *testing.T) {
	out, _, err := runSrc(t, `
		let sum = 0;
		for i = 0; 5 {
			sum = sum + i;
		}
		print(sum);
	`)
	require.NoError(t, err)
	require.Equal(t, "10\n", out)
}

func TestBreakInsideForStopsTheLoop(t *testing.T) {
	out, _, err := runSrc(t, `
		let count = 0;
		for i = 0; 10 {
			if i == 3 {
				break;
			}
			count = count + 1;
		}
		print(count);
	`)
	require.NoError(t, err)
	require.Equal(t, "3\n", out)
}

func TestContinueInsideForSkipsRestOfBody(t *testing.T) {
	out, _, err := runSrc(t, `
		let sum = 0;
		for i = 0; 5 {
			if i == 2 {
				continue;
			}
			sum = sum + i;
		}
		print(sum);
	`)
	require.NoError(t, err)
	require.Equal(t, "8\n", out) // 0+1+3+4
}

func TestBreakInsideWhileNestedInForOnlyBreaksWhile(t *testing.T) {
	out, _, err := runSrc(t, `
		let total = 0;
		for i = 0; 3 {
			let j = 0;
			while j < 10 {
				if j == 2 {
					break;
				}
				total = total + 1;
				j = j + 1;
			}
		}
		print(total);
	`)
	require.NoError(t, err)
	require.Equal(t, "6\n", out) // 2 iterations of the while per outer pass, 3 outer passes
}

func TestReturnCrossesNestedForLoopFrames(t *testing.T) {
	out, _, err := runSrc(t, `
		fn smallestFactor() {
			for i = 1; 10 {
				for j = 1; 10 {
					if (i * j) == 6 {
						return i;
					}
				}
			}
			return -1;
		}
		print(smallestFactor());
	`)
	require.NoError(t, err)
	require.Equal(t, "1\n", out)
}

func TestFunctionCallGetsFreshLocals(t *testing.T) {
	out, _, err := runSrc(t, `
		let x = 100;
		fn f(x) {
			x = x + 1;
			return x;
		}
		print(f(1));
		print(x);
	`)
	require.NoError(t, err)
	require.Equal(t, "2\n100\n", out)
}

func TestArityErrorOnWrongArgCount(t *testing.T) {
	_, _, err := runSrc(t, `
		fn f(a, b) { return a + b; }
		f(1);
	`)
	require.Error(t, err)
	rerr := err.(*RuntimeError)
	require.Equal(t, ArityError, rerr.Kind)
}

func TestBreakOutsideLoopIsRuntimeError(t *testing.T) {
	_, _, err := runSrc(t, `fn f() { break; } f();`)
	require.Error(t, err)
	rerr := err.(*RuntimeError)
	require.Equal(t, LoopControlOutsideLoop, rerr.Kind)
}

func TestReturnOutsideFunctionIsRuntimeError(t *testing.T) {
	_, _, err := runSrc(t, `return 1;`)
	require.Error(t, err)
	rerr := err.(*RuntimeError)
	require.Equal(t, ReturnOutsideFunction, rerr.Kind)
}

func TestShortCircuitAndSkipsRightSideEffect(t *testing.T) {
	out, _, err := runSrc(t, `
		fn sideEffect() {
			print("called");
			return true;
		}
		print(false and sideEffect());
	`)
	require.NoError(t, err)
	require.Equal(t, "false\n", out)
}

func TestShortCircuitOrSkipsRightSideEffect(t *testing.T) {
	out, _, err := runSrc(t, `
		fn sideEffect() {
			print("called");
			return false;
		}
		print(true or sideEffect());
	`)
	require.NoError(t, err)
	require.Equal(t, "true\n", out)
}

func TestTruthinessTable(t *testing.T) {
	out, _, err := runSrc(t, `
		print(not 0);
		print(not 0.0);
		print(not "");
		print(not []);
		print(not {});
		print(not 1);
	`)
	require.NoError(t, err)
	require.Equal(t, "true\ntrue\ntrue\ntrue\ntrue\nfalse\n", out)
}

func TestBuiltinLen(t *testing.T) {
	out, _, err := runSrc(t, `
		print(len("hello"));
		print(len([1, 2, 3]));
	`)
	require.NoError(t, err)
	require.Equal(t, "5\n3\n", out)
}

func TestBuiltinType(t *testing.T) {
	out, _, err := runSrc(t, `print(type(1)); print(type("x")); print(type([1]));`)
	require.NoError(t, err)
	require.Equal(t, "int\nstring\nlist\n", out)
}

func TestStackOverflowOnUnboundedRecursion(t *testing.T) {
	p := parser.New(lexer.New(`
		fn loop() {
			return loop();
		}
		loop();
	`))
	prog, err := p.ParseProgram()
	require.NoError(t, err)
	code, err := bytecode.Compile(prog)
	require.NoError(t, err)

	machine := New(WithMaxFrameDepth(16))
	_, runErr := machine.Run(code)
	require.Error(t, runErr)
	rerr := runErr.(*RuntimeError)
	require.Equal(t, StackOverflow, rerr.Kind)
}
