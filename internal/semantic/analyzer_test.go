package semantic

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/axon-lang/axon/internal/lexer"
	"github.com/axon-lang/axon/internal/parser"
)

func diagnose(t *testing.T, src string) []Diagnostic {
	t.Helper()
	p := parser.New(lexer.New(src))
	prog, err := p.ParseProgram()
	require.NoError(t, err)
	return Analyze(prog)
}

func TestNoDiagnosticsForCleanProgram(t *testing.T) {
	diags := diagnose(t, `let x = 1; print(x);`)
	require.Empty(t, diags)
}

func TestWarnsOnUseBeforeAssignment(t *testing.T) {
	diags := diagnose(t, `print(x);`)
	require.Len(t, diags, 1)
	require.Contains(t, diags[0].Message, "used before any assignment")
}

func TestWarnsOnBreakOutsideLoop(t *testing.T) {
	diags := diagnose(t, `break;`)
	require.Len(t, diags, 1)
	require.Contains(t, diags[0].Message, "break outside a loop")
}

func TestWarnsOnContinueOutsideLoop(t *testing.T) {
	diags := diagnose(t, `continue;`)
	require.Len(t, diags, 1)
	require.Contains(t, diags[0].Message, "continue outside a loop")
}

func TestWarnsOnReturnOutsideFunction(t *testing.T) {
	diags := diagnose(t, `return 1;`)
	require.Len(t, diags, 1)
	require.Contains(t, diags[0].Message, "return outside a function")
}

func TestNoWarningForBreakInsideWhile(t *testing.T) {
	diags := diagnose(t, `while 1 { break; }`)
	require.Empty(t, diags)
}

func TestNoWarningForBreakInsideForBody(t *testing.T) {
	diags := diagnose(t, `for i = 0; 3 { break; }`)
	require.Empty(t, diags)
}

func TestNoWarningForReturnInsideFunction(t *testing.T) {
	diags := diagnose(t, `fn f() { return 1; }`)
	require.Empty(t, diags)
}

func TestFunctionScopeDoesNotCloseOverEnclosingScope(t *testing.T) {
	diags := diagnose(t, `
		let x = 1;
		fn f() {
			print(x);
		}
	`)
	require.Len(t, diags, 1)
	require.Contains(t, diags[0].Message, `"x" is used before any assignment`)
}

func TestForLoopVariableIsPreassignedInBody(t *testing.T) {
	diags := diagnose(t, `for i = 0; 3 { print(i); }`)
	require.Empty(t, diags)
}

func TestIfBranchesShareEnclosingScope(t *testing.T) {
	diags := diagnose(t, `
		let cond = 1;
		if cond {
			let y = 1;
		} else {
			print(y);
		}
	`)
	// y is assigned only in the then-branch; the analyzer doesn't model
	// branch-exclusivity, so no warning is expected here either way, but the
	// condition variable itself must not trigger one.
	for _, d := range diags {
		require.NotContains(t, d.Message, `"cond"`)
	}
}
