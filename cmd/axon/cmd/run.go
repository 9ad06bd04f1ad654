package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/axon-lang/axon/internal/bytecode"
	"github.com/axon-lang/axon/internal/errsnippet"
	"github.com/axon-lang/axon/internal/lexer"
	"github.com/axon-lang/axon/internal/parser"
	"github.com/axon-lang/axon/internal/semantic"
	"github.com/axon-lang/axon/internal/token"
	"github.com/axon-lang/axon/internal/vm"
)

var (
	evalExpr string
	dumpAST  bool
	analyze  bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run an Axon file or expression",
	Long: `Execute an Axon program from a file or inline snippet.

Examples:
  # Run a script file
  axon run script.axon

  # Evaluate an inline snippet
  axon run -e 'print(1 + 2);'

  # Run with AST dump (for debugging)
  axon run --dump-ast script.axon`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST before running")
	runCmd.Flags().BoolVar(&analyze, "analyze", true, "run the static analyzer and print warnings before executing")
}

func runScript(_ *cobra.Command, args []string) error {
	input, filename, err := resolveInput(evalExpr, args)
	if err != nil {
		return err
	}

	l := lexer.New(input)
	p := parser.New(l)
	program, perr := p.ParseProgram()
	if perr != nil {
		printParseError(filename, input, perr)
		return fmt.Errorf("parsing failed")
	}

	if analyze {
		for _, d := range semantic.Analyze(program) {
			fmt.Fprintf(os.Stderr, "%s\n", errsnippet.Format(filename, input, d.Message, d.Pos))
		}
	}

	if dumpAST {
		fmt.Println(program.String())
	}

	code, err := bytecode.Compile(program, bytecode.WithOptimize(cfg.Optimize))
	if err != nil {
		return fmt.Errorf("compilation failed: %w", err)
	}

	machine := vm.New(cfg.VMOptions()...)
	if _, err := machine.Run(code); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return fmt.Errorf("execution failed")
	}
	return nil
}

func resolveInput(eval string, args []string) (input, filename string, err error) {
	if eval != "" {
		return eval, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e for inline code")
}

func printParseError(filename, source string, err error) {
	fmt.Fprintln(os.Stderr, errsnippet.Format(filename, source, err.Error(), parseErrorPos(err)))
}

// parseErrorPos extracts the source position from a parser.ParseError, or
// the zero Position if err isn't one (it always is, in practice).
func parseErrorPos(err error) token.Position {
	if pe, ok := err.(*parser.ParseError); ok {
		return pe.Pos
	}
	return token.Position{}
}
