package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/axon-lang/axon/internal/bytecode"
	"github.com/axon-lang/axon/internal/errsnippet"
	"github.com/axon-lang/axon/internal/lexer"
	"github.com/axon-lang/axon/internal/parser"
	"github.com/axon-lang/axon/internal/semantic"
)

var (
	compileOutput      string
	compileSkipAnalyze bool
	compileDisasm      bool
	compileVerbose     bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile an Axon file to bytecode",
	Long: `Compile an Axon program to bytecode and save it as a .axc file.

The .axc file holds the compiled bytecode as JSON; it can be inspected with
'axon dump'. 'axon run' always runs from source and does not load .axc files.

Examples:
  # Compile a script to bytecode
  axon compile script.axon

  # Compile with a custom output path
  axon compile script.axon -o out.axc

  # Compile and print the disassembly
  axon compile script.axon --disassemble`,
	Args: cobra.ExactArgs(1),
	RunE: compileScript,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "output file (default: <input>.axc)")
	compileCmd.Flags().BoolVar(&compileSkipAnalyze, "skip-analyze", false, "skip the static analyzer pass")
	compileCmd.Flags().BoolVar(&compileDisasm, "disassemble", false, "print the disassembled bytecode after compiling")
	compileCmd.Flags().BoolVarP(&compileVerbose, "verbose", "v", false, "verbose output")
}

func compileScript(_ *cobra.Command, args []string) error {
	filename := args[0]

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	input := string(content)

	if compileVerbose {
		fmt.Fprintf(os.Stderr, "compiling %s...\n", filename)
	}

	l := lexer.New(input)
	p := parser.New(l)
	program, perr := p.ParseProgram()
	if perr != nil {
		printParseError(filename, input, perr)
		return fmt.Errorf("parsing failed")
	}

	if !compileSkipAnalyze {
		for _, d := range semantic.Analyze(program) {
			fmt.Fprintln(os.Stderr, errsnippet.Format(filename, input, d.Message, d.Pos))
		}
	}

	code, err := bytecode.Compile(program, bytecode.WithOptimize(cfg.Optimize))
	if err != nil {
		return fmt.Errorf("bytecode compilation failed: %w", err)
	}

	if compileVerbose {
		fmt.Fprintf(os.Stderr, "  instructions: %d\n", len(code.Code))
		fmt.Fprintf(os.Stderr, "  constants:    %d\n", len(code.Constants))
	}

	if compileDisasm {
		fmt.Fprintf(os.Stderr, "\n== disassembly: %s ==\n", code.Name)
		fmt.Fprintln(os.Stderr, bytecode.Disassemble(code))
	}

	outFile := compileOutput
	if outFile == "" {
		ext := filepath.Ext(filename)
		if ext != "" {
			outFile = strings.TrimSuffix(filename, ext) + ".axc"
		} else {
			outFile = filename + ".axc"
		}
	}

	data, err := bytecode.Encode(code)
	if err != nil {
		return fmt.Errorf("failed to encode bytecode: %w", err)
	}
	if err := os.WriteFile(outFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outFile, err)
	}

	if compileVerbose {
		fmt.Fprintf(os.Stderr, "bytecode written to %s (%d bytes)\n", outFile, len(data))
	} else {
		fmt.Printf("compiled %s -> %s\n", filename, outFile)
	}

	return nil
}
