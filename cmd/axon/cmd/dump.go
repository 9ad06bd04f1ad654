package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/axon-lang/axon/internal/bytecode"
	"github.com/axon-lang/axon/internal/lexer"
	"github.com/axon-lang/axon/internal/parser"
)

var (
	dumpQuery  string
	dumpAsJSON bool
)

var dumpCmd = &cobra.Command{
	Use:   "dump [file]",
	Short: "Inspect a compiled .axc file or a source file's bytecode",
	Long: `Print the bytecode for an Axon program, either as a human-readable
disassembly or as JSON. If the file ends in .axc it's treated as
already-compiled bytecode; otherwise it's lexed, parsed, and compiled first.

Use --query with a gjson path expression to pull a single field out of the
JSON form instead of printing the whole object, e.g.:

  axon dump script.axon --query "code.#.op"`,
	Args: cobra.ExactArgs(1),
	RunE: dumpBytecode,
}

func init() {
	rootCmd.AddCommand(dumpCmd)

	dumpCmd.Flags().StringVar(&dumpQuery, "query", "", "gjson path to extract from the JSON dump")
	dumpCmd.Flags().BoolVar(&dumpAsJSON, "json", false, "print the JSON encoding instead of a disassembly")
}

func dumpBytecode(_ *cobra.Command, args []string) error {
	filename := args[0]

	code, err := loadCodeObject(filename)
	if err != nil {
		return err
	}

	if dumpQuery != "" {
		data, err := bytecode.Encode(code)
		if err != nil {
			return fmt.Errorf("encoding bytecode: %w", err)
		}
		result, err := bytecode.QueryDump(data, dumpQuery)
		if err != nil {
			return fmt.Errorf("query failed: %w", err)
		}
		fmt.Println(result)
		return nil
	}

	if dumpAsJSON {
		data, err := bytecode.Encode(code)
		if err != nil {
			return fmt.Errorf("encoding bytecode: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println(bytecode.Disassemble(code))
	return nil
}

// loadCodeObject reads filename and produces a CodeObject: directly via
// Decode if it's already-compiled bytecode, otherwise by running the full
// lex/parse/compile pipeline over its source.
func loadCodeObject(filename string) (*bytecode.CodeObject, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	if len(filename) > 4 && filename[len(filename)-4:] == ".axc" {
		code, err := bytecode.Decode(content)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", filename, err)
		}
		return code, nil
	}

	input := string(content)
	l := lexer.New(input)
	p := parser.New(l)
	program, perr := p.ParseProgram()
	if perr != nil {
		printParseError(filename, input, perr)
		return nil, fmt.Errorf("parsing failed")
	}

	code, err := bytecode.Compile(program, bytecode.WithOptimize(cfg.Optimize))
	if err != nil {
		return nil, fmt.Errorf("compilation failed: %w", err)
	}
	return code, nil
}
