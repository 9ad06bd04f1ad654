package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/axon-lang/axon/internal/bytecode"
	"github.com/axon-lang/axon/internal/errsnippet"
	"github.com/axon-lang/axon/internal/lexer"
	"github.com/axon-lang/axon/internal/parser"
	"github.com/axon-lang/axon/internal/semantic"
	"github.com/axon-lang/axon/internal/vm"
)

var (
	replCyan = color.New(color.FgCyan)
	replRed  = color.New(color.FgRed)
	replBlue = color.New(color.FgBlue)
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Axon session",
	Long: `Start a read-eval-print loop. Each line you enter is parsed and
compiled on its own, but runs against the same VM, so variables and
functions defined on one line stay visible on the next.

Type .exit or press Ctrl-D to quit.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(_ *cobra.Command, _ []string) error {
	rl, err := readline.New("axon> ")
	if err != nil {
		return fmt.Errorf("failed to start readline: %w", err)
	}
	defer rl.Close()

	replBlue.Fprintln(rl.Stdout(), "Axon "+Version+" — type .exit or Ctrl-D to quit")

	machine := vm.New(cfg.VMOptions()...)

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF on Ctrl-D, readline.ErrInterrupt on Ctrl-C
			if err == readline.ErrInterrupt {
				continue
			}
			if err != io.EOF {
				replRed.Fprintf(rl.Stdout(), "readline error: %v\n", err)
			}
			fmt.Fprintln(rl.Stdout(), "bye")
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			fmt.Fprintln(rl.Stdout(), "bye")
			return nil
		}
		rl.SaveHistory(line)

		evalLine(rl.Stdout(), machine, line)
	}
}

func evalLine(w io.Writer, machine *vm.VM, line string) {
	l := lexer.New(line)
	p := parser.New(l)
	program, perr := p.ParseProgram()
	if perr != nil {
		replRed.Fprintln(w, errsnippet.Format("<repl>", line, perr.Error(), parseErrorPos(perr)))
		return
	}

	for _, d := range semantic.Analyze(program) {
		replCyan.Fprintln(w, errsnippet.Format("<repl>", line, d.Message, d.Pos))
	}

	code, err := bytecode.Compile(program, bytecode.WithOptimize(cfg.Optimize))
	if err != nil {
		replRed.Fprintf(w, "compile error: %v\n", err)
		return
	}

	if _, err := machine.Run(code); err != nil {
		replRed.Fprintf(w, "%v\n", err)
	}
}
