// Package axon is the embedding API: parse, compile, and run Axon source
// without going through the cmd/axon CLI. It wraps internal/lexer,
// internal/parser, internal/bytecode, and internal/vm behind the three
// calls an embedder actually needs.
package axon

import (
	"io"

	"github.com/axon-lang/axon/internal/ast"
	"github.com/axon-lang/axon/internal/bytecode"
	"github.com/axon-lang/axon/internal/lexer"
	"github.com/axon-lang/axon/internal/parser"
	"github.com/axon-lang/axon/internal/vm"
)

// Re-exported so embedders can build a VM and register extra host
// functions without importing internal/* packages directly.
type (
	Value    = bytecode.Value
	HostFn   = bytecode.HostFn
	VM       = vm.VM
	VMOption = vm.Option
)

// Parse lexes and parses source, stopping at the first syntax error.
func Parse(source string) (*ast.Program, error) {
	l := lexer.New(source)
	p := parser.New(l)
	return p.ParseProgram()
}

// Compile parses and compiles source into a CodeObject ready to run.
func Compile(source string, opts ...bytecode.CompilerOption) (*bytecode.CodeObject, error) {
	prog, err := Parse(source)
	if err != nil {
		return nil, err
	}
	return bytecode.Compile(prog, opts...)
}

// NewVM constructs a VM with the standard builtins installed.
func NewVM(opts ...VMOption) *VM {
	return vm.New(opts...)
}

// WithStdout redirects PRINT output.
func WithStdout(w io.Writer) VMOption { return vm.WithStdout(w) }

// Run compiles and executes source in one call against a fresh VM,
// returning the VM so the caller can inspect globals afterward.
func Run(source string, opts ...VMOption) (*VM, error) {
	code, err := Compile(source)
	if err != nil {
		return nil, err
	}
	machine := NewVM(opts...)
	if _, err := machine.Run(code); err != nil {
		return machine, err
	}
	return machine, nil
}
