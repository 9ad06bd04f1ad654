// Package vm executes the bytecode the compiler package produces: a
// frame-based, stack-dispatch interpreter in the tradition of CPython's
// ceval loop, scaled down to Axon's small instruction set.
package vm

import (
	"io"
	"os"

	"github.com/axon-lang/axon/internal/bytecode"
)

// DefaultMaxFrameDepth bounds call/loop-body nesting before the VM raises
// StackOverflow rather than exhausting the Go goroutine stack on runaway
// recursion.
const DefaultMaxFrameDepth = 1024

// Option configures a VM at construction time.
type Option func(*VM)

// WithStdout redirects PRINT output away from os.Stdout, mainly for tests
// and the embedding API.
func WithStdout(w io.Writer) Option {
	return func(v *VM) { v.stdout = w }
}

// WithMaxFrameDepth overrides DefaultMaxFrameDepth.
func WithMaxFrameDepth(n int) Option {
	return func(v *VM) { v.maxFrameDepth = n }
}

// WithClearScreen installs the function CLS invokes. The default writes the
// ANSI clear-screen sequence to stdout; tests and non-TTY embedders will
// usually pass a no-op.
func WithClearScreen(fn func() error) Option {
	return func(v *VM) { v.clearScreen = fn }
}

// WithGlobals seeds the VM's global namespace, e.g. with additional host
// functions beyond the built-in set.
func WithGlobals(globals map[string]bytecode.Value) Option {
	return func(v *VM) {
		for name, val := range globals {
			v.globals[name] = val
		}
	}
}

// VM holds the interpreter's entire mutable state: the global namespace and
// the call stack of frames currently executing.
type VM struct {
	frames        []*Frame
	globals       map[string]bytecode.Value
	maxFrameDepth int
	stdout        io.Writer
	clearScreen   func() error
}

// New builds a VM with the standard builtins (print, cls, len, type)
// already installed in globals.
func New(opts ...Option) *VM {
	v := &VM{
		globals:       make(map[string]bytecode.Value),
		maxFrameDepth: DefaultMaxFrameDepth,
		stdout:        os.Stdout,
	}
	v.clearScreen = func() error {
		_, err := io.WriteString(v.stdout, "\x1b[2J\x1b[H")
		return err
	}
	for _, opt := range opts {
		opt(v)
	}
	installBuiltins(v)
	return v
}

// PushFrame starts a fresh top-level frame for code, sharing the VM's
// globals as both Locals and Globals — at top level there is no separate
// local scope, so a STORE_NAME at this frame writes straight into globals.
func (v *VM) PushFrame(code *bytecode.CodeObject) *Frame {
	f := newFrame(code, v.globals, v.globals, false)
	v.frames = append(v.frames, f)
	return f
}

func (v *VM) pushFrameRaw(f *Frame) error {
	if len(v.frames) >= v.maxFrameDepth {
		return newErr(StackOverflow, 0, "exceeded max frame depth of %d", v.maxFrameDepth)
	}
	v.frames = append(v.frames, f)
	return nil
}

func (v *VM) popFrame() *Frame {
	n := len(v.frames)
	f := v.frames[n-1]
	v.frames = v.frames[:n-1]
	return f
}

func (v *VM) topFrame() *Frame {
	return v.frames[len(v.frames)-1]
}

// Run drives the dispatch loop until the frame stack empties. The returned
// Value is always Nil; only the error carries information.
func (v *VM) Run(code *bytecode.CodeObject) (bytecode.Value, error) {
	v.PushFrame(code)
	return v.runLoop()
}

// Globals exposes the VM's global namespace to embedders, e.g. to inspect
// state after a script runs in a REPL.
func (v *VM) Globals() map[string]bytecode.Value {
	return v.globals
}
