// Package errsnippet formats a diagnostic with a caret pointing at the
// offending column in its source line, colored through fatih/color
// (auto-detecting an interactive terminal via mattn/go-isatty) instead of
// hand-written ANSI escapes.
package errsnippet

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/axon-lang/axon/internal/token"
)

var (
	boldMsg  = color.New(color.Bold)
	caretRed = color.New(color.FgRed, color.Bold)
	dimLine  = color.New(color.Faint)
)

func init() {
	enabled := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	color.NoColor = !enabled
}

// Format renders message with a one-line source snippet and a caret under
// pos.Column. file may be empty, in which case the header omits it.
func Format(file, source, message string, pos token.Position) string {
	var b strings.Builder

	if file != "" {
		fmt.Fprintf(&b, "Error in %s:%d:%d\n", file, pos.Line, pos.Column)
	} else {
		fmt.Fprintf(&b, "Error at %d:%d\n", pos.Line, pos.Column)
	}

	if line := sourceLine(source, pos.Line); line != "" {
		gutter := fmt.Sprintf("%4d | ", pos.Line)
		dimLine.Fprint(&b, gutter)
		b.WriteString(line)
		b.WriteByte('\n')

		b.WriteString(strings.Repeat(" ", len(gutter)+pos.Column-1))
		caretRed.Fprint(&b, "^")
		b.WriteByte('\n')
	}

	boldMsg.Fprint(&b, message)
	return b.String()
}

// FormatAll renders every diagnostic in diags, each carrying its own
// message and position, separated and numbered the way multi-error
// compiler output is shown.
func FormatAll(file, source string, diags []struct {
	Message string
	Pos     token.Position
}) string {
	if len(diags) == 0 {
		return ""
	}
	if len(diags) == 1 {
		return Format(file, source, diags[0].Message, diags[0].Pos)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d error(s):\n\n", len(diags))
	for i, d := range diags {
		fmt.Fprintf(&b, "[%d/%d] ", i+1, len(diags))
		b.WriteString(Format(file, source, d.Message, d.Pos))
		if i < len(diags)-1 {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

func sourceLine(source string, line int) string {
	if source == "" || line < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}
