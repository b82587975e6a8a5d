// Package tty reports whether the standard streams are attached to a terminal.
package tty

import (
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether f refers to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// IsStdoutTerminal reports whether stdout is a terminal.
func IsStdoutTerminal() bool {
	return IsTerminal(os.Stdout)
}

// IsStderrTerminal reports whether stderr is a terminal.
func IsStderrTerminal() bool {
	return IsTerminal(os.Stderr)
}

// IsStdinTerminal reports whether stdin is a terminal. Interactive prompts
// require both stdin and stderr to be terminals.
func IsStdinTerminal() bool {
	return IsTerminal(os.Stdin)
}
