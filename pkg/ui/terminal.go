// Package ui provides the console output of a publishing run: coloured step
// lines and an upload progress bar for interactive sessions.
package ui

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// IsInteractive reports whether w is a terminal. Anything that is not an
// *os.File (a buffer, a pipe wrapper) is treated as non-interactive.
func IsInteractive(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
