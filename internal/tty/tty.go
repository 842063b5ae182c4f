// Package tty provides terminal width detection used to format register and memory dumps for the
// width of whatever is consuming the CLI's output. Interactive console I/O -- raw mode, keyboard
// and display device adaptation -- is out of scope; see DESIGN.md.
package tty

import (
	"os"

	"golang.org/x/term"
)

// DefaultWidth is used when the output stream is not a terminal, or its size cannot be determined.
const DefaultWidth = 80

// Width returns the width, in columns, of the terminal attached to out, or DefaultWidth if out is
// not a terminal.
func Width(out *os.File) int {
	if !term.IsTerminal(int(out.Fd())) {
		return DefaultWidth
	}

	width, _, err := term.GetSize(int(out.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}

	return width
}
