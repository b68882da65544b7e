// Package ui holds the terminal-facing pieces: interactive chooser, spinner
// and label fitting.
package ui

import (
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

const (
	minLabelWidth = 20
	// room for the cursor and selection marker huh draws before a label
	labelPadding = 6
	ellipsis     = "…"
)

// IsTerminal reports whether v is an *os.File attached to a terminal.
func IsTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok || f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// TerminalWidth returns the width of f, or 0 when unknown.
func TerminalWidth(f *os.File) int {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// FitLabel shortens label to fit in width columns. A width of zero or less
// leaves the label unchanged.
func FitLabel(label string, width int) string {
	if width <= 0 {
		return label
	}
	limit := width - labelPadding
	if limit < minLabelWidth {
		limit = minLabelWidth
	}

	runes := []rune(label)
	if len(runes) <= limit {
		return label
	}
	return string(runes[:limit-1]) + ellipsis
}
