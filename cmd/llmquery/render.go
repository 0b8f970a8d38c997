package main

import (
	"os"
	"strings"

	// Packages
	glamour "github.com/charmbracelet/glamour"
	termenv "github.com/muesli/termenv"
	term "golang.org/x/term"
)

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// renderMarkdown returns the text rendered for the terminal, or unchanged
// when the output is not a terminal or cannot be rendered
func renderMarkdown(w *os.File, text string) string {
	if !term.IsTerminal(int(w.Fd())) {
		return text
	}
	style := "dark"
	if !termenv.HasDarkBackground() {
		style = "light"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(max(terminalWidth(w)-4, 40)),
	)
	if err != nil {
		return text
	}
	if result, err := renderer.Render(text); err != nil {
		return text
	} else {
		return strings.Trim(result, "\n")
	}
}

// terminalWidth returns the width of the terminal, or zero when the output
// is not a terminal
func terminalWidth(w *os.File) int {
	if width, _, err := term.GetSize(int(w.Fd())); err == nil && width > 0 {
		return width
	}
	return 0
}
