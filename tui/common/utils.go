package common

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Truncate shortens text to width terminal cells, ending in an ellipsis
// when cut.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(text, width, "…")
}

// ClampLines cuts every line of text to width cells.
func ClampLines(text string, width int) string {
	if width <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, ln := range lines {
		if ansi.StringWidth(ln) <= width {
			continue
		}
		lines[i] = ansi.Cut(ln, 0, width)
	}
	return strings.Join(lines, "\n")
}

// Hints joins key hints for the status bar.
func Hints(parts ...string) string {
	return "  " + strings.Join(parts, " • ")
}
