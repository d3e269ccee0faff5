package cmd

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// truncate shortens s to at most n terminal cells, ending in "...".
func truncate(s string, n int) string {
	return ansi.Truncate(s, n, "...")
}

// pad right-fills s with spaces to n terminal cells.
func pad(s string, n int) string {
	if w := ansi.StringWidth(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}
