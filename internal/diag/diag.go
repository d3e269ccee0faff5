// Package diag carries row-level parse diagnostics out of the flat-file
// loaders. A diagnostic never aborts a load.
package diag

import "fmt"

// Diagnostic describes one skipped or suspicious input line.
type Diagnostic struct {
	Line   int
	Reason string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s", d.Line, d.Reason)
}

// At builds a Diagnostic with a formatted reason.
func At(line int, format string, args ...any) Diagnostic {
	return Diagnostic{Line: line, Reason: fmt.Sprintf(format, args...)}
}
