package reconcile

import "fmt"

// Warnings accumulates ordered, human-readable log lines for one pass.
// A nil *Warnings discards lines.
type Warnings struct {
	lines []string
}

// Add appends a line.
func (w *Warnings) Add(line string) {
	if w == nil {
		return
	}
	w.lines = append(w.lines, line)
}

// Addf appends a formatted line.
func (w *Warnings) Addf(format string, args ...any) {
	w.Add(fmt.Sprintf(format, args...))
}

// Lines returns a copy of the accumulated lines.
func (w *Warnings) Lines() []string {
	if w == nil {
		return nil
	}
	out := make([]string, len(w.lines))
	copy(out, w.lines)
	return out
}

// Len returns the number of lines.
func (w *Warnings) Len() int {
	if w == nil {
		return 0
	}
	return len(w.lines)
}
