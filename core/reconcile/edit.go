package reconcile

import (
	"trolley/core/differ"
	"trolley/core/snapshot"

	"go.uber.org/zap"
)

// Classification is the outcome of an edit effectiveness check.
type Classification struct {
	// Effective is true when the edit changed observable state.
	Effective bool

	// Entries holds the field-level changes; empty for a no-op edit.
	Entries []differ.Entry
}

// ClassifyEdit diffs next against prior, ignoring the given top-level fields,
// and writes the diff log for the record called name into w.
//
// A no-op edit writes a single "No Diffs" line. An effective edit writes a
// header line followed by one line per entry.
func ClassifyEdit(name string, prior, next snapshot.Snapshot, ignore []string, w *Warnings, logger *zap.Logger) Classification {
	if logger == nil {
		logger = zap.NewNop()
	}

	equal, entries := differ.Diff(prior, next, ignore...)
	if equal {
		line := NoDiffsLine(name)
		logger.Info(line)
		w.Add(line)
		return Classification{}
	}

	header := DiffHeaderLine(name)
	logger.Info(header, zap.Int("changes", len(entries)))
	w.Add(header)
	for _, entry := range entries {
		line := entry.String()
		logger.Info(line, zap.String("path", entry.Path), zap.String("kind", string(entry.Kind)))
		w.Add(line)
	}
	return Classification{Effective: true, Entries: entries}
}

// NoDiffsLine is the log line for a no-op edit.
func NoDiffsLine(name string) string {
	return "No Diffs for '" + name + "'."
}

// DiffHeaderLine is the log line preceding an effective edit's entries.
func DiffHeaderLine(name string) string {
	return "Property Diffs for '" + name + "'."
}
