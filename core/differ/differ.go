// Package differ compares two snapshots and reports field-level changes.
package differ

import (
	"fmt"
	"strconv"

	"trolley/core/snapshot"

	"github.com/goccy/go-json"
)

// Kind represents the type of change.
type Kind string

const (
	// Changed indicates a field present in both snapshots with different values.
	Changed Kind = "changed"
	// Added indicates a field only present in the new snapshot.
	Added Kind = "added"
	// Removed indicates a field only present in the old snapshot.
	Removed Kind = "removed"
)

// Entry represents a change to a single field.
type Entry struct {
	Kind Kind   `json:"kind"`
	Path string `json:"path"` // dotted path, e.g. "Footprint.Width"
	Old  any    `json:"old,omitempty"`
	New  any    `json:"new,omitempty"`
}

// String renders the entry as one diff log line.
func (e Entry) String() string {
	switch e.Kind {
	case Added:
		return fmt.Sprintf("Property '%s' added with value '%s'", e.Path, FormatValue(e.New))
	case Removed:
		return fmt.Sprintf("Property '%s' with value '%s' was removed", e.Path, FormatValue(e.Old))
	default:
		return fmt.Sprintf("Property '%s' changed from '%s' to '%s'", e.Path, FormatValue(e.Old), FormatValue(e.New))
	}
}

// Diff compares old and new, skipping the ignored top-level keys.
// Entries follow the new snapshot's key order, then keys only present in old.
// Nested snapshots present on both sides are compared recursively with
// dot-prefixed paths; ignore is not applied below the top level.
func Diff(old, new snapshot.Snapshot, ignore ...string) (equal bool, entries []Entry) {
	entries = walk(old.Without(ignore...), new.Without(ignore...), "", nil)
	return len(entries) == 0, entries
}

// Equal reports whether Diff would produce no entries.
func Equal(old, new snapshot.Snapshot, ignore ...string) bool {
	equal, _ := Diff(old, new, ignore...)
	return equal
}

func walk(old, new snapshot.Snapshot, prefix string, out []Entry) []Entry {
	for _, key := range new.Keys() {
		path := prefix + key
		newValue := new[key]
		oldValue, ok := old[key]
		if !ok {
			out = append(out, Entry{Kind: Added, Path: path, New: newValue})
			continue
		}

		oldNested, oldIsMap := oldValue.(snapshot.Snapshot)
		newNested, newIsMap := newValue.(snapshot.Snapshot)
		if oldIsMap && newIsMap {
			out = walk(oldNested, newNested, path+".", out)
			continue
		}

		if !snapshot.ValueEqual(oldValue, newValue) {
			out = append(out, Entry{Kind: Changed, Path: path, Old: oldValue, New: newValue})
		}
	}

	for _, key := range old.Keys() {
		if _, ok := new[key]; !ok {
			out = append(out, Entry{Kind: Removed, Path: prefix + key, Old: old[key]})
		}
	}

	return out
}

// FormatValue renders a normalized value for diff log lines.
// Strings are shown raw, numbers in shortest form, null as "null",
// and nested values as compact JSON.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case snapshot.Snapshot:
		return x.String()
	default:
		data, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprintf("%v", x)
		}
		return string(data)
	}
}

// Lines renders entries as diff log lines.
func Lines(entries []Entry) []string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.String())
	}
	return lines
}
