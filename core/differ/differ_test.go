package differ

import (
	"testing"

	"trolley/core/snapshot"

	"github.com/stretchr/testify/assert"
)

func TestDiff_Reflexive(t *testing.T) {
	snaps := []snapshot.Snapshot{
		nil,
		{},
		{"Name": "a", "Difficulty": 2.0},
		{"Nested": snapshot.Snapshot{"x": []any{1.0, nil}}, "Flag": true, "Empty": nil},
	}
	for _, s := range snaps {
		for _, ignore := range [][]string{nil, {"Name"}, {"Nested", "Missing"}} {
			equal, entries := Diff(s, s.Clone(), ignore...)
			assert.True(t, equal)
			assert.Empty(t, entries)
		}
	}
}

func TestDiff_Entries(t *testing.T) {
	old := snapshot.Snapshot{
		"Difficulty": 2.0,
		"Gone":       "bye",
		"Name":       "Item",
		"Nullable":   nil,
		"Footprint":  snapshot.Snapshot{"Width": 2.0, "Length": 2.0},
	}
	new := snapshot.Snapshot{
		"Added":      1.0,
		"Difficulty": 5.0,
		"Name":       "Item",
		"Nullable":   "set",
		"Footprint":  snapshot.Snapshot{"Width": 3.0, "Depth": 1.0},
	}

	equal, entries := Diff(old, new)
	assert.False(t, equal)
	assert.Equal(t, []Entry{
		{Kind: Added, Path: "Added", New: 1.0},
		{Kind: Changed, Path: "Difficulty", Old: 2.0, New: 5.0},
		{Kind: Added, Path: "Footprint.Depth", New: 1.0},
		{Kind: Changed, Path: "Footprint.Width", Old: 2.0, New: 3.0},
		{Kind: Removed, Path: "Footprint.Length", Old: 2.0},
		{Kind: Changed, Path: "Nullable", Old: nil, New: "set"},
		{Kind: Removed, Path: "Gone", Old: "bye"},
	}, entries)
}

func TestDiff_IgnoreIsTopLevelOnly(t *testing.T) {
	old := snapshot.Snapshot{"Result": 1.0, "Extra": snapshot.Snapshot{"Result": 1.0}}
	new := snapshot.Snapshot{"Result": 9.0, "Extra": snapshot.Snapshot{"Result": 9.0}}

	equal, entries := Diff(old, new, "Result")
	assert.False(t, equal)
	assert.Equal(t, []Entry{{Kind: Changed, Path: "Extra.Result", Old: 1.0, New: 9.0}}, entries)

	assert.True(t, Equal(old, new, "Result", "Extra"))
}

func TestDiff_NullDistinctFromAbsent(t *testing.T) {
	equal, entries := Diff(snapshot.Snapshot{}, snapshot.Snapshot{"A": nil})
	assert.False(t, equal)
	assert.Equal(t, Added, entries[0].Kind)

	equal, entries = Diff(snapshot.Snapshot{"A": nil}, snapshot.Snapshot{})
	assert.False(t, equal)
	assert.Equal(t, Removed, entries[0].Kind)
}

func TestDiff_MapReplacedByScalar(t *testing.T) {
	_, entries := Diff(snapshot.Snapshot{"A": snapshot.Snapshot{"x": 1.0}}, snapshot.Snapshot{"A": 1.0})
	assert.Equal(t, []Entry{{Kind: Changed, Path: "A", Old: snapshot.Snapshot{"x": 1.0}, New: 1.0}}, entries)
}

func TestEntry_String(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		want  string
	}{
		{"Changed", Entry{Kind: Changed, Path: "Difficulty", Old: 2.0, New: 5.0}, "Property 'Difficulty' changed from '2' to '5'"},
		{"Added", Entry{Kind: Added, Path: "Footprint.Depth", New: 1.5}, "Property 'Footprint.Depth' added with value '1.5'"},
		{"Removed", Entry{Kind: Removed, Path: "Name", Old: "Box"}, "Property 'Name' with value 'Box' was removed"},
		{"ToNull", Entry{Kind: Changed, Path: "A", Old: "x", New: nil}, "Property 'A' changed from 'x' to 'null'"},
		{"Nested", Entry{Kind: Added, Path: "F", New: snapshot.Snapshot{"b": 1.0, "a": true}}, `Property 'F' added with value '{"a":true,"b":1}'`},
		{"List", Entry{Kind: Added, Path: "L", New: []any{1.0, "x"}}, `Property 'L' added with value '[1,"x"]'`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.String())
		})
	}

	assert.Equal(t, []string{"Property 'Difficulty' changed from '2' to '5'"}, Lines([]Entry{tests[0].entry}))
}
