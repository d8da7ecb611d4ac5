package item

import (
	"trolley/core/reconcile"
	"trolley/core/snapshot"
	"trolley/core/utils"

	"github.com/google/uuid"
)

// Footprint is the item's floor extent.
type Footprint struct {
	Width  float64 `json:"width" yaml:"width"`
	Length float64 `json:"length" yaml:"length"`
}

// SnapshotValue implements snapshot.Valuer.
func (f Footprint) SnapshotValue() any {
	return snapshot.Snapshot{"Width": f.Width, "Length": f.Length}
}

// Transform places the item in the host model.
type Transform struct {
	X        float64 `json:"x" yaml:"x"`
	Y        float64 `json:"y" yaml:"y"`
	Z        float64 `json:"z" yaml:"z"`
	Rotation float64 `json:"rotation" yaml:"rotation"`
}

// SnapshotValue implements snapshot.Valuer.
func (t Transform) SnapshotValue() any {
	return snapshot.Snapshot{"X": t.X, "Y": t.Y, "Z": t.Z, "Rotation": t.Rotation}
}

// Item is the reconciled record.
type Item struct {
	// ID is the internal id, assigned once at creation.
	ID uuid.UUID

	// AddID is the identity key, seeded from the addition request id.
	AddID string

	Name                 string
	Difficulty           float64
	Footprint            Footprint
	Transform            Transform
	AdditionalProperties map[string]any

	// Result is written by recompute.
	Result int

	// Locked is true iff the latest edit was a no-op.
	Locked bool

	// Updated is true iff the latest edit changed observable state and the
	// recompute for it has not completed yet.
	Updated bool

	// Self is the snapshot as serialized at the last successful apply.
	Self snapshot.Snapshot

	Provenance reconcile.Provenance

	// Geometry is derived from the footprint and never serialized.
	Geometry Geometry
}

// IdentityKey implements reconcile.Keyed.
func (it *Item) IdentityKey() string {
	return it.AddID
}

// SetProvenance implements reconcile.Record.
func (it *Item) SetProvenance(p reconcile.Provenance) {
	it.Provenance = p
}

// Effective implements reconcile.Classified.
func (it *Item) Effective() bool {
	return it.Updated
}

// Serialize returns the item's current snapshot.
func (it *Item) Serialize() snapshot.Snapshot {
	return Schema.Serialize(it)
}

// Clone returns a deep copy.
func (it *Item) Clone() *Item {
	c := *it
	c.AdditionalProperties = copyProperties(it.AdditionalProperties)
	c.Self = it.Self.Clone()
	return &c
}

// cloneItems deep copies a collection.
func cloneItems(items []*Item) []*Item {
	out := make([]*Item, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

// copyProperties deep copies m. Nested maps with non-string keys, as YAML
// produces for numeric keys, are converted to string-keyed maps so the
// properties stay JSON encodable.
func copyProperties(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return copyProperties(x)
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[utils.ToString(k)] = copyValue(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = copyValue(e)
		}
		return out
	default:
		return x
	}
}
