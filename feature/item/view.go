package item

import "trolley/core/snapshot"

// View is the read-only representation of an item returned by the API.
type View struct {
	ID                   string            `json:"id"`
	Key                  string            `json:"key"`
	Name                 string            `json:"name"`
	Difficulty           float64           `json:"difficulty"`
	Footprint            Footprint         `json:"footprint"`
	Transform            Transform         `json:"transform"`
	AdditionalProperties map[string]any    `json:"additional_properties,omitempty"`
	Result               int               `json:"result"`
	Locked               bool              `json:"locked"`
	Pending              bool              `json:"pending"`
	Snapshot             snapshot.Snapshot `json:"snapshot"`
	Provenance           string            `json:"provenance,omitempty"`
	Geometry             Geometry          `json:"geometry"`
}

// View returns a detached copy of the item for presentation.
func (it *Item) View() View {
	return View{
		ID:                   it.ID.String(),
		Key:                  it.AddID,
		Name:                 it.Name,
		Difficulty:           it.Difficulty,
		Footprint:            it.Footprint,
		Transform:            it.Transform,
		AdditionalProperties: copyProperties(it.AdditionalProperties),
		Result:               it.Result,
		Locked:               it.Locked,
		Pending:              it.Updated,
		Snapshot:             it.Self.Clone(),
		Provenance:           it.Provenance.String(),
		Geometry:             it.Geometry,
	}
}

func views(items []*Item) []View {
	out := make([]View, 0, len(items))
	for _, it := range items {
		out = append(out, it.View())
	}
	return out
}
