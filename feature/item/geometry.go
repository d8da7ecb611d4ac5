package item

import "trolley/core/snapshot"

// DefaultHeight is the extrusion height of every item box.
const DefaultHeight = 2.0

// Geometry is the derived box representation of an item.
type Geometry struct {
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
	Height float64 `json:"height"`
	Volume float64 `json:"volume"`
}

// SnapshotValue implements snapshot.Valuer.
func (g Geometry) SnapshotValue() any {
	return snapshot.Snapshot{"Width": g.Width, "Length": g.Length, "Height": g.Height, "Volume": g.Volume}
}

// generateGeometry extrudes the footprint. A zero footprint yields the 2x2 default.
func generateGeometry(f Footprint) Geometry {
	w, l := f.Width, f.Length
	if w == 0 && l == 0 {
		w, l = 2, 2
	}
	return Geometry{Width: w, Length: l, Height: DefaultHeight, Volume: w * l * DefaultHeight}
}
