package item

import (
	"errors"
	"fmt"
	"math"

	"trolley/core/reconcile"
)

// AdditionValue is the payload of an addition request.
type AdditionValue struct {
	Name                 string         `json:"name" yaml:"name"`
	Difficulty           float64        `json:"difficulty" yaml:"difficulty"`
	Footprint            Footprint      `json:"footprint" yaml:"footprint"`
	Transform            Transform      `json:"transform" yaml:"transform"`
	AdditionalProperties map[string]any `json:"additional_properties,omitempty" yaml:"additional_properties,omitempty"`
}

// EditValue is the payload of an edit request. Nil fields keep the current value.
type EditValue struct {
	Name                 *string        `json:"name,omitempty" yaml:"name,omitempty"`
	Difficulty           *float64       `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Footprint            *Footprint     `json:"footprint,omitempty" yaml:"footprint,omitempty"`
	Transform            *Transform     `json:"transform,omitempty" yaml:"transform,omitempty"`
	AdditionalProperties map[string]any `json:"additional_properties,omitempty" yaml:"additional_properties,omitempty"`

	// Self is the prior snapshot as JSON. Empty means the stored snapshot.
	Self string `json:"self,omitempty" yaml:"self,omitempty"`
}

type (
	Addition = reconcile.Addition[AdditionValue]
	Edit     = reconcile.Edit[EditValue]
	Removal  = reconcile.Removal
	Batch    = reconcile.Batch[AdditionValue, EditValue]
)

// ErrInvalidValue indicates a request payload outside the allowed range.
var ErrInvalidValue = errors.New("invalid item value")

// Upper bounds keep recompute durations and derived geometry representable.
const (
	MaxDifficulty = 1e6
	MaxExtent     = 1e6
)

// validate checks the payload fields of it. Numbers must be finite; difficulty
// and footprint must also be non-negative and within bounds.
func validate(it *Item) error {
	if !finite(it.Difficulty) || it.Difficulty < 0 || it.Difficulty > MaxDifficulty {
		return fmt.Errorf("%w: difficulty %v is outside [0, %v]", ErrInvalidValue, it.Difficulty, MaxDifficulty)
	}
	f := it.Footprint
	for _, v := range []float64{f.Width, f.Length} {
		if !finite(v) || v < 0 || v > MaxExtent {
			return fmt.Errorf("%w: footprint %vx%v is outside [0, %v]", ErrInvalidValue, f.Width, f.Length, MaxExtent)
		}
	}
	tr := it.Transform
	for _, v := range []float64{tr.X, tr.Y, tr.Z, tr.Rotation} {
		if !finite(v) {
			return fmt.Errorf("%w: transform %v is not finite", ErrInvalidValue, tr)
		}
	}
	if err := validateProperty("additional_properties", it.AdditionalProperties); err != nil {
		return err
	}
	return nil
}

func validateProperty(path string, v any) error {
	switch x := v.(type) {
	case float64:
		if !finite(x) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidValue, path)
		}
	case float32:
		return validateProperty(path, float64(x))
	case map[string]any:
		for k, e := range x {
			if err := validateProperty(path+"."+k, e); err != nil {
				return err
			}
		}
	case []any:
		for i, e := range x {
			if err := validateProperty(fmt.Sprintf("%s[%d]", path, i), e); err != nil {
				return err
			}
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// apply copies the set fields of v onto it.
func (v EditValue) apply(it *Item) {
	if v.Name != nil {
		it.Name = *v.Name
	}
	if v.Difficulty != nil {
		it.Difficulty = *v.Difficulty
	}
	if v.Footprint != nil {
		it.Footprint = *v.Footprint
	}
	if v.Transform != nil {
		it.Transform = *v.Transform
	}
	if v.AdditionalProperties != nil {
		it.AdditionalProperties = copyProperties(v.AdditionalProperties)
	}
}
