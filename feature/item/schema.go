package item

import (
	"trolley/core/snapshot"
	"trolley/core/utils"
)

// Snapshot field names.
const (
	FieldID                   snapshot.Field = "Id"
	FieldAddID                snapshot.Field = "AddId"
	FieldName                 snapshot.Field = "Name"
	FieldDifficulty           snapshot.Field = "Difficulty"
	FieldFootprint            snapshot.Field = "Footprint"
	FieldTransform            snapshot.Field = "Transform"
	FieldAdditionalProperties snapshot.Field = "AdditionalProperties"
	FieldResult               snapshot.Field = "Result"
	FieldLocked               snapshot.Field = "Locked"
	FieldUpdated              snapshot.Field = "Updated"
	FieldSelf                 snapshot.Field = "Self"
	FieldProvenance           snapshot.Field = "Provenance"
	FieldGeometry             snapshot.Field = "Geometry"
)

// Excluded holds the fields that never appear in a snapshot: bookkeeping,
// transient flags, placement, derived geometry, provenance and the stored
// snapshot itself.
var Excluded = snapshot.NewFieldSet(
	FieldID,
	FieldUpdated,
	FieldSelf,
	FieldTransform,
	FieldProvenance,
	FieldGeometry,
)

// DefaultIgnore lists the volatile fields skipped by the edit check.
var DefaultIgnore = []string{
	string(FieldResult),
	string(FieldLocked),
	string(FieldAdditionalProperties),
}

// Schema declares every Item field. Scalar fields can be restored from a
// snapshot; nested values are only ever compared.
var Schema = snapshot.MustSchema([]snapshot.Accessor[Item]{
	{Name: FieldID, Get: func(it *Item) any { return it.ID.String() }},
	{
		Name: FieldAddID,
		Get:  func(it *Item) any { return it.AddID },
		Set:  func(it *Item, v any) { it.AddID = utils.ToString(v) },
	},
	{
		Name: FieldName,
		Get:  func(it *Item) any { return it.Name },
		Set:  func(it *Item, v any) { it.Name = utils.ToString(v) },
	},
	{
		Name: FieldDifficulty,
		Get:  func(it *Item) any { return it.Difficulty },
		Set:  func(it *Item, v any) { it.Difficulty = utils.ToFloat(v) },
	},
	{Name: FieldFootprint, Get: func(it *Item) any { return it.Footprint }},
	{Name: FieldTransform, Get: func(it *Item) any { return it.Transform }},
	{Name: FieldAdditionalProperties, Get: func(it *Item) any { return it.AdditionalProperties }},
	{
		Name: FieldResult,
		Get:  func(it *Item) any { return it.Result },
		Set:  func(it *Item, v any) { it.Result = utils.ToInt(v) },
	},
	{
		Name: FieldLocked,
		Get:  func(it *Item) any { return it.Locked },
		Set:  func(it *Item, v any) { it.Locked = utils.ToBool(v) },
	},
	{Name: FieldUpdated, Get: func(it *Item) any { return it.Updated }},
	{Name: FieldSelf, Get: func(it *Item) any { return it.Self }},
	{Name: FieldProvenance, Get: func(it *Item) any { return it.Provenance.String() }},
	{Name: FieldGeometry, Get: func(it *Item) any { return it.Geometry }},
}, Excluded)
