package item

import (
	"trolley/core/reconcile"
	"trolley/core/snapshot"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// New builds an item from an addition. The item starts neither locked nor
// effective and its snapshot is its own serialization.
func New(add Addition) (*Item, error) {
	v := add.Value
	it := &Item{
		ID:                   uuid.New(),
		AddID:                add.ID,
		Name:                 v.Name,
		Difficulty:           v.Difficulty,
		Footprint:            v.Footprint,
		Transform:            v.Transform,
		AdditionalProperties: copyProperties(v.AdditionalProperties),
	}
	if err := validate(it); err != nil {
		return nil, err
	}
	it.Geometry = generateGeometry(it.Footprint)
	it.Self = it.Serialize()
	return it, nil
}

// Updater applies edits to items.
type Updater struct {
	ignore []string
	logger *zap.Logger
}

// NewUpdater creates an updater skipping the given fields in the edit check.
// An empty ignore list uses DefaultIgnore.
func NewUpdater(ignore []string, logger *zap.Logger) *Updater {
	if len(ignore) == 0 {
		ignore = DefaultIgnore
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Updater{ignore: ignore, logger: logger}
}

// Update applies edit to a working copy of it and classifies the result.
//
// An effective edit returns the working copy with the new snapshot stored,
// Updated set and Locked cleared. A no-op edit discards the working copy and
// returns it itself, locked, with its snapshot untouched.
func (u *Updater) Update(it *Item, edit Edit, w *reconcile.Warnings) (*Item, error) {
	work := it.Clone()
	edit.Value.apply(work)
	if err := validate(work); err != nil {
		return nil, err
	}
	work.Geometry = generateGeometry(work.Footprint)

	prior := u.prior(it, edit)
	next := work.Serialize()

	c := reconcile.ClassifyEdit(work.Name, prior, next, u.ignore, w, u.logger)
	if !c.Effective {
		it.Locked = true
		it.Updated = false
		return it, nil
	}

	work.Self = next
	work.Updated = true
	work.Locked = false
	return work, nil
}

func (u *Updater) prior(it *Item, edit Edit) snapshot.Snapshot {
	if edit.Value.Self == "" {
		return it.Self
	}
	snap, err := snapshot.Decode([]byte(edit.Value.Self))
	if err != nil {
		u.logger.Warn("Ignoring unreadable prior snapshot",
			zap.String("key", it.AddID),
			zap.String("edit", edit.ID),
			zap.Error(err),
		)
		return it.Self
	}
	return snap
}

// Rehydrate restores Result from the stored snapshot and regenerates geometry.
func (it *Item) Rehydrate() {
	Schema.Restore(it, it.Self, FieldResult)
	it.Geometry = generateGeometry(it.Footprint)
}

// Complete stores a recompute result and re-serializes the item.
func (it *Item) Complete(result int) {
	it.Result = result
	it.Updated = false
	it.Locked = false
	it.Self = it.Serialize()
}
