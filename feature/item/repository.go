package item

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"trolley/core/database"
	"trolley/core/reconcile"
	"trolley/core/snapshot"
	"trolley/feature/item/models"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound indicates that no item matches the requested key.
var ErrNotFound = errors.New("item not found")

// Repository persists the item collection.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository on db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the items table.
func (r *Repository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&models.ItemRow{}); err != nil {
		return fmt.Errorf("failed to migrate items: %w", err)
	}
	return nil
}

// CheckSchema verifies that the items table has every expected column.
func (r *Repository) CheckSchema(ctx context.Context) error {
	missing, err := database.MissingColumns(r.db.WithContext(ctx), models.ItemRow{}.TableName(), models.Columns())
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("items table is missing columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Load returns the stored collection in order.
func (r *Repository) Load(ctx context.Context) ([]*Item, error) {
	var rows []models.ItemRow
	if err := r.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}

	items := make([]*Item, 0, len(rows))
	for _, row := range rows {
		it, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// Get returns the first stored item with the given identity key.
func (r *Repository) Get(ctx context.Context, key string) (*Item, error) {
	var row models.ItemRow
	err := r.db.WithContext(ctx).Where("add_id = ?", key).Order("position").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item %s: %w", key, err)
	}
	return fromRow(row)
}

// Save replaces the stored collection with items in one transaction.
func (r *Repository) Save(ctx context.Context, items []*Item) error {
	rows := make([]models.ItemRow, 0, len(items))
	now := time.Now()
	for i, it := range items {
		row, err := toRow(it, i)
		if err != nil {
			return err
		}
		row.UpdatedAt = now
		rows = append(rows, row)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.ItemRow{}).Error; err != nil {
			return fmt.Errorf("failed to clear items: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, 200).Error; err != nil {
			return fmt.Errorf("failed to save items: %w", err)
		}
		return nil
	})
}

// SaveOne updates the stored state of a single item, matched by internal id.
func (r *Repository) SaveOne(ctx context.Context, it *Item) error {
	row, err := toRow(it, 0)
	if err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&models.ItemRow{}).Where("id = ?", row.ID).Updates(map[string]any{
		"result":     row.Result,
		"locked":     row.Locked,
		"pending":    row.Pending,
		"snapshot":   row.Snapshot,
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update item %s: %w", it.AddID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, it.AddID)
	}
	return nil
}

func toRow(it *Item, position int) (models.ItemRow, error) {
	transform, err := json.Marshal(it.Transform)
	if err != nil {
		return models.ItemRow{}, fmt.Errorf("failed to encode transform of %s: %w", it.AddID, err)
	}

	var props []byte
	if it.AdditionalProperties != nil {
		props, err = json.Marshal(it.AdditionalProperties)
		if err != nil {
			return models.ItemRow{}, fmt.Errorf("failed to encode properties of %s: %w", it.AddID, err)
		}
	}

	snap, err := snapshot.Encode(it.Self)
	if err != nil {
		return models.ItemRow{}, err
	}

	return models.ItemRow{
		ID:                   it.ID.String(),
		Position:             position,
		AddID:                it.AddID,
		Name:                 it.Name,
		Difficulty:           it.Difficulty,
		FootprintWidth:       it.Footprint.Width,
		FootprintLength:      it.Footprint.Length,
		Transform:            string(transform),
		AdditionalProperties: string(props),
		Result:               it.Result,
		Locked:               it.Locked,
		Pending:              it.Updated,
		Snapshot:             string(snap),
		Provenance:           it.Provenance.String(),
	}, nil
}

func fromRow(row models.ItemRow) (*Item, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid id for item %s: %w", row.AddID, err)
	}

	it := &Item{
		ID:         id,
		AddID:      row.AddID,
		Name:       row.Name,
		Difficulty: row.Difficulty,
		Footprint:  Footprint{Width: row.FootprintWidth, Length: row.FootprintLength},
		Result:     row.Result,
		Locked:     row.Locked,
		Updated:    row.Pending,
		Provenance: reconcile.ParseProvenance(row.Provenance),
	}

	if row.Transform != "" {
		if err := json.Unmarshal([]byte(row.Transform), &it.Transform); err != nil {
			return nil, fmt.Errorf("invalid transform for item %s: %w", row.AddID, err)
		}
	}
	if row.AdditionalProperties != "" {
		if err := json.Unmarshal([]byte(row.AdditionalProperties), &it.AdditionalProperties); err != nil {
			return nil, fmt.Errorf("invalid properties for item %s: %w", row.AddID, err)
		}
	}

	it.Self, err = snapshot.Decode([]byte(row.Snapshot))
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot for item %s: %w", row.AddID, err)
	}
	it.Geometry = generateGeometry(it.Footprint)
	return it, nil
}
