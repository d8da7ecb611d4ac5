package models

import "time"

// ItemRow represents one row of the 'items' table.
type ItemRow struct {
	ID                   string    `gorm:"column:id;primaryKey;size:36"`
	Position             int       `gorm:"column:position;index"`
	AddID                string    `gorm:"column:add_id;size:191;index"`
	Name                 string    `gorm:"column:name;size:255"`
	Difficulty           float64   `gorm:"column:difficulty"`
	FootprintWidth       float64   `gorm:"column:footprint_width"`
	FootprintLength      float64   `gorm:"column:footprint_length"`
	Transform            string    `gorm:"column:transform;type:text"`             // JSON
	AdditionalProperties string    `gorm:"column:additional_properties;type:text"` // JSON
	Result               int       `gorm:"column:result"`
	Locked               bool      `gorm:"column:locked"`
	Pending              bool      `gorm:"column:pending"` // recompute outstanding
	Snapshot             string    `gorm:"column:snapshot;type:text"`
	Provenance           string    `gorm:"column:provenance;size:255"`
	UpdatedAt            time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (ItemRow) TableName() string {
	return "items"
}

// Columns lists the columns the repository relies on.
func Columns() []string {
	return []string{
		"id", "position", "add_id", "name", "difficulty", "footprint_width",
		"footprint_length", "transform", "additional_properties", "result",
		"locked", "pending", "snapshot", "provenance", "updated_at",
	}
}
