package item_test

import (
	"context"
	"errors"
	"testing"

	"trolley/core/database"
	"trolley/feature/item"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newRepository(t *testing.T) *item.Repository {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	repo := item.NewRepository(db)
	require.NoError(t, repo.Migrate(context.Background()))
	return repo
}

func TestRepository_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)
	require.NoError(t, repo.CheckSchema(ctx))

	a, err := item.New(item.Addition{ID: "A1", Value: item.AdditionValue{
		Name:                 "chair",
		Difficulty:           2,
		Footprint:            item.Footprint{Width: 1, Length: 2},
		Transform:            item.Transform{X: 4, Rotation: 90},
		AdditionalProperties: map[string]any{"colour": "red"},
	}})
	require.NoError(t, err)
	b, err := item.New(item.Addition{ID: "B1", Value: item.AdditionValue{Name: "table", Difficulty: 1}})
	require.NoError(t, err)
	b.Updated = true

	require.NoError(t, repo.Save(ctx, []*item.Item{b, a}))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "B1", loaded[0].AddID)
	assert.True(t, loaded[0].Updated)
	assert.Equal(t, "A1", loaded[1].AddID)

	got := loaded[1]
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, a.Transform, got.Transform)
	assert.Equal(t, "red", got.AdditionalProperties["colour"])
	assert.Equal(t, a.Self, got.Self)
	assert.Equal(t, a.Geometry, got.Geometry)

	// Saving again replaces the collection.
	require.NoError(t, repo.Save(ctx, []*item.Item{a}))
	loaded, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}

func TestRepository_SaveYAMLProperties(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)

	doc := "additions:\n  - id: A1\n    value: {name: lamp, additional_properties: {sizes: {1: small}, tags: [{2: b}]}}\n"
	batch, err := item.DecodeBatch([]byte(doc), item.FormatYAML)
	require.NoError(t, err)
	it, err := item.New(batch.Additions[0])
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, []*item.Item{it}))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, map[string]any{"1": "small"}, loaded[0].AdditionalProperties["sizes"])
	assert.Equal(t, []any{map[string]any{"2": "b"}}, loaded[0].AdditionalProperties["tags"])
}

func TestRepository_Get(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)

	it, err := item.New(item.Addition{ID: "A1", Value: item.AdditionValue{Name: "chair"}})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, []*item.Item{it}))

	got, err := repo.Get(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, "chair", got.Name)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, item.ErrNotFound)
}

func TestRepository_SaveOne(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)

	it, err := item.New(item.Addition{ID: "A1", Value: item.AdditionValue{Difficulty: 3}})
	require.NoError(t, err)
	it.Updated = true
	require.NoError(t, repo.Save(ctx, []*item.Item{it}))

	it.Complete(3000)
	require.NoError(t, repo.SaveOne(ctx, it))

	got, err := repo.Get(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, 3000, got.Result)
	assert.False(t, got.Updated)
	assert.Equal(t, 3000.0, got.Self["Result"])

	other, err := item.New(item.Addition{ID: "B1"})
	require.NoError(t, err)
	assert.ErrorIs(t, repo.SaveOne(ctx, other), item.ErrNotFound)
}

func TestRepository_CheckSchemaMissingTable(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = item.NewRepository(db).CheckSchema(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing columns")
}

func TestRepository_LoadError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectQuery("SELECT \\* FROM `items` ORDER BY position").
		WillReturnError(errors.New("connection reset"))

	_, err = item.NewRepository(db).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load items")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_LoadRows(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "position", "add_id", "name", "difficulty", "footprint_width", "footprint_length", "transform", "additional_properties", "result", "locked", "pending", "snapshot", "provenance"}).
		AddRow("6f1c2a8e-4b53-4b5e-9a55-7c1f7e0d2c11", 0, "A1", "chair", 2.0, 1.0, 1.0, `{"x":1,"y":0,"z":0,"rotation":0}`, "", 2000, true, false, `{"Difficulty":2,"Result":2000}`, "edit:E1")
	mock.ExpectQuery("SELECT \\* FROM `items` ORDER BY position").WillReturnRows(rows)

	items, err := item.NewRepository(db).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "A1", items[0].AddID)
	assert.True(t, items[0].Locked)
	assert.Equal(t, 1.0, items[0].Transform.X)
	assert.Equal(t, "edit:E1", items[0].Provenance.String())
	assert.Equal(t, 2000.0, items[0].Self["Result"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
