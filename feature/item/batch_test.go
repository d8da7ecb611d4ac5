package item_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"trolley/core/storage"
	"trolley/core/storage/mocks"
	"trolley/feature/item"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const batchJSON = `{
  "removals": [{"id": "R1", "identity": {"key": "OLD"}}],
  "additions": [{"id": "A1", "value": {"name": "chair", "difficulty": 2, "footprint": {"width": 1, "length": 1}}}],
  "edits": [{"id": "E1", "identity": {"key": "A1"}, "value": {"difficulty": 5}}]
}`

const batchYAML = `
removals:
  - id: R1
    identity: {key: OLD}
additions:
  - id: A1
    value:
      name: chair
      difficulty: 2
      footprint: {width: 1, length: 1}
edits:
  - id: E1
    identity: {key: A1}
    value:
      difficulty: 5
`

func assertSampleBatch(t *testing.T, batch item.Batch) {
	t.Helper()
	require.Len(t, batch.Removals, 1)
	require.Len(t, batch.Additions, 1)
	require.Len(t, batch.Edits, 1)

	assert.Equal(t, "OLD", batch.Removals[0].Identity.Key)
	assert.Equal(t, "chair", batch.Additions[0].Value.Name)
	assert.Equal(t, 1.0, batch.Additions[0].Value.Footprint.Width)
	assert.Equal(t, "A1", batch.Edits[0].Identity.Key)
	require.NotNil(t, batch.Edits[0].Value.Difficulty)
	assert.Equal(t, 5.0, *batch.Edits[0].Value.Difficulty)
	assert.Nil(t, batch.Edits[0].Value.Name)
}

func TestDecodeBatch(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format string
	}{
		{"JSON", batchJSON, item.FormatJSON},
		{"YAML", batchYAML, item.FormatYAML},
		{"Sniffed JSON", batchJSON, ""},
		{"Sniffed YAML", batchYAML, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch, err := item.DecodeBatch([]byte(tt.data), tt.format)
			require.NoError(t, err)
			assertSampleBatch(t, batch)
		})
	}

	t.Run("Empty", func(t *testing.T) {
		batch, err := item.DecodeBatch([]byte("  \n"), "")
		require.NoError(t, err)
		assert.True(t, batch.IsEmpty())
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := item.DecodeBatch([]byte(`{"edits": [`), item.FormatJSON)
		assert.Error(t, err)
	})

	t.Run("Unsupported", func(t *testing.T) {
		_, err := item.DecodeBatch([]byte("a"), "toml")
		assert.Error(t, err)
	})
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, item.FormatJSON, item.FormatOf("batches/2024.json"))
	assert.Equal(t, item.FormatYAML, item.FormatOf("batch.YML"))
	assert.Equal(t, item.FormatYAML, item.FormatOf("overrides.yaml"))
	assert.Equal(t, item.FormatJSON, item.FormatOf("application/json; charset=utf-8"))
	assert.Equal(t, item.FormatYAML, item.FormatOf("application/x-yaml"))
	assert.Equal(t, "", item.FormatOf("batch"))
}

func TestLoadBatchFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "batch.yaml")
	require.NoError(t, os.WriteFile(name, []byte(batchYAML), 0o644))

	batch, err := item.LoadBatchFile(name)
	require.NoError(t, err)
	assertSampleBatch(t, batch)

	_, err = item.LoadBatchFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadBatchObject(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "trolley", "batches/b.json", mock.Anything).
			Return(io.NopCloser(strings.NewReader(batchJSON)), nil)

		batch, err := item.LoadBatchObject(ctx, client, "trolley", "batches/b.json")
		require.NoError(t, err)
		assertSampleBatch(t, batch)
		client.AssertExpectations(t)
	})

	t.Run("Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "trolley", "batches/none.json", mock.Anything).
			Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})

		_, err := item.LoadBatchObject(ctx, client, "trolley", "batches/none.json")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestSaveReport(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "trolley").Return(true, nil)

	var uploaded []byte
	client.On("PutObject", mock.Anything, "trolley", mock.MatchedBy(func(name string) bool {
		return strings.HasPrefix(name, "reports/") && strings.HasSuffix(name, "-r1.json")
	}), mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			buf := new(bytes.Buffer)
			_, _ = buf.ReadFrom(args.Get(3).(io.Reader))
			uploaded = buf.Bytes()
		}).
		Return(minio.UploadInfo{}, nil)

	name, err := item.SaveReport(context.Background(), client, "trolley", "reports/", &item.Report{ID: "r1", Warnings: []string{"No Diffs for 'chair'."}})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "reports/"))
	assert.Contains(t, string(uploaded), `"id": "r1"`)
	assert.Contains(t, string(uploaded), "No Diffs for 'chair'.")
	client.AssertExpectations(t)
}
