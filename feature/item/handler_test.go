package item_test

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"trolley/feature/item"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	feature := item.NewFeature(nil, nil, "", &recorder{}, testConfig(1), zap.NewNop())
	t.Cleanup(func() { _ = feature.Service().Close(context.Background()) })

	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return app
}

func do(t *testing.T, app *fiber.App, method, target, contentType, body string) (int, []byte, string) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data, resp.Header.Get("X-Recompute-Shared")
}

func TestHandler_Reconcile(t *testing.T) {
	app := newApp(t)

	status, body, _ := do(t, app, "POST", "/items/reconcile?wait=true", fiber.MIMEApplicationJSON, batchJSON)
	require.Equal(t, fiber.StatusOK, status, string(body))

	var report item.Report
	require.NoError(t, json.Unmarshal(body, &report))
	assert.Equal(t, 1, report.Summary.Added)
	assert.Equal(t, 1, report.Summary.MissedRemovals)
	assert.Equal(t, 1, report.Summary.Effective)
	assert.Equal(t, []string{"A1"}, report.Recomputing)
	require.Len(t, report.Items, 1)
	assert.Equal(t, 5000, report.Items[0].Result)
	assert.Equal(t, "Property 'Difficulty' changed from '2' to '5'", report.Warnings[1])

	t.Run("YAML Body", func(t *testing.T) {
		status, body, _ := do(t, app, "POST", "/items/reconcile?dry_run=true", "application/x-yaml", batchYAML)
		require.Equal(t, fiber.StatusOK, status, string(body))

		var report item.Report
		require.NoError(t, json.Unmarshal(body, &report))
		assert.True(t, report.DryRun)
		assert.Equal(t, 1, report.Summary.Added)
	})

	t.Run("Malformed Body", func(t *testing.T) {
		status, _, _ := do(t, app, "POST", "/items/reconcile", fiber.MIMEApplicationJSON, `{"edits": [`)
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("Failing Request", func(t *testing.T) {
		status, body, _ := do(t, app, "POST", "/items/reconcile", fiber.MIMEApplicationJSON,
			`{"additions": [{"id": "BAD", "value": {"difficulty": -1}}]}`)
		assert.Equal(t, fiber.StatusUnprocessableEntity, status)
		assert.Contains(t, string(body), "BAD")
	})

	t.Run("Object Without Storage", func(t *testing.T) {
		status, _, _ := do(t, app, "POST", "/items/reconcile?object=batches/a.json", "", "")
		assert.Equal(t, fiber.StatusBadRequest, status)
	})
}

func TestHandler_Items(t *testing.T) {
	app := newApp(t)

	status, _, _ := do(t, app, "POST", "/items/reconcile?wait=true", fiber.MIMEApplicationJSON,
		`{"additions": [{"id": "A1", "value": {"name": "chair", "difficulty": 1}}]}`)
	require.Equal(t, fiber.StatusOK, status)

	status, body, _ := do(t, app, "GET", "/items", "", "")
	require.Equal(t, fiber.StatusOK, status)
	var list []item.View
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "A1", list[0].Key)

	status, body, _ = do(t, app, "GET", "/items/A1", "", "")
	require.Equal(t, fiber.StatusOK, status)
	var v item.View
	require.NoError(t, json.Unmarshal(body, &v))
	assert.Equal(t, "chair", v.Name)
	assert.Equal(t, "chair", v.Snapshot["Name"])

	status, _, _ = do(t, app, "GET", "/items/missing", "", "")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, body, shared := do(t, app, "POST", "/items/A1/recompute", "", "")
	require.Equal(t, fiber.StatusOK, status, string(body))
	assert.Equal(t, "false", shared)
	require.NoError(t, json.Unmarshal(body, &v))
	assert.Equal(t, 1000, v.Result)

	status, _, _ = do(t, app, "POST", "/items/missing/recompute", "", "")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, body, _ = do(t, app, "DELETE", "/items/A1/recompute", "", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"cancelled": false}`, string(body))

	status, _, _ = do(t, app, "DELETE", "/items/missing/recompute", "", "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestHandler_Reports(t *testing.T) {
	app := newApp(t)

	status, _, _ := do(t, app, "GET", "/items/reports", "", "")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
}
