package item

import (
	"errors"
	"strconv"

	"trolley/core/logger"
	"trolley/core/reconcile"
	"trolley/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for items.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the item routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/items")
	group.Post("/reconcile", h.HandleReconcile)
	group.Get("/reports", h.HandleListReports)
	group.Get("/", h.HandleList)
	group.Get("/:key", h.HandleGet)
	group.Post("/:key/recompute", h.HandleRecompute)
	group.Delete("/:key/recompute", h.HandleCancelRecompute)
}

// HandleReconcile applies a batch of removals, additions and edits.
// @Summary Reconcile Items
// @Description Apply a batch of change requests to the item collection. The body is a JSON or YAML batch document; with ?object the batch is read from object storage instead.
// @Tags items
// @Accept json
// @Accept x-yaml
// @Produce json
// @Param dry_run query bool false "Reconcile a copy and discard the result"
// @Param wait query bool false "Block until recomputes finished"
// @Param save_report query bool false "Write the report to object storage"
// @Param object query string false "Batch object key in storage"
// @Success 200 {object} Report "Reconcile report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Batch object not found"
// @Failure 422 {object} Report "Batch aborted by a failing request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /items/reconcile [post]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	opts := Options{
		DryRun:     c.QueryBool("dry_run", false),
		Wait:       c.QueryBool("wait", false),
		SaveReport: c.QueryBool("save_report", false),
		Source:     "api",
	}

	var report *Report
	var err error
	if object := c.Query("object"); object != "" {
		report, err = h.service.ReconcileObject(c.Context(), object, opts)
	} else {
		batch, decodeErr := DecodeBatch(c.Body(), FormatOf(c.Get(fiber.HeaderContentType)))
		if decodeErr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": decodeErr.Error(),
			})
		}
		report, err = h.service.Reconcile(c.Context(), batch, opts)
	}

	if err != nil {
		l.Error("Reconcile failed", zap.Error(err))
		switch {
		case report != nil && errors.Is(err, reconcile.ErrCallback):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(report)
		case errors.Is(err, storage.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, ErrNoStorage):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	l.Info("Reconcile completed",
		zap.String("report", report.ID),
		zap.Bool("dry_run", report.DryRun),
		zap.Int("recomputing", len(report.Recomputing)),
	)
	return c.JSON(report)
}

// HandleList returns every item in collection order.
// @Summary List Items
// @Description List the reconciled items in their stable order.
// @Tags items
// @Produce json
// @Success 200 {array} View "Items"
// @Router /items [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	return c.JSON(h.service.List())
}

// HandleGet returns the first item matching the identity key.
// @Summary Get Item
// @Description Get an item by identity key.
// @Tags items
// @Produce json
// @Param key path string true "Identity key"
// @Success 200 {object} View "Item"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /items/{key} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	v, err := h.service.Get(c.Params("key"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(v)
}

// HandleRecompute recomputes an item and waits for the result.
// @Summary Recompute Item
// @Description Recompute an item now. Concurrent requests for the same key share one execution.
// @Tags items
// @Produce json
// @Param key path string true "Identity key"
// @Success 200 {object} View "Item after recompute"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 409 {object} map[string]string "Recompute already running"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /items/{key}/recompute [post]
func (h *Handler) HandleRecompute(c *fiber.Ctx) error {
	key := c.Params("key")
	l := logger.WithRayID(h.service.logger, c)

	v, shared, err := h.service.RecomputeOne(c.Context(), key)
	if err != nil {
		l.Warn("Recompute request failed", zap.String("key", key), zap.Error(err))
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, ErrBusy):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	c.Set("X-Recompute-Shared", strconv.FormatBool(shared))
	return c.JSON(v)
}

// HandleCancelRecompute cancels a background recompute.
// @Summary Cancel Recompute
// @Description Cancel the background recompute of an item.
// @Tags items
// @Produce json
// @Param key path string true "Identity key"
// @Success 200 {object} map[string]bool "Whether a recompute was cancelled"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /items/{key}/recompute [delete]
func (h *Handler) HandleCancelRecompute(c *fiber.Ctx) error {
	cancelled, err := h.service.CancelRecompute(c.Params("key"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"cancelled": cancelled})
}

// HandleListReports lists stored reconcile reports.
// @Summary List Reports
// @Description List reconcile report objects in storage.
// @Tags items
// @Produce json
// @Success 200 {array} string "Report object names"
// @Failure 503 {object} map[string]string "Storage not configured"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /items/reports [get]
func (h *Handler) HandleListReports(c *fiber.Ctx) error {
	names, err := h.service.Reports(c.Context())
	if err != nil {
		if errors.Is(err, ErrNoStorage) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
		}
		logger.WithRayID(h.service.logger, c).Error("Failed to list reports", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(names)
}
