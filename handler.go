package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lg/plannit-go-api/internal/catalog"
	"lg/plannit-go-api/internal/foodlog"
	"lg/plannit-go-api/internal/nutrition"
	"lg/plannit-go-api/internal/tracker"
	"lg/plannit-go-api/internal/usda"
)

// foodLookup is the remote food database. *usda.Client satisfies it.
type foodLookup interface {
	Search(ctx context.Context, query string, page int) (usda.SearchResult, error)
	Details(ctx context.Context, fdcID int) (foodlog.Food, error)
}

// Handler holds shared dependencies (tracker, lookup client, logger) for all
// route handlers.
type Handler struct {
	tracker *tracker.Tracker
	lookup  foodLookup
	log     *zap.Logger
}

/* ─── Error helpers ──────────────────────────────────────────────────── */

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// trackerError maps tracker and validation errors to a status. Anything
// unrecognised is a storage failure.
func (h *Handler) trackerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, nutrition.ErrInvalidProfile),
		errors.Is(err, catalog.ErrInvalidFood),
		errors.Is(err, tracker.ErrInvalidServings),
		errors.Is(err, tracker.ErrInvalidMealType):
		apiError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, tracker.ErrEntryNotFound),
		errors.Is(err, tracker.ErrFoodNotFound):
		apiError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, tracker.ErrNotOnboarded):
		apiError(c, http.StatusConflict, err.Error())
	default:
		h.log.Error("tracker operation failed", zap.String("path", c.FullPath()), zap.Error(err))
		apiError(c, http.StatusInternalServerError, "failed to save changes")
	}
}

// lookupError maps remote lookup failures. The upstream status is logged but
// not passed through.
func (h *Handler) lookupError(c *gin.Context, err error) {
	if errors.Is(err, usda.ErrEmptyQuery) {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}
	var se *usda.StatusError
	if errors.As(err, &se) {
		h.log.Warn("food lookup rejected", zap.Int("upstream_status", se.StatusCode), zap.String("body", se.Body))
	} else {
		h.log.Warn("food lookup failed", zap.Error(err))
	}
	apiError(c, http.StatusBadGateway, "food lookup failed")
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	api := router.Group("/api")
	api.GET("/profile", h.getProfile)
	api.PUT("/profile", h.putProfile)
	api.POST("/profile/defaults", h.useDefaultGoals)
	api.POST("/reset", h.reset)
	api.GET("/goals", h.getGoals)

	api.GET("/daily-log", h.getDailyLog)
	api.POST("/daily-log/entries", h.createEntry)
	api.DELETE("/daily-log/entries/:id", h.deleteEntry)

	api.GET("/foods", h.searchFoods)
	api.POST("/foods", h.createCustomFood)
	api.GET("/foods/preview", h.previewFood)
	api.GET("/foods/usda/search", h.searchUSDA)
	api.GET("/foods/usda/:fdcId", h.getUSDAFood)
}
