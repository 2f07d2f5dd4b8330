package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lg/plannit-go-api/internal/foodlog"
	"lg/plannit-go-api/internal/tracker"
)

// getDailyLog returns today's entries and, once goals exist, the dashboard
// summary with per-meal groups and progress.
// GET /api/daily-log.
func (h *Handler) getDailyLog(c *gin.Context) {
	resp := dailyLogResponse{Log: h.tracker.Log()}

	sum, err := h.tracker.Summary()
	switch {
	case err == nil:
		resp.Summary = &sum
	case !errors.Is(err, tracker.ErrNotOnboarded):
		h.trackerError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// createEntry logs a food to today's log.
// POST /api/daily-log/entries.
func (h *Handler) createEntry(c *gin.Context) {
	var body createEntryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	var (
		entry foodlog.FoodEntry
		err   error
	)
	switch {
	case body.FoodID != "":
		entry, err = h.tracker.AddFoodByID(c, body.FoodID, body.Servings, body.MealType)
	case body.Food != nil:
		if strings.TrimSpace(body.Food.Name) == "" || body.Food.ID == "" {
			apiError(c, http.StatusBadRequest, "food needs an id and a name")
			return
		}
		entry, err = h.tracker.AddFood(c, *body.Food, body.Servings, body.MealType)
	default:
		apiError(c, http.StatusBadRequest, "food_id or food is required")
		return
	}
	if err != nil {
		h.trackerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// deleteEntry removes an entry from today's log.
// DELETE /api/daily-log/entries/:id.
func (h *Handler) deleteEntry(c *gin.Context) {
	if err := h.tracker.DeleteEntry(c, c.Param("id")); err != nil {
		h.trackerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
