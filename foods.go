package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lg/plannit-go-api/internal/catalog"
	"lg/plannit-go-api/internal/foodlog"
)

// searchFoods filters the seed and custom catalog.
// GET /api/foods?q=term&category=All.
func (h *Handler) searchFoods(c *gin.Context) {
	category := c.DefaultQuery("category", catalog.AllCategories)
	foods := h.tracker.Catalog().Search(c.Query("q"), category)
	c.JSON(http.StatusOK, foodListResponse{Foods: foods, Categories: foodlog.Categories})
}

// createCustomFood adds a user-defined food.
// POST /api/foods.
func (h *Handler) createCustomFood(c *gin.Context) {
	var body catalog.CustomFoodInput
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	f, err := h.tracker.AddCustomFood(c, body)
	if err != nil {
		h.trackerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

// previewFood reports what a catalog food contributes at a serving count.
// GET /api/foods/preview?food_id=seed-banana&servings=1.5 (servings defaults to 1).
func (h *Handler) previewFood(c *gin.Context) {
	servings, err := strconv.ParseFloat(c.DefaultQuery("servings", "1"), 64)
	if err != nil || servings <= 0 {
		apiError(c, http.StatusBadRequest, "servings must be a positive number")
		return
	}

	f, ok := h.tracker.Catalog().Find(c.Query("food_id"))
	if !ok {
		apiError(c, http.StatusNotFound, "food not found")
		return
	}
	c.JSON(http.StatusOK, foodlog.Preview(f, servings))
}

/* ─── Remote lookup ──────────────────────────────────────────────────── */

// searchUSDA proxies a FoodData Central search, normalised to catalog foods.
// GET /api/foods/usda/search?q=term&page=1.
func (h *Handler) searchUSDA(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		apiError(c, http.StatusBadRequest, "page must be a positive integer")
		return
	}

	res, err := h.lookup.Search(c, c.Query("q"), page)
	if err != nil {
		h.lookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// getUSDAFood fetches one FoodData Central record.
// GET /api/foods/usda/:fdcId.
func (h *Handler) getUSDAFood(c *gin.Context) {
	fdcID, err := strconv.Atoi(c.Param("fdcId"))
	if err != nil || fdcID <= 0 {
		apiError(c, http.StatusBadRequest, "fdcId must be a positive integer")
		return
	}

	f, err := h.lookup.Details(c, fdcID)
	if err != nil {
		h.lookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}
