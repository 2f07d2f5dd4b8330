package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lg/plannit-go-api/internal/nutrition"
)

func (h *Handler) profileState() profileResponse {
	var resp profileResponse
	if p, ok := h.tracker.Profile(); ok {
		resp.Profile = &p
	}
	if g, ok := h.tracker.Goals(); ok {
		resp.Goals = &g
		resp.Ready = true
	}
	return resp
}

// getProfile returns the stored profile and goals.
// GET /api/profile.
func (h *Handler) getProfile(c *gin.Context) {
	c.JSON(http.StatusOK, h.profileState())
}

// putProfile submits a completed questionnaire. The whole profile is
// replaced and goals are recomputed from it.
// PUT /api/profile.
func (h *Handler) putProfile(c *gin.Context) {
	var body nutrition.UserProfile
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := h.tracker.CompleteProfile(c, body); err != nil {
		h.trackerError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.profileState())
}

// useDefaultGoals skips the questionnaire and adopts the default goals.
// POST /api/profile/defaults.
func (h *Handler) useDefaultGoals(c *gin.Context) {
	if _, err := h.tracker.UseDefaultGoals(c); err != nil {
		h.trackerError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.profileState())
}

// getGoals returns the current macro goals, 409 before onboarding.
// GET /api/goals.
func (h *Handler) getGoals(c *gin.Context) {
	goals, ok := h.tracker.Goals()
	if !ok {
		apiError(c, http.StatusConflict, "no macro goals yet")
		return
	}
	c.JSON(http.StatusOK, goals)
}

// reset wipes all stored state, custom foods included.
// POST /api/reset.
func (h *Handler) reset(c *gin.Context) {
	if err := h.tracker.Reset(c); err != nil {
		h.trackerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
