package main

import (
	"lg/plannit-go-api/internal/foodlog"
	"lg/plannit-go-api/internal/nutrition"
	"lg/plannit-go-api/internal/tracker"
)

/* ─── Responses ──────────────────────────────────────────────────────── */

// profileResponse reports onboarding state. Profile is null on the
// default-goals path; Goals is null until onboarding finishes.
type profileResponse struct {
	Profile *nutrition.UserProfile `json:"profile"`
	Goals   *nutrition.MacroGoals  `json:"goals"`
	Ready   bool                   `json:"ready"`
}

// dailyLogResponse is today's log plus the dashboard summary once goals exist.
type dailyLogResponse struct {
	Log     foodlog.DailyLog `json:"log"`
	Summary *tracker.Summary `json:"summary"`
}

// foodListResponse is a catalog search result.
type foodListResponse struct {
	Foods      []foodlog.Food `json:"foods"`
	Categories []string       `json:"categories"`
}

/* ─── Requests ───────────────────────────────────────────────────────── */

// createEntryRequest is the body for POST /api/daily-log/entries. Either
// FoodID names a catalog food, or Food carries a full record (e.g. a remote
// lookup result) to snapshot.
type createEntryRequest struct {
	FoodID   string           `json:"food_id"`
	Food     *foodlog.Food    `json:"food"`
	Servings float64          `json:"servings"`
	MealType foodlog.MealType `json:"meal_type"`
}
