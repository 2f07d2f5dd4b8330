package main

import (
	"net/http"
	"testing"

	"lg/plannit-go-api/internal/foodlog"
)

func TestGetDailyLog_BeforeOnboarding(t *testing.T) {
	env := setupTest(t)

	w := env.do("GET", "/api/daily-log", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decode[dailyLogResponse](t, w)
	if resp.Summary != nil {
		t.Error("summary present before goals exist")
	}
	if resp.Log.Date.String() != "2026-10-14" || resp.Log.Entries == nil {
		t.Errorf("log = %+v, want empty list for 2026-10-14", resp.Log)
	}

	w = env.do("POST", "/api/daily-log/entries", `{"food_id":"seed-banana","servings":1,"meal_type":"snack"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("create entry before onboarding: expected 409, got %d", w.Code)
	}
}

// TestCreateAndDeleteEntry logs 2 servings of a 200 kcal food for lunch,
// checks the totals and lunch group, then deletes it.
func TestCreateAndDeleteEntry(t *testing.T) {
	env := setupTest(t)
	env.do("POST", "/api/profile/defaults", "")

	w := env.do("POST", "/api/daily-log/entries",
		`{"food":{"id":"usda-1","name":"Rice bowl","category":"Carbs","serving_size":100,"serving_unit":"g","calories":200,"protein":4,"carbs":44,"fat":0.5},"servings":2,"meal_type":"lunch"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	entry := decode[foodlog.FoodEntry](t, w)
	if entry.ID == "" || entry.Servings != 2 || entry.MealType != foodlog.Lunch {
		t.Fatalf("entry = %+v", entry)
	}

	resp := decode[dailyLogResponse](t, env.do("GET", "/api/daily-log", ""))
	if resp.Log.TotalCalories != 400 {
		t.Errorf("total calories = %v, want 400", resp.Log.TotalCalories)
	}
	if resp.Summary == nil || resp.Summary.Meals[1].Totals.Calories != 400 {
		t.Fatalf("summary = %+v", resp.Summary)
	}
	if resp.Summary.Calories.Remaining != 1413 {
		t.Errorf("remaining = %v, want 1413", resp.Summary.Calories.Remaining)
	}

	if w := env.do("DELETE", "/api/daily-log/entries/"+entry.ID, ""); w.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d: %s", w.Code, w.Body.String())
	}
	resp = decode[dailyLogResponse](t, env.do("GET", "/api/daily-log", ""))
	if resp.Log.TotalCalories != 0 || len(resp.Log.Entries) != 0 {
		t.Errorf("log after delete = %+v", resp.Log)
	}
}

func TestCreateEntry_Validation(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		status int
	}{
		{"malformed", `{`, http.StatusBadRequest},
		{"no food", `{"servings":1,"meal_type":"lunch"}`, http.StatusBadRequest},
		{"zero servings", `{"food_id":"seed-banana","servings":0,"meal_type":"lunch"}`, http.StatusBadRequest},
		{"bad meal", `{"food_id":"seed-banana","servings":1,"meal_type":"brunch"}`, http.StatusBadRequest},
		{"nameless food", `{"food":{"id":"x","calories":10},"servings":1,"meal_type":"lunch"}`, http.StatusBadRequest},
		{"negative calories", `{"food":{"id":"usda-7","name":"Glitch","calories":-300,"protein":1},"servings":1,"meal_type":"lunch"}`, http.StatusBadRequest},
		{"negative fat", `{"food":{"id":"usda-7","name":"Glitch","calories":30,"fat":-4},"servings":1,"meal_type":"lunch"}`, http.StatusBadRequest},
		{"unknown food", `{"food_id":"seed-nope","servings":1,"meal_type":"lunch"}`, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := setupTest(t)
			env.do("POST", "/api/profile/defaults", "")
			if w := env.do("POST", "/api/daily-log/entries", tc.body); w.Code != tc.status {
				t.Errorf("expected %d, got %d: %s", tc.status, w.Code, w.Body.String())
			}
		})
	}
}

func TestDeleteEntry_NotFound(t *testing.T) {
	env := setupTest(t)
	if w := env.do("DELETE", "/api/daily-log/entries/missing", ""); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
