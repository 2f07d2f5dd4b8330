package tracker

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"lg/plannit-go-api/internal/catalog"
	"lg/plannit-go-api/internal/foodlog"
	"lg/plannit-go-api/internal/nutrition"
	"lg/plannit-go-api/internal/store"
)

// AddFood logs servings of f to today's log under meal. f is snapshotted and
// must not carry negative nutrients.
func (t *Tracker) AddFood(ctx context.Context, f foodlog.Food, servings float64, meal foodlog.MealType) (foodlog.FoodEntry, error) {
	if servings <= 0 {
		return foodlog.FoodEntry{}, ErrInvalidServings
	}
	if !foodlog.ValidMealType(meal) {
		return foodlog.FoodEntry{}, ErrInvalidMealType
	}
	if err := catalog.CheckNutrients(f); err != nil {
		return foodlog.FoodEntry{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.goals == nil {
		return foodlog.FoodEntry{}, ErrNotOnboarded
	}
	t.rollover()

	entry := foodlog.NewEntry(f, servings, t.daily.Date, meal)
	next := t.daily.Clone()
	next.Add(entry)
	if err := t.saveLog(ctx, next); err != nil {
		return foodlog.FoodEntry{}, err
	}
	return entry, nil
}

// AddFoodByID looks foodID up in the seed and custom catalog and logs it.
func (t *Tracker) AddFoodByID(ctx context.Context, foodID string, servings float64, meal foodlog.MealType) (foodlog.FoodEntry, error) {
	t.mu.Lock()
	f, ok := t.foods.Find(foodID)
	t.mu.Unlock()
	if !ok {
		return foodlog.FoodEntry{}, fmt.Errorf("%w: %s", ErrFoodNotFound, foodID)
	}
	return t.AddFood(ctx, f, servings, meal)
}

// DeleteEntry removes an entry from today's log.
func (t *Tracker) DeleteEntry(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rollover()

	next := t.daily.Clone()
	if !next.Remove(id) {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	return t.saveLog(ctx, next)
}

// saveLog persists next and then makes it current. Callers hold t.mu.
func (t *Tracker) saveLog(ctx context.Context, next foodlog.DailyLog) error {
	if err := store.SetJSON(ctx, t.store, KeyDailyLog, next); err != nil {
		t.log.Error("persist daily log failed", zap.Error(err))
		return fmt.Errorf("persist %s: %w", KeyDailyLog, err)
	}
	t.daily = next
	return nil
}

// AddCustomFood validates in and appends it to the custom collection.
func (t *Tracker) AddCustomFood(ctx context.Context, in catalog.CustomFoodInput) (foodlog.Food, error) {
	f, err := catalog.NewCustomFood(in)
	if err != nil {
		return foodlog.Food{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	next := append(t.foods.Custom(), f)
	if err := store.SetJSON(ctx, t.store, KeyCustomFoods, next); err != nil {
		t.log.Error("persist custom foods failed", zap.Error(err))
		return foodlog.Food{}, fmt.Errorf("persist %s: %w", KeyCustomFoods, err)
	}
	t.foods.Add(f)
	return f, nil
}

/* ─── Dashboard ──────────────────────────────────────────────────────── */

// Metric is one goal's consumption and progress.
type Metric struct {
	Current   float64                `json:"current"`
	Goal      float64                `json:"goal"`
	Remaining float64                `json:"remaining"`
	Percent   float64                `json:"percent"`
	Status    foodlog.ProgressStatus `json:"status"`
}

func newMetric(current float64, goal int) Metric {
	g := float64(goal)
	return Metric{
		Current:   current,
		Goal:      g,
		Remaining: max(0, g-current),
		Percent:   foodlog.Progress(current, g),
		Status:    foodlog.Status(current, g),
	}
}

// Summary is today's dashboard.
type Summary struct {
	Date     foodlog.DateOnly     `json:"date"`
	Goals    nutrition.MacroGoals `json:"goals"`
	Totals   foodlog.Totals       `json:"totals"`
	Calories Metric               `json:"calories"`
	Protein  Metric               `json:"protein"`
	Carbs    Metric               `json:"carbs"`
	Fat      Metric               `json:"fat"`
	Meals    []foodlog.MealGroup  `json:"meals"`
}

// Summary reports today's totals against the goals.
func (t *Tracker) Summary() (Summary, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.goals == nil {
		return Summary{}, ErrNotOnboarded
	}
	t.rollover()

	totals := t.daily.Totals()
	goals := *t.goals
	return Summary{
		Date:     t.daily.Date,
		Goals:    goals,
		Totals:   totals,
		Calories: newMetric(totals.Calories, goals.Calories),
		Protein:  newMetric(totals.Protein, goals.Protein),
		Carbs:    newMetric(totals.Carbs, goals.Carbs),
		Fat:      newMetric(totals.Fat, goals.Fat),
		Meals:    foodlog.GroupByMeal(t.daily.Entries),
	}, nil
}
