package foodlog

import (
	"github.com/google/uuid"

	"lg/plannit-go-api/internal/nutrition"
)

// MealType is the slot an entry is logged against.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snack     MealType = "snack"
)

// MealTypes lists the slots in display order.
var MealTypes = []MealType{Breakfast, Lunch, Dinner, Snack}

var validMealTypes = map[MealType]bool{
	Breakfast: true,
	Lunch:     true,
	Dinner:    true,
	Snack:     true,
}

// ValidMealType reports whether m is one of the four slots.
func ValidMealType(m MealType) bool { return validMealTypes[m] }

// FoodEntry is one logged consumption. Food is a snapshot taken at log time,
// so later edits to the source food never change past entries.
type FoodEntry struct {
	ID       string   `json:"id"`
	Food     Food     `json:"food"`
	Servings float64  `json:"servings"`
	Date     DateOnly `json:"date"`
	MealType MealType `json:"meal_type"`
}

// NewEntry snapshots f into a new entry with a fresh id.
func NewEntry(f Food, servings float64, date DateOnly, meal MealType) FoodEntry {
	return FoodEntry{
		ID:       uuid.New().String(),
		Food:     snapshot(f),
		Servings: servings,
		Date:     date,
		MealType: meal,
	}
}

func snapshot(f Food) Food {
	if f.Fiber != nil {
		v := *f.Fiber
		f.Fiber = &v
	}
	if f.Sugar != nil {
		v := *f.Sugar
		f.Sugar = &v
	}
	return f
}

// Totals are summed nutrients for a set of entries.
type Totals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Sum folds food.metric * servings over entries. A non-nil meal restricts the
// fold to that slot.
func Sum(entries []FoodEntry, meal *MealType) Totals {
	var t Totals
	for _, e := range entries {
		if meal != nil && e.MealType != *meal {
			continue
		}
		t.Calories += e.Food.Calories * e.Servings
		t.Protein += e.Food.Protein * e.Servings
		t.Carbs += e.Food.Carbs * e.Servings
		t.Fat += e.Food.Fat * e.Servings
	}
	return t
}

// DailyLog holds one calendar day's entries and their totals. The totals are
// recomputed from the full entry set on every change.
type DailyLog struct {
	Date          DateOnly    `json:"date"`
	Entries       []FoodEntry `json:"entries"`
	TotalCalories float64     `json:"total_calories"`
	TotalProtein  float64     `json:"total_protein"`
	TotalCarbs    float64     `json:"total_carbs"`
	TotalFat      float64     `json:"total_fat"`
}

// NewDailyLog returns an empty log for date.
func NewDailyLog(date DateOnly) DailyLog {
	return DailyLog{Date: date, Entries: []FoodEntry{}}
}

// Clone returns a copy whose entry list can be changed independently.
func (l DailyLog) Clone() DailyLog {
	l.Entries = append([]FoodEntry{}, l.Entries...)
	return l
}

// Add appends e and recomputes totals.
func (l *DailyLog) Add(e FoodEntry) {
	l.Entries = append(l.Entries, e)
	l.Recompute()
}

// Remove drops the entry with id and recomputes totals. It reports whether an
// entry was removed.
func (l *DailyLog) Remove(id string) bool {
	kept := make([]FoodEntry, 0, len(l.Entries))
	for _, e := range l.Entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	removed := len(kept) != len(l.Entries)
	l.Entries = kept
	l.Recompute()
	return removed
}

// Recompute resets the totals to the fold of the current entries.
func (l *DailyLog) Recompute() {
	t := Sum(l.Entries, nil)
	l.TotalCalories = t.Calories
	l.TotalProtein = t.Protein
	l.TotalCarbs = t.Carbs
	l.TotalFat = t.Fat
}

// Totals returns the log's running totals.
func (l DailyLog) Totals() Totals {
	return Totals{
		Calories: l.TotalCalories,
		Protein:  l.TotalProtein,
		Carbs:    l.TotalCarbs,
		Fat:      l.TotalFat,
	}
}

// MealGroup is one slot's entries and totals.
type MealGroup struct {
	MealType MealType    `json:"meal_type"`
	Entries  []FoodEntry `json:"entries"`
	Totals   Totals      `json:"totals"`
}

// GroupByMeal partitions entries by slot. Every slot is present, in display
// order; empty slots carry zero totals and an empty list.
func GroupByMeal(entries []FoodEntry) []MealGroup {
	groups := make([]MealGroup, len(MealTypes))
	for i, m := range MealTypes {
		groups[i] = MealGroup{MealType: m, Entries: []FoodEntry{}}
	}
	for _, e := range entries {
		for i := range groups {
			if groups[i].MealType == e.MealType {
				groups[i].Entries = append(groups[i].Entries, e)
			}
		}
	}
	for i := range groups {
		groups[i].Totals = Sum(groups[i].Entries, nil)
	}
	return groups
}

/* ─── Goal progress ──────────────────────────────────────────────────── */

// ProgressStatus buckets consumption relative to a goal.
type ProgressStatus string

const (
	StatusUnder ProgressStatus = "under"
	StatusNear  ProgressStatus = "near"
	StatusOver  ProgressStatus = "over"
)

// Remaining is goal minus consumed per metric, floored at zero.
func Remaining(goals nutrition.MacroGoals, t Totals) Totals {
	return Totals{
		Calories: max(0, float64(goals.Calories)-t.Calories),
		Protein:  max(0, float64(goals.Protein)-t.Protein),
		Carbs:    max(0, float64(goals.Carbs)-t.Carbs),
		Fat:      max(0, float64(goals.Fat)-t.Fat),
	}
}

// Progress is current as a percentage of goal, capped at 100. A goal of zero
// or less yields 0.
func Progress(current, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return min(current/goal*100, 100)
}

// Status is under below 80% of goal, near below 100%, over otherwise.
func Status(current, goal float64) ProgressStatus {
	if goal <= 0 {
		if current > 0 {
			return StatusOver
		}
		return StatusUnder
	}
	pct := current / goal * 100
	switch {
	case pct < 80:
		return StatusUnder
	case pct < 100:
		return StatusNear
	default:
		return StatusOver
	}
}
