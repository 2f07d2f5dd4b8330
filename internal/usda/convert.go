package usda

import (
	"math"
	"strconv"
	"strings"

	"lg/plannit-go-api/internal/foodlog"
)

// FoodData Central nutrient ids.
const (
	NutrientEnergy  = 1008
	NutrientProtein = 1003
	NutrientCarbs   = 1005
	NutrientFat     = 1004
	NutrientFiber   = 1079
	NutrientSugars  = 2000
)

// Description keywords that override the macro-based category, checked in
// this order.
var categoryKeywords = []struct {
	category string
	words    []string
}{
	{foodlog.CategoryVegetables, []string{"vegetable", "lettuce", "spinach", "broccoli", "carrot", "tomato"}},
	{foodlog.CategoryFruits, []string{"fruit", "apple", "banana", "orange", "berry"}},
	{foodlog.CategoryDairy, []string{"milk", "cheese", "yogurt", "cream"}},
}

// ConvertFood maps a raw record to a Food. Missing nutrients count as zero;
// serving size falls back to 100 g.
func ConvertFood(r FoodResult) foodlog.Food {
	values := make(map[int]float64, len(r.FoodNutrients))
	for _, n := range r.FoodNutrients {
		if _, seen := values[n.NutrientID]; !seen {
			values[n.NutrientID] = n.Value
		}
	}

	protein := values[NutrientProtein]
	carbs := values[NutrientCarbs]
	fat := values[NutrientFat]

	size := r.ServingSize
	if size <= 0 {
		size = 100
	}
	unit := r.ServingSizeUnit
	if unit == "" {
		unit = "g"
	}

	f := foodlog.Food{
		ID:          "usda-" + strconv.Itoa(r.FDCID),
		Name:        r.Description,
		Category:    InferCategory(r.Description, protein, carbs, fat),
		ServingSize: size,
		ServingUnit: unit,
		Calories:    math.Round(values[NutrientEnergy]),
		Protein:     round1(protein),
		Carbs:       round1(carbs),
		Fat:         round1(fat),
	}
	if v, ok := values[NutrientFiber]; ok {
		fiber := round1(v)
		f.Fiber = &fiber
	}
	if v, ok := values[NutrientSugars]; ok {
		sugar := round1(v)
		f.Sugar = &sugar
	}
	return f
}

// InferCategory picks a category from macro dominance and then lets
// description keywords override it.
func InferCategory(description string, protein, carbs, fat float64) string {
	category := foodlog.CategoryOther
	switch {
	case protein > 15 && protein > carbs && protein > fat:
		category = foodlog.CategoryProtein
	case carbs > protein && carbs > fat:
		category = foodlog.CategoryCarbs
	case fat > protein && fat > carbs:
		category = foodlog.CategoryFats
	}

	desc := strings.ToLower(description)
	for _, kw := range categoryKeywords {
		for _, w := range kw.words {
			if strings.Contains(desc, w) {
				return kw.category
			}
		}
	}
	return category
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
