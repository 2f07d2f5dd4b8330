package foodlog

import "math"

// Food categories offered by the catalog. Remote lookups may also produce
// CategoryOther.
const (
	CategoryProtein    = "Protein"
	CategoryCarbs      = "Carbs"
	CategoryVegetables = "Vegetables"
	CategoryFruits     = "Fruits"
	CategoryFats       = "Fats"
	CategoryDairy      = "Dairy"
	CategoryOther      = "Other"
)

// Categories lists the selectable catalog categories in display order.
var Categories = []string{
	CategoryProtein,
	CategoryCarbs,
	CategoryVegetables,
	CategoryFruits,
	CategoryFats,
	CategoryDairy,
}

// Food is a nutrition record for one serving. Fiber and Sugar are optional.
type Food struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Category    string   `json:"category" yaml:"category"`
	ServingSize float64  `json:"serving_size" yaml:"serving_size"`
	ServingUnit string   `json:"serving_unit" yaml:"serving_unit"`
	Calories    float64  `json:"calories" yaml:"calories"`
	Protein     float64  `json:"protein" yaml:"protein"`
	Carbs       float64  `json:"carbs" yaml:"carbs"`
	Fat         float64  `json:"fat" yaml:"fat"`
	Fiber       *float64 `json:"fiber,omitempty" yaml:"fiber,omitempty"`
	Sugar       *float64 `json:"sugar,omitempty" yaml:"sugar,omitempty"`
}

// NutritionPreview is what a food contributes at a given number of servings,
// rounded for display.
type NutritionPreview struct {
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Amount   float64 `json:"amount"` // servings * serving size, in ServingUnit
}

// Preview scales f by servings. Calories round to whole kcal, macros to one
// decimal.
func Preview(f Food, servings float64) NutritionPreview {
	return NutritionPreview{
		Calories: int(math.Round(f.Calories * servings)),
		Protein:  round1(f.Protein * servings),
		Carbs:    round1(f.Carbs * servings),
		Fat:      round1(f.Fat * servings),
		Amount:   math.Round(f.ServingSize * servings),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
