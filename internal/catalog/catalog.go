package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"lg/plannit-go-api/internal/foodlog"
)

//go:embed foods.yaml
var seedYAML []byte

// AllCategories matches every food in Search.
const AllCategories = "All"

// ErrInvalidFood is returned when a custom food fails validation.
var ErrInvalidFood = errors.New("invalid food")

// ServingUnits are the units a custom food may use.
var ServingUnits = []string{"g", "ml", "oz", "cup", "tbsp", "tsp", "piece", "serving"}

var validServingUnits = func() map[string]bool {
	m := make(map[string]bool, len(ServingUnits))
	for _, u := range ServingUnits {
		m[u] = true
	}
	return m
}()

// seed is parsed once at init; it is never mutated afterwards.
var seed = mustParseSeed(seedYAML)

func mustParseSeed(b []byte) []foodlog.Food {
	foods, err := parseFoods(b)
	if err != nil {
		panic(fmt.Sprintf("catalog: parse seed foods: %v", err))
	}
	return foods
}

func parseFoods(b []byte) ([]foodlog.Food, error) {
	var foods []foodlog.Food
	if err := yaml.Unmarshal(b, &foods); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(foods))
	for _, f := range foods {
		if f.ID == "" || seen[f.ID] {
			return nil, fmt.Errorf("duplicate or empty id %q", f.ID)
		}
		seen[f.ID] = true
	}
	return foods, nil
}

// Seed returns a copy of the read-only seed list.
func Seed() []foodlog.Food {
	out := make([]foodlog.Food, len(seed))
	copy(out, seed)
	return out
}

// Catalog is the seed list plus the user's custom foods. Custom foods are kept
// in a separate collection and never replace seed entries.
type Catalog struct {
	custom []foodlog.Food
}

// New returns a catalog over the given custom foods.
func New(custom []foodlog.Food) *Catalog {
	c := &Catalog{}
	c.custom = append(c.custom, custom...)
	return c
}

// All returns seed foods followed by custom foods.
func (c *Catalog) All() []foodlog.Food {
	out := make([]foodlog.Food, 0, len(seed)+len(c.custom))
	out = append(out, seed...)
	return append(out, c.custom...)
}

// Custom returns a copy of the custom foods.
func (c *Catalog) Custom() []foodlog.Food {
	out := make([]foodlog.Food, len(c.custom))
	copy(out, c.custom)
	return out
}

// Search matches term as a case-insensitive substring of the name and filters
// by category. An empty category or AllCategories matches everything.
func (c *Catalog) Search(term, category string) []foodlog.Food {
	term = strings.ToLower(strings.TrimSpace(term))
	out := []foodlog.Food{}
	for _, f := range c.All() {
		if !strings.Contains(strings.ToLower(f.Name), term) {
			continue
		}
		if category != "" && category != AllCategories && f.Category != category {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Find looks a food up by id in seed and custom foods.
func (c *Catalog) Find(id string) (foodlog.Food, bool) {
	for _, f := range c.All() {
		if f.ID == id {
			return f, true
		}
	}
	return foodlog.Food{}, false
}

// Add appends f to the custom foods.
func (c *Catalog) Add(f foodlog.Food) {
	c.custom = append(c.custom, f)
}

// CustomFoodInput is what the user enters to create a food.
type CustomFoodInput struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	ServingSize float64  `json:"serving_size"`
	ServingUnit string   `json:"serving_unit"`
	Calories    float64  `json:"calories"`
	Protein     float64  `json:"protein"`
	Carbs       float64  `json:"carbs"`
	Fat         float64  `json:"fat"`
	Fiber       *float64 `json:"fiber,omitempty"`
	Sugar       *float64 `json:"sugar,omitempty"`
}

// CheckNutrients rejects a food snapshot whose nutrient values are negative.
// Zero calories is allowed.
func CheckNutrients(f foodlog.Food) error {
	return checkNutrients(f.Calories, f.Protein, f.Carbs, f.Fat, f.Fiber, f.Sugar)
}

func checkNutrients(calories, protein, carbs, fat float64, fiber, sugar *float64) error {
	if calories < 0 {
		return fmt.Errorf("%w: calories must not be negative", ErrInvalidFood)
	}
	if protein < 0 || carbs < 0 || fat < 0 {
		return fmt.Errorf("%w: macros must not be negative", ErrInvalidFood)
	}
	if (fiber != nil && *fiber < 0) || (sugar != nil && *sugar < 0) {
		return fmt.Errorf("%w: fiber and sugar must not be negative", ErrInvalidFood)
	}
	return nil
}

// NewCustomFood validates in and builds a food with a "custom-" id. Name and
// positive calories are required; category defaults to Protein, serving to
// 100 g.
func NewCustomFood(in CustomFoodInput) (foodlog.Food, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return foodlog.Food{}, fmt.Errorf("%w: name is required", ErrInvalidFood)
	}
	if in.Calories <= 0 {
		return foodlog.Food{}, fmt.Errorf("%w: calories must be positive", ErrInvalidFood)
	}
	if err := checkNutrients(in.Calories, in.Protein, in.Carbs, in.Fat, in.Fiber, in.Sugar); err != nil {
		return foodlog.Food{}, err
	}

	category := in.Category
	if category == "" {
		category = foodlog.CategoryProtein
	}
	if !validCategory(category) {
		return foodlog.Food{}, fmt.Errorf("%w: category must be one of: %s", ErrInvalidFood, strings.Join(foodlog.Categories, ", "))
	}

	size := in.ServingSize
	if size <= 0 {
		size = 100
	}
	unit := in.ServingUnit
	if unit == "" {
		unit = "g"
	}
	if !validServingUnits[unit] {
		return foodlog.Food{}, fmt.Errorf("%w: serving_unit must be one of: %s", ErrInvalidFood, strings.Join(ServingUnits, ", "))
	}

	return foodlog.Food{
		ID:          "custom-" + uuid.New().String(),
		Name:        name,
		Category:    category,
		ServingSize: size,
		ServingUnit: unit,
		Calories:    in.Calories,
		Protein:     in.Protein,
		Carbs:       in.Carbs,
		Fat:         in.Fat,
		Fiber:       in.Fiber,
		Sugar:       in.Sugar,
	}, nil
}

func validCategory(c string) bool {
	if c == foodlog.CategoryOther {
		return true
	}
	for _, known := range foodlog.Categories {
		if c == known {
			return true
		}
	}
	return false
}
