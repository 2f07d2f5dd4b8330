package nutrition

import (
	"errors"
	"fmt"
	"math"
)

// Gender is the profile's sex category used to pick the BMR constant.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
	Other  Gender = "other"
)

// ActivityLevel selects the TDEE multiplier.
type ActivityLevel string

const (
	Sedentary   ActivityLevel = "sedentary"
	Light       ActivityLevel = "light"
	Moderate    ActivityLevel = "moderate"
	VeryActive  ActivityLevel = "very_active"
	ExtraActive ActivityLevel = "extra_active"
)

// Goal is the user's weight direction.
type Goal string

const (
	Lose     Goal = "lose"
	Maintain Goal = "maintain"
	Gain     Goal = "gain"
)

var validGenders = map[Gender]bool{Male: true, Female: true, Other: true}

var validGoals = map[Goal]bool{Lose: true, Maintain: true, Gain: true}

// Upper bounds on body metrics. Anything above is a typo or garbage input.
const (
	MaxHeight = 300.0 // cm
	MaxWeight = 650.0 // kg
	MaxAge    = 130
)

// ErrInvalidProfile is wrapped by every Validate failure.
var ErrInvalidProfile = errors.New("invalid profile")

// UserProfile is the body-metric and preference record captured during
// onboarding. It is replaced wholesale on reset and never patched.
type UserProfile struct {
	Height              float64       `json:"height"` // cm
	Weight              float64       `json:"weight"` // kg
	Age                 int           `json:"age"`
	Gender              Gender        `json:"gender"`
	ActivityLevel       ActivityLevel `json:"activity_level"`
	Goal                Goal          `json:"goal"`
	Location            string        `json:"location"`
	FoodPreferences     []string      `json:"food_preferences"`
	DietaryRestrictions []string      `json:"dietary_restrictions"`
}

// MacroGoals are the daily targets derived from a profile.
type MacroGoals struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"` // grams
	Carbs    int `json:"carbs"`   // grams
	Fat      int `json:"fat"`     // grams
}

// Validate reports the first missing or out-of-range field. The goal
// calculations themselves never fail; this runs at the boundary before a
// profile is accepted.
func (p UserProfile) Validate() error {
	switch {
	case !inRange(p.Height, MaxHeight):
		return fmt.Errorf("%w: height must be between 0 and %v cm", ErrInvalidProfile, MaxHeight)
	case !inRange(p.Weight, MaxWeight):
		return fmt.Errorf("%w: weight must be between 0 and %v kg", ErrInvalidProfile, MaxWeight)
	case p.Age <= 0 || p.Age > MaxAge:
		return fmt.Errorf("%w: age must be between 0 and %d", ErrInvalidProfile, MaxAge)
	case !validGenders[p.Gender]:
		return fmt.Errorf("%w: gender must be one of: male, female, other", ErrInvalidProfile)
	case !ValidActivityLevel(p.ActivityLevel):
		return fmt.Errorf("%w: activity_level must be one of: sedentary, light, moderate, very_active, extra_active", ErrInvalidProfile)
	case !validGoals[p.Goal]:
		return fmt.Errorf("%w: goal must be one of: lose, maintain, gain", ErrInvalidProfile)
	case p.Location == "":
		return fmt.Errorf("%w: location is required", ErrInvalidProfile)
	}
	return nil
}

// inRange reports whether v is finite, positive and at most max.
func inRange(v, max float64) bool {
	return !math.IsNaN(v) && v > 0 && v <= max
}

// ValidActivityLevel reports whether level has a known multiplier.
func ValidActivityLevel(level ActivityLevel) bool {
	_, ok := activityMultipliers[level]
	return ok
}

// ValidGender reports whether g is one of the fixed gender values.
func ValidGender(g Gender) bool { return validGenders[g] }

// ValidGoal reports whether g is one of the fixed goal values.
func ValidGoal(g Goal) bool { return validGoals[g] }
