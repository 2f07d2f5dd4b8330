package nutrition

import "math"

// activityMultipliers maps activity levels to their TDEE multiplier. Also the
// source of truth for ValidActivityLevel.
var activityMultipliers = map[ActivityLevel]float64{
	Sedentary:   1.2,
	Light:       1.375,
	Moderate:    1.55,
	VeryActive:  1.725,
	ExtraActive: 1.9,
}

const defaultActivityMultiplier = 1.2

// Caps on the goal adjustment, in kcal.
const (
	maxDeficit   = 500.0
	maxSurplus   = 500.0
	minSurplus   = 250.0
	deficitRatio = 0.20
	surplusRatio = 0.10
)

// Absolute protein band in g/kg, applied after the goal rate.
const (
	minProteinPerKG = 0.8
	maxProteinPerKG = 2.5
)

// macroRates holds the goal-dependent protein rate (g/kg) and the share of
// calories that goes to fat.
type macroRates struct {
	proteinPerKG float64
	fatFraction  float64
}

var goalMacroRates = map[Goal]macroRates{
	Lose: {proteinPerKG: 1.8, fatFraction: 0.28},
	Gain: {proteinPerKG: 1.6, fatFraction: 0.28},
}

var maintainMacroRates = macroRates{proteinPerKG: 1.4, fatFraction: 0.27}

// BMR estimates basal metabolic rate with Mifflin-St Jeor. For Other it
// returns the mean of the male and female results.
func BMR(p UserProfile) float64 {
	base := 10*p.Weight + 6.25*p.Height - 5*float64(p.Age)
	male := base + 5
	female := base - 161

	switch p.Gender {
	case Male:
		return male
	case Female:
		return female
	default:
		return (male + female) / 2
	}
}

// TDEE scales bmr by the activity multiplier. Unknown levels use the
// sedentary multiplier instead of failing.
func TDEE(bmr float64, level ActivityLevel) float64 {
	mult, ok := activityMultipliers[level]
	if !ok {
		mult = defaultActivityMultiplier
	}
	return bmr * mult
}

// CalorieGoal applies the goal adjustment to tdee and rounds.
//
// Gain floors the surplus at 250 kcal after capping it at 500, so for any
// TDEE under 2500 the surplus is larger than 10%. Kept as is.
func CalorieGoal(tdee float64, goal Goal) int {
	switch goal {
	case Lose:
		deficit := math.Min(tdee*deficitRatio, maxDeficit)
		return int(math.Round(tdee - deficit))
	case Gain:
		surplus := math.Min(tdee*surplusRatio, maxSurplus)
		return int(math.Round(tdee + math.Max(minSurplus, surplus)))
	default:
		return int(math.Round(tdee))
	}
}

// Macros splits calories into protein, fat and carb grams. Carbs take what is
// left after protein and fat and floor at zero, so when protein and fat
// already exceed the budget the macro calories will not add up to Calories.
// Calories always echoes the input.
func Macros(calories int, weight float64, goal Goal) MacroGoals {
	rates, ok := goalMacroRates[goal]
	if !ok {
		rates = maintainMacroRates
	}

	protein := math.Round(weight * rates.proteinPerKG)
	protein = math.Max(math.Round(weight*minProteinPerKG), math.Min(protein, math.Round(weight*maxProteinPerKG)))

	fat := math.Round(float64(calories) * rates.fatFraction / 9)

	carbCalories := math.Max(0, float64(calories)-protein*4-fat*9)
	carbs := math.Round(carbCalories / 4)

	return MacroGoals{
		Calories: calories,
		Protein:  int(protein),
		Carbs:    int(carbs),
		Fat:      int(math.Max(0, fat)),
	}
}

// CalculateUserMacros runs the full pipeline: BMR, TDEE, calorie goal, macros.
func CalculateUserMacros(p UserProfile) MacroGoals {
	bmr := BMR(p)
	tdee := TDEE(bmr, p.ActivityLevel)
	calories := CalorieGoal(tdee, p.Goal)
	return Macros(calories, p.Weight, p.Goal)
}

// DefaultGoals are offered at the first onboarding step for users who skip
// entering body metrics.
func DefaultGoals() MacroGoals {
	return MacroGoals{Calories: 1813, Protein: 162, Carbs: 165, Fat: 56}
}
