// Package onboarding holds the step-indexed questionnaire that builds a
// UserProfile one answer at a time.
package onboarding

import (
	"errors"
	"slices"
	"strings"

	"lg/plannit-go-api/internal/nutrition"
)

// Step is the wizard position. StepSetup chooses between default goals and
// the custom questionnaire; the rest collect one profile field each.
type Step int

const (
	StepSetup Step = iota
	StepAge
	StepGender
	StepHeight
	StepWeight
	StepActivity
	StepGoal
	StepLocation
	StepFoodPreferences
	StepDietaryRestrictions
)

// LastStep is the final questionnaire step.
const LastStep = StepDietaryRestrictions

// FoodOptions are the selectable food preferences.
var FoodOptions = []string{
	"Chicken", "Beef", "Pork", "Fish", "Seafood",
	"Eggs", "Dairy", "Tofu", "Legumes", "Nuts",
	"Fruits", "Vegetables", "Grains", "Rice", "Pasta",
}

// DietaryOptions are the selectable dietary restrictions.
var DietaryOptions = []string{
	"None", "Vegetarian", "Vegan", "Gluten-Free", "Dairy-Free",
	"Nut-Free", "Halal", "Kosher", "Low-Carb", "Keto",
}

// ErrIncomplete is returned by Submit when a required field is missing.
var ErrIncomplete = errors.New("profile is incomplete")

// ErrNotFinalStep is returned by Submit before the last step is reached.
var ErrNotFinalStep = errors.New("questionnaire is not on its final step")

// Wizard accumulates a partial profile. The zero value is not usable; call New.
type Wizard struct {
	step    Step
	profile nutrition.UserProfile
}

// New returns a wizard on the setup step with empty preference lists.
func New() *Wizard {
	return &Wizard{
		step: StepSetup,
		profile: nutrition.UserProfile{
			FoodPreferences:     []string{},
			DietaryRestrictions: []string{},
		},
	}
}

// Step returns the current position.
func (w *Wizard) Step() Step { return w.step }

// Progress is the fraction of questionnaire steps reached, step/9.
func (w *Wizard) Progress() float64 {
	return float64(w.step) / float64(LastStep)
}

// Profile returns a copy of the answers collected so far.
func (w *Wizard) Profile() nutrition.UserProfile {
	p := w.profile
	p.FoodPreferences = slices.Clone(p.FoodPreferences)
	p.DietaryRestrictions = slices.Clone(p.DietaryRestrictions)
	return p
}

/* ─── Setup choice ───────────────────────────────────────────────────── */

// UseDefaults is the setup-step shortcut: the questionnaire is skipped and the
// fixed default goals are used with no profile.
func (w *Wizard) UseDefaults() nutrition.MacroGoals {
	return nutrition.DefaultGoals()
}

// StartCustom leaves the setup step for the first question.
func (w *Wizard) StartCustom() {
	if w.step == StepSetup {
		w.step = StepAge
	}
}

/* ─── Answers ────────────────────────────────────────────────────────── */

func (w *Wizard) SetAge(age int) { w.profile.Age = age }
func (w *Wizard) SetGender(g nutrition.Gender) { w.profile.Gender = g }
func (w *Wizard) SetHeight(cm float64) { w.profile.Height = cm }
func (w *Wizard) SetWeight(kg float64) { w.profile.Weight = kg }
func (w *Wizard) SetActivityLevel(l nutrition.ActivityLevel) { w.profile.ActivityLevel = l }
func (w *Wizard) SetGoal(g nutrition.Goal) { w.profile.Goal = g }
func (w *Wizard) SetLocation(loc string) { w.profile.Location = strings.TrimSpace(loc) }

// ToggleFoodPreference adds option if absent and removes it if present.
func (w *Wizard) ToggleFoodPreference(option string) {
	w.profile.FoodPreferences = toggle(w.profile.FoodPreferences, option)
}

// ToggleDietaryRestriction adds option if absent and removes it if present.
func (w *Wizard) ToggleDietaryRestriction(option string) {
	w.profile.DietaryRestrictions = toggle(w.profile.DietaryRestrictions, option)
}

func toggle(list []string, v string) []string {
	if i := slices.Index(list, v); i >= 0 {
		return slices.Delete(slices.Clone(list), i, i+1)
	}
	return append(list, v)
}

/* ─── Navigation ─────────────────────────────────────────────────────── */

// CanProceed reports whether the current step's answer is acceptable. The
// setup step never proceeds through Next; the two preference steps always do.
func (w *Wizard) CanProceed() bool {
	p := w.profile
	switch w.step {
	case StepAge:
		return p.Age > 0 && p.Age <= nutrition.MaxAge
	case StepGender:
		return p.Gender != ""
	case StepHeight:
		return p.Height > 0 && p.Height <= nutrition.MaxHeight
	case StepWeight:
		return p.Weight > 0 && p.Weight <= nutrition.MaxWeight
	case StepActivity:
		return p.ActivityLevel != ""
	case StepGoal:
		return p.Goal != ""
	case StepLocation:
		return p.Location != ""
	case StepFoodPreferences, StepDietaryRestrictions:
		return true
	default:
		return false
	}
}

// Next advances one step when the current answer is valid and the wizard is
// not on the last step. It reports whether the step changed.
func (w *Wizard) Next() bool {
	if !w.CanProceed() || w.step >= LastStep {
		return false
	}
	w.step++
	return true
}

// Previous goes back one step, never past the first question.
func (w *Wizard) Previous() bool {
	if w.step <= StepAge {
		return false
	}
	w.step--
	return true
}

// Submit returns the completed profile. It requires the last step and every
// required field to be present.
func (w *Wizard) Submit() (nutrition.UserProfile, error) {
	if w.step != LastStep {
		return nutrition.UserProfile{}, ErrNotFinalStep
	}
	p := w.profile
	if p.Height == 0 || p.Weight == 0 || p.Age == 0 || p.Gender == "" ||
		p.ActivityLevel == "" || p.Goal == "" || p.Location == "" {
		return nutrition.UserProfile{}, ErrIncomplete
	}
	return w.Profile(), nil
}
