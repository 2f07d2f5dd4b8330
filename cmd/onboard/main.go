// CLI tool to run the onboarding questionnaire from a terminal and store the
// resulting profile and macro goals in the configured store.
// Usage: go run ./cmd/onboard
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"lg/plannit-go-api/internal/config"
	"lg/plannit-go-api/internal/nutrition"
	"lg/plannit-go-api/internal/onboarding"
	"lg/plannit-go-api/internal/store"
	"lg/plannit-go-api/internal/tracker"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.NewFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	st, err := store.Open(ctx, cfg.Store())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to open store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	t, err := tracker.New(ctx, st)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to load state: %v\n", err)
		os.Exit(1)
	}
	if t.Ready() {
		fmt.Println("Existing goals will be replaced.")
	}

	goals, err := run(ctx, os.Stdin, os.Stdout, t)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nOnboarding failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nGoals saved!\n")
	fmt.Printf("  Calories: %d kcal\n", goals.Calories)
	fmt.Printf("  Protein:  %d g\n", goals.Protein)
	fmt.Printf("  Carbs:    %d g\n", goals.Carbs)
	fmt.Printf("  Fat:      %d g\n", goals.Fat)
}

// run walks the wizard over in, re-asking any step whose answer is rejected.
func run(ctx context.Context, in io.Reader, out io.Writer, t *tracker.Tracker) (nutrition.MacroGoals, error) {
	r := bufio.NewReader(in)
	w := onboarding.New()

	defaults := w.UseDefaults()
	ans, err := ask(r, out, fmt.Sprintf("Use default goals (%d kcal)? [y/N]: ", defaults.Calories))
	if err != nil {
		return nutrition.MacroGoals{}, err
	}
	if yes(ans) {
		return t.UseDefaultGoals(ctx)
	}

	w.StartCustom()
	for {
		if err := answer(r, out, w); err != nil {
			return nutrition.MacroGoals{}, err
		}
		if w.Step() == onboarding.LastStep {
			break
		}
		if !w.Next() {
			fmt.Fprintln(out, "  Please enter a valid answer.")
		}
	}

	p, err := w.Submit()
	if err != nil {
		return nutrition.MacroGoals{}, err
	}
	return t.CompleteProfile(ctx, p)
}

// answer prompts for the current step and records the reply. Unparseable
// replies record the zero value so CanProceed rejects them.
func answer(r *bufio.Reader, out io.Writer, w *onboarding.Wizard) error {
	prefix := fmt.Sprintf("[%d/%d] ", w.Step(), onboarding.LastStep)
	switch w.Step() {
	case onboarding.StepAge:
		s, err := ask(r, out, prefix+"Age: ")
		if err != nil {
			return err
		}
		n, _ := strconv.Atoi(s)
		w.SetAge(n)
	case onboarding.StepGender:
		s, err := ask(r, out, prefix+"Gender (male, female, other): ")
		if err != nil {
			return err
		}
		g := nutrition.Gender(strings.ToLower(s))
		if !nutrition.ValidGender(g) {
			g = ""
		}
		w.SetGender(g)
	case onboarding.StepHeight:
		v, err := askFloat(r, out, prefix+"Height (cm): ")
		if err != nil {
			return err
		}
		w.SetHeight(v)
	case onboarding.StepWeight:
		v, err := askFloat(r, out, prefix+"Weight (kg): ")
		if err != nil {
			return err
		}
		w.SetWeight(v)
	case onboarding.StepActivity:
		s, err := ask(r, out, prefix+"Activity level (sedentary, light, moderate, very_active, extra_active): ")
		if err != nil {
			return err
		}
		l := nutrition.ActivityLevel(strings.ToLower(s))
		if !nutrition.ValidActivityLevel(l) {
			l = ""
		}
		w.SetActivityLevel(l)
	case onboarding.StepGoal:
		s, err := ask(r, out, prefix+"Goal (lose, maintain, gain): ")
		if err != nil {
			return err
		}
		g := nutrition.Goal(strings.ToLower(s))
		if !nutrition.ValidGoal(g) {
			g = ""
		}
		w.SetGoal(g)
	case onboarding.StepLocation:
		s, err := ask(r, out, prefix+"Location: ")
		if err != nil {
			return err
		}
		w.SetLocation(s)
	case onboarding.StepFoodPreferences:
		picked, err := askOptions(r, out, prefix+"Food preferences", onboarding.FoodOptions)
		if err != nil {
			return err
		}
		for _, o := range picked {
			w.ToggleFoodPreference(o)
		}
	case onboarding.StepDietaryRestrictions:
		picked, err := askOptions(r, out, prefix+"Dietary restrictions", onboarding.DietaryOptions)
		if err != nil {
			return err
		}
		for _, o := range picked {
			w.ToggleDietaryRestriction(o)
		}
	}
	return nil
}

/* ─── Prompt helpers ─────────────────────────────────────────────────── */

// ask prints prompt and reads one trimmed line. A final line without a
// newline is accepted; running out of input is an error.
func ask(r *bufio.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func askFloat(r *bufio.Reader, out io.Writer, prompt string) (float64, error) {
	s, err := ask(r, out, prompt)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, nil
	}
	return v, nil
}

// askOptions reads a comma-separated selection and maps each item onto its
// option spelling. Unknown and repeated items are skipped.
func askOptions(r *bufio.Reader, out io.Writer, label string, options []string) ([]string, error) {
	s, err := ask(r, out, fmt.Sprintf("%s, comma separated or blank for none\n  (%s): ", label, strings.Join(options, ", ")))
	if err != nil {
		return nil, err
	}

	var picked []string
	seen := make(map[string]bool)
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		match := ""
		for _, o := range options {
			if strings.EqualFold(o, item) {
				match = o
				break
			}
		}
		if match == "" {
			fmt.Fprintf(out, "  skipping unknown option %q\n", item)
			continue
		}
		if !seen[match] {
			seen[match] = true
			picked = append(picked, match)
		}
	}
	return picked, nil
}

func yes(s string) bool {
	s = strings.ToLower(s)
	return s == "y" || s == "yes"
}
