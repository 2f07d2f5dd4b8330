// Package tracker owns the user's profile, goals, today's log and custom
// foods. State is loaded from a store at startup and rewritten after every
// mutation.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"lg/plannit-go-api/internal/catalog"
	"lg/plannit-go-api/internal/foodlog"
	"lg/plannit-go-api/internal/nutrition"
	"lg/plannit-go-api/internal/store"
)

// Store slots.
const (
	KeyProfile     = "userProfile"
	KeyGoals       = "macroGoals"
	KeyDailyLog    = "dailyLog"
	KeyCustomFoods = "customFoods"
)

var (
	ErrNotOnboarded    = errors.New("no macro goals yet; complete the profile or choose defaults")
	ErrEntryNotFound   = errors.New("entry not found")
	ErrFoodNotFound    = errors.New("food not found")
	ErrInvalidServings = errors.New("servings must be positive")
	ErrInvalidMealType = errors.New("meal_type must be one of: breakfast, lunch, dinner, snack")
)

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides time.Now. The calendar date of the returned time decides
// which day's log is current.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(t *Tracker) { t.log = l }
}

// Tracker is safe for concurrent use.
type Tracker struct {
	mu    sync.Mutex
	store store.Store
	log   *zap.Logger
	now   func() time.Time

	profile *nutrition.UserProfile
	goals   *nutrition.MacroGoals
	daily   foodlog.DailyLog
	foods   *catalog.Catalog
}

// New loads the four slots from s. Missing or undecodable slots start empty;
// a stored log for another date is discarded. Store I/O failures are returned.
func New(ctx context.Context, s store.Store, opts ...Option) (*Tracker, error) {
	t := &Tracker{
		store: s,
		log:   zap.NewNop(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	if err := t.load(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tracker) today() foodlog.DateOnly { return foodlog.Day(t.now()) }

/* ─── Loading ────────────────────────────────────────────────────────── */

// loadSlot reads key into T. ok is false when the slot is missing or corrupt.
func loadSlot[T any](ctx context.Context, t *Tracker, key string) (v T, ok bool, err error) {
	v, err = store.GetJSON[T](ctx, t.store, key)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return v, false, nil
	case errors.Is(err, store.ErrDecode):
		t.log.Warn("ignoring unreadable slot", zap.String("key", key), zap.Error(err))
		return v, false, nil
	case err != nil:
		return v, false, fmt.Errorf("load %s: %w", key, err)
	}
	return v, true, nil
}

func (t *Tracker) load(ctx context.Context) error {
	profile, ok, err := loadSlot[*nutrition.UserProfile](ctx, t, KeyProfile)
	if err != nil {
		return err
	}
	if ok && profile != nil {
		t.profile = profile
	}

	goals, ok, err := loadSlot[*nutrition.MacroGoals](ctx, t, KeyGoals)
	if err != nil {
		return err
	}
	if ok && goals != nil {
		t.goals = goals
	}
	// Goals always derive from a stored profile.
	if t.profile != nil {
		derived := nutrition.CalculateUserMacros(*t.profile)
		if t.goals == nil || *t.goals != derived {
			t.goals = &derived
			if err := store.SetJSON(ctx, t.store, KeyGoals, derived); err != nil {
				return fmt.Errorf("persist %s: %w", KeyGoals, err)
			}
		}
	}

	custom, _, err := loadSlot[[]foodlog.Food](ctx, t, KeyCustomFoods)
	if err != nil {
		return err
	}
	t.foods = catalog.New(custom)

	daily, ok, err := loadSlot[foodlog.DailyLog](ctx, t, KeyDailyLog)
	if err != nil {
		return err
	}
	today := t.today()
	switch {
	case !ok:
		t.daily = foodlog.NewDailyLog(today)
	case !daily.Date.Equal(today):
		t.log.Info("discarding stale daily log",
			zap.String("stored_date", daily.Date.String()),
			zap.String("today", today.String()),
			zap.Int("entries", len(daily.Entries)))
		t.daily = foodlog.NewDailyLog(today)
	default:
		if daily.Entries == nil {
			daily.Entries = []foodlog.FoodEntry{}
		}
		// Stored totals are not trusted.
		daily.Recompute()
		t.daily = daily
	}

	t.log.Info("tracker state loaded",
		zap.Bool("has_profile", t.profile != nil),
		zap.Bool("has_goals", t.goals != nil),
		zap.Int("custom_foods", len(custom)),
		zap.Int("entries_today", len(t.daily.Entries)))
	return nil
}

// rollover replaces the log when the calendar date has moved on. Callers hold
// t.mu.
func (t *Tracker) rollover() {
	today := t.today()
	if t.daily.Date.Equal(today) {
		return
	}
	t.log.Info("day rolled over; starting a new log",
		zap.String("previous_date", t.daily.Date.String()),
		zap.String("today", today.String()))
	t.daily = foodlog.NewDailyLog(today)
}

/* ─── Onboarding ─────────────────────────────────────────────────────── */

// CompleteProfile validates p, derives its goals and stores both.
func (t *Tracker) CompleteProfile(ctx context.Context, p nutrition.UserProfile) (nutrition.MacroGoals, error) {
	if err := p.Validate(); err != nil {
		return nutrition.MacroGoals{}, err
	}
	if p.FoodPreferences == nil {
		p.FoodPreferences = []string{}
	}
	if p.DietaryRestrictions == nil {
		p.DietaryRestrictions = []string{}
	}
	goals := nutrition.CalculateUserMacros(p)

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.saveProfile(ctx, &p, goals); err != nil {
		return nutrition.MacroGoals{}, err
	}
	return goals, nil
}

// UseDefaultGoals skips the questionnaire. Any stored profile is dropped so
// the defaults are not re-derived away on the next load.
func (t *Tracker) UseDefaultGoals(ctx context.Context) (nutrition.MacroGoals, error) {
	goals := nutrition.DefaultGoals()

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.saveProfile(ctx, nil, goals); err != nil {
		return nutrition.MacroGoals{}, err
	}
	return goals, nil
}

// saveProfile writes p (nil for none) and goals, then makes them current. If
// the goals write fails the profile slot is put back, since a stored profile
// alone would re-derive its goals on the next load. Callers hold t.mu.
func (t *Tracker) saveProfile(ctx context.Context, p *nutrition.UserProfile, goals nutrition.MacroGoals) error {
	if err := store.SetJSON(ctx, t.store, KeyProfile, p); err != nil {
		return fmt.Errorf("persist %s: %w", KeyProfile, err)
	}
	if err := store.SetJSON(ctx, t.store, KeyGoals, goals); err != nil {
		if rerr := store.SetJSON(ctx, t.store, KeyProfile, t.profile); rerr != nil {
			t.log.Error("restore profile after failed goals write", zap.Error(rerr))
		}
		return fmt.Errorf("persist %s: %w", KeyGoals, err)
	}
	t.profile = p
	t.goals = &goals
	return nil
}

// Reset clears the whole store, custom foods included, and starts over with
// no profile, no goals and an empty log for today.
func (t *Tracker) Reset(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear store: %w", err)
	}
	t.profile = nil
	t.goals = nil
	t.daily = foodlog.NewDailyLog(t.today())
	t.foods = catalog.New(nil)
	t.log.Info("tracker reset")
	return nil
}

/* ─── Accessors ──────────────────────────────────────────────────────── */

// Profile returns the stored profile, if any.
func (t *Tracker) Profile() (nutrition.UserProfile, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.profile == nil {
		return nutrition.UserProfile{}, false
	}
	p := *t.profile
	p.FoodPreferences = slices.Clone(p.FoodPreferences)
	p.DietaryRestrictions = slices.Clone(p.DietaryRestrictions)
	return p, true
}

// Goals returns the current macro goals, if any.
func (t *Tracker) Goals() (nutrition.MacroGoals, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.goals == nil {
		return nutrition.MacroGoals{}, false
	}
	return *t.goals, true
}

// Ready reports whether goals exist and logging can begin.
func (t *Tracker) Ready() bool {
	_, ok := t.Goals()
	return ok
}

// Log returns a copy of today's log.
func (t *Tracker) Log() foodlog.DailyLog {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rollover()
	return t.daily.Clone()
}

// CustomFoods returns the user's foods.
func (t *Tracker) CustomFoods() []foodlog.Food {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.foods.Custom()
}

// Catalog returns a snapshot of seed plus custom foods.
func (t *Tracker) Catalog() *catalog.Catalog {
	t.mu.Lock()
	defer t.mu.Unlock()
	return catalog.New(t.foods.Custom())
}
