// internal/domain/wellness_plan.go
package domain

import (
	"errors"
	"fmt"
	"strings"

	"alcyxob/vitality-planner/internal/jsonx"
)

// ErrMalformedPlan is returned by ParseWellnessPlan when the payload is not a
// structurally valid plan.
var ErrMalformedPlan = errors.New("malformed wellness plan")

// Intensity of an exercise session.
type Intensity string

const (
	IntensityLow    Intensity = "Low"
	IntensityMedium Intensity = "Medium"
	IntensityHigh   Intensity = "High"
)

var Intensities = []Intensity{IntensityLow, IntensityMedium, IntensityHigh}

// MacroTargets holds the macro split in percent plus the daily calorie target.
// The percentages are service output and are not required to sum to 100.
type MacroTargets struct {
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	Calories float64 `json:"calories"` // daily target
}

type Meal struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Calories    float64  `json:"calories"`
	Tags        []string `json:"tags"`
}

// DailyDiet is a fixed-shape day: one meal per slot.
type DailyDiet struct {
	Day       string `json:"day"` // e.g. "Day 1"
	Breakfast Meal   `json:"breakfast"`
	Lunch     Meal   `json:"lunch"`
	Dinner    Meal   `json:"dinner"`
	Snack     Meal   `json:"snack"`
}

// Meals returns the four meals in serving order.
func (d DailyDiet) Meals() [4]Meal {
	return [4]Meal{d.Breakfast, d.Lunch, d.Dinner, d.Snack}
}

// TotalCalories sums the four meals.
func (d DailyDiet) TotalCalories() float64 {
	total := 0.0
	for _, m := range d.Meals() {
		total += m.Calories
	}
	return total
}

// ExerciseItem is one slot of the weekly roadmap. Day is also the key the
// adherence ledger uses for this exercise.
type ExerciseItem struct {
	Day       string    `json:"day"` // e.g. "Monday" or "Workout A"
	Activity  string    `json:"activity"`
	Duration  string    `json:"duration"` // free text, e.g. "30 min"
	Intensity Intensity `json:"intensity"`
	Notes     string    `json:"notes"`
}

// Habit is identified by its Title in the adherence ledger.
type Habit struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Frequency   string `json:"frequency"`
}

// WellnessPlan is produced atomically by the generation client and is
// immutable afterwards.
type WellnessPlan struct {
	Introduction string         `json:"introduction"`
	Macros       MacroTargets   `json:"macros"`
	DietPlan     []DailyDiet    `json:"dietPlan"`
	ExercisePlan []ExerciseItem `json:"exercisePlan"`
	Habits       []Habit        `json:"habits"`
	Disclaimer   string         `json:"disclaimer"`
}

// HasHabit reports whether title names one of the plan's habits.
func (p *WellnessPlan) HasHabit(title string) bool {
	if p == nil {
		return false
	}
	for _, h := range p.Habits {
		if h.Title == title {
			return true
		}
	}
	return false
}

// HasExerciseDay reports whether day labels one of the plan's exercise slots.
func (p *WellnessPlan) HasExerciseDay(day string) bool {
	if p == nil {
		return false
	}
	for _, ex := range p.ExercisePlan {
		if ex.Day == day {
			return true
		}
	}
	return false
}

// Completion scores progress against the plan. Entries that name no habit or
// exercise day of the plan are ignored, so the result never exceeds 100. A
// nil plan scores 0.
func (p *WellnessPlan) Completion(progress DailyProgress) int {
	if p == nil {
		return 0
	}
	scored := newDailyProgress()
	for _, title := range progress.Habits {
		if p.HasHabit(title) {
			scored.Habits = append(scored.Habits, title)
		}
	}
	for _, day := range progress.Exercises {
		if p.HasExerciseDay(day) {
			scored.Exercises = append(scored.Exercises, day)
		}
	}
	return CompletionPercentage(len(p.Habits), scored)
}

// wirePlan mirrors WellnessPlan with pointers on required members so absence
// can be told apart from zero values.
type wirePlan struct {
	Introduction *string        `json:"introduction"`
	Macros       *wireMacros    `json:"macros"`
	DietPlan     []wireDiet     `json:"dietPlan"`
	ExercisePlan []wireExercise `json:"exercisePlan"`
	Habits       []wireHabit    `json:"habits"`
	Disclaimer   *string        `json:"disclaimer"`
}

type wireMacros struct {
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fats     *float64 `json:"fats"`
	Calories *float64 `json:"calories"`
}

type wireDiet struct {
	Day       string    `json:"day"`
	Breakfast *wireMeal `json:"breakfast"`
	Lunch     *wireMeal `json:"lunch"`
	Dinner    *wireMeal `json:"dinner"`
	Snack     *wireMeal `json:"snack"`
}

type wireMeal struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Calories    *float64 `json:"calories"`
	Tags        []string `json:"tags"`
}

type wireExercise struct {
	Day       *string `json:"day"`
	Activity  *string `json:"activity"`
	Duration  *string `json:"duration"`
	Intensity *string `json:"intensity"`
	Notes     *string `json:"notes"`
}

type wireHabit struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Frequency   *string `json:"frequency"`
}

// ParseWellnessPlan converts a raw service payload into a plan. It checks the
// required members the output schema declares; it does not judge the content.
func ParseWellnessPlan(raw []byte) (*WellnessPlan, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrMalformedPlan)
	}

	var wire wirePlan
	if err := jsonx.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPlan, err)
	}

	switch {
	case wire.Introduction == nil:
		return nil, missing("introduction")
	case wire.Macros == nil:
		return nil, missing("macros")
	case wire.DietPlan == nil:
		return nil, missing("dietPlan")
	case wire.ExercisePlan == nil:
		return nil, missing("exercisePlan")
	case wire.Habits == nil:
		return nil, missing("habits")
	case wire.Disclaimer == nil:
		return nil, missing("disclaimer")
	}

	macros, err := wire.Macros.toDomain()
	if err != nil {
		return nil, err
	}

	plan := &WellnessPlan{
		Introduction: *wire.Introduction,
		Macros:       macros,
		DietPlan:     make([]DailyDiet, 0, len(wire.DietPlan)),
		ExercisePlan: make([]ExerciseItem, 0, len(wire.ExercisePlan)),
		Habits:       make([]Habit, 0, len(wire.Habits)),
		Disclaimer:   *wire.Disclaimer,
	}

	for i, d := range wire.DietPlan {
		day := DailyDiet{Day: d.Day}
		slots := []struct {
			name string
			wire *wireMeal
			into *Meal
		}{
			{"breakfast", d.Breakfast, &day.Breakfast},
			{"lunch", d.Lunch, &day.Lunch},
			{"dinner", d.Dinner, &day.Dinner},
			{"snack", d.Snack, &day.Snack},
		}
		for _, slot := range slots {
			meal, err := slot.wire.toDomain(fmt.Sprintf("dietPlan[%d].%s", i, slot.name))
			if err != nil {
				return nil, err
			}
			*slot.into = meal
		}
		plan.DietPlan = append(plan.DietPlan, day)
	}

	for i, ex := range wire.ExercisePlan {
		item, err := ex.toDomain(fmt.Sprintf("exercisePlan[%d]", i))
		if err != nil {
			return nil, err
		}
		plan.ExercisePlan = append(plan.ExercisePlan, item)
	}

	for i, h := range wire.Habits {
		habit, err := h.toDomain(fmt.Sprintf("habits[%d]", i))
		if err != nil {
			return nil, err
		}
		plan.Habits = append(plan.Habits, habit)
	}

	return plan, nil
}

func (m *wireMeal) toDomain(path string) (Meal, error) {
	switch {
	case m == nil:
		return Meal{}, missing(path)
	case m.Name == nil:
		return Meal{}, missing(path + ".name")
	case m.Description == nil:
		return Meal{}, missing(path + ".description")
	case m.Calories == nil:
		return Meal{}, missing(path + ".calories")
	case *m.Calories < 0:
		return Meal{}, fmt.Errorf("%w: %s has negative calories", ErrMalformedPlan, path)
	}
	return Meal{Name: *m.Name, Description: *m.Description, Calories: *m.Calories, Tags: m.Tags}, nil
}

// toDomain also rejects an empty day, which is the item's ledger key.
func (e wireExercise) toDomain(path string) (ExerciseItem, error) {
	switch {
	case e.Day == nil:
		return ExerciseItem{}, missing(path + ".day")
	case e.Activity == nil:
		return ExerciseItem{}, missing(path + ".activity")
	case e.Duration == nil:
		return ExerciseItem{}, missing(path + ".duration")
	case e.Intensity == nil:
		return ExerciseItem{}, missing(path + ".intensity")
	case e.Notes == nil:
		return ExerciseItem{}, missing(path + ".notes")
	case strings.TrimSpace(*e.Day) == "":
		return ExerciseItem{}, fmt.Errorf("%w: %s has an empty day", ErrMalformedPlan, path)
	}
	intensity := Intensity(*e.Intensity)
	if !contains(Intensities, intensity) {
		return ExerciseItem{}, fmt.Errorf("%w: %s has intensity %q", ErrMalformedPlan, path, intensity)
	}
	return ExerciseItem{
		Day:       *e.Day,
		Activity:  *e.Activity,
		Duration:  *e.Duration,
		Intensity: intensity,
		Notes:     *e.Notes,
	}, nil
}

func (h wireHabit) toDomain(path string) (Habit, error) {
	switch {
	case h.Title == nil:
		return Habit{}, missing(path + ".title")
	case h.Description == nil:
		return Habit{}, missing(path + ".description")
	case h.Frequency == nil:
		return Habit{}, missing(path + ".frequency")
	case strings.TrimSpace(*h.Title) == "":
		return Habit{}, fmt.Errorf("%w: %s has an empty title", ErrMalformedPlan, path)
	}
	return Habit{Title: *h.Title, Description: *h.Description, Frequency: *h.Frequency}, nil
}

func (m *wireMacros) toDomain() (MacroTargets, error) {
	if m.Protein == nil || m.Carbs == nil || m.Fats == nil || m.Calories == nil {
		return MacroTargets{}, missing("macros field")
	}
	if *m.Protein < 0 || *m.Carbs < 0 || *m.Fats < 0 {
		return MacroTargets{}, fmt.Errorf("%w: negative macro percentage", ErrMalformedPlan)
	}
	if *m.Calories <= 0 {
		return MacroTargets{}, fmt.Errorf("%w: calorie target must be positive", ErrMalformedPlan)
	}
	return MacroTargets{Protein: *m.Protein, Carbs: *m.Carbs, Fats: *m.Fats, Calories: *m.Calories}, nil
}

func missing(field string) error {
	return fmt.Errorf("%w: missing %s", ErrMalformedPlan, field)
}
