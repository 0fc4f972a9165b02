package service

import (
	"context"
	"sync"

	"alcyxob/vitality-planner/internal/domain"
	"alcyxob/vitality-planner/internal/genai"
)

const planJSON = `{
  "introduction": "Welcome to your plan.",
  "macros": {"protein": 30, "carbs": 40, "fats": 30, "calories": 2100},
  "dietPlan": [
    {
      "day": "Day 1",
      "breakfast": {"name": "Oats", "description": "Rolled oats with berries", "calories": 420, "tags": ["fiber"]},
      "lunch": {"name": "Salad", "description": "Chickpea salad", "calories": 550, "tags": []},
      "dinner": {"name": "Tofu bowl", "description": "Tofu, rice, greens", "calories": 700},
      "snack": {"name": "Apple", "description": "With almond butter", "calories": 200, "tags": ["quick"]}
    }
  ],
  "exercisePlan": [
    {"day": "Monday", "activity": "Brisk walk", "duration": "30 min", "intensity": "Low", "notes": "Keep it easy"},
    {"day": "Wednesday", "activity": "Strength circuit", "duration": "40 min", "intensity": "High", "notes": "Rest between sets"}
  ],
  "habits": [
    {"title": "Drink water", "description": "2 litres a day", "frequency": "Daily"},
    {"title": "Sleep 8h", "description": "Consistent bedtime", "frequency": "Daily"},
    {"title": "Stretch", "description": "10 minutes", "frequency": "Daily"},
    {"title": "Walk after meals", "description": "5 minutes", "frequency": "Daily"}
  ],
  "disclaimer": "This is not medical advice."
}`

func testProfile() domain.Profile {
	return domain.Profile{
		Age:               34,
		Gender:            domain.GenderFemale,
		Weight:            68.5,
		Height:            170,
		ActivityLevel:     domain.ActivityModeratelyActive,
		Goal:              domain.GoalImproveStamina,
		DietaryPreference: domain.DietVegetarian,
		Restrictions:      "",
	}
}

// fakeTransport answers every call with text/err and records requests.
type fakeTransport struct {
	mu       sync.Mutex
	text     string
	err      error
	calls    int
	lastKey  string
	requests []genai.Request
}

func (f *fakeTransport) GenerateContent(_ context.Context, apiKey string, req genai.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastKey = apiKey
	f.requests = append(f.requests, req)
	return f.text, f.err
}

func (f *fakeTransport) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// blockingGenerator holds Generate until release is closed.
type blockingGenerator struct {
	started chan struct{}
	release chan struct{}
	plan    *domain.WellnessPlan
	err     error
}

func newBlockingGenerator(plan *domain.WellnessPlan, err error) *blockingGenerator {
	return &blockingGenerator{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
		plan:    plan,
		err:     err,
	}
}

func (g *blockingGenerator) Generate(ctx context.Context, _ domain.Profile) (*domain.WellnessPlan, error) {
	g.started <- struct{}{}
	select {
	case <-g.release:
		return g.plan, g.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func mustPlan() *domain.WellnessPlan {
	plan, err := domain.ParseWellnessPlan([]byte(planJSON))
	if err != nil {
		panic(err)
	}
	return plan
}

// sequenceGenerator returns plans in order, one per Generate call.
type sequenceGenerator struct {
	mu    sync.Mutex
	plans []*domain.WellnessPlan
}

func (g *sequenceGenerator) Generate(context.Context, domain.Profile) (*domain.WellnessPlan, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	plan := g.plans[0]
	g.plans = g.plans[1:]
	return plan, nil
}

// singleHabitPlan is the fixture plan cut down to its first habit.
func singleHabitPlan() *domain.WellnessPlan {
	plan := mustPlan()
	plan.Habits = plan.Habits[:1]
	return plan
}
