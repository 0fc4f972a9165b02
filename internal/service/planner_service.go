package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"alcyxob/vitality-planner/internal/domain"
	"alcyxob/vitality-planner/internal/jsonx"
	"alcyxob/vitality-planner/internal/repository"
)

// State is what the presentation layer polls while rendering.
type State struct {
	Loading       bool   `json:"loading"`
	StatusMessage string `json:"statusMessage"`
	StatusStep    int    `json:"statusStep"`
	Error         string `json:"error"`
	HasProfile    bool   `json:"hasProfile"`
	HasPlan       bool   `json:"hasPlan"`
}

// Planner is one user session: the submitted profile, the generated plan,
// the tracker, and the loading/error state around generation.
type Planner struct {
	mu             sync.RWMutex
	store          repository.SessionStore
	generator      PlanGenerator
	tracker        *Tracker
	inFlight       *semaphore.Weighted
	now            func() time.Time
	statusInterval time.Duration

	profile      *domain.Profile
	plan         *domain.WellnessPlan
	loading      bool
	loadingSince time.Time
	lastErr      error
	// epoch changes on every Reset so a generation that finishes after a
	// reset does not resurrect the session.
	epoch uint64
}

// PlannerOption customises a Planner.
type PlannerOption func(*Planner)

// WithClock replaces time.Now for loading status calculations.
func WithClock(now func() time.Time) PlannerOption {
	return func(p *Planner) { p.now = now }
}

// WithStatusInterval sets how long each loading message is shown.
func WithStatusInterval(interval time.Duration) PlannerOption {
	return func(p *Planner) {
		if interval > 0 {
			p.statusInterval = interval
		}
	}
}

// NewPlanner restores the profile and plan slots from store. Slots that are
// missing or unreadable start empty.
func NewPlanner(ctx context.Context, store repository.SessionStore, generator PlanGenerator, tracker *Tracker, opts ...PlannerOption) *Planner {
	p := &Planner{
		store:          store,
		generator:      generator,
		tracker:        tracker,
		inFlight:       semaphore.NewWeighted(1),
		now:            time.Now,
		statusInterval: DefaultStatusInterval,
	}
	for _, opt := range opts {
		opt(p)
	}

	var profile domain.Profile
	if p.restore(ctx, repository.SlotProfile, &profile) {
		p.profile = &profile
	}
	var plan domain.WellnessPlan
	if p.restore(ctx, repository.SlotPlan, &plan) {
		p.plan = &plan
	}
	return p
}

func (p *Planner) restore(ctx context.Context, slot repository.Slot, into any) bool {
	raw, err := p.store.Get(ctx, slot)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("WARN: Could not read %s: %v", slot, err)
		}
		return false
	}
	if err := jsonx.Unmarshal(raw, into); err != nil {
		log.Printf("WARN: Ignoring unreadable %s: %v", slot, err)
		return false
	}
	return true
}

func (p *Planner) save(ctx context.Context, slot repository.Slot, value any) {
	raw, err := jsonx.Marshal(value)
	if err != nil {
		log.Printf("ERROR: Failed to encode %s: %v", slot, err)
		return
	}
	if err := p.store.Set(ctx, slot, raw); err != nil {
		log.Printf("WARN: Failed to save %s: %v", slot, err)
	}
}

// Submit validates profile, persists it, and generates a plan. Only one
// submission runs at a time; a concurrent call fails with
// ErrGenerationInProgress without waiting. On failure no plan is produced or
// persisted and the error is kept for State until DismissError or the next
// submission. A successful plan starts with an empty ledger; progress recorded
// against a replaced plan is erased.
func (p *Planner) Submit(ctx context.Context, profile domain.Profile) (*domain.WellnessPlan, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if !p.inFlight.TryAcquire(1) {
		return nil, ErrGenerationInProgress
	}
	defer p.inFlight.Release(1)

	p.mu.Lock()
	submitted := profile
	p.profile = &submitted
	p.loading = true
	p.loadingSince = p.now()
	p.lastErr = nil
	epoch := p.epoch
	p.mu.Unlock()

	p.save(ctx, repository.SlotProfile, profile)

	plan, err := p.generator.Generate(ctx, profile)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if p.epoch != epoch {
		log.Printf("INFO: Discarding plan generation result after session reset")
		if err != nil {
			return nil, err
		}
		return plan, nil
	}
	if err != nil {
		p.lastErr = err
		return nil, err
	}
	if p.plan != nil {
		log.Println("INFO: Replacing wellness plan; clearing tracker data")
	}
	p.plan = plan
	p.save(ctx, repository.SlotPlan, plan)
	p.tracker.ClearLedger(ctx)
	return plan, nil
}

// Reset discards the profile, the plan, the ledger and any error, and clears
// all three persisted slots.
func (p *Planner) Reset(ctx context.Context) {
	p.mu.Lock()
	p.profile = nil
	p.plan = nil
	p.lastErr = nil
	p.epoch++
	p.mu.Unlock()

	for _, slot := range []repository.Slot{repository.SlotProfile, repository.SlotPlan} {
		if err := p.store.Clear(ctx, slot); err != nil {
			log.Printf("WARN: Failed to clear %s: %v", slot, err)
		}
	}
	p.tracker.Reset(ctx)
	log.Println("INFO: Session reset")
}

// DismissError clears a generation failure. The submitted profile is kept so
// the user can retry without re-entering it.
func (p *Planner) DismissError() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastErr = nil
}

// State reports loading, status and error information.
func (p *Planner) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()

	state := State{
		Loading:    p.loading,
		Error:      UserMessage(p.lastErr),
		HasProfile: p.profile != nil,
		HasPlan:    p.plan != nil,
	}
	if p.loading {
		elapsed := p.now().Sub(p.loadingSince)
		state.StatusStep = StatusStep(elapsed, p.statusInterval)
		state.StatusMessage = StatusMessages[state.StatusStep]
	}
	return state
}

// Err returns the last generation failure, nil when there is none.
func (p *Planner) Err() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastErr
}

// Plan returns the current plan. The plan must be treated as read-only.
func (p *Planner) Plan() (*domain.WellnessPlan, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.plan, p.plan != nil
}

// Profile returns a copy of the last submitted profile.
func (p *Planner) Profile() (domain.Profile, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.profile == nil {
		return domain.Profile{}, false
	}
	return *p.profile, true
}

func (p *Planner) Tracker() *Tracker { return p.tracker }

// ToggleHabit flips title on date. The title must name a habit of the current
// plan.
func (p *Planner) ToggleHabit(ctx context.Context, date domain.Date, title string) (DayProgress, error) {
	plan, ok := p.Plan()
	switch {
	case !ok:
		return DayProgress{}, ErrNoPlan
	case !plan.HasHabit(title):
		return DayProgress{}, fmt.Errorf("%w: %q", ErrUnknownHabit, title)
	}
	p.tracker.ToggleHabit(ctx, date, title)
	return p.tracker.Day(plan, date), nil
}

// ToggleExercise flips the exercise-day label on date. The label must name an
// exercise slot of the current plan.
func (p *Planner) ToggleExercise(ctx context.Context, date domain.Date, day string) (DayProgress, error) {
	plan, ok := p.Plan()
	switch {
	case !ok:
		return DayProgress{}, ErrNoPlan
	case !plan.HasExerciseDay(day):
		return DayProgress{}, fmt.Errorf("%w: %q", ErrUnknownExercise, day)
	}
	p.tracker.ToggleExercise(ctx, date, day)
	return p.tracker.Day(plan, date), nil
}

// Day is Tracker.Day against the current plan.
func (p *Planner) Day(date domain.Date) DayProgress {
	plan, _ := p.Plan()
	return p.tracker.Day(plan, date)
}
