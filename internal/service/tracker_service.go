package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"alcyxob/vitality-planner/internal/domain"
	"alcyxob/vitality-planner/internal/jsonx"
	"alcyxob/vitality-planner/internal/repository"
)

// DayProgress is the dashboard read model for one date.
type DayProgress struct {
	Date       domain.Date          `json:"date"`
	Progress   domain.DailyProgress `json:"progress"`
	Completion int                  `json:"completion"`
}

// Tracker owns the adherence ledger and the selected date. Mutations are
// applied in memory first; persistence is best-effort and never fails the
// operation.
type Tracker struct {
	mu     sync.Mutex
	store  repository.SessionStore
	loc    *time.Location
	now    func() time.Time
	ledger domain.AdherenceLedger
	// selected is only meaningful while pinned. An unpinned tracker shows
	// today, read from the clock on every call.
	selected domain.Date
	pinned   bool
}

// NewTracker restores the ledger from the tracker slot. A missing or
// unreadable slot starts an empty ledger. The selected date follows today in
// loc until SelectDate moves it elsewhere.
func NewTracker(ctx context.Context, store repository.SessionStore, loc *time.Location, now func() time.Time) *Tracker {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	t := &Tracker{
		store:  store,
		loc:    loc,
		now:    now,
		ledger: domain.AdherenceLedger{},
	}
	t.restore(ctx)
	return t
}

func (t *Tracker) today() domain.Date {
	return domain.DateOf(t.now(), t.loc)
}

func (t *Tracker) restore(ctx context.Context) {
	raw, err := t.store.Get(ctx, repository.SlotTracker)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("WARN: Could not read tracker data: %v", err)
		}
		return
	}
	var ledger domain.AdherenceLedger
	if err := jsonx.Unmarshal(raw, &ledger); err != nil {
		log.Printf("WARN: Ignoring unreadable tracker data: %v", err)
		return
	}
	for date := range ledger {
		if _, err := domain.ParseDate(string(date)); err != nil {
			log.Printf("WARN: Dropping tracker entry with bad date %q", date)
			delete(ledger, date)
		}
	}
	if ledger == nil {
		ledger = domain.AdherenceLedger{}
	}
	ledger.Normalize()
	t.ledger = ledger
}

// persist writes the ledger when it is non-empty. Caller holds t.mu.
func (t *Tracker) persist(ctx context.Context) {
	if len(t.ledger) == 0 {
		return
	}
	raw, err := jsonx.Marshal(t.ledger)
	if err != nil {
		log.Printf("ERROR: Failed to encode tracker data: %v", err)
		return
	}
	if err := t.store.Set(ctx, repository.SlotTracker, raw); err != nil {
		log.Printf("WARN: Failed to save tracker data: %v", err)
	}
}

// SelectedDate returns the date the dashboard is showing.
func (t *Tracker) SelectedDate() domain.Date {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selectedDate()
}

func (t *Tracker) selectedDate() domain.Date {
	if t.pinned {
		return t.selected
	}
	return t.today()
}

// SelectDate moves the selected date by delta whole days. The ledger is
// untouched. Landing on today unpins the selection so it follows the clock
// again.
func (t *Tracker) SelectDate(delta int) domain.Date {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selected = t.selectedDate().AddDays(delta)
	t.pinned = t.selected != t.today()
	return t.selected
}

// ToggleHabit flips title on date and returns the day's updated record.
func (t *Tracker) ToggleHabit(ctx context.Context, date domain.Date, title string) domain.DailyProgress {
	t.mu.Lock()
	defer t.mu.Unlock()
	progress := t.ledger.ToggleHabit(date, title)
	t.persist(ctx)
	return progress
}

// ToggleExercise flips the exercise-day label on date.
func (t *Tracker) ToggleExercise(ctx context.Context, date domain.Date, day string) domain.DailyProgress {
	t.mu.Lock()
	defer t.mu.Unlock()
	progress := t.ledger.ToggleExercise(date, day)
	t.persist(ctx)
	return progress
}

// Progress returns the day's record. Reading never creates the date.
func (t *Tracker) Progress(date domain.Date) domain.DailyProgress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ledger.Progress(date)
}

func (t *Tracker) IsHabitDone(date domain.Date, title string) bool {
	return t.Progress(date).HasHabit(title)
}

func (t *Tracker) IsExerciseDone(date domain.Date, day string) bool {
	return t.Progress(date).HasExercise(day)
}

// CompletionPercentage scores date against plan. A nil plan scores 0.
func (t *Tracker) CompletionPercentage(plan *domain.WellnessPlan, date domain.Date) int {
	return t.Day(plan, date).Completion
}

// Day bundles the record and completion percentage for date. Only entries
// naming the plan's habits and exercise days are scored.
func (t *Tracker) Day(plan *domain.WellnessPlan, date domain.Date) DayProgress {
	progress := t.Progress(date)
	return DayProgress{
		Date:       date,
		Progress:   progress,
		Completion: plan.Completion(progress),
	}
}

// Ledger returns a deep copy of the whole ledger.
func (t *Tracker) Ledger() domain.AdherenceLedger {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ledger.Clone()
}

// ClearLedger empties the ledger and erases the tracker slot. The selected
// date is kept.
func (t *Tracker) ClearLedger(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clearLedger(ctx)
}

// Reset is ClearLedger plus moving the selected date back to today.
func (t *Tracker) Reset(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clearLedger(ctx)
	t.selected = ""
	t.pinned = false
}

func (t *Tracker) clearLedger(ctx context.Context) {
	t.ledger = domain.AdherenceLedger{}
	if err := t.store.Clear(ctx, repository.SlotTracker); err != nil {
		log.Printf("WARN: Failed to clear tracker data: %v", err)
	}
}
