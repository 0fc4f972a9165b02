package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/vitality-planner/internal/domain"
	"alcyxob/vitality-planner/internal/repository"
	"alcyxob/vitality-planner/internal/repository/memory"
)

func fixedClock(value string) func() time.Time {
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return ts }
}

func TestTrackerStartsOnTodayInLocation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	tracker := NewTracker(context.Background(), memory.NewStore(), tokyo, fixedClock("2024-03-10T20:00:00Z"))
	assert.Equal(t, domain.Date("2024-03-11"), tracker.SelectedDate())
}

func TestTrackerSelectedDateFollowsClock(t *testing.T) {
	c := &clock{now: time.Date(2024, 5, 1, 23, 30, 0, 0, time.UTC)}
	tracker := NewTracker(context.Background(), memory.NewStore(), time.UTC, c.Now)
	assert.Equal(t, domain.Date("2024-05-01"), tracker.SelectedDate())

	c.Advance(time.Hour)
	assert.Equal(t, domain.Date("2024-05-02"), tracker.SelectedDate())

	assert.Equal(t, domain.Date("2024-05-01"), tracker.SelectDate(-1))
	c.Advance(24 * time.Hour)
	assert.Equal(t, domain.Date("2024-05-01"), tracker.SelectedDate(), "an explicit selection stays put")

	assert.Equal(t, domain.Date("2024-05-03"), tracker.SelectDate(2))
	c.Advance(24 * time.Hour)
	assert.Equal(t, domain.Date("2024-05-04"), tracker.SelectedDate(), "returning to today follows the clock again")
}

func TestTrackerSelectDate(t *testing.T) {
	tests := []struct {
		now   string
		delta int
		want  domain.Date
	}{
		{"2024-02-28T12:00:00Z", 1, "2024-02-29"},
		{"2024-12-31T12:00:00Z", 1, "2025-01-01"},
		{"2024-03-01T12:00:00Z", -1, "2024-02-29"},
		{"2023-03-01T12:00:00Z", -1, "2023-02-28"},
		{"2024-01-01T12:00:00Z", -1, "2023-12-31"},
		{"2024-05-15T12:00:00Z", 0, "2024-05-15"},
	}
	for _, tt := range tests {
		store := memory.NewStore()
		tracker := NewTracker(context.Background(), store, time.UTC, fixedClock(tt.now))

		assert.Equal(t, tt.want, tracker.SelectDate(tt.delta), tt.now)
		assert.Empty(t, tracker.Ledger())
		assert.False(t, store.Has(repository.SlotTracker))
	}
}

func TestTrackerToggleIsInvolution(t *testing.T) {
	ctx := context.Background()
	tracker := NewTracker(ctx, memory.NewStore(), time.UTC, fixedClock("2024-05-01T08:00:00Z"))
	date := tracker.SelectedDate()

	before := tracker.Progress(date)
	tracker.ToggleHabit(ctx, date, "Drink water")
	assert.True(t, tracker.IsHabitDone(date, "Drink water"))
	tracker.ToggleHabit(ctx, date, "Drink water")
	assert.Equal(t, before, tracker.Progress(date))

	tracker.ToggleExercise(ctx, date, "Monday")
	assert.True(t, tracker.IsExerciseDone(date, "Monday"))
	tracker.ToggleExercise(ctx, date, "Monday")
	assert.False(t, tracker.IsExerciseDone(date, "Monday"))
}

func TestTrackerPersistsOnlyNonEmptyLedger(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	tracker := NewTracker(ctx, store, time.UTC, fixedClock("2024-05-01T08:00:00Z"))

	_ = tracker.Progress("2024-05-01")
	tracker.SelectDate(3)
	assert.False(t, store.Has(repository.SlotTracker))
	assert.Zero(t, store.Writes())

	tracker.ToggleHabit(ctx, "2024-05-01", "Stretch")
	assert.True(t, store.Has(repository.SlotTracker))
}

func TestTrackerRestoresLedger(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	clock := fixedClock("2024-05-01T08:00:00Z")

	first := NewTracker(ctx, store, time.UTC, clock)
	first.ToggleHabit(ctx, "2024-05-01", "Drink water")
	first.ToggleHabit(ctx, "2024-05-01", "Stretch")
	first.ToggleExercise(ctx, "2024-05-02", "Wednesday")

	second := NewTracker(ctx, store, time.UTC, clock)
	assert.Equal(t, first.Ledger(), second.Ledger())
	assert.Equal(t, []domain.Date{"2024-05-01", "2024-05-02"}, second.Ledger().Dates())
}

func TestTrackerIgnoresUnreadableData(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Set(ctx, repository.SlotTracker, []byte(`not json`)))

	tracker := NewTracker(ctx, store, time.UTC, fixedClock("2024-05-01T08:00:00Z"))
	assert.Empty(t, tracker.Ledger())

	require.NoError(t, store.Set(ctx, repository.SlotTracker, []byte(`{"yesterday":{"habits":["x"]},"2024-04-30":{"habits":["a","a"]}}`)))
	tracker = NewTracker(ctx, store, time.UTC, fixedClock("2024-05-01T08:00:00Z"))
	ledger := tracker.Ledger()
	assert.Len(t, ledger, 1)
	assert.Equal(t, []string{"a"}, ledger["2024-04-30"].Habits)
	assert.Equal(t, []string{}, ledger["2024-04-30"].Exercises)
}

func TestTrackerCompletionPercentage(t *testing.T) {
	ctx := context.Background()
	plan := mustPlan()
	require.Len(t, plan.Habits, 4)
	tracker := NewTracker(ctx, memory.NewStore(), time.UTC, fixedClock("2024-05-01T08:00:00Z"))
	date := tracker.SelectedDate()

	tracker.ToggleHabit(ctx, date, "Drink water")
	tracker.ToggleHabit(ctx, date, "Stretch")
	assert.Equal(t, 40, tracker.CompletionPercentage(plan, date))

	tracker.ToggleExercise(ctx, date, "Monday")
	tracker.ToggleExercise(ctx, date, "Wednesday")
	assert.Equal(t, 60, tracker.CompletionPercentage(plan, date))

	assert.Zero(t, tracker.CompletionPercentage(nil, date))
	assert.Zero(t, tracker.CompletionPercentage(&domain.WellnessPlan{}, date))

	day := tracker.Day(plan, date)
	assert.Equal(t, date, day.Date)
	assert.Equal(t, 60, day.Completion)
	assert.Len(t, day.Progress.Exercises, 2)
}

func TestTrackerCompletionIgnoresItemsOutsidePlan(t *testing.T) {
	ctx := context.Background()
	plan := mustPlan()
	plan.Habits = plan.Habits[:1]
	tracker := NewTracker(ctx, memory.NewStore(), time.UTC, fixedClock("2024-05-01T08:00:00Z"))
	date := tracker.SelectedDate()

	for _, title := range []string{"not-a-habit", "also-not", "nope"} {
		tracker.ToggleHabit(ctx, date, title)
	}
	tracker.ToggleExercise(ctx, date, "Sunday")
	assert.Zero(t, tracker.CompletionPercentage(plan, date))

	tracker.ToggleHabit(ctx, date, "Drink water")
	tracker.ToggleExercise(ctx, date, "Monday")
	assert.Equal(t, 100, tracker.CompletionPercentage(plan, date))
}

func TestTrackerClearLedgerKeepsSelection(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	tracker := NewTracker(ctx, store, time.UTC, fixedClock("2024-05-01T08:00:00Z"))
	tracker.SelectDate(-2)
	tracker.ToggleHabit(ctx, "2024-04-29", "Stretch")
	require.True(t, store.Has(repository.SlotTracker))

	tracker.ClearLedger(ctx)

	assert.Empty(t, tracker.Ledger())
	assert.False(t, store.Has(repository.SlotTracker))
	assert.Equal(t, domain.Date("2024-04-29"), tracker.SelectedDate())
}

func TestTrackerReset(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	tracker := NewTracker(ctx, store, time.UTC, fixedClock("2024-05-01T08:00:00Z"))
	tracker.SelectDate(-4)
	tracker.ToggleHabit(ctx, "2024-05-01", "Stretch")

	tracker.Reset(ctx)

	assert.Empty(t, tracker.Ledger())
	assert.Equal(t, domain.Date("2024-05-01"), tracker.SelectedDate())
	assert.False(t, store.Has(repository.SlotTracker))
}
