// internal/domain/adherence.go
package domain

import (
	"fmt"
	"sort"
	"time"
)

// DateLayout is the ISO calendar date format used as ledger key.
const DateLayout = "2006-01-02"

// Date is a calendar day in DateLayout form. Build one with ParseDate or DateOf.
type Date string

// ParseDate validates an ISO "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date(t.Format(DateLayout)), nil
}

// DateOf returns the calendar day of t in loc (UTC when loc is nil).
func DateOf(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	return Date(t.In(loc).Format(DateLayout))
}

// AddDays moves the date by n whole days. Month and year boundaries roll over
// with calendar arithmetic; n may be negative.
func (d Date) AddDays(n int) Date {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return d
	}
	return Date(t.AddDate(0, 0, n).Format(DateLayout))
}

func (d Date) String() string { return string(d) }

// DailyProgress records what was completed on one day. Each list is a set:
// an entry appears at most once, in the order it was first marked.
type DailyProgress struct {
	Habits    []string `json:"habits"`
	Exercises []string `json:"exercises"`
}

func newDailyProgress() DailyProgress {
	return DailyProgress{Habits: []string{}, Exercises: []string{}}
}

func (p DailyProgress) HasHabit(title string) bool { return contains(p.Habits, title) }

func (p DailyProgress) HasExercise(day string) bool { return contains(p.Exercises, day) }

func (p DailyProgress) clone() DailyProgress {
	return DailyProgress{
		Habits:    append([]string{}, p.Habits...),
		Exercises: append([]string{}, p.Exercises...),
	}
}

// AdherenceLedger maps a day to its progress. Days are created lazily on the
// first toggle and never pre-populated.
type AdherenceLedger map[Date]DailyProgress

// Progress returns a copy of the day's record, empty when the day is absent.
func (l AdherenceLedger) Progress(date Date) DailyProgress {
	p, ok := l[date]
	if !ok {
		return newDailyProgress()
	}
	return p.clone()
}

// ToggleHabit adds title to the day's habits or removes it if present.
// Toggling twice with the same arguments restores the day's record.
func (l AdherenceLedger) ToggleHabit(date Date, title string) DailyProgress {
	p := l.entry(date)
	p.Habits = toggle(p.Habits, title)
	l[date] = p
	return p.clone()
}

// ToggleExercise is ToggleHabit for the exercise-day labels.
func (l AdherenceLedger) ToggleExercise(date Date, day string) DailyProgress {
	p := l.entry(date)
	p.Exercises = toggle(p.Exercises, day)
	l[date] = p
	return p.clone()
}

// Dates lists the recorded days in ascending order.
func (l AdherenceLedger) Dates() []Date {
	dates := make([]Date, 0, len(l))
	for d := range l {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })
	return dates
}

// Clone returns a deep copy.
func (l AdherenceLedger) Clone() AdherenceLedger {
	out := make(AdherenceLedger, len(l))
	for d, p := range l {
		out[d] = p.clone()
	}
	return out
}

// Normalize replaces nil lists with empty ones and drops duplicate entries,
// restoring the set invariant on data read back from storage.
func (l AdherenceLedger) Normalize() {
	for d, p := range l {
		l[d] = DailyProgress{Habits: dedupe(p.Habits), Exercises: dedupe(p.Exercises)}
	}
}

func (l AdherenceLedger) entry(date Date) DailyProgress {
	if p, ok := l[date]; ok {
		return p
	}
	return newDailyProgress()
}

// CompletionPercentage scores a day against the plan's habit list:
// round((habitsDone + (anyExerciseDone ? 1 : 0)) / (totalHabits + 1) * 100).
// Exercise adherence counts as one binary slot with the weight of a habit.
// A plan without habits always scores 0.
func CompletionPercentage(totalHabits int, progress DailyProgress) int {
	if totalHabits <= 0 {
		return 0
	}
	done := len(progress.Habits)
	if len(progress.Exercises) > 0 {
		done++
	}
	ratio := float64(done) / float64(totalHabits+1) * 100
	return int(ratio + 0.5)
}

func toggle(set []string, item string) []string {
	out := make([]string, 0, len(set)+1)
	found := false
	for _, v := range set {
		if v == item {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, item)
	}
	return out
}

func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
