package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"alcyxob/vitality-planner/internal/domain"
	"alcyxob/vitality-planner/internal/service"
)

var (
	blue   = color.New(color.FgBlue).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func heading(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", bold(cyan(title)))
}

func checkbox(done bool) string {
	if done {
		return green("[x]")
	}
	return gray("[ ]")
}

func intensityLabel(i domain.Intensity) string {
	switch i {
	case domain.IntensityHigh:
		return red(string(i))
	case domain.IntensityMedium:
		return yellow(string(i))
	default:
		return green(string(i))
	}
}

func formatNumber(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.1f", v), "0"), ".")
}

// printPlan renders the whole plan.
func printPlan(w io.Writer, plan *domain.WellnessPlan) {
	fmt.Fprintln(w, plan.Introduction)

	heading(w, "Daily targets")
	m := plan.Macros
	fmt.Fprintf(w, "  Calories %s kcal  Protein %s%%  Carbs %s%%  Fats %s%%\n",
		bold(formatNumber(m.Calories)), formatNumber(m.Protein), formatNumber(m.Carbs), formatNumber(m.Fats))

	heading(w, "Diet plan")
	for _, day := range plan.DietPlan {
		fmt.Fprintf(w, "  %s %s\n", bold(day.Day), gray(fmt.Sprintf("(%s kcal)", formatNumber(day.TotalCalories()))))
		labels := [4]string{"Breakfast", "Lunch", "Dinner", "Snack"}
		for i, meal := range day.Meals() {
			tags := ""
			if len(meal.Tags) > 0 {
				tags = " " + gray("#"+strings.Join(meal.Tags, " #"))
			}
			fmt.Fprintf(w, "    %-10s %s, %s kcal%s\n", labels[i], meal.Name, formatNumber(meal.Calories), tags)
			if meal.Description != "" {
				fmt.Fprintf(w, "               %s\n", gray(meal.Description))
			}
		}
	}

	heading(w, "Exercise roadmap")
	for _, ex := range plan.ExercisePlan {
		fmt.Fprintf(w, "  %-12s %s (%s, %s)\n", ex.Day, ex.Activity, ex.Duration, intensityLabel(ex.Intensity))
		if ex.Notes != "" {
			fmt.Fprintf(w, "               %s\n", gray(ex.Notes))
		}
	}

	heading(w, "Habits")
	for _, h := range plan.Habits {
		fmt.Fprintf(w, "  %s %s\n", bold(h.Title), gray("("+h.Frequency+")"))
		fmt.Fprintf(w, "    %s\n", h.Description)
	}

	fmt.Fprintf(w, "\n%s\n", yellow(plan.Disclaimer))
}

// printDay renders one date's checklist and completion.
func printDay(w io.Writer, plan *domain.WellnessPlan, day service.DayProgress) {
	fmt.Fprintf(w, "%s  %s\n", bold(day.Date.String()), blue(fmt.Sprintf("%d%% complete", day.Completion)))

	heading(w, "Habits")
	for _, h := range plan.Habits {
		fmt.Fprintf(w, "  %s %s\n", checkbox(day.Progress.HasHabit(h.Title)), h.Title)
	}

	heading(w, "Workouts")
	for _, ex := range plan.ExercisePlan {
		fmt.Fprintf(w, "  %s %s: %s\n", checkbox(day.Progress.HasExercise(ex.Day)), ex.Day, ex.Activity)
	}
}
