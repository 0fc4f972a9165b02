package genai

import (
	genaisdk "google.golang.org/genai"

	"alcyxob/vitality-planner/internal/domain"
)

type field struct {
	name   string
	schema *genaisdk.Schema
}

// object builds an OBJECT node whose property ordering follows fields.
func object(required []string, fields ...field) *genaisdk.Schema {
	s := &genaisdk.Schema{
		Type:             genaisdk.TypeObject,
		Properties:       make(map[string]*genaisdk.Schema, len(fields)),
		PropertyOrdering: make([]string, 0, len(fields)),
		Required:         required,
	}
	for _, f := range fields {
		s.Properties[f.name] = f.schema
		s.PropertyOrdering = append(s.PropertyOrdering, f.name)
	}
	return s
}

func arrayOf(items *genaisdk.Schema) *genaisdk.Schema {
	return &genaisdk.Schema{Type: genaisdk.TypeArray, Items: items}
}

func str(description string) *genaisdk.Schema {
	return &genaisdk.Schema{Type: genaisdk.TypeString, Description: description}
}

func num(description string) *genaisdk.Schema {
	return &genaisdk.Schema{Type: genaisdk.TypeNumber, Description: description}
}

func mealSchema() *genaisdk.Schema {
	return object([]string{"name", "description", "calories"},
		field{"name", str("")},
		field{"description", str("")},
		field{"calories", num("")},
		field{"tags", arrayOf(str(""))},
	)
}

// PlanSchema returns the output schema mirroring domain.WellnessPlan. A fresh
// tree is built on every call, so callers may not observe each other's edits.
func PlanSchema() *genaisdk.Schema {
	macros := object([]string{"protein", "carbs", "fats", "calories"},
		field{"protein", num("Percentage of daily calories from protein")},
		field{"carbs", num("Percentage of daily calories from carbs")},
		field{"fats", num("Percentage of daily calories from fats")},
		field{"calories", num("Total daily calorie target")},
	)

	dailyDiet := object([]string{"day", "breakfast", "lunch", "dinner", "snack"},
		field{"day", str("e.g., 'Day 1'")},
		field{"breakfast", mealSchema()},
		field{"lunch", mealSchema()},
		field{"dinner", mealSchema()},
		field{"snack", mealSchema()},
	)

	exercise := object([]string{"day", "activity", "duration", "intensity", "notes"},
		field{"day", str("e.g., 'Monday' or 'Workout A'")},
		field{"activity", str("")},
		field{"duration", str("")},
		field{"intensity", &genaisdk.Schema{Type: genaisdk.TypeString, Enum: intensityValues()}},
		field{"notes", str("")},
	)

	habit := object([]string{"title", "description", "frequency"},
		field{"title", str("")},
		field{"description", str("")},
		field{"frequency", str("")},
	)

	return object([]string{"introduction", "macros", "dietPlan", "exercisePlan", "habits", "disclaimer"},
		field{"introduction", str("A brief, encouraging personalized summary of the plan.")},
		field{"macros", macros},
		field{"dietPlan", arrayOf(dailyDiet)},
		field{"exercisePlan", arrayOf(exercise)},
		field{"habits", arrayOf(habit)},
		field{"disclaimer", str("A necessary medical disclaimer.")},
	)
}

func intensityValues() []string {
	values := make([]string, 0, len(domain.Intensities))
	for _, v := range domain.Intensities {
		values = append(values, string(v))
	}
	return values
}
