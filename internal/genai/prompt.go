// Package genai builds structured generation requests and sends them to the
// Gemini generateContent endpoint through the Gemini Go SDK.
package genai

import (
	"fmt"
	"strconv"
	"strings"

	genaisdk "google.golang.org/genai"

	"alcyxob/vitality-planner/internal/domain"
)

// DefaultModel is the model a request targets when none is configured.
const DefaultModel = "gemini-2.5-flash"

// ResponseMIMEType forces the service to answer with a bare JSON document.
const ResponseMIMEType = "application/json"

// Request is everything the service needs for one plan: the instruction, the
// output schema and the target model.
type Request struct {
	Model  string
	Prompt string
	Schema *genaisdk.Schema
}

// BuildRequest is a pure function of its inputs: the same profile and model
// always produce the same prompt text and an identical schema.
func BuildRequest(profile domain.Profile, model string) Request {
	if model == "" {
		model = DefaultModel
	}
	return Request{
		Model:  model,
		Prompt: BuildPrompt(profile),
		Schema: PlanSchema(),
	}
}

// BuildPrompt renders the natural-language instruction for a profile.
func BuildPrompt(profile domain.Profile) string {
	restrictions := strings.TrimSpace(profile.Restrictions)
	if restrictions == "" {
		restrictions = "None"
	}

	var b strings.Builder
	b.WriteString("Create a comprehensive health and wellness plan for the following user:\n")
	fmt.Fprintf(&b, "- Age: %d\n", profile.Age)
	fmt.Fprintf(&b, "- Gender: %s\n", profile.Gender)
	fmt.Fprintf(&b, "- Weight: %skg\n", formatNumber(profile.Weight))
	fmt.Fprintf(&b, "- Height: %scm\n", formatNumber(profile.Height))
	fmt.Fprintf(&b, "- Activity Level: %s\n", profile.ActivityLevel)
	fmt.Fprintf(&b, "- Primary Goal: %s\n", profile.Goal)
	fmt.Fprintf(&b, "- Dietary Preference: %s\n", profile.DietaryPreference)
	fmt.Fprintf(&b, "- Medical History/Restrictions: %s\n", restrictions)
	b.WriteString("\n")

	b.WriteString("The plan should include:\n")
	b.WriteString("1. A calculated daily calorie target and macro split (protein, carbs, fats in percentages).\n")
	b.WriteString("2. A 3-day sample diet plan (Day 1, Day 2, Day 3) with Breakfast, Lunch, Dinner, and Snack.\n")
	b.WriteString("3. A weekly exercise roadmap (giving examples for Mon-Sun or specific workout days).\n")
	b.WriteString("4. 3-5 healthy habits to build.\n")
	b.WriteString("5. A friendly introduction and a strong medical disclaimer.\n")
	b.WriteString("\n")

	b.WriteString("Ensure the tone is encouraging, educational, and clear.\n")
	b.WriteString("IMPORTANT: Provide purely educational guidance. Do not provide medical prescriptions.\n")

	return b.String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
