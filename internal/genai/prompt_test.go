package genai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/vitality-planner/internal/domain"
	"alcyxob/vitality-planner/internal/jsonx"
)

func testProfile() domain.Profile {
	return domain.Profile{
		Age:               41,
		Gender:            domain.GenderMale,
		Weight:            82.3,
		Height:            180,
		ActivityLevel:     domain.ActivityLightlyActive,
		Goal:              domain.GoalLoseWeight,
		DietaryPreference: domain.DietVegetarian,
		Restrictions:      "lactose intolerant",
	}
}

func TestBuildRequestIsDeterministic(t *testing.T) {
	first := BuildRequest(testProfile(), "")
	second := BuildRequest(testProfile(), "")

	assert.Equal(t, first, second)

	firstSchema, err := jsonx.Marshal(first.Schema)
	require.NoError(t, err)
	secondSchema, err := jsonx.Marshal(second.Schema)
	require.NoError(t, err)
	assert.Equal(t, string(firstSchema), string(secondSchema))
}

func TestBuildRequestDefaultsModel(t *testing.T) {
	assert.Equal(t, DefaultModel, BuildRequest(testProfile(), "").Model)
	assert.Equal(t, "gemini-custom", BuildRequest(testProfile(), "gemini-custom").Model)
}

func TestBuildPromptListsProfileAndDeliverables(t *testing.T) {
	prompt := BuildPrompt(testProfile())

	for _, want := range []string{
		"- Age: 41",
		"- Gender: Male",
		"- Weight: 82.3kg",
		"- Height: 180cm",
		"- Activity Level: Lightly Active (1-3 days/week)",
		"- Primary Goal: Lose Weight",
		"- Dietary Preference: Vegetarian",
		"- Medical History/Restrictions: lactose intolerant",
		"daily calorie target and macro split",
		"3-day sample diet plan",
		"Breakfast, Lunch, Dinner, and Snack",
		"weekly exercise roadmap",
		"3-5 healthy habits",
		"introduction",
		"disclaimer",
		"Do not provide medical prescriptions",
	} {
		assert.Contains(t, prompt, want)
	}
}

func TestBuildPromptRendersMissingRestrictionsAsNone(t *testing.T) {
	profile := testProfile()
	profile.Restrictions = "   "

	assert.Contains(t, BuildPrompt(profile), "- Medical History/Restrictions: None\n")
}

func TestBuildPromptChangesWithProfile(t *testing.T) {
	other := testProfile()
	other.Age = 42

	assert.NotEqual(t, BuildPrompt(testProfile()), BuildPrompt(other))
}
