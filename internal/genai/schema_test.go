package genai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	genaisdk "google.golang.org/genai"
)

func TestPlanSchemaTopLevel(t *testing.T) {
	schema := PlanSchema()

	assert.Equal(t, genaisdk.TypeObject, schema.Type)
	assert.Equal(t, []string{"introduction", "macros", "dietPlan", "exercisePlan", "habits", "disclaimer"}, schema.Required)
	assert.Equal(t, schema.Required, schema.PropertyOrdering)
	assert.Len(t, schema.Properties, 6)
}

func TestPlanSchemaRequiredAtEveryLevel(t *testing.T) {
	schema := PlanSchema()

	macros := schema.Properties["macros"]
	require.NotNil(t, macros)
	assert.Equal(t, []string{"protein", "carbs", "fats", "calories"}, macros.Required)
	for _, name := range macros.Required {
		assert.Equal(t, genaisdk.TypeNumber, macros.Properties[name].Type, name)
	}

	diet := schema.Properties["dietPlan"]
	require.Equal(t, genaisdk.TypeArray, diet.Type)
	assert.Equal(t, []string{"day", "breakfast", "lunch", "dinner", "snack"}, diet.Items.Required)
	for _, meal := range []string{"breakfast", "lunch", "dinner", "snack"} {
		node := diet.Items.Properties[meal]
		require.NotNil(t, node, meal)
		assert.Equal(t, []string{"name", "description", "calories"}, node.Required, meal)
		assert.Equal(t, genaisdk.TypeArray, node.Properties["tags"].Type)
		assert.Equal(t, genaisdk.TypeString, node.Properties["tags"].Items.Type)
	}

	exercise := schema.Properties["exercisePlan"].Items
	assert.Equal(t, []string{"day", "activity", "duration", "intensity", "notes"}, exercise.Required)
	assert.Equal(t, []string{"Low", "Medium", "High"}, exercise.Properties["intensity"].Enum)

	habit := schema.Properties["habits"].Items
	assert.Equal(t, []string{"title", "description", "frequency"}, habit.Required)
}

func TestPlanSchemaReturnsIndependentTrees(t *testing.T) {
	first := PlanSchema()
	first.Properties["habits"].Items.Required = nil

	assert.NotNil(t, PlanSchema().Properties["habits"].Items.Required)
}
