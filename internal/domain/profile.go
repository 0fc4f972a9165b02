// internal/domain/profile.go
package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidProfile is returned when a submitted profile breaks a field invariant.
var ErrInvalidProfile = errors.New("invalid profile")

// Gender of the user, as offered by the input form.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// ActivityLevel values are sent to the generation service verbatim, so the
// labels carry their own explanation.
type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "Sedentary (office job, little exercise)"
	ActivityLightlyActive    ActivityLevel = "Lightly Active (1-3 days/week)"
	ActivityModeratelyActive ActivityLevel = "Moderately Active (3-5 days/week)"
	ActivityVeryActive       ActivityLevel = "Very Active (6-7 days/week)"
	ActivityExtraActive      ActivityLevel = "Extra Active (physical job & exercise)"
)

// HealthGoal is the user's primary goal.
type HealthGoal string

const (
	GoalLoseWeight     HealthGoal = "Lose Weight"
	GoalMaintain       HealthGoal = "Maintain Weight"
	GoalGainMuscle     HealthGoal = "Gain Muscle"
	GoalImproveStamina HealthGoal = "Improve Stamina"
	GoalReduceStress   HealthGoal = "Reduce Stress & Better Sleep"
)

// DietType is the user's dietary preference.
type DietType string

const (
	DietAny           DietType = "No Preference"
	DietVegetarian    DietType = "Vegetarian"
	DietVegan         DietType = "Vegan"
	DietKeto          DietType = "Ketogenic"
	DietPaleo         DietType = "Paleo"
	DietMediterranean DietType = "Mediterranean"
	DietGlutenFree    DietType = "Gluten Free"
)

// Ordered value sets, in the order the input form lists them.
var (
	Genders        = []Gender{GenderMale, GenderFemale, GenderOther}
	ActivityLevels = []ActivityLevel{ActivitySedentary, ActivityLightlyActive, ActivityModeratelyActive, ActivityVeryActive, ActivityExtraActive}
	HealthGoals    = []HealthGoal{GoalLoseWeight, GoalMaintain, GoalGainMuscle, GoalImproveStamina, GoalReduceStress}
	DietTypes      = []DietType{DietAny, DietVegetarian, DietVegan, DietKeto, DietPaleo, DietMediterranean, DietGlutenFree}
)

// Profile is the user's input. It is immutable once submitted and replaced
// wholesale on the next submission or on reset.
type Profile struct {
	Age               int           `json:"age"`
	Gender            Gender        `json:"gender"`
	Weight            float64       `json:"weight"` // kg
	Height            float64       `json:"height"` // cm
	ActivityLevel     ActivityLevel `json:"activityLevel"`
	Goal              HealthGoal    `json:"goal"`
	DietaryPreference DietType      `json:"dietaryPreference"`
	Restrictions      string        `json:"restrictions"` // Allergies or medical conditions, may be empty
}

// Validate checks numeric ranges and enumerated fields. The returned error
// wraps ErrInvalidProfile.
func (p Profile) Validate() error {
	var problems []string

	if p.Age <= 0 {
		problems = append(problems, "age must be a positive integer")
	}
	if !positiveFinite(p.Weight) {
		problems = append(problems, "weight must be a positive number of kilograms")
	}
	if !positiveFinite(p.Height) {
		problems = append(problems, "height must be a positive number of centimeters")
	}
	if !contains(Genders, p.Gender) {
		problems = append(problems, fmt.Sprintf("unknown gender %q", p.Gender))
	}
	if !contains(ActivityLevels, p.ActivityLevel) {
		problems = append(problems, fmt.Sprintf("unknown activity level %q", p.ActivityLevel))
	}
	if !contains(HealthGoals, p.Goal) {
		problems = append(problems, fmt.Sprintf("unknown goal %q", p.Goal))
	}
	if !contains(DietTypes, p.DietaryPreference) {
		problems = append(problems, fmt.Sprintf("unknown dietary preference %q", p.DietaryPreference))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidProfile, strings.Join(problems, "; "))
	}
	return nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func contains[T comparable](set []T, v T) bool {
	for _, candidate := range set {
		if candidate == v {
			return true
		}
	}
	return false
}
