package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"alcyxob/vitality-planner/internal/domain"
)

// profileFlags are the generate command's inputs. Enumerated values accept
// the full label or any unambiguous case-insensitive prefix, so
// --activity sedentary selects "Sedentary (office job, little exercise)".
type profileFlags struct {
	age          int
	gender       string
	weight       float64
	height       float64
	activity     string
	goal         string
	diet         string
	restrictions string
}

func (f *profileFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.IntVar(&f.age, "age", 0, "age in years")
	flags.StringVar(&f.gender, "gender", "", "Male, Female or Other")
	flags.Float64Var(&f.weight, "weight", 0, "weight in kilograms")
	flags.Float64Var(&f.height, "height", 0, "height in centimeters")
	flags.StringVar(&f.activity, "activity", "", "activity level: "+choices(domain.ActivityLevels))
	flags.StringVar(&f.goal, "goal", "", "primary goal: "+choices(domain.HealthGoals))
	flags.StringVar(&f.diet, "diet", string(domain.DietAny), "dietary preference: "+choices(domain.DietTypes))
	flags.StringVar(&f.restrictions, "restrictions", "", "allergies or medical conditions")

	for _, name := range []string{"age", "gender", "weight", "height", "activity", "goal"} {
		_ = cmd.MarkFlagRequired(name)
	}
}

func (f *profileFlags) profile() (domain.Profile, error) {
	gender, err := matchChoice("gender", f.gender, domain.Genders)
	if err != nil {
		return domain.Profile{}, err
	}
	activity, err := matchChoice("activity", f.activity, domain.ActivityLevels)
	if err != nil {
		return domain.Profile{}, err
	}
	goal, err := matchChoice("goal", f.goal, domain.HealthGoals)
	if err != nil {
		return domain.Profile{}, err
	}
	diet, err := matchChoice("diet", f.diet, domain.DietTypes)
	if err != nil {
		return domain.Profile{}, err
	}

	profile := domain.Profile{
		Age:               f.age,
		Gender:            gender,
		Weight:            f.weight,
		Height:            f.height,
		ActivityLevel:     activity,
		Goal:              goal,
		DietaryPreference: diet,
		Restrictions:      strings.TrimSpace(f.restrictions),
	}
	return profile, profile.Validate()
}

// matchChoice resolves input against options: exact (case-insensitive)
// match first, then a unique prefix.
func matchChoice[T ~string](flag, input string, options []T) (T, error) {
	needle := strings.ToLower(strings.TrimSpace(input))
	if needle == "" {
		return "", fmt.Errorf("--%s is required (%s)", flag, choices(options))
	}

	var matches []T
	for _, opt := range options {
		label := strings.ToLower(string(opt))
		if label == needle {
			return opt, nil
		}
		if strings.HasPrefix(label, needle) {
			matches = append(matches, opt)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("--%s %q matches none of: %s", flag, input, choices(options))
	default:
		return "", fmt.Errorf("--%s %q is ambiguous: %s", flag, input, choices(matches))
	}
}

func choices[T ~string](options []T) string {
	labels := make([]string, len(options))
	for i, opt := range options {
		labels[i] = string(opt)
	}
	return strings.Join(labels, " | ")
}
