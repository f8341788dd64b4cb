package fitexport

import (
	"strings"

	"github.com/muktihari/fit/profile/typedef"
)

type categoryRule struct {
	keywords []string
	category typedef.ExerciseCategory
}

// Checked in order, so the more specific keywords come first.
var categoryRules = []categoryRule{
	{keywords: []string{"push-up", "push up", "pushup"}, category: typedef.ExerciseCategoryPushUp},
	{keywords: []string{"australian", "row"}, category: typedef.ExerciseCategoryRow},
	{keywords: []string{"pull-up", "pull up", "chin-up", "chin up"}, category: typedef.ExerciseCategoryPullUp},
	{keywords: []string{"dip"}, category: typedef.ExerciseCategoryTricepsExtension},
	{keywords: []string{"lunge", "split squat"}, category: typedef.ExerciseCategoryLunge},
	{keywords: []string{"squat"}, category: typedef.ExerciseCategorySquat},
	{keywords: []string{"glute bridge", "hip thrust"}, category: typedef.ExerciseCategoryHipRaise},
	{keywords: []string{"calf raise"}, category: typedef.ExerciseCategoryCalfRaise},
	{keywords: []string{"knee raise", "leg raise"}, category: typedef.ExerciseCategoryLegRaise},
	{keywords: []string{"plank"}, category: typedef.ExerciseCategoryPlank},
	{keywords: []string{"hollow", "l-sit", "compression"}, category: typedef.ExerciseCategoryCore},
	{keywords: []string{"shrug"}, category: typedef.ExerciseCategoryShrug},
	{keywords: []string{"crunch", "sit-up", "sit up"}, category: typedef.ExerciseCategoryCrunch},
	{keywords: []string{"curl"}, category: typedef.ExerciseCategoryCurl},
	{keywords: []string{"deadlift"}, category: typedef.ExerciseCategoryDeadlift},
	{keywords: []string{"shoulder press", "overhead press"}, category: typedef.ExerciseCategoryShoulderPress},
	{keywords: []string{"lateral raise"}, category: typedef.ExerciseCategoryLateralRaise},
}

// CategoryFor maps an exercise name to the closest FIT exercise category,
// falling back to total body.
func CategoryFor(exerciseName string) typedef.ExerciseCategory {
	name := strings.ToLower(strings.TrimSpace(exerciseName))
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(name, kw) {
				return rule.category
			}
		}
	}
	return typedef.ExerciseCategoryTotalBody
}
