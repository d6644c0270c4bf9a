package gamification

import "strings"

// Meal types recognised by the points table.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

const (
	// DefaultMealPoints is awarded for meal types outside the table.
	DefaultMealPoints = 10
	// FirstMealBonus is added to the first meal logged on a calendar day.
	FirstMealBonus = 5

	ThreadPoints       = 10
	ReplyPoints        = 5
	LikeReceivedPoints = 2
)

var mealPoints = map[string]int{
	MealBreakfast: 15,
	MealLunch:     13,
	MealDinner:    13,
	MealSnack:     12,
}

// MealPoints returns the points for logging a meal of the given type when
// mealsLoggedToday meals were already logged today.
func MealPoints(mealType string, mealsLoggedToday int) int {
	points, ok := mealPoints[NormalizeMealType(mealType)]
	if !ok {
		points = DefaultMealPoints
	}
	if mealsLoggedToday == 0 {
		points += FirstMealBonus
	}
	return points
}

// NormalizeMealType lowercases and trims a meal type.
func NormalizeMealType(mealType string) string {
	return strings.ToLower(strings.TrimSpace(mealType))
}
