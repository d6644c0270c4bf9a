package gamification

import "github.com/glycofit/backend/internal/clock"

// MealsPerStreakDay is the number of meals that makes a day count toward the streak.
const MealsPerStreakDay = 2

// Streak is the day-streak state stored on a profile.
type Streak struct {
	Daily        int
	Longest      int
	LastMealDate string
}

// Advance applies a newly logged meal. mealsToday is the count including that meal.
// The streak only moves when the day reaches the milestone, and LastMealDate
// records the last day that reached it.
func (s Streak) Advance(today string, mealsToday int) Streak {
	if mealsToday >= MealsPerStreakDay {
		switch s.LastMealDate {
		case clock.PreviousDate(today):
			s.Daily++
		case today:
		default:
			s.Daily = 1
		}
		s.LastMealDate = today
	}
	if s.Daily > s.Longest {
		s.Longest = s.Daily
	}
	return s
}
