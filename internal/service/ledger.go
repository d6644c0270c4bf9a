package service

import (
	"context"
	"math"
	"strings"

	"github.com/glycofit/backend/internal/clock"
	"github.com/glycofit/backend/internal/food"
	"github.com/glycofit/backend/internal/gamification"
	"github.com/glycofit/backend/internal/models"
	"github.com/glycofit/backend/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NutritionResolver computes the nutrients of a free-text food quantity.
type NutritionResolver interface {
	Compute(name string, grams float64) (food.Nutrition, bool)
}

// ConsumedTotals is the daily consumption snapshot of a user.
type ConsumedTotals struct {
	Calories float64 `json:"calories"`
	Carbs    float64 `json:"carbs"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
}

// LogResult describes the state after a logged meal.
type LogResult struct {
	Entry            models.FoodLog `json:"entry"`
	Nutrition        food.Nutrition `json:"nutrition"`
	PointsEarned     int            `json:"pointsEarned"`
	TotalPoints      int            `json:"totalPoints"`
	CurrentPoints    int            `json:"currentPoints"`
	DailyStreak      int            `json:"dailyStreak"`
	LongestStreak    int            `json:"longestStreak"`
	MealsLoggedToday int            `json:"mealsLoggedToday"`
	Consumed         ConsumedTotals `json:"consumed"`
}

// LedgerService records meals against the daily consumption ledger.
type LedgerService struct {
	store       store.DocumentStore
	foods       NutritionResolver
	leaderboard *LeaderboardService
	clock       clock.Clock
	log         *zap.Logger
}

func NewLedgerService(st store.DocumentStore, foods NutritionResolver, leaderboard *LeaderboardService, c clock.Clock, log *zap.Logger) *LedgerService {
	return &LedgerService{store: st, foods: foods, leaderboard: leaderboard, clock: c, log: log}
}

// LogMeal resolves a food, appends an immutable log entry, updates the
// user's daily accumulators, points and streak, and syncs the leaderboard.
// An unknown food returns ErrFoodNotFound without changing anything.
func (s *LedgerService) LogMeal(ctx context.Context, userID, foodName string, grams float64, mealType string) (*LogResult, error) {
	if userID == "" {
		return nil, invalid("userId", "user id is required")
	}
	if strings.TrimSpace(foodName) == "" {
		return nil, invalid("foodName", "food name is required")
	}
	if grams <= 0 || math.IsNaN(grams) || math.IsInf(grams, 0) {
		return nil, invalid("quantity", "quantity must be a positive number of grams")
	}

	n, ok := s.foods.Compute(foodName, grams)
	if !ok {
		return nil, ErrFoodNotFound
	}

	now := s.clock.Now()
	today := now.Format(clock.DateLayout)
	mealType = gamification.NormalizeMealType(mealType)

	var result *LogResult
	err := runAtomic(ctx, s.store, func(st store.DocumentStore) error {
		p, err := loadProfile(ctx, st, userID)
		if err != nil {
			return err
		}
		if err := rollover(ctx, st, p, today); err != nil {
			return err
		}

		points := gamification.MealPoints(mealType, p.MealsLoggedToday)
		entry := models.FoodLog{
			ID:           uuid.NewString(),
			UserID:       userID,
			FoodName:     n.FoodName,
			Quantity:     n.Quantity,
			Calories:     n.Calories,
			Carbs:        n.Carbs,
			Protein:      n.Protein,
			Fat:          n.Fat,
			Sugar:        n.Sugar,
			Fiber:        n.Fiber,
			Sodium:       n.Sodium,
			MealType:     mealType,
			PointsEarned: points,
			LogDate:      today,
			CreatedAt:    now,
		}
		if err := st.Set(ctx, foodLogsCollection, entry.ID, logFields(entry), store.SetOptions{}); err != nil {
			return storeErr("append food log", err)
		}

		meals := p.MealsLoggedToday + 1
		streak := gamification.Streak{
			Daily:        p.DailyStreak,
			Longest:      p.LongestStreak,
			LastMealDate: p.LastMealDate,
		}.Advance(today, meals)

		err = st.Set(ctx, profilesCollection, userID, store.Fields{
			"consumed_calories":  store.Inc(n.Calories),
			"consumed_carbs":     store.Inc(n.Carbs),
			"consumed_protein":   store.Inc(n.Protein),
			"consumed_fat":       store.Inc(n.Fat),
			"meals_logged_today": store.Inc(1),
			"total_points":       store.Inc(points),
			"current_points":     store.Inc(points),
			"daily_streak":       streak.Daily,
			"longest_streak":     streak.Longest,
			"last_meal_date":     streak.LastMealDate,
		}, merge)
		if err != nil {
			return storeErr("update daily ledger", err)
		}

		p.ConsumedCalories += n.Calories
		p.ConsumedCarbs += n.Carbs
		p.ConsumedProtein += n.Protein
		p.ConsumedFat += n.Fat
		p.MealsLoggedToday = meals
		p.TotalPoints += points
		p.CurrentPoints += points
		p.DailyStreak = streak.Daily
		p.LongestStreak = streak.Longest
		p.LastMealDate = streak.LastMealDate

		if err := s.leaderboard.apply(ctx, st, userID, entryUpdate(p, false)); err != nil {
			return err
		}

		result = &LogResult{
			Entry:            entry,
			Nutrition:        n,
			PointsEarned:     points,
			TotalPoints:      p.TotalPoints,
			CurrentPoints:    p.CurrentPoints,
			DailyStreak:      p.DailyStreak,
			LongestStreak:    p.LongestStreak,
			MealsLoggedToday: p.MealsLoggedToday,
			Consumed:         consumedOf(p),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.leaderboard.changed(ctx, userID)
	s.log.Debug("meal logged",
		zap.String("user_id", userID),
		zap.String("food", n.FoodName),
		zap.String("matched_by", n.MatchedBy),
		zap.String("meal_type", mealType),
		zap.Int("points", result.PointsEarned),
		zap.Int("streak", result.DailyStreak),
	)
	return result, nil
}

// TodayLogs returns the user's log entries for the current date in insertion order.
func (s *LedgerService) TodayLogs(ctx context.Context, userID string) ([]models.FoodLog, error) {
	if userID == "" {
		return nil, invalid("userId", "user id is required")
	}
	var logs []models.FoodLog
	err := s.store.QueryEqual(ctx, foodLogsCollection,
		[]store.Filter{store.Eq("user_id", userID), store.Eq("log_date", clock.Today(s.clock))},
		store.QueryOptions{OrderBy: "created_at"},
		&logs,
	)
	if err != nil {
		return nil, storeErr("query food logs", err)
	}
	return logs, nil
}

func logFields(e models.FoodLog) store.Fields {
	return store.Fields{
		"user_id":       e.UserID,
		"food_name":     e.FoodName,
		"quantity":      e.Quantity,
		"calories":      e.Calories,
		"carbs":         e.Carbs,
		"protein":       e.Protein,
		"fat":           e.Fat,
		"sugar":         e.Sugar,
		"fiber":         e.Fiber,
		"sodium":        e.Sodium,
		"meal_type":     e.MealType,
		"points_earned": e.PointsEarned,
		"log_date":      e.LogDate,
		"created_at":    e.CreatedAt,
	}
}

func consumedOf(p *models.UserProfile) ConsumedTotals {
	return ConsumedTotals{
		Calories: p.ConsumedCalories,
		Carbs:    p.ConsumedCarbs,
		Protein:  p.ConsumedProtein,
		Fat:      p.ConsumedFat,
	}
}
