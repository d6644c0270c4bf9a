package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/glycofit/backend/config"
	"github.com/glycofit/backend/internal/clock"
	"github.com/glycofit/backend/internal/database"
	"github.com/glycofit/backend/internal/food"
	"github.com/glycofit/backend/internal/logging"
	"github.com/glycofit/backend/internal/service"
	"github.com/glycofit/backend/internal/store"
	"github.com/glycofit/backend/internal/types"
)

type testMeal struct {
	food     string
	grams    float64
	mealType string
}

type testUser struct {
	id      string
	name    string
	email   string
	profile types.UpdateProfileRequest
	fbs     float64
	ppbs    float64
	meals   []testMeal
}

func ptr[T any](v T) *T { return &v }

var testUsers = []testUser{
	{
		id:    "dev-asha",
		name:  "Asha Verma",
		email: "asha@example.com",
		profile: types.UpdateProfileRequest{
			HeightCm: ptr(160.0), WeightKg: ptr(68.0), Age: ptr(45),
			Gender: ptr("female"), ActivityLevel: ptr("light"), DiabetesType: ptr("type2"),
		},
		fbs: 160, ppbs: 230,
		meals: []testMeal{
			{"Oats Porridge", 150, "breakfast"},
			{"Dal", 200, "lunch"},
			{"Roasted Chana", 30, "snack"},
		},
	},
	{
		id:    "dev-ravi",
		name:  "Ravi Kumar",
		email: "ravi@example.com",
		profile: types.UpdateProfileRequest{
			HeightCm: ptr(175.0), WeightKg: ptr(82.0), Age: ptr(52),
			Gender: ptr("male"), ActivityLevel: ptr("moderate"), DiabetesType: ptr("type2"),
		},
		fbs: 190, ppbs: 270,
		meals: []testMeal{
			{"Idli", 120, "breakfast"},
			{"Chicken Curry", 180, "dinner"},
		},
	},
	{
		id:    "dev-meera",
		name:  "Meera Shah",
		email: "meera@example.com",
		profile: types.UpdateProfileRequest{
			HeightCm: ptr(158.0), WeightKg: ptr(61.0), Age: ptr(31),
			Gender: ptr("female"), ActivityLevel: ptr("high"), DiabetesType: ptr("gestational"),
		},
		fbs: 105, ppbs: 150,
	},
	{
		id:    "dev-new",
		name:  "New User",
		email: "new@example.com",
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if cfg.Environment == config.Production {
		fmt.Fprintln(os.Stderr, "refusing to seed test users in production")
		os.Exit(1)
	}
	log := logging.Must(cfg.Environment)
	defer log.Sync()

	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)
	if err := database.RunMigrations(db, log); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	foods, err := food.LoadResolver(ctx, food.NewRepository(db))
	if err != nil {
		log.Fatal("failed to load food catalog", zap.Error(err))
	}
	docs, err := store.NewGormStore(db, service.DocumentModels()...)
	if err != nil {
		log.Fatal("failed to create document store", zap.Error(err))
	}
	sysClock, err := clock.NewSystem(cfg.Timezone)
	if err != nil {
		log.Fatal("invalid timezone", zap.Error(err))
	}

	leaderboard := service.NewLeaderboardService(docs, log)
	profiles := service.NewProfileService(docs, leaderboard, sysClock, log)
	ledger := service.NewLedgerService(docs, foods, leaderboard, sysClock, log)
	auth := service.NewAuthService(cfg.JWTSecret)

	log.Info("Creating test users...")
	for _, u := range testUsers {
		if err := seedUser(ctx, profiles, ledger, u); err != nil {
			log.Error("failed to seed user", zap.String("user_id", u.id), zap.Error(err))
			continue
		}

		token, err := auth.GenerateToken(&types.TokenClaims{UserID: u.id, Username: u.name, Email: u.email})
		if err != nil {
			log.Error("failed to issue token", zap.String("user_id", u.id), zap.Error(err))
			continue
		}
		fmt.Printf("%-10s %-20s %s\n", u.id, u.email, token)
	}

	if _, err := leaderboard.Reconcile(ctx); err != nil {
		log.Error("leaderboard reconciliation failed", zap.Error(err))
	}
	log.Info("Test users created successfully")
}

func seedUser(ctx context.Context, profiles *service.ProfileService, ledger *service.LedgerService, u testUser) error {
	existing, err := profiles.GetProfile(ctx, u.id)
	if err == nil && existing.MealsLoggedToday > 0 {
		// already seeded today
		return nil
	}

	if _, err := profiles.CreateProfile(ctx, u.id, u.name, u.email); err != nil {
		return err
	}
	if u.profile.HeightCm != nil {
		if _, err := profiles.UpdateProfile(ctx, u.id, &u.profile); err != nil {
			return err
		}
	}
	if u.fbs > 0 {
		if _, err := profiles.RecordBloodSugar(ctx, u.id, u.fbs, u.ppbs); err != nil {
			return err
		}
	}
	for _, m := range u.meals {
		if _, err := ledger.LogMeal(ctx, u.id, m.food, m.grams, m.mealType); err != nil {
			return fmt.Errorf("log %s: %w", m.food, err)
		}
	}
	return nil
}
