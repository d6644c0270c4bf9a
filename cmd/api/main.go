package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/glycofit/backend/config"
	"github.com/glycofit/backend/internal/api"
	"github.com/glycofit/backend/internal/cache"
	"github.com/glycofit/backend/internal/clock"
	"github.com/glycofit/backend/internal/database"
	"github.com/glycofit/backend/internal/food"
	"github.com/glycofit/backend/internal/jobs"
	"github.com/glycofit/backend/internal/logging"
	"github.com/glycofit/backend/internal/middleware"
	"github.com/glycofit/backend/internal/realtime"
	"github.com/glycofit/backend/internal/router"
	"github.com/glycofit/backend/internal/server"
	"github.com/glycofit/backend/internal/service"
	"github.com/glycofit/backend/internal/store"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Must(config.GetEnvironment()).Fatal("failed to load configuration", zap.Error(err))
	}

	log := logging.Must(cfg.Environment)
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited with error", zap.Error(err))
	}
	log.Info("Server stopped")
}

func run(cfg *config.Config, log *zap.Logger) error {
	db, err := database.New(cfg, log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, log); err != nil {
		return err
	}

	sysClock, err := clock.NewSystem(cfg.Timezone)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	foods, err := food.LoadResolver(ctx, food.NewRepository(db))
	cancel()
	if err != nil {
		return err
	}
	log.Info("food catalog loaded", zap.Int("items", foods.Len()))

	docs, err := store.NewGormStore(db, service.DocumentModels()...)
	if err != nil {
		return err
	}

	// Redis is optional; without it the leaderboard is read from the database
	// and rate limiting is disabled.
	var redisClient *redis.Client
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(cfg, log)
		if err != nil {
			log.Warn("redis unavailable, continuing without cache and rate limits", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	hub := realtime.NewHub(cfg.CORSOrigins, log)

	lbOpts := []service.LeaderboardOption{service.WithLeaderboardNotifier(hub)}
	if redisClient != nil {
		lbOpts = append(lbOpts, service.WithLeaderboardCache(cache.NewLeaderboardCache(redisClient, "", 0)))
	}
	leaderboard := service.NewLeaderboardService(docs, log, lbOpts...)
	profiles := service.NewProfileService(docs, leaderboard, sysClock, log)
	ledger := service.NewLedgerService(docs, foods, leaderboard, sysClock, log)
	forum := service.NewForumService(db, profiles, log)
	auth := service.NewAuthService(cfg.JWTSecret)

	scheduler := jobs.NewScheduler(sysClock.Location, log)
	if err := scheduler.ScheduleReconcile(cfg.LeaderboardReconcileCron, leaderboard); err != nil {
		return err
	}
	scheduler.Start()

	handler := router.SetupRouter(cfg, api.Dependencies{
		DB:           db,
		Auth:         auth,
		Profiles:     profiles,
		Ledger:       ledger,
		Leaderboard:  leaderboard,
		Forum:        forum,
		Foods:        foods,
		Hub:          hub,
		MealLimiter:  middleware.NewMealLogRateLimiter(redisClient, cfg.MealLogRateLimit),
		ForumLimiter: middleware.NewForumPostRateLimiter(redisClient, cfg.ForumPostRateLimit),
	}, log)

	srv := server.New(cfg, handler, log)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			return err
		}
	case sig := <-quit:
		log.Info("Received signal", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	scheduler.Stop(shutdownCtx)
	hub.Close()
	return srv.Shutdown(shutdownCtx)
}
