package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glycofit/backend/internal/database"
	"github.com/glycofit/backend/internal/middleware"
	"github.com/glycofit/backend/internal/service"
)

// Dependencies are the collaborators the HTTP layer is built from.
// DB, Hub and the rate limiters are optional.
type Dependencies struct {
	DB           *gorm.DB
	Auth         service.IAuthService
	Profiles     service.IProfileService
	Ledger       service.ILedgerService
	Leaderboard  service.ILeaderboardService
	Forum        service.IForumService
	Foods        FoodCatalog
	Hub          Subscriber
	MealLimiter  *middleware.RateLimiter
	ForumLimiter *middleware.RateLimiter
}

// HealthCheck returns the health status of the API and its database.
func HealthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := gin.H{"status": "healthy", "message": "GlycoFit API is running"}
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := database.HealthCheck(ctx, db); err != nil {
				_ = c.Error(err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": "unreachable"})
				return
			}
			status["database"] = "ok"
		}
		c.JSON(http.StatusOK, status)
	}
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	// Health check endpoint (no auth required)
	router.GET("/health", HealthCheck(deps.DB))

	v1 := router.Group("/api/v1")
	v1.GET("/health", HealthCheck(deps.DB))

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Auth))

	NewProfileHandler(deps.Profiles).RegisterRoutes(protected)
	NewMealHandler(deps.Ledger, deps.MealLimiter).RegisterRoutes(protected)
	NewFoodHandler(deps.Foods).RegisterRoutes(protected)
	NewLeaderboardHandler(deps.Leaderboard, deps.Hub).RegisterRoutes(protected)
	NewForumHandler(deps.Forum, deps.ForumLimiter).RegisterRoutes(protected)
	RegisterRateLimitRoutes(protected, deps.MealLimiter, deps.ForumLimiter)
}

// RegisterRateLimitRoutes registers endpoints for checking rate limit status
func RegisterRateLimitRoutes(router *gin.RouterGroup, mealLimiter, forumLimiter *middleware.RateLimiter) {
	rateLimits := router.Group("/rate-limits")
	rateLimits.GET("/meals", rateLimitStatus(mealLimiter))
	rateLimits.GET("/forum-posts", rateLimitStatus(forumLimiter))
}

func rateLimitStatus(limiter *middleware.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.JSON(http.StatusOK, gin.H{"limited": false})
			return
		}
		remaining, resetTime, err := limiter.GetRemainingRequests(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check rate limit"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"limited":    true,
			"limit":      limiter.Limit(),
			"remaining":  remaining,
			"reset_time": resetTime.Unix(),
			"window":     "1h",
		})
	}
}
