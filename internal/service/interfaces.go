package service

import (
	"context"

	"github.com/glycofit/backend/internal/models"
	"github.com/glycofit/backend/internal/types"
	"github.com/google/uuid"
)

// IAuthService defines the interface for token operations
type IAuthService interface {
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateToken(claims *types.TokenClaims) (string, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	CreateProfile(ctx context.Context, userID, displayName, email string) (*models.UserProfile, error)
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, userID string, req *types.UpdateProfileRequest) (*models.UserProfile, error)
	RecordBloodSugar(ctx context.Context, userID string, fbs, ppbs float64) (*BloodSugarResult, error)
	BloodSugarHistory(ctx context.Context, userID string, limit int) ([]models.BloodSugarReading, error)
	GetDailyProgress(ctx context.Context, userID string) (*DailyProgress, error)
	AwardPoints(ctx context.Context, userID string, points int) (int, error)
}

// ILedgerService defines the interface for meal logging
type ILedgerService interface {
	LogMeal(ctx context.Context, userID, foodName string, grams float64, mealType string) (*LogResult, error)
	TodayLogs(ctx context.Context, userID string) ([]models.FoodLog, error)
}

// ILeaderboardService defines the interface for the ranking projection
type ILeaderboardService interface {
	GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardRow, error)
	SyncEntry(ctx context.Context, userID string, update LeaderboardUpdate) error
	Reconcile(ctx context.Context) (int, error)
}

// IForumService defines the interface for community forum operations
type IForumService interface {
	CreateThread(ctx context.Context, userID string, req *types.CreateThreadRequest) (*models.ForumThread, error)
	ListThreads(ctx context.Context, category string, limit int) ([]models.ForumThread, error)
	SearchThreads(ctx context.Context, term string, limit int) ([]models.ForumThread, error)
	GetThread(ctx context.Context, id uuid.UUID) (*ThreadDetail, error)
	Reply(ctx context.Context, userID string, threadID uuid.UUID, content string) (*models.ForumReply, error)
	ToggleLike(ctx context.Context, userID string, itemID uuid.UUID, itemType string) (*LikeResult, error)
}

var (
	_ IAuthService        = (*AuthService)(nil)
	_ IProfileService     = (*ProfileService)(nil)
	_ ILedgerService      = (*LedgerService)(nil)
	_ ILeaderboardService = (*LeaderboardService)(nil)
	_ IForumService       = (*ForumService)(nil)
	_ PointsAwarder       = (*ProfileService)(nil)
)
