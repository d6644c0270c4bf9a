package mocks

import (
	"context"

	"github.com/glycofit/backend/internal/models"
	"github.com/glycofit/backend/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) LogMeal(ctx context.Context, userID, foodName string, grams float64, mealType string) (*service.LogResult, error) {
	args := m.Called(ctx, userID, foodName, grams, mealType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LogResult), args.Error(1)
}

func (m *MockLedgerService) TodayLogs(ctx context.Context, userID string) ([]models.FoodLog, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FoodLog), args.Error(1)
}

type MockLeaderboardService struct {
	mock.Mock
}

func (m *MockLeaderboardService) GetLeaderboard(ctx context.Context, limit int) ([]service.LeaderboardRow, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.LeaderboardRow), args.Error(1)
}

func (m *MockLeaderboardService) SyncEntry(ctx context.Context, userID string, update service.LeaderboardUpdate) error {
	args := m.Called(ctx, userID, update)
	return args.Error(0)
}

func (m *MockLeaderboardService) Reconcile(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
