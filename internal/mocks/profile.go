package mocks

import (
	"context"

	"github.com/glycofit/backend/internal/models"
	"github.com/glycofit/backend/internal/service"
	"github.com/glycofit/backend/internal/types"
	"github.com/stretchr/testify/mock"
)

// MockProfileService is a mock implementation of the ProfileService interface
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) CreateProfile(ctx context.Context, userID, displayName, email string) (*models.UserProfile, error) {
	args := m.Called(ctx, userID, displayName, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockProfileService) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, userID string, req *types.UpdateProfileRequest) (*models.UserProfile, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockProfileService) RecordBloodSugar(ctx context.Context, userID string, fbs, ppbs float64) (*service.BloodSugarResult, error) {
	args := m.Called(ctx, userID, fbs, ppbs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BloodSugarResult), args.Error(1)
}

func (m *MockProfileService) BloodSugarHistory(ctx context.Context, userID string, limit int) ([]models.BloodSugarReading, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BloodSugarReading), args.Error(1)
}

func (m *MockProfileService) GetDailyProgress(ctx context.Context, userID string) (*service.DailyProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DailyProgress), args.Error(1)
}

func (m *MockProfileService) AwardPoints(ctx context.Context, userID string, points int) (int, error) {
	args := m.Called(ctx, userID, points)
	return args.Int(0), args.Error(1)
}
