package mocks

import (
	"context"

	"github.com/glycofit/backend/internal/models"
	"github.com/glycofit/backend/internal/service"
	"github.com/glycofit/backend/internal/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockForumService is a mock implementation of the ForumService interface
type MockForumService struct {
	mock.Mock
}

func (m *MockForumService) CreateThread(ctx context.Context, userID string, req *types.CreateThreadRequest) (*models.ForumThread, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ForumThread), args.Error(1)
}

func (m *MockForumService) ListThreads(ctx context.Context, category string, limit int) ([]models.ForumThread, error) {
	args := m.Called(ctx, category, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ForumThread), args.Error(1)
}

func (m *MockForumService) SearchThreads(ctx context.Context, term string, limit int) ([]models.ForumThread, error) {
	args := m.Called(ctx, term, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ForumThread), args.Error(1)
}

func (m *MockForumService) GetThread(ctx context.Context, id uuid.UUID) (*service.ThreadDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ThreadDetail), args.Error(1)
}

func (m *MockForumService) Reply(ctx context.Context, userID string, threadID uuid.UUID, content string) (*models.ForumReply, error) {
	args := m.Called(ctx, userID, threadID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ForumReply), args.Error(1)
}

func (m *MockForumService) ToggleLike(ctx context.Context, userID string, itemID uuid.UUID, itemType string) (*service.LikeResult, error) {
	args := m.Called(ctx, userID, itemID, itemType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LikeResult), args.Error(1)
}

var (
	_ service.IAuthService        = (*MockAuthService)(nil)
	_ service.IProfileService     = (*MockProfileService)(nil)
	_ service.ILedgerService      = (*MockLedgerService)(nil)
	_ service.ILeaderboardService = (*MockLeaderboardService)(nil)
	_ service.IForumService       = (*MockForumService)(nil)
)
