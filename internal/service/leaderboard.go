package service

import (
	"context"
	"errors"

	"github.com/glycofit/backend/internal/models"
	"github.com/glycofit/backend/internal/store"
	"go.uber.org/zap"
)

const (
	DefaultLeaderboardLimit = 20
	MaxLeaderboardLimit     = 100
)

// LeaderboardRow is one ranked position of the leaderboard.
type LeaderboardRow struct {
	Rank          int    `json:"rank"`
	UserID        string `json:"userId"`
	Name          string `json:"name"`
	TotalPoints   int    `json:"totalPoints"`
	CurrentStreak int    `json:"currentStreak"`
	LongestStreak int    `json:"longestStreak"`
}

// LeaderboardUpdate holds the fields to upsert; nil fields are left untouched.
type LeaderboardUpdate struct {
	Name          *string
	TotalPoints   *int
	CurrentStreak *int
	LongestStreak *int
}

func (u LeaderboardUpdate) fields() store.Fields {
	f := store.Fields{}
	if u.Name != nil {
		f["name"] = *u.Name
	}
	if u.TotalPoints != nil {
		f["total_points"] = *u.TotalPoints
	}
	if u.CurrentStreak != nil {
		f["current_streak"] = *u.CurrentStreak
	}
	if u.LongestStreak != nil {
		f["longest_streak"] = *u.LongestStreak
	}
	return f
}

// LeaderboardCache keeps the ordered top entries between reads.
type LeaderboardCache interface {
	Top(ctx context.Context) ([]models.LeaderboardEntry, bool, error)
	Store(ctx context.Context, entries []models.LeaderboardEntry) error
	Invalidate(ctx context.Context) error
}

// LeaderboardNotifier is told about every entry that changed.
type LeaderboardNotifier interface {
	EntryChanged(entry models.LeaderboardEntry)
}

// LeaderboardService maintains the denormalized ranking projection.
type LeaderboardService struct {
	store    store.DocumentStore
	cache    LeaderboardCache
	notifier LeaderboardNotifier
	log      *zap.Logger
}

type LeaderboardOption func(*LeaderboardService)

func WithLeaderboardCache(c LeaderboardCache) LeaderboardOption {
	return func(s *LeaderboardService) { s.cache = c }
}

func WithLeaderboardNotifier(n LeaderboardNotifier) LeaderboardOption {
	return func(s *LeaderboardService) { s.notifier = n }
}

func NewLeaderboardService(st store.DocumentStore, log *zap.Logger, opts ...LeaderboardOption) *LeaderboardService {
	s := &LeaderboardService{store: st, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetLeaderboard returns up to limit entries ordered by total points, ranked from 1.
// Entries with equal points keep the order the store returned them in.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit > MaxLeaderboardLimit {
		limit = MaxLeaderboardLimit
	}

	entries, err := s.top(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}

	rows := make([]LeaderboardRow, len(entries))
	for i, e := range entries {
		rows[i] = LeaderboardRow{
			Rank:          i + 1,
			UserID:        e.ID,
			Name:          e.Name,
			TotalPoints:   e.TotalPoints,
			CurrentStreak: e.CurrentStreak,
			LongestStreak: e.LongestStreak,
		}
	}
	return rows, nil
}

func (s *LeaderboardService) top(ctx context.Context) ([]models.LeaderboardEntry, error) {
	if s.cache != nil {
		entries, ok, err := s.cache.Top(ctx)
		if err != nil {
			s.log.Warn("leaderboard cache read failed", zap.Error(err))
		} else if ok {
			return entries, nil
		}
	}

	var entries []models.LeaderboardEntry
	err := s.store.QueryEqual(ctx, leaderboardCollection, nil, store.QueryOptions{
		OrderBy:    "total_points",
		Descending: true,
		Limit:      MaxLeaderboardLimit,
	}, &entries)
	if err != nil {
		return nil, storeErr("query leaderboard", err)
	}

	if s.cache != nil {
		if err := s.cache.Store(ctx, entries); err != nil {
			s.log.Warn("leaderboard cache write failed", zap.Error(err))
		}
	}
	return entries, nil
}

// SyncEntry upserts the provided fields of a user's entry.
func (s *LeaderboardService) SyncEntry(ctx context.Context, userID string, update LeaderboardUpdate) error {
	if userID == "" {
		return invalid("userId", "user id is required")
	}
	if err := s.apply(ctx, s.store, userID, update); err != nil {
		return err
	}
	s.changed(ctx, userID)
	return nil
}

// apply writes an update through st, which may be a transaction of the caller.
func (s *LeaderboardService) apply(ctx context.Context, st store.DocumentStore, userID string, update LeaderboardUpdate) error {
	fields := update.fields()
	if len(fields) == 0 {
		return nil
	}
	if err := st.Set(ctx, leaderboardCollection, userID, fields, merge); err != nil {
		return storeErr("sync leaderboard entry", err)
	}
	return nil
}

// changed runs after a committed write to an entry.
func (s *LeaderboardService) changed(ctx context.Context, userID string) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn("leaderboard cache invalidation failed", zap.Error(err))
		}
	}
	if s.notifier == nil {
		return
	}
	var entry models.LeaderboardEntry
	if err := s.store.Get(ctx, leaderboardCollection, userID, &entry); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.log.Warn("failed to load changed leaderboard entry", zap.String("user_id", userID), zap.Error(err))
		}
		return
	}
	s.notifier.EntryChanged(entry)
}

// Reconcile rewrites every entry from its profile and returns how many were written.
func (s *LeaderboardService) Reconcile(ctx context.Context) (int, error) {
	var profiles []models.UserProfile
	if err := s.store.QueryEqual(ctx, profilesCollection, nil, store.QueryOptions{}, &profiles); err != nil {
		return 0, storeErr("list profiles", err)
	}

	written := 0
	for i := range profiles {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		p := &profiles[i]
		if err := s.apply(ctx, s.store, p.ID, entryUpdate(p, true)); err != nil {
			return written, err
		}
		written++
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn("leaderboard cache invalidation failed", zap.Error(err))
		}
	}
	s.log.Info("leaderboard reconciled", zap.Int("entries", written))
	return written, nil
}

// entryUpdate projects a profile onto its leaderboard fields.
func entryUpdate(p *models.UserProfile, withName bool) LeaderboardUpdate {
	u := LeaderboardUpdate{
		TotalPoints:   &p.TotalPoints,
		CurrentStreak: &p.DailyStreak,
		LongestStreak: &p.LongestStreak,
	}
	if withName {
		u.Name = &p.DisplayName
	}
	return u
}
