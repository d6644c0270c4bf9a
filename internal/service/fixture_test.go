package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glycofit/backend/internal/clock"
	"github.com/glycofit/backend/internal/food"
	"github.com/glycofit/backend/internal/models"
	"github.com/glycofit/backend/internal/store"
	"github.com/glycofit/backend/internal/testhelpers"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testFoods = []models.FoodItem{
	{Name: "Rice", Calories: 130, Carbs: 28, Protein: 2.7, Fat: 0.3, Sugar: 0.1, Fiber: 0.4, Sodium: 1},
	{Name: "Dal (Lentil Curry)", Calories: 116, Carbs: 20, Protein: 9, Fat: 0.4, Sugar: 1.8, Fiber: 8, Sodium: 2},
	{Name: "Chicken Curry", Calories: 180, Carbs: 6, Protein: 18, Fat: 10, Sugar: 2, Fiber: 1, Sodium: 400},
}

type fixture struct {
	db          *gorm.DB
	store       *store.GormStore
	clock       *clock.Fixed
	leaderboard *LeaderboardService
	profiles    *ProfileService
	ledger      *LedgerService
}

func day(date string) time.Time {
	t, err := time.Parse(clock.DateLayout, date)
	if err != nil {
		panic(err)
	}
	return t.Add(8 * time.Hour)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testhelpers.SetupSQLite(t)
	st, err := store.NewGormStore(db, DocumentModels()...)
	require.NoError(t, err)

	f := &fixture{db: db, store: st, clock: clock.NewFixed(day("2024-03-10"))}
	f.leaderboard = NewLeaderboardService(st, zap.NewNop())
	f.profiles = NewProfileService(st, f.leaderboard, f.clock, zap.NewNop())
	f.ledger = NewLedgerService(st, food.NewResolver(testFoods), f.leaderboard, f.clock, zap.NewNop())
	return f
}

func (f *fixture) createUser(t *testing.T, id, name string) *models.UserProfile {
	t.Helper()
	p, err := f.profiles.CreateProfile(context.Background(), id, name, id+"@example.com")
	require.NoError(t, err)
	return p
}

func (f *fixture) profile(t *testing.T, id string) models.UserProfile {
	t.Helper()
	var p models.UserProfile
	require.NoError(t, f.store.Get(context.Background(), profilesCollection, id, &p))
	return p
}

func (f *fixture) entry(t *testing.T, id string) models.LeaderboardEntry {
	t.Helper()
	var e models.LeaderboardEntry
	require.NoError(t, f.store.Get(context.Background(), leaderboardCollection, id, &e))
	return e
}

var errUnavailable = errors.New("store unavailable")

// flakyStore fails every write to one collection and hides transaction support.
type flakyStore struct {
	store.DocumentStore
	failOn string
}

func (f *flakyStore) Set(ctx context.Context, collection, id string, fields store.Fields, opts store.SetOptions) error {
	if collection == f.failOn {
		return errUnavailable
	}
	return f.DocumentStore.Set(ctx, collection, id, fields, opts)
}

// flakyTxStore runs transactions whose writes to one collection fail.
type flakyTxStore struct {
	*store.GormStore
	failOn string
}

func (f *flakyTxStore) RunInTransaction(ctx context.Context, fn func(store.DocumentStore) error) error {
	return f.GormStore.RunInTransaction(ctx, func(tx store.DocumentStore) error {
		return fn(&flakyStore{DocumentStore: tx, failOn: f.failOn})
	})
}
