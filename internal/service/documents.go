package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/glycofit/backend/internal/models"
	"github.com/glycofit/backend/internal/store"
)

var (
	profilesCollection    = models.UserProfile{}.TableName()
	foodLogsCollection    = models.FoodLog{}.TableName()
	readingsCollection    = models.BloodSugarReading{}.TableName()
	leaderboardCollection = models.LeaderboardEntry{}.TableName()
)

var merge = store.SetOptions{Merge: true}

// DocumentModels lists the models backing the document collections.
func DocumentModels() []interface{} {
	return []interface{}{
		&models.UserProfile{},
		&models.FoodLog{},
		&models.BloodSugarReading{},
		&models.LeaderboardEntry{},
	}
}

// countingStore counts successful writes so a failed operation can tell
// whether it left earlier writes behind.
type countingStore struct {
	store.DocumentStore
	writes int
}

func (c *countingStore) Set(ctx context.Context, collection, id string, fields store.Fields, opts store.SetOptions) error {
	err := c.DocumentStore.Set(ctx, collection, id, fields, opts)
	if err == nil {
		c.writes++
	}
	return err
}

// runAtomic runs fn in a transaction when the store supports one. Otherwise
// writes are applied one by one and a failure after the first write is
// reported as a PartialWriteError.
func runAtomic(ctx context.Context, st store.DocumentStore, fn func(store.DocumentStore) error) error {
	if tx, ok := st.(store.Transactor); ok {
		return tx.RunInTransaction(ctx, fn)
	}
	cs := &countingStore{DocumentStore: st}
	if err := fn(cs); err != nil {
		if cs.writes > 0 {
			return &PartialWriteError{Writes: cs.writes, Err: err}
		}
		return err
	}
	return nil
}

func loadProfile(ctx context.Context, st store.DocumentStore, userID string) (*models.UserProfile, error) {
	var p models.UserProfile
	if err := st.Get(ctx, profilesCollection, userID, &p); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
		}
		return nil, storeErr("load profile", err)
	}
	return &p, nil
}

// rollover resets the consumption ledger when it belongs to an earlier day.
func rollover(ctx context.Context, st store.DocumentStore, p *models.UserProfile, today string) error {
	if p.LastResetDate == today {
		return nil
	}
	p.ResetDailyLedger(today)
	err := st.Set(ctx, profilesCollection, p.ID, store.Fields{
		"consumed_calories":  0.0,
		"consumed_carbs":     0.0,
		"consumed_protein":   0.0,
		"consumed_fat":       0.0,
		"meals_logged_today": 0,
		"last_reset_date":    today,
	}, merge)
	if err != nil {
		return storeErr("reset daily ledger", err)
	}
	return nil
}
