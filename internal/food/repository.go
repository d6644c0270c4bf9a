package food

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/glycofit/backend/internal/models"
)

// Repository persists the reference catalog.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// All returns the catalog in insertion order.
func (r *Repository) All(ctx context.Context) ([]models.FoodItem, error) {
	var items []models.FoodItem
	if err := r.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load food items: %w", err)
	}
	return items, nil
}

// Upsert inserts items, overwriting nutrients of existing names.
func (r *Repository) Upsert(ctx context.Context, items []models.FoodItem) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"calories", "carbs", "protein", "fat", "sugar", "fiber", "sodium"}),
	}).CreateInBatches(items, 100)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to upsert food items: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// LoadResolver builds a resolver from the stored catalog, seeding it from the
// embedded dataset when the table is empty.
func LoadResolver(ctx context.Context, repo *Repository) (*Resolver, error) {
	items, err := repo.All(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		if items, err = DefaultCatalog(); err != nil {
			return nil, err
		}
		if _, err := repo.Upsert(ctx, items); err != nil {
			return nil, err
		}
	}
	return NewResolver(items), nil
}
