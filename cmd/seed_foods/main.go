package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/glycofit/backend/config"
	"github.com/glycofit/backend/internal/database"
	"github.com/glycofit/backend/internal/food"
	"github.com/glycofit/backend/internal/logging"
	"github.com/glycofit/backend/internal/models"
)

func main() {
	file := flag.String("file", "", "Path to a catalog JSON export (defaults to FOOD_CATALOG_PATH)")
	fromS3 := flag.Bool("s3", false, "Download the catalog from FOOD_CATALOG_S3_BUCKET/FOOD_CATALOG_S3_KEY")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	log := logging.Must(cfg.Environment)
	defer log.Sync()

	if *file == "" {
		*file = cfg.FoodCatalogPath
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	items, source, err := loadItems(ctx, cfg, *file, *fromS3)
	if err != nil {
		log.Fatal("failed to load food catalog", zap.Error(err))
	}
	log.Info("catalog loaded", zap.String("source", source), zap.Int("items", len(items)))

	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, log); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	n, err := food.NewRepository(db).Upsert(ctx, items)
	if err != nil {
		log.Fatal("failed to seed food catalog", zap.Error(err))
	}
	log.Info("food catalog seeded", zap.Int64("rows", n))
}

// loadItems reads the catalog from S3, a local file or the embedded dataset, in that order of preference.
func loadItems(ctx context.Context, cfg *config.Config, path string, fromS3 bool) ([]models.FoodItem, string, error) {
	var (
		r      io.ReadCloser
		source string
	)
	switch {
	case fromS3:
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return nil, "", err
		}
		if r, err = s3cfg.FetchObject(ctx, cfg.FoodCatalogS3Key); err != nil {
			return nil, "", err
		}
		source = fmt.Sprintf("s3://%s/%s", s3cfg.BucketName, cfg.FoodCatalogS3Key)
	case path != "":
		f, err := os.Open(path)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open catalog file: %w", err)
		}
		r, source = f, path
	default:
		items, err := food.DefaultCatalog()
		return items, "embedded", err
	}
	defer r.Close()

	items, err := food.LoadCatalog(r)
	return items, source, err
}
