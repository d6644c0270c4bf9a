package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/glycofit/backend/config"
	"github.com/glycofit/backend/internal/database"
	"github.com/glycofit/backend/internal/logging"
)

func main() {
	// Parse command line flags
	status := flag.Bool("status", false, "List applied SQL migrations and exit")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	log := logging.Must(cfg.Environment)
	defer log.Sync()

	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	if *status {
		if db.Dialector.Name() != config.DriverPostgres {
			fmt.Println("SQL migrations only apply to postgres; sqlite uses auto-migration.")
			return
		}
		var applied []struct {
			Name      string
			AppliedAt string
		}
		if err := db.Table("schema_migrations").Order("name").Find(&applied).Error; err != nil {
			log.Fatal("failed to read schema_migrations", zap.Error(err))
		}
		for _, m := range applied {
			fmt.Printf("%s\t%s\n", m.Name, m.AppliedAt)
		}
		fmt.Printf("%d migrations applied\n", len(applied))
		return
	}

	if err := database.RunMigrations(db, log); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	fmt.Println("All migrations applied successfully.")
}
