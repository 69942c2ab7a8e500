package main

import (
	"context"
	"flag"
	"log"

	"inventory-system/pkg/config"
	"inventory-system/pkg/database/postgresql"
	applogger "inventory-system/pkg/logger"
	"inventory-system/seeders"
)

func main() {
	runAdmin := flag.Bool("admin", false, "create or refresh the administrator account")
	runDemo := flag.Bool("demo", false, "insert demo equipment into an empty inventory")
	runAll := flag.Bool("all", false, "run every seeder")
	flag.Parse()

	if !*runAdmin && !*runDemo && !*runAll {
		log.Println("❌ no seeder selected")
		flag.PrintDefaults()
		log.Println("example: go run ./seeders/cmd/seed -all")
		return
	}

	ctx := context.Background()
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log.Level, "")

	dbPool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns, logger)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer dbPool.Close()

	if err := postgresql.Migrate(ctx, dbPool, logger); err != nil {
		log.Fatalf("❌ %v", err)
	}

	if *runAll || *runAdmin {
		seeders.SeedAdmin(ctx, dbPool, cfg, logger)
	}
	if *runAll || *runDemo {
		seeders.SeedDemoInventory(ctx, dbPool, logger)
	}
	log.Println("✅ seeding finished")
}
