package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"inventory-system/internal/repositories"
	"inventory-system/pkg/config"
)

// SeedAdmin creates or refreshes the administrator account from config.
func SeedAdmin(ctx context.Context, db *pgxpool.Pool, cfg *config.Config, logger *zap.Logger) {
	log.Println("▶️  Seeding administrator...")
	if err := seedAdminUser(ctx, repositories.NewUserRepository(db, logger), cfg.Seed); err != nil {
		log.Fatalf("❌ failed to seed administrator: %v", err)
	}
	log.Println("✅ Administrator ready")
}

// SeedDemoInventory fills an empty equipment table with sample rows.
func SeedDemoInventory(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger) {
	log.Println("▶️  Seeding demo inventory...")
	n, err := seedEquipment(ctx, repositories.NewEquipmentRepository(db, logger))
	if err != nil {
		log.Fatalf("❌ failed to seed equipment: %v", err)
	}
	log.Printf("✅ Demo inventory ready, %d rows inserted", n)
}
