package seeders

import (
	"context"
	"fmt"
	"log"

	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/config"
	"inventory-system/pkg/constants"
	"inventory-system/pkg/utils"
)

func seedAdminUser(ctx context.Context, users repositories.UserRepositoryInterface, cfg config.SeedConfig) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return fmt.Errorf("admin email and password must be set")
	}
	hash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	id, err := users.Create(ctx, entities.User{
		Name:     "Administrator",
		Email:    cfg.AdminEmail,
		Password: hash,
		Role:     constants.RoleAdmin,
	})
	if err != nil {
		return err
	}
	log.Printf("  - administrator %s has id %d", cfg.AdminEmail, id)
	return nil
}
