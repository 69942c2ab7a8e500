package seeders

import (
	"context"
	"log"

	"inventory-system/internal/filter"
	"inventory-system/internal/repositories"
)

// seedEquipment inserts demoEquipment unless the table already has rows.
func seedEquipment(ctx context.Context, repo repositories.EquipmentRepositoryInterface) (int, error) {
	existing, err := repo.List(ctx, filter.EquipmentFilter{})
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		log.Println("  - equipment table is not empty, skipping")
		return 0, nil
	}

	for _, e := range demoEquipment() {
		if _, err := repo.Create(ctx, nil, e); err != nil {
			return 0, err
		}
	}
	return len(demoEquipment()), nil
}
