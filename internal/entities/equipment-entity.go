package entities

import (
	"time"

	"github.com/aarondl/null/v8"

	"inventory-system/pkg/constants"
)

type Equipment struct {
	ID              uint64                      `db:"id"`
	Name            string                      `db:"name"`
	Description     null.String                 `db:"description"`
	Stock           int                         `db:"stock"`
	Brand           null.String                 `db:"brand"`
	Model           null.String                 `db:"model"`
	Category        constants.EquipmentCategory `db:"category"`
	Subcategory     null.String                 `db:"subcategory"`
	Location        null.String                 `db:"location"`
	Responsible     null.String                 `db:"responsible"`
	AcquisitionDate null.Time                   `db:"acquisition_date"`
	Status          constants.EquipmentStatus   `db:"status"`
	LastCalibration null.Time                   `db:"last_calibration"`
	NextCalibration null.Time                   `db:"next_calibration"`
	CreatedAt       time.Time                   `db:"created_at"`
	UpdatedAt       time.Time                   `db:"updated_at"`
}

func (e *Equipment) IsActive() bool {
	return e.Status == constants.StatusActive
}
