package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// CalibrationRecord is one entry of the calibration audit trail.
type CalibrationRecord struct {
	ID           uint64      `db:"id"`
	EquipmentID  uint64      `db:"equipment_id"`
	CalibratedOn time.Time   `db:"calibrated_on"`
	Result       null.String `db:"result"`
	Notes        null.String `db:"notes"`
	CreatedAt    time.Time   `db:"created_at"`
}
