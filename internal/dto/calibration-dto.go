package dto

import "github.com/aarondl/null/v8"

type CreateCalibrationDTO struct {
	CalibratedOn string      `json:"calibrated_on" validate:"required,date_only"`
	Result       null.String `json:"result"        validate:"omitempty,max=255"`
	Notes        null.String `json:"notes"`
}

type CalibrationDTO struct {
	ID           uint64      `json:"id"`
	EquipmentID  uint64      `json:"equipment_id"`
	CalibratedOn string      `json:"calibrated_on"`
	Result       null.String `json:"result"`
	Notes        null.String `json:"notes"`
	CreatedAt    string      `json:"created_at"`
}
