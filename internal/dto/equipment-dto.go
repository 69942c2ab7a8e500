package dto

import (
	"github.com/aarondl/null/v8"
)

// CreateEquipmentDTO is also the body of a full update (PUT).
type CreateEquipmentDTO struct {
	Name            string      `json:"name"             validate:"required,max=255"`
	Description     null.String `json:"description"`
	Stock           *int        `json:"stock"            validate:"required,gte=0"`
	Brand           null.String `json:"brand"            validate:"omitempty,max=255"`
	Model           null.String `json:"model"            validate:"omitempty,max=255"`
	Category        string      `json:"category"         validate:"required,equipment_category"`
	Subcategory     null.String `json:"subcategory"      validate:"omitempty,max=255"`
	Location        null.String `json:"location"         validate:"omitempty,max=255"`
	Responsible     null.String `json:"responsible"      validate:"omitempty,max=255"`
	AcquisitionDate *string     `json:"acquisition_date" validate:"omitempty,date_only"`
	Status          string      `json:"status"           validate:"omitempty,equipment_status"`
	LastCalibration *string     `json:"last_calibration" validate:"omitempty,date_only"`
	NextCalibration *string     `json:"next_calibration" validate:"omitempty,date_only"`
}

type UpdateEquipmentDTO = CreateEquipmentDTO

type EquipmentDTO struct {
	ID              uint64      `json:"id"`
	Name            string      `json:"name"`
	Description     null.String `json:"description"`
	Stock           int         `json:"stock"`
	Brand           null.String `json:"brand"`
	Model           null.String `json:"model"`
	Category        string      `json:"category"`
	CategoryLabel   string      `json:"category_label"`
	Subcategory     null.String `json:"subcategory"`
	Location        null.String `json:"location"`
	Responsible     null.String `json:"responsible"`
	AcquisitionDate null.String `json:"acquisition_date"`
	Status          string      `json:"status"`
	LastCalibration null.String `json:"last_calibration"`
	NextCalibration null.String `json:"next_calibration"`
	CreatedAt       string      `json:"created_at"`
	UpdatedAt       string      `json:"updated_at"`
}

type EquipmentListDTO struct {
	List  []EquipmentDTO `json:"list"`
	Total int            `json:"total"`
}

type ShortEquipmentDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
