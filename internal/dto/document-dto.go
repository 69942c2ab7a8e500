package dto

import "github.com/aarondl/null/v8"

// UploadDocumentDTO carries the form fields sent next to the file.
type UploadDocumentDTO struct {
	Type           string  `form:"type"            validate:"required,document_type"`
	ExpirationDate *string `form:"expiration_date" validate:"omitempty,date_only"`
}

type DocumentDTO struct {
	ID             uint64      `json:"id"`
	EquipmentID    null.Uint64 `json:"equipment_id"`
	EquipmentName  string      `json:"equipment_name"`
	Type           string      `json:"type"`
	OriginalName   string      `json:"original_name"`
	URL            string      `json:"url"`
	UploadedAt     string      `json:"uploaded_at"`
	ExpirationDate null.String `json:"expiration_date"`
}
