package entities

import (
	"time"

	"github.com/aarondl/null/v8"

	"inventory-system/pkg/constants"
)

type Document struct {
	ID             uint64                 `db:"id"`
	EquipmentID    null.Uint64            `db:"equipment_id"`
	Type           constants.DocumentType `db:"type"`
	FilePath       string                 `db:"file_path"`
	OriginalName   string                 `db:"original_name"`
	UploadedAt     time.Time              `db:"uploaded_at"`
	ExpirationDate null.Time              `db:"expiration_date"`

	// Filled from the equipment join, not a column of documents.
	EquipmentName null.String `db:"-"`
}
