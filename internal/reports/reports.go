// Package reports renders inventory data as spreadsheets, PDFs and archives.
package reports

import (
	apperrors "inventory-system/pkg/errors"
)

type Kind string

const (
	KindInventory         Kind = "inventory"
	KindInventoryFiltered Kind = "inventory-filtered"
	KindLocations         Kind = "locations"
	KindCalibrationStale  Kind = "calibration-stale"
	KindDocuments         Kind = "documents"
	KindPhotos            Kind = "photos"
)

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
	FormatZIP  Format = "zip"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
	ContentTypeZIP  = "application/zip"
)

var supported = map[Kind][]Format{
	KindInventory:         {FormatXLSX, FormatPDF},
	KindInventoryFiltered: {FormatXLSX, FormatPDF},
	KindLocations:         {FormatXLSX},
	KindCalibrationStale:  {FormatXLSX},
	KindDocuments:         {FormatXLSX, FormatPDF},
	KindPhotos:            {FormatZIP},
}

// Check rejects unknown kinds and kind/format pairs that are not rendered.
func Check(kind Kind, format Format) error {
	formats, ok := supported[kind]
	if !ok {
		return apperrors.SelectorError("report kind", string(kind))
	}
	for _, f := range formats {
		if f == format {
			return nil
		}
	}
	return apperrors.SelectorError("report format for "+string(kind), string(format))
}

func ContentType(format Format) string {
	switch format {
	case FormatPDF:
		return ContentTypePDF
	case FormatZIP:
		return ContentTypeZIP
	default:
		return ContentTypeXLSX
	}
}

// Artifact is a fully rendered report.
type Artifact struct {
	FileName    string
	ContentType string
	Body        []byte
}

// Table is the format-independent content of a report: one header and the
// rows in output order.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]interface{}
}
