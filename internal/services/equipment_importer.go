package services

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/utils"
	"inventory-system/pkg/validation"
)

// StructValidator validates DTOs; echo.Validator has the same shape.
type StructValidator interface {
	Validate(i interface{}) error
}

type ImportServiceInterface interface {
	Import(ctx context.Context, file io.ReadSeeker, size int64) (*dto.ImportResultDTO, error)
}

// EquipmentImportService creates equipment from the rows of a spreadsheet.
// Every valid row is inserted; invalid rows are reported with their line
// number and skipped.
type EquipmentImportService struct {
	equipmentService EquipmentServiceInterface
	validator        StructValidator
	logger           *zap.Logger
}

func NewEquipmentImportService(equipmentService EquipmentServiceInterface, validator StructValidator, logger *zap.Logger) *EquipmentImportService {
	return &EquipmentImportService{
		equipmentService: equipmentService,
		validator:        validator,
		logger:           logger,
	}
}

type importColumn string

const (
	colName            importColumn = "name"
	colDescription     importColumn = "description"
	colStock           importColumn = "stock"
	colBrand           importColumn = "brand"
	colModel           importColumn = "model"
	colCategory        importColumn = "category"
	colSubcategory     importColumn = "subcategory"
	colLocation        importColumn = "location"
	colResponsible     importColumn = "responsible"
	colAcquisitionDate importColumn = "acquisition_date"
	colStatus          importColumn = "status"
	colLastCalibration importColumn = "last_calibration"
	colNextCalibration importColumn = "next_calibration"
)

// headerAliases maps normalized header texts onto columns. Spanish headers
// come from sheets exported by the older system.
var headerAliases = map[string]importColumn{
	"name": colName, "nombre": colName,
	"description": colDescription, "descripcion": colDescription,
	"stock": colStock, "existencia": colStock, "quantity": colStock,
	"brand": colBrand, "marca": colBrand,
	"model": colModel, "modelo": colModel,
	"category": colCategory, "categoria": colCategory,
	"subcategory": colSubcategory, "subcategoria": colSubcategory,
	"location": colLocation, "ubicacion": colLocation,
	"responsible": colResponsible, "responsable": colResponsible,
	"acquisition_date": colAcquisitionDate, "fecha_adquisicion": colAcquisitionDate,
	"status": colStatus, "estado": colStatus,
	"last_calibration": colLastCalibration, "ultima_calibracion": colLastCalibration,
	"next_calibration": colNextCalibration, "proxima_calibracion": colNextCalibration,
}

var statusAliases = map[string]constants.EquipmentStatus{
	"active": constants.StatusActive, "activo": constants.StatusActive,
	"inactive": constants.StatusInactive, "inactivo": constants.StatusInactive,
}

var accentReplacer = strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n")

func normalizeHeader(s string) string {
	s = accentReplacer.Replace(strings.ToLower(strings.TrimSpace(s)))
	return strings.Join(strings.Fields(s), "_")
}

// how many leading rows may precede the header row
const headerSearchRows = 10

func (s *EquipmentImportService) Import(ctx context.Context, file io.ReadSeeker, size int64) (*dto.ImportResultDTO, error) {
	if err := validation.ValidateFile(size, file, constants.UploadContextImport); err != nil {
		return nil, err
	}
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidWorkbook, err)
	}
	defer f.Close()
	return s.importWorkbook(ctx, f)
}

var errInvalidWorkbook = validationError("the file is not a readable spreadsheet")

func (s *EquipmentImportService) importWorkbook(ctx context.Context, f *excelize.File) (*dto.ImportResultDTO, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errInvalidWorkbook
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	headerRow, columns := findHeader(rows)
	if headerRow < 0 {
		return nil, validationError("no header row with name and category columns found")
	}

	result := &dto.ImportResultDTO{Rejected: make([]dto.ImportRowErrorDTO, 0)}
	for i := headerRow + 1; i < len(rows); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := i + 1
		row := rows[i]
		if isBlankRow(row) {
			continue
		}

		payload, err := rowToDTO(row, columns)
		if err == nil {
			err = s.validator.Validate(&payload)
		}
		if err == nil {
			_, err = s.equipmentService.Create(ctx, payload)
		}
		if err != nil {
			result.Rejected = append(result.Rejected, dto.ImportRowErrorDTO{Row: line, Message: err.Error()})
			continue
		}
		result.Imported++
	}

	s.logger.Info("equipment import finished",
		zap.String("sheet", sheets[0]),
		zap.Int("imported", result.Imported),
		zap.Int("rejected", len(result.Rejected)),
	)
	return result, nil
}

func findHeader(rows [][]string) (int, map[importColumn]int) {
	for r := 0; r < len(rows) && r < headerSearchRows; r++ {
		columns := make(map[importColumn]int)
		for c, cell := range rows[r] {
			if col, ok := headerAliases[normalizeHeader(cell)]; ok {
				if _, dup := columns[col]; !dup {
					columns[col] = c
				}
			}
		}
		_, hasName := columns[colName]
		_, hasCategory := columns[colCategory]
		if hasName && hasCategory {
			return r, columns
		}
	}
	return -1, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cell(row []string, columns map[importColumn]int, col importColumn) string {
	idx, ok := columns[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func optional(row []string, columns map[importColumn]int, col importColumn) null.String {
	v := cell(row, columns, col)
	if v == "" {
		return null.String{}
	}
	return null.StringFrom(v)
}

func rowToDTO(row []string, columns map[importColumn]int) (dto.CreateEquipmentDTO, error) {
	p := dto.CreateEquipmentDTO{
		Name:        cell(row, columns, colName),
		Description: optional(row, columns, colDescription),
		Brand:       optional(row, columns, colBrand),
		Model:       optional(row, columns, colModel),
		Subcategory: optional(row, columns, colSubcategory),
		Location:    optional(row, columns, colLocation),
		Responsible: optional(row, columns, colResponsible),
	}

	category, ok := parseCategory(cell(row, columns, colCategory))
	if !ok {
		return p, validationError(fmt.Sprintf("unknown category %q", cell(row, columns, colCategory)))
	}
	p.Category = string(category)

	stock := 0
	if raw := cell(row, columns, colStock); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v != float64(int(v)) {
			return p, validationError(fmt.Sprintf("invalid stock %q", raw))
		}
		stock = int(v)
	}
	p.Stock = &stock

	if raw := cell(row, columns, colStatus); raw != "" {
		status, ok := statusAliases[strings.ToLower(raw)]
		if !ok {
			return p, validationError(fmt.Sprintf("unknown status %q", raw))
		}
		p.Status = string(status)
	}

	dates := []struct {
		col importColumn
		dst **string
	}{
		{colAcquisitionDate, &p.AcquisitionDate},
		{colLastCalibration, &p.LastCalibration},
		{colNextCalibration, &p.NextCalibration},
	}
	for _, d := range dates {
		raw := cell(row, columns, d.col)
		if raw == "" {
			continue
		}
		v, err := cellDate(raw)
		if err != nil {
			return p, validationError(fmt.Sprintf("%s: %v", d.col, err))
		}
		*d.dst = &v
	}
	return p, nil
}

// parseCategory accepts the category key or its display label.
func parseCategory(raw string) (constants.EquipmentCategory, bool) {
	key := normalizeHeader(raw)
	for _, c := range constants.Categories {
		if string(c) == key || strings.EqualFold(c.Label(), strings.TrimSpace(raw)) {
			return c, true
		}
	}
	return "", false
}

// cellDate reads a date typed as text or stored as an Excel serial number.
func cellDate(raw string) (string, error) {
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return "", err
		}
		return t.Format(constants.DateLayout), nil
	}
	t, err := parseLooseDate(raw)
	if err != nil {
		return "", err
	}
	return t.Format(constants.DateLayout), nil
}

// parseLooseDate accepts ISO dates and day-first dates with slashes.
func parseLooseDate(raw string) (time.Time, error) {
	if t, err := utils.ParseDate(raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("02/01/2006", raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}

func validationError(msg string) error {
	return apperrors.NewInvalidInputError("%s", msg)
}
