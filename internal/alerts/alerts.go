// Package alerts derives calibration and expiration notices from equipment
// and documents. Nothing here touches storage or keeps state.
package alerts

import (
	"sort"
	"time"

	"github.com/aarondl/null/v8"

	"inventory-system/internal/entities"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/utils"
)

type Config struct {
	// DueWindowDays is how many days ahead a next calibration counts as due.
	DueWindowDays int
	// StaleAfterDays is the age after which a last calibration is stale.
	StaleAfterDays int
	// LegacyStalePrecedence reports never-calibrated items as stale even when
	// they are inactive.
	LegacyStalePrecedence bool
	// Location decides which calendar day "today" is.
	Location *time.Location
}

func DefaultConfig() Config {
	return Config{DueWindowDays: 15, StaleAfterDays: 365, Location: time.UTC}
}

type CalibrationDue struct {
	EquipmentID     uint64      `json:"equipment_id"`
	Name            string      `json:"name"`
	Category        string      `json:"category"`
	Location        null.String `json:"location"`
	Responsible     null.String `json:"responsible"`
	NextCalibration string      `json:"next_calibration"`
	DaysRemaining   int         `json:"days_remaining"`
}

type DocumentExpired struct {
	DocumentID     uint64      `json:"document_id"`
	EquipmentID    null.Uint64 `json:"equipment_id"`
	EquipmentName  string      `json:"equipment_name"`
	Type           string      `json:"type"`
	OriginalName   string      `json:"original_name"`
	ExpirationDate string      `json:"expiration_date"`
	DaysExpired    int         `json:"days_expired"`
}

type CalibrationStale struct {
	EquipmentID          uint64      `json:"equipment_id"`
	Name                 string      `json:"name"`
	Category             string      `json:"category"`
	Brand                null.String `json:"brand"`
	Model                null.String `json:"model"`
	Location             null.String `json:"location"`
	Responsible          null.String `json:"responsible"`
	Status               string      `json:"status"`
	LastCalibration      null.String `json:"last_calibration"`
	DaysSinceCalibration null.Int    `json:"days_since_calibration"`
}

type Result struct {
	CalibrationDue   []CalibrationDue   `json:"calibration_due"`
	DocumentExpired  []DocumentExpired  `json:"document_expired"`
	CalibrationStale []CalibrationStale `json:"calibration_stale"`
}

type Evaluator struct {
	cfg Config
}

func NewEvaluator(cfg Config) *Evaluator {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Evaluator{cfg: cfg}
}

// Today is the calendar day of now in the configured location.
func (ev *Evaluator) Today(now time.Time) time.Time {
	return utils.DateOnly(now, ev.cfg.Location)
}

// Evaluate computes all three lists.
func (ev *Evaluator) Evaluate(equipment []entities.Equipment, documents []entities.Document, now time.Time) Result {
	return Result{
		CalibrationDue:   ev.CalibrationDue(equipment, now),
		DocumentExpired:  ev.DocumentsExpired(documents, now),
		CalibrationStale: ev.CalibrationStale(equipment, now),
	}
}

// EvaluateKind computes a single list. documents may be nil for the
// calibration kinds.
func (ev *Evaluator) EvaluateKind(kind constants.AlertKind, equipment []entities.Equipment, documents []entities.Document, now time.Time) (interface{}, error) {
	switch kind {
	case constants.AlertCalibrationDue:
		return ev.CalibrationDue(equipment, now), nil
	case constants.AlertDocumentExpired:
		return ev.DocumentsExpired(documents, now), nil
	case constants.AlertCalibrationStale:
		return ev.CalibrationStale(equipment, now), nil
	}
	return nil, apperrors.SelectorError("alert kind", string(kind))
}

// CalibrationDue lists active equipment whose next calibration falls within
// the due window. Overdue items stay in the list with negative days.
func (ev *Evaluator) CalibrationDue(equipment []entities.Equipment, now time.Time) []CalibrationDue {
	today := ev.Today(now)

	type hit struct {
		e    *entities.Equipment
		days int
	}
	var hits []hit
	for i := range equipment {
		e := &equipment[i]
		if !e.NextCalibration.Valid || !e.IsActive() {
			continue
		}
		days := utils.DaysBetween(today, e.NextCalibration.Time)
		if days <= ev.cfg.DueWindowDays {
			hits = append(hits, hit{e: e, days: days})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].days != hits[j].days {
			return hits[i].days < hits[j].days
		}
		return hits[i].e.ID < hits[j].e.ID
	})

	out := make([]CalibrationDue, 0, len(hits))
	for _, h := range hits {
		out = append(out, CalibrationDue{
			EquipmentID:     h.e.ID,
			Name:            h.e.Name,
			Category:        string(h.e.Category),
			Location:        h.e.Location,
			Responsible:     h.e.Responsible,
			NextCalibration: utils.FormatNullDate(h.e.NextCalibration),
			DaysRemaining:   h.days,
		})
	}
	return out
}

// DocumentsExpired lists documents whose expiration date is before today.
func (ev *Evaluator) DocumentsExpired(documents []entities.Document, now time.Time) []DocumentExpired {
	today := ev.Today(now)

	type hit struct {
		d    *entities.Document
		days int
	}
	var hits []hit
	for i := range documents {
		d := &documents[i]
		if !d.ExpirationDate.Valid {
			continue
		}
		days := utils.DaysBetween(d.ExpirationDate.Time, today)
		if days > 0 {
			hits = append(hits, hit{d: d, days: days})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].days != hits[j].days {
			return hits[i].days > hits[j].days
		}
		return hits[i].d.ID < hits[j].d.ID
	})

	out := make([]DocumentExpired, 0, len(hits))
	for _, h := range hits {
		out = append(out, DocumentExpired{
			DocumentID:     h.d.ID,
			EquipmentID:    h.d.EquipmentID,
			EquipmentName:  EquipmentLabel(h.d),
			Type:           string(h.d.Type),
			OriginalName:   h.d.OriginalName,
			ExpirationDate: utils.FormatNullDate(h.d.ExpirationDate),
			DaysExpired:    h.days,
		})
	}
	return out
}

// EquipmentLabel is the owning equipment's name, or the deleted label when
// the reference is gone.
func EquipmentLabel(d *entities.Document) string {
	if !d.EquipmentID.Valid || !d.EquipmentName.Valid {
		return constants.EquipmentDeletedLabel
	}
	return d.EquipmentName.String
}

// IsStale applies the stale rule to one item. days is unset for an item
// that was never calibrated.
func (ev *Evaluator) IsStale(e *entities.Equipment, today time.Time) (stale bool, days null.Int) {
	if e.LastCalibration.Valid {
		days = null.IntFrom(utils.DaysBetween(e.LastCalibration.Time, today))
	}
	old := days.Valid && days.Int > ev.cfg.StaleAfterDays

	if ev.cfg.LegacyStalePrecedence {
		return !e.LastCalibration.Valid || (old && e.IsActive()), days
	}
	return e.IsActive() && (!e.LastCalibration.Valid || old), days
}

// CalibrationStale lists equipment never calibrated or calibrated too long
// ago. Never-calibrated items come first by id, then the oldest calibration.
func (ev *Evaluator) CalibrationStale(equipment []entities.Equipment, now time.Time) []CalibrationStale {
	today := ev.Today(now)

	out := make([]CalibrationStale, 0)
	for i := range equipment {
		e := &equipment[i]
		stale, days := ev.IsStale(e, today)
		if !stale {
			continue
		}
		out = append(out, CalibrationStale{
			EquipmentID:          e.ID,
			Name:                 e.Name,
			Category:             string(e.Category),
			Brand:                e.Brand,
			Model:                e.Model,
			Location:             e.Location,
			Responsible:          e.Responsible,
			Status:               string(e.Status),
			LastCalibration:      utils.NullDateString(e.LastCalibration),
			DaysSinceCalibration: days,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].DaysSinceCalibration, out[j].DaysSinceCalibration
		switch {
		case !a.Valid && !b.Valid:
			return out[i].EquipmentID < out[j].EquipmentID
		case !a.Valid:
			return true
		case !b.Valid:
			return false
		case a.Int != b.Int:
			return a.Int > b.Int
		}
		return out[i].EquipmentID < out[j].EquipmentID
	})
	return out
}
