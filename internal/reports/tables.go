package reports

import (
	"sort"
	"strings"

	"github.com/aarondl/null/v8"

	"inventory-system/internal/alerts"
	"inventory-system/internal/entities"
	"inventory-system/pkg/constants"
	"inventory-system/pkg/utils"
)

// UnassignedLocation groups equipment without a location.
const UnassignedLocation = "unassigned"

func text(s null.String) string {
	if !s.Valid {
		return ""
	}
	return s.String
}

// InventoryTable lists every column including the id.
func InventoryTable(items []entities.Equipment) Table {
	t := Table{
		Title:   "Equipment inventory",
		Headers: []string{"ID", "Category", "Subcategory", "Stock", "Name", "Description", "Brand", "Model"},
		Rows:    make([][]interface{}, 0, len(items)),
	}
	for _, e := range items {
		t.Rows = append(t.Rows, []interface{}{
			e.ID, string(e.Category), text(e.Subcategory), e.Stock,
			e.Name, text(e.Description), text(e.Brand), text(e.Model),
		})
	}
	return t
}

// FilteredInventoryTable is InventoryTable without the id column.
func FilteredInventoryTable(items []entities.Equipment, label string) Table {
	t := Table{
		Title:   "Equipment inventory: " + label,
		Headers: []string{"Category", "Subcategory", "Stock", "Name", "Description", "Brand", "Model"},
		Rows:    make([][]interface{}, 0, len(items)),
	}
	for _, e := range items {
		t.Rows = append(t.Rows, []interface{}{
			string(e.Category), text(e.Subcategory), e.Stock,
			e.Name, text(e.Description), text(e.Brand), text(e.Model),
		})
	}
	return t
}

type LocationSummary struct {
	Location string
	Total    int
	Active   int
	Inactive int
}

// SummarizeLocations counts equipment per location, largest first, ties by
// location name.
func SummarizeLocations(items []entities.Equipment) []LocationSummary {
	byLocation := make(map[string]*LocationSummary)
	for _, e := range items {
		loc := strings.TrimSpace(text(e.Location))
		if loc == "" {
			loc = UnassignedLocation
		}
		s, ok := byLocation[loc]
		if !ok {
			s = &LocationSummary{Location: loc}
			byLocation[loc] = s
		}
		s.Total++
		if e.Status == constants.StatusActive {
			s.Active++
		} else {
			s.Inactive++
		}
	}

	out := make([]LocationSummary, 0, len(byLocation))
	for _, s := range byLocation {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Location < out[j].Location
	})
	return out
}

func LocationsTable(items []entities.Equipment) Table {
	summary := SummarizeLocations(items)
	t := Table{
		Title:   "Equipment by location",
		Headers: []string{"Location", "Total", "Active", "Inactive"},
		Rows:    make([][]interface{}, 0, len(summary)),
	}
	for _, s := range summary {
		t.Rows = append(t.Rows, []interface{}{s.Location, s.Total, s.Active, s.Inactive})
	}
	return t
}

// SortStaleForReport orders stale rows by days since calibration, longest
// first. Never-calibrated rows go last, unlike the alert list.
func SortStaleForReport(items []alerts.CalibrationStale) []alerts.CalibrationStale {
	out := make([]alerts.CalibrationStale, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].DaysSinceCalibration, out[j].DaysSinceCalibration
		switch {
		case a.Valid && !b.Valid:
			return true
		case !a.Valid && b.Valid:
			return false
		case a.Valid && a.Int != b.Int:
			return a.Int > b.Int
		}
		return out[i].EquipmentID < out[j].EquipmentID
	})
	return out
}

// CalibrationStaleTable takes the rows selected by the alert evaluator and
// lays them out in report order.
func CalibrationStaleTable(items []alerts.CalibrationStale) Table {
	items = SortStaleForReport(items)
	t := Table{
		Title: "Equipment without recent calibration",
		Headers: []string{
			"ID", "Name", "Category", "Brand", "Model", "Location", "Responsible",
			"Last calibration", "Days since calibration",
		},
		Rows: make([][]interface{}, 0, len(items)),
	}
	for _, s := range items {
		var days interface{} = "never"
		if s.DaysSinceCalibration.Valid {
			days = s.DaysSinceCalibration.Int
		}
		t.Rows = append(t.Rows, []interface{}{
			s.EquipmentID, s.Name, s.Category,
			text(s.Brand), text(s.Model), text(s.Location), text(s.Responsible),
			text(s.LastCalibration), days,
		})
	}
	return t
}

func DocumentsTable(docs []entities.Document) Table {
	t := Table{
		Title:   "Documents",
		Headers: []string{"ID", "Equipment", "Type", "File", "Uploaded", "Expires"},
		Rows:    make([][]interface{}, 0, len(docs)),
	}
	for i := range docs {
		d := &docs[i]
		t.Rows = append(t.Rows, []interface{}{
			d.ID, alerts.EquipmentLabel(d), string(d.Type), d.OriginalName,
			d.UploadedAt.Format(constants.DateLayout), utils.FormatNullDate(d.ExpirationDate),
		})
	}
	return t
}
