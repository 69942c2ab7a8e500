// Package filter selects equipment by optional predicates. The same predicate
// list is evaluated in memory (Match, Apply) and pushed down to SQL (ToSql).
package filter

import (
	"net/url"
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"inventory-system/internal/entities"
	"inventory-system/pkg/constants"
)

type Field string

const (
	FieldCategory Field = "category"
	FieldStock    Field = "stock"
	FieldName     Field = "name"
	FieldBrand    Field = "brand"
	FieldModel    Field = "model"
)

type Mode int

const (
	// ModeEqual compares the textual value exactly.
	ModeEqual Mode = iota
	// ModeContains is a case-insensitive substring match.
	ModeContains
)

// Fields lists the recognized keys in evaluation order, with their mode.
var Fields = []struct {
	Field Field
	Mode  Mode
}{
	{FieldCategory, ModeEqual},
	{FieldStock, ModeEqual},
	{FieldName, ModeContains},
	{FieldBrand, ModeContains},
	{FieldModel, ModeContains},
}

// queryAliases maps the accepted query keys onto fields. Spanish keys are
// what older clients send.
var queryAliases = map[Field][]string{
	FieldCategory: {"category", "categoria"},
	FieldStock:    {"stock", "existencia"},
	FieldName:     {"name", "nombre"},
	FieldBrand:    {"brand", "marca"},
	FieldModel:    {"model", "modelo"},
}

type Predicate struct {
	Field Field
	Mode  Mode
	Value string
}

// EquipmentFilter holds the optional keys. A blank key matches everything.
type EquipmentFilter struct {
	Category string
	Stock    string
	Name     string
	Brand    string
	Model    string
}

// FromQuery reads the filter from query parameters.
func FromQuery(values url.Values) EquipmentFilter {
	get := func(field Field) string {
		for _, key := range queryAliases[field] {
			if v := strings.TrimSpace(values.Get(key)); v != "" {
				return v
			}
		}
		return ""
	}
	return EquipmentFilter{
		Category: get(FieldCategory),
		Stock:    get(FieldStock),
		Name:     get(FieldName),
		Brand:    get(FieldBrand),
		Model:    get(FieldModel),
	}
}

func (f EquipmentFilter) value(field Field) string {
	switch field {
	case FieldCategory:
		return f.Category
	case FieldStock:
		return f.Stock
	case FieldName:
		return f.Name
	case FieldBrand:
		return f.Brand
	case FieldModel:
		return f.Model
	}
	return ""
}

// Predicates returns the non-blank keys as predicates, in Fields order.
func (f EquipmentFilter) Predicates() []Predicate {
	var out []Predicate
	for _, fm := range Fields {
		v := strings.TrimSpace(f.value(fm.Field))
		if v == "" {
			continue
		}
		out = append(out, Predicate{Field: fm.Field, Mode: fm.Mode, Value: v})
	}
	return out
}

func (f EquipmentFilter) IsEmpty() bool {
	return len(f.Predicates()) == 0
}

// Label names the filtered selection for report file names: the category
// when a known one is set, "filtered" otherwise.
func (f EquipmentFilter) Label() string {
	if c := constants.EquipmentCategory(strings.TrimSpace(f.Category)); c.Valid() {
		return string(c)
	}
	return "filtered"
}

// Match reports whether e satisfies every predicate.
func (f EquipmentFilter) Match(e *entities.Equipment) bool {
	for _, p := range f.Predicates() {
		if !p.Match(e) {
			return false
		}
	}
	return true
}

// Apply returns the matching items in their input order.
func (f EquipmentFilter) Apply(list []entities.Equipment) []entities.Equipment {
	preds := f.Predicates()
	if len(preds) == 0 {
		return list
	}
	out := make([]entities.Equipment, 0, len(list))
	for i := range list {
		ok := true
		for _, p := range preds {
			if !p.Match(&list[i]) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, list[i])
		}
	}
	return out
}

// ToSql adds the predicates to a query over the equipment table.
func (f EquipmentFilter) ToSql(b sq.SelectBuilder) sq.SelectBuilder {
	for _, p := range f.Predicates() {
		b = b.Where(p.Sqlizer())
	}
	return b
}

func (p Predicate) Match(e *entities.Equipment) bool {
	field, ok := fieldValue(e, p.Field)
	if !ok {
		return false
	}
	switch p.Mode {
	case ModeContains:
		return strings.Contains(strings.ToLower(field), strings.ToLower(p.Value))
	default:
		return field == p.Value
	}
}

func (p Predicate) Sqlizer() sq.Sqlizer {
	column := string(p.Field)
	if p.Field == FieldStock {
		column = "CAST(stock AS TEXT)"
	}
	if p.Mode == ModeContains {
		return sq.ILike{column: "%" + escapeLike(p.Value) + "%"}
	}
	return sq.Eq{column: p.Value}
}

// fieldValue returns false for a NULL column, which no predicate matches.
func fieldValue(e *entities.Equipment, field Field) (string, bool) {
	switch field {
	case FieldCategory:
		return string(e.Category), true
	case FieldStock:
		return strconv.Itoa(e.Stock), true
	case FieldName:
		return e.Name, true
	case FieldBrand:
		return e.Brand.String, e.Brand.Valid
	case FieldModel:
		return e.Model.String, e.Model.Valid
	}
	return "", false
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
