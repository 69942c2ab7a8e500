package validation

import (
	"reflect"

	"github.com/go-playground/validator/v10"

	"inventory-system/pkg/constants"
	"inventory-system/pkg/utils"
)

// registerRules registers the tags used in DTO struct tags.
func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("equipment_category", isEquipmentCategory); err != nil {
		return err
	}
	if err := v.RegisterValidation("equipment_status", isEquipmentStatus); err != nil {
		return err
	}
	if err := v.RegisterValidation("document_type", isDocumentType); err != nil {
		return err
	}
	if err := v.RegisterValidation("date_only", isDateOnly); err != nil {
		return err
	}
	return nil
}

func stringValue(fl validator.FieldLevel) (string, bool) {
	f := fl.Field()
	if f.Kind() == reflect.Ptr {
		if f.IsNil() {
			return "", false
		}
		f = f.Elem()
	}
	if f.Kind() != reflect.String {
		return "", false
	}
	return f.String(), true
}

func isEquipmentCategory(fl validator.FieldLevel) bool {
	s, ok := stringValue(fl)
	return ok && constants.EquipmentCategory(s).Valid()
}

func isEquipmentStatus(fl validator.FieldLevel) bool {
	s, ok := stringValue(fl)
	return ok && constants.EquipmentStatus(s).Valid()
}

func isDocumentType(fl validator.FieldLevel) bool {
	s, ok := stringValue(fl)
	return ok && constants.DocumentType(s).Valid()
}

// isDateOnly accepts what utils.ParseDate accepts; blank passes so that
// clearing a date stays possible.
func isDateOnly(fl validator.FieldLevel) bool {
	s, ok := stringValue(fl)
	if !ok || s == "" {
		return true
	}
	_, err := utils.ParseDate(s)
	return err == nil
}
