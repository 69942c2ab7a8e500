package validation

import (
	"github.com/go-playground/validator/v10"
)

// Validator is the echo.Validator for request DTOs and imported rows.
type Validator struct {
	validate *validator.Validate
}

// New builds the validator used by echo: null types are unwrapped and the
// inventory rules are registered. A registration failure is a programming
// error, so it panics.
func New() *Validator {
	v := validator.New()

	registerNullTypes(v)

	if err := registerRules(v); err != nil {
		panic("failed to register validation rules: " + err.Error())
	}

	return &Validator{validate: v}
}

func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
