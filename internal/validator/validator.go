package validator

import (
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/rehber-app/anket-client/internal/models"
)

// Validator wraps the struct validator with the custom tags used by requests
// leaving this client.
type Validator struct {
	structValidator *validator.Validate
}

func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{structValidator: structValidator}
}

// ValidateStruct validates struct tags and returns the raw validator error.
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate validates struct tags and converts failures into ValidationErrors.
func (v *Validator) Validate(s interface{}) error {
	if err := v.ValidateStruct(s); err != nil {
		if errs := ToValidationErrors(err); len(errs) > 0 {
			return errs
		}
		return err
	}
	return nil
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("class_label", validateClassLabel)
	validate.RegisterValidation("user_role", validateUserRole)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Class labels are compared verbatim downstream, so only blank or oversized
// labels are refused here.
func validateClassLabel(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return strings.TrimSpace(value) != "" && utf8.RuneCountInString(value) <= 20
}

func validateUserRole(fl validator.FieldLevel) bool {
	switch models.UserRole(fl.Field().String()) {
	case models.RoleAdmin, models.RoleGuide, models.RoleStudent:
		return true
	}
	return false
}
