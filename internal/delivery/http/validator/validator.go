// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	"fmt"
	"strings"

	"todoapp/internal/domain/entity"
	domainerrors "todoapp/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Validator validates request DTOs by their `validate` struct tags.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the custom tags used by the request DTOs registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// hexcolor in validator also accepts 3-digit and rgb() forms; categories only take #RRGGBB.
	_ = v.RegisterValidation("rrggbb", func(fl validator.FieldLevel) bool {
		return entity.IsValidColor(fl.Field().String())
	})
	_ = v.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
		_, ok := entity.ParsePriority(fl.Field().String())

		return ok
	})

	return &Validator{validate: v}
}

// Validate implements echo.Validator. Failures are reported as VALIDATION_FAILED
// with one "field: rule" entry per violated constraint.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return errors.WithStack(err)
	}

	details := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		details = append(details, describe(fe))
	}

	return domainerrors.ErrValidationFailed.WithDetails(strings.Join(details, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "rrggbb":
		return fmt.Sprintf("%s must be a #RRGGBB hex color", field)
	case "priority":
		return fmt.Sprintf("%s must be one of low, medium, high", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
