// Package validator adapts go-playground/validator to echo's Validator interface
// and translates failures into the domain error catalogue.
package validator

import (
	"reflect"
	"strings"

	"erp/internal/domain/entity"
	domainerrors "erp/internal/domain/errors"
	"erp/internal/domain/service"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

const (
	tagUsername         = "username"
	tagPasswordStrength = "password_strength"
)

// RequestValidator implements echo.Validator.
type RequestValidator struct {
	validate *validator.Validate
	hasher   service.PasswordHasher
}

// New registers the custom `username` and `password_strength` tags. The
// password policy is the hasher's, so the API and the usecases agree on it.
func New(hasher service.PasswordHasher) *RequestValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	_ = validate.RegisterValidation(tagUsername, func(fl validator.FieldLevel) bool {
		return entity.ValidateUsername(fl.Field().String()) == nil
	})
	_ = validate.RegisterValidation(tagPasswordStrength, func(fl validator.FieldLevel) bool {
		return hasher.ValidatePasswordStrength(fl.Field().String()) == nil
	})

	return &RequestValidator{validate: validate, hasher: hasher}
}

// Validate checks i and returns an AppError describing the first failing field.
func (v *RequestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails(err.Error()))
	}

	fieldErr := fieldErrs[0]
	if fieldErr.Tag() == tagPasswordStrength {
		if strengthErr := v.hasher.ValidatePasswordStrength(stringValue(fieldErr.Value())); strengthErr != nil {
			return strengthErr
		}
	}

	return domainerrors.ErrValidationFailed.WithDetails(describe(fieldErr))
}

func describe(fieldErr validator.FieldError) string {
	field := fieldErr.Field()
	switch fieldErr.Tag() {
	case "required":
		return field + " is required"
	case tagUsername:
		return field + ": " + entity.ErrInvalidUsername.Error()
	case "email":
		return field + " must be a valid email address"
	case "min":
		return field + " must be at least " + fieldErr.Param()
	case "max":
		return field + " must be at most " + fieldErr.Param()
	case "gt":
		return field + " must be greater than " + fieldErr.Param()
	case "gte":
		return field + " must be greater than or equal to " + fieldErr.Param()
	default:
		return field + " failed the " + fieldErr.Tag() + " check"
	}
}

func stringValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case *string:
		if v != nil {
			return *v
		}
	}

	return ""
}

// jsonFieldName reports fields by their JSON name rather than the Go name.
func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return field.Name
	}

	return name
}
