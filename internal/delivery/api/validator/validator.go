// Package validator wires go-playground/validator into echo.
package validator

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	domainerrors "storerate/internal/domain/errors"
)

// RequestValidator adapts go-playground/validator to echo's Validator interface.
type RequestValidator struct {
	validate *validator.Validate
}

// New builds the request validator with the custom password rule registered.
func New() *RequestValidator {
	validate := validator.New()

	// Password policy: 8-16 characters with at least one uppercase letter
	// and one special character.
	_ = validate.RegisterValidation("user_password", validPassword)

	return &RequestValidator{validate: validate}
}

// Validate implements echo.Validator. Field-level failures surface as a
// VALIDATION_FAILED error carrying the offending fields.
func (v *RequestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	if fieldErrors, ok := err.(validator.ValidationErrors); ok {
		fields := make([]string, 0, len(fieldErrors))
		for _, fieldError := range fieldErrors {
			fields = append(fields, fieldError.Field())
		}

		return domainerrors.NewBaseError(
			domainerrors.ErrValidationFailed.HTTPCode(),
			domainerrors.ErrValidationFailed.ErrorCode(),
			"validation failed on fields: "+strings.Join(fields, ", "),
			"",
		)
	}

	return err
}

func validPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 || len(password) > 16 {
		return false
	}

	var hasUpper, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			hasSpecial = true
		}
	}

	return hasUpper && hasSpecial
}
