package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// seatIDPattern matches a row letter plus a 1-26 numeric suffix: A1..Z26.
var seatIDPattern = regexp.MustCompile(`^[A-Z](?:[1-9]|1[0-9]|2[0-6])$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// seatid tag for booking payloads; the reservation engine re-checks the
	// shape itself because it gates the double-booking invariant.
	_ = v.RegisterValidation("seatid", func(fl validator.FieldLevel) bool {
		return seatIDPattern.MatchString(fl.Field().String())
	})
	return v
}

// IsValidSeatID reports whether s has the <Letter><1-26> seat label shape.
func IsValidSeatID(s string) bool {
	return seatIDPattern.MatchString(s)
}

func ValidateStruct(data interface{}) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, err := range validationErrors {
			errors[err.Field()] = getSimpleErrorMessage(err)
		}
	}

	return errors
}

func getSimpleErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "seatid":
		return "Invalid seat label, expected letter plus number like A1"
	case "datetime":
		return "Invalid date, expected YYYY-MM-DD"
	case "min":
		return fmt.Sprintf("Minimum is %s", err.Param())
	case "max":
		return fmt.Sprintf("Maximum is %s", err.Param())
	default:
		return fmt.Sprintf("Invalid value (%s)", err.Tag())
	}
}

func FormatValidationErrors(errs map[string]string) string {
	if len(errs) == 0 {
		return ""
	}

	parts := make([]string, 0, len(errs))
	for field, msg := range errs {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(parts, "; ")
}
