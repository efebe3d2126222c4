package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors converts validator errors into messages keyed by JSON path,
// e.g. "educations[0].degree". Non-validation errors are reported under "_".
func FieldErrors(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		out["_"] = err.Error()
		return out
	}

	for _, e := range validationErrors {
		path := fieldPath(e.Namespace())
		if _, exists := out[path]; !exists {
			out[path] = formatSingleError(e)
		}
	}
	return out
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, fmt.Sprintf("%s: %s", fieldPath(e.Namespace()), formatSingleError(e)))
	}
	return messages
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	param := e.Param()

	switch e.Tag() {
	case "required":
		return "is required"

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("must be at least %s characters", param)
		}
		if k := e.Kind().String(); k == "slice" || k == "array" {
			return fmt.Sprintf("must contain at least %s item(s)", param)
		}
		return fmt.Sprintf("must be at least %s", param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("must be at most %s characters", param)
		}
		if k := e.Kind().String(); k == "slice" || k == "array" {
			return fmt.Sprintf("must contain at most %s item(s)", param)
		}
		return fmt.Sprintf("must be at most %s", param)

	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", param)

	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", param)

	case "len":
		return fmt.Sprintf("must be exactly %s characters", param)

	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.Join(strings.Fields(param), ", "))

	case "email":
		return "must be a valid email address"

	case "url":
		return "must be a valid URL"

	case "datetime":
		return "must be a date in YYYY-MM-DD format"

	case "valid_name":
		return "may only contain letters, digits, spaces and . ' - /"

	case "valid_phone":
		return "must be a valid phone number"

	case "no_emoji":
		return "must not contain emoji or special symbols"

	case "not_future_date":
		return "must not be in the future"

	default:
		return fmt.Sprintf("failed %s validation", e.Tag())
	}
}
