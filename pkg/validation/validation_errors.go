package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Messages overrides the generated message for a "field.tag" pair,
// e.g. "email.email_shape" -> "Please enter a valid email".
type Messages map[string]string

// UseJSONNames makes FieldError.Field() report the json tag name instead of
// the Go struct field name.
func UseJSONNames(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
}

// FieldErrors converts validator.ValidationErrors into a field -> message map.
// A nil error yields an empty (non-nil) map.
func FieldErrors(err error, overrides Messages) map[string]string {
	out := make(map[string]string)
	if err == nil {
		return out
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, report it against the whole form
		out["form"] = err.Error()
		return out
	}

	for _, e := range validationErrors {
		field := e.Field()
		if _, seen := out[field]; seen {
			continue
		}
		if msg, ok := overrides[field+"."+e.Tag()]; ok {
			out[field] = msg
			continue
		}
		out[field] = formatSingleError(e)
	}
	return out
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := formatCamelCase(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required", "not_blank":
		return fmt.Sprintf("%s is required", label)
	case "min", "trimmed_min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at least %s", label, param)
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at most %s", label, param)
	case "email", "email_shape":
		return "Please enter a valid email"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(param, " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

// formatCamelCase converts "projectType" to "Project type"
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		switch {
		case i == 0:
			result.WriteString(strings.ToUpper(string(r)))
		case r >= 'A' && r <= 'Z':
			result.WriteRune(' ')
			result.WriteString(strings.ToLower(string(r)))
		default:
			result.WriteRune(r)
		}
	}
	return result.String()
}
