package contactform

import (
	"quantumworks-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// Field names, as used in form bodies, JSON and ValidationResult keys.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldProjectType = "projectType"
	FieldMessage     = "message"
	// FieldSubmit keys the submission failure message in ValidationResult.
	FieldSubmit = "submit"
)

// MinMessageLength is the minimum trimmed message length in characters.
const MinMessageLength = 10

// Fields holds the user-editable values of the contact form.
type Fields struct {
	Name        string `json:"name" form:"name" validate:"not_blank"`
	Email       string `json:"email" form:"email" validate:"not_blank,email_shape"`
	ProjectType string `json:"projectType" form:"projectType" validate:"required"`
	Message     string `json:"message" form:"message" validate:"not_blank,trimmed_min=10"`
}

// ValidationResult maps a field name to its error message. Empty means valid.
type ValidationResult map[string]string

// Valid reports whether the result carries no errors.
func (r ValidationResult) Valid() bool { return len(r) == 0 }

var messages = validation.Messages{
	"name.not_blank":       "Name is required",
	"email.not_blank":      "Email is required",
	"email.email_shape":    "Please enter a valid email",
	"projectType.required": "Please select a project type",
	"message.not_blank":    "Message is required",
	"message.trimmed_min":  "Message must be at least 10 characters",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	validation.RegisterValidators(v)
	validation.UseJSONNames(v)
	return v
}

// Validate checks every field and returns the full error set. It has no side
// effects and is safe for concurrent use.
func Validate(f Fields) ValidationResult {
	return ValidationResult(validation.FieldErrors(validate.Struct(f), messages))
}
