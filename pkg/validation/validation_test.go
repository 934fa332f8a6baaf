package validation_test

import (
	"errors"
	"testing"

	"quantumworks-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Title       string `json:"title" validate:"not_blank"`
	ContactMail string `json:"contactMail" validate:"not_blank,email_shape"`
	Body        string `json:"body" validate:"not_blank,trimmed_min=5"`
	Ignored     string `json:"-"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	validation.RegisterValidators(v)
	validation.UseJSONNames(v)
	return v
}

func TestIsEmailShape(t *testing.T) {
	valid := []string{"a@b.co", "jane@x.com", "first.last@sub.domain.org", "weird+tag@d.io"}
	invalid := []string{"", "a@b", "@b.co", "a@.co", "a b@c.de", "a@b@c.de", "plain",
		"a\u00a0b@c.co", "a@b\u2003c.co", "a@b.c\u2028o", "a\ufeff@b.co", "a\vb@c.co"}

	for _, s := range valid {
		assert.True(t, validation.IsEmailShape(s), s)
	}
	for _, s := range invalid {
		assert.False(t, validation.IsEmailShape(s), s)
	}
}

func TestFieldErrors(t *testing.T) {
	v := newValidator()

	t.Run("Should use json names and generated messages", func(t *testing.T) {
		err := v.Struct(sample{Title: "  ", ContactMail: "nope", Body: " abc "})
		got := validation.FieldErrors(err, nil)

		assert.Equal(t, map[string]string{
			"title":       "Title is required",
			"contactMail": "Please enter a valid email",
			"body":        "Body must be at least 5 characters",
		}, got)
	})

	t.Run("Should prefer overrides keyed by field and tag", func(t *testing.T) {
		err := v.Struct(sample{Title: "ok", ContactMail: "", Body: "long enough"})
		got := validation.FieldErrors(err, validation.Messages{
			"contactMail.not_blank": "Email is required",
		})

		assert.Equal(t, map[string]string{"contactMail": "Email is required"}, got)
	})

	t.Run("Should return an empty map for nil", func(t *testing.T) {
		got := validation.FieldErrors(nil, nil)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("Should report non validation errors against the form", func(t *testing.T) {
		got := validation.FieldErrors(errors.New("boom"), nil)
		assert.Equal(t, map[string]string{"form": "boom"}, got)
	})
}

func TestTrimmedMinCountsCharacters(t *testing.T) {
	v := newValidator()

	// Five multi-byte characters satisfy trimmed_min=5
	err := v.Struct(sample{Title: "t", ContactMail: "a@b.co", Body: "ééééé"})
	assert.NoError(t, err)
}
