package contactform_test

import (
	"strings"
	"testing"

	"quantumworks-backend/pkg/contactform"

	"github.com/stretchr/testify/assert"
)

func validFields() contactform.Fields {
	return contactform.Fields{
		Name:        "Jane",
		Email:       "jane@x.com",
		ProjectType: "Web Development",
		Message:     "Please build me a site",
	}
}

func TestValidateAcceptsCompleteForm(t *testing.T) {
	result := contactform.Validate(validFields())
	assert.True(t, result.Valid())
	assert.Empty(t, result)
}

func TestValidateReportsEveryField(t *testing.T) {
	result := contactform.Validate(contactform.Fields{
		Name:        "",
		Email:       "bad",
		ProjectType: "",
		Message:     "hi",
	})

	assert.Equal(t, contactform.ValidationResult{
		"name":        "Name is required",
		"email":       "Please enter a valid email",
		"projectType": "Please select a project type",
		"message":     "Message must be at least 10 characters",
	}, result)
}

func TestValidateName(t *testing.T) {
	for _, name := range []string{"", " ", "\t\n  "} {
		f := validFields()
		f.Name = name
		assert.Equal(t, "Name is required", contactform.Validate(f)["name"], "%q", name)
	}
}

func TestValidateEmail(t *testing.T) {
	cases := []struct {
		email string
		want  string
	}{
		{"", "Email is required"},
		{"   ", "Email is required"},
		{"a@b", "Please enter a valid email"},
		{"ab.co", "Please enter a valid email"},
		{"a @b.co", "Please enter a valid email"},
		{" a@b.co", "Please enter a valid email"},
		{"a@b.co", ""},
		{"jane.doe+site@mail.example.org", ""},
	}

	for _, tc := range cases {
		f := validFields()
		f.Email = tc.email
		got, has := contactform.Validate(f)["email"]
		if tc.want == "" {
			assert.False(t, has, "%q should pass, got %q", tc.email, got)
			continue
		}
		assert.Equal(t, tc.want, got, "%q", tc.email)
	}
}

func TestValidateMessageLength(t *testing.T) {
	t.Run("Should require a message", func(t *testing.T) {
		for _, msg := range []string{"", "     "} {
			f := validFields()
			f.Message = msg
			assert.Equal(t, "Message is required", contactform.Validate(f)["message"])
		}
	})

	t.Run("Should reject trimmed lengths 1 to 9", func(t *testing.T) {
		for n := 1; n <= 9; n++ {
			f := validFields()
			f.Message = "  " + strings.Repeat("x", n) + "  "
			assert.Equal(t, "Message must be at least 10 characters", contactform.Validate(f)["message"], "length %d", n)
		}
	})

	t.Run("Should accept 10 or more characters", func(t *testing.T) {
		for _, n := range []int{10, 11, 500} {
			f := validFields()
			f.Message = strings.Repeat("y", n)
			_, has := contactform.Validate(f)["message"]
			assert.False(t, has, "length %d", n)
		}
	})
}

func TestValidateIsIdempotent(t *testing.T) {
	f := contactform.Fields{Email: "nope", Message: "short"}

	first := contactform.Validate(f)
	second := contactform.Validate(f)

	assert.Equal(t, first, second)
	first["name"] = "mutated"
	assert.NotEqual(t, first, contactform.Validate(f), "results must not share state")
}
