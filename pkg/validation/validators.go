package validation

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// Permissive shape check: something@something.something. Whitespace
	// covers the Unicode separators too, not only ASCII \s.
	emailShapeRegex = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("not_blank", NotBlank)
	_ = v.RegisterValidation("email_shape", EmailShape)
	_ = v.RegisterValidation("trimmed_min", TrimmedMin)
}

// IsEmailShape reports whether s looks like local@domain.tld
func IsEmailShape(s string) bool {
	return emailShapeRegex.MatchString(s)
}

// NotBlank fails for strings that are empty after trimming whitespace
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// EmailShape validates the loose email pattern. Emptiness is left to
// not_blank/required so the two produce distinct messages.
func EmailShape(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return IsEmailShape(val)
}

// TrimmedMin counts characters after trimming, e.g. trimmed_min=10
func TrimmedMin(fl validator.FieldLevel) bool {
	min, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= min
}
