package validation

import (
	"errors"
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Custom validator tags
const (
	TagPersonName  = "personname"
	TagPhoneDigits = "phonedigits"
	TagLeadEmail   = "leademail"
)

var (
	emailRegex      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	personNameRegex = regexp.MustCompile(`^[\p{L}\p{M}\s]+$`)
	phoneRegex      = regexp.MustCompile(`^[0-9]{10}$`)
)

// New returns a validator with the lead form tags registered
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators
func RegisterValidators(v *validator.Validate) {
	v.RegisterValidation(TagPersonName, validatePersonName)
	v.RegisterValidation(TagPhoneDigits, validatePhoneDigits)
	v.RegisterValidation(TagLeadEmail, validateEmail)
}

// validatePersonName accepts letters in any script and spaces. The tag
// parameter is the minimum length in characters, e.g. personname=4.
func validatePersonName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if !personNameRegex.MatchString(name) {
		return false
	}

	minLen := 1
	if p := fl.Param(); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			minLen = n
		}
	}
	return utf8.RuneCountInString(name) >= minLen
}

func validatePhoneDigits(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

func validateEmail(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

// tagOf returns the failing tag of a single-value validation error
func tagOf(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return validationErrors[0].Tag()
	}
	return ""
}
