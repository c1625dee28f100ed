package sanitization

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/altai/formrelay/internal/models"
)

var (
	whitespaceRegex     = regexp.MustCompile(`\s+`)
	phoneSeparatorRegex = regexp.MustCompile(`[\s\-().]`)
)

// SanitizeString strips control characters, collapses runs of whitespace and trims.
func SanitizeString(input string) string {
	safe := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, input)

	safe = whitespaceRegex.ReplaceAllString(safe, " ")

	return strings.TrimSpace(safe)
}

// SanitizeEmail lower-cases and trims an email address
func SanitizeEmail(input string) string {
	return strings.ToLower(SanitizeString(input))
}

// SanitizePhone removes the separators people type into phone inputs and
// the Mexican country prefix, leaving the national number.
func SanitizePhone(input string) string {
	phone := phoneSeparatorRegex.ReplaceAllString(SanitizeString(input), "")
	if strings.HasPrefix(phone, "+52") {
		phone = phone[3:]
	}
	return phone
}

// SanitizeSubmission normalizes every string field of s in place.
func SanitizeSubmission(s *models.Submission) {
	s.FirstName = SanitizeString(s.FirstName)
	s.LastName = SanitizeString(s.LastName)
	s.Phone = SanitizePhone(s.Phone)
	s.Email = SanitizeEmail(s.Email)
	s.Fraccionamiento = SanitizeString(s.Fraccionamiento)
	s.Source = SanitizeString(s.Source)
	s.Subject = SanitizeString(s.Subject)
	s.RecaptchaToken = strings.TrimSpace(s.RecaptchaToken)
}
