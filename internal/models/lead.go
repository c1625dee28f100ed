package models

import (
	"encoding/json"
	"net/url"
	"strconv"
)

// Inbound field keys as posted by the website form. The 00N… keys are
// Salesforce custom field ids and are forwarded under the same name.
const (
	FieldFirstName       = "first_name"
	FieldLastName        = "last_name"
	FieldPhone           = "phone"
	FieldEmail           = "email"
	FieldFraccionamiento = "00N3l00000Q7A54"
	FieldSource          = "00N3l00000Q7A57"
	FieldSubject         = "00N3l00000Q7A4k"
	FieldConsent         = "aviso"
	FieldRecaptcha       = "g-recaptcha-response"
)

// Submission is one lead form post. It lives for a single request.
type Submission struct {
	FirstName       string
	LastName        string
	Phone           string
	Email           string
	Fraccionamiento string
	Source          string
	Subject         string

	// Consent keeps the raw decoded value: a JSON bool stays a bool so that
	// only true, "true" and "on" are accepted.
	Consent any

	RecaptchaToken string
}

// SubmissionFromMap builds a Submission from a decoded JSON object.
func SubmissionFromMap(body map[string]any) *Submission {
	return &Submission{
		FirstName:       stringValue(body[FieldFirstName]),
		LastName:        stringValue(body[FieldLastName]),
		Phone:           stringValue(body[FieldPhone]),
		Email:           stringValue(body[FieldEmail]),
		Fraccionamiento: stringValue(body[FieldFraccionamiento]),
		Source:          stringValue(body[FieldSource]),
		Subject:         stringValue(body[FieldSubject]),
		Consent:         body[FieldConsent],
		RecaptchaToken:  stringValue(body[FieldRecaptcha]),
	}
}

// SubmissionFromValues builds a Submission from url-encoded or multipart form values.
func SubmissionFromValues(values url.Values) *Submission {
	s := &Submission{
		FirstName:       values.Get(FieldFirstName),
		LastName:        values.Get(FieldLastName),
		Phone:           values.Get(FieldPhone),
		Email:           values.Get(FieldEmail),
		Fraccionamiento: values.Get(FieldFraccionamiento),
		Source:          values.Get(FieldSource),
		Subject:         values.Get(FieldSubject),
		RecaptchaToken:  values.Get(FieldRecaptcha),
	}
	if values.Has(FieldConsent) {
		s.Consent = values.Get(FieldConsent)
	}
	return s
}

// Value returns the string value of an inbound field key.
func (s *Submission) Value(field string) string {
	switch field {
	case FieldFirstName:
		return s.FirstName
	case FieldLastName:
		return s.LastName
	case FieldPhone:
		return s.Phone
	case FieldEmail:
		return s.Email
	case FieldFraccionamiento:
		return s.Fraccionamiento
	case FieldSource:
		return s.Source
	case FieldSubject:
		return s.Subject
	case FieldRecaptcha:
		return s.RecaptchaToken
	}
	return ""
}

// ConsentAccepted reports whether the privacy notice was accepted.
func (s *Submission) ConsentAccepted() bool {
	return IsConsentValue(s.Consent)
}

// IsConsentValue is the checkbox truth test: boolean true, "true" or "on".
func IsConsentValue(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true" || t == "on"
	}
	return false
}

func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "true"
		}
	}
	return ""
}
