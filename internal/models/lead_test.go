package models

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsConsentValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"bool true", true, true},
		{"string true", "true", true},
		{"string on", "on", true},
		{"bool false", false, false},
		{"string false", "false", false},
		{"upper case true", "TRUE", false},
		{"yes", "yes", false},
		{"empty string", "", false},
		{"number one", float64(1), false},
		{"json number one", json.Number("1"), false},
		{"absent", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsConsentValue(tt.value))
		})
	}
}

func TestSubmissionFromMap(t *testing.T) {
	dec := json.NewDecoder(strings.NewReader(`{
		"first_name": "José",
		"last_name": "Pérez",
		"phone": 5512345678,
		"email": "jose@example.com",
		"00N3l00000Q7A54": "Altai",
		"aviso": true,
		"g-recaptcha-response": "tok"
	}`))
	dec.UseNumber()
	var body map[string]any
	require.NoError(t, dec.Decode(&body))

	s := SubmissionFromMap(body)
	assert.Equal(t, "José", s.FirstName)
	assert.Equal(t, "Pérez", s.LastName)
	assert.Equal(t, "5512345678", s.Phone)
	assert.Equal(t, "Altai", s.Fraccionamiento)
	assert.Empty(t, s.Source)
	assert.Equal(t, "tok", s.RecaptchaToken)
	assert.True(t, s.ConsentAccepted())
}

func TestSubmissionFromValues(t *testing.T) {
	values := url.Values{}
	values.Set(FieldFirstName, "Ana")
	values.Set(FieldEmail, "ana@example.com")
	values.Set(FieldSubject, "Informes")
	values.Set(FieldConsent, "on")

	s := SubmissionFromValues(values)
	assert.Equal(t, "Ana", s.Value(FieldFirstName))
	assert.Equal(t, "ana@example.com", s.Value(FieldEmail))
	assert.Equal(t, "Informes", s.Value(FieldSubject))
	assert.Equal(t, "on", s.Consent)
	assert.True(t, s.ConsentAccepted())

	delete(values, FieldConsent)
	assert.Nil(t, SubmissionFromValues(values).Consent)
}

func TestFormProfileRequiredFields(t *testing.T) {
	profiles := DefaultProfiles("https://example.com/doc.pdf", 4)
	require.Len(t, profiles, 2)

	download, contact := profiles[0], profiles[1]
	assert.Equal(t, []string{FieldFirstName, FieldLastName, FieldPhone, FieldEmail}, download.RequiredFields())
	assert.Equal(t, []string{FieldFirstName, FieldPhone, FieldEmail}, contact.RequiredFields())
	assert.Equal(t, "https://example.com/doc.pdf", download.DocumentURL)
	assert.Empty(t, contact.DocumentURL)
	assert.Equal(t, "Formulario enviado correctamente", contact.Message())
}
