package models

// Profile names
const (
	ProfileDownload = "enviarYDescargar"
	ProfileContact  = "contacto"
)

const defaultSuccessMessage = "Formulario enviado correctamente"

// FormProfile is one configured variant of the lead relay. Variants differ
// only in their routes, which fields are mandatory and whether a document
// link comes back.
type FormProfile struct {
	Name            string
	Paths           []string
	RequireLastName bool
	NameMinLength   int
	DocumentURL     string
	SuccessMessage  string
}

// RequiredFields lists the mandatory inbound fields in the order they are
// reported when missing.
func (p FormProfile) RequiredFields() []string {
	fields := []string{FieldFirstName}
	if p.RequireLastName {
		fields = append(fields, FieldLastName)
	}
	return append(fields, FieldPhone, FieldEmail)
}

// Message returns the success message, falling back to the default one.
func (p FormProfile) Message() string {
	if p.SuccessMessage == "" {
		return defaultSuccessMessage
	}
	return p.SuccessMessage
}

// DefaultProfiles returns the forms served by the site: the brochure
// download form and the plain contact form.
func DefaultProfiles(documentURL string, nameMinLength int) []FormProfile {
	return []FormProfile{
		{
			Name:            ProfileDownload,
			Paths:           []string{"/enviarYDescargar", "/.netlify/functions/enviarYDescargar"},
			RequireLastName: true,
			NameMinLength:   nameMinLength,
			DocumentURL:     documentURL,
		},
		{
			Name:          ProfileContact,
			Paths:         []string{"/contacto"},
			NameMinLength: nameMinLength,
		},
	}
}
