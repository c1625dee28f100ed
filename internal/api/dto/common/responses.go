package common

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// HealthResponse is returned by the health check
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// User-facing error messages, in the language of the site
const (
	MsgInternalError    = "Error interno del servidor"
	MsgConsentRequired  = "Debes aceptar el aviso de privacidad."
	MsgTokenMissing     = "No reCAPTCHA token"
	MsgChallengeFailed  = "reCAPTCHA inválido"
	MsgMethodNotAllowed = "Method Not Allowed"
	MsgNotFound         = "Not Found"
	MsgTooManyRequests  = "Demasiadas solicitudes. Intenta de nuevo más tarde."
	MsgBodyTooLarge     = "Request body too large"
)

// NewErrorResponse creates a new error body
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// NewFieldErrorResponse creates an error body naming the offending field
func NewFieldErrorResponse(field, message string) ErrorResponse {
	return ErrorResponse{Error: message, Field: field}
}
