package service

import "errors"

// Sentinel errors for the lead pipeline. Field problems are reported as
// *validation.FieldError.
var (
	ErrConsentRequired = errors.New("privacy notice not accepted")
	ErrTokenMissing    = errors.New("recaptcha token is required")
	ErrChallengeFailed = errors.New("recaptcha verification failed")
)
