package constants

// Context keys set by middleware
const (
	ContextKeySubmission = "submission"
	ContextKeyRequestID  = "RequestID"
)
