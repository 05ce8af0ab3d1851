package errors

// Error codes for standardized error responses
const (
	ErrCodeSessionNotFound = "session_not_found"
	ErrCodeStorageError    = "storage_error"
)
