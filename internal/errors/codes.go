package errors

import "net/http"

// ErrorCode identifies an API error category in machine-readable form.
type ErrorCode string

const (
	// Auth
	CodeUnauthorized       ErrorCode = "unauthorized"
	CodeInvalidCredentials ErrorCode = "invalid_credentials"
	CodeEmailTaken         ErrorCode = "email_taken"
	CodeTokenExpired       ErrorCode = "token_expired"

	// Resources
	CodePostNotFound         ErrorCode = "post_not_found"
	CodeProfileNotFound      ErrorCode = "profile_not_found"
	CodeMarketNotFound       ErrorCode = "market_not_found"
	CodeConnectionNotFound   ErrorCode = "connection_not_found"
	CodeNotificationNotFound ErrorCode = "notification_not_found"

	// Validation
	CodeValidationFailed ErrorCode = "validation_failed"
	CodeInvalidRequest   ErrorCode = "invalid_request"

	// Conflicts
	CodeAlreadyConnected ErrorCode = "already_connected"

	// Infrastructure
	CodeInternalError    ErrorCode = "internal_error"
	CodeRateLimited      ErrorCode = "rate_limited"
	CodeStoreUnavailable ErrorCode = "store_unavailable"
)

// StatusCodeMap maps error codes to HTTP status codes.
var StatusCodeMap = map[ErrorCode]int{
	CodeUnauthorized:       http.StatusUnauthorized,
	CodeInvalidCredentials: http.StatusUnauthorized,
	CodeTokenExpired:       http.StatusUnauthorized,
	CodeEmailTaken:         http.StatusConflict,

	CodePostNotFound:         http.StatusNotFound,
	CodeProfileNotFound:      http.StatusNotFound,
	CodeMarketNotFound:       http.StatusNotFound,
	CodeConnectionNotFound:   http.StatusNotFound,
	CodeNotificationNotFound: http.StatusNotFound,

	CodeValidationFailed: http.StatusBadRequest,
	CodeInvalidRequest:   http.StatusBadRequest,

	CodeAlreadyConnected: http.StatusConflict,

	CodeInternalError:    http.StatusInternalServerError,
	CodeRateLimited:      http.StatusTooManyRequests,
	CodeStoreUnavailable: http.StatusServiceUnavailable,
}

// StatusFor returns the HTTP status for a code, defaulting to 500.
func StatusFor(code ErrorCode) int {
	if status, ok := StatusCodeMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
