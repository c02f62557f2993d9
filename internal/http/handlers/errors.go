// Package handlers defines the HTTP-layer error codes used across all API
// endpoints. Codes are stable, lowercase snake_case strings passed to the
// fail() helper so clients can branch programmatically instead of matching
// message text.
//
// Generic codes mirror common HTTP semantics; the credential and upstream
// codes carry the precise denial/failure sub-reason required by the error
// taxonomy.
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeForbidden        = "forbidden"
	ErrCodeNotFound         = "not_found"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeInternal         = "internal_error"

	// Input validation:
	ErrCodeNumberRequired = "number_required"
	ErrCodeInvalidFormat  = "invalid_format"

	// Credential denials (HTTP 401):
	ErrCodeKeyMissing    = "key_missing"
	ErrCodeAccessDenied  = "access_denied"
	ErrCodeKeyExpired    = "key_expired"
	ErrCodeKeyInactive   = "key_inactive"
	ErrCodeQuotaExceeded = "daily_limit_exceeded"

	// Upstream failure (HTTP 500):
	ErrCodeUpstreamFailed = "upstream_failed"
)
