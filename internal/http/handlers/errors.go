// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes the symbolic error codes mapped to HTTP responses
// via the fail() helpers. Codes are lowercase snake_case; generic codes
// mirror HTTP status semantics, and domain-specific codes cover booking and
// account outcomes that a status alone cannot convey. Clients branch on the
// code; the localized message is for display only.
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeForbidden        = "forbidden"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:
	ErrCodeClassFull          = "class_full"
	ErrCodeClassUnavailable   = "class_unavailable"
	ErrCodeInvalidCredentials = "invalid_credentials"
	ErrCodeEmailTaken         = "email_taken"
	ErrCodeWeakPassword       = "weak_password"
	ErrCodeTicketClosed       = "ticket_closed"
)
