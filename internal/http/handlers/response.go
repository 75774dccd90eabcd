// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities used across all
// endpoints. Every failure returns an ErrorResponse with a stable
// machine-readable `code` and a human-readable `message` localized to the
// language negotiated by the Locale middleware. failService() centralizes
// the mapping from service-layer errors to HTTP responses so all endpoints
// translate a given error the same way.
//
// Example error response:
//
//	HTTP/1.1 409 Conflict
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "class_full",
//	  "message": "This class is fully booked"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/phytolife/go-phyto-backend/internal/http/middleware"
	"github.com/phytolife/go-phyto-backend/internal/i18n"
	"github.com/phytolife/go-phyto-backend/internal/services"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Human-readable message in the negotiated language
	Message string `json:"message" example:"Resource not found"`
}

// fail aborts the request with a structured error. Server errors (>=500)
// are logged with the request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	resp := ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail(), for router-level handlers such as
// NoRoute.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// failT localizes the message for the given key before failing.
func failT(c *gin.Context, status int, code, msgKey string) {
	fail(c, status, code, i18n.T(middleware.LangFrom(c), msgKey))
}

// failService translates a service-layer error into an HTTP response. The
// mapping is exhaustive over the service error taxonomy; anything unknown
// is a 500 with its details kept out of the response body.
func failService(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotAuthenticated):
		failT(c, http.StatusUnauthorized, ErrCodeUnauthorized, i18n.MsgNotAuthenticated)
	case errors.Is(err, services.ErrForbidden):
		failT(c, http.StatusForbidden, ErrCodeForbidden, i18n.MsgForbidden)
	case errors.Is(err, services.ErrNotFound):
		failT(c, http.StatusNotFound, ErrCodeNotFound, i18n.MsgNotFound)
	case errors.Is(err, services.ErrClassFull):
		failT(c, http.StatusConflict, ErrCodeClassFull, i18n.MsgClassFull)
	case errors.Is(err, services.ErrClassUnavailable):
		failT(c, http.StatusGone, ErrCodeClassUnavailable, i18n.MsgClassUnavailable)
	case errors.Is(err, services.ErrInvalidCredentials):
		failT(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, i18n.MsgInvalidCredentials)
	case errors.Is(err, services.ErrEmailTaken):
		failT(c, http.StatusConflict, ErrCodeEmailTaken, i18n.MsgEmailTaken)
	case errors.Is(err, services.ErrWeakCredentials):
		failT(c, http.StatusBadRequest, ErrCodeWeakPassword, i18n.MsgWeakCredentials)
	case errors.Is(err, services.ErrTicketClosed):
		failT(c, http.StatusConflict, ErrCodeTicketClosed, i18n.MsgTicketClosed)
	case errors.Is(err, services.ErrAlreadyCancelled):
		failT(c, http.StatusConflict, ErrCodeConflict, i18n.MsgBadRequest)
	case errors.Is(err, services.ErrInvalidInput):
		failT(c, http.StatusBadRequest, ErrCodeBadRequest, i18n.MsgBadRequest)
	default:
		middleware.LoggerFrom(c).Error().Err(err).Msg("unhandled service error")
		failT(c, http.StatusInternalServerError, ErrCodeInternal, i18n.MsgInternal)
	}
}

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes an HTTP 204 No Content response.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
