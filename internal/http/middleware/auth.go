// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file resolves the caller's identity from the Authorization header.
// Authentication is resolved once per request and stored in the Gin context;
// authorization decisions stay in the service layer, which receives the
// identity (or nil for anonymous) from the handlers.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/phytolife/go-phyto-backend/internal/i18n"
	"github.com/phytolife/go-phyto-backend/internal/services"
)

const (
	// ctxKeyIdentity stores the resolved *services.Identity.
	ctxKeyIdentity = "identity"
	// ctxKeyUserID mirrors the identity's ID for logging and rate limiting.
	ctxKeyUserID = "userID"
)

// Authenticate resolves a "Bearer <token>" Authorization header to the
// caller's identity. Missing, malformed, unknown, and expired tokens all
// leave the request anonymous rather than failing it: endpoints that need a
// caller reject anonymous access themselves, so public reads stay reachable
// without a header. Only a store failure aborts with 500.
func Authenticate(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.Next()
			return
		}

		ident, err := auth.Identify(c.Request.Context(), token)
		if err != nil {
			LoggerFrom(c).Error().Err(err).Msg("identity lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"request_id": c.Writer.Header().Get(requestIDHeader),
				"code":       "internal_error",
				"message":    i18n.T(LangFrom(c), i18n.MsgInternal),
			})
			return
		}
		if ident != nil {
			c.Set(ctxKeyIdentity, ident)
			c.Set(ctxKeyUserID, ident.ID)
		}
		c.Next()
	}
}

// IdentityFrom returns the authenticated caller, or nil for anonymous.
func IdentityFrom(c *gin.Context) *services.Identity {
	if v, ok := c.Get(ctxKeyIdentity); ok {
		if ident, ok := v.(*services.Identity); ok {
			return ident
		}
	}
	return nil
}

// bearerToken extracts the credential from an Authorization header value.
// The scheme comparison is case-insensitive per RFC 7235.
func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
