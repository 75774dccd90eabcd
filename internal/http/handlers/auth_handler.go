// Account HTTP handlers.
//
// This file exposes the authentication endpoints:
//   - POST   /auth/signup
//   - POST   /auth/signin
//   - POST   /auth/signout
//   - GET    /auth/me
//   - PUT    /admin/users/:id/role
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/phytolife/go-phyto-backend/internal/domain"
	"github.com/phytolife/go-phyto-backend/internal/i18n"
)

// SignUpRequest is the JSON payload for registering an account.
type SignUpRequest struct {
	Email    string `json:"email" binding:"required" example:"nigar@example.com"`
	Password string `json:"password" binding:"required" example:"s3cret-pass"`
	Name     string `json:"name" binding:"required" example:"Nigar Aliyeva"`
}

// SignInRequest is the JSON payload for authenticating.
type SignInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SessionResponse carries the bearer token and the profile it belongs to.
type SessionResponse struct {
	Token   string          `json:"token"`
	Profile *domain.Profile `json:"profile"`
}

// SetRoleRequest toggles another account's admin flag.
type SetRoleRequest struct {
	IsAdmin *bool `json:"is_admin" binding:"required"`
}

// SignUp registers a new account and returns an open session.
func (h *Handlers) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failT(c, http.StatusBadRequest, ErrCodeBadRequest, i18n.MsgBadRequest)
		return
	}

	profile, token, err := h.account.SignUp(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, SessionResponse{Token: token, Profile: profile})
}

// SignIn authenticates an email/password pair and returns an open session.
func (h *Handlers) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failT(c, http.StatusBadRequest, ErrCodeBadRequest, i18n.MsgBadRequest)
		return
	}

	profile, token, err := h.account.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, SessionResponse{Token: token, Profile: profile})
}

// SignOut invalidates the presented bearer token. It always succeeds from
// the client's point of view, including for anonymous callers.
func (h *Handlers) SignOut(c *gin.Context) {
	h.account.SignOut(c.Request.Context(), bearerToken(c))
	noContent(c)
}

// Me returns the authenticated caller's identity.
func (h *Handlers) Me(c *gin.Context) {
	ident := identity(c)
	if ident == nil {
		failT(c, http.StatusUnauthorized, ErrCodeUnauthorized, i18n.MsgNotAuthenticated)
		return
	}
	ok(c, http.StatusOK, ident)
}

// SetRole grants or revokes admin rights on an account; admin only.
func (h *Handlers) SetRole(c *gin.Context) {
	var req SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsAdmin == nil {
		failT(c, http.StatusBadRequest, ErrCodeBadRequest, i18n.MsgBadRequest)
		return
	}
	if err := h.account.SetAdmin(c.Request.Context(), identity(c), c.Param("id"), *req.IsAdmin); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}

// bearerToken extracts the raw credential from the Authorization header.
func bearerToken(c *gin.Context) string {
	const prefix = "bearer "
	header := c.GetHeader("Authorization")
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
