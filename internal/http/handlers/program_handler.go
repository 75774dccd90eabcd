// Diet program HTTP handlers.
//
// This file exposes the program catalog and the purchase endpoint:
//   - GET    /programs
//   - GET    /programs/:id
//   - POST   /programs/:id/purchase
//   - POST   /admin/programs, PUT/DELETE /admin/programs/:id
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/phytolife/go-phyto-backend/internal/domain"
	"github.com/phytolife/go-phyto-backend/internal/http/middleware"
	"github.com/phytolife/go-phyto-backend/internal/i18n"
	"github.com/phytolife/go-phyto-backend/internal/services"
)

// DietProgramRequest is the JSON payload for creating a program.
type DietProgramRequest struct {
	Title       domain.LocalizedText       `json:"title" binding:"required"`
	Description domain.LocalizedText       `json:"description" binding:"required"`
	Price       float64                    `json:"price"`
	Image       string                     `json:"image"`
	Duration    string                     `json:"duration"`
	Features    domain.LocalizedStringList `json:"features"`
}

// DietProgramPatch is the JSON payload for a partial update.
type DietProgramPatch struct {
	Title       *domain.LocalizedText       `json:"title"`
	Description *domain.LocalizedText       `json:"description"`
	Price       *float64                    `json:"price"`
	Image       *string                     `json:"image"`
	Duration    *string                     `json:"duration"`
	Features    *domain.LocalizedStringList `json:"features"`
}

// PurchaseResponse confirms a recorded purchase with a localized status
// message for display.
type PurchaseResponse struct {
	Purchase *domain.Purchase `json:"purchase"`
	Message  string           `json:"message"`
}

// ListDietPrograms returns the program catalog, newest first.
func (h *Handlers) ListDietPrograms(c *gin.Context) {
	programs, err := h.catalog.ListDietPrograms(c.Request.Context())
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"programs": programs})
}

// GetDietProgram returns one program by ID.
func (h *Handlers) GetDietProgram(c *gin.Context) {
	program, err := h.catalog.GetDietProgram(c.Request.Context(), c.Param("id"))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, program)
}

// PurchaseProgram records a purchase of the program for the caller.
func (h *Handlers) PurchaseProgram(c *gin.Context) {
	purchase, err := h.catalog.PurchaseProgram(c.Request.Context(), identity(c), c.Param("id"))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, PurchaseResponse{
		Purchase: purchase,
		Message:  i18n.T(middleware.LangFrom(c), i18n.MsgPurchaseConfirmed),
	})
}

// CreateDietProgram inserts a program; admin only.
func (h *Handlers) CreateDietProgram(c *gin.Context) {
	var req DietProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failT(c, http.StatusBadRequest, ErrCodeBadRequest, i18n.MsgBadRequest)
		return
	}

	program, err := h.catalog.CreateDietProgram(c.Request.Context(), identity(c), &domain.DietProgram{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Duration:    req.Duration,
		Features:    req.Features,
	})
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, program)
}

// UpdateDietProgram applies a partial edit; admin only.
func (h *Handlers) UpdateDietProgram(c *gin.Context) {
	var req DietProgramPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		failT(c, http.StatusBadRequest, ErrCodeBadRequest, i18n.MsgBadRequest)
		return
	}

	program, err := h.catalog.UpdateDietProgram(c.Request.Context(), identity(c), c.Param("id"), services.DietProgramUpdate{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Duration:    req.Duration,
		Features:    req.Features,
	})
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, program)
}

// DeleteDietProgram removes a program; admin only.
func (h *Handlers) DeleteDietProgram(c *gin.Context) {
	if err := h.catalog.DeleteDietProgram(c.Request.Context(), identity(c), c.Param("id")); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}
