// Live class HTTP handlers.
//
// This file exposes the class schedule and the booking endpoints:
//   - GET    /classes
//   - GET    /classes/:id
//   - POST   /classes/:id/tickets
//   - DELETE /tickets/:id
//   - POST   /admin/classes, PUT/DELETE /admin/classes/:id
//
// Listed classes carry a derived "state" (open, full, expired) computed at
// response time, so clients never need the server clock.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/phytolife/go-phyto-backend/internal/domain"
	"github.com/phytolife/go-phyto-backend/internal/http/middleware"
	"github.com/phytolife/go-phyto-backend/internal/i18n"
	"github.com/phytolife/go-phyto-backend/internal/services"
)

// LiveClassRequest is the JSON payload for creating a class.
type LiveClassRequest struct {
	Title           domain.LocalizedText `json:"title" binding:"required"`
	Description     domain.LocalizedText `json:"description" binding:"required"`
	Date            string               `json:"date" binding:"required" example:"2026-10-05"`
	Time            string               `json:"time" binding:"required" example:"18:30"`
	DurationMinutes int                  `json:"duration_minutes" binding:"required"`
	Price           float64              `json:"price"`
	MaxParticipants int                  `json:"max_participants" binding:"required"`
	Instructor      string               `json:"instructor" binding:"required"`
}

// LiveClassPatch is the JSON payload for a partial update. The participant
// count is not editable; it only moves through bookings and cancellations.
type LiveClassPatch struct {
	Title           *domain.LocalizedText `json:"title"`
	Description     *domain.LocalizedText `json:"description"`
	Date            *string               `json:"date"`
	Time            *string               `json:"time"`
	DurationMinutes *int                  `json:"duration_minutes"`
	Price           *float64              `json:"price"`
	MaxParticipants *int                  `json:"max_participants"`
	Instructor      *string               `json:"instructor"`
}

// LiveClassView is a LiveClass enriched with its derived booking state.
type LiveClassView struct {
	domain.LiveClass
	State domain.ClassState `json:"state"`
}

// TicketResponse confirms a booking with a localized status message.
type TicketResponse struct {
	Ticket  *domain.Ticket `json:"ticket"`
	Message string         `json:"message"`
}

// classView derives the response shape for one class.
func classView(c domain.LiveClass, now time.Time) LiveClassView {
	return LiveClassView{LiveClass: c, State: c.State(now)}
}

// ListLiveClasses returns the class schedule with derived states.
func (h *Handlers) ListLiveClasses(c *gin.Context) {
	classes, err := h.catalog.ListLiveClasses(c.Request.Context())
	if err != nil {
		failService(c, err)
		return
	}
	now := time.Now()
	views := make([]LiveClassView, 0, len(classes))
	for _, cl := range classes {
		views = append(views, classView(cl, now))
	}
	ok(c, http.StatusOK, gin.H{"classes": views})
}

// GetLiveClass returns one class with its derived state.
func (h *Handlers) GetLiveClass(c *gin.Context) {
	class, err := h.catalog.GetLiveClass(c.Request.Context(), c.Param("id"))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, classView(*class, time.Now()))
}

// PurchaseTicket books one seat in the class for the caller.
func (h *Handlers) PurchaseTicket(c *gin.Context) {
	ticket, err := h.catalog.PurchaseTicket(c.Request.Context(), identity(c), c.Param("id"))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, TicketResponse{
		Ticket:  ticket,
		Message: i18n.T(middleware.LangFrom(c), i18n.MsgTicketConfirmed),
	})
}

// CancelTicket releases a booking owned by the caller.
func (h *Handlers) CancelTicket(c *gin.Context) {
	if err := h.catalog.CancelTicket(c.Request.Context(), identity(c), c.Param("id")); err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{
		"message": i18n.T(middleware.LangFrom(c), i18n.MsgTicketCancelled),
	})
}

// CreateLiveClass inserts a class; admin only.
func (h *Handlers) CreateLiveClass(c *gin.Context) {
	var req LiveClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failT(c, http.StatusBadRequest, ErrCodeBadRequest, i18n.MsgBadRequest)
		return
	}

	class, err := h.catalog.CreateLiveClass(c.Request.Context(), identity(c), &domain.LiveClass{
		Title:           req.Title,
		Description:     req.Description,
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		MaxParticipants: req.MaxParticipants,
		Instructor:      req.Instructor,
	})
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, classView(*class, time.Now()))
}

// UpdateLiveClass applies a partial edit; admin only.
func (h *Handlers) UpdateLiveClass(c *gin.Context) {
	var req LiveClassPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		failT(c, http.StatusBadRequest, ErrCodeBadRequest, i18n.MsgBadRequest)
		return
	}

	class, err := h.catalog.UpdateLiveClass(c.Request.Context(), identity(c), c.Param("id"), services.LiveClassUpdate{
		Title:           req.Title,
		Description:     req.Description,
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		MaxParticipants: req.MaxParticipants,
		Instructor:      req.Instructor,
	})
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, classView(*class, time.Now()))
}

// DeleteLiveClass removes a class; admin only.
func (h *Handlers) DeleteLiveClass(c *gin.Context) {
	if err := h.catalog.DeleteLiveClass(c.Request.Context(), identity(c), c.Param("id")); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}
