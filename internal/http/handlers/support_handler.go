// Support HTTP handlers.
//
// This file exposes the support conversation endpoints:
//   - POST /support                 (open a ticket with an initial message)
//   - GET  /support                 (list own tickets; admins see all)
//   - GET  /support/:id             (fetch one thread)
//   - POST /support/:id/messages    (append a message)
//   - PUT  /support/:id/status      (open/close; admin only)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/phytolife/go-phyto-backend/internal/i18n"
)

// OpenSupportTicketRequest carries the first message of a new thread.
type OpenSupportTicketRequest struct {
	Message string `json:"message" binding:"required,min=1" example:"My program page shows an error"`
}

// SupportMessageRequest appends a message to an existing thread.
type SupportMessageRequest struct {
	Text string `json:"text" binding:"required,min=1"`
}

// SupportStatusRequest opens or closes a thread.
type SupportStatusRequest struct {
	Status string `json:"status" binding:"required" example:"closed"`
}

// OpenSupportTicket starts a new conversation for the caller.
func (h *Handlers) OpenSupportTicket(c *gin.Context) {
	var req OpenSupportTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failT(c, http.StatusBadRequest, ErrCodeBadRequest, i18n.MsgBadRequest)
		return
	}
	ticket, err := h.support.OpenTicket(c.Request.Context(), identity(c), req.Message)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, ticket)
}

// ListSupportTickets lists the caller's conversations; admins see all.
func (h *Handlers) ListSupportTickets(c *gin.Context) {
	tickets, err := h.support.ListTickets(c.Request.Context(), identity(c))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"tickets": tickets})
}

// GetSupportTicket fetches one conversation with its messages.
func (h *Handlers) GetSupportTicket(c *gin.Context) {
	ticket, err := h.support.GetTicket(c.Request.Context(), identity(c), c.Param("id"))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, ticket)
}

// AddSupportMessage appends a message to a conversation.
func (h *Handlers) AddSupportMessage(c *gin.Context) {
	var req SupportMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failT(c, http.StatusBadRequest, ErrCodeBadRequest, i18n.MsgBadRequest)
		return
	}
	msg, err := h.support.AddMessage(c.Request.Context(), identity(c), c.Param("id"), req.Text)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, msg)
}

// UpdateSupportStatus opens or closes a conversation; admin only.
func (h *Handlers) UpdateSupportStatus(c *gin.Context) {
	var req SupportStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failT(c, http.StatusBadRequest, ErrCodeBadRequest, i18n.MsgBadRequest)
		return
	}
	if err := h.support.UpdateStatus(c.Request.Context(), identity(c), c.Param("id"), req.Status); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}
