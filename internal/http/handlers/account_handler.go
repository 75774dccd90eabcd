// Account history HTTP handlers.
//
//   - GET /me/purchases
//   - GET /me/tickets
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MyPurchases returns the caller's program purchases, newest first.
func (h *Handlers) MyPurchases(c *gin.Context) {
	purchases, err := h.catalog.MyPurchases(c.Request.Context(), identity(c))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"purchases": purchases})
}

// MyTickets returns the caller's class tickets, newest first.
func (h *Handlers) MyTickets(c *gin.Context) {
	tickets, err := h.catalog.MyTickets(c.Request.Context(), identity(c))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"tickets": tickets})
}
