package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// VerifyTicket handles GET /api/tickets/verify?token=.
func (h *Handler) VerifyTicket(c *gin.Context) {
	claims, err := h.Tickets.Verify(c.Query("token"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	resp := gin.H{
		"valid":        true,
		"booking_ids":  claims.BookingIDs,
		"route_id":     claims.RouteID,
		"passenger_id": claims.PassengerID,
	}
	if claims.ExpiresAt != nil {
		resp["expires_at"] = claims.ExpiresAt.Time.UTC().Format("2006-01-02 15:04:05")
	}
	c.JSON(http.StatusOK, resp)
}
