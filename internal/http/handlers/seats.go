package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetRouteSeats handles GET /api/seats/:route_id.
func (h *Handler) GetRouteSeats(c *gin.Context) {
	routeID, ok := pathID(c, "route_id")
	if !ok {
		return
	}
	rs, err := h.Seats.RouteSeats(c.Request.Context(), routeID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	seats := make([]seatJSON, 0, len(rs.Seats))
	for _, s := range rs.Seats {
		seats = append(seats, seatJSON{ID: s.ID, SeatNumber: s.SeatNumber, IsAvailable: s.IsAvailable})
	}
	c.JSON(http.StatusOK, gin.H{
		"route_id": rs.RouteID,
		"bus_name": rs.BusName,
		"price":    price(rs.Price),
		"seats":    seats,
	})
}
