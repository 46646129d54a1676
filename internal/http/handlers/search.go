package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SearchBuses handles GET /api/buses/search?from=&to=&date=.
func (h *Handler) SearchBuses(c *gin.Context) {
	offerings, err := h.Search.Search(c.Request.Context(), c.Query("from"), c.Query("to"), c.Query("date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if len(offerings) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No buses found for this route", "buses": []busOfferingJSON{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"buses": toBusOfferings(offerings)})
}
