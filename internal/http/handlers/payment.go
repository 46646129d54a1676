package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hoponhub/internal/domain/models"
)

type paymentBody struct {
	BookingIDs    []int64 `json:"booking_ids"`
	PaymentMethod string  `json:"payment_method"`
}

// ProcessPayment handles POST /api/payment.
func (h *Handler) ProcessPayment(c *gin.Context) {
	var body paymentBody
	if !BindJSONOrError(c, &body) {
		return
	}
	conf, err := h.Payments.Process(c.Request.Context(), models.PaymentRequest{
		BookingIDs:    body.BookingIDs,
		PaymentMethod: body.PaymentMethod,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Payment processed successfully",
		"confirmation": toConfirmationJSON(conf),
	})
}
