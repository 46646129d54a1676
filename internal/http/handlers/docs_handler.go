package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hoponhub/internal/services"
)

// GetBookingETicketPDF returns the e-ticket of a paid booking (inline).
func (h *Handler) GetBookingETicketPDF(c *gin.Context) {
	h.servePDF(c, h.Docs.GenerateETicket)
}

// GetBookingInvoicePDF returns the invoice of a paid booking (inline).
func (h *Handler) GetBookingInvoicePDF(c *gin.Context) {
	h.servePDF(c, h.Docs.GenerateInvoice)
}

func (h *Handler) servePDF(c *gin.Context, render func(context.Context, int64) ([]byte, string, error)) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	pdfBytes, filename, err := render(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrPaymentPending) {
			respondError(c, http.StatusForbidden, "payment_pending", "Payment is still pending", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
