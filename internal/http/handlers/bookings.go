package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hoponhub/internal/domain"
	"hoponhub/internal/domain/models"
)

type passengerBody struct {
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type createBookingBody struct {
	RouteID     int64          `json:"route_id"`
	SeatNumbers []int          `json:"seat_numbers"`
	Passenger   *passengerBody `json:"passenger"`
}

// CreateBooking handles POST /api/bookings.
func (h *Handler) CreateBooking(c *gin.Context) {
	var body createBookingBody
	if !BindJSONOrError(c, &body) {
		return
	}
	if body.Passenger == nil {
		RespondDomainError(c, domain.ValidationError{Msg: "Missing required data"})
		return
	}

	res, err := h.Bookings.Create(c.Request.Context(), models.BookingRequest{
		RouteID:     body.RouteID,
		SeatNumbers: body.SeatNumbers,
		Passenger: models.PassengerInput{
			Name:  body.Passenger.Name,
			Age:   body.Passenger.Age,
			Email: body.Passenger.Email,
			Phone: body.Passenger.Phone,
		},
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":      "Booking created successfully",
		"booking_ids":  res.BookingIDs,
		"passenger_id": res.PassengerID,
		"total_price":  price(res.TotalPrice),
	})
}

// GetBooking handles GET /api/booking/:id.
func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	d, err := h.Bookings.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": toBookingJSON(d)})
}
