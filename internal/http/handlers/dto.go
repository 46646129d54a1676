package handlers

import (
	"github.com/shopspring/decimal"

	"hoponhub/internal/domain/models"
	"hoponhub/internal/utils"
)

// Prices leave the API as JSON numbers; decimal stays authoritative inside.
func price(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

type busOfferingJSON struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Time  string  `json:"time"`
	From  string  `json:"from"`
	To    string  `json:"to"`
	Date  string  `json:"date"`
}

func toBusOfferings(in []models.Offering) []busOfferingJSON {
	out := make([]busOfferingJSON, 0, len(in))
	for _, o := range in {
		out = append(out, busOfferingJSON{
			ID:    o.RouteID,
			Name:  o.BusName,
			Price: price(o.Price),
			Time:  o.Time,
			From:  o.From,
			To:    o.To,
			Date:  o.Date,
		})
	}
	return out
}

type routeJSON struct {
	ID            int64   `json:"id"`
	FromLocation  string  `json:"from_location"`
	ToLocation    string  `json:"to_location"`
	DepartureTime string  `json:"departure_time"`
	Price         float64 `json:"price"`
	Date          string  `json:"date"`
	BusID         int64   `json:"bus_id"`
	BusName       string  `json:"bus_name"`
}

func toRouteJSON(r models.Route) routeJSON {
	return routeJSON{
		ID:            r.ID,
		FromLocation:  r.FromLocation,
		ToLocation:    r.ToLocation,
		DepartureTime: r.DepartureTime,
		Price:         price(r.Price),
		Date:          utils.FormatDate(r.Date),
		BusID:         r.BusID,
		BusName:       r.BusName,
	}
}

type seatJSON struct {
	ID          int64 `json:"id"`
	SeatNumber  int   `json:"seat_number"`
	IsAvailable bool  `json:"is_available"`
	BusID       int64 `json:"bus_id,omitempty"`
}

type passengerJSON struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func toPassengerJSON(p models.Passenger) passengerJSON {
	return passengerJSON{ID: p.ID, Name: p.Name, Age: p.Age, Email: p.Email, Phone: p.Phone}
}

type bookingJSON struct {
	ID            int64         `json:"id"`
	BookingDate   string        `json:"booking_date"`
	TotalPrice    float64       `json:"total_price"`
	PaymentStatus string        `json:"payment_status"`
	PassengerID   int64         `json:"passenger_id"`
	RouteID       int64         `json:"route_id"`
	SeatID        int64         `json:"seat_id"`
	Passenger     passengerJSON `json:"passenger"`
	Route         routeJSON     `json:"route"`
	Seat          seatJSON      `json:"seat"`
}

func toBookingJSON(d models.BookingDetail) bookingJSON {
	return bookingJSON{
		ID:            d.ID,
		BookingDate:   utils.FormatDateTime(d.BookingDate),
		TotalPrice:    price(d.TotalPrice),
		PaymentStatus: string(d.PaymentStatus),
		PassengerID:   d.PassengerID,
		RouteID:       d.RouteID,
		SeatID:        d.SeatID,
		Passenger:     toPassengerJSON(d.Passenger),
		Route:         toRouteJSON(d.Route),
		Seat: seatJSON{
			ID:          d.Seat.ID,
			SeatNumber:  d.Seat.SeatNumber,
			IsAvailable: d.Seat.IsAvailable,
			BusID:       d.Seat.BusID,
		},
	}
}

type confirmationJSON struct {
	BookingIDs    []int64       `json:"booking_ids"`
	Passenger     passengerJSON `json:"passenger"`
	Route         routeJSON     `json:"route"`
	SeatNumbers   []int         `json:"seat_numbers"`
	TotalPrice    float64       `json:"total_price"`
	PaymentMethod string        `json:"payment_method"`
	PaymentStatus string        `json:"payment_status"`
	BookingDate   string        `json:"booking_date"`
	TicketToken   string        `json:"ticket_token,omitempty"`
}

func toConfirmationJSON(c models.Confirmation) confirmationJSON {
	return confirmationJSON{
		BookingIDs:    c.BookingIDs,
		Passenger:     toPassengerJSON(c.Passenger),
		Route:         toRouteJSON(c.Route),
		SeatNumbers:   c.SeatNumbers,
		TotalPrice:    price(c.TotalPrice),
		PaymentMethod: c.PaymentMethod,
		PaymentStatus: string(c.PaymentStatus),
		BookingDate:   utils.FormatDateTime(c.BookingDate),
		TicketToken:   c.TicketToken,
	}
}
