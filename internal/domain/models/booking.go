package models

import (
	"time"

	"github.com/shopspring/decimal"

	"hoponhub/internal/domain"
)

// Booking is one seat on one route for one passenger.
type Booking struct {
	ID            int64
	BookingDate   time.Time
	TotalPrice    decimal.Decimal
	PaymentStatus domain.PaymentStatus
	PassengerID   int64
	RouteID       int64
	SeatID        int64
}

// BookingDetail is a booking joined with its passenger, route (and bus) and seat.
type BookingDetail struct {
	Booking
	Passenger Passenger
	Route     Route
	Seat      Seat
}

// BookingRequest is the input of a booking transaction.
type BookingRequest struct {
	RouteID     int64
	SeatNumbers []int
	Passenger   PassengerInput
}

// BookingResult is returned after a successful booking transaction.
type BookingResult struct {
	BookingIDs  []int64
	PassengerID int64
	TotalPrice  decimal.Decimal
}

// PaymentRequest flips the listed bookings to Paid.
type PaymentRequest struct {
	BookingIDs    []int64
	PaymentMethod string
}

// Confirmation summarizes a processed payment.
type Confirmation struct {
	BookingIDs    []int64
	Passenger     Passenger
	Route         Route
	SeatNumbers   []int
	TotalPrice    decimal.Decimal
	PaymentMethod string
	PaymentStatus domain.PaymentStatus
	BookingDate   time.Time
	TicketToken   string
}
