package models

import "github.com/shopspring/decimal"

// Seat is a physical seat of a bus. IsAvailable is written at seed time only;
// occupancy on a route is derived from bookings.
type Seat struct {
	ID          int64
	SeatNumber  int
	IsAvailable bool
	BusID       int64
}

// SeatAvailability is a seat annotated with its occupancy on one route.
type SeatAvailability struct {
	ID          int64
	SeatNumber  int
	IsAvailable bool
}

// RouteSeats is the seat map of one route.
type RouteSeats struct {
	RouteID int64
	BusName string
	Price   decimal.Decimal
	Seats   []SeatAvailability
}
