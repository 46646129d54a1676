package services

import (
	"context"
	"database/sql"

	"hoponhub/internal/domain"
	"hoponhub/internal/domain/models"
	"hoponhub/internal/repositories"
)

type SeatService struct {
	DB *sql.DB
}

// RouteSeats lists every seat of the route's bus. A seat is unavailable only
// when it holds a booking on this route; other routes of the same bus are ignored.
func (s SeatService) RouteSeats(ctx context.Context, routeID int64) (models.RouteSeats, error) {
	route, err := repositories.RouteRepository{DB: s.DB}.GetByID(ctx, routeID)
	if err != nil {
		return models.RouteSeats{}, asDomainError(err, "Failed to load route")
	}
	seats, err := repositories.SeatRepository{DB: s.DB}.ListByBus(ctx, route.BusID)
	if err != nil {
		return models.RouteSeats{}, domain.InternalError{Msg: "Failed to load seats", Err: err}
	}
	booked, err := repositories.BookingRepository{DB: s.DB}.BookedSeatIDs(ctx, route.ID)
	if err != nil {
		return models.RouteSeats{}, domain.InternalError{Msg: "Failed to load bookings", Err: err}
	}

	out := models.RouteSeats{
		RouteID: route.ID,
		BusName: route.BusName,
		Price:   route.Price,
		Seats:   make([]models.SeatAvailability, 0, len(seats)),
	}
	for _, seat := range seats {
		out.Seats = append(out.Seats, models.SeatAvailability{
			ID:          seat.ID,
			SeatNumber:  seat.SeatNumber,
			IsAvailable: !booked[seat.ID],
		})
	}
	return out, nil
}

// asDomainError passes domain errors through and wraps anything else as internal.
func asDomainError(err error, msg string) error {
	if domain.IsNotFound(err) || domain.IsValidation(err) || domain.IsConflict(err) || domain.IsInternal(err) {
		return err
	}
	return domain.InternalError{Msg: msg, Err: err}
}
