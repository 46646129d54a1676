package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	intdb "hoponhub/internal/db"
	"hoponhub/internal/domain"
	"hoponhub/internal/domain/models"
	"hoponhub/internal/metrics"
	"hoponhub/internal/repositories"
	"hoponhub/internal/utils"
)

const msgSeatsUnavailable = "Some seats are not available"

type BookingService struct {
	DB  *sql.DB
	Now func() time.Time
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return utils.NowUTC()
}

// Create books every requested seat for one new passenger. Nothing is written
// unless every seat exists on the route's bus and none is booked on the route.
func (s BookingService) Create(ctx context.Context, req models.BookingRequest) (models.BookingResult, error) {
	p, err := validateBookingRequest(req)
	if err != nil {
		return models.BookingResult{}, err
	}
	reqID := utils.RequestIDFrom(ctx)

	var result models.BookingResult
	err = intdb.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		route, err := repositories.RouteRepository{DB: tx}.GetByID(ctx, req.RouteID)
		if err != nil {
			return err
		}

		seatRepo := repositories.SeatRepository{DB: tx}
		seats := make([]models.Seat, 0, len(req.SeatNumbers))
		seatIDs := make([]int64, 0, len(req.SeatNumbers))
		for _, n := range req.SeatNumbers {
			seat, err := seatRepo.GetByNumber(ctx, route.BusID, n)
			if err != nil {
				return err
			}
			seats = append(seats, seat)
			seatIDs = append(seatIDs, seat.ID)
		}

		bookingRepo := repositories.BookingRepository{DB: tx}
		booked, err := bookingRepo.BookedSeatIDs(ctx, route.ID, seatIDs...)
		if err != nil {
			return err
		}
		var unavailable []int
		for _, seat := range seats {
			if booked[seat.ID] {
				unavailable = append(unavailable, seat.SeatNumber)
			}
		}
		if len(unavailable) > 0 {
			return domain.ConflictError{Msg: msgSeatsUnavailable, Seats: unavailable}
		}

		passengerID, err := repositories.PassengerRepository{DB: tx}.Create(ctx, p)
		if err != nil {
			return err
		}

		// Rows are inserted in seat id order so concurrent requests for the
		// same seats take the uniq_route_seat locks in the same order.
		order := make([]int, len(seats))
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(a, b int) bool { return seats[order[a]].ID < seats[order[b]].ID })

		bookedAt := s.now()
		ids := make([]int64, len(seats))
		prices := make([]decimal.Decimal, 0, len(seats))
		for _, i := range order {
			seat := seats[i]
			id, err := bookingRepo.Create(ctx, models.Booking{
				BookingDate:   bookedAt,
				TotalPrice:    route.Price,
				PaymentStatus: domain.PaymentPending,
				PassengerID:   passengerID,
				RouteID:       route.ID,
				SeatID:        seat.ID,
			})
			if err != nil {
				if intdb.IsDuplicateKey(err) || intdb.IsLockConflict(err) {
					// lost a race with a concurrent booking of the same seat
					return domain.ConflictError{Msg: msgSeatsUnavailable, Seats: []int{seat.SeatNumber}, Err: err}
				}
				return err
			}
			ids[i] = id
			prices = append(prices, route.Price)
		}

		result = models.BookingResult{
			BookingIDs:  ids,
			PassengerID: passengerID,
			TotalPrice:  utils.SumPrices(prices),
		}
		return nil
	})
	if err != nil {
		switch {
		case domain.IsConflict(err):
			metrics.RecordBooking(metrics.BookingConflict, 0)
			utils.LogEvent(reqID, "booking", "create_conflict",
				fmt.Sprintf("route_id=%d seats=%v", req.RouteID, domain.ConflictSeats(err)))
		default:
			metrics.RecordBooking(metrics.BookingFailed, 0)
			utils.LogEvent(reqID, "booking", "create_error", fmt.Sprintf("route_id=%d err=%v", req.RouteID, err))
		}
		return models.BookingResult{}, asDomainError(err, "Failed to create booking")
	}

	metrics.RecordBooking(metrics.BookingCreated, len(result.BookingIDs))
	utils.LogEvent(reqID, "booking", "create",
		fmt.Sprintf("route_id=%d booking_ids=%v total=%s", req.RouteID, result.BookingIDs, result.TotalPrice.StringFixed(2)))
	return result, nil
}

// Get returns one booking with its passenger, route and seat.
func (s BookingService) Get(ctx context.Context, id int64) (models.BookingDetail, error) {
	d, err := repositories.BookingRepository{DB: s.DB}.GetDetail(ctx, id)
	if err != nil {
		return models.BookingDetail{}, asDomainError(err, "Failed to load booking")
	}
	return d, nil
}

func validateBookingRequest(req models.BookingRequest) (models.PassengerInput, error) {
	if req.RouteID <= 0 || len(req.SeatNumbers) == 0 {
		return models.PassengerInput{}, domain.ValidationError{Msg: "Missing required data"}
	}
	p := models.PassengerInput{
		Name:  utils.NormalizeSpace(req.Passenger.Name),
		Age:   req.Passenger.Age,
		Email: strings.TrimSpace(req.Passenger.Email),
		Phone: strings.TrimSpace(req.Passenger.Phone),
	}
	if p.Name == "" || p.Email == "" || p.Phone == "" || p.Age == 0 {
		return p, domain.ValidationError{Msg: "Incomplete passenger details"}
	}
	if p.Age < 0 {
		return p, domain.ValidationError{Field: "age", Msg: "must be greater than zero"}
	}
	seen := make(map[int]bool, len(req.SeatNumbers))
	for _, n := range req.SeatNumbers {
		if seen[n] {
			return p, domain.ValidationError{Field: "seat_numbers", Msg: fmt.Sprintf("seat %d requested more than once", n)}
		}
		seen[n] = true
	}
	return p, nil
}
