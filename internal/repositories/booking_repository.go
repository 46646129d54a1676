package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	intdb "hoponhub/internal/db"
	"hoponhub/internal/domain"
	"hoponhub/internal/domain/models"
)

type BookingRepository struct {
	DB intdb.Querier
}

// Create inserts one booking row. A second booking of the same (route, seat)
// fails on uniq_route_seat; callers check it with intdb.IsDuplicateKey.
func (r BookingRepository) Create(ctx context.Context, b models.Booking) (int64, error) {
	status := b.PaymentStatus
	if status == "" {
		status = domain.PaymentPending
	}
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO bookings (booking_date, total_price, payment_status, passenger_id, route_id, seat_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`, b.BookingDate, b.TotalPrice, string(status), b.PassengerID, b.RouteID, b.SeatID)
	if err != nil {
		return 0, fmt.Errorf("insert booking: %w", err)
	}
	return res.LastInsertId()
}

// BookedSeatIDs returns the seat ids holding a booking on routeID. When
// seatIDs is given only those seats are checked.
func (r BookingRepository) BookedSeatIDs(ctx context.Context, routeID int64, seatIDs ...int64) (map[int64]bool, error) {
	query := `SELECT seat_id FROM bookings WHERE route_id = ?`
	args := []any{routeID}
	if len(seatIDs) > 0 {
		query += ` AND seat_id IN (` + intdb.Placeholders(len(seatIDs)) + `)`
		for _, id := range seatIDs {
			args = append(args, id)
		}
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("booked seats: %w", err)
	}
	defer rows.Close()

	out := map[int64]bool{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return out, err
		}
		out[id] = true
	}
	return out, rows.Err()
}

const bookingDetailSelect = `
	SELECT
		bk.id, bk.booking_date, bk.total_price, bk.payment_status, bk.passenger_id, bk.route_id, bk.seat_id,
		p.id, p.name, p.age, p.email, p.phone,
		r.id, r.from_location, r.to_location, r.departure_time, r.price, r.date, r.bus_id, b.name,
		s.id, s.seat_number, s.is_available, s.bus_id
	FROM bookings bk
	JOIN passengers p ON p.id = bk.passenger_id
	JOIN routes r ON r.id = bk.route_id
	JOIN buses b ON b.id = r.bus_id
	JOIN seats s ON s.id = bk.seat_id
`

// GetDetail loads a booking with its passenger, route (and bus name) and seat.
func (r BookingRepository) GetDetail(ctx context.Context, id int64) (models.BookingDetail, error) {
	if id <= 0 {
		return models.BookingDetail{}, domain.NotFoundError{Resource: "booking"}
	}

	var (
		d           models.BookingDetail
		bookingDate sql.NullTime
		status      string
	)
	err := r.DB.QueryRowContext(ctx, bookingDetailSelect+` WHERE bk.id = ? LIMIT 1`, id).Scan(
		&d.ID, &bookingDate, &d.TotalPrice, &status, &d.PassengerID, &d.RouteID, &d.SeatID,
		&d.Passenger.ID, &d.Passenger.Name, &d.Passenger.Age, &d.Passenger.Email, &d.Passenger.Phone,
		&d.Route.ID, &d.Route.FromLocation, &d.Route.ToLocation, &d.Route.DepartureTime, &d.Route.Price, &d.Route.Date, &d.Route.BusID, &d.Route.BusName,
		&d.Seat.ID, &d.Seat.SeatNumber, &d.Seat.IsAvailable, &d.Seat.BusID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.BookingDetail{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.BookingDetail{}, fmt.Errorf("get booking %d: %w", id, err)
	}
	if bookingDate.Valid {
		d.BookingDate = bookingDate.Time
	}
	d.PaymentStatus = domain.PaymentStatus(status)
	return d, nil
}

// UpdatePaymentStatus sets payment_status on every listed booking.
func (r BookingRepository) UpdatePaymentStatus(ctx context.Context, ids []int64, status domain.PaymentStatus) error {
	if len(ids) == 0 {
		return nil
	}
	args := make([]any, 0, len(ids)+1)
	args = append(args, string(status))
	for _, id := range ids {
		args = append(args, id)
	}
	_, err := r.DB.ExecContext(ctx,
		`UPDATE bookings SET payment_status = ? WHERE id IN (`+intdb.Placeholders(len(ids))+`)`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	return nil
}

func (r BookingRepository) DeleteAll(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM bookings`)
	return err
}

// BookingDetailColumns names the columns returned by GetDetail, in scan order.
var BookingDetailColumns = []string{
	"id", "booking_date", "total_price", "payment_status", "passenger_id", "route_id", "seat_id",
	"p_id", "p_name", "p_age", "p_email", "p_phone",
	"r_id", "from_location", "to_location", "departure_time", "price", "date", "bus_id", "bus_name",
	"s_id", "seat_number", "is_available", "s_bus_id",
}
