package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intdb "hoponhub/internal/db"
	"hoponhub/internal/domain"
	"hoponhub/internal/domain/models"
)

type SeatRepository struct {
	DB intdb.Querier
}

// ListByBus returns every seat of a bus ordered by seat number.
func (r SeatRepository) ListByBus(ctx context.Context, busID int64) ([]models.Seat, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, seat_number, is_available, bus_id
		FROM seats
		WHERE bus_id = ?
		ORDER BY seat_number ASC
	`, busID)
	if err != nil {
		return nil, fmt.Errorf("list seats: %w", err)
	}
	defer rows.Close()

	out := []models.Seat{}
	for rows.Next() {
		var s models.Seat
		if err := rows.Scan(&s.ID, &s.SeatNumber, &s.IsAvailable, &s.BusID); err != nil {
			return out, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetByNumber resolves a seat number on a bus to its seat row. A missing seat
// is a domain.NotFoundError with message "Seat <n> not found".
func (r SeatRepository) GetByNumber(ctx context.Context, busID int64, seatNumber int) (models.Seat, error) {
	var s models.Seat
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, seat_number, is_available, bus_id
		FROM seats
		WHERE bus_id = ? AND seat_number = ?
		LIMIT 1
	`, busID, seatNumber).Scan(&s.ID, &s.SeatNumber, &s.IsAvailable, &s.BusID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Seat{}, domain.NotFoundError{
				Resource: "seat",
				Msg:      fmt.Sprintf("Seat %d not found", seatNumber),
				Err:      err,
			}
		}
		return models.Seat{}, fmt.Errorf("get seat %d: %w", seatNumber, err)
	}
	return s, nil
}

// CreateForBus inserts seats 1..capacity in one statement.
func (r SeatRepository) CreateForBus(ctx context.Context, busID int64, capacity int) error {
	if capacity <= 0 {
		return nil
	}
	values := make([]string, 0, capacity)
	args := make([]any, 0, capacity*3)
	for n := 1; n <= capacity; n++ {
		values = append(values, "(?,?,?)")
		args = append(args, n, true, busID)
	}
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO seats (seat_number, is_available, bus_id) VALUES `+strings.Join(values, ","),
		args...,
	)
	if err != nil {
		return fmt.Errorf("insert seats for bus %d: %w", busID, err)
	}
	return nil
}

func (r SeatRepository) DeleteAll(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM seats`)
	return err
}
