package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	intdb "hoponhub/internal/db"
	"hoponhub/internal/domain"
	"hoponhub/internal/domain/models"
)

type RouteRepository struct {
	DB intdb.Querier
}

const routeSelect = `
	SELECT r.id, r.from_location, r.to_location, r.departure_time, r.price, r.date, r.bus_id, b.name
	FROM routes r
	JOIN buses b ON b.id = r.bus_id
`

// GetByID returns the route joined with its bus. A route whose bus row is
// missing is reported as not found too.
func (r RouteRepository) GetByID(ctx context.Context, id int64) (models.Route, error) {
	if id <= 0 {
		return models.Route{}, domain.NotFoundError{Resource: "route"}
	}
	row := r.DB.QueryRowContext(ctx, routeSelect+` WHERE r.id = ? LIMIT 1`, id)
	rt, err := scanRoute(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Route{}, domain.NotFoundError{Resource: "route", Err: err}
		}
		return models.Route{}, fmt.Errorf("get route %d: %w", id, err)
	}
	return rt, nil
}

// FindByPair lists routes between two locations ordered by id. A nil date
// returns every stored date.
func (r RouteRepository) FindByPair(ctx context.Context, from, to string, date *time.Time) ([]models.Route, error) {
	query := routeSelect + ` WHERE r.from_location = ? AND r.to_location = ?`
	args := []any{from, to}
	if date != nil {
		query += ` AND r.date = ?`
		args = append(args, date.Format(domain.LayoutDate))
	}
	query += ` ORDER BY r.id ASC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find routes: %w", err)
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return out, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

func (r RouteRepository) Create(ctx context.Context, rt models.Route) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO routes (from_location, to_location, departure_time, price, date, bus_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rt.FromLocation, rt.ToLocation, rt.DepartureTime, rt.Price, rt.Date.Format(domain.LayoutDate), rt.BusID)
	if err != nil {
		return 0, fmt.Errorf("insert route: %w", err)
	}
	return res.LastInsertId()
}

func (r RouteRepository) DeleteAll(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM routes`)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoute(s rowScanner) (models.Route, error) {
	var rt models.Route
	err := s.Scan(
		&rt.ID,
		&rt.FromLocation,
		&rt.ToLocation,
		&rt.DepartureTime,
		&rt.Price,
		&rt.Date,
		&rt.BusID,
		&rt.BusName,
	)
	return rt, err
}
