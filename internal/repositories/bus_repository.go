package repositories

import (
	"context"
	"fmt"

	intdb "hoponhub/internal/db"
	"hoponhub/internal/domain/models"
)

type BusRepository struct {
	DB intdb.Querier
}

func (r BusRepository) Create(ctx context.Context, name string, capacity int) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `INSERT INTO buses (name, capacity) VALUES (?, ?)`, name, capacity)
	if err != nil {
		return 0, fmt.Errorf("insert bus: %w", err)
	}
	return res.LastInsertId()
}

func (r BusRepository) List(ctx context.Context) ([]models.Bus, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, capacity FROM buses ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list buses: %w", err)
	}
	defer rows.Close()

	out := []models.Bus{}
	for rows.Next() {
		var b models.Bus
		if err := rows.Scan(&b.ID, &b.Name, &b.Capacity); err != nil {
			return out, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r BusRepository) DeleteAll(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM buses`)
	return err
}
