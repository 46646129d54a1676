package repositories

import (
	"context"
	"fmt"

	intdb "hoponhub/internal/db"
	"hoponhub/internal/domain/models"
)

type PassengerRepository struct {
	DB intdb.Querier
}

// Create always inserts a new row; passengers are not deduplicated.
func (r PassengerRepository) Create(ctx context.Context, in models.PassengerInput) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO passengers (name, age, email, phone)
		VALUES (?, ?, ?, ?)
	`, in.Name, in.Age, in.Email, in.Phone)
	if err != nil {
		return 0, fmt.Errorf("insert passenger: %w", err)
	}
	return res.LastInsertId()
}

func (r PassengerRepository) DeleteAll(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM passengers`)
	return err
}
