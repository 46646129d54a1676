package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"hoponhub/internal/repositories"
	"hoponhub/internal/utils"
)

var (
	routeColumns = []string{"id", "from_location", "to_location", "departure_time", "price", "date", "bus_id", "name"}
	seatColumns  = []string{"id", "seat_number", "is_available", "bus_id"}
	travelDay    = time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	bookedAt     = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func testCtx() context.Context {
	return utils.WithRequestID(context.Background(), "test-req")
}

// routeRows returns route 10 "Delhi -> Mumbai" on bus 1 ("Bus X") priced at 100.
func routeRows() *sqlmock.Rows {
	return sqlmock.NewRows(routeColumns).
		AddRow(10, "Delhi", "Mumbai", "08:00", "100.00", travelDay, 1, "Bus X")
}

func seatRow(id int64, number int) *sqlmock.Rows {
	return sqlmock.NewRows(seatColumns).AddRow(id, number, true, 1)
}

// detailRows builds a booking detail row on route 10 / bus 1.
func detailRows(bookingID, passengerID, seatID int64, seatNumber int, status string) *sqlmock.Rows {
	return detailRowsOnRoute(10, bookingID, passengerID, seatID, seatNumber, status)
}

func detailRowsOnRoute(routeID, bookingID, passengerID, seatID int64, seatNumber int, status string) *sqlmock.Rows {
	return sqlmock.NewRows(repositories.BookingDetailColumns).AddRow(
		bookingID, bookedAt, "100.00", status, passengerID, routeID, seatID,
		passengerID, "Alice", 30, "alice@example.com", "555-0100",
		routeID, "Delhi", "Mumbai", "08:00", "100.00", travelDay, 1, "Bus X",
		seatID, seatNumber, true, 1,
	)
}
