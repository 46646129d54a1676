package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoponhub/internal/domain"
	"hoponhub/internal/domain/models"
)

var routeColumns = []string{"id", "from_location", "to_location", "departure_time", "price", "date", "bus_id", "name"}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestRouteGetByIDJoinsBus(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM routes r\\s+JOIN buses b").WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(routeColumns).
			AddRow(4, "Delhi", "Mumbai", "08:00", "500.00", day("2025-03-01"), 1, "Orange Travels"))

	rt, err := RouteRepository{DB: db}.GetByID(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "Orange Travels", rt.BusName)
	assert.True(t, rt.Price.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "2025-03-01", rt.Date.Format("2006-01-02"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRouteGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM routes r").WithArgs(int64(99)).WillReturnRows(sqlmock.NewRows(routeColumns))

	_, err := RouteRepository{DB: db}.GetByID(context.Background(), 99)
	assert.True(t, domain.IsNotFound(err))

	_, err = RouteRepository{DB: db}.GetByID(context.Background(), 0)
	assert.True(t, domain.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRouteFindByPairOptionalDate(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("WHERE r.from_location = \\? AND r.to_location = \\? ORDER BY r.id").
		WithArgs("Delhi", "Mumbai").
		WillReturnRows(sqlmock.NewRows(routeColumns).
			AddRow(1, "Delhi", "Mumbai", "08:00", "500", day("2025-03-01"), 1, "Orange Travels").
			AddRow(12, "Delhi", "Mumbai", "08:00", "500", day("2025-03-02"), 1, "Orange Travels"))
	mock.ExpectQuery("AND r.date = \\? ORDER BY r.id").
		WithArgs("Delhi", "Mumbai", "2025-03-02").
		WillReturnRows(sqlmock.NewRows(routeColumns).
			AddRow(12, "Delhi", "Mumbai", "08:00", "500", day("2025-03-02"), 1, "Orange Travels"))

	repo := RouteRepository{DB: db}
	all, err := repo.FindByPair(context.Background(), "Delhi", "Mumbai", nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	d := day("2025-03-02")
	one, err := repo.FindByPair(context.Background(), "Delhi", "Mumbai", &d)
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, int64(12), one[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatGetByNumberNotFoundMessage(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM seats").WithArgs(int64(1), 41).
		WillReturnRows(sqlmock.NewRows([]string{"id", "seat_number", "is_available", "bus_id"}))

	_, err := SeatRepository{DB: db}.GetByNumber(context.Background(), 1, 41)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
	assert.Equal(t, "Seat 41 not found", err.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatCreateForBusSingleStatement(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("INSERT INTO seats \\(seat_number, is_available, bus_id\\) VALUES \\(\\?,\\?,\\?\\),\\(\\?,\\?,\\?\\)$").
		WithArgs(1, true, int64(7), 2, true, int64(7)).
		WillReturnResult(sqlmock.NewResult(2, 2))

	require.NoError(t, SeatRepository{DB: db}.CreateForBus(context.Background(), 7, 2))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookedSeatIDsFiltersBySeat(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT seat_id FROM bookings WHERE route_id = \\? AND seat_id IN \\(\\?,\\?\\)").
		WithArgs(int64(3), int64(10), int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_id"}).AddRow(11))

	booked, err := BookingRepository{DB: db}.BookedSeatIDs(context.Background(), 3, 10, 11)
	require.NoError(t, err)
	assert.False(t, booked[10])
	assert.True(t, booked[11])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingCreateDefaultsToPending(t *testing.T) {
	db, mock := newMock(t)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(now, sqlmock.AnyArg(), "Pending", int64(1), int64(2), int64(3)).
		WillReturnResult(sqlmock.NewResult(55, 1))

	id, err := BookingRepository{DB: db}.Create(context.Background(), models.Booking{
		BookingDate: now,
		TotalPrice:  decimal.NewFromInt(100),
		PassengerID: 1,
		RouteID:     2,
		SeatID:      3,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(55), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingCreatePropagatesDriverError(t *testing.T) {
	db, mock := newMock(t)
	cause := errors.New("duplicate")
	mock.ExpectExec("INSERT INTO bookings").WillReturnError(cause)

	_, err := BookingRepository{DB: db}.Create(context.Background(), models.Booking{})
	assert.ErrorIs(t, err, cause)
}

func TestBookingGetDetail(t *testing.T) {
	db, mock := newMock(t)
	booked := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	mock.ExpectQuery("FROM bookings bk").WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows(BookingDetailColumns).AddRow(
			8, booked, "100.00", "Paid", 2, 4, 6,
			2, "Alice", 30, "alice@example.com", "555-0100",
			4, "Delhi", "Mumbai", "08:00", "100.00", day("2025-03-02"), 1, "X",
			6, 1, true, 1,
		))

	d, err := BookingRepository{DB: db}.GetDetail(context.Background(), 8)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, d.PaymentStatus)
	assert.Equal(t, "Alice", d.Passenger.Name)
	assert.Equal(t, "X", d.Route.BusName)
	assert.Equal(t, 1, d.Seat.SeatNumber)
	assert.Equal(t, booked, d.BookingDate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingGetDetailNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM bookings bk").WithArgs(int64(8)).WillReturnRows(sqlmock.NewRows(BookingDetailColumns))

	_, err := BookingRepository{DB: db}.GetDetail(context.Background(), 8)
	assert.True(t, domain.IsNotFound(err))
}

func TestUpdatePaymentStatus(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("UPDATE bookings SET payment_status = \\? WHERE id IN \\(\\?,\\?\\)").
		WithArgs("Paid", int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, BookingRepository{DB: db}.UpdatePaymentStatus(context.Background(), []int64{1, 2}, domain.PaymentPaid))
	require.NoError(t, BookingRepository{DB: db}.UpdatePaymentStatus(context.Background(), nil, domain.PaymentPaid))
	require.NoError(t, mock.ExpectationsWereMet())
}
