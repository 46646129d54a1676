package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoponhub/internal/domain"
	"hoponhub/internal/domain/models"
	"hoponhub/internal/repositories"
)

var alice = models.PassengerInput{Name: "Alice", Age: 30, Email: "alice@example.com", Phone: "555-0100"}

func bookingClock() func() time.Time {
	return fixedClock(time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC))
}

func TestCreateBookingInsertsPassengerAndOneBookingPerSeat(t *testing.T) {
	db, mock := newMock(t)
	now := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM routes r").WithArgs(int64(10)).WillReturnRows(routeRows())
	mock.ExpectQuery("FROM seats").WithArgs(int64(1), 1).WillReturnRows(seatRow(101, 1))
	mock.ExpectQuery("FROM seats").WithArgs(int64(1), 2).WillReturnRows(seatRow(102, 2))
	mock.ExpectQuery("SELECT seat_id FROM bookings").WithArgs(int64(10), int64(101), int64(102)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_id"}))
	mock.ExpectExec("INSERT INTO passengers").WithArgs("Alice", 30, "alice@example.com", "555-0100").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectExec("INSERT INTO bookings").WithArgs(now, sqlmock.AnyArg(), "Pending", int64(3), int64(10), int64(101)).
		WillReturnResult(sqlmock.NewResult(50, 1))
	mock.ExpectExec("INSERT INTO bookings").WithArgs(now, sqlmock.AnyArg(), "Pending", int64(3), int64(10), int64(102)).
		WillReturnResult(sqlmock.NewResult(51, 1))
	mock.ExpectCommit()

	svc := BookingService{DB: db, Now: bookingClock()}
	res, err := svc.Create(testCtx(), models.BookingRequest{RouteID: 10, SeatNumbers: []int{1, 2}, Passenger: alice})
	require.NoError(t, err)
	assert.Equal(t, []int64{50, 51}, res.BookingIDs)
	assert.Equal(t, int64(3), res.PassengerID)
	assert.True(t, res.TotalPrice.Equal(decimal.NewFromInt(200)), "total %s", res.TotalPrice)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingReportsEveryUnavailableSeat(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM routes r").WithArgs(int64(10)).WillReturnRows(routeRows())
	mock.ExpectQuery("FROM seats").WithArgs(int64(1), 3).WillReturnRows(seatRow(103, 3))
	mock.ExpectQuery("FROM seats").WithArgs(int64(1), 1).WillReturnRows(seatRow(101, 1))
	mock.ExpectQuery("FROM seats").WithArgs(int64(1), 2).WillReturnRows(seatRow(102, 2))
	mock.ExpectQuery("SELECT seat_id FROM bookings").WithArgs(int64(10), int64(103), int64(101), int64(102)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_id"}).AddRow(101).AddRow(103))
	mock.ExpectRollback()

	svc := BookingService{DB: db, Now: bookingClock()}
	_, err := svc.Create(testCtx(), models.BookingRequest{RouteID: 10, SeatNumbers: []int{3, 1, 2}, Passenger: alice})
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
	assert.Equal(t, []int{3, 1}, domain.ConflictSeats(err))
	assert.Equal(t, "Some seats are not available", err.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingUnknownSeatAbortsBeforeWrites(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM routes r").WithArgs(int64(10)).WillReturnRows(routeRows())
	mock.ExpectQuery("FROM seats").WithArgs(int64(1), 1).WillReturnRows(seatRow(101, 1))
	mock.ExpectQuery("FROM seats").WithArgs(int64(1), 41).WillReturnRows(sqlmock.NewRows(seatColumns))
	mock.ExpectRollback()

	svc := BookingService{DB: db}
	_, err := svc.Create(testCtx(), models.BookingRequest{RouteID: 10, SeatNumbers: []int{1, 41, 42}, Passenger: alice})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
	assert.Equal(t, "Seat 41 not found", err.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingUnknownRoute(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM routes r").WithArgs(int64(99)).WillReturnRows(sqlmock.NewRows(routeColumns))
	mock.ExpectRollback()

	_, err := BookingService{DB: db}.Create(testCtx(), models.BookingRequest{RouteID: 99, SeatNumbers: []int{1}, Passenger: alice})
	assert.True(t, domain.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

// The availability check passed, but a concurrent request committed the same
// seat first; the unique index rejects the insert and the passenger row is rolled back.
func TestCreateBookingLosingRaceReturnsConflict(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM routes r").WithArgs(int64(10)).WillReturnRows(routeRows())
	mock.ExpectQuery("FROM seats").WithArgs(int64(1), 1).WillReturnRows(seatRow(101, 1))
	mock.ExpectQuery("SELECT seat_id FROM bookings").WithArgs(int64(10), int64(101)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_id"}))
	mock.ExpectExec("INSERT INTO passengers").WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry '10-101' for key 'uniq_route_seat'"})
	mock.ExpectRollback()

	_, err := BookingService{DB: db, Now: bookingClock()}.Create(testCtx(),
		models.BookingRequest{RouteID: 10, SeatNumbers: []int{1}, Passenger: alice})
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
	assert.Equal(t, []int{1}, domain.ConflictSeats(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingInsertsInSeatIDOrder(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM routes r").WithArgs(int64(10)).WillReturnRows(routeRows())
	mock.ExpectQuery("FROM seats").WithArgs(int64(1), 2).WillReturnRows(seatRow(102, 2))
	mock.ExpectQuery("FROM seats").WithArgs(int64(1), 1).WillReturnRows(seatRow(101, 1))
	mock.ExpectQuery("SELECT seat_id FROM bookings").WithArgs(int64(10), int64(102), int64(101)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_id"}))
	mock.ExpectExec("INSERT INTO passengers").WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectExec("INSERT INTO bookings").WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "Pending", int64(3), int64(10), int64(101)).
		WillReturnResult(sqlmock.NewResult(60, 1))
	mock.ExpectExec("INSERT INTO bookings").WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "Pending", int64(3), int64(10), int64(102)).
		WillReturnResult(sqlmock.NewResult(61, 1))
	mock.ExpectCommit()

	res, err := BookingService{DB: db, Now: bookingClock()}.Create(testCtx(),
		models.BookingRequest{RouteID: 10, SeatNumbers: []int{2, 1}, Passenger: alice})
	require.NoError(t, err)
	// ids follow the requested seat order
	assert.Equal(t, []int64{61, 60}, res.BookingIDs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingDeadlockVictimReturnsConflict(t *testing.T) {
	for _, code := range []uint16{1213, 1205} {
		db, mock := newMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery("FROM routes r").WithArgs(int64(10)).WillReturnRows(routeRows())
		mock.ExpectQuery("FROM seats").WithArgs(int64(1), 2).WillReturnRows(seatRow(102, 2))
		mock.ExpectQuery("FROM seats").WithArgs(int64(1), 1).WillReturnRows(seatRow(101, 1))
		mock.ExpectQuery("SELECT seat_id FROM bookings").WillReturnRows(sqlmock.NewRows([]string{"seat_id"}))
		mock.ExpectExec("INSERT INTO passengers").WillReturnResult(sqlmock.NewResult(4, 1))
		mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(70, 1))
		mock.ExpectExec("INSERT INTO bookings").
			WillReturnError(&mysql.MySQLError{Number: code, Message: "Deadlock found when trying to get lock"})
		mock.ExpectRollback()

		_, err := BookingService{DB: db, Now: bookingClock()}.Create(testCtx(),
			models.BookingRequest{RouteID: 10, SeatNumbers: []int{2, 1}, Passenger: alice})
		require.Error(t, err)
		assert.True(t, domain.IsConflict(err), "code %d", code)
		assert.False(t, domain.IsInternal(err), "code %d", code)
		assert.Equal(t, []int{2}, domain.ConflictSeats(err))
		require.NoError(t, mock.ExpectationsWereMet())
	}
}

func TestCreateBookingStorageFailureIsInternal(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM routes r").WithArgs(int64(10)).WillReturnRows(routeRows())
	mock.ExpectQuery("FROM seats").WithArgs(int64(1), 1).WillReturnRows(seatRow(101, 1))
	mock.ExpectQuery("SELECT seat_id FROM bookings").WillReturnRows(sqlmock.NewRows([]string{"seat_id"}))
	mock.ExpectExec("INSERT INTO passengers").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := BookingService{DB: db}.Create(testCtx(), models.BookingRequest{RouteID: 10, SeatNumbers: []int{1}, Passenger: alice})
	assert.True(t, domain.IsInternal(err))
	assert.ErrorIs(t, err, assert.AnError)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingValidation(t *testing.T) {
	cases := []struct {
		name string
		req  models.BookingRequest
		want string
	}{
		{"missing route", models.BookingRequest{SeatNumbers: []int{1}, Passenger: alice}, "Missing required data"},
		{"no seats", models.BookingRequest{RouteID: 1, Passenger: alice}, "Missing required data"},
		{"blank name", models.BookingRequest{RouteID: 1, SeatNumbers: []int{1}, Passenger: models.PassengerInput{Name: "  ", Age: 3, Email: "a@b", Phone: "1"}}, "Incomplete passenger details"},
		{"missing age", models.BookingRequest{RouteID: 1, SeatNumbers: []int{1}, Passenger: models.PassengerInput{Name: "A", Email: "a@b", Phone: "1"}}, "Incomplete passenger details"},
		{"negative age", models.BookingRequest{RouteID: 1, SeatNumbers: []int{1}, Passenger: models.PassengerInput{Name: "A", Age: -2, Email: "a@b", Phone: "1"}}, "age: must be greater than zero"},
		{"duplicate seat", models.BookingRequest{RouteID: 1, SeatNumbers: []int{4, 4}, Passenger: alice}, "seat_numbers: seat 4 requested more than once"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// validation runs before any storage access, so no db is needed
			_, err := BookingService{}.Create(testCtx(), tc.req)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
			assert.Equal(t, tc.want, err.Error())
		})
	}
}

func TestGetBookingDetail(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM bookings bk").WithArgs(int64(50)).WillReturnRows(detailRows(50, 3, 101, 1, "Pending"))

	d, err := BookingService{DB: db}.Get(testCtx(), 50)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, d.PaymentStatus)
	assert.Equal(t, "Bus X", d.Route.BusName)
	assert.Equal(t, 1, d.Seat.SeatNumber)

	mock.ExpectQuery("FROM bookings bk").WithArgs(int64(51)).WillReturnRows(sqlmock.NewRows(repositories.BookingDetailColumns))
	_, err = BookingService{DB: db}.Get(testCtx(), 51)
	assert.True(t, domain.IsNotFound(err))
}
