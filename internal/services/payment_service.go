package services

import (
	"context"
	"database/sql"
	"fmt"
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

type PaymentService struct {
	DB      *sql.DB
	Tickets *TicketService
	Now     func() time.Time
}

func (s PaymentService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return utils.NowUTC()
}

// Process marks every listed booking as Paid. Either all bookings are updated
// or none: an unknown id aborts before the update. Passenger and route of the
// confirmation come from the first listed booking; seat numbers and total cover
// all of them. Paying an already paid booking is a no-op.
func (s PaymentService) Process(ctx context.Context, req models.PaymentRequest) (models.Confirmation, error) {
	ids := uniqueIDs(req.BookingIDs)
	method := strings.TrimSpace(req.PaymentMethod)
	if len(ids) == 0 || method == "" {
		return models.Confirmation{}, domain.ValidationError{Msg: "Missing booking IDs or payment method"}
	}
	reqID := utils.RequestIDFrom(ctx)

	details := make([]models.BookingDetail, 0, len(ids))
	err := intdb.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		repo := repositories.BookingRepository{DB: tx}
		for _, id := range ids {
			d, err := repo.GetDetail(ctx, id)
			if err != nil {
				if domain.IsNotFound(err) {
					return domain.NotFoundError{Resource: "booking", Msg: fmt.Sprintf("Booking %d not found", id), Err: err}
				}
				return err
			}
			details = append(details, d)
		}

		return repo.UpdatePaymentStatus(ctx, ids, domain.PaymentPaid)
	})
	if err != nil {
		utils.LogEvent(reqID, "payment", "process_error", fmt.Sprintf("booking_ids=%v err=%v", ids, err))
		return models.Confirmation{}, asDomainError(err, "Failed to process payment")
	}

	first := details[0]
	if mixedBookings(details) {
		utils.LogEvent(reqID, "payment", "mixed_bookings",
			fmt.Sprintf("booking_ids=%v confirmation uses booking_id=%d", ids, first.ID))
	}
	conf := models.Confirmation{
		BookingIDs:    ids,
		Passenger:     first.Passenger,
		Route:         first.Route,
		SeatNumbers:   make([]int, 0, len(details)),
		PaymentMethod: method,
		PaymentStatus: domain.PaymentPaid,
		BookingDate:   s.now(),
	}
	prices := make([]decimal.Decimal, 0, len(details))
	for _, d := range details {
		conf.SeatNumbers = append(conf.SeatNumbers, d.Seat.SeatNumber)
		prices = append(prices, d.TotalPrice)
	}
	conf.TotalPrice = utils.SumPrices(prices)

	if s.Tickets != nil {
		token, err := s.Tickets.Issue(ids, first.Route, first.PassengerID)
		if err != nil {
			// payment is already committed; the confirmation goes out without a token
			utils.LogEvent(reqID, "payment", "ticket_token_error", err.Error())
		} else {
			conf.TicketToken = token
		}
	}

	metrics.RecordPayment(method)
	utils.LogEvent(reqID, "payment", "process",
		fmt.Sprintf("booking_ids=%v method=%s total=%s", ids, method, conf.TotalPrice.StringFixed(2)))
	return conf, nil
}

// uniqueIDs drops duplicates while keeping first-occurrence order.
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// mixedBookings reports whether the bookings span more than one passenger or route.
func mixedBookings(details []models.BookingDetail) bool {
	for _, d := range details[1:] {
		if d.PassengerID != details[0].PassengerID || d.RouteID != details[0].RouteID {
			return true
		}
	}
	return false
}
