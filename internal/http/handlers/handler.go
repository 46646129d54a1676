package handlers

import (
	"context"
	"database/sql"

	"hoponhub/internal/domain/models"
	"hoponhub/internal/services"
)

type Searcher interface {
	Search(ctx context.Context, from, to, date string) ([]models.Offering, error)
}

type SeatLister interface {
	RouteSeats(ctx context.Context, routeID int64) (models.RouteSeats, error)
}

type Booker interface {
	Create(ctx context.Context, req models.BookingRequest) (models.BookingResult, error)
	Get(ctx context.Context, id int64) (models.BookingDetail, error)
}

type PaymentProcessor interface {
	Process(ctx context.Context, req models.PaymentRequest) (models.Confirmation, error)
}

type DocumentGenerator interface {
	GenerateETicket(ctx context.Context, bookingID int64) ([]byte, string, error)
	GenerateInvoice(ctx context.Context, bookingID int64) ([]byte, string, error)
}

type TicketVerifier interface {
	Verify(token string) (services.TicketClaims, error)
}

type Seeder interface {
	Seed(ctx context.Context) (services.SeedSummary, error)
}

// Handler holds the services behind the HTTP API. main wires the concrete
// services; tests substitute fakes.
type Handler struct {
	DB       *sql.DB
	Search   Searcher
	Seats    SeatLister
	Bookings Booker
	Payments PaymentProcessor
	Docs     DocumentGenerator
	Tickets  TicketVerifier
	Seeder   Seeder
}
