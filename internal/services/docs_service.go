package services

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"hoponhub/internal/domain/models"
	"hoponhub/internal/repositories"
	"hoponhub/internal/utils"
)

// ErrPaymentPending is returned when a document is requested for an unpaid booking.
var ErrPaymentPending = errors.New("payment pending")

// DocsService renders the e-ticket and invoice PDFs of one booking (one seat).
type DocsService struct {
	DB     *sql.DB
	Loader func(ctx context.Context, bookingID int64) (models.BookingDetail, error)
}

func (s DocsService) GenerateETicket(ctx context.Context, bookingID int64) ([]byte, string, error) {
	d, err := s.loadPaid(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "docs", "generate_eticket", fmt.Sprintf("booking_id=%d", bookingID))
	return buildETicketPDF(d)
}

func (s DocsService) GenerateInvoice(ctx context.Context, bookingID int64) ([]byte, string, error) {
	d, err := s.loadPaid(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "docs", "generate_invoice", fmt.Sprintf("booking_id=%d", bookingID))
	return buildInvoicePDF(d)
}

func (s DocsService) loadPaid(ctx context.Context, bookingID int64) (models.BookingDetail, error) {
	var (
		d   models.BookingDetail
		err error
	)
	if s.Loader != nil {
		d, err = s.Loader(ctx, bookingID)
	} else {
		d, err = repositories.BookingRepository{DB: s.DB}.GetDetail(ctx, bookingID)
	}
	if err != nil {
		return d, asDomainError(err, "Failed to load booking")
	}
	if !d.PaymentStatus.IsPaid() {
		return d, ErrPaymentPending
	}
	return d, nil
}

// TicketCode identifies one seat of one booking on printed documents.
func TicketCode(d models.BookingDetail) string {
	return fmt.Sprintf("TCK-%d-%d", d.ID, d.Seat.SeatNumber)
}

func buildETicketPDF(d models.BookingDetail) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Passenger    : %s", safe(d.Passenger.Name, "-")),
		fmt.Sprintf("Age          : %d", d.Passenger.Age),
		fmt.Sprintf("Route        : %s -> %s", safe(d.Route.FromLocation, "-"), safe(d.Route.ToLocation, "-")),
		fmt.Sprintf("Date/Time    : %s %s", safe(utils.FormatDate(d.Route.Date), "-"), safe(d.Route.DepartureTime, "-")),
		fmt.Sprintf("Bus          : %s", safe(d.Route.BusName, "-")),
		fmt.Sprintf("Seat         : %d", d.Seat.SeatNumber),
		fmt.Sprintf("Price        : %s", utils.FormatPrice(d.TotalPrice)),
		fmt.Sprintf("Booking      : #%d", d.ID),
		fmt.Sprintf("Ticket Code  : %s", TicketCode(d)),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This e-ticket is valid for one passenger (one seat). Show it at boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%d_%s.pdf", d.ID, utils.SafeFilenamePart(fmt.Sprintf("%s_%d", d.Passenger.Name, d.Seat.SeatNumber)))
	return buf.Bytes(), filename, nil
}

func buildInvoicePDF(d models.BookingDetail) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	invNo := fmt.Sprintf("INV-%d-%d", d.ID, d.Seat.SeatNumber)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Invoice No : "+invNo)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Booked At  : "+safe(utils.FormatDateTime(d.BookingDate), "-"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Billed to:")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Name  : %s", safe(d.Passenger.Name, "-")))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Email : %s", safe(d.Passenger.Email, "-")))
	pdf.Ln(10)

	desc := fmt.Sprintf("Bus ticket %s -> %s (%s %s) %s seat %d",
		safe(d.Route.FromLocation, "-"), safe(d.Route.ToLocation, "-"),
		safe(utils.FormatDate(d.Route.Date), "-"), safe(d.Route.DepartureTime, "-"),
		safe(d.Route.BusName, "-"), d.Seat.SeatNumber,
	)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Details:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, "1) "+desc, "", "", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatPrice(d.TotalPrice))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Payment status: "+string(d.PaymentStatus), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("INVOICE_%d_%s.pdf", d.ID, utils.SafeFilenamePart(d.Passenger.Name))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
