package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"hoponhub/internal/domain"
	"hoponhub/internal/domain/models"
)

// TicketClaims is the payload of a ticket token handed out with a payment confirmation.
type TicketClaims struct {
	BookingIDs  []int64 `json:"booking_ids"`
	RouteID     int64   `json:"route_id"`
	PassengerID int64   `json:"passenger_id"`
	jwt.RegisteredClaims
}

// TicketService signs and verifies ticket tokens. It only proves that the
// server issued the token; it is not an authentication mechanism.
type TicketService struct {
	Secret []byte
	Now    func() time.Time
}

func NewTicketService(secret string) TicketService {
	return TicketService{Secret: []byte(secret)}
}

func (s TicketService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// minTicketLifetime is the shortest validity a freshly issued token gets.
const minTicketLifetime = 24 * time.Hour

// Issue signs a token for the paid bookings. The token expires at midnight
// closing the route's travel date, and never less than a day after issue.
func (s TicketService) Issue(bookingIDs []int64, route models.Route, passengerID int64) (string, error) {
	if len(s.Secret) == 0 {
		return "", errors.New("ticket secret belum diset")
	}
	now := s.now()
	exp := now.Add(minTicketLifetime)
	if !route.Date.IsZero() {
		if end := route.Date.AddDate(0, 0, 1); end.After(exp) {
			exp = end
		}
	}
	claims := TicketClaims{
		BookingIDs:  bookingIDs,
		RouteID:     route.ID,
		PassengerID: passengerID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", fmt.Errorf("sign ticket: %w", err)
	}
	return signed, nil
}

// Verify parses a token issued by Issue. Malformed, forged and expired tokens
// are reported as a domain.ValidationError.
func (s TicketService) Verify(token string) (TicketClaims, error) {
	if token == "" {
		return TicketClaims{}, domain.ValidationError{Field: "token", Msg: "token is required"}
	}
	if len(s.Secret) == 0 {
		return TicketClaims{}, domain.InternalError{Msg: "Ticket verification is not configured"}
	}
	var claims TicketClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return TicketClaims{}, domain.ValidationError{Field: "token", Msg: "invalid or expired ticket", Err: err}
	}
	if len(claims.BookingIDs) == 0 {
		return TicketClaims{}, domain.ValidationError{Field: "token", Msg: "ticket carries no bookings"}
	}
	return claims, nil
}
