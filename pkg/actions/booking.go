package actions

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-eventforms/pkg/navigation"
	"github.com/goliatone/go-eventforms/pkg/pipeline"
)

// Booking notification copy.
const (
	BookingTitle          = "Ticket booked successfully"
	BookingFailureMessage = "Payment failed. Please try again."
)

// Booking charges the gateway for the submitted tickets.
type Booking struct {
	gateway  PaymentGateway
	logger   zerolog.Logger
	redirect string
}

// BookingOption configures a Booking action.
type BookingOption func(*Booking)

// WithGateway replaces the simulated gateway.
func WithGateway(g PaymentGateway) BookingOption {
	return func(b *Booking) {
		if g != nil {
			b.gateway = g
		}
	}
}

// WithBookingLogger attaches a structured logger.
func WithBookingLogger(logger zerolog.Logger) BookingOption {
	return func(b *Booking) {
		b.logger = logger
	}
}

// WithBookingRedirect overrides the route shown after a successful booking.
func WithBookingRedirect(route string) BookingOption {
	return func(b *Booking) {
		b.redirect = route
	}
}

// NewBooking builds the booking action. Without WithGateway it uses a
// SimulatedGateway on the real clock.
func NewBooking(options ...BookingOption) *Booking {
	b := &Booking{
		logger:   zerolog.Nop(),
		redirect: navigation.RouteEvents,
	}
	for _, opt := range options {
		if opt != nil {
			opt(b)
		}
	}
	if b.gateway == nil {
		b.gateway = NewSimulatedGateway()
	}
	return b
}

var _ pipeline.Action = (*Booking)(nil)

// Perform submits the charge and reports "You have booked N TYPE ticket(s)."
func (b *Booking) Perform(ctx context.Context, values map[string]any) (pipeline.Outcome, error) {
	quantity, err := intValue(values, "quantity")
	if err != nil {
		return pipeline.Outcome{}, err
	}
	charge := Charge{
		TicketType: stringValue(values, "ticketType"),
		Quantity:   quantity,
		CardNumber: stringValue(values, "cardNumber"),
		ExpiryDate: stringValue(values, "expiryDate"),
		CVV:        stringValue(values, "cvv"),
	}

	receipt, err := b.gateway.Charge(ctx, charge)
	if err != nil {
		return pipeline.Outcome{}, fmt.Errorf("actions: charge: %w", err)
	}

	b.logger.Info().
		Str("receipt", receipt.ID).
		Str("ticket_type", charge.TicketType).
		Int64("quantity", charge.Quantity).
		Str("card", MaskCard(charge.CardNumber)).
		Msg("ticket booked")

	return pipeline.Outcome{
		Title:    BookingTitle,
		Message:  fmt.Sprintf("You have booked %d %s ticket(s).", charge.Quantity, charge.TicketType),
		Redirect: b.redirect,
	}, nil
}

// MaskCard keeps the last four digits of a card number.
func MaskCard(number string) string {
	runes := []rune(number)
	if len(runes) <= 4 {
		return number
	}
	masked := make([]rune, len(runes))
	for i := range runes {
		if i < len(runes)-4 {
			masked[i] = '*'
			continue
		}
		masked[i] = runes[i]
	}
	return string(masked)
}
