package actions

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-eventforms/pkg/clock"
)

// DefaultPaymentDelay is the artificial latency of the simulated gateway.
const DefaultPaymentDelay = 2 * time.Second

// Charge is one payment request.
type Charge struct {
	TicketType string
	Quantity   int64
	CardNumber string
	ExpiryDate string
	CVV        string
}

// Receipt confirms an approved charge.
type Receipt struct {
	ID         string
	ApprovedAt time.Time
}

// PaymentGateway approves or declines charges.
type PaymentGateway interface {
	Charge(ctx context.Context, charge Charge) (Receipt, error)
}

// SimulatedGateway approves every charge after a fixed delay.
type SimulatedGateway struct {
	clock clock.Clock
	delay time.Duration
	newID func() string
}

// GatewayOption configures a SimulatedGateway.
type GatewayOption func(*SimulatedGateway)

// WithGatewayClock sets the clock the delay is measured on.
func WithGatewayClock(c clock.Clock) GatewayOption {
	return func(g *SimulatedGateway) {
		if c != nil {
			g.clock = c
		}
	}
}

// WithDelay overrides the artificial latency. Zero approves immediately.
func WithDelay(d time.Duration) GatewayOption {
	return func(g *SimulatedGateway) {
		if d >= 0 {
			g.delay = d
		}
	}
}

// NewSimulatedGateway returns a gateway using the real clock and the default
// delay unless overridden.
func NewSimulatedGateway(options ...GatewayOption) *SimulatedGateway {
	g := &SimulatedGateway{
		clock: clock.Real{},
		delay: DefaultPaymentDelay,
		newID: uuid.NewString,
	}
	for _, opt := range options {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Charge waits for the configured delay and approves. Cancelling ctx aborts
// the wait and returns the context error.
func (g *SimulatedGateway) Charge(ctx context.Context, _ Charge) (Receipt, error) {
	select {
	case at := <-g.clock.After(g.delay):
		return Receipt{ID: g.newID(), ApprovedAt: at}, nil
	case <-ctx.Done():
		return Receipt{}, ctx.Err()
	}
}
