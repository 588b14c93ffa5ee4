// Package broker defines the narrow brokerage-gateway contract the
// strategy engine depends on: account lookup, order submission in the
// three shapes the strategy needs, order-status polling, and
// cancellation. Concrete implementations live in subpackages (alpaca for
// the real REST client, fake for tests).
package broker

import (
	"context"

	"github.com/rustyeddy/crossbar/market"
)

// TimeInForce values the engine submits. The engine only ever uses GTC.
const TimeInForceGTC = "gtc"

// Account is the subset of brokerage account state the strategy core
// needs: buying power to size orders against.
type Account struct {
	ID          string
	BuyingPower float64
}

// Broker is the gateway the strategy core issues orders through. Every
// method may fail transiently (network, rate limit); callers must
// tolerate failure per the error-handling design — a failed submission
// simply leaves the BuyCommand unrequested so it retries on the next
// qualifying tick.
type Broker interface {
	Account(ctx context.Context) (Account, error)

	SubmitBuyLimit(ctx context.Context, symbol string, qty float64, limitPrice float64) (market.OrderRef, error)
	SubmitBuyStopLimit(ctx context.Context, symbol string, qty float64, stopPrice, limitPrice float64) (market.OrderRef, error)
	SubmitSellLimit(ctx context.Context, symbol string, qty float64, limitPrice float64) (market.OrderRef, error)

	GetOrder(ctx context.Context, id string) (market.OrderRef, error)
	CancelOrder(ctx context.Context, id string) error
}
