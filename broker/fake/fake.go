// Package fake provides a minimal in-memory broker.Broker for tests:
// every submission succeeds immediately and fills in full.
package fake

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/rustyeddy/crossbar/broker"
	"github.com/rustyeddy/crossbar/market"
)

// Broker is an in-memory broker.Broker test double.
type Broker struct {
	mu          sync.Mutex
	BuyingPower float64
	orders      map[string]market.OrderRef
	nextID      int64

	// Canceled records order ids passed to CancelOrder, for assertions.
	Canceled []string
}

// New returns a Broker with the given starting buying power.
func New(buyingPower float64) *Broker {
	return &Broker{BuyingPower: buyingPower, orders: make(map[string]market.OrderRef)}
}

func (b *Broker) Account(ctx context.Context) (broker.Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return broker.Account{ID: "fake", BuyingPower: b.BuyingPower}, nil
}

func (b *Broker) submit(qty float64) market.OrderRef {
	id := atomic.AddInt64(&b.nextID, 1)
	ref := market.OrderRef{ID: strconv.FormatInt(id, 10), Status: "filled", RequestedQty: qty, FilledQty: qty}

	b.mu.Lock()
	b.orders[ref.ID] = ref
	b.mu.Unlock()
	return ref
}

func (b *Broker) SubmitBuyLimit(ctx context.Context, symbol string, qty float64, limitPrice float64) (market.OrderRef, error) {
	return b.submit(qty), nil
}

func (b *Broker) SubmitBuyStopLimit(ctx context.Context, symbol string, qty float64, stopPrice, limitPrice float64) (market.OrderRef, error) {
	return b.submit(qty), nil
}

func (b *Broker) SubmitSellLimit(ctx context.Context, symbol string, qty float64, limitPrice float64) (market.OrderRef, error) {
	return b.submit(qty), nil
}

func (b *Broker) GetOrder(ctx context.Context, id string) (market.OrderRef, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.orders[id], nil
}

func (b *Broker) CancelOrder(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Canceled = append(b.Canceled, id)
	delete(b.orders, id)
	return nil
}

var _ broker.Broker = (*Broker)(nil)
