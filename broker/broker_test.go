package broker

import (
	"context"
	"testing"

	"github.com/rustyeddy/crossbar/market"
)

// stubBroker is a minimal Broker satisfying the interface, used only to
// confirm the contract shape compiles and behaves as documented.
type stubBroker struct{}

func (s *stubBroker) Account(ctx context.Context) (Account, error) {
	return Account{ID: "stub", BuyingPower: 100000}, nil
}

func (s *stubBroker) SubmitBuyLimit(ctx context.Context, symbol string, qty, limitPrice float64) (market.OrderRef, error) {
	return market.OrderRef{ID: "buy-limit", RequestedQty: qty}, nil
}

func (s *stubBroker) SubmitBuyStopLimit(ctx context.Context, symbol string, qty, stopPrice, limitPrice float64) (market.OrderRef, error) {
	return market.OrderRef{ID: "buy-stop-limit", RequestedQty: qty}, nil
}

func (s *stubBroker) SubmitSellLimit(ctx context.Context, symbol string, qty, limitPrice float64) (market.OrderRef, error) {
	return market.OrderRef{ID: "sell-limit", RequestedQty: qty}, nil
}

func (s *stubBroker) GetOrder(ctx context.Context, id string) (market.OrderRef, error) {
	return market.OrderRef{ID: id}, nil
}

func (s *stubBroker) CancelOrder(ctx context.Context, id string) error {
	return nil
}

func TestStubBrokerSatisfiesInterface(t *testing.T) {
	var b Broker = &stubBroker{}

	acct, err := b.Account(context.Background())
	if err != nil {
		t.Fatalf("Account: %v", err)
	}
	if acct.BuyingPower != 100000 {
		t.Fatalf("unexpected buying power: %v", acct.BuyingPower)
	}

	ref, err := b.SubmitBuyStopLimit(context.Background(), "AAPL", 10, 101.0, 103.0)
	if err != nil {
		t.Fatalf("SubmitBuyStopLimit: %v", err)
	}
	if ref.RequestedQty != 10 {
		t.Fatalf("unexpected order ref: %+v", ref)
	}
}
