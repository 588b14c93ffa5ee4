package fake

import (
	"context"
	"testing"
)

func TestSubmitBuyFillsImmediately(t *testing.T) {
	b := New(100000)
	ref, err := b.SubmitBuyStopLimit(context.Background(), "AAPL", 10, 101, 103)
	if err != nil {
		t.Fatalf("SubmitBuyStopLimit: %v", err)
	}
	if !ref.Filled() {
		t.Fatalf("expected immediate fill: %+v", ref)
	}
}

func TestCancelOrderRecordsID(t *testing.T) {
	b := New(100000)
	ref, _ := b.SubmitBuyLimit(context.Background(), "AAPL", 5, 101)
	if err := b.CancelOrder(context.Background(), ref.ID); err != nil {
		t.Fatalf("CancelOrder: %v", err)
	}
	if len(b.Canceled) != 1 || b.Canceled[0] != ref.ID {
		t.Fatalf("expected cancel recorded: %+v", b.Canceled)
	}
}

func TestAccountReturnsConfiguredBuyingPower(t *testing.T) {
	b := New(42000)
	acct, err := b.Account(context.Background())
	if err != nil {
		t.Fatalf("Account: %v", err)
	}
	if acct.BuyingPower != 42000 {
		t.Fatalf("unexpected buying power: %v", acct.BuyingPower)
	}
}
