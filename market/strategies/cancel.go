package strategies

import (
	"context"

	"github.com/rustyeddy/crossbar/market"
)

// TryCancelOnRally implements the optional cancel-on-rally rule
// (§4.4.5): after a buy is submitted, if the price rallies past
// requestedPrice+cancelThreshold and the buy isn't filled yet, cancel it
// once. The comparison uses the buy command's own requested price, not a
// freshly fetched quote, matching the original's try_cancel_buy.
func TryCancelOnRally(ctx context.Context, d Deps, slot *market.SymbolSlot, second market.Bar) error {
	if !d.WithCancel {
		return nil
	}
	bc := slot.BuyCommand
	if bc == nil || !bc.Requested || !bc.HasPrice {
		return nil
	}
	if slot.CancelAttempted {
		return nil
	}
	ref := slot.LastBuyOrderRef
	if ref == nil || ref.Filled() {
		return nil
	}
	if slot.PlaceBuyAtMs != nil && second.StartMs <= *slot.PlaceBuyAtMs {
		return nil
	}

	threshold := d.CancelThreshold
	if threshold <= 0 {
		threshold = 0.03
	}
	if second.High < bc.RequestedPrice+threshold {
		return nil
	}

	_ = d.Broker.CancelOrder(ctx, ref.ID)
	slot.CancelAttempted = true
	return nil
}
