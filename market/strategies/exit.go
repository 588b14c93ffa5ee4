package strategies

import (
	"context"

	"github.com/rustyeddy/crossbar/market"
)

// sellLimitPrice is the fixed limit price every sell submission uses
// (§4.4.4's "Sell submission" rule): the exit always crosses the book at
// a nominal limit of 0.01, relying on the broker to fill at market.
const sellLimitPrice = 0.01

// SubmitSell implements the common sell-submission rule shared by every
// exit policy: sell-limit at 0.01 for the filled quantity of the last buy
// order. The ref captured at submission time only reflects the order's
// state at the moment it was placed, so the order is re-polled first
// (§5's status-polling suspension point) before the filled check. If the
// buy isn't filled yet and no cancel has been attempted, cancel it
// instead of selling. A cancel failure is treated as success ("order
// likely filled") per the error-handling design, so CancelAttempted is
// set regardless of the cancel call's outcome.
func SubmitSell(ctx context.Context, d Deps, slot *market.SymbolSlot) error {
	ref := slot.LastBuyOrderRef
	if ref == nil {
		return nil
	}

	current, err := d.Broker.GetOrder(ctx, ref.ID)
	if err != nil {
		current = *ref
	}
	slot.LastBuyOrderRef = &current

	if !current.Filled() {
		if slot.CancelAttempted {
			return nil
		}
		_ = d.Broker.CancelOrder(ctx, ref.ID)
		slot.CancelAttempted = true
		return nil
	}

	_, err = d.Broker.SubmitSellLimit(ctx, slot.Symbol, current.FilledQty, sellLimitPrice)
	return err
}

// ArmNormalExit arms the "normal" exit on a third-intersection
// transition: tryingSellTs is set to the bar's close time, and the sell
// itself is deferred to the next second bar whose start strictly exceeds
// it (CheckNormalExit).
func ArmNormalExit(slot *market.SymbolSlot, bar *market.EnrichedMinuteBar) {
	ts := bar.EndMs
	slot.TryingSellTs = &ts
	slot.SellingMode = market.SellingModeNormal
}

// CheckNormalExit reports whether the armed normal exit should fire on
// this second bar, and if so records the bar's open as the tracked exit
// price before the caller submits the sell.
func CheckNormalExit(slot *market.SymbolSlot, second market.Bar) bool {
	if slot.TryingSellTs == nil {
		return false
	}
	if second.StartMs <= *slot.TryingSellTs {
		return false
	}
	price := second.Open
	slot.SellAtPrice = &price
	return true
}

// ArmForcedExit arms an immediate exit: a position is open and the clock
// has entered an excluded window. The reference price is the last
// minute's low.
func ArmForcedExit(slot *market.SymbolSlot) {
	slot.SellingMode = market.SellingModeForced
	if last, ok := slot.LastBar(); ok {
		low := last.Low
		slot.SellAtPrice = &low
	}
}

// ArmBlindExit arms an immediate exit triggered by an unsubscribe while
// holding a position.
func ArmBlindExit(slot *market.SymbolSlot) {
	slot.SellingMode = market.SellingModeBlind
}

// ArmDecreaseWatcher arms the "sell on decrease" exit used by F3 (after
// buy is requested) and F4 (after third-intersection): the watcher fires
// on any second bar whose low drops below the last minute bar's low. It
// is tracked independently of SellingMode so F3 can keep its normal
// third-intersection exit armed as a simultaneous fallback.
func ArmDecreaseWatcher(slot *market.SymbolSlot) {
	slot.DecreaseArmed = true
	if slot.SellingMode == market.SellingModeNone {
		slot.SellingMode = market.SellingModeDecrease
	}
}

// CheckDecreaseExit reports whether the decrease watcher should fire on
// this second bar, recording the exit price (lastMinute.low - 0.01) when
// it does.
func CheckDecreaseExit(slot *market.SymbolSlot, second market.Bar) bool {
	if !slot.DecreaseArmed {
		return false
	}
	last, ok := slot.LastBar()
	if !ok {
		return false
	}
	if second.Low >= last.Low {
		return false
	}
	price := last.Low - 0.01
	slot.SellAtPrice = &price
	return true
}
