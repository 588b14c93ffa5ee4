package strategies

import (
	"context"

	"github.com/rustyeddy/crossbar/market"
)

// F3 arms a decrease watcher as soon as its buy is requested, and also
// keeps the normal third-intersection exit as a fallback (whichever
// fires first wins). Per the preserved open-question decision, its
// normal-mode sell only arms tryingSellTs (sellAtPrice is taken from the
// next qualifying second bar's open); it does not submit immediately the
// way forced/blind do.
type F3 struct{}

func (F3) Name() string { return "F3" }

func (F3) OnMinuteBarAfterIndicators(ctx context.Context, d Deps, slot *market.SymbolSlot, bar *market.EnrichedMinuteBar, holding, anyPosition bool) error {
	event := processCrossover(d, anyPosition, slot, bar)

	if !holding {
		return nil
	}

	switch event {
	case EventThird:
		ArmNormalExit(slot, bar)
	case EventForcedSell:
		ArmForcedExit(slot)
		return SubmitSell(ctx, d, slot)
	}
	return nil
}

func (F3) OnSecondBar(ctx context.Context, d Deps, es ExchangeState, slot *market.SymbolSlot, second market.Bar, holding bool) (bool, error) {
	wasRequested := slot.BuyCommand != nil && slot.BuyCommand.Requested

	if _, err := processSecondBar(ctx, d, es, slot, second); err != nil {
		return false, err
	}

	if !wasRequested && slot.BuyCommand != nil && slot.BuyCommand.Requested {
		// Buy just fired this tick: arm the decrease watcher immediately,
		// ahead of any third-intersection exit.
		ArmDecreaseWatcher(slot)
	}

	if !holding {
		return false, nil
	}

	if CheckDecreaseExit(slot, second) {
		return true, SubmitSell(ctx, d, slot)
	}
	if CheckNormalExit(slot, second) {
		return true, SubmitSell(ctx, d, slot)
	}
	return false, nil
}
