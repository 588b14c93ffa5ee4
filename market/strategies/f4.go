package strategies

import (
	"context"

	"github.com/rustyeddy/crossbar/market"
)

// F4 replaces the normal third-intersection exit with the decrease
// watcher: after a third intersection it arms on-decrease exit instead
// of waiting for the next second's open.
type F4 struct{}

func (F4) Name() string { return "F4" }

func (F4) OnMinuteBarAfterIndicators(ctx context.Context, d Deps, slot *market.SymbolSlot, bar *market.EnrichedMinuteBar, holding, anyPosition bool) error {
	event := processCrossover(d, anyPosition, slot, bar)

	if !holding {
		return nil
	}

	switch event {
	case EventThird:
		ArmDecreaseWatcher(slot)
	case EventForcedSell:
		ArmForcedExit(slot)
		return SubmitSell(ctx, d, slot)
	}
	return nil
}

func (F4) OnSecondBar(ctx context.Context, d Deps, es ExchangeState, slot *market.SymbolSlot, second market.Bar, holding bool) (bool, error) {
	if _, err := processSecondBar(ctx, d, es, slot, second); err != nil {
		return false, err
	}

	if !holding {
		return false, nil
	}
	if CheckDecreaseExit(slot, second) {
		return true, SubmitSell(ctx, d, slot)
	}
	return false, nil
}
