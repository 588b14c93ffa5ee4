package strategies

import (
	"context"

	"github.com/rustyeddy/crossbar/market"
)

// processCrossover runs the shared crossover + buy-intent logic every
// variant performs identically on each new minute bar, returning the
// transition event so the variant can decide how to arm its exit.
func processCrossover(d Deps, anyPosition bool, slot *market.SymbolSlot, bar *market.EnrichedMinuteBar) Event {
	index := len(slot.Bars) - 1
	event := AdvanceCrossover(&slot.Intersection, bar, index, d.Excluded)

	if event == EventSecond {
		TryBuyIntent(d, anyPosition, slot, bar)
	}

	return event
}

// processSecondBar runs the shared buy-trigger and cancel-on-rally logic
// every variant performs identically on each second bar, returning
// whether a buy was just submitted this tick.
func processSecondBar(ctx context.Context, d Deps, es ExchangeState, slot *market.SymbolSlot, second market.Bar) (bool, error) {
	bought, err := TryBuyTrigger(ctx, d, es, slot, second)
	if err != nil {
		return bought, err
	}
	if err := TryCancelOnRally(ctx, d, slot, second); err != nil {
		return bought, err
	}
	return bought, nil
}
