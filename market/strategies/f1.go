package strategies

import (
	"context"

	"github.com/rustyeddy/crossbar/market"
)

// F1 is the baseline variant: exit on the third-intersection transition
// (normal mode) or on a forced sell when an excluded window opens while
// holding.
type F1 struct{}

func (F1) Name() string { return "F1" }

func (F1) OnMinuteBarAfterIndicators(ctx context.Context, d Deps, slot *market.SymbolSlot, bar *market.EnrichedMinuteBar, holding, anyPosition bool) error {
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

func (F1) OnSecondBar(ctx context.Context, d Deps, es ExchangeState, slot *market.SymbolSlot, second market.Bar, holding bool) (bool, error) {
	if _, err := processSecondBar(ctx, d, es, slot, second); err != nil {
		return false, err
	}

	if !holding {
		return false, nil
	}
	if CheckNormalExit(slot, second) {
		return true, SubmitSell(ctx, d, slot)
	}
	return false, nil
}
