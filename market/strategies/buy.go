package strategies

import (
	"context"

	"github.com/rustyeddy/crossbar/calendar"
	"github.com/rustyeddy/crossbar/market"
	"github.com/rustyeddy/crossbar/market/indicators"
	"github.com/rustyeddy/crossbar/risk"
)

// TryBuyIntent evaluates the Buy Intent precondition (§4.4.1) on a second
// intersection event and, if satisfied, stores a BuyCommand on the slot.
// It never submits an order itself — that's the Buy Trigger's job.
func TryBuyIntent(d Deps, engineTrading bool, slot *market.SymbolSlot, bar *market.EnrichedMinuteBar) {
	if engineTrading {
		return
	}
	if d.Excluded.Contains(slot.Intersection.SecondCalT) {
		return
	}

	buyAt := indicators.Round2(slot.Intersection.HighestBetweenFirstAndSecond + 0.01)
	if !risk.InPriceRange(buyAt) {
		return
	}
	if !d.Allowed.Contains(bar.CalTime) {
		return
	}

	slot.BuyCommand = &market.BuyCommand{
		Symbol:    slot.Symbol,
		BuyAt:     buyAt,
		CreatedTs: bar.EndMs,
	}
}

// isWorthy implements the four-difference and volume rule (§4.4.2): the
// last minute bar must have volume above 5000 and all four consecutive
// price differences (each rounded to 2dp) must exceed 0.02, and a
// majority of the last up-to-5 minute bars must satisfy the same
// four-difference test.
func isWorthy(slot *market.SymbolSlot) bool {
	n := len(slot.Bars)
	if n == 0 {
		return false
	}
	last := slot.Bars[n-1]
	if last.Volume <= 5000 {
		return false
	}
	if !fourDiffPasses(last) {
		return false
	}

	window := 5
	if n < window {
		window = n
	}
	passes := 0
	for i := n - window; i < n; i++ {
		if fourDiffPasses(slot.Bars[i]) {
			passes++
		}
	}
	return passes*2 > window
}

func fourDiffPasses(bar market.EnrichedMinuteBar) bool {
	diffs := [4]float64{
		indicators.Round2(absf(bar.Open - bar.High)),
		indicators.Round2(absf(bar.High - bar.Low)),
		indicators.Round2(absf(bar.Low - bar.Close)),
		indicators.Round2(absf(bar.Close - bar.Open)),
	}
	for _, d := range diffs {
		if d <= 0.02 {
			return false
		}
	}
	return true
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// TryBuyTrigger evaluates the Buy Trigger condition (§4.4.2) for a slot
// with an unfulfilled BuyCommand and, on pass, sizes and submits the buy
// order. It returns true if an order was submitted.
func TryBuyTrigger(ctx context.Context, d Deps, es ExchangeState, slot *market.SymbolSlot, second market.Bar) (bool, error) {
	bc := slot.BuyCommand
	if bc == nil || bc.Requested {
		return false, nil
	}
	if es.IsTrading() {
		return false, nil
	}
	if second.StartMs <= bc.CreatedTs {
		return false, nil
	}
	if second.High < bc.BuyAt-0.01 {
		return false, nil
	}

	n := len(slot.Bars)
	if n == 0 {
		return false, nil
	}
	last := slot.Bars[n-1]
	if last.SMA == last.EMA {
		return false, nil
	}
	if n >= 2 {
		prev := slot.Bars[n-2]
		if !(last.SMA > prev.SMA && last.EMA > prev.EMA) {
			return false, nil
		}
	} else {
		return false, nil
	}

	if !isWorthy(slot) {
		return false, nil
	}

	clockTime := d.Clock.ClockString(second.EndMs)
	if d.Excluded.Contains(clockTime) {
		return false, nil
	}

	price := bc.BuyAt
	totalEmaVolume30, haveInMemory := totalEmaVolumeFromSlot(slot)
	if !haveInMemory {
		var err error
		totalEmaVolume30, _, err = d.VolumeFallback.TotalEmaVolume30(ctx, slot.Symbol, second.EndMs)
		if err != nil {
			// Missing historical data: eq1 = 0, rely on eq2 alone (§7.3).
			totalEmaVolume30 = 0
		}
	}

	account, err := d.Broker.Account(ctx)
	if err != nil {
		return false, err
	}

	eq1 := risk.Eq1(totalEmaVolume30, d.SizingCfg.VolumeDivisor)
	eq2 := risk.Eq2(account.BuyingPower, d.SizingCfg.ReserveBalance, price, d.SizingCfg.BuyingPowerFraction)
	qty := risk.Quantity(eq1, eq2)
	if qty <= 0 {
		return false, nil
	}

	ref, err := submitBuyForSession(ctx, d, slot.Symbol, qty, price, clockTime)
	if err != nil {
		return false, err
	}

	bc.Requested = true
	bc.RequestedPrice = price
	bc.HasPrice = true
	slot.LastBuyOrderRef = &ref
	now := second.EndMs
	slot.PlaceBuyAtMs = &now
	es.SetCurrentBoughtSymbol(slot.Symbol)

	return true, nil
}

// totalEmaVolumeFromSlot sums the last 30 in-memory v_ema values when the
// slot has at least 40 enriched bars, matching the §4.4.3 "use in-memory
// v_ema over the last 30" rule.
func totalEmaVolumeFromSlot(slot *market.SymbolSlot) (float64, bool) {
	n := len(slot.Bars)
	if n < 40 {
		return 0, false
	}
	total := 0.0
	for i := n - 30; i < n; i++ {
		total += slot.Bars[i].VEMA
	}
	return total, true
}

// submitBuyForSession selects the order type by the current session
// (§4.4.3): limit for pre/after-market, stop-limit for normal hours.
func submitBuyForSession(ctx context.Context, d Deps, symbol string, qty int, price float64, clockTime string) (market.OrderRef, error) {
	switch calendar.ClassifySession(clockTime) {
	case calendar.SessionPreMarket, calendar.SessionAfterMarket:
		limit := indicators.Round2(price + 0.02)
		return d.Broker.SubmitBuyLimit(ctx, symbol, float64(qty), limit)
	default:
		stop := indicators.Round2(price + 0.01)
		limit := indicators.Round2(price + 0.03)
		return d.Broker.SubmitBuyStopLimit(ctx, symbol, float64(qty), stop, limit)
	}
}

// ExchangeState is the small seam strategies use to read and set the
// engine's exclusive "currently holding" symbol without importing the
// engine package (which imports strategies).
type ExchangeState interface {
	SetCurrentBoughtSymbol(symbol string)

	// IsTrading reports whether any symbol is already held or has an
	// outstanding buy request, gating the buy trigger process-wide so
	// at most one position can ever be live at a time (§3/§5).
	IsTrading() bool
}
