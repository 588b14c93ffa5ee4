package engine

import (
	"context"
	"log"

	"github.com/rustyeddy/crossbar/calendar"
	"github.com/rustyeddy/crossbar/feed"
	"github.com/rustyeddy/crossbar/journal"
	"github.com/rustyeddy/crossbar/market"
	"github.com/rustyeddy/crossbar/market/indicators"
	"github.com/rustyeddy/crossbar/market/strategies"
)

// Run drives the engine loop: it processes enqueued feed events one at a
// time until ctx is cancelled, keeping all EngineState mutation on this
// single goroutine (§5).
func (e *Engine) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-e.events:
			e.dispatch(ctx, ev)
		}
	}
}

func (e *Engine) dispatch(ctx context.Context, ev any) {
	switch v := ev.(type) {
	case feed.BarEvent:
		switch v.Kind {
		case feed.EventKindMinuteBar:
			e.handleMinuteBar(ctx, v)
		case feed.EventKindSecondBar:
			e.handleSecondBar(ctx, v)
		}
	case feed.StatusEvent:
		e.handleStatus(ctx, v)
	}
}

func barFromEvent(v feed.BarEvent) market.Bar {
	return market.Bar{
		Symbol: v.Symbol, StartMs: v.StartMs, EndMs: v.EndMs,
		Open: v.Open, High: v.High, Low: v.Low, Close: v.Close, Volume: v.Volume,
	}
}

// handleMinuteBar enriches a new minute bar with SMA/EMA over price and
// volume, appends it to the symbol's slot, and hands it to the strategy.
func (e *Engine) handleMinuteBar(ctx context.Context, v feed.BarEvent) {
	slot, ok := e.State.Slots[v.Symbol]
	if !ok {
		log.Printf("engine: minute bar for unsubscribed symbol %s, dropping", v.Symbol)
		return
	}

	bar := barFromEvent(v)
	if err := bar.Validate(); err != nil {
		log.Printf("engine: invariant violation, dropping bar: %v", err)
		return
	}

	enriched := e.enrich(slot, bar)
	slot.Bars = append(slot.Bars, enriched)

	holding := e.State.CurrentBoughtSymbol == v.Symbol
	anyPosition := e.State.Trading

	if err := e.Strategy.OnMinuteBarAfterIndicators(ctx, e.deps(), slot, &slot.Bars[len(slot.Bars)-1], holding, anyPosition); err != nil {
		log.Printf("engine: strategy error on minute bar for %s: %v", v.Symbol, err)
	}

	if holding && slot.SellingMode == market.SellingModeForced && slot.SellAtPrice != nil {
		e.settle(ctx, slot, bar.EndMs, *slot.SellAtPrice)
	}
}

// enrich computes sma/ema over price and volume for a bar about to be
// appended at index len(slot.Bars), following the backward-window SMA
// rule and the custom recursive EMA formula (§4.2).
func (e *Engine) enrich(slot *market.SymbolSlot, bar market.Bar) market.EnrichedMinuteBar {
	i := len(slot.Bars)

	starts := make([]int64, i+1)
	closes := make([]float64, i+1)
	vols := make([]float64, i+1)
	for j, b := range slot.Bars {
		starts[j] = b.StartMs
		closes[j] = b.Close
		vols[j] = b.Volume
	}
	starts[i] = bar.StartMs
	closes[i] = bar.Close
	vols[i] = bar.Volume

	sma := indicators.SMA(starts, closes, i)
	vsma := indicators.SMA(starts, vols, i)

	var sma0, vsma0, prevEMA, prevVEMA float64
	if i == 0 {
		sma0 = sma
		vsma0 = vsma
	} else {
		sma0 = indicators.SMA(starts, closes, 0)
		vsma0 = indicators.SMA(starts, vols, 0)
		prevEMA = slot.Bars[i-1].EMA
		prevVEMA = slot.Bars[i-1].VEMA
	}

	ema := indicators.NextEMA(i, bar.Close, sma0, prevEMA)
	vema := indicators.NextEMA(i, bar.Volume, vsma0, prevVEMA)

	return market.EnrichedMinuteBar{
		Bar:     bar,
		SMA:     sma,
		EMA:     ema,
		VSMA:    vsma,
		VEMA:    vema,
		CalDate: e.clock.DateString(bar.StartMs),
		CalTime: e.clock.ClockString(bar.StartMs),
	}
}

// handleSecondBar evaluates the buy trigger, cancel-on-rally, and the
// active sell watcher for second-granularity bars.
func (e *Engine) handleSecondBar(ctx context.Context, v feed.BarEvent) {
	slot, ok := e.State.Slots[v.Symbol]
	if !ok {
		return
	}

	second := barFromEvent(v)
	if err := second.Validate(); err != nil {
		log.Printf("engine: invariant violation, dropping second bar: %v", err)
		return
	}

	holding := e.State.CurrentBoughtSymbol == v.Symbol
	wasRequested := slot.BuyCommand != nil && slot.BuyCommand.Requested

	sold, err := e.Strategy.OnSecondBar(ctx, e.deps(), e, slot, second, holding)
	if err != nil {
		log.Printf("engine: strategy error on second bar for %s: %v", v.Symbol, err)
	}

	if !wasRequested && slot.BuyCommand != nil && slot.BuyCommand.Requested {
		e.flushJournal(slot, "buy")
	}

	if sold && slot.SellAtPrice != nil {
		e.settle(ctx, slot, second.EndMs, *slot.SellAtPrice)
	}
}

// handleStatus processes subscription lifecycle events: slot creation
// (refusing banned symbols) and slot teardown (blind-exiting an open
// position first).
func (e *Engine) handleStatus(ctx context.Context, v feed.StatusEvent) {
	if v.Channel != feed.ChannelMinute {
		return
	}

	if v.Subscribed {
		now := calendar.NowMs()
		if unban, banned := e.State.BannedSymbols[v.Symbol]; banned {
			if unban > now {
				log.Printf("engine: refusing subscription for banned symbol %s", v.Symbol)
				return
			}
			delete(e.State.BannedSymbols, v.Symbol)
			if e.Bans != nil {
				if err := e.Bans.Unban(v.Symbol); err != nil {
					log.Printf("engine: ban-list unban failed for %s: %v", v.Symbol, err)
				}
			}
		}
		e.State.Slots[v.Symbol] = &market.SymbolSlot{Symbol: v.Symbol}
		return
	}

	slot, ok := e.State.Slots[v.Symbol]
	if !ok {
		return
	}

	holding := e.State.CurrentBoughtSymbol == v.Symbol
	if holding {
		strategies.ArmBlindExit(slot)
		if err := strategies.SubmitSell(ctx, e.deps(), slot); err != nil {
			log.Printf("engine: blind-exit sell failed for %s: %v", v.Symbol, err)
		}
		if slot.SellAtPrice == nil {
			if last, ok := slot.LastBar(); ok {
				price := last.Close
				slot.SellAtPrice = &price
			}
		}
		saleTs := calendar.NowMs()
		if last, ok := slot.LastBar(); ok {
			saleTs = last.EndMs
		}
		if slot.SellAtPrice != nil {
			e.settle(ctx, slot, saleTs, *slot.SellAtPrice)
		}
	}

	e.flushJournal(slot, "final")
	delete(e.State.Slots, v.Symbol)
}

// flushJournal serializes the slot's bar history under the configured
// journal, swallowing and logging failures so journaling never blocks
// trading (§4.6, §7.4).
func (e *Engine) flushJournal(slot *market.SymbolSlot, phase string) {
	if e.Journal == nil || len(slot.Bars) == 0 {
		return
	}

	first := slot.Bars[0]
	last := slot.Bars[len(slot.Bars)-1]
	meta := journal.BarDumpMeta{
		Formula:   e.Strategy.Name(),
		Phase:     phase,
		Symbol:    slot.Symbol,
		StartDate: first.CalDate,
		StartTime: first.CalTime,
		EndDate:   last.CalDate,
		EndTime:   last.CalTime,
	}
	if err := e.Journal.WriteBars(meta, slot.Bars); err != nil {
		log.Printf("engine: journal write failed for %s: %v", slot.Symbol, err)
	}
}
