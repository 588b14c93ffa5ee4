package engine

import (
	"context"
	"log"

	"github.com/rustyeddy/crossbar/journal"
	"github.com/rustyeddy/crossbar/market"
)

// settle runs after a sell fires: it records the trade, applies the ban
// (if configured and the trade lost), clears the engine's exclusive
// position, and journals the bar history. A symbol is only deleted from
// Slots when it was just banned — otherwise the slot survives to scan
// for its next crossover cycle (§3 Lifecycle).
func (e *Engine) settle(ctx context.Context, slot *market.SymbolSlot, saleTs int64, executionPrice float64) {
	requestedPrice := 0.0
	if slot.BuyCommand != nil {
		requestedPrice = slot.BuyCommand.RequestedPrice
	}
	loss := requestedPrice > executionPrice

	banned := false
	if e.Cfg.Strategy.BanMode && loss {
		e.applyLossBan(slot.Symbol, saleTs)
		banned = true
	}

	e.State.Trading = false
	e.State.CurrentBoughtSymbol = ""

	if e.Journal != nil {
		rec := journal.TradeRecord{
			Symbol:         slot.Symbol,
			Formula:        e.Strategy.Name(),
			EntryPrice:     requestedPrice,
			ExitPrice:      executionPrice,
			RealizedPL:     executionPrice - requestedPrice,
			Loss:           loss,
			Banned:         banned,
			RequestedPrice: requestedPrice,
			CloseTime:      e.clock.Time(saleTs),
		}
		if slot.LastBuyOrderRef != nil {
			rec.Qty = slot.LastBuyOrderRef.FilledQty
		}
		if slot.PlaceBuyAtMs != nil {
			rec.OpenTime = e.clock.Time(*slot.PlaceBuyAtMs)
		}
		if err := e.Journal.RecordTrade(rec); err != nil {
			log.Printf("engine: journal record trade failed for %s: %v", slot.Symbol, err)
		}
	}

	e.flushJournal(slot, "sell")

	if banned {
		delete(e.State.Slots, slot.Symbol)
		return
	}

	resetForNextCycle(slot)
}

// applyLossBan increments then immediately deletes the per-symbol loss
// counter before writing the ban: LostCount is reproduced exactly as the
// source tracks it even though the delete makes the counter itself
// useless as a tally — the only externally observable effect is that
// every loss in ban mode bans on the first occurrence.
func (e *Engine) applyLossBan(symbol string, saleTs int64) {
	e.State.LostCount[symbol]++
	delete(e.State.LostCount, symbol)

	e.State.BannedSymbols[symbol] = saleTs + banDurationMs
	if e.Bans != nil {
		if err := e.Bans.Ban(symbol, saleTs); err != nil {
			log.Printf("engine: ban persistence failed for %s: %v", symbol, err)
		}
	}
}

const banDurationMs = 30 * 24 * 3600 * 1000

// resetForNextCycle clears the per-trade fields after any settlement
// that did not ban the symbol (including the one an unsubscribe runs just
// before the slot is deleted), leaving bars and intersection state intact
// so a slot that stays subscribed keeps scanning from where it left off.
func resetForNextCycle(slot *market.SymbolSlot) {
	slot.BuyCommand = nil
	slot.LastBuyOrderRef = nil
	slot.CancelAttempted = false
	slot.PlaceBuyAtMs = nil
	slot.TryingSellTs = nil
	slot.SellAtPrice = nil
	slot.SellingMode = market.SellingModeNone
	slot.DecreaseArmed = false
}
