// Package engine drives the single-threaded cooperative loop (§5): it
// dispatches feed events to per-symbol strategy evaluation, computes
// indicators before handing a new bar to the strategy, and owns
// settlement (ban checks, slot teardown, journal flush) after a sale.
package engine

import (
	"context"

	"github.com/rustyeddy/crossbar/banlist"
	"github.com/rustyeddy/crossbar/broker"
	"github.com/rustyeddy/crossbar/calendar"
	"github.com/rustyeddy/crossbar/config"
	"github.com/rustyeddy/crossbar/feed"
	"github.com/rustyeddy/crossbar/journal"
	"github.com/rustyeddy/crossbar/market"
	"github.com/rustyeddy/crossbar/market/indicators"
	"github.com/rustyeddy/crossbar/market/strategies"
)

// Engine is the process-wide engine instance: one EngineState, one
// strategy variant, one broker, one journal, one ban list.
type Engine struct {
	State    *market.EngineState
	Strategy strategies.Strategy
	Broker   broker.Broker
	Journal  journal.Journal
	Bans     *banlist.List
	Cfg      *config.Config

	clock    *calendar.Clock
	excluded *calendar.ExcludedSet
	allowed  *calendar.Window

	historical indicators.HistoricalFetcher

	events chan any
}

// New wires an Engine from its collaborators.
func New(cfg *config.Config, strategy strategies.Strategy, brk broker.Broker, jrn journal.Journal, bans *banlist.List, historical indicators.HistoricalFetcher) *Engine {
	state := market.NewEngineState()
	if bans != nil {
		for symbol, unbanMs := range bans.All() {
			state.BannedSymbols[symbol] = unbanMs
		}
	}

	return &Engine{
		State:      state,
		Strategy:   strategy,
		Broker:     brk,
		Journal:    jrn,
		Bans:       bans,
		Cfg:        cfg,
		clock:      calendar.MustNewClock(cfg.Sizing.TradingHoursZone),
		excluded:   calendar.NewExcludedSet(),
		allowed:    calendar.AllowedTradingHours(),
		historical: historical,
		events:     make(chan any, 256),
	}
}

// SetCurrentBoughtSymbol satisfies strategies.ExchangeState: it claims
// the engine's exclusive position slot.
func (e *Engine) SetCurrentBoughtSymbol(symbol string) {
	e.State.CurrentBoughtSymbol = symbol
	e.State.Trading = true
}

// IsTrading satisfies strategies.ExchangeState: it reports whether the
// engine already has a live or requested position in any symbol.
func (e *Engine) IsTrading() bool {
	return e.State.Trading
}

func (e *Engine) deps() strategies.Deps {
	return strategies.Deps{
		Broker:   e.Broker,
		Clock:    e.clock,
		Excluded: e.excluded,
		Allowed:  e.allowed,
		SizingCfg: strategies.SizingConfig{
			VolumeDivisor:       e.Cfg.Sizing.VolumeDivisor,
			ReserveBalance:      e.Cfg.Sizing.ReserveBalance,
			BuyingPowerFraction: e.Cfg.Sizing.BuyingPowerFraction,
		},
		CancelThreshold: e.Cfg.Strategy.CancelThreshold,
		WithCancel:      e.Cfg.Strategy.WithCancel,
		VolumeFallback:  volumeFallback{e: e},
	}
}

// volumeFallback adapts the historical-fetch client to
// strategies.VolumeFallback so the strategies package never imports the
// historical package directly.
type volumeFallback struct{ e *Engine }

func (v volumeFallback) TotalEmaVolume30(ctx context.Context, symbol string, nowMs int64) (float64, bool, error) {
	if v.e.historical == nil {
		return 0, false, nil
	}
	total, err := indicators.FallbackVolumeEMA(ctx, v.e.historical, symbol, nowMs)
	if err != nil {
		return 0, false, err
	}
	return total, true, nil
}

// HandleBar satisfies feed.Handler by enqueuing the event for the
// engine loop, preserving arrival order.
func (e *Engine) HandleBar(event feed.BarEvent) {
	e.events <- event
}

// HandleStatus satisfies feed.Handler.
func (e *Engine) HandleStatus(event feed.StatusEvent) {
	e.events <- event
}
