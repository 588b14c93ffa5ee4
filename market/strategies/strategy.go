// Package strategies implements the crossover state machine and the
// F1/F3/F4 buy/sell decision layer built on top of it. The three
// variants share the crossover machine and indicator engine verbatim
// and differ only in exit-arming policy, expressed as a small
// capability interface rather than inheritance.
package strategies

import (
	"context"

	"github.com/rustyeddy/crossbar/broker"
	"github.com/rustyeddy/crossbar/calendar"
	"github.com/rustyeddy/crossbar/market"
)

// Deps bundles the collaborators a Strategy needs to evaluate bars and
// submit orders: the broker gateway, the clock/excluded-time tables, and
// the tunables from configuration.
type Deps struct {
	Broker   broker.Broker
	Clock    *calendar.Clock
	Excluded *calendar.ExcludedSet
	Allowed  *calendar.Window

	SizingCfg       SizingConfig
	CancelThreshold float64
	WithCancel      bool

	VolumeFallback VolumeFallback
}

// VolumeFallback is the narrow seam the engine plugs in for
// FallbackVolumeEMA so strategies don't import the historical-fetch
// client directly.
type VolumeFallback interface {
	TotalEmaVolume30(ctx context.Context, symbol string, nowMs int64) (float64, bool, error)
}

// SizingConfig mirrors risk.SizingConfig without importing risk from this
// package's public surface, keeping the dependency direction flat.
type SizingConfig struct {
	VolumeDivisor       int
	ReserveBalance      float64
	BuyingPowerFraction float64
}

// Strategy is the per-variant capability the engine drives. Every
// variant processes the same minute-bar crossover transitions and the
// same buy trigger; only the exit arming inside
// OnMinuteBarAfterIndicators and the second-bar sell watcher differ.
type Strategy interface {
	Name() string

	// OnMinuteBarAfterIndicators runs after SMA/EMA have been written for
	// the new bar: it advances the crossover state machine, may arm a buy
	// intent on second intersection, and may arm this variant's exit
	// watcher on third intersection or forced-sell. holding reports
	// whether this symbol is the engine's current position; anyPosition
	// reports whether any symbol currently holds one (the Buy Intent gate
	// is global, not per-symbol).
	OnMinuteBarAfterIndicators(ctx context.Context, d Deps, slot *market.SymbolSlot, bar *market.EnrichedMinuteBar, holding, anyPosition bool) error

	// OnSecondBar runs for every second-granularity bar: it evaluates the
	// buy trigger for an unfulfilled BuyCommand, cancel-on-rally, and this
	// variant's sell watcher. es lets the strategy claim the engine's
	// exclusive position slot on a successful buy. It returns true if
	// this variant's exit fired this tick and SubmitSell was called (which
	// may have cancelled an unfilled buy instead of selling), so the
	// engine can run settlement (ban check, slot teardown, journal flush).
	OnSecondBar(ctx context.Context, d Deps, es ExchangeState, slot *market.SymbolSlot, second market.Bar, holding bool) (sold bool, err error)
}
