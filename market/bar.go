// Package market holds the data model shared by the indicator engine,
// crossover state machine, and strategy core: bars, enriched bars,
// per-symbol intersection state, buy commands, and the engine's
// per-symbol and process-wide state.
package market

import "fmt"

// Bar is a minute or second OHLCV aggregate for one symbol.
type Bar struct {
	Symbol string
	StartMs int64
	EndMs   int64
	Open    float64
	High    float64
	Low     float64
	Close   float64
	Volume  float64
}

// Validate checks the invariants a Bar must satisfy: s < e, v >= 0, and
// l <= min(o,c) <= max(o,c) <= h.
func (b Bar) Validate() error {
	if b.StartMs >= b.EndMs {
		return fmt.Errorf("bar %s: start %d not before end %d", b.Symbol, b.StartMs, b.EndMs)
	}
	if b.Volume < 0 {
		return fmt.Errorf("bar %s: negative volume %v", b.Symbol, b.Volume)
	}
	lo := b.Open
	if b.Close < lo {
		lo = b.Close
	}
	hi := b.Open
	if b.Close > hi {
		hi = b.Close
	}
	if b.Low > lo || hi > b.High {
		return fmt.Errorf("bar %s: low/high out of range (l=%v o=%v h=%v c=%v)", b.Symbol, b.Low, b.Open, b.High, b.Close)
	}
	return nil
}

// Intersection tags an enriched bar with the crossover event it
// represents, if any.
type Intersection string

const (
	IntersectionNone   Intersection = ""
	IntersectionPre    Intersection = "pre"
	IntersectionFirst  Intersection = "first"
	IntersectionSecond Intersection = "second"
)

// EnrichedMinuteBar is a minute Bar plus the computed indicator fields and
// optional trade-lifecycle tags written by the engine.
type EnrichedMinuteBar struct {
	Bar

	SMA  float64
	EMA  float64
	VSMA float64
	VEMA float64

	CalDate string // ISO date, e.g. "2026-07-31"
	CalTime string // HH:MM:SS

	Intersection Intersection

	BoughtAtPrice *float64
	BoughtAtTs    *int64
	SoldAtPrice   *float64
	SoldAtTs      *int64
}
