package indicators

import (
	"context"
	"time"
)

// MinuteAggregate is the shape the historical REST fallback returns:
// enough to recompute v_sma/v_ema over the requested window.
type MinuteAggregate struct {
	StartMs int64
	Volume  float64
}

// HistoricalFetcher is the narrow contract the volume-EMA fallback needs
// from the historical REST client (§6): last-72h 1-minute aggregates for
// a symbol, sorted descending, already limited server-side.
type HistoricalFetcher interface {
	LastMinuteAggregates(ctx context.Context, symbol string, fromMs, toMs int64, limit int) ([]MinuteAggregate, error)
}

// HistoricalFallbackSymbol is the symbol the original source queries
// regardless of which symbol is actually being traded. This is almost
// certainly a bug in the system this engine was modeled on; it is
// reproduced here exactly rather than silently parameterized by the
// traded symbol, per the documented decision to preserve literal
// behavior for this open question.
const HistoricalFallbackSymbol = "AAPL"

// FallbackVolumeEMA fetches the last-72h minute aggregates for the
// hardcoded fallback symbol, computes v_sma/v_ema over them, and returns
// the sum of the last 30 v_ema values — used as totalEmaVolume30 when a
// slot doesn't yet have 40 in-memory enriched bars.
//
// tradedSymbol is accepted but intentionally unused for the query itself;
// it documents which symbol this computation is standing in for.
func FallbackVolumeEMA(ctx context.Context, fetcher HistoricalFetcher, tradedSymbol string, nowMs int64) (float64, error) {
	_ = tradedSymbol
	fromMs := nowMs - 72*3600*1000
	aggs, err := fetcher.LastMinuteAggregates(ctx, HistoricalFallbackSymbol, fromMs, nowMs, 30)
	if err != nil {
		return 0, err
	}
	if len(aggs) == 0 {
		return 0, nil
	}

	// Aggregates are returned sort=desc; reverse to ascending time order
	// so the SMA/EMA recursion sees bars in chronological sequence.
	ordered := make([]MinuteAggregate, len(aggs))
	for i, a := range aggs {
		ordered[len(aggs)-1-i] = a
	}

	starts := make([]int64, len(ordered))
	vols := make([]float64, len(ordered))
	for i, a := range ordered {
		starts[i] = a.StartMs
		vols[i] = a.Volume
	}

	vsma := make([]float64, len(ordered))
	for i := range ordered {
		vsma[i] = SMA(starts, vols, i)
	}
	vema := EMASeries(vsma, vols)

	n := len(vema)
	start := 0
	if n > 30 {
		start = n - 30
	}

	total := 0.0
	for _, v := range vema[start:] {
		total += v
	}
	return total, nil
}

// NowMs returns the current wall-clock time in epoch milliseconds.
func NowMs() int64 { return time.Now().UnixMilli() }
