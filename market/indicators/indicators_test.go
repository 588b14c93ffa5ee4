package indicators

import (
	"context"
	"testing"
)

func TestRound2HalfAwayFromZero(t *testing.T) {
	cases := map[float64]float64{
		1.005:  1.01,
		1.004:  1.0,
		-1.005: -1.01,
		10.0:   10.0,
		0.1249: 0.12,
	}
	for in, want := range cases {
		if got := Round2(in); got != want {
			t.Fatalf("Round2(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestSMAWindowWithFiveContiguousBars(t *testing.T) {
	// bars 60s apart, SMA window is 240000ms = 4 minutes back, so the
	// window over 5 contiguous minute bars spans exactly i-4..i.
	starts := []int64{0, 60000, 120000, 180000, 240000}
	closes := []float64{10, 11, 12, 11.5, 11}

	got := SMA(starts, closes, 4)
	want := Round2((10 + 11 + 12 + 11.5 + 11) / 5)
	if got != want {
		t.Fatalf("SMA = %v, want %v", got, want)
	}
}

func TestEMASeriesExactFormula(t *testing.T) {
	starts := []int64{0, 60000, 120000, 180000}
	closes := []float64{10, 11, 12, 11.5}

	sma := make([]float64, len(closes))
	for i := range closes {
		sma[i] = SMA(starts, closes, i)
	}
	ema := EMASeries(sma, closes)

	if ema[0] != sma[0] {
		t.Fatalf("ema[0] = %v, want sma[0] = %v", ema[0], sma[0])
	}
	wantEma1 := Round2((closes[1]-sma[0])/3 + sma[0])
	if ema[1] != wantEma1 {
		t.Fatalf("ema[1] = %v, want %v", ema[1], wantEma1)
	}
	for i := 2; i < len(closes); i++ {
		want := Round2((closes[i]-ema[i-1])/3 + ema[i-1])
		if ema[i] != want {
			t.Fatalf("ema[%d] = %v, want %v", i, ema[i], want)
		}
	}
}

type fakeFetcher struct {
	aggs []MinuteAggregate
}

func (f fakeFetcher) LastMinuteAggregates(ctx context.Context, symbol string, fromMs, toMs int64, limit int) ([]MinuteAggregate, error) {
	return f.aggs, nil
}

func TestFallbackVolumeEMAUsesHardcodedSymbol(t *testing.T) {
	if HistoricalFallbackSymbol != "AAPL" {
		t.Fatalf("expected hardcoded fallback symbol AAPL, got %s", HistoricalFallbackSymbol)
	}

	aggs := make([]MinuteAggregate, 0, 30)
	for i := 29; i >= 0; i-- {
		aggs = append(aggs, MinuteAggregate{StartMs: int64(i) * 60000, Volume: 1000})
	}
	total, err := FallbackVolumeEMA(context.Background(), fakeFetcher{aggs: aggs}, "TSLA", 30*60000)
	if err != nil {
		t.Fatalf("FallbackVolumeEMA: %v", err)
	}
	if total <= 0 {
		t.Fatalf("expected positive total ema volume, got %v", total)
	}
}

func TestFallbackVolumeEMAEmptyHistory(t *testing.T) {
	total, err := FallbackVolumeEMA(context.Background(), fakeFetcher{}, "TSLA", 0)
	if err != nil {
		t.Fatalf("FallbackVolumeEMA: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected 0 for empty history, got %v", total)
	}
}
