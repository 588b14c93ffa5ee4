package strategies

import (
	"testing"

	"github.com/rustyeddy/crossbar/calendar"
	"github.com/rustyeddy/crossbar/market"
	"github.com/rustyeddy/crossbar/market/indicators"
)

// buildEnrichedSeries replicates the SMA/EMA pipeline over a literal
// sequence of minute-bar closes, mirroring the end-to-end scenarios in
// the engine's testable properties.
func buildEnrichedSeries(closes []float64) []market.EnrichedMinuteBar {
	starts := make([]int64, len(closes))
	for i := range closes {
		starts[i] = int64(i) * 60000
	}
	sma := make([]float64, len(closes))
	for i := range closes {
		sma[i] = indicators.SMA(starts, closes, i)
	}
	ema := indicators.EMASeries(sma, closes)

	bars := make([]market.EnrichedMinuteBar, len(closes))
	for i, c := range closes {
		bars[i] = market.EnrichedMinuteBar{
			Bar: market.Bar{
				Symbol:  "TEST",
				StartMs: starts[i],
				EndMs:   starts[i] + 60000,
				Open:    c,
				High:    c + 0.5,
				Low:     c - 0.5,
				Close:   c,
				Volume:  10000,
			},
			SMA: sma[i],
			EMA: ema[i],
		}
	}
	return bars
}

func TestScenarioPrePointThenFirstIntersection(t *testing.T) {
	closes := []float64{10, 11, 12, 11.5, 11, 10.5, 10}
	bars := buildEnrichedSeries(closes)
	excluded := calendar.NewExcludedSet()

	state := &market.IntersectionState{}
	for i := range bars {
		AdvanceCrossover(state, &bars[i], i, excluded)
	}

	if !state.PrePointFound {
		t.Fatalf("expected prePointFound")
	}
	if !state.FirstFound {
		t.Fatalf("expected firstFound")
	}
	if state.SecondFound {
		t.Fatalf("expected no second intersection")
	}
	last := bars[len(bars)-1]
	if state.HighestBetweenFirstAndSecond != last.High {
		t.Fatalf("highestBetween = %v, want last bar high %v", state.HighestBetweenFirstAndSecond, last.High)
	}
}

func TestScenarioSecondThenThirdIntersection(t *testing.T) {
	closes := []float64{10, 11, 12, 11, 10, 10, 10, 11, 12, 13, 14, 13, 12, 11}
	bars := buildEnrichedSeries(closes)
	excluded := calendar.NewExcludedSet()

	state := &market.IntersectionState{}
	var events []Event
	for i := range bars {
		events = append(events, AdvanceCrossover(state, &bars[i], i, excluded))
	}

	sawSecond := false
	sawThird := false
	for _, e := range events {
		if e == EventSecond {
			sawSecond = true
		}
		if e == EventThird {
			sawThird = true
		}
	}
	if !sawSecond {
		t.Fatalf("expected a second-intersection event somewhere in the sequence")
	}
	if !sawThird {
		t.Fatalf("expected a third-intersection event somewhere in the sequence")
	}
}

func TestForcedSellEventInExcludedWindow(t *testing.T) {
	excluded := calendar.NewExcludedSet()
	state := &market.IntersectionState{
		PrePointFound: true,
		FirstFound:    true,
		SecondFound:   true,
	}
	bar := &market.EnrichedMinuteBar{
		Bar:     market.Bar{StartMs: 0, EndMs: 60000, Open: 10, High: 10.5, Low: 9.5, Close: 10},
		SMA:     9.5,
		EMA:     10, // ema > sma: no crossover
		CalTime: "12:59:30",
	}
	event := AdvanceCrossover(state, bar, 5, excluded)
	if event != EventForcedSell {
		t.Fatalf("expected EventForcedSell in excluded window, got %v", event)
	}
}
