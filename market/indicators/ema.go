package indicators

// NextEMA computes the custom, non-standard exponential moving average
// step used by the crossover engine. sma0 is sma[0] (only used when
// i==1); prevEMA is ema[i-1] (ignored when i<=1). This is NOT a textbook
// EMA — it must be reproduced exactly as given, not "fixed" toward a
// standard smoothing formula:
//
//	i == 0: ema[0] = sma[0]
//	i == 1: ema[1] = round2((c[1]-sma[0])/3 + sma[0])
//	i >= 2: ema[i] = round2((c[i]-ema[i-1])/3 + ema[i-1])
func NextEMA(i int, value float64, sma0 float64, prevEMA float64) float64 {
	switch {
	case i == 0:
		return sma0
	case i == 1:
		return Round2((value-sma0)/3 + sma0)
	default:
		return Round2((value-prevEMA)/3 + prevEMA)
	}
}

// EMASeries computes the full EMA series for values given their
// corresponding SMA series. Used by tests and by the historical-fallback
// volume-EMA computation, which has the whole series available at once.
func EMASeries(sma []float64, values []float64) []float64 {
	ema := make([]float64, len(values))
	for i := range values {
		var prev float64
		if i > 0 {
			prev = ema[i-1]
		}
		ema[i] = NextEMA(i, values[i], sma[0], prev)
	}
	return ema
}
