package indicators

// SMAWindowMs is the backward-scanning window the SMA rule walks: bars
// whose start is within this many milliseconds of the current bar's
// start are included.
const SMAWindowMs = 240000

// SMA computes the simple moving average of values[i] over the backward
// window [bars[j].start >= bars[i].start - 240000], walking backward from
// i until the condition fails. start and value must be parallel slices
// indexed identically to the bar sequence; i is the index to compute.
func SMA(startMs []int64, value []float64, i int) float64 {
	if i < 0 || i >= len(startMs) {
		return 0
	}
	cutoff := startMs[i] - SMAWindowMs
	sum := 0.0
	count := 0
	for j := i; j >= 0; j-- {
		if startMs[j] < cutoff {
			break
		}
		sum += value[j]
		count++
	}
	if count == 0 {
		return Round2(value[i])
	}
	return Round2(sum / float64(count))
}
