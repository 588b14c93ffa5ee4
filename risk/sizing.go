// Package risk sizes orders from available buying power and the
// 30-minute volume-EMA estimate, and evaluates the buy-eligibility
// checks (price range, non-zero sized quantity). Allowed trading hours
// are checked by the strategy core, not here.
package risk

import "math"

// Defaults for the sizing inputs named in the engine's configuration
// (§6): the buying-power reserve withheld from sizing, the fraction of
// remaining buying power usable per order, and the divisor applied to
// the 30-minute EMA volume estimate.
const (
	DefaultReserveBalance     = 25000.0
	DefaultBuyingPowerFraction = 0.95
	DefaultVolumeDivisor       = 40
)

// Eq1 is the volume-derived quantity cap: floor(totalEmaVolume30 / divisor).
func Eq1(totalEmaVolume30 float64, divisor int) int {
	if divisor <= 0 {
		divisor = DefaultVolumeDivisor
	}
	return int(math.Floor(totalEmaVolume30 / float64(divisor)))
}

// Eq2 is the buying-power-derived quantity cap:
// floor((buyingPower - reserve) / price * fraction), with buyingPower
// first floored at zero after the reserve deduction.
func Eq2(buyingPower, reserve, price, fraction float64) int {
	if reserve <= 0 {
		reserve = DefaultReserveBalance
	}
	if fraction <= 0 {
		fraction = DefaultBuyingPowerFraction
	}
	available := buyingPower - reserve
	if available < 0 {
		available = 0
	}
	if price <= 0 {
		return 0
	}
	return int(math.Floor(available / price * fraction))
}

// Quantity combines eq1 and eq2 per the order-sizing rule: the smaller of
// the two caps, except that an eq1 of zero (no volume estimate
// available) falls back to eq2 alone rather than zeroing the order.
func Quantity(eq1, eq2 int) int {
	if eq1 == 0 {
		return eq2
	}
	if eq1 < eq2 {
		return eq1
	}
	return eq2
}
