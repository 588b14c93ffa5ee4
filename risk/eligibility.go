package risk

import "fmt"

// AllowedPriceRange is the (exclusive) buy-price band named in the
// engine's configuration: 0.7 < buyAt < 370.5.
var AllowedPriceRange = struct{ Low, High float64 }{Low: 0.7, High: 370.5}

// Violation records one failed eligibility check, in the same
// code+message shape the teacher's risk policy violations use.
type Violation struct {
	Code string
	Msg  string
}

// Decision is the result of evaluating a prospective buy against the
// price-range and sizing checks; Allowed is false if any violation was
// recorded.
type Decision struct {
	Allowed    bool
	Violations []Violation
	Quantity   int
}

func (d *Decision) add(code, msg string) {
	d.Violations = append(d.Violations, Violation{Code: code, Msg: msg})
	d.Allowed = false
}

// InPriceRange reports whether buyAt falls in the allowed (exclusive)
// price band.
func InPriceRange(buyAt float64) bool {
	return buyAt > AllowedPriceRange.Low && buyAt < AllowedPriceRange.High
}

// EvaluateBuy checks the price-range and quantity preconditions for a buy
// and returns the sized quantity alongside the decision.
func EvaluateBuy(buyAt float64, totalEmaVolume30 float64, buyingPower, price float64, cfg SizingConfig) Decision {
	d := Decision{Allowed: true}

	if !InPriceRange(buyAt) {
		d.add("PRICE_OUT_OF_RANGE", fmt.Sprintf("buyAt %.2f outside (%v, %v)", buyAt, AllowedPriceRange.Low, AllowedPriceRange.High))
		return d
	}

	eq1 := Eq1(totalEmaVolume30, cfg.VolumeDivisor)
	eq2 := Eq2(buyingPower, cfg.ReserveBalance, price, cfg.BuyingPowerFraction)
	qty := Quantity(eq1, eq2)

	if qty <= 0 {
		d.add("ZERO_QUANTITY", "sized quantity is zero or negative")
		return d
	}

	d.Quantity = qty
	return d
}

// SizingConfig bundles the tunables EvaluateBuy needs, mirroring the
// configuration fields enumerated in §6.
type SizingConfig struct {
	VolumeDivisor       int
	ReserveBalance      float64
	BuyingPowerFraction float64
}
