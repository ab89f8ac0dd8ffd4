package formulas

import "gonum.org/v1/gonum/floats"

// RevenueShares returns each value's percentage of the cohort total.
// The total is summed once over exactly the values passed in, so the shares of
// a displayed top-N slice add up to 100. A zero total gives all-zero shares.
func RevenueShares(values []float64) []float64 {
	shares := make([]float64, len(values))
	if len(values) == 0 {
		return shares
	}

	total := floats.Sum(values)
	if total == 0 {
		return shares
	}

	for i, v := range values {
		shares[i] = v / total * 100
	}
	return shares
}
