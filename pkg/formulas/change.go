package formulas

// Direction labels used for trend arrows
const (
	TrendIncrease = "increase"
	TrendDecrease = "decrease"
)

// PercentChange returns (current - previous) / previous * 100.
// A zero previous value yields 0 instead of an infinite change.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// PercentChangeOpt is PercentChange for an optional previous value; absent yields 0.
func PercentChangeOpt(current float64, previous *float64) float64 {
	if previous == nil {
		return 0
	}
	return PercentChange(current, *previous)
}

// Trend returns TrendIncrease only when current is strictly greater than previous.
func Trend(current, previous float64) string {
	if current > previous {
		return TrendIncrease
	}
	return TrendDecrease
}
