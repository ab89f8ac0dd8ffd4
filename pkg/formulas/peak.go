// Package formulas holds the pure derived-metric calculations behind the
// dashboard and report views. Nothing in here performs I/O.
package formulas

// Peak returns the element with the largest value.
//
// The running maximum is seeded with the first element and replaced only on a
// strictly greater value, so the earliest of several equal maxima wins.
// ok is false when items is empty.
func Peak[T any](items []T, value func(T) float64) (peak T, ok bool) {
	if len(items) == 0 {
		return peak, false
	}

	peak = items[0]
	max := value(peak)
	for _, item := range items[1:] {
		if v := value(item); v > max {
			peak, max = item, v
		}
	}
	return peak, true
}
