package formulas

import (
	"math"

	"github.com/markcheno/go-talib"
	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// Ratio divides total by count, returning 0 for a non-positive count.
// Used for average order value and items per order.
func Ratio(total float64, count int) float64 {
	if count <= 0 {
		return 0
	}
	return total / float64(count)
}

// MovingAverage returns the trailing simple moving average of series.
//
// The output is aligned with the input; positions without a full window
// are nil. Series are expected oldest first.
func MovingAverage(series []float64, window int) []*float64 {
	out := make([]*float64, len(series))
	if window <= 0 || len(series) < window {
		return out
	}

	var sma []float64
	if window == 1 {
		sma = append([]float64(nil), series...)
	} else {
		sma = talib.Sma(series, window)
	}

	for i := window - 1; i < len(series) && i < len(sma); i++ {
		if math.IsNaN(sma[i]) {
			continue
		}
		v := sma[i]
		out[i] = &v
	}
	return out
}
