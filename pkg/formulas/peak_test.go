package formulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type hourSales struct {
	hour  int
	sales float64
}

func salesOf(h hourSales) float64 { return h.sales }

func TestPeak(t *testing.T) {
	tests := []struct {
		name     string
		items    []hourSales
		wantHour int
		wantOK   bool
	}{
		{"empty", nil, 0, false},
		{"single", []hourSales{{9, 10}}, 9, true},
		{"clear max", []hourSales{{9, 10}, {12, 50}, {18, 20}}, 12, true},
		{"tie keeps first", []hourSales{{10, 50}, {14, 50}, {9, 20}}, 10, true},
		{"all zero keeps first", []hourSales{{3, 0}, {4, 0}}, 3, true},
		{"negative values", []hourSales{{1, -5}, {2, -1}, {3, -3}}, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Peak(tt.items, salesOf)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantHour, got.hour)
			}
		})
	}
}
