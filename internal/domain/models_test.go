package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCadence(t *testing.T) {
	c, err := ParseCadence("daily")
	require.NoError(t, err)
	assert.Equal(t, CadenceDaily, c)

	c, err = ParseCadence("weekly")
	require.NoError(t, err)
	assert.Equal(t, CadenceWeekly, c)

	_, err = ParseCadence("monthly")
	assert.Error(t, err)
}

func TestAuthTokenExpired(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, AuthToken{}.Expired(now), "empty token is expired")
	assert.True(t, AuthToken{Value: "t", ExpiresAt: now}.Expired(now), "expiry instant is exclusive")
	assert.False(t, AuthToken{Value: "t", ExpiresAt: now.Add(time.Second)}.Expired(now))
}

func TestInsightRoundTripKeepsUnknownFields(t *testing.T) {
	raw := `{"message":"Sales up 12%","highlights":["mugs"]}`

	var insight Insight
	require.NoError(t, json.Unmarshal([]byte(raw), &insight))
	assert.Equal(t, "Sales up 12%", insight.Message)

	out, err := json.Marshal(insight)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestInsightMarshalWithoutRaw(t *testing.T) {
	out, err := json.Marshal(Insight{Message: "hi"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"hi"}`, string(out))
}

func TestTimeBucketMetricNormalize(t *testing.T) {
	tests := []struct {
		name        string
		metric      TimeBucketMetric
		totalOrders int
		expected    float64
	}{
		{"derived from order count", TimeBucketMetric{TotalSales: 100, OrderCount: 4}, 0, 25},
		{"derived from total orders", TimeBucketMetric{TotalSales: 90}, 3, 30},
		{"supplied value kept", TimeBucketMetric{TotalSales: 100, OrderCount: 4, AverageOrderValue: 7}, 0, 7},
		{"zero count stays zero", TimeBucketMetric{TotalSales: 100}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.metric
			m.Normalize(tt.totalOrders)
			assert.InDelta(t, tt.expected, m.AverageOrderValue, 1e-9)
		})
	}
}

func TestTimeBucketMetricValidate(t *testing.T) {
	assert.NoError(t, TimeBucketMetric{TotalSales: 1, OrderCount: 1}.Validate())
	assert.Error(t, TimeBucketMetric{OrderCount: -1}.Validate())
	assert.Error(t, TimeBucketMetric{AverageOrderValue: -2}.Validate())
}

func TestRecordSpanValidation(t *testing.T) {
	assert.NoError(t, CustomerRecord{FirstPurchase: "2024-01-01", LastPurchase: "2024-02-01"}.Validate())
	assert.Error(t, CustomerRecord{FirstPurchase: "2024-02-01", LastPurchase: "2024-01-01"}.Validate())
	assert.NoError(t, ProductRecord{FirstSale: "2024-01-01T10:00:00", LastSale: "2024-01-01T10:00:00"}.Validate())
	assert.Error(t, ProductRecord{FirstSale: "2024-05-01T00:00:00Z", LastSale: "2024-04-01T00:00:00Z"}.Validate())
	assert.NoError(t, ProductRecord{FirstSale: "unknown", LastSale: "2024-04-01"}.Validate(), "unparseable dates are not rejected")
}

func TestPatternsDecode(t *testing.T) {
	raw := `{"current_year":2024,"hourly_patterns":[{"hour":13,"total_sales":120.5,"order_count":3}],
	"peak_sales_periods":[{"hour":9,"day_of_week":1,"total_sales":10,"order_count":2}]}`

	var p SalesPatterns
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	require.Len(t, p.HourlyPatterns, 1)
	assert.Equal(t, 13, p.HourlyPatterns[0].Hour)
	assert.Equal(t, 3, p.HourlyPatterns[0].OrderCount)
	assert.Equal(t, 1, p.PeakSalesPeriods[0].DayOfWeek)
}
