package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/salesboard/internal/domain"
)

func TestBuildMetrics_EmptyPayloads(t *testing.T) {
	m := BuildMetrics(&domain.DashboardSummary{}, &domain.SalesPatterns{}, &domain.ProductInsights{})

	assert.Nil(t, m.PeakHour)
	assert.Nil(t, m.TopProduct)
	assert.Empty(t, m.TopProducts)
	assert.Equal(t, 0.0, m.Today.ChangePercent, "zero yesterday gives zero change")
	assert.Equal(t, "decrease", m.Today.Trend)
}

func TestBuildMetrics_ZeroRevenueCohort(t *testing.T) {
	products := &domain.ProductInsights{CurrentYearPerformance: []domain.ProductRecord{
		{ProductName: "A"}, {ProductName: "B"},
	}}

	m := BuildMetrics(nil, nil, products)

	assert.Len(t, m.TopProducts, 2)
	for _, p := range m.TopProducts {
		assert.Equal(t, 0.0, p.RevenueShare)
	}
}
