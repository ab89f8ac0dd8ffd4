package dashboard

import (
	"github.com/aristath/salesboard/internal/domain"
	"github.com/aristath/salesboard/pkg/formulas"
)

// TopProductCount is how many products the overview ranks
const TopProductCount = 5

// PeakHour is the hour of day with the highest sales
type PeakHour struct {
	Hour       int     `json:"hour"`
	Label      string  `json:"label"`
	TotalSales float64 `json:"total_sales"`
	OrderCount int     `json:"order_count"`
}

// Comparison is a current vs previous figure with its trend
type Comparison struct {
	Current       float64 `json:"current"`
	Previous      float64 `json:"previous"`
	ChangePercent float64 `json:"change_percent"`
	Trend         string  `json:"trend"`
}

// ProductShare is a product with its share of the ranked cohort's revenue
type ProductShare struct {
	domain.ProductRecord
	RevenueShare float64 `json:"revenue_share"`
}

// Metrics are the figures derived for the overview cards
type Metrics struct {
	PeakHour    *PeakHour             `json:"peak_hour"`
	TopProduct  *domain.ProductRecord `json:"top_product"`
	Today       Comparison            `json:"today_vs_yesterday"`
	Week        Comparison            `json:"week_vs_last_week"`
	TopProducts []ProductShare        `json:"top_products"`
}

// Dashboard is the overview view-model
type Dashboard struct {
	Summary  *domain.DashboardSummary `json:"summary"`
	Patterns *domain.SalesPatterns    `json:"patterns"`
	Products *domain.ProductInsights  `json:"products"`
	Metrics  Metrics                  `json:"metrics"`
}

// Page is the full dashboard screen: the overview plus whichever insights loaded
type Page struct {
	Dashboard *Dashboard                         `json:"dashboard"`
	Insights  map[domain.Cadence]*domain.Insight `json:"insights"`
	Warnings  []Warning                          `json:"warnings"`
}

func compare(current, previous float64) Comparison {
	return Comparison{
		Current:       current,
		Previous:      previous,
		ChangePercent: formulas.PercentChange(current, previous),
		Trend:         formulas.Trend(current, previous),
	}
}

// BuildMetrics derives the overview figures from the three payloads
func BuildMetrics(summary *domain.DashboardSummary, patterns *domain.SalesPatterns, products *domain.ProductInsights) Metrics {
	var m Metrics

	if summary != nil {
		m.Today = compare(summary.TodayMetrics.TotalSales, summary.YesterdayTotalSales)
		m.Week = compare(summary.CurrentWeekSales, summary.LastWeekSales)
	}

	if patterns != nil {
		peak, ok := formulas.Peak(patterns.HourlyPatterns, func(h domain.HourlyPattern) float64 { return h.TotalSales })
		if ok {
			m.PeakHour = &PeakHour{
				Hour:       peak.Hour,
				Label:      formulas.HourLabel(peak.Hour),
				TotalSales: peak.TotalSales,
				OrderCount: peak.OrderCount,
			}
		}
	}

	m.TopProducts = []ProductShare{}
	if products != nil && len(products.CurrentYearPerformance) > 0 {
		top := products.CurrentYearPerformance[0]
		m.TopProduct = &top

		cohort := formulas.TopN(products.CurrentYearPerformance, TopProductCount)
		revenue := make([]float64, len(cohort))
		for i, p := range cohort {
			revenue[i] = p.TotalRevenue
		}
		shares := formulas.RevenueShares(revenue)
		for i, p := range cohort {
			m.TopProducts = append(m.TopProducts, ProductShare{ProductRecord: p, RevenueShare: shares[i]})
		}
	}

	return m
}
