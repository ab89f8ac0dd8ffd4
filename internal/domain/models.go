// Package domain provides the sales analytics payloads and the small value
// types shared between the clients, the caches and the view services.
package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Cadence identifies how often an insight is regenerated upstream.
type Cadence string

const (
	CadenceDaily  Cadence = "daily"
	CadenceWeekly Cadence = "weekly"
)

// Valid reports whether c is a known cadence
func (c Cadence) Valid() bool {
	return c == CadenceDaily || c == CadenceWeekly
}

// ParseCadence converts user input into a Cadence
func ParseCadence(s string) (Cadence, error) {
	c := Cadence(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown cadence %q (want daily or weekly)", s)
	}
	return c, nil
}

// AuthToken is a bearer token for the insights API. Kept in memory only.
type AuthToken struct {
	Value     string
	ExpiresAt time.Time
}

// Expired reports whether the token is unusable at now.
func (t AuthToken) Expired(now time.Time) bool {
	return t.Value == "" || !now.Before(t.ExpiresAt)
}

// CachedInsight is a persisted insight payload with the time it was stored.
type CachedInsight struct {
	Payload  json.RawMessage `json:"payload"`
	StoredAt time.Time       `json:"timestamp"`
	Cadence  Cadence         `json:"-"`
}

// Insight is an AI-generated narrative returned by the insights API.
// Unknown fields are preserved so the view gets the payload as sent.
type Insight struct {
	Message string
	raw     json.RawMessage
}

// UnmarshalJSON keeps the raw payload alongside the decoded message
func (i *Insight) UnmarshalJSON(data []byte) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}
	i.Message = body.Message
	i.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON returns the payload exactly as received
func (i Insight) MarshalJSON() ([]byte, error) {
	if len(i.raw) > 0 {
		return i.raw, nil
	}
	return json.Marshal(struct {
		Message string `json:"message"`
	}{i.Message})
}

// TodayMetrics are the running totals for the current day
type TodayMetrics struct {
	TotalSales      float64 `json:"total_sales"`
	SalesCount      int     `json:"sales_count"`
	TotalItemsSold  int     `json:"total_items_sold"`
	UniqueCustomers int     `json:"unique_customers"`
}

// Totals are all-time aggregate figures
type Totals struct {
	TotalSales  float64 `json:"total_sales"`
	TotalOrders int     `json:"total_orders"`
}

// DashboardSummary is the payload of the primary dashboard endpoint
type DashboardSummary struct {
	TodayMetrics        TodayMetrics `json:"today_metrics"`
	YesterdayTotalSales float64      `json:"yesterday_total_sales"`
	CurrentWeekSales    float64      `json:"current_week_sales"`
	LastWeekSales       float64      `json:"last_week_sales"`
	AllTimeTotals       Totals       `json:"all_time_totals"`
}

// TimeBucketMetric carries the figures common to every time bucket.
type TimeBucketMetric struct {
	TotalSales        float64 `json:"total_sales"`
	OrderCount        int     `json:"order_count"`
	UniqueCustomers   int     `json:"unique_customers"`
	ItemsSold         int     `json:"total_items"`
	AverageOrderValue float64 `json:"average_order_value"`
}

// Normalize derives the average order value when the source left it empty.
// Buckets that report total_orders instead of order_count use that count.
func (m *TimeBucketMetric) Normalize(totalOrders int) {
	count := m.OrderCount
	if count == 0 {
		count = totalOrders
	}
	if m.AverageOrderValue == 0 && count > 0 {
		m.AverageOrderValue = m.TotalSales / float64(count)
	}
}

// Validate checks the non-negativity invariants
func (m TimeBucketMetric) Validate() error {
	if m.OrderCount < 0 || m.UniqueCustomers < 0 || m.ItemsSold < 0 {
		return fmt.Errorf("negative count in time bucket")
	}
	if m.AverageOrderValue < 0 {
		return fmt.Errorf("negative average order value %.2f", m.AverageOrderValue)
	}
	return nil
}

// HourlyPattern is a bucket for one hour of the day (0-23)
type HourlyPattern struct {
	Hour int `json:"hour"`
	TimeBucketMetric
}

// DailyPattern is a bucket for one calendar date
type DailyPattern struct {
	Day string `json:"day"`
	TimeBucketMetric
}

// DayOfWeekPattern is a bucket for a weekday, Sunday = 0
type DayOfWeekPattern struct {
	DayOfWeek int `json:"day_of_week"`
	TimeBucketMetric
}

// PeakSalesPeriod is an (hour, weekday) slot with notable sales
type PeakSalesPeriod struct {
	Hour      int `json:"hour"`
	DayOfWeek int `json:"day_of_week"`
	TimeBucketMetric
}

// SalesPatterns is the payload of the patterns endpoint
type SalesPatterns struct {
	CurrentYear       int                `json:"current_year"`
	HourlyPatterns    []HourlyPattern    `json:"hourly_patterns"`
	DailyPatterns     []DailyPattern     `json:"daily_patterns"`
	DayOfWeekPatterns []DayOfWeekPattern `json:"day_of_week_patterns"`
	PeakSalesPeriods  []PeakSalesPeriod  `json:"peak_sales_periods"`
}

// WeekBucket summarizes one week
type WeekBucket struct {
	Week        string `json:"week"`
	TotalOrders int    `json:"total_orders"`
	BusiestDay  string `json:"busiest_day,omitempty"`
	SlowestDay  string `json:"slowest_day,omitempty"`
	TimeBucketMetric
}

// WeeklyAnalysis is the payload of the weekly endpoint, newest week first
type WeeklyAnalysis struct {
	WeeklySummary          []WeekBucket `json:"weekly_summary"`
	PreviousYearComparison []WeekBucket `json:"previous_year_comparison"`
}

// BestSeller is the top product of a period
type BestSeller struct {
	ProductName   string `json:"product_name"`
	TotalQuantity int    `json:"total_quantity"`
}

// MonthBucket summarizes one month
type MonthBucket struct {
	Month              string      `json:"month"`
	TotalOrders        int         `json:"total_orders"`
	BestSellingProduct *BestSeller `json:"best_selling_product,omitempty"`
	TimeBucketMetric
}

// MonthlyAnalysis is the payload of the monthly endpoint, newest month first
type MonthlyAnalysis struct {
	CurrentYearData      []MonthBucket `json:"current_year_data"`
	HistoricalComparison []MonthBucket `json:"historical_comparison"`
}

// YearBucket summarizes one year
type YearBucket struct {
	Year        int `json:"year"`
	TotalOrders int `json:"total_orders"`
	TimeBucketMetric
}

// MonthlySales is a single month in the yearly breakdown chart
type MonthlySales struct {
	Month string  `json:"month"`
	Sales float64 `json:"sales"`
}

// YearlyAnalysis is the payload of the yearly endpoint
type YearlyAnalysis struct {
	CurrentYearSummary YearBucket     `json:"current_year_summary"`
	YearlySummary      []YearBucket   `json:"yearly_summary"`
	MonthlyBreakdown   []MonthlySales `json:"monthly_breakdown"`
}

// CustomerRecord is a customer's aggregate spend over a window
type CustomerRecord struct {
	CustomerName      string  `json:"customer_name"`
	TotalSpent        float64 `json:"total_spent"`
	PurchaseCount     int     `json:"purchase_count"`
	AverageOrderValue float64 `json:"average_order_value"`
	FirstPurchase     string  `json:"first_purchase"`
	LastPurchase      string  `json:"last_purchase"`
}

// Validate checks first purchase <= last purchase when both parse
func (c CustomerRecord) Validate() error {
	return checkSpan(c.CustomerName, c.FirstPurchase, c.LastPurchase)
}

// CustomerInsights is the payload of the customers endpoint
type CustomerInsights struct {
	CurrentYear             int              `json:"current_year"`
	CurrentYearTopCustomers []CustomerRecord `json:"current_year_top_customers"`
	AllTimeTopCustomers     []CustomerRecord `json:"all_time_top_customers,omitempty"`
}

// ProductRecord is a product's aggregate performance over a window
type ProductRecord struct {
	ProductName     string  `json:"product_name"`
	TotalRevenue    float64 `json:"total_revenue"`
	UnitsSold       float64 `json:"units_sold"`
	AveragePrice    float64 `json:"average_price"`
	TotalOrders     int     `json:"total_orders"`
	UniqueCustomers int     `json:"unique_customers"`
	FirstSale       string  `json:"first_sale"`
	LastSale        string  `json:"last_sale"`
}

// Validate checks first sale <= last sale when both parse
func (p ProductRecord) Validate() error {
	return checkSpan(p.ProductName, p.FirstSale, p.LastSale)
}

// GrowthComparisonRow is one product's revenue in one year
type GrowthComparisonRow struct {
	ProductName  string  `json:"product_name"`
	Year         int     `json:"year"`
	TotalRevenue float64 `json:"total_revenue"`
}

// ProductInsights is the payload of the products endpoint
type ProductInsights struct {
	CurrentYear            int                   `json:"current_year"`
	CurrentYearPerformance []ProductRecord       `json:"current_year_performance"`
	AllTimePerformance     []ProductRecord       `json:"all_time_performance"`
	GrowthComparison       []GrowthComparisonRow `json:"growth_comparison"`
}

var spanLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func parseInstant(s string) (time.Time, bool) {
	for _, layout := range spanLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func checkSpan(name, first, last string) error {
	f, okF := parseInstant(first)
	l, okL := parseInstant(last)
	if okF && okL && l.Before(f) {
		return fmt.Errorf("%s: last activity %s precedes first %s", name, last, first)
	}
	return nil
}
