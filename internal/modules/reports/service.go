// Package reports builds the per-screen report views: one upstream fetch per
// report followed by the derived figures the screen shows.
package reports

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/salesboard/internal/domain"
	"github.com/aristath/salesboard/pkg/formulas"
)

// ErrInvalidWindow is returned for a week or month count the API does not serve.
var ErrInvalidWindow = errors.New("invalid report window")

// AllowedWeeks are the week windows offered by the weekly report
var AllowedWeeks = []int{4, 8, 12, 26}

const (
	DefaultWeeks  = 8
	DefaultMonths = 12
	MaxMonths     = 36

	// TopCustomerCount is the size of the ranked customer cohort
	TopCustomerCount = 10
	// DefaultPageSize is the number of growth groups per page
	DefaultPageSize = 10
	MaxPageSize     = 100

	weeklyWindow  = 4
	monthlyWindow = 3
)

// Service builds report views from the analytics API
type Service struct {
	source Source
	log    zerolog.Logger
}

// NewService creates a report service
func NewService(source Source, log zerolog.Logger) *Service {
	return &Service{
		source: source,
		log:    log.With().Str("service", "reports").Logger(),
	}
}

// Weekly loads the weekly report. A zero weeks uses DefaultWeeks.
func (s *Service) Weekly(ctx context.Context, weeks int) (*WeeklyReport, error) {
	if weeks == 0 {
		weeks = DefaultWeeks
	}
	if !allowedWeeks(weeks) {
		return nil, fmt.Errorf("%w: weeks must be one of %v, got %d", ErrInvalidWindow, AllowedWeeks, weeks)
	}

	analysis, err := s.source.Weekly(ctx, weeks)
	if err != nil {
		return nil, err
	}

	totals := make([]float64, len(analysis.WeeklySummary))
	for i := range analysis.WeeklySummary {
		b := &analysis.WeeklySummary[i]
		s.normalize("weekly_summary", &b.TimeBucketMetric, b.TotalOrders)
		totals[i] = b.TotalSales
	}
	for i := range analysis.PreviousYearComparison {
		b := &analysis.PreviousYearComparison[i]
		s.normalize("previous_year_comparison", &b.TimeBucketMetric, b.TotalOrders)
	}

	return &WeeklyReport{
		Weeks:         weeks,
		Analysis:      analysis,
		Change:        latestChange(totals),
		MovingAverage: newestFirstAverage(totals, weeklyWindow),
	}, nil
}

// Monthly loads the monthly report. A zero months uses DefaultMonths.
func (s *Service) Monthly(ctx context.Context, months int) (*MonthlyReport, error) {
	if months == 0 {
		months = DefaultMonths
	}
	if months < 1 || months > MaxMonths {
		return nil, fmt.Errorf("%w: months must be between 1 and %d, got %d", ErrInvalidWindow, MaxMonths, months)
	}

	analysis, err := s.source.Monthly(ctx, months)
	if err != nil {
		return nil, err
	}

	totals := make([]float64, len(analysis.CurrentYearData))
	for i := range analysis.CurrentYearData {
		b := &analysis.CurrentYearData[i]
		s.normalize("current_year_data", &b.TimeBucketMetric, b.TotalOrders)
		totals[i] = b.TotalSales
	}
	for i := range analysis.HistoricalComparison {
		b := &analysis.HistoricalComparison[i]
		s.normalize("historical_comparison", &b.TimeBucketMetric, b.TotalOrders)
	}

	return &MonthlyReport{
		Months:        months,
		Analysis:      analysis,
		Change:        latestChange(totals),
		MovingAverage: newestFirstAverage(totals, monthlyWindow),
	}, nil
}

// Yearly loads the yearly report. The current year is compared with the
// second entry of the yearly summary, which is the previous year.
func (s *Service) Yearly(ctx context.Context) (*YearlyReport, error) {
	analysis, err := s.source.Yearly(ctx)
	if err != nil {
		return nil, err
	}

	current := &analysis.CurrentYearSummary
	s.normalize("current_year_summary", &current.TimeBucketMetric, current.TotalOrders)
	for i := range analysis.YearlySummary {
		b := &analysis.YearlySummary[i]
		s.normalize("yearly_summary", &b.TimeBucketMetric, b.TotalOrders)
	}

	var previous *float64
	prev := 0.0
	if len(analysis.YearlySummary) > 1 {
		prev = analysis.YearlySummary[1].TotalSales
		previous = &prev
	}

	return &YearlyReport{
		Analysis: analysis,
		Change: Change{
			Percent: formulas.PercentChangeOpt(current.TotalSales, previous),
			Trend:   formulas.Trend(current.TotalSales, prev),
		},
		ItemsPerOrder: formulas.Ratio(float64(current.ItemsSold), current.TotalOrders),
	}, nil
}

// Customers loads the customer report for the current year's top customers
func (s *Service) Customers(ctx context.Context) (*CustomerReport, error) {
	insights, err := s.source.Customers(ctx)
	if err != nil {
		return nil, err
	}

	customers := insights.CurrentYearTopCustomers
	for _, c := range customers {
		if err := c.Validate(); err != nil {
			s.log.Warn().Err(err).Msg("Inconsistent customer record")
		}
	}

	spent := make([]float64, len(customers))
	for i, c := range customers {
		spent[i] = c.TotalSpent
	}

	report := &CustomerReport{
		CurrentYear:        insights.CurrentYear,
		AveragePerCustomer: formulas.Mean(spent),
		TopCustomers:       []CustomerShare{},
		AllTime:            insights.AllTimeTopCustomers,
	}
	for _, v := range spent {
		report.TotalSpent += v
	}

	if len(customers) > 0 {
		top := customers[0]
		report.TopCustomer = &top
	}

	cohort := formulas.TopN(customers, TopCustomerCount)
	shares := formulas.RevenueShares(spent[:len(cohort)])
	for i, c := range cohort {
		report.TopCustomers = append(report.TopCustomers, CustomerShare{CustomerRecord: c, RevenueShare: shares[i]})
	}

	return report, nil
}

// Products loads the product report. Growth groups are filtered by search
// and paginated by group; page and size below 1 use the defaults and size
// is capped at MaxPageSize.
func (s *Service) Products(ctx context.Context, search string, page, size int) (*ProductReport, error) {
	insights, err := s.source.Products(ctx)
	if err != nil {
		return nil, err
	}

	for _, p := range insights.CurrentYearPerformance {
		if err := p.Validate(); err != nil {
			s.log.Warn().Err(err).Msg("Inconsistent product record")
		}
	}

	rows := make([]formulas.YearRevenue, len(insights.GrowthComparison))
	for i, r := range insights.GrowthComparison {
		rows[i] = formulas.YearRevenue{Name: r.ProductName, Year: r.Year, Revenue: r.TotalRevenue}
	}

	groups := formulas.GroupYearOverYear(rows)
	groups = formulas.FilterByName(groups, search, func(g formulas.GrowthGroup) string { return g.Name })
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	report := &ProductReport{
		CurrentYear: insights.CurrentYear,
		Performance: insights.CurrentYearPerformance,
		AllTime:     insights.AllTimePerformance,
		Search:      search,
		Growth:      formulas.Paginate(groups, page, size),
	}

	if len(insights.CurrentYearPerformance) > 0 {
		top := insights.CurrentYearPerformance[0]
		report.TopProduct = &top
		report.TopProductGrowth = formulas.YearOverYear(rows, top.ProductName, insights.CurrentYear)
	}

	return report, nil
}

// Patterns loads the sales patterns report
func (s *Service) Patterns(ctx context.Context) (*PatternReport, error) {
	patterns, err := s.source.Patterns(ctx)
	if err != nil {
		return nil, err
	}

	report := &PatternReport{
		CurrentYear: patterns.CurrentYear,
		Hourly:      make([]HourRow, len(patterns.HourlyPatterns)),
		Daily:       patterns.DailyPatterns,
		Weekdays:    make([]WeekdayRow, len(patterns.DayOfWeekPatterns)),
		PeakPeriods: make([]PeakPeriodRow, len(patterns.PeakSalesPeriods)),
	}

	for i, h := range patterns.HourlyPatterns {
		s.normalize("hourly_patterns", &h.TimeBucketMetric, 0)
		report.Hourly[i] = HourRow{HourlyPattern: h, Label: formulas.HourLabel(h.Hour)}
	}
	for i := range report.Daily {
		s.normalize("daily_patterns", &report.Daily[i].TimeBucketMetric, 0)
	}
	for i, d := range patterns.DayOfWeekPatterns {
		s.normalize("day_of_week_patterns", &d.TimeBucketMetric, 0)
		report.Weekdays[i] = WeekdayRow{DayOfWeekPattern: d, Name: formulas.DayName(d.DayOfWeek)}
	}
	for i, p := range patterns.PeakSalesPeriods {
		p.AverageOrderValue = formulas.Ratio(p.TotalSales, p.OrderCount)
		if err := p.Validate(); err != nil {
			s.log.Warn().Err(err).Str("section", "peak_sales_periods").Msg("Inconsistent time bucket")
		}
		report.PeakPeriods[i] = PeakPeriodRow{
			PeakSalesPeriod: p,
			HourLabel:       formulas.HourLabel(p.Hour),
			DayName:         formulas.DayName(p.DayOfWeek),
		}
	}

	if peak, ok := formulas.Peak(report.Hourly, func(h HourRow) float64 { return h.TotalSales }); ok {
		report.PeakHour = &peak
	}
	if peak, ok := formulas.Peak(report.Weekdays, func(d WeekdayRow) float64 { return d.TotalSales }); ok {
		report.PeakDay = &peak
	}

	return report, nil
}

func allowedWeeks(weeks int) bool {
	for _, w := range AllowedWeeks {
		if w == weeks {
			return true
		}
	}
	return false
}

// latestChange compares the first two entries of a newest-first series
func latestChange(newestFirst []float64) Change {
	if len(newestFirst) == 0 {
		return Change{Trend: formulas.TrendDecrease}
	}
	current := newestFirst[0]
	var previous *float64
	prev := 0.0
	if len(newestFirst) > 1 {
		previous = &newestFirst[1]
		prev = *previous
	}
	return Change{
		Percent: formulas.PercentChangeOpt(current, previous),
		Trend:   formulas.Trend(current, prev),
	}
}

// newestFirstAverage computes a trailing moving average over a newest-first
// series and returns it aligned with the input order.
func newestFirstAverage(newestFirst []float64, window int) []*float64 {
	n := len(newestFirst)
	chrono := make([]float64, n)
	for i, v := range newestFirst {
		chrono[n-1-i] = v
	}

	avg := formulas.MovingAverage(chrono, window)
	out := make([]*float64, n)
	for i, v := range avg {
		out[n-1-i] = v
	}
	return out
}

// normalize fills in the average order value and logs buckets that break the
// non-negativity invariants. Such buckets are still shown.
func (s *Service) normalize(section string, m *domain.TimeBucketMetric, totalOrders int) {
	m.Normalize(totalOrders)
	if err := m.Validate(); err != nil {
		s.log.Warn().Err(err).Str("section", section).Msg("Inconsistent time bucket")
	}
}
