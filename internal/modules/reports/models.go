package reports

import (
	"github.com/aristath/salesboard/internal/domain"
	"github.com/aristath/salesboard/pkg/formulas"
)

// Change is the latest period compared with the one before it
type Change struct {
	Percent float64 `json:"percent"`
	Trend   string  `json:"trend"`
}

// WeeklyReport is the weekly screen
type WeeklyReport struct {
	Weeks         int                    `json:"weeks"`
	Analysis      *domain.WeeklyAnalysis `json:"analysis"`
	Change        Change                 `json:"change"`
	MovingAverage []*float64             `json:"moving_average"`
}

// MonthlyReport is the monthly screen
type MonthlyReport struct {
	Months        int                     `json:"months"`
	Analysis      *domain.MonthlyAnalysis `json:"analysis"`
	Change        Change                  `json:"change"`
	MovingAverage []*float64              `json:"moving_average"`
}

// YearlyReport is the yearly screen
type YearlyReport struct {
	Analysis      *domain.YearlyAnalysis `json:"analysis"`
	Change        Change                 `json:"change"`
	ItemsPerOrder float64                `json:"items_per_order"`
}

// CustomerShare is a ranked customer with its share of the cohort's spend
type CustomerShare struct {
	domain.CustomerRecord
	RevenueShare float64 `json:"revenue_share"`
}

// CustomerReport is the customers screen
type CustomerReport struct {
	CurrentYear        int                     `json:"current_year"`
	TotalSpent         float64                 `json:"total_spent"`
	AveragePerCustomer float64                 `json:"average_per_customer"`
	TopCustomer        *domain.CustomerRecord  `json:"top_customer"`
	TopCustomers       []CustomerShare         `json:"top_customers"`
	AllTime            []domain.CustomerRecord `json:"all_time_top_customers"`
}

// ProductReport is the products screen
type ProductReport struct {
	CurrentYear      int                                 `json:"current_year"`
	TopProduct       *domain.ProductRecord               `json:"top_product"`
	TopProductGrowth float64                             `json:"top_product_growth"`
	Performance      []domain.ProductRecord              `json:"current_year_performance"`
	AllTime          []domain.ProductRecord              `json:"all_time_performance"`
	Search           string                              `json:"search"`
	Growth           formulas.Page[formulas.GrowthGroup] `json:"growth"`
}

// HourRow is an hourly bucket with its display label
type HourRow struct {
	domain.HourlyPattern
	Label string `json:"label"`
}

// WeekdayRow is a day-of-week bucket with its name
type WeekdayRow struct {
	domain.DayOfWeekPattern
	Name string `json:"name"`
}

// PeakPeriodRow is a peak (hour, weekday) slot with display labels
type PeakPeriodRow struct {
	domain.PeakSalesPeriod
	HourLabel string `json:"hour_label"`
	DayName   string `json:"day_name"`
}

// PatternReport is the sales patterns screen
type PatternReport struct {
	CurrentYear int                   `json:"current_year"`
	PeakHour    *HourRow              `json:"peak_hour"`
	PeakDay     *WeekdayRow           `json:"peak_day"`
	Hourly      []HourRow             `json:"hourly"`
	Daily       []domain.DailyPattern `json:"daily"`
	Weekdays    []WeekdayRow          `json:"weekdays"`
	PeakPeriods []PeakPeriodRow       `json:"peak_periods"`
}
