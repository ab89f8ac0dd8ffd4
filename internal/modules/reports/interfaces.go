package reports

import (
	"context"

	"github.com/aristath/salesboard/internal/domain"
)

// Source is the subset of the analytics client the reports read from
type Source interface {
	Weekly(ctx context.Context, weeks int) (*domain.WeeklyAnalysis, error)
	Monthly(ctx context.Context, months int) (*domain.MonthlyAnalysis, error)
	Yearly(ctx context.Context) (*domain.YearlyAnalysis, error)
	Customers(ctx context.Context) (*domain.CustomerInsights, error)
	Products(ctx context.Context) (*domain.ProductInsights, error)
	Patterns(ctx context.Context) (*domain.SalesPatterns, error)
}
