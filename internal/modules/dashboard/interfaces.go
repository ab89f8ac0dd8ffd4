package dashboard

import (
	"context"
	"encoding/json"

	"github.com/aristath/salesboard/internal/domain"
)

// AnalyticsSource is the subset of the analytics client the dashboard needs
type AnalyticsSource interface {
	Dashboard(ctx context.Context) (*domain.DashboardSummary, error)
	Patterns(ctx context.Context) (*domain.SalesPatterns, error)
	Products(ctx context.Context) (*domain.ProductInsights, error)
}

// InsightSource fetches raw insight payloads
type InsightSource interface {
	Fetch(ctx context.Context, cadence domain.Cadence) (json.RawMessage, error)
}

// InsightCache is the persisted result cache
type InsightCache interface {
	Get(ctx context.Context, cadence domain.Cadence) (json.RawMessage, bool, error)
	Put(ctx context.Context, cadence domain.Cadence, payload json.RawMessage) error
}
