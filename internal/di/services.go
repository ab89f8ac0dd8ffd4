package di

import (
	"github.com/rs/zerolog"

	"github.com/aristath/salesboard/internal/clients/analytics"
	"github.com/aristath/salesboard/internal/clients/insights"
	"github.com/aristath/salesboard/internal/clients/transport"
	"github.com/aristath/salesboard/internal/config"
	"github.com/aristath/salesboard/internal/modules/dashboard"
	"github.com/aristath/salesboard/internal/modules/reports"
)

// InitializeServices creates the API clients and the view services
func InitializeServices(container *Container, cfg *config.Config, log zerolog.Logger) error {
	// Analytics API: forwards the caller's identity token, or the configured
	// token when running outside a request (CLI)
	container.AnalyticsTransport = transport.NewClient(transport.Config{
		Name:    "analytics",
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}, transport.ContextToken{Fallback: transport.StaticToken(cfg.API.BearerToken)}, log)
	container.AnalyticsClient = analytics.NewClient(container.AnalyticsTransport, log)

	// The insight source and cache stay nil interfaces when insights are
	// disabled so the dashboard reports them as not configured
	var (
		insightSource dashboard.InsightSource
		insightCache  dashboard.InsightCache
	)
	if cfg.InsightsEnabled() {
		container.InsightsClient = insights.NewClient(insights.Config{
			BaseURL:    cfg.Insights.BaseURL,
			ClientKey:  cfg.Insights.ClientKey,
			TokenPath:  cfg.Insights.TokenPath,
			DailyPath:  cfg.Insights.DailyPath,
			WeeklyPath: cfg.Insights.WeeklyPath,
			TokenTTL:   cfg.Insights.TokenTTL,
			Timeout:    cfg.Insights.FetchTimeout,
		}, log)
		insightSource = container.InsightsClient
		insightCache = container.ResultCache
	} else {
		log.Warn().Msg("INSIGHTS_BASE_URL not set, dashboard insights disabled")
	}

	container.DashboardService = dashboard.NewService(container.AnalyticsClient, insightSource, insightCache, log)
	container.ReportService = reports.NewService(container.AnalyticsClient, log)

	return nil
}
