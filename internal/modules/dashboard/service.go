// Package dashboard loads the overview screen: the three analytics payloads
// fetched together, plus the daily and weekly insights served through the
// result cache.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/aristath/salesboard/internal/domain"
)

// Service orchestrates dashboard and insight loads
type Service struct {
	analytics AnalyticsSource
	insights  InsightSource
	cache     InsightCache
	log       zerolog.Logger
}

// NewService creates the dashboard service. insights may be nil when the
// insights API is not configured; cache may be nil to disable caching.
func NewService(analytics AnalyticsSource, insights InsightSource, cache InsightCache, log zerolog.Logger) *Service {
	return &Service{
		analytics: analytics,
		insights:  insights,
		cache:     cache,
		log:       log.With().Str("service", "dashboard").Logger(),
	}
}

// LoadDashboard fetches summary, patterns and products concurrently.
// Any failure fails the whole load; no partial dashboard is returned.
func (s *Service) LoadDashboard(ctx context.Context) (*Dashboard, error) {
	var (
		summary  *domain.DashboardSummary
		patterns *domain.SalesPatterns
		products *domain.ProductInsights
	)

	err := fetchAll(ctx,
		func(ctx context.Context) (err error) {
			summary, err = s.analytics.Dashboard(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			patterns, err = s.analytics.Patterns(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			products, err = s.analytics.Products(ctx)
			return err
		},
	)
	if err != nil {
		s.log.Error().Err(err).Str("strategy", string(AllOrNothing)).Msg("Dashboard load failed")
		return nil, err
	}

	return &Dashboard{
		Summary:  summary,
		Patterns: patterns,
		Products: products,
		Metrics:  BuildMetrics(summary, patterns, products),
	}, nil
}

// LoadInsight serves the cadence's insight from the cache or fetches it.
// Failures are returned as a warning, never as an error.
func (s *Service) LoadInsight(ctx context.Context, cadence domain.Cadence) (*domain.Insight, *Warning) {
	section := string(cadence) + "_insight"
	warn := func(msg string) *Warning {
		s.log.Warn().Str("section", section).Str("strategy", string(BestEffort)).Msg(msg)
		return &Warning{Section: section, Message: msg, Strategy: BestEffort}
	}

	if !cadence.Valid() {
		return nil, warn(fmt.Sprintf("unknown cadence %q", cadence))
	}

	if s.cache != nil {
		payload, ok, err := s.cache.Get(ctx, cadence)
		if err != nil {
			s.log.Warn().Err(err).Str("cadence", string(cadence)).Msg("Insight cache read failed, fetching")
		} else if ok {
			if insight, err := decodeInsight(payload); err == nil {
				return insight, nil
			}
			s.log.Warn().Str("cadence", string(cadence)).Msg("Cached insight unreadable, fetching")
		}
	}

	if s.insights == nil {
		return nil, warn("insights are not configured")
	}

	payload, err := s.insights.Fetch(ctx, cadence)
	if err != nil {
		return nil, warn(err.Error())
	}

	insight, err := decodeInsight(payload)
	if err != nil {
		return nil, warn(fmt.Sprintf("unreadable %s insight: %v", cadence, err))
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, cadence, payload); err != nil {
			s.log.Warn().Err(err).Str("cadence", string(cadence)).Msg("Failed to cache insight")
		}
	}

	return insight, nil
}

// LoadDailyInsight is LoadInsight for the daily cadence
func (s *Service) LoadDailyInsight(ctx context.Context) (*domain.Insight, *Warning) {
	return s.LoadInsight(ctx, domain.CadenceDaily)
}

// LoadWeeklyInsight is LoadInsight for the weekly cadence
func (s *Service) LoadWeeklyInsight(ctx context.Context) (*domain.Insight, *Warning) {
	return s.LoadInsight(ctx, domain.CadenceWeekly)
}

// LoadPage loads the dashboard and both insights concurrently. Only the
// dashboard can fail the page; insight problems become warnings.
func (s *Service) LoadPage(ctx context.Context) (*Page, error) {
	page := &Page{
		Insights: make(map[domain.Cadence]*domain.Insight),
		Warnings: []Warning{},
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, cadence := range []domain.Cadence{domain.CadenceDaily, domain.CadenceWeekly} {
		wg.Add(1)
		go func(cadence domain.Cadence) {
			defer wg.Done()
			insight, warning := s.LoadInsight(ctx, cadence)

			mu.Lock()
			defer mu.Unlock()
			if insight != nil {
				page.Insights[cadence] = insight
			}
			if warning != nil {
				page.Warnings = append(page.Warnings, *warning)
			}
		}(cadence)
	}

	dash, err := s.LoadDashboard(ctx)
	wg.Wait()
	if err != nil {
		return nil, err
	}

	sort.Slice(page.Warnings, func(i, j int) bool { return page.Warnings[i].Section < page.Warnings[j].Section })

	page.Dashboard = dash
	return page, nil
}

func decodeInsight(payload json.RawMessage) (*domain.Insight, error) {
	var insight domain.Insight
	if err := json.Unmarshal(payload, &insight); err != nil {
		return nil, err
	}
	return &insight, nil
}
