// Package analytics provides typed access to the primary sales analytics API.
package analytics

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/aristath/salesboard/internal/clients/transport"
	"github.com/aristath/salesboard/internal/domain"
)

// Endpoint paths on the primary API
const (
	PathDashboard = "/dashboard/"
	PathWeekly    = "/weekly/"
	PathMonthly   = "/monthly/"
	PathYearly    = "/yearly/"
	PathCustomers = "/customers-insights/"
	PathProducts  = "/products-insights/"
	PathPatterns  = "/patterns/"
)

// Default windows used when the caller does not pick one
const (
	DefaultWeeks  = 8
	DefaultMonths = 12
)

// Client for the primary analytics API.
// The bearer token comes from the transport's token source, normally the
// caller's identity token carried on the request context.
type Client struct {
	http *transport.Client
	log  zerolog.Logger
}

// NewClient creates a new analytics API client
func NewClient(http *transport.Client, log zerolog.Logger) *Client {
	return &Client{
		http: http,
		log:  log.With().Str("client", "analytics").Logger(),
	}
}

// Dashboard fetches today's and this week's headline figures
func (c *Client) Dashboard(ctx context.Context) (*domain.DashboardSummary, error) {
	var out domain.DashboardSummary
	if err := c.http.Get(ctx, PathDashboard, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch dashboard: %w", err)
	}
	return &out, nil
}

// Weekly fetches the last n weeks, newest first. n <= 0 uses DefaultWeeks.
func (c *Client) Weekly(ctx context.Context, weeks int) (*domain.WeeklyAnalysis, error) {
	if weeks <= 0 {
		weeks = DefaultWeeks
	}
	var out domain.WeeklyAnalysis
	q := url.Values{"weeks": {strconv.Itoa(weeks)}}
	if err := c.http.Get(ctx, PathWeekly, q, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch weekly analysis: %w", err)
	}
	return &out, nil
}

// Monthly fetches the last n months, newest first. n <= 0 uses DefaultMonths.
func (c *Client) Monthly(ctx context.Context, months int) (*domain.MonthlyAnalysis, error) {
	if months <= 0 {
		months = DefaultMonths
	}
	var out domain.MonthlyAnalysis
	q := url.Values{"months": {strconv.Itoa(months)}}
	if err := c.http.Get(ctx, PathMonthly, q, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch monthly analysis: %w", err)
	}
	return &out, nil
}

// Yearly fetches per-year summaries
func (c *Client) Yearly(ctx context.Context) (*domain.YearlyAnalysis, error) {
	var out domain.YearlyAnalysis
	if err := c.http.Get(ctx, PathYearly, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch yearly analysis: %w", err)
	}
	return &out, nil
}

// Customers fetches top customers
func (c *Client) Customers(ctx context.Context) (*domain.CustomerInsights, error) {
	var out domain.CustomerInsights
	if err := c.http.Get(ctx, PathCustomers, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch customer insights: %w", err)
	}
	return &out, nil
}

// Products fetches product performance and year-over-year rows
func (c *Client) Products(ctx context.Context) (*domain.ProductInsights, error) {
	var out domain.ProductInsights
	if err := c.http.Get(ctx, PathProducts, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch product insights: %w", err)
	}
	return &out, nil
}

// Patterns fetches hourly, daily and weekday sales patterns
func (c *Client) Patterns(ctx context.Context) (*domain.SalesPatterns, error) {
	var out domain.SalesPatterns
	if err := c.http.Get(ctx, PathPatterns, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch sales patterns: %w", err)
	}
	return &out, nil
}
