package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/salesboard/internal/clients/transport"
	"github.com/aristath/salesboard/internal/domain"
	"github.com/aristath/salesboard/internal/modules/dashboard"
)

type fakeService struct {
	page        *dashboard.Page
	pageErr     error
	insight     *domain.Insight
	warning     *dashboard.Warning
	lastCadence domain.Cadence
}

func (f *fakeService) LoadPage(context.Context) (*dashboard.Page, error) {
	return f.page, f.pageErr
}

func (f *fakeService) LoadInsight(_ context.Context, cadence domain.Cadence) (*domain.Insight, *dashboard.Warning) {
	f.lastCadence = cadence
	return f.insight, f.warning
}

func newRouter(svc Service) *chi.Mux {
	logger := zerolog.New(nil).Level(zerolog.Disabled)
	router := chi.NewRouter()
	NewHandler(svc, logger).RegisterRoutes(router)
	return router
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestHandleGetDashboard(t *testing.T) {
	tests := []struct {
		name           string
		svc            *fakeService
		expectedStatus int
		validate       func(*testing.T, map[string]interface{})
	}{
		{
			name: "success with warning",
			svc: &fakeService{page: &dashboard.Page{
				Dashboard: &dashboard.Dashboard{Summary: &domain.DashboardSummary{CurrentWeekSales: 10}},
				Insights:  map[domain.Cadence]*domain.Insight{},
				Warnings:  []dashboard.Warning{{Section: "weekly_insight", Message: "timeout", Strategy: dashboard.BestEffort}},
			}},
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, response map[string]interface{}) {
				data := response["data"].(map[string]interface{})
				assert.NotNil(t, data["dashboard"])
				warnings := data["warnings"].([]interface{})
				assert.Len(t, warnings, 1)
				assert.NotNil(t, response["metadata"])
			},
		},
		{
			name:           "upstream client error passes through",
			svc:            &fakeService{pageErr: &transport.ServerError{Status: http.StatusNotFound, Message: "Not found"}},
			expectedStatus: http.StatusNotFound,
			validate: func(t *testing.T, response map[string]interface{}) {
				assert.Contains(t, response["error"], "Not found")
			},
		},
		{
			name:           "upstream server error is bad gateway",
			svc:            &fakeService{pageErr: &transport.ServerError{Status: http.StatusInternalServerError, Message: "boom"}},
			expectedStatus: http.StatusBadGateway,
		},
		{
			name:           "network error is gateway timeout",
			svc:            &fakeService{pageErr: &transport.NetworkError{Method: "GET", URL: "http://x", Err: context.DeadlineExceeded}},
			expectedStatus: http.StatusGatewayTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/dashboard/", nil)
			w := httptest.NewRecorder()

			newRouter(tt.svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.validate != nil {
				tt.validate(t, decode(t, w))
			}
		})
	}
}

func TestHandleGetInsight(t *testing.T) {
	t.Run("loaded", func(t *testing.T) {
		var insight domain.Insight
		require.NoError(t, json.Unmarshal([]byte(`{"message":"Sales are up","extra":1}`), &insight))
		svc := &fakeService{insight: &insight}

		w := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(w, httptest.NewRequest("GET", "/dashboard/insights/daily", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, domain.CadenceDaily, svc.lastCadence)

		data := decode(t, w)["data"].(map[string]interface{})
		got := data["insight"].(map[string]interface{})
		assert.Equal(t, "Sales are up", got["message"])
		assert.Equal(t, float64(1), got["extra"], "raw payload is preserved")
		assert.Empty(t, data["warnings"])
	})

	t.Run("warning is not an error status", func(t *testing.T) {
		svc := &fakeService{warning: &dashboard.Warning{Section: "weekly_insight", Message: "down", Strategy: dashboard.BestEffort}}

		w := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(w, httptest.NewRequest("GET", "/dashboard/insights/weekly", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		data := decode(t, w)["data"].(map[string]interface{})
		assert.Nil(t, data["insight"])
		assert.Len(t, data["warnings"], 1)
	})

	t.Run("unknown cadence", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter(&fakeService{}).ServeHTTP(w, httptest.NewRequest("GET", "/dashboard/insights/monthly", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRegisterRoutes(t *testing.T) {
	router := newRouter(&fakeService{})

	var patterns []string
	_ = chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		patterns = append(patterns, method+" "+route)
		return nil
	})

	assert.Contains(t, patterns, "GET /dashboard/")
	assert.Contains(t, patterns, "GET /dashboard/insights/{cadence}")
}
