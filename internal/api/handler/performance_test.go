package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adpulse/campaign-metrics-api/internal/domain"
)

// stubReporter is a hand-rolled Reporter double; each field overrides one
// operation, the rest return zero values.
type stubReporter struct {
	latest  func(campaignID string, platform domain.Platform) (*domain.PerformanceSnapshot, error)
	history func(campaignID string, hours int) ([]*domain.PerformanceSnapshot, error)
	summary func(campaignID string) (*domain.PerformanceSummary, error)
	ack     func(campaignID string, kind domain.AlertKind) error
}

func (s *stubReporter) Latest(_ context.Context, campaignID string, platform domain.Platform) (*domain.PerformanceSnapshot, error) {
	if s.latest == nil {
		return nil, nil
	}
	return s.latest(campaignID, platform)
}

func (s *stubReporter) History(_ context.Context, campaignID string, hours int) ([]*domain.PerformanceSnapshot, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history(campaignID, hours)
}

func (s *stubReporter) Summary(_ context.Context, campaignID string) (*domain.PerformanceSummary, error) {
	if s.summary == nil {
		return nil, nil
	}
	return s.summary(campaignID)
}

func (s *stubReporter) AcknowledgeAlert(_ context.Context, campaignID string, kind domain.AlertKind) error {
	if s.ack == nil {
		return nil
	}
	return s.ack(campaignID, kind)
}

func requestWithParams(method, target string, params httprouter.Params) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	ctx := context.WithValue(req.Context(), httprouter.ParamsKey, params)
	return req.WithContext(ctx)
}

func TestGetPerformanceDashboard(t *testing.T) {
	service := &stubReporter{
		summary: func(campaignID string) (*domain.PerformanceSummary, error) {
			assert.Equal(t, "CMP001", campaignID)
			return &domain.PerformanceSummary{
				CampaignID:  campaignID,
				WindowHours: 24,
				TotalSpend:  30.0,
			}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := requestWithParams(http.MethodGet, "/v1/campaigns/CMP001/performance/dashboard",
		httprouter.Params{{Key: "id", Value: "CMP001"}})

	GetPerformanceDashboard(service).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"campaign_id":"CMP001"`)
	assert.Contains(t, rec.Body.String(), `"total_spend":30`)
}

func TestGetPerformanceDashboard_MissingCampaignID(t *testing.T) {
	rec := httptest.NewRecorder()
	req := requestWithParams(http.MethodGet, "/v1/campaigns//performance/dashboard", nil)

	GetPerformanceDashboard(&stubReporter{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetLatestPerformance_NormalizesPlatform(t *testing.T) {
	var requested domain.Platform
	service := &stubReporter{
		latest: func(_ string, platform domain.Platform) (*domain.PerformanceSnapshot, error) {
			requested = platform
			return &domain.PerformanceSnapshot{ID: "SNAP001", Platform: platform}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := requestWithParams(http.MethodGet, "/v1/campaigns/CMP001/performance/latest?platform=meta",
		httprouter.Params{{Key: "id", Value: "CMP001"}})

	GetLatestPerformance(service).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.PlatformMeta, requested)
}

func TestGetLatestPerformance_NotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	req := requestWithParams(http.MethodGet, "/v1/campaigns/CMP001/performance/latest",
		httprouter.Params{{Key: "id", Value: "CMP001"}})

	GetLatestPerformance(&stubReporter{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetPerformanceHistory_HoursValidation(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		expectedCode  int
		expectedHours int
	}{
		{name: "no hours defaults downstream", query: "", expectedCode: http.StatusOK, expectedHours: 0},
		{name: "explicit hours", query: "?hours=6", expectedCode: http.StatusOK, expectedHours: 6},
		{name: "non-numeric hours rejected", query: "?hours=abc", expectedCode: http.StatusBadRequest},
		{name: "negative hours rejected", query: "?hours=-3", expectedCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var requestedHours int
			service := &stubReporter{
				history: func(_ string, hours int) ([]*domain.PerformanceSnapshot, error) {
					requestedHours = hours
					return []*domain.PerformanceSnapshot{}, nil
				},
			}

			rec := httptest.NewRecorder()
			req := requestWithParams(http.MethodGet, "/v1/campaigns/CMP001/performance/history"+tt.query,
				httprouter.Params{{Key: "id", Value: "CMP001"}})

			GetPerformanceHistory(service).ServeHTTP(rec, req)

			require.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedCode == http.StatusOK {
				assert.Equal(t, tt.expectedHours, requestedHours)
			}
		})
	}
}

func TestAcknowledgePerformanceAlert(t *testing.T) {
	var acked domain.AlertKind
	service := &stubReporter{
		ack: func(campaignID string, kind domain.AlertKind) error {
			assert.Equal(t, "CMP001", campaignID)
			acked = kind
			return nil
		},
	}

	rec := httptest.NewRecorder()
	req := requestWithParams(http.MethodPost, "/v1/campaigns/CMP001/performance/alerts/LOW_CTR/acknowledge",
		httprouter.Params{{Key: "id", Value: "CMP001"}, {Key: "kind", Value: "LOW_CTR"}})

	AcknowledgePerformanceAlert(service).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.AlertLowCTR, acked)
	assert.Contains(t, rec.Body.String(), `"status":"acknowledged"`)
}

func TestAcknowledgePerformanceAlert_MissingKind(t *testing.T) {
	rec := httptest.NewRecorder()
	req := requestWithParams(http.MethodPost, "/v1/campaigns/CMP001/performance/alerts//acknowledge",
		httprouter.Params{{Key: "id", Value: "CMP001"}})

	AcknowledgePerformanceAlert(&stubReporter{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
