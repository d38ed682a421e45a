package handler

import (
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"

	"github.com/adpulse/campaign-metrics-api/internal/domain"
	"github.com/adpulse/campaign-metrics-api/internal/usecases/reporting"
	"github.com/adpulse/campaign-metrics-api/pkg/apiErrors"
	"github.com/adpulse/campaign-metrics-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// GetPerformanceDashboard serves the dashboard summary for a campaign.
func GetPerformanceDashboard(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if campaignID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "campaign id is required", nil)
			return
		}

		summary, err := service.Summary(r.Context(), campaignID)
		if err != nil {
			logger.WithFields(log.Fields{
				"campaign_id": campaignID,
				"error":       err.Error(),
			}).Error("performance: failed to build dashboard summary")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "failed to load performance summary", nil)
			return
		}

		writeJSON(w, logger, summary)
	})
}

// GetLatestPerformance serves the most recent snapshot for a campaign and
// platform (COMBINED when no platform is given).
func GetLatestPerformance(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		platform := domain.NormalizePlatform(r.URL.Query().Get("platform"))

		snapshot, err := service.Latest(r.Context(), campaignID, platform)
		if err != nil {
			logger.WithFields(log.Fields{
				"campaign_id": campaignID,
				"platform":    platform,
				"error":       err.Error(),
			}).Error("performance: failed to fetch latest snapshot")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "failed to load latest snapshot", nil)
			return
		}

		if snapshot == nil {
			apiErrors.WriteError(w, apiErrors.ErrNotFound, "no snapshot found for campaign", nil)
			return
		}

		writeJSON(w, logger, snapshot)
	})
}

// GetPerformanceHistory serves the trailing snapshot window for a campaign.
func GetPerformanceHistory(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		hours := 0
		if raw := r.URL.Query().Get("hours"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "hours must be a non-negative integer", nil)
				return
			}
			hours = parsed
		}

		snapshots, err := service.History(r.Context(), campaignID, hours)
		if err != nil {
			logger.WithFields(log.Fields{
				"campaign_id": campaignID,
				"hours":       hours,
				"error":       err.Error(),
			}).Error("performance: failed to fetch snapshot history")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "failed to load snapshot history", nil)
			return
		}

		writeJSON(w, logger, snapshots)
	})
}

// AcknowledgePerformanceAlert stamps the most recent matching alert as
// acknowledged. Acknowledging a missing alert succeeds with no effect.
func AcknowledgePerformanceAlert(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		params := httprouter.ParamsFromContext(r.Context())
		campaignID := params.ByName("id")
		kind := domain.AlertKind(params.ByName("kind"))

		if campaignID == "" || kind == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "campaign id and alert kind are required", nil)
			return
		}

		if err := service.AcknowledgeAlert(r.Context(), campaignID, kind); err != nil {
			logger.WithFields(log.Fields{
				"campaign_id": campaignID,
				"alert_kind":  kind,
				"error":       err.Error(),
			}).Error("performance: failed to acknowledge alert")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "failed to acknowledge alert", nil)
			return
		}

		writeJSON(w, logger, map[string]any{
			"campaign_id": campaignID,
			"alert_kind":  kind,
			"status":      "acknowledged",
		})
	})
}

func logFor(r *http.Request) log.Logger {
	return log.ForContext(r.Context())
}

func writeJSON(w http.ResponseWriter, logger log.Logger, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.WithError(err).Error("failed to encode response")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
