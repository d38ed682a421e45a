package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/adpulse/campaign-metrics-api/internal/scheduler"
	"github.com/adpulse/campaign-metrics-api/pkg/apiErrors"
)

const (
	CronJobTypePerformance = "performance"
)

// CronJobServices holds the schedulers exposed for manual runs.
type CronJobServices struct {
	PerformanceSyncService *scheduler.PerformanceSyncService
}

// RunCronJob triggers one scheduler cycle outside its regular cadence.
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "cron job type not specified", nil)
			return
		}

		logrus.WithField("type", cronType).Info("manual cron run requested")

		switch cronType {
		case CronJobTypePerformance:
			if services.PerformanceSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "performance sync service unavailable", nil)
				return
			}
			services.PerformanceSyncService.TriggerManualSync()
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid cron job type, accepted values: performance", nil)
			return
		}

		writeJSON(w, logFor(r), map[string]any{
			"message": "cron job started",
			"type":    cronType,
		})
	}
}

// GetCronStatus reports scheduler state.
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{
			"performance": services.PerformanceSyncService.GetStatus(),
		}

		writeJSON(w, logFor(r), status)
	}
}
