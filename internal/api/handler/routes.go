package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adpulse/campaign-metrics-api/internal/api/handler/router"
	"github.com/adpulse/campaign-metrics-api/internal/usecases/reporting"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

func Performance(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/campaigns/:id/performance/dashboard",
			Method:  http.MethodGet,
			Handler: GetPerformanceDashboard(service),
		},
		{
			Path:    "/v1/campaigns/:id/performance/latest",
			Method:  http.MethodGet,
			Handler: GetLatestPerformance(service),
		},
		{
			Path:    "/v1/campaigns/:id/performance/history",
			Method:  http.MethodGet,
			Handler: GetPerformanceHistory(service),
		},
		{
			Path:    "/v1/campaigns/:id/performance/alerts/:kind/acknowledge",
			Method:  http.MethodPost,
			Handler: AcknowledgePerformanceAlert(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
