package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the performance sync loop
// and the HTTP surface.
type Metrics struct {
	// Sync loop
	TicksTotal         *prometheus.CounterVec
	TickDuration       prometheus.Histogram
	CampaignsInTick    prometheus.Gauge
	CampaignFailures   prometheus.Counter
	SnapshotsGenerated *prometheus.CounterVec
	AlertsTriggered    *prometheus.CounterVec

	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

func New() *Metrics {
	return &Metrics{
		TicksTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "performance_sync_ticks_total",
				Help: "Total performance sync ticks by outcome",
			},
			[]string{"status"},
		),
		TickDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "performance_sync_tick_duration_seconds",
				Help:    "Duration of one performance sync tick",
				Buckets: prometheus.DefBuckets,
			},
		),
		CampaignsInTick: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "performance_sync_campaigns",
				Help: "Campaigns processed in the most recent tick",
			},
		),
		CampaignFailures: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "performance_sync_campaign_failures_total",
				Help: "Campaigns whose metric generation failed and was skipped",
			},
		),
		SnapshotsGenerated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "performance_snapshots_generated_total",
				Help: "Performance snapshots persisted, by platform",
			},
			[]string{"platform"},
		),
		AlertsTriggered: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "performance_alerts_triggered_total",
				Help: "Alerts raised on generated snapshots",
			},
			[]string{"kind", "severity"},
		),
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

// ObserveTick records one completed tick.
func (m *Metrics) ObserveTick(status string, duration time.Duration, campaigns int) {
	m.TicksTotal.WithLabelValues(status).Inc()
	m.TickDuration.Observe(duration.Seconds())
	m.CampaignsInTick.Set(float64(campaigns))
}
