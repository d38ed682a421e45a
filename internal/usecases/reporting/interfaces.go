package reporting

import (
	"context"
	"time"

	"github.com/adpulse/campaign-metrics-api/internal/domain"
)

// Reporter is the read-side API consumed by the dashboard and analysis
// endpoints.
type Reporter interface {
	// Latest returns the most recent snapshot for the campaign on one
	// platform (COMBINED when platform is empty), or nil when none exists.
	Latest(ctx context.Context, campaignID string, platform domain.Platform) (*domain.PerformanceSnapshot, error)

	// History returns all snapshots inside the trailing window, oldest
	// first. hours <= 0 defaults to 24.
	History(ctx context.Context, campaignID string, hours int) ([]*domain.PerformanceSnapshot, error)

	// Summary returns the dashboard aggregate view for the campaign.
	Summary(ctx context.Context, campaignID string) (*domain.PerformanceSummary, error)

	// AcknowledgeAlert stamps the most recent matching triggered,
	// unacknowledged alert. A missing alert is a no-op, not an error, and
	// an already-acknowledged alert keeps its original timestamp.
	AcknowledgeAlert(ctx context.Context, campaignID string, kind domain.AlertKind) error
}

// SnapshotCache is the optional read cache attached via WithCache.
type SnapshotCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
