package reporting

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/adpulse/campaign-metrics-api/infrastructure/repository"
	"github.com/adpulse/campaign-metrics-api/internal/domain"
	"github.com/adpulse/campaign-metrics-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// DefaultHistoryHours is the trailing window used by History and
	// Summary when the caller does not specify one.
	DefaultHistoryHours = 24

	// ackSearchWindow bounds how far back AcknowledgeAlert looks for a
	// matching alert; anything older is operationally stale anyway.
	ackSearchWindow = 24 * time.Hour
)

// Service implements Reporter on top of the snapshot store, optionally
// fronted by a short-lived cache for the hot COMBINED reads.
type Service struct {
	snapshotRepo repository.PerformanceSnapshotRepository
	cache        SnapshotCache
	cacheTTL     time.Duration
	now          func() time.Time
}

func NewService(snapshotRepo repository.PerformanceSnapshotRepository) *Service {
	return &Service{
		snapshotRepo: snapshotRepo,
		now:          time.Now,
	}
}

// WithCache attaches a read-through cache for latest-COMBINED lookups.
func (s *Service) WithCache(cache SnapshotCache, ttl time.Duration) *Service {
	s.cache = cache
	s.cacheTTL = ttl
	return s
}

// WithClock replaces the service's clock.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Latest(ctx context.Context, campaignID string, platform domain.Platform) (*domain.PerformanceSnapshot, error) {
	if platform == "" {
		platform = domain.PlatformCombined
	}

	useCache := s.cache != nil && platform == domain.PlatformCombined
	cacheKey := latestCacheKey(campaignID)

	if useCache {
		if snapshot := s.cachedLatest(ctx, cacheKey); snapshot != nil {
			return snapshot, nil
		}
	}

	snapshot, err := s.snapshotRepo.LatestByPlatform(campaignID, platform)
	if err != nil {
		return nil, errors.Wrap(err, "fetching latest snapshot")
	}

	if useCache && snapshot != nil {
		s.storeLatest(ctx, cacheKey, snapshot)
	}

	return snapshot, nil
}

func (s *Service) History(ctx context.Context, campaignID string, hours int) ([]*domain.PerformanceSnapshot, error) {
	if hours <= 0 {
		hours = DefaultHistoryHours
	}

	since := s.now().Add(-time.Duration(hours) * time.Hour)

	snapshots, err := s.snapshotRepo.HistorySince(campaignID, since)
	if err != nil {
		return nil, errors.Wrap(err, "fetching snapshot history")
	}

	return snapshots, nil
}

// Summary combines the latest COMBINED snapshot with trailing 24h totals
// computed over the COMBINED series (per-platform rows would double count).
func (s *Service) Summary(ctx context.Context, campaignID string) (*domain.PerformanceSummary, error) {
	latest, err := s.Latest(ctx, campaignID, domain.PlatformCombined)
	if err != nil {
		return nil, err
	}

	history, err := s.History(ctx, campaignID, DefaultHistoryHours)
	if err != nil {
		return nil, err
	}

	summary := &domain.PerformanceSummary{
		CampaignID:  campaignID,
		Latest:      latest,
		WindowHours: DefaultHistoryHours,
	}

	combinedCount := 0
	roasSum := 0.0
	for _, snapshot := range history {
		if snapshot.Platform != domain.PlatformCombined {
			continue
		}
		combinedCount++
		summary.TotalSpend += snapshot.Spend
		summary.TotalRevenue += snapshot.Revenue
		roasSum += snapshot.ROAS
	}

	if combinedCount > 0 {
		summary.AverageROAS = utils.RoundWithTwoDecimalPlace(roasSum / float64(combinedCount))
	}

	summary.TotalSpend = utils.RoundWithTwoDecimalPlace(summary.TotalSpend)
	summary.TotalRevenue = utils.RoundWithTwoDecimalPlace(summary.TotalRevenue)

	if latest != nil {
		for _, alert := range latest.Alerts {
			if alert.Triggered && alert.AcknowledgedAt == nil {
				summary.ActiveAlerts++
			}
		}
	}

	return summary, nil
}

func (s *Service) AcknowledgeAlert(ctx context.Context, campaignID string, kind domain.AlertKind) error {
	since := s.now().Add(-ackSearchWindow)

	snapshots, err := s.snapshotRepo.HistorySince(campaignID, since)
	if err != nil {
		return errors.Wrap(err, "searching for alert to acknowledge")
	}

	// History is chronological; walk backwards for the most recent match.
	for i := len(snapshots) - 1; i >= 0; i-- {
		snapshot := snapshots[i]

		for j := range snapshot.Alerts {
			alert := &snapshot.Alerts[j]
			if alert.Kind != kind || !alert.Triggered || alert.AcknowledgedAt != nil {
				continue
			}

			now := s.now()
			alert.AcknowledgedAt = &now

			if err := s.snapshotRepo.UpdateAlerts(snapshot.ID, snapshot.Alerts); err != nil {
				return errors.Wrap(err, "persisting alert acknowledgment")
			}

			if s.cache != nil {
				// The cached latest COMBINED copy may now be stale.
				if err := s.cache.Delete(ctx, latestCacheKey(campaignID)); err != nil {
					logrus.WithError(err).Warn("failed to invalidate latest snapshot cache")
				}
			}

			logrus.WithFields(logrus.Fields{
				"campaign_id": campaignID,
				"snapshot_id": snapshot.ID,
				"alert_kind":  kind,
			}).Info("alert acknowledged")

			return nil
		}
	}

	// Nothing to acknowledge: treated as a no-op by design.
	logrus.WithFields(logrus.Fields{
		"campaign_id": campaignID,
		"alert_kind":  kind,
	}).Debug("no unacknowledged alert found to acknowledge")

	return nil
}

func (s *Service) cachedLatest(ctx context.Context, key string) *domain.PerformanceSnapshot {
	payload, err := s.cache.Get(ctx, key)
	if err != nil {
		logrus.WithError(err).Warn("latest snapshot cache read failed")
		return nil
	}
	if payload == nil {
		return nil
	}

	snapshot := &domain.PerformanceSnapshot{}
	if err := json.Unmarshal(payload, snapshot); err != nil {
		logrus.WithError(err).Warn("discarding undecodable cached snapshot")
		return nil
	}

	return snapshot
}

func (s *Service) storeLatest(ctx context.Context, key string, snapshot *domain.PerformanceSnapshot) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		logrus.WithError(err).Warn("failed to encode snapshot for cache")
		return
	}

	if err := s.cache.Set(ctx, key, payload, s.cacheTTL); err != nil {
		logrus.WithError(err).Warn("latest snapshot cache write failed")
	}
}

func latestCacheKey(campaignID string) string {
	return fmt.Sprintf("performance:latest:%s", campaignID)
}
