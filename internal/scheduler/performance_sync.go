package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/adpulse/campaign-metrics-api/infrastructure/repository"
	"github.com/adpulse/campaign-metrics-api/internal/config"
	"github.com/adpulse/campaign-metrics-api/internal/domain"
	"github.com/adpulse/campaign-metrics-api/internal/metrics"
	"github.com/adpulse/campaign-metrics-api/internal/usecases/performance"
)

// PerformanceSyncConfig drives the metric generation loop.
type PerformanceSyncConfig struct {
	IntervalMinutes   int
	MaxConcurrentJobs int
	SyncEnabled       bool
}

// PerformanceSyncService owns the periodic metric generation cycle: every
// interval it enumerates active and draft campaigns, generates one snapshot
// per enabled platform and rolls them up into a COMBINED snapshot. The
// service is an explicit two-state machine (stopped/running) so tests can
// run independent instances.
type PerformanceSyncService struct {
	scheduler    *gocron.Scheduler
	config       PerformanceSyncConfig
	campaignRepo repository.CampaignRepository
	productRepo  repository.ProductRepository
	snapshotRepo repository.PerformanceSnapshotRepository
	generator    *performance.Generator
	aggregator   *performance.Aggregator
	metrics      *metrics.Metrics

	mu                  sync.Mutex
	running             bool
	scheduled           bool
	tickRunning         bool
	lastTickStartedAt   time.Time
	lastTickCompletedAt time.Time
}

func NewPerformanceSyncService(
	campaignRepo repository.CampaignRepository,
	productRepo repository.ProductRepository,
	snapshotRepo repository.PerformanceSnapshotRepository,
	generator *performance.Generator,
	aggregator *performance.Aggregator,
	syncMetrics *metrics.Metrics,
	appConfig *config.Config,
) *PerformanceSyncService {
	syncConfig := PerformanceSyncConfig{
		IntervalMinutes:   appConfig.PerformanceSync.IntervalMinutes,
		MaxConcurrentJobs: appConfig.PerformanceSync.MaxConcurrentJobs,
		SyncEnabled:       appConfig.PerformanceSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"interval_minutes":    syncConfig.IntervalMinutes,
		"max_concurrent_jobs": syncConfig.MaxConcurrentJobs,
		"sync_enabled":        syncConfig.SyncEnabled,
	}).Info("performance sync scheduler configuration loaded")

	return &PerformanceSyncService{
		scheduler:    gocron.NewScheduler(time.Local),
		config:       syncConfig,
		campaignRepo: campaignRepo,
		productRepo:  productRepo,
		snapshotRepo: snapshotRepo,
		generator:    generator,
		aggregator:   aggregator,
		metrics:      syncMetrics,
	}
}

// Start moves the service to running: one tick fires immediately, then one
// per interval. Starting a running service is a no-op. Stop, or cancelling
// ctx, prevents further ticks but does not interrupt a tick in progress.
func (s *PerformanceSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("performance sync disabled by configuration")
		return nil
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		logrus.Info("performance sync scheduler already running, ignoring start")
		return nil
	}
	s.running = true
	scheduled := s.scheduled
	s.mu.Unlock()

	logrus.WithField("interval_minutes", s.config.IntervalMinutes).
		Info("starting performance sync scheduler")

	// The recurring job is registered exactly once. Stop only pauses the
	// scheduler, so a later Start resumes the same job instead of stacking
	// a second one.
	if !scheduled {
		_, err := s.scheduler.
			Every(s.config.IntervalMinutes).
			Minutes().
			StartImmediately().
			Do(func() {
				s.runTick()
			})
		if err != nil {
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
			return fmt.Errorf("scheduling performance sync: %w", err)
		}
		s.mu.Lock()
		s.scheduled = true
		s.mu.Unlock()
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop halts the recurring schedule. Safe to call on a stopped service.
func (s *PerformanceSyncService) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	logrus.Info("stopping performance sync scheduler")
	s.scheduler.Stop()
}

// runTick executes one generation cycle. A tick that outlives the interval
// is protected from timer re-entry by the in-flight flag.
func (s *PerformanceSyncService) runTick() {
	s.mu.Lock()
	if s.tickRunning {
		s.mu.Unlock()
		logrus.Info("performance sync tick already in progress, skipping")
		return
	}
	s.tickRunning = true
	s.lastTickStartedAt = time.Now()
	s.mu.Unlock()

	startTime := time.Now()

	defer func() {
		s.mu.Lock()
		s.tickRunning = false
		s.lastTickCompletedAt = time.Now()
		s.mu.Unlock()
	}()

	logrus.Info("starting performance sync tick")

	campaigns, err := s.campaignRepo.ListByStatus([]domain.CampaignStatus{
		domain.CampaignStatusActive,
		domain.CampaignStatusDraft,
	})
	if err != nil {
		logrus.WithError(err).Error("failed to list campaigns for performance sync")
		if s.metrics != nil {
			s.metrics.ObserveTick("error", time.Since(startTime), 0)
		}
		return
	}

	if len(campaigns) == 0 {
		logrus.Info("no active or draft campaigns, nothing to generate")
		if s.metrics != nil {
			s.metrics.ObserveTick("empty", time.Since(startTime), 0)
		}
		return
	}

	s.processCampaigns(campaigns)

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration":  duration.String(),
		"campaigns": len(campaigns),
	}).Info("performance sync tick completed")

	if s.metrics != nil {
		s.metrics.ObserveTick("ok", duration, len(campaigns))
	}
}

// processCampaigns fans campaigns out across a bounded worker pool.
// Campaigns are independent; one campaign's failure never aborts the tick
// for the others.
func (s *PerformanceSyncService) processCampaigns(campaigns []*domain.Campaign) {
	maxJobs := s.config.MaxConcurrentJobs
	if maxJobs < 1 {
		maxJobs = 1
	}

	semaphore := make(chan struct{}, maxJobs)
	var wg sync.WaitGroup

	for _, campaign := range campaigns {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(c *domain.Campaign) {
			defer func() {
				if r := recover(); r != nil {
					logrus.WithFields(logrus.Fields{
						"campaign_id": c.ID,
						"panic":       r,
					}).Error("panic while generating campaign metrics")
					if s.metrics != nil {
						s.metrics.CampaignFailures.Inc()
					}
				}
				<-semaphore
				wg.Done()
			}()

			s.processCampaign(c)
		}(campaign)
	}

	wg.Wait()
}

// processCampaign generates one snapshot per enabled platform and then, and
// only then, the campaign's COMBINED rollup (the rollup reads what this
// tick just wrote).
func (s *PerformanceSyncService) processCampaign(campaign *domain.Campaign) {
	logger := logrus.WithFields(logrus.Fields{
		"campaign_id":   campaign.ID,
		"campaign_name": campaign.Name,
	})

	platforms := campaign.EnabledPlatforms()
	if len(platforms) == 0 {
		logger.Warn("campaign has no platforms configured, skipping")
		return
	}

	product, err := s.productRepo.GetByID(campaign.ProductID)
	if err != nil {
		// Generation continues on the documented fallback price.
		logger.WithError(err).Warn("failed to resolve campaign product")
		product = nil
	}

	generated := 0
	for _, platform := range platforms {
		if platform == domain.PlatformCombined {
			// COMBINED is reserved for the rollup, never a campaign key.
			continue
		}

		previous, err := s.snapshotRepo.LatestByPlatform(campaign.ID, platform)
		if err != nil {
			logger.WithError(err).WithField("platform", platform).
				Error("failed to load previous snapshot")
			continue
		}

		snapshot, err := s.generator.Generate(campaign, product, platform, previous)
		if err != nil {
			logger.WithError(err).WithField("platform", platform).
				Error("failed to generate snapshot")
			continue
		}

		if err := s.snapshotRepo.Insert(snapshot); err != nil {
			logger.WithError(err).WithField("platform", platform).
				Error("failed to persist snapshot")
			continue
		}

		generated++
		s.observeSnapshot(snapshot)
	}

	if generated == 0 {
		logger.Warn("no platform snapshots generated, skipping rollup")
		if s.metrics != nil {
			s.metrics.CampaignFailures.Inc()
		}
		return
	}

	combined, err := s.aggregator.Aggregate(campaign, product)
	if err != nil {
		logger.WithError(err).Error("failed to aggregate combined snapshot")
		if s.metrics != nil {
			s.metrics.CampaignFailures.Inc()
		}
		return
	}

	if combined != nil {
		s.observeSnapshot(combined)
	}

	logger.WithField("platforms", generated).Debug("campaign metrics generated")
}

func (s *PerformanceSyncService) observeSnapshot(snapshot *domain.PerformanceSnapshot) {
	if s.metrics == nil {
		return
	}

	s.metrics.SnapshotsGenerated.WithLabelValues(string(snapshot.Platform)).Inc()
	for _, alert := range snapshot.Alerts {
		s.metrics.AlertsTriggered.WithLabelValues(string(alert.Kind), string(alert.Severity)).Inc()
	}
}

// TriggerManualSync runs one tick in the background, outside the schedule.
func (s *PerformanceSyncService) TriggerManualSync() {
	s.mu.Lock()
	if s.tickRunning {
		s.mu.Unlock()
		logrus.Info("performance sync tick already in progress, ignoring manual trigger")
		return
	}
	s.mu.Unlock()

	logrus.Info("starting manual performance sync tick")
	go s.runTick()
}

// GetStatus reports the scheduler state for the cron status endpoint.
func (s *PerformanceSyncService) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"running":                s.running,
		"tick_in_progress":       s.tickRunning,
		"interval_minutes":       s.config.IntervalMinutes,
		"max_concurrent_jobs":    s.config.MaxConcurrentJobs,
		"last_tick_started_at":   s.lastTickStartedAt,
		"last_tick_completed_at": s.lastTickCompletedAt,
	}
}
