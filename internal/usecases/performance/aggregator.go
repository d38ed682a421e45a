package performance

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/adpulse/campaign-metrics-api/infrastructure/repository"
	"github.com/adpulse/campaign-metrics-api/internal/domain"
	"github.com/adpulse/campaign-metrics-api/pkg/utils"
)

// DefaultAggregationWindow bounds how far back the rollup looks for
// per-platform snapshots. One snapshot per platform is expected inside the
// window; if more exist they are all summed (last-N-minutes rollup, not
// de-duplication).
const DefaultAggregationWindow = 30 * time.Minute

// Aggregator combines a campaign's most recent per-platform snapshots into
// one COMBINED snapshot. Prior COMBINED records are never read, so a rollup
// is always derived from first-order data.
type Aggregator struct {
	snapshotRepo repository.PerformanceSnapshotRepository
	window       time.Duration
	now          func() time.Time
}

func NewAggregator(snapshotRepo repository.PerformanceSnapshotRepository, window time.Duration) *Aggregator {
	if window <= 0 {
		window = DefaultAggregationWindow
	}

	return &Aggregator{
		snapshotRepo: snapshotRepo,
		window:       window,
		now:          time.Now,
	}
}

// WithClock replaces the aggregator's clock.
func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.now = now
	return a
}

// Aggregate builds and persists the campaign's COMBINED snapshot for this
// tick. Returns (nil, nil) when no per-platform snapshot exists in the
// window: no rollup is produced from nothing.
func (a *Aggregator) Aggregate(campaign *domain.Campaign, product *domain.Product) (*domain.PerformanceSnapshot, error) {
	now := a.now()

	recent, err := a.snapshotRepo.RecentWindow(campaign.ID, now.Add(-a.window))
	if err != nil {
		return nil, errors.Wrap(err, "reading aggregation window")
	}

	if len(recent) == 0 {
		logrus.WithField("campaign_id", campaign.ID).
			Debug("no platform snapshots in the aggregation window, skipping rollup")
		return nil, nil
	}

	dailyBudget := campaign.Budget.Daily
	if dailyBudget <= 0 {
		dailyBudget = defaultDailyBudget
	}

	price := domain.DefaultProductPrice
	if product != nil && product.Price > 0 {
		price = product.Price
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "generating snapshot ID")
	}

	combined := &domain.PerformanceSnapshot{
		ID:         id,
		CampaignID: campaign.ID,
		Platform:   domain.PlatformCombined,
		Budget:     dailyBudget,
		Timestamp:  now,
		Hour:       now.Hour(),
		DataSource: domain.DataSourceSimulated,
		IsLive:     true,
		CreatedAt:  now,
	}

	for _, snapshot := range recent {
		combined.Spend += snapshot.Spend
		combined.Impressions += snapshot.Impressions
		combined.Clicks += snapshot.Clicks
		combined.Conversions += snapshot.Conversions
		combined.Revenue += snapshot.Revenue
		combined.Reach += snapshot.Reach
		combined.Profit += snapshot.Profit
	}

	combined.Spend = utils.RoundWithTwoDecimalPlace(combined.Spend)
	combined.Conversions = utils.RoundWithOneDecimalPlace(combined.Conversions)
	combined.Revenue = utils.RoundWithTwoDecimalPlace(combined.Revenue)
	combined.Profit = utils.RoundWithTwoDecimalPlace(combined.Profit)

	combined.RecomputeRatios()
	combined.Alerts = EvaluateAlerts(combined, price)

	if err := a.snapshotRepo.Insert(combined); err != nil {
		return nil, errors.Wrap(err, "persisting combined snapshot")
	}

	return combined, nil
}
