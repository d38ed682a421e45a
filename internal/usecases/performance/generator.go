package performance

import (
	"math"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/adpulse/campaign-metrics-api/internal/domain"
	"github.com/adpulse/campaign-metrics-api/pkg/utils"
)

// costOfGoodsRate is the assumed share of revenue spent producing the
// goods sold, used when deriving profit from simulated conversions.
const costOfGoodsRate = 0.30

// defaultDailyBudget substitutes a missing or non-positive campaign budget,
// mirroring the fallback product price. Logged when it kicks in.
const defaultDailyBudget = 100.0

// Generator synthesizes one performance snapshot per campaign and platform
// per tick. The clock and the uniform sampler are injectable so tests can
// pin exact outputs.
type Generator struct {
	now     func() time.Time
	uniform func(min, max float64) float64
}

// NewGenerator creates a generator backed by the wall clock and a locally
// seeded uniform sampler.
func NewGenerator() *Generator {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	return &Generator{
		now: time.Now,
		uniform: func(min, max float64) float64 {
			return min + rng.Float64()*(max-min)
		},
	}
}

// WithClock replaces the generator's clock.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// WithUniform replaces the generator's uniform sampler.
func (g *Generator) WithUniform(uniform func(min, max float64) float64) *Generator {
	g.uniform = uniform
	return g
}

// Generate builds the next snapshot for a campaign on one platform,
// evolving each counter from the previous snapshot so consecutive values
// stay smooth. previous may be nil on the first tick. product may be nil
// when the campaign's product could not be resolved; the documented
// fallback price keeps generation going, at the cost of meaningless
// revenue figures.
func (g *Generator) Generate(
	campaign *domain.Campaign,
	product *domain.Product,
	platform domain.Platform,
	previous *domain.PerformanceSnapshot,
) (*domain.PerformanceSnapshot, error) {
	now := g.now()

	dailyBudget := campaign.Budget.Daily
	if dailyBudget <= 0 {
		logrus.WithField("campaign_id", campaign.ID).
			Warn("campaign has no usable daily budget, falling back to default")
		dailyBudget = defaultDailyBudget
	}

	price := domain.DefaultProductPrice
	if product != nil && product.Price > 0 {
		price = product.Price
	} else {
		logrus.WithFields(logrus.Fields{
			"campaign_id": campaign.ID,
			"product_id":  campaign.ProductID,
		}).Warn("campaign product could not be resolved, falling back to default price")
	}

	var prevSpend, prevImpressions, prevClicks, prevConversions float64
	if previous != nil {
		prevSpend = previous.Spend
		prevImpressions = float64(previous.Impressions)
		prevClicks = float64(previous.Clicks)
		prevConversions = previous.Conversions
	}

	platformFactor := PlatformMultiplier(platform)

	baseHourlySpend := dailyBudget / 24 *
		HourMultiplier(now.Hour()) *
		DayMultiplier(now.Weekday())

	targetSpend := baseHourlySpend * g.uniform(0.8, 1.2)
	spend := utils.RoundWithTwoDecimalPlace(Evolve(prevSpend, targetSpend, MaxChangeSpend))

	targetImpressions := spend * g.uniform(800, 1200) * platformFactor
	impressions := math.Round(Evolve(prevImpressions, targetImpressions, MaxChangeImpressions))

	targetClicks := impressions * g.uniform(0.01, 0.05) * platformFactor
	clicks := math.Round(Evolve(prevClicks, targetClicks, MaxChangeClicks))

	targetConversions := clicks * g.uniform(0.02, 0.08) * platformFactor
	conversions := utils.RoundWithOneDecimalPlace(Evolve(prevConversions, targetConversions, MaxChangeConversions))

	revenue := utils.RoundWithTwoDecimalPlace(conversions * price)
	reach := math.Round(impressions * g.uniform(0.7, 1.0))
	profit := utils.RoundWithTwoDecimalPlace(revenue - spend - conversions*price*costOfGoodsRate)

	id, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "generating snapshot ID")
	}

	snapshot := &domain.PerformanceSnapshot{
		ID:          id,
		CampaignID:  campaign.ID,
		Platform:    platform,
		Spend:       spend,
		Budget:      dailyBudget,
		Impressions: int64(impressions),
		Clicks:      int64(clicks),
		Conversions: conversions,
		Revenue:     revenue,
		Reach:       int64(reach),
		Profit:      profit,
		Timestamp:   now,
		Hour:        now.Hour(),
		DataSource:  domain.DataSourceSimulated,
		IsLive:      true,
		CreatedAt:   now,
	}

	snapshot.RecomputeRatios()
	snapshot.Alerts = EvaluateAlerts(snapshot, price)

	return snapshot, nil
}
