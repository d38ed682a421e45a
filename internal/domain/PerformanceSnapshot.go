package domain

import "time"

// Platform identifies where a snapshot's metrics were generated. COMBINED is
// the synthetic cross-platform rollup.
type Platform string

const (
	PlatformMeta     Platform = "META"
	PlatformGoogle   Platform = "GOOGLE"
	PlatformTikTok   Platform = "TIKTOK"
	PlatformLinkedIn Platform = "LINKEDIN"
	PlatformYouTube  Platform = "YOUTUBE"
	PlatformCombined Platform = "COMBINED"
)

// DataSource marks how a snapshot was produced.
type DataSource string

const (
	DataSourceSimulated DataSource = "SIMULATED"
	DataSourceLive      DataSource = "LIVE"
)

// AlertKind identifies the rule that raised an alert.
type AlertKind string

const (
	AlertROASDrop        AlertKind = "ROAS_DROP"
	AlertLowCTR          AlertKind = "LOW_CTR"
	AlertBudgetExhausted AlertKind = "BUDGET_EXHAUSTED"
	AlertHighCPA         AlertKind = "HIGH_CPA"
	AlertConversionDrop  AlertKind = "CONVERSION_DROP"
	AlertProfitNegative  AlertKind = "PROFIT_NEGATIVE"
)

type AlertSeverity string

const (
	SeverityMedium   AlertSeverity = "MEDIUM"
	SeverityHigh     AlertSeverity = "HIGH"
	SeverityCritical AlertSeverity = "CRITICAL"
)

// Alert is one threshold breach attached to a snapshot. AcknowledgedAt is
// the only field on a persisted snapshot that may change after creation.
type Alert struct {
	Kind           AlertKind     `json:"kind"`
	Severity       AlertSeverity `json:"severity"`
	Message        string        `json:"message"`
	Triggered      bool          `json:"triggered"`
	AcknowledgedAt *time.Time    `json:"acknowledged_at,omitempty"`
}

// PerformanceSnapshot is one performance record per campaign, platform and
// timestamp. All fields are always present; derived ratios are recomputed
// from the raw counters before persistence, never trusted from input.
type PerformanceSnapshot struct {
	ID         string   `json:"id"`
	CampaignID string   `json:"campaign_id"`
	Platform   Platform `json:"platform"`

	// Raw counters. Conversions may be fractional: simulated data models
	// them as a continuous rate sampled per tick, not a discrete count.
	Spend       float64 `json:"spend"`
	Budget      float64 `json:"budget"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	Conversions float64 `json:"conversions"`
	Revenue     float64 `json:"revenue"`
	Reach       int64   `json:"reach"`
	Profit      float64 `json:"profit"`

	// Derived ratios, see DeriveRatios.
	CTR               float64 `json:"ctr"`
	CPC               float64 `json:"cpc"`
	CPM               float64 `json:"cpm"`
	ROAS              float64 `json:"roas"`
	ConversionRate    float64 `json:"conversion_rate"`
	CPA               float64 `json:"cpa"`
	BudgetUtilization float64 `json:"budget_utilization"`
	ProfitMargin      float64 `json:"profit_margin"`

	Alerts []Alert `json:"alerts"`

	Timestamp  time.Time  `json:"timestamp"`
	Hour       int        `json:"hour"`
	DataSource DataSource `json:"data_source"`
	IsLive     bool       `json:"is_live"`
	CreatedAt  time.Time  `json:"created_at"`
}

// RecomputeRatios overwrites the snapshot's derived ratios from its own
// counters so they are consistent at the moment of persistence.
func (s *PerformanceSnapshot) RecomputeRatios() {
	ratios := DeriveRatios(RatioInputs{
		Impressions: s.Impressions,
		Clicks:      s.Clicks,
		Spend:       s.Spend,
		Revenue:     s.Revenue,
		Conversions: s.Conversions,
		Budget:      s.Budget,
	})

	s.CTR = ratios.CTR
	s.CPC = ratios.CPC
	s.CPM = ratios.CPM
	s.ROAS = ratios.ROAS
	s.ConversionRate = ratios.ConversionRate
	s.CPA = ratios.CPA
	s.BudgetUtilization = ratios.BudgetUtilization
	s.ProfitMargin = ratios.ProfitMargin
}
