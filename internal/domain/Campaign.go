package domain

import (
	"strings"
	"time"
)

// CampaignStatus is the lifecycle state of a campaign, owned by the CRUD layer.
type CampaignStatus string

const (
	CampaignStatusDraft         CampaignStatus = "DRAFT"
	CampaignStatusPendingReview CampaignStatus = "PENDING_REVIEW"
	CampaignStatusActive        CampaignStatus = "ACTIVE"
	CampaignStatusPaused        CampaignStatus = "PAUSED"
	CampaignStatusCompleted     CampaignStatus = "COMPLETED"
	CampaignStatusArchived      CampaignStatus = "ARCHIVED"
)

// Budget holds the campaign spend limits. Only the daily budget drives
// performance generation.
type Budget struct {
	Daily float64 `json:"daily"`
	Total float64 `json:"total,omitempty"`
}

// PlatformConfig is the per-platform campaign configuration. The metrics
// core only consults Enabled; the rest belongs to the campaign CRUD layer.
type PlatformConfig struct {
	Enabled bool   `json:"enabled"`
	AdType  string `json:"ad_type,omitempty"`
}

// Campaign is consumed read-only by the metrics core. Platform keys may be
// stored in any casing by the CRUD layer; EnabledPlatforms normalizes them.
type Campaign struct {
	ID        string                    `json:"id"`
	Name      string                    `json:"name"`
	Status    CampaignStatus            `json:"status"`
	Budget    Budget                    `json:"budget"`
	Platforms map[string]PlatformConfig `json:"platforms"`
	ProductID string                    `json:"product_id"`
	CreatedAt time.Time                 `json:"created_at"`
	UpdatedAt time.Time                 `json:"updated_at"`
}

// EnabledPlatforms returns the campaign's enabled platform keys normalized
// to the uppercase values used by the metrics store. Keys configured with
// enabled=false are left out.
func (c *Campaign) EnabledPlatforms() []Platform {
	platforms := make([]Platform, 0, len(c.Platforms))
	for key, cfg := range c.Platforms {
		if !cfg.Enabled {
			continue
		}
		platforms = append(platforms, NormalizePlatform(key))
	}
	return platforms
}

// NormalizePlatform maps a campaign platform key to its canonical uppercase
// form. Unknown platforms are passed through uppercased rather than
// rejected; they get the default multiplier downstream.
func NormalizePlatform(key string) Platform {
	return Platform(strings.ToUpper(strings.TrimSpace(key)))
}
