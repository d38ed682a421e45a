package domain

// PerformanceSummary is the dashboard aggregate view: the latest COMBINED
// snapshot plus trailing-window totals.
type PerformanceSummary struct {
	CampaignID   string               `json:"campaign_id"`
	Latest       *PerformanceSnapshot `json:"latest"`
	WindowHours  int                  `json:"window_hours"`
	TotalSpend   float64              `json:"total_spend"`
	TotalRevenue float64              `json:"total_revenue"`
	AverageROAS  float64              `json:"average_roas"`
	ActiveAlerts int                  `json:"active_alerts"`
}
