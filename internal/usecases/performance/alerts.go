package performance

import (
	"fmt"

	"github.com/adpulse/campaign-metrics-api/internal/domain"
)

// EvaluateAlerts runs every alert rule against a snapshot and returns the
// alerts that fired. Rules are independent: several may fire on the same
// tick. The function is pure; identical inputs produce identical alerts.
func EvaluateAlerts(snapshot *domain.PerformanceSnapshot, productPrice float64) []domain.Alert {
	var alerts []domain.Alert

	if snapshot.ROAS < 2.0 {
		alerts = append(alerts, domain.Alert{
			Kind:      domain.AlertROASDrop,
			Severity:  domain.SeverityHigh,
			Message:   fmt.Sprintf("ROAS dropped to %.2f, below the 2.0 target", snapshot.ROAS),
			Triggered: true,
		})
	}

	if snapshot.CTR < 1.0 {
		alerts = append(alerts, domain.Alert{
			Kind:      domain.AlertLowCTR,
			Severity:  domain.SeverityMedium,
			Message:   fmt.Sprintf("CTR at %.2f%%, below the 1.0%% threshold", snapshot.CTR),
			Triggered: true,
		})
	}

	if snapshot.BudgetUtilization >= 90 {
		alerts = append(alerts, domain.Alert{
			Kind:      domain.AlertBudgetExhausted,
			Severity:  domain.SeverityMedium,
			Message:   fmt.Sprintf("budget %.1f%% utilized", snapshot.BudgetUtilization),
			Triggered: true,
		})
	}

	if snapshot.CPA > productPrice {
		alerts = append(alerts, domain.Alert{
			Kind:      domain.AlertHighCPA,
			Severity:  domain.SeverityHigh,
			Message:   fmt.Sprintf("CPA of %.2f exceeds the product price of %.2f", snapshot.CPA, productPrice),
			Triggered: true,
		})
	}

	// Conversion rate is only meaningful with enough traffic behind it.
	if snapshot.ConversionRate < 1.0 && snapshot.Clicks >= 50 {
		alerts = append(alerts, domain.Alert{
			Kind:      domain.AlertConversionDrop,
			Severity:  domain.SeverityMedium,
			Message:   fmt.Sprintf("conversion rate at %.2f%% across %d clicks", snapshot.ConversionRate, snapshot.Clicks),
			Triggered: true,
		})
	}

	if snapshot.Profit < 0 {
		alerts = append(alerts, domain.Alert{
			Kind:      domain.AlertProfitNegative,
			Severity:  domain.SeverityCritical,
			Message:   fmt.Sprintf("campaign is losing money: profit at %.2f", snapshot.Profit),
			Triggered: true,
		})
	}

	return alerts
}
