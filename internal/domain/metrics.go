package domain

import (
	"math"

	"github.com/adpulse/campaign-metrics-api/pkg/utils"
)

// RatioInputs are the raw counters the derived ratios are computed from.
type RatioInputs struct {
	Impressions int64
	Clicks      int64
	Spend       float64
	Revenue     float64
	Conversions float64
	Budget      float64
}

// RatioSet holds the derived performance ratios. CTR, ConversionRate,
// BudgetUtilization and ProfitMargin are percentages.
type RatioSet struct {
	CTR               float64
	CPC               float64
	CPM               float64
	ROAS              float64
	ConversionRate    float64
	CPA               float64
	BudgetUtilization float64
	ProfitMargin      float64
}

// DeriveRatios computes the dependent ratios from raw counters. Every
// branch is total: a zero denominator yields 0, never an error or NaN.
// Budget utilization is capped at 100 no matter how far spend overshoots.
func DeriveRatios(in RatioInputs) RatioSet {
	var out RatioSet

	if in.Impressions > 0 {
		out.CTR = float64(in.Clicks) / float64(in.Impressions) * 100
		out.CPM = in.Spend / float64(in.Impressions) * 1000
	}

	if in.Clicks > 0 {
		out.CPC = in.Spend / float64(in.Clicks)
		out.ConversionRate = in.Conversions / float64(in.Clicks) * 100
	}

	if in.Spend > 0 {
		out.ROAS = in.Revenue / in.Spend
	}

	if in.Conversions > 0 {
		out.CPA = in.Spend / in.Conversions
	}

	if in.Budget > 0 {
		out.BudgetUtilization = math.Min(100, in.Spend/in.Budget*100)
	}

	if in.Revenue > 0 {
		out.ProfitMargin = (in.Revenue - in.Spend) / in.Revenue * 100
	}

	out.CTR = utils.RoundWithTwoDecimalPlace(out.CTR)
	out.CPC = utils.RoundWithTwoDecimalPlace(out.CPC)
	out.CPM = utils.RoundWithTwoDecimalPlace(out.CPM)
	out.ROAS = utils.RoundWithTwoDecimalPlace(out.ROAS)
	out.ConversionRate = utils.RoundWithTwoDecimalPlace(out.ConversionRate)
	out.CPA = utils.RoundWithTwoDecimalPlace(out.CPA)
	out.BudgetUtilization = utils.RoundWithTwoDecimalPlace(out.BudgetUtilization)
	out.ProfitMargin = utils.RoundWithTwoDecimalPlace(out.ProfitMargin)

	return out
}
