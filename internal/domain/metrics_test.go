package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveRatios(t *testing.T) {
	tests := []struct {
		name     string
		inputs   RatioInputs
		expected RatioSet
	}{
		{
			name: "typical healthy campaign",
			inputs: RatioInputs{
				Impressions: 10000,
				Clicks:      250,
				Spend:       50.0,
				Revenue:     200.0,
				Conversions: 5.0,
				Budget:      100.0,
			},
			expected: RatioSet{
				CTR:               2.5,
				CPC:               0.2,
				CPM:               5.0,
				ROAS:              4.0,
				ConversionRate:    2.0,
				CPA:               10.0,
				BudgetUtilization: 50.0,
				ProfitMargin:      75.0,
			},
		},
		{
			name:     "all zero counters yield all zero ratios",
			inputs:   RatioInputs{},
			expected: RatioSet{},
		},
		{
			name: "zero impressions leave CTR and CPM at zero",
			inputs: RatioInputs{
				Clicks:      10,
				Spend:       20.0,
				Revenue:     40.0,
				Conversions: 2.0,
				Budget:      100.0,
			},
			expected: RatioSet{
				CPC:               2.0,
				ROAS:              2.0,
				ConversionRate:    20.0,
				CPA:               10.0,
				BudgetUtilization: 20.0,
				ProfitMargin:      50.0,
			},
		},
		{
			name: "zero clicks leave CPC and conversion rate at zero",
			inputs: RatioInputs{
				Impressions: 1000,
				Spend:       10.0,
				Budget:      100.0,
			},
			expected: RatioSet{
				CPM:               10.0,
				BudgetUtilization: 10.0,
			},
		},
		{
			name: "overspend is capped at 100 percent utilization",
			inputs: RatioInputs{
				Spend:  250.0,
				Budget: 100.0,
			},
			expected: RatioSet{
				BudgetUtilization: 100.0,
			},
		},
		{
			name: "spend above revenue makes the profit margin negative",
			inputs: RatioInputs{
				Spend:   80.0,
				Revenue: 40.0,
			},
			expected: RatioSet{
				ROAS:         0.5,
				ProfitMargin: -100.0,
			},
		},
		{
			name: "ratios are rounded to two decimal places",
			inputs: RatioInputs{
				Impressions: 3000,
				Clicks:      100,
				Spend:       10.0,
				Revenue:     10.0,
				Conversions: 3.0,
				Budget:      30.0,
			},
			expected: RatioSet{
				CTR:               3.33,
				CPC:               0.1,
				CPM:               3.33,
				ROAS:              1.0,
				ConversionRate:    3.0,
				CPA:               3.33,
				BudgetUtilization: 33.33,
				ProfitMargin:      0.0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DeriveRatios(tt.inputs)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestPerformanceSnapshot_RecomputeRatios(t *testing.T) {
	snapshot := &PerformanceSnapshot{
		Spend:       50.0,
		Budget:      100.0,
		Impressions: 10000,
		Clicks:      250,
		Conversions: 5.0,
		Revenue:     200.0,

		// Stale values that must be overwritten from the counters.
		CTR:  99.0,
		ROAS: 99.0,
	}

	snapshot.RecomputeRatios()

	assert.Equal(t, 2.5, snapshot.CTR)
	assert.Equal(t, 0.2, snapshot.CPC)
	assert.Equal(t, 5.0, snapshot.CPM)
	assert.Equal(t, 4.0, snapshot.ROAS)
	assert.Equal(t, 2.0, snapshot.ConversionRate)
	assert.Equal(t, 10.0, snapshot.CPA)
	assert.Equal(t, 50.0, snapshot.BudgetUtilization)
	assert.Equal(t, 75.0, snapshot.ProfitMargin)
}
