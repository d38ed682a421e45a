package performance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvolve(t *testing.T) {
	tests := []struct {
		name     string
		previous float64
		target   float64
		maxFrac  float64
		expected float64
	}{
		{
			name:     "bootstrap from zero returns the target unchanged",
			previous: 0,
			target:   42.5,
			maxFrac:  0.10,
			expected: 42.5,
		},
		{
			name:     "upward step is capped at the max change fraction",
			previous: 100,
			target:   200,
			maxFrac:  0.10,
			expected: 110,
		},
		{
			name:     "downward step is capped at the max change fraction",
			previous: 100,
			target:   10,
			maxFrac:  0.10,
			expected: 90,
		},
		{
			name:     "target within the band is reached exactly",
			previous: 100,
			target:   105,
			maxFrac:  0.10,
			expected: 105,
		},
		{
			name:     "equal previous and target is a no-op",
			previous: 80,
			target:   80,
			maxFrac:  0.25,
			expected: 80,
		},
		{
			name:     "wider fraction allows a bigger step",
			previous: 100,
			target:   200,
			maxFrac:  0.25,
			expected: 125,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Evolve(tt.previous, tt.target, tt.maxFrac)
			assert.InDelta(t, tt.expected, result, 1e-9)
		})
	}
}

func TestEvolve_NeverNegative(t *testing.T) {
	targets := []float64{-50, -1, 0}

	for _, target := range targets {
		result := Evolve(0.5, target, 2.0)
		assert.GreaterOrEqual(t, result, 0.0, "target %v", target)
	}
}

func TestEvolve_StepAlwaysWithinBand(t *testing.T) {
	previous := 37.5

	for _, target := range []float64{0, 10, 37.5, 100, 1000} {
		for _, frac := range []float64{MaxChangeSpend, MaxChangeImpressions, MaxChangeClicks, MaxChangeConversions} {
			result := Evolve(previous, target, frac)
			assert.LessOrEqual(t, math.Abs(result-previous), previous*frac+1e-9,
				"target %v frac %v", target, frac)
		}
	}
}
