package performance

// Per-metric max-change fractions for the bounded random walk. Wider bands
// for the noisier, smaller-magnitude counters. Scenario assertions depend
// on these exact values; they are not tunable at call time.
const (
	MaxChangeSpend       = 0.10
	MaxChangeImpressions = 0.15
	MaxChangeClicks      = 0.20
	MaxChangeConversions = 0.25
)

// Evolve moves a counter from its previous observation toward a new target,
// capping the step at previous*maxChangeFraction so consecutive snapshots
// stay smooth. A zero previous value is the bootstrap case: the target is
// returned unchanged. The result never goes negative.
func Evolve(previous, target, maxChangeFraction float64) float64 {
	if previous == 0 {
		return target
	}

	maxChange := previous * maxChangeFraction

	delta := target - previous
	if delta > maxChange {
		delta = maxChange
	} else if delta < -maxChange {
		delta = -maxChange
	}

	next := previous + delta
	if next < 0 {
		return 0
	}

	return next
}
