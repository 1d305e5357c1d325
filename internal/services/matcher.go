package services

import (
	"math"

	"appstore-pricing-service/internal/models"
)

// MatchPricePoint selects the allowed price point closest to the
// desired price. The comparison is strict, so when two candidates are
// equally close the first one in input order wins; results are
// deterministic for a given candidate order.
func MatchPricePoint(desired float64, candidates []models.PricePoint) (models.PricePoint, error) {
	if len(candidates) == 0 {
		return models.PricePoint{}, ErrNoPricePoints
	}

	best := candidates[0]
	bestDiff := math.Abs(best.CustomerPrice - desired)
	for _, candidate := range candidates[1:] {
		diff := math.Abs(candidate.CustomerPrice - desired)
		if diff < bestDiff {
			best = candidate
			bestDiff = diff
		}
	}
	return best, nil
}
