package demand

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/urbanmobility/trafficsim/cluster"
)

// Generate emits round(|cluster.Points| * coefficient) travels per input
// cluster, with start fixed to that cluster and end sampled with
// probability proportional to each candidate cluster's population, per
// spec §4.6 (grounded on original_source/travel.py's TravelGenerator).
//
// Weighted destination sampling uses gonum's distuv.Categorical rather
// than a hand-rolled cumulative-weight walk, the direct analogue of the
// original's random.choices(weights=...).
func Generate(clusters []cluster.Cluster, coefficient float64, ids *IDSequence, rng *rand.Rand) ([]Travel, error) {
	if len(clusters) == 0 {
		return nil, ErrInvalidInput
	}
	if coefficient < 0 {
		return nil, ErrInvalidInput
	}

	weights := make([]float64, len(clusters))
	for i, c := range clusters {
		weights[i] = float64(len(c.Points))
	}
	destination := distuv.NewCategorical(weights, rng)

	var travels []Travel
	for _, origin := range clusters {
		count := int(math.Round(float64(len(origin.Points)) * coefficient))
		for i := 0; i < count; i++ {
			dest := clusters[int(destination.Rand())]
			travels = append(travels, Travel{ID: ids.Next(), Start: origin, End: dest})
		}
	}

	return travels, nil
}
