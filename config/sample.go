package config

import (
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/urbanmobility/trafficsim/geo"
)

// Sample draws PopulationCount coordinates scattered around the
// epicentre's centre under its configured distribution kind, per
// original_source/population.py's generate_data_points: independent
// normal draws on each axis, standard deviation equal to the epicentre's
// radius expressed in degrees.
func (e Epicentre) Sample(rng *rand.Rand) ([]geo.Coordinates, error) {
	switch e.Distribution {
	case Normal:
		return e.sampleNormal(rng), nil
	default:
		return nil, ErrInvalidInput
	}
}

func (e Epicentre) sampleNormal(rng *rand.Rand) []geo.Coordinates {
	sigma := e.Radius.Degrees()
	lon := distuv.Normal{Mu: e.Longitude, Sigma: sigma, Src: rng}
	lat := distuv.Normal{Mu: e.Latitude, Sigma: sigma, Src: rng}

	points := make([]geo.Coordinates, e.PopulationCount)
	for i := range points {
		points[i] = geo.Coordinates{Latitude: lat.Rand(), Longitude: lon.Rand()}
	}
	return points
}
