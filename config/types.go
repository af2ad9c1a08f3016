package config

import (
	"errors"

	"github.com/urbanmobility/trafficsim/geo"
)

// ErrInvalidInput is returned for malformed configuration: an unknown
// distribution kind, or an out-of-range numeric field.
var ErrInvalidInput = errors.New("config: invalid input")

// DistributionKind identifies how an Epicentre spreads its population
// around its centre. NORMAL is the only kind spec.md defines; unknown
// values are rejected rather than silently defaulted.
type DistributionKind int

const (
	Normal DistributionKind = iota
)

func (k DistributionKind) String() string {
	switch k {
	case Normal:
		return "NORMAL"
	default:
		return "UNKNOWN"
	}
}

// ParseDistributionKind decodes the wire string form of a DistributionKind.
func ParseDistributionKind(s string) (DistributionKind, error) {
	switch s {
	case "NORMAL":
		return Normal, nil
	default:
		return 0, ErrInvalidInput
	}
}

// Epicentre is one population source: a labeled location with a
// population count spread over a radius under a chosen distribution.
type Epicentre struct {
	Label           string
	Latitude        float64
	Longitude       float64
	PopulationCount int
	Radius          geo.Distance
	Distribution    DistributionKind
}

// PopulationConfig is the top-level population-generation configuration
// (spec §6): a set of epicentres plus the fraction of each resulting
// cluster's population that makes a trip.
type PopulationConfig struct {
	Epicentres        []Epicentre
	TravelCoefficient float64
}
