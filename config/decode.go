package config

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/urbanmobility/trafficsim/geo"
)

// wireEpicentre is the raw JSON shape of an Epicentre (spec §6): a
// distribution_kind string rather than the decoded enum, and a radius in
// bare meters rather than a geo.Distance.
type wireEpicentre struct {
	Label            string  `json:"label"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	PopulationCount  int     `json:"population_count"`
	Radius           float64 `json:"radius"`
	DistributionKind string  `json:"distribution_kind"`
}

type wireConfig struct {
	Epicentres        []wireEpicentre `json:"epicentres"`
	TravelCoefficient float64         `json:"travel_coefficient"`
}

// Decode parses a PopulationConfig from JSON, per spec §6's schema
// (grounded on original_source/population.py's
// PopulationGeneratorConfig.from_json_file / Epicentre.from_json_record).
func Decode(r io.Reader) (PopulationConfig, error) {
	var raw wireConfig
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return PopulationConfig{}, fmt.Errorf("config: decode: %w", err)
	}

	if raw.TravelCoefficient < 0 {
		return PopulationConfig{}, fmt.Errorf("%w: negative travel_coefficient", ErrInvalidInput)
	}

	epicentres := make([]Epicentre, 0, len(raw.Epicentres))
	for _, e := range raw.Epicentres {
		if e.PopulationCount < 0 {
			return PopulationConfig{}, fmt.Errorf("%w: epicentre %q has negative population_count", ErrInvalidInput, e.Label)
		}
		if e.Radius <= 0 {
			return PopulationConfig{}, fmt.Errorf("%w: epicentre %q has non-positive radius", ErrInvalidInput, e.Label)
		}
		kind, err := ParseDistributionKind(e.DistributionKind)
		if err != nil {
			return PopulationConfig{}, fmt.Errorf("%w: epicentre %q distribution_kind %q", ErrInvalidInput, e.Label, e.DistributionKind)
		}
		epicentres = append(epicentres, Epicentre{
			Label:           e.Label,
			Latitude:        e.Latitude,
			Longitude:       e.Longitude,
			PopulationCount: e.PopulationCount,
			Radius:          geo.FromMeters(e.Radius),
			Distribution:    kind,
		})
	}

	return PopulationConfig{Epicentres: epicentres, TravelCoefficient: raw.TravelCoefficient}, nil
}
