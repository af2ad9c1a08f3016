package config_test

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/urbanmobility/trafficsim/config"
)

const sampleJSON = `
{
  "epicentres": [
    { "label": "downtown", "latitude": 54.46, "longitude": 17.02,
      "population_count": 100, "radius": 500, "distribution_kind": "NORMAL" }
  ],
  "travel_coefficient": 0.3
}`

func TestDecode_ParsesWireFormat(t *testing.T) {
	cfg, err := config.Decode(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(cfg.Epicentres) != 1 {
		t.Fatalf("expected 1 epicentre, got %d", len(cfg.Epicentres))
	}
	e := cfg.Epicentres[0]
	if e.Label != "downtown" {
		t.Errorf("Label = %q, want downtown", e.Label)
	}
	if e.Distribution != config.Normal {
		t.Errorf("Distribution = %v, want Normal", e.Distribution)
	}
	if got := e.Radius.Meters(); got != 500 {
		t.Errorf("Radius = %v meters, want 500", got)
	}
	if cfg.TravelCoefficient != 0.3 {
		t.Errorf("TravelCoefficient = %v, want 0.3", cfg.TravelCoefficient)
	}
}

func TestDecode_RejectsUnknownDistributionKind(t *testing.T) {
	bad := strings.Replace(sampleJSON, "NORMAL", "POISSON", 1)
	_, err := config.Decode(strings.NewReader(bad))
	if !errors.Is(err, config.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDecode_RejectsNonPositiveRadius(t *testing.T) {
	bad := strings.Replace(sampleJSON, `"radius": 500`, `"radius": 0`, 1)
	_, err := config.Decode(strings.NewReader(bad))
	if !errors.Is(err, config.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestParseDistributionKind_RoundTrip(t *testing.T) {
	got, err := config.ParseDistributionKind(config.Normal.String())
	if err != nil {
		t.Fatalf("ParseDistributionKind: %v", err)
	}
	if got != config.Normal {
		t.Errorf("round trip: got %v, want Normal", got)
	}
}

func TestEpicentre_SampleProducesRequestedCount(t *testing.T) {
	cfg, err := config.Decode(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	rng := rand.New(rand.NewSource(42))
	points, err := cfg.Epicentres[0].Sample(rng)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if len(points) != 100 {
		t.Errorf("sampled %d points, want 100", len(points))
	}
}
