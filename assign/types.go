package assign

import (
	"context"
	"errors"

	"github.com/urbanmobility/trafficsim/cluster"
	"github.com/urbanmobility/trafficsim/demand"
	"github.com/urbanmobility/trafficsim/geo"
	"github.com/urbanmobility/trafficsim/roadgraph"
)

// ErrInvalidInput is returned for malformed assigner configuration.
var ErrInvalidInput = errors.New("assign: invalid input")

// ErrEmptyDemand is available for callers that want to distinguish a
// zero-travel input explicitly; AssignRoutes itself never returns it — an
// empty travel slice yields an empty route slice, not an error.
var ErrEmptyDemand = errors.New("assign: no travels to route")

// Route is the assignment output for one travel: its estimated travel
// time and the sequence of clusters it passes through.
type Route struct {
	Travel              demand.Travel
	EstimatedTravelTime geo.Time
	Nodes               []cluster.ClusterId
}

// Diagnostics counts non-fatal outcomes encountered while assigning.
type Diagnostics struct {
	// Dropped counts travels whose OD pair has no path on the
	// ClusterGraph (spec §7 "Unreachable" / boundary scenario 5); these
	// travels are silently dropped from the Route output, never an error.
	Dropped int
}

// RouteAssigner is the pluggable assignment-strategy contract (spec §9:
// dynamic dispatch over assignment strategies, modeled as an interface
// with a single operation — the same shape lvlath/flow uses for its
// pluggable max-flow algorithms). IncrementalBatched is the only
// implementation this module specifies.
type RouteAssigner interface {
	AssignRoutes(ctx context.Context, travels []demand.Travel, clusters []cluster.Cluster, rg roadgraph.RoadGraph) ([]Route, Diagnostics, error)
}
