package result

import (
	"sort"

	"github.com/urbanmobility/trafficsim/assign"
	"github.com/urbanmobility/trafficsim/cluster"
	"github.com/urbanmobility/trafficsim/clustergraph"
	"github.com/urbanmobility/trafficsim/geo"
	"github.com/urbanmobility/trafficsim/roadgraph"
)

// Diagnostics mirrors assign.Diagnostics at the reporting boundary, so
// callers of this package never need to import assign just to read a
// dropped-travel count.
type Diagnostics struct {
	Dropped int
}

// EdgeView is one cluster-graph link's load/capacity snapshot, the Go
// analogue of create_edges_df's per-row fields.
type EdgeView struct {
	Start, End         cluster.ClusterId
	TravelTime         geo.Time
	FreeFlowTravelTime geo.Time
	Capacity           int
	Volume             int
	Path               []roadgraph.NodeId
}

// TrafficSlowdown is the extra time this link costs over its free-flow
// time under current load, the Go analogue of create_edges_df's derived
// traffic_slowdown column.
func (e EdgeView) TrafficSlowdown() geo.Time {
	return geo.FromMinutes(e.TravelTime.Minutes() - e.FreeFlowTravelTime.Minutes())
}

// Summary is the complete reporting projection for one simulation run:
// the mean estimated travel time across all routed travels, a load
// snapshot of every cluster-graph edge, and the count of travels the
// assigner could not route.
type Summary struct {
	MeanTravelTime geo.Time
	Edges          []EdgeView
	Dropped        Diagnostics
}

// Summarize builds a Summary from a finished assignment run. routes must
// be the Route slice AssignRoutes returned; cg is a ClusterGraph carrying
// the final link loads (AssignRoutes does not expose its own graph, so
// cmd/trafficsim passes one rebuilt by replaying the routes); diag is the
// Diagnostics AssignRoutes returned alongside routes.
func Summarize(routes []assign.Route, cg *clustergraph.ClusterGraph, diag assign.Diagnostics) Summary {
	var totalMinutes float64
	for _, r := range routes {
		totalMinutes += r.EstimatedTravelTime.Minutes()
	}

	mean := 0.0
	if len(routes) > 0 {
		mean = totalMinutes / float64(len(routes))
	}

	var edges []EdgeView
	for _, from := range cg.Nodes() {
		for _, e := range cg.Neighbors(from) {
			edges = append(edges, EdgeView{
				Start:              e.From,
				End:                e.To,
				TravelTime:         e.State.TravelTime(),
				FreeFlowTravelTime: e.State.PathData.FreeFlowTravelTime(),
				Capacity:           e.State.PathData.MaxCapacity(),
				Volume:             len(e.State.CurrentVolume),
				Path:               e.State.PathData.Path,
			})
		}
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Start != edges[j].Start {
			return edges[i].Start < edges[j].Start
		}
		return edges[i].End < edges[j].End
	})

	return Summary{
		MeanTravelTime: geo.FromMinutes(mean),
		Edges:          edges,
		Dropped:        Diagnostics{Dropped: diag.Dropped},
	}
}
