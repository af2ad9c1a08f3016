package assign

import (
	"context"
	"sort"

	"github.com/urbanmobility/trafficsim/atlas"
	"github.com/urbanmobility/trafficsim/cluster"
	"github.com/urbanmobility/trafficsim/clustergraph"
	"github.com/urbanmobility/trafficsim/demand"
	"github.com/urbanmobility/trafficsim/geo"
	"github.com/urbanmobility/trafficsim/roadgraph"
)

// IncrementalBatched implements RouteAssigner as spec §4.5 describes it:
// the travel demand is split into fixed-size batches, processed in
// input order across a configurable number of iterations; after each
// batch, link loads and BPR travel times are refreshed before the next
// batch is routed, so later batches see the congestion earlier batches
// produced.
type IncrementalBatched struct {
	H3Resolution    int
	BatchSize       int
	IterationsCount int
	Parallel        bool
}

// NewIncrementalBatched builds an IncrementalBatched assigner. batchSize
// and iterationsCount must both be at least 1.
func NewIncrementalBatched(h3Resolution, batchSize, iterationsCount int) (*IncrementalBatched, error) {
	if batchSize < 1 || iterationsCount < 1 {
		return nil, ErrInvalidInput
	}
	return &IncrementalBatched{
		H3Resolution:    h3Resolution,
		BatchSize:       batchSize,
		IterationsCount: iterationsCount,
	}, nil
}

// AssignRoutes builds the cluster graph once, then runs IterationsCount
// passes over BatchSize-sized, input-order batches of travels,
// reassigning each travel's links and refreshing edge weights after
// every batch.
func (a *IncrementalBatched) AssignRoutes(ctx context.Context, travels []demand.Travel, clusters []cluster.Cluster, rg roadgraph.RoadGraph) ([]Route, Diagnostics, error) {
	var diag Diagnostics

	if len(travels) == 0 {
		return nil, diag, nil
	}

	atl, _, err := atlas.Build(rg, clusters, a.H3Resolution)
	if err != nil {
		return nil, diag, err
	}

	cg, err := clustergraph.Build(atl, rg, clusters, a.H3Resolution)
	if err != nil {
		return nil, diag, err
	}

	currentEdges := make(map[demand.TravelId][]*clustergraph.Edge)
	routed := make(map[demand.TravelId]bool)

	groups := batches(travels, a.BatchSize)

	for iter := 0; iter < a.IterationsCount; iter++ {
		for _, batch := range groups {
			select {
			case <-ctx.Done():
				return nil, diag, ctx.Err()
			default:
			}

			shortestPaths, err := allPairsShortestPaths(ctx, cg, a.Parallel)
			if err != nil {
				return nil, diag, err
			}

			for _, travel := range batch {
				if prior, ok := currentEdges[travel.ID]; ok {
					unassign(prior, travel.ID)
				}

				edges, ok := routeEdges(shortestPaths, travel.Start.CellId, travel.End.CellId)
				if !ok {
					delete(currentEdges, travel.ID)
					continue
				}

				assign(edges, travel.ID)
				currentEdges[travel.ID] = edges
				routed[travel.ID] = true
			}

			cg.RefreshWeights()
		}
	}

	routes := make([]Route, 0, len(travels))
	for _, travel := range travels {
		if !routed[travel.ID] {
			diag.Dropped++
			continue
		}
		routes = append(routes, buildRoute(travel, currentEdges[travel.ID]))
	}

	sort.Slice(routes, func(i, j int) bool { return routes[i].Travel.ID < routes[j].Travel.ID })

	return routes, diag, nil
}

func assign(edges []*clustergraph.Edge, id demand.TravelId) {
	for _, e := range edges {
		e.State.Assign(clustergraph.TravelId(id))
	}
}

func unassign(edges []*clustergraph.Edge, id demand.TravelId) {
	for _, e := range edges {
		e.State.Unassign(clustergraph.TravelId(id))
	}
}

// buildRoute turns a resolved edge sequence into a Route. An empty edges
// slice is boundary scenario 1 (spec §8): a travel from a cluster to
// itself produces a single-node route with zero travel time, not an
// unroutable travel — original_source/traffic.py silently drops these
// via its `if len(current_route) > 0` guard, but spec.md requires they
// be emitted.
func buildRoute(travel demand.Travel, edges []*clustergraph.Edge) Route {
	if len(edges) == 0 {
		return Route{
			Travel:              travel,
			EstimatedTravelTime: geo.FromSeconds(0),
			Nodes:               []cluster.ClusterId{travel.Start.CellId},
		}
	}

	nodes := make([]cluster.ClusterId, 0, len(edges)+1)
	nodes = append(nodes, edges[0].From)
	var total float64
	for _, e := range edges {
		nodes = append(nodes, e.To)
		total += e.State.TravelTime().Minutes()
	}

	return Route{
		Travel:              travel,
		EstimatedTravelTime: geo.FromMinutes(total),
		Nodes:               nodes,
	}
}
