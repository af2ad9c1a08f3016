package clustergraph

import (
	"fmt"
	"sort"
	"sync"

	"github.com/urbanmobility/trafficsim/atlas"
	"github.com/urbanmobility/trafficsim/cluster"
	"github.com/urbanmobility/trafficsim/geo"
	"github.com/urbanmobility/trafficsim/h3cell"
	"github.com/urbanmobility/trafficsim/roadgraph"
)

// Edge is a directed cluster-graph edge: a lifted road path, its load
// state, and the current weight the assignment engine routes against.
type Edge struct {
	From, To cluster.ClusterId
	State    *LinkState
	Weight   float64 // minutes, refreshed by RefreshWeights
}

// ClusterGraph is the coarse assignment graph: nodes are cluster ids,
// edges carry a LinkState whose BPR travel time becomes the edge weight.
//
// Unlike lvlath/core.Graph, weights here are float64 minutes rather than
// int64 — BPR costs are fractional and the assignment engine's whole
// purpose is to react to small load-driven shifts in them, so rounding
// would wash out exactly the signal the engine needs.
type ClusterGraph struct {
	mu        sync.RWMutex
	adjacency map[cluster.ClusterId]map[cluster.ClusterId]*Edge
}

func newClusterGraph() *ClusterGraph {
	return &ClusterGraph{adjacency: make(map[cluster.ClusterId]map[cluster.ClusterId]*Edge)}
}

func (g *ClusterGraph) addEdge(from, to cluster.ClusterId, state *LinkState) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.adjacency[from] == nil {
		g.adjacency[from] = make(map[cluster.ClusterId]*Edge)
	}
	g.adjacency[from][to] = &Edge{From: from, To: to, State: state, Weight: state.TravelTime().Minutes()}
}

// Nodes returns every cluster id touched by at least one edge, sorted for
// deterministic iteration (matching the teacher's own Edges()-by-ID
// convention in core/methods_edges.go).
func (g *ClusterGraph) Nodes() []cluster.ClusterId {
	g.mu.RLock()
	defer g.mu.RUnlock()

	seen := make(map[cluster.ClusterId]struct{})
	for from, tos := range g.adjacency {
		seen[from] = struct{}{}
		for to := range tos {
			seen[to] = struct{}{}
		}
	}
	out := make([]cluster.ClusterId, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Neighbors returns the outgoing edges from a cluster, sorted by
// destination id so Dijkstra tie-breaks stay deterministic (spec §4.5
// "Determinism").
func (g *ClusterGraph) Neighbors(from cluster.ClusterId) []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	tos := g.adjacency[from]
	out := make([]*Edge, 0, len(tos))
	for _, e := range tos {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].To < out[j].To })
	return out
}

// Edge returns the edge from->to, if any.
func (g *ClusterGraph) Edge(from, to cluster.ClusterId) (*Edge, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.adjacency[from][to]
	return e, ok
}

// RefreshWeights recomputes every edge's Weight from its current
// LinkState, per spec §4.5 step 3.iii: after a batch is assigned, weights
// must reflect the BPR cost of the new volumes, not free-flow time.
func (g *ClusterGraph) RefreshWeights() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, tos := range g.adjacency {
		for _, e := range tos {
			e.Weight = e.State.TravelTime().Minutes()
		}
	}
}

// Build lifts every atlas path into a directed cluster-graph edge,
// aggregating road attributes along the way (spec §4.3, grounded on
// original_source/pathing.py's create_cluster_graph + get_path_data).
// Both A->B and B->A are present in the atlas already (see atlas.Build),
// so each direction becomes its own edge with its own LinkState.
func Build(atl *atlas.Atlas, rg roadgraph.RoadGraph, clusters []cluster.Cluster, resolution int) (*ClusterGraph, error) {
	valid := make(map[cluster.ClusterId]struct{}, len(clusters))
	for _, c := range clusters {
		valid[c.CellId] = struct{}{}
	}

	g := newClusterGraph()
	var buildErr error
	atl.Pairs(func(from, to cluster.ClusterId, path []roadgraph.NodeId) {
		if buildErr != nil {
			return
		}
		pd, err := pathData(rg, path, valid, resolution)
		if err != nil {
			buildErr = fmt.Errorf("clustergraph: path data for %s->%s: %w", from, to, err)
			return
		}
		g.addEdge(from, to, &LinkState{PathData: pd})
	})
	if buildErr != nil {
		return nil, buildErr
	}
	return g, nil
}

// pathData aggregates the road attributes along path into a PathData,
// per spec §4.3.
func pathData(rg roadgraph.RoadGraph, path []roadgraph.NodeId, valid map[cluster.ClusterId]struct{}, resolution int) (PathData, error) {
	edges, err := rg.EdgesAlong(path)
	if err != nil {
		return PathData{}, err
	}
	if len(edges) == 0 {
		return PathData{}, fmt.Errorf("%w: empty road path", ErrInvalidInput)
	}

	var totalLength geo.Distance
	minSpeed := edges[0].Speed
	minLanes := edges[0].Lanes
	for _, e := range edges {
		totalLength = totalLength.Add(e.Length)
		if e.Speed.KPH() < minSpeed.KPH() {
			minSpeed = e.Speed
		}
		if e.Lanes < minLanes {
			minLanes = e.Lanes
		}
	}

	crossed, err := distinctValidClusters(rg, path, valid, resolution)
	if err != nil {
		return PathData{}, err
	}
	if len(crossed) == 0 {
		return PathData{}, fmt.Errorf("%w: path crosses no tracked cluster", ErrInvalidInput)
	}

	return PathData{
		StartCluster:         crossed[0],
		EndCluster:           crossed[len(crossed)-1],
		MinMaxSpeed:          minSpeed,
		MinLaneCount:         minLanes,
		Length:               totalLength,
		CrossesOtherClusters: len(crossed) == 2,
		Path:                 path,
	}, nil
}

// distinctValidClusters projects each road node in path to its H3 cell at
// resolution, keeps only cells present in valid, and compresses
// consecutive duplicates — mirroring original_source/pathing.py's
// clusters_crossed/valid_clusters_crossed computation.
func distinctValidClusters(rg roadgraph.RoadGraph, path []roadgraph.NodeId, valid map[cluster.ClusterId]struct{}, resolution int) ([]cluster.ClusterId, error) {
	out := make([]cluster.ClusterId, 0, len(path))
	for _, node := range path {
		coords, err := rg.NodeCoordinates(node)
		if err != nil {
			return nil, err
		}
		id := h3cell.PointToCell(coords, resolution)
		if _, ok := valid[id]; !ok {
			continue
		}
		if n := len(out); n > 0 && out[n-1] == id {
			continue
		}
		out = append(out, id)
	}
	return out, nil
}
