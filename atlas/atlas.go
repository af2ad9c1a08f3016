package atlas

import (
	"errors"
	"fmt"
	"sort"

	"github.com/urbanmobility/trafficsim/cluster"
	"github.com/urbanmobility/trafficsim/h3cell"
	"github.com/urbanmobility/trafficsim/roadgraph"
)

// ErrInvalidInput is returned for malformed construction arguments.
var ErrInvalidInput = errors.New("atlas: invalid input")

// minPathNodes is the minimum node count a road path must have to be
// accepted; shorter paths indicate a degenerate common-terminal snap.
const minPathNodes = 3

// Atlas is a symmetric mapping (clusterA, clusterB) -> road-node path.
// atlas[A][B] and atlas[B][A] hold the same node sequence in opposite
// order whenever both exist.
type Atlas struct {
	paths map[cluster.ClusterId]map[cluster.ClusterId][]roadgraph.NodeId
}

// Path returns the stored path from "from" to "to", if any.
func (a *Atlas) Path(from, to cluster.ClusterId) ([]roadgraph.NodeId, bool) {
	byTo, ok := a.paths[from]
	if !ok {
		return nil, false
	}
	p, ok := byTo[to]
	return p, ok
}

// Pairs iterates every (from, to, path) entry the Atlas holds, deterministically
// ordered by (from, to) to keep downstream graph-building stable.
func (a *Atlas) Pairs(fn func(from, to cluster.ClusterId, path []roadgraph.NodeId)) {
	froms := sortedKeys(a.paths)
	for _, from := range froms {
		tos := sortedClusterKeys(a.paths[from])
		for _, to := range tos {
			fn(from, to, a.paths[from][to])
		}
	}
}

func (a *Atlas) set(from, to cluster.ClusterId, path []roadgraph.NodeId) {
	if a.paths[from] == nil {
		a.paths[from] = make(map[cluster.ClusterId][]roadgraph.NodeId)
	}
	a.paths[from][to] = path
}

func (a *Atlas) has(from, to cluster.ClusterId) bool {
	_, ok := a.Path(from, to)
	return ok
}

// Diagnostics counts non-fatal drops encountered while building the atlas.
type Diagnostics struct {
	DegeneratePaths int
	UnreachablePairs int
}

// Build computes the path atlas over every pair of neighboring clusters.
func Build(rg roadgraph.RoadGraph, clusters []cluster.Cluster, resolution int) (*Atlas, Diagnostics, error) {
	if rg == nil {
		return nil, Diagnostics{}, fmt.Errorf("%w: nil road graph", ErrInvalidInput)
	}

	byID := make(map[cluster.ClusterId]cluster.Cluster, len(clusters))
	centroidNode := make(map[cluster.ClusterId]roadgraph.NodeId, len(clusters))
	for _, c := range clusters {
		byID[c.CellId] = c
		node, err := rg.NearestNode(c.Centre)
		if err != nil {
			return nil, Diagnostics{}, fmt.Errorf("atlas: nearest node for cluster %s: %w", c.CellId, err)
		}
		centroidNode[c.CellId] = node
	}

	a := &Atlas{paths: make(map[cluster.ClusterId]map[cluster.ClusterId][]roadgraph.NodeId)}
	var diag Diagnostics

	for _, c := range clusters {
		ring, err := h3cell.KRing(c.CellId, 1)
		if err != nil {
			return nil, Diagnostics{}, fmt.Errorf("atlas: k-ring of %s: %w", c.CellId, err)
		}

		for _, neighbourID := range ring {
			if neighbourID == c.CellId {
				continue
			}
			neighbour, ok := byID[neighbourID]
			if !ok {
				continue
			}
			if a.has(c.CellId, neighbour.CellId) {
				continue
			}

			path, err := rg.ShortestPath(centroidNode[c.CellId], centroidNode[neighbour.CellId])
			if errors.Is(err, roadgraph.ErrNoPath) {
				diag.UnreachablePairs++
				continue
			}
			if err != nil {
				return nil, Diagnostics{}, fmt.Errorf("atlas: shortest path %s->%s: %w", c.CellId, neighbour.CellId, err)
			}

			if len(path) < minPathNodes {
				diag.DegeneratePaths++
				continue
			}

			a.set(c.CellId, neighbour.CellId, path)
			a.set(neighbour.CellId, c.CellId, reversed(path))
		}
	}

	return a, diag, nil
}

func reversed(path []roadgraph.NodeId) []roadgraph.NodeId {
	out := make([]roadgraph.NodeId, len(path))
	for i, n := range path {
		out[len(path)-1-i] = n
	}
	return out
}

func sortedKeys(m map[cluster.ClusterId]map[cluster.ClusterId][]roadgraph.NodeId) []cluster.ClusterId {
	out := make([]cluster.ClusterId, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sortClusterIds(out)
	return out
}

func sortedClusterKeys(m map[cluster.ClusterId][]roadgraph.NodeId) []cluster.ClusterId {
	out := make([]cluster.ClusterId, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sortClusterIds(out)
	return out
}

func sortClusterIds(ids []cluster.ClusterId) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
