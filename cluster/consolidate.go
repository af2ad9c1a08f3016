package cluster

import (
	"github.com/urbanmobility/trafficsim/geo"
	"github.com/urbanmobility/trafficsim/h3cell"
	"github.com/urbanmobility/trafficsim/roadgraph"
)

// Consolidate discards clusters whose centre does not snap to a road node
// inside the same H3 cell, and merges the discarded clusters' points into
// the cluster that owns that node's cell, when that cell is in the input
// set; otherwise the points are dropped with the cluster.
//
// For each cluster: snap its centre to the nearest road node, and compute
// target = H3(node coordinates, resolution). If target names a cluster in
// the input set, this cluster's points are folded into that target
// cluster's group; the target cluster's own original centre is kept
// unchanged. If target is not among the input clusters, this cluster is
// dropped entirely.
//
// The merge sums points over each target's subcluster group — the set of
// input clusters (this one included, if it IS the target) that snapped to
// that target — not over the full input cluster list. This resolves the
// shadowed-variable ambiguity in the original Python implementation (spec
// §9 Open Question 1) in favor of the grouping-consistent reading.
func Consolidate(clusters []Cluster, rg roadgraph.RoadGraph, resolution int) ([]Cluster, error) {
	byID := make(map[ClusterId]Cluster, len(clusters))
	for _, c := range clusters {
		byID[c.CellId] = c
	}

	groups := make(map[ClusterId][]Cluster)
	for _, c := range clusters {
		node, err := rg.NearestNode(c.Centre)
		if err != nil {
			return nil, err
		}
		nodeCoords, err := rg.NodeCoordinates(node)
		if err != nil {
			return nil, err
		}
		target := h3cell.PointToCell(nodeCoords, resolution)
		if _, ok := byID[target]; !ok {
			continue // unsnapped: drop per spec §4.1
		}
		groups[target] = append(groups[target], c)
	}

	result := make([]Cluster, 0, len(groups))
	for target, group := range groups {
		result = append(result, Cluster{
			CellId: target,
			Centre: byID[target].Centre,
			Points: flattenPoints(group),
		})
	}

	return result, nil
}

// flattenPoints concatenates every cluster's points in the group, in group
// order, preserving the input multiset.
func flattenPoints(group []Cluster) []geo.Coordinates {
	n := 0
	for _, c := range group {
		n += len(c.Points)
	}
	out := make([]geo.Coordinates, 0, n)
	for _, c := range group {
		out = append(out, c.Points...)
	}
	return out
}
