// Package cluster groups raw population points into hexagonal cells and
// consolidates the result against a road network, producing the Cluster
// set the rest of the assignment pipeline keys all of its state by.
//
// Clusterize buckets points by H3 cell and assigns each bucket a centre per
// a CentreStrategy. Consolidate then discards clusters whose centre does
// not snap back to a road node inside the same cell, folding their points
// into the cluster that owns that node's cell when that cell is in the set
// (otherwise the points are dropped) — see Consolidate's doc comment for
// the exact merge semantics.
package cluster
