// Package clustergraph builds the coarse cluster-level assignment graph:
// nodes are cluster ids, edges carry aggregated road-path attributes
// (PathData) plus mutable load state (LinkState) whose BPR-derived
// travel time is the edge weight consumed by the assignment engine.
//
// This graph cannot reuse lvlath/core.Graph: its weights are fractional
// minutes, and core.Graph only stores int64 weights (see DESIGN.md).
// ClusterGraph is a small purpose-built graph type in the same spirit —
// mutex-guarded adjacency, deterministic sorted iteration — but owns a
// float64 weight outright instead of rounding it away.
package clustergraph
