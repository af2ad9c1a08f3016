// Package assign implements the incremental batched route assignment
// engine (spec §4.5): an iterative, load-sensitive all-pairs
// shortest-path routing procedure over a clustergraph.ClusterGraph that
// approximates user equilibrium without guaranteeing convergence.
//
// Grounded on original_source/traffic.py's TravelRouteAssigner /
// IncrementalBatchRouteAssigner.
package assign
