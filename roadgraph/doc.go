// Package roadgraph defines the RoadGraph contract this module consumes as
// an external collaborator (spec §3, §6) and ships one in-memory
// implementation of it, built directly on top of
// github.com/katalvlaran/lvlath/core and .../dijkstra — the same pairing
// the lvlath examples use for city-route shortest paths.
//
// RoadGraph node coordinates are (lon, lat) per the external contract;
// edges carry length in meters, a speed rating in km/h, and a lane count.
// Edge weight for shortest-path purposes is length in meters, rounded to
// the nearest integer meter: lvlath's core.Graph only stores int64
// weights, and a one-meter rounding error is immaterial next to the BPR
// congestion model the cluster graph layers on top (clustergraph package),
// which is where this module's real floating-point precision requirements
// live.
package roadgraph
