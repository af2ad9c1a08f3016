// Package atlas computes the shortest road-graph path between every pair
// of neighboring clusters (H3 k-ring radius 1), deduplicating by symmetry
// and rejecting degenerate paths, per spec §4.2.
//
// Unreachable neighbor pairs and degenerate (<3 node) paths are expected,
// non-fatal outcomes: they are counted in the returned Diagnostics and
// simply absent from the Atlas, never surfaced as an error.
package atlas
