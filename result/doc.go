// Package result projects assignment output into the reporting shape
// spec §6 describes as "Engine outputs": per-edge load/capacity figures
// and the run's mean travel time, with plotting and mapping left out
// (spec.md Non-goals) since no visualization library appears anywhere
// in the example pack.
//
// Grounded on original_source/demo_utils.py's create_edges_df.
package result
