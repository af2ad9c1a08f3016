// Package demand generates travel (origin-destination) demand over a set
// of clusters, weighted by each cluster's population, per spec §4.6 and
// grounded on original_source/travel.py's TravelGenerator.
package demand
