package cluster

import (
	"sort"

	"github.com/urbanmobility/trafficsim/geo"
	"github.com/urbanmobility/trafficsim/h3cell"
)

// Clusterize buckets points into H3 cells at the given resolution and
// computes one Cluster per non-empty bucket. The returned slice is sorted
// by CellId for deterministic downstream iteration; callers should key by
// CellId rather than rely on slice position.
func Clusterize(points []geo.Coordinates, resolution int, strategy CentreStrategy) ([]Cluster, error) {
	if len(points) == 0 {
		return nil, ErrInvalidInput
	}
	if resolution < 0 {
		return nil, ErrInvalidInput
	}

	byCell := make(map[ClusterId][]geo.Coordinates)
	for _, p := range points {
		id := h3cell.PointToCell(p, resolution)
		byCell[id] = append(byCell[id], p)
	}

	clusters := make([]Cluster, 0, len(byCell))
	for id, pts := range byCell {
		centre, err := centreFor(id, pts, strategy)
		if err != nil {
			return nil, err
		}
		clusters = append(clusters, Cluster{CellId: id, Centre: centre, Points: pts})
	}

	sort.Slice(clusters, func(i, j int) bool { return clusters[i].CellId < clusters[j].CellId })

	return clusters, nil
}

// centreFor computes a single cluster's centre per strategy.
func centreFor(id ClusterId, points []geo.Coordinates, strategy CentreStrategy) (geo.Coordinates, error) {
	switch strategy {
	case Mean:
		var latSum, lonSum float64
		for _, p := range points {
			latSum += p.Latitude
			lonSum += p.Longitude
		}
		n := float64(len(points))
		return geo.Coordinates{Latitude: latSum / n, Longitude: lonSum / n}, nil
	case HexagonCenter:
		return h3cell.Centre(id)
	default:
		return geo.Coordinates{}, ErrInvalidInput
	}
}
