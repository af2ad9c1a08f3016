package cluster

import (
	"errors"

	"github.com/urbanmobility/trafficsim/geo"
	"github.com/urbanmobility/trafficsim/h3cell"
)

// ErrInvalidInput is returned for malformed constructor arguments: an
// unknown CentreStrategy string, a negative H3 resolution, or an empty
// point set.
var ErrInvalidInput = errors.New("cluster: invalid input")

// ClusterId identifies a Cluster by its H3 cell id.
type ClusterId = h3cell.CellId

// CentreStrategy selects how a Cluster's representative centre is derived
// from its member points. It is a closed, string-coded tagged set: unknown
// strings decode to ErrInvalidInput rather than a zero value.
type CentreStrategy int

const (
	// Mean sets the centre to the arithmetic mean of the cluster's points.
	// Under this strategy the centre may fall in a neighboring H3 cell.
	Mean CentreStrategy = iota
	// HexagonCenter sets the centre to the H3 cell's own geometric centre.
	HexagonCenter
)

// String renders the strategy using the wire-format names from spec §3.
func (s CentreStrategy) String() string {
	switch s {
	case Mean:
		return "MEAN"
	case HexagonCenter:
		return "HEXAGON_CENTER"
	default:
		return "UNKNOWN"
	}
}

// ParseCentreStrategy decodes the wire-format name of a CentreStrategy.
// Unknown values return ErrInvalidInput.
func ParseCentreStrategy(s string) (CentreStrategy, error) {
	switch s {
	case "MEAN":
		return Mean, nil
	case "HEXAGON_CENTER":
		return HexagonCenter, nil
	default:
		return 0, ErrInvalidInput
	}
}

// Cluster is an immutable group of population points bucketed into one H3
// cell, together with a representative centre.
//
// Invariant: for the HexagonCenter strategy, CellId == H3(Centre,
// resolution). Under Mean, Centre may fall in a neighboring cell — this is
// expected and is exactly what Consolidate corrects for.
type Cluster struct {
	CellId ClusterId
	Centre geo.Coordinates
	Points []geo.Coordinates
}
