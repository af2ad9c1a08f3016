package h3cell

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/uber/h3-go/v4"

	"github.com/urbanmobility/trafficsim/geo"
)

// ErrInvalidCell indicates a ClusterId string does not parse as a valid H3
// cell index.
var ErrInvalidCell = errors.New("h3cell: invalid H3 cell id")

// CellId is the external, string-encoded form of a stable 64-bit H3 cell
// index. Every cross-package reference to a cluster uses this type rather
// than h3.Cell directly, per the "represented as a string in external
// interfaces" requirement.
type CellId string

// PointToCell buckets a coordinate into the H3 cell at the given
// resolution.
func PointToCell(c geo.Coordinates, resolution int) CellId {
	cell := h3.LatLngToCell(h3.LatLng{Lat: c.Latitude, Lng: c.Longitude}, resolution)
	return CellId(cell.String())
}

// Centre returns the geometric centre of an H3 cell.
func Centre(id CellId) (geo.Coordinates, error) {
	cell, err := parse(id)
	if err != nil {
		return geo.Coordinates{}, err
	}
	ll := cell.LatLng()
	return geo.Coordinates{Latitude: ll.Lat, Longitude: ll.Lng}, nil
}

// KRing returns every cell within graph distance k of id, id itself
// included.
func KRing(id CellId, k int) ([]CellId, error) {
	cell, err := parse(id)
	if err != nil {
		return nil, err
	}
	disk, err := h3.GridDisk(cell, k)
	if err != nil {
		return nil, fmt.Errorf("h3cell: grid disk of %s at k=%d: %w", id, k, err)
	}
	out := make([]CellId, 0, len(disk))
	for _, c := range disk {
		out = append(out, CellId(c.String()))
	}
	return out, nil
}

// parse decodes the hex-encoded string form an H3 cell's String() method
// produces back into an h3.Cell, validating it along the way.
func parse(id CellId) (h3.Cell, error) {
	raw, err := strconv.ParseUint(string(id), 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCell, id)
	}
	cell := h3.Cell(raw)
	if !h3.IsValidCell(cell) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCell, id)
	}
	return cell, nil
}
