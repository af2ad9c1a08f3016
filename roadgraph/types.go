package roadgraph

import (
	"errors"

	"github.com/urbanmobility/trafficsim/geo"
)

// ErrInvalidInput is returned for malformed road-graph construction input:
// a non-positive length, a non-positive speed rating, or a reference to an
// undeclared node. Per spec §7 this is the one fatal error kind at the
// roadgraph boundary.
var ErrInvalidInput = errors.New("roadgraph: invalid input")

// ErrNodeNotFound is returned when a NodeId does not exist in the graph.
var ErrNodeNotFound = errors.New("roadgraph: node not found")

// ErrNoPath is returned by ShortestPath when no route connects the two
// nodes; this is an expected, non-fatal condition (spec §7 Unreachable).
var ErrNoPath = errors.New("roadgraph: no path between nodes")

// NodeId identifies a road-graph node.
type NodeId string

// RoadNode is a road-graph node: a junction or endpoint at a fixed
// coordinate.
type RoadNode struct {
	ID          NodeId
	Coordinates geo.Coordinates
}

// RoadEdgeInput is the raw, pre-validation form of a directed road segment
// as supplied by the ingestion layer.
type RoadEdgeInput struct {
	From, To NodeId
	Length   geo.Distance // meters, must be > 0
	SpeedKPH float64      // must be > 0
	Lanes    int          // >= 1; 0 or negative defaults to 1
}

// RoadEdge is a validated road segment as returned by EdgesAlong.
type RoadEdge struct {
	From, To NodeId
	Length   geo.Distance
	Speed    geo.Speed
	Lanes    int
}

// RoadGraph is the external collaborator contract this module's core
// consumes: nearest-node lookup, shortest-path routing, and read access to
// node coordinates and edge attributes along a path.
type RoadGraph interface {
	// NearestNode returns the node whose coordinates are closest to c.
	NearestNode(c geo.Coordinates) (NodeId, error)
	// ShortestPath returns the minimum-length sequence of nodes from
	// "from" to "to", weighted by edge length. Returns ErrNoPath if the
	// nodes are not connected.
	ShortestPath(from, to NodeId) ([]NodeId, error)
	// EdgesAlong resolves the edge attributes for each consecutive pair in
	// path, in order.
	EdgesAlong(path []NodeId) ([]RoadEdge, error)
	// NodeCoordinates returns the coordinates of a node.
	NodeCoordinates(id NodeId) (geo.Coordinates, error)
}
