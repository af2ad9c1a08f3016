package roadgraph

import (
	"fmt"
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/dijkstra"

	"github.com/urbanmobility/trafficsim/geo"
)

// Graph is the in-memory RoadGraph implementation. It wraps an
// lvlath/core.Graph (directed, weighted, multi-edge) for topology and
// shortest-path queries, an rtreego spatial index for nearest-node lookup,
// and a side table of edge attributes (speed, lanes) that core.Edge has no
// room for.
//
// Edge weights on the underlying core.Graph are edge length in meters,
// rounded to the nearest integer — see package doc for why this rounding
// is harmless here.
type Graph struct {
	g         *core.Graph
	index     *rtreego.Rtree
	nodes     map[NodeId]geo.Coordinates
	attrsByID map[string]edgeAttrs // core.Edge.ID -> (speed, lanes)
}

// edgeAttrs holds the per-edge data lvlath/core has no field for.
type edgeAttrs struct {
	speedKPH float64
	lanes    int
}

// spatialNode adapts a RoadNode to rtreego.Spatial as a tiny rectangle
// (1e-9 on each side) anchored at its coordinates.
type spatialNode struct {
	id NodeId
	pt rtreego.Point
}

func (s spatialNode) Bounds() *rtreego.Rect {
	rect, err := rtreego.NewRect(s.pt, []float64{1e-9, 1e-9})
	if err != nil {
		// Degenerate rectangles are only rejected for non-positive side
		// lengths; 1e-9 is always valid, so this cannot occur.
		panic(fmt.Sprintf("roadgraph: building spatial index: %v", err))
	}
	return rect
}

// New builds a Graph from raw nodes and edges, validating every edge
// per spec §7 (ErrInvalidInput is fatal and returned immediately).
func New(nodes []RoadNode, edges []RoadEdgeInput) (*Graph, error) {
	g := core.NewGraph(core.WithDirected(true), core.WithWeighted(), core.WithMultiEdges())

	rg := &Graph{
		g:         g,
		index:     rtreego.NewTree(2, 25, 50),
		nodes:     make(map[NodeId]geo.Coordinates, len(nodes)),
		attrsByID: make(map[string]edgeAttrs, len(edges)),
	}

	for _, n := range nodes {
		rg.nodes[n.ID] = n.Coordinates
		rg.index.Insert(spatialNode{id: n.ID, pt: rtreego.Point{n.Coordinates.Longitude, n.Coordinates.Latitude}})
	}

	for _, e := range edges {
		if e.Length.Meters() <= 0 {
			return nil, fmt.Errorf("%w: edge %s->%s has non-positive length", ErrInvalidInput, e.From, e.To)
		}
		if e.SpeedKPH <= 0 {
			return nil, fmt.Errorf("%w: edge %s->%s has non-positive speed", ErrInvalidInput, e.From, e.To)
		}
		if _, ok := rg.nodes[e.From]; !ok {
			return nil, fmt.Errorf("%w: edge references undeclared node %s", ErrInvalidInput, e.From)
		}
		if _, ok := rg.nodes[e.To]; !ok {
			return nil, fmt.Errorf("%w: edge references undeclared node %s", ErrInvalidInput, e.To)
		}

		lanes := e.Lanes
		if lanes < 1 {
			lanes = 1
		}

		weight := int64(math.Round(e.Length.Meters()))
		eid, err := g.AddEdge(string(e.From), string(e.To), weight, core.WithEdgeDirected(true))
		if err != nil {
			return nil, fmt.Errorf("roadgraph: AddEdge(%s,%s): %w", e.From, e.To, err)
		}
		rg.attrsByID[eid] = edgeAttrs{speedKPH: e.SpeedKPH, lanes: lanes}
	}

	return rg, nil
}

// NearestNode returns the node closest to c by straight-line distance.
func (rg *Graph) NearestNode(c geo.Coordinates) (NodeId, error) {
	nearest := rg.index.NearestNeighbor(rtreego.Point{c.Longitude, c.Latitude})
	if nearest == nil {
		return "", ErrNodeNotFound
	}
	return nearest.(spatialNode).id, nil
}

// ShortestPath returns the minimum-length node sequence from -> to.
func (rg *Graph) ShortestPath(from, to NodeId) ([]NodeId, error) {
	if _, ok := rg.nodes[from]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, from)
	}
	if _, ok := rg.nodes[to]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, to)
	}

	_, prev, err := dijkstra.Dijkstra(rg.g, dijkstra.Source(string(from)), dijkstra.WithReturnPath())
	if err != nil {
		return nil, fmt.Errorf("roadgraph: dijkstra: %w", err)
	}

	if string(to) != string(from) {
		if _, reached := prev[string(to)]; !reached {
			return nil, ErrNoPath
		}
	}

	var path []NodeId
	for cur := string(to); ; {
		path = append([]NodeId{NodeId(cur)}, path...)
		if cur == string(from) {
			break
		}
		parent, ok := prev[cur]
		if !ok || parent == "" {
			return nil, ErrNoPath
		}
		cur = parent
	}

	return path, nil
}

// EdgesAlong resolves the edge attributes between each consecutive pair of
// nodes in path.
func (rg *Graph) EdgesAlong(path []NodeId) ([]RoadEdge, error) {
	if len(path) < 2 {
		return nil, nil
	}

	out := make([]RoadEdge, 0, len(path)-1)
	for i := 0; i < len(path)-1; i++ {
		from, to := path[i], path[i+1]
		edge, attrs, err := rg.edgeBetween(from, to)
		if err != nil {
			return nil, err
		}
		out = append(out, RoadEdge{
			From:   from,
			To:     to,
			Length: geo.FromMeters(float64(edge.Weight)),
			Speed:  geo.FromKPH(attrs.speedKPH),
			Lanes:  attrs.lanes,
		})
	}

	return out, nil
}

func (rg *Graph) edgeBetween(from, to NodeId) (*core.Edge, edgeAttrs, error) {
	neighbors, err := rg.g.Neighbors(string(from))
	if err != nil {
		return nil, edgeAttrs{}, fmt.Errorf("roadgraph: neighbors of %s: %w", from, err)
	}
	for _, e := range neighbors {
		if e.From == string(from) && e.To == string(to) {
			return e, rg.attrsByID[e.ID], nil
		}
	}
	return nil, edgeAttrs{}, fmt.Errorf("%w: no edge %s->%s", ErrNodeNotFound, from, to)
}

// NodeCoordinates returns the coordinates of a node.
func (rg *Graph) NodeCoordinates(id NodeId) (geo.Coordinates, error) {
	c, ok := rg.nodes[id]
	if !ok {
		return geo.Coordinates{}, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	return c, nil
}
