package roadgraph

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/urbanmobility/trafficsim/geo"
)

// wireNode and wireEdge are the raw JSON shapes of a road network (spec §6
// ingestion boundary): plain floats/strings rather than the decoded
// geo.Distance/geo.Coordinates types, mirroring config's wireEpicentre.
type wireNode struct {
	ID        NodeId  `json:"id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type wireEdge struct {
	From     NodeId  `json:"from"`
	To       NodeId  `json:"to"`
	LengthM  float64 `json:"length_meters"`
	SpeedKPH float64 `json:"speed_kph"`
	Lanes    int     `json:"lanes"`
}

type wireNetwork struct {
	Nodes []wireNode `json:"nodes"`
	Edges []wireEdge `json:"edges"`
}

// DecodeNetwork parses a road network from JSON and builds a Graph from
// it. There is no osmnx-equivalent live map source in this module, so the
// road network is supplied as a flat nodes/edges document instead
// (grounded on original_source/pathing.py's graph being loaded once from
// a serialized osmnx.MultiDiGraph and never mutated after).
func DecodeNetwork(r io.Reader) (*Graph, error) {
	var raw wireNetwork
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("roadgraph: decode network: %w", err)
	}

	nodes := make([]RoadNode, 0, len(raw.Nodes))
	for _, n := range raw.Nodes {
		nodes = append(nodes, RoadNode{
			ID:          n.ID,
			Coordinates: geo.Coordinates{Latitude: n.Latitude, Longitude: n.Longitude},
		})
	}

	edges := make([]RoadEdgeInput, 0, len(raw.Edges))
	for _, e := range raw.Edges {
		edges = append(edges, RoadEdgeInput{
			From:     e.From,
			To:       e.To,
			Length:   geo.FromMeters(e.LengthM),
			SpeedKPH: e.SpeedKPH,
			Lanes:    e.Lanes,
		})
	}

	return New(nodes, edges)
}
