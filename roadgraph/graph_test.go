package roadgraph_test

import (
	"errors"
	"testing"

	"github.com/urbanmobility/trafficsim/geo"
	"github.com/urbanmobility/trafficsim/roadgraph"
)

func smallGraph(t *testing.T) *roadgraph.Graph {
	t.Helper()

	nodes := []roadgraph.RoadNode{
		{ID: "A", Coordinates: geo.Coordinates{Latitude: 0, Longitude: 0}},
		{ID: "B", Coordinates: geo.Coordinates{Latitude: 0, Longitude: 1}},
		{ID: "C", Coordinates: geo.Coordinates{Latitude: 0, Longitude: 2}},
	}
	edges := []roadgraph.RoadEdgeInput{
		{From: "A", To: "B", Length: geo.FromMeters(100), SpeedKPH: 50, Lanes: 2},
		{From: "B", To: "C", Length: geo.FromMeters(200), SpeedKPH: 50, Lanes: 1},
	}

	g, err := roadgraph.New(nodes, edges)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestShortestPath_Basic(t *testing.T) {
	g := smallGraph(t)

	path, err := g.ShortestPath("A", "C")
	if err != nil {
		t.Fatalf("ShortestPath: %v", err)
	}
	want := []roadgraph.NodeId{"A", "B", "C"}
	if len(path) != len(want) {
		t.Fatalf("path = %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("path = %v, want %v", path, want)
		}
	}
}

func TestShortestPath_UnknownNodeIsNotFound(t *testing.T) {
	g := smallGraph(t)

	nodes := []roadgraph.RoadNode{{ID: "Z", Coordinates: geo.Coordinates{Latitude: 5, Longitude: 5}}}
	_ = nodes // Z is not in g; use it only to document intent.

	_, err := g.ShortestPath("A", "doesnotexist")
	if !errors.Is(err, roadgraph.ErrNodeNotFound) {
		t.Fatalf("expected ErrNodeNotFound, got %v", err)
	}
}

func TestNew_RejectsNonPositiveLength(t *testing.T) {
	nodes := []roadgraph.RoadNode{
		{ID: "A", Coordinates: geo.Coordinates{}},
		{ID: "B", Coordinates: geo.Coordinates{}},
	}
	_, err := roadgraph.New(nodes, []roadgraph.RoadEdgeInput{
		{From: "A", To: "B", Length: geo.FromMeters(0), SpeedKPH: 10, Lanes: 1},
	})
	if !errors.Is(err, roadgraph.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestNew_DefaultsMissingLanesToOne(t *testing.T) {
	nodes := []roadgraph.RoadNode{
		{ID: "A", Coordinates: geo.Coordinates{}},
		{ID: "B", Coordinates: geo.Coordinates{Longitude: 0.001}},
	}
	g, err := roadgraph.New(nodes, []roadgraph.RoadEdgeInput{
		{From: "A", To: "B", Length: geo.FromMeters(10), SpeedKPH: 30, Lanes: 0},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	edges, err := g.EdgesAlong([]roadgraph.NodeId{"A", "B"})
	if err != nil {
		t.Fatalf("EdgesAlong: %v", err)
	}
	if len(edges) != 1 || edges[0].Lanes != 1 {
		t.Fatalf("expected single edge with 1 lane, got %+v", edges)
	}
}

func TestNearestNode(t *testing.T) {
	g := smallGraph(t)
	id, err := g.NearestNode(geo.Coordinates{Latitude: 0.001, Longitude: 0.9})
	if err != nil {
		t.Fatalf("NearestNode: %v", err)
	}
	if id != "B" {
		t.Errorf("NearestNode = %v, want B", id)
	}
}
