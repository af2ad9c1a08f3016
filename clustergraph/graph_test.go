package clustergraph_test

import (
	"math"
	"testing"

	"github.com/urbanmobility/trafficsim/atlas"
	"github.com/urbanmobility/trafficsim/cluster"
	"github.com/urbanmobility/trafficsim/clustergraph"
	"github.com/urbanmobility/trafficsim/geo"
	"github.com/urbanmobility/trafficsim/h3cell"
	"github.com/urbanmobility/trafficsim/roadgraph"
)

const resolution = 9

func neighboringClusters(t *testing.T, seed geo.Coordinates) (cluster.Cluster, cluster.Cluster) {
	t.Helper()

	aID := h3cell.PointToCell(seed, resolution)
	ring, err := h3cell.KRing(aID, 1)
	if err != nil {
		t.Fatalf("KRing: %v", err)
	}
	var bID h3cell.CellId
	for _, id := range ring {
		if id != aID {
			bID = id
			break
		}
	}
	if bID == "" {
		t.Fatal("seed cell has no neighbors")
	}

	aCentre, err := h3cell.Centre(aID)
	if err != nil {
		t.Fatalf("Centre(a): %v", err)
	}
	bCentre, err := h3cell.Centre(bID)
	if err != nil {
		t.Fatalf("Centre(b): %v", err)
	}

	a := cluster.Cluster{CellId: aID, Centre: aCentre, Points: []geo.Coordinates{aCentre}}
	b := cluster.Cluster{CellId: bID, Centre: bCentre, Points: []geo.Coordinates{bCentre}}
	return a, b
}

func midpoint(a, b geo.Coordinates) geo.Coordinates {
	return geo.Coordinates{Latitude: (a.Latitude + b.Latitude) / 2, Longitude: (a.Longitude + b.Longitude) / 2}
}

func buildClusterGraph(t *testing.T, a, b cluster.Cluster) *clustergraph.ClusterGraph {
	t.Helper()
	m := midpoint(a.Centre, b.Centre)
	nodes := []roadgraph.RoadNode{
		{ID: "rA", Coordinates: a.Centre},
		{ID: "rM", Coordinates: m},
		{ID: "rB", Coordinates: b.Centre},
	}
	edges := []roadgraph.RoadEdgeInput{
		{From: "rA", To: "rM", Length: geo.FromMeters(500), SpeedKPH: 40, Lanes: 2},
		{From: "rM", To: "rB", Length: geo.FromMeters(700), SpeedKPH: 60, Lanes: 1},
		{From: "rM", To: "rA", Length: geo.FromMeters(500), SpeedKPH: 40, Lanes: 2},
		{From: "rB", To: "rM", Length: geo.FromMeters(700), SpeedKPH: 60, Lanes: 1},
	}
	rg, err := roadgraph.New(nodes, edges)
	if err != nil {
		t.Fatalf("roadgraph.New: %v", err)
	}

	clusters := []cluster.Cluster{a, b}
	atl, _, err := atlas.Build(rg, clusters, resolution)
	if err != nil {
		t.Fatalf("atlas.Build: %v", err)
	}

	cg, err := clustergraph.Build(atl, rg, clusters, resolution)
	if err != nil {
		t.Fatalf("clustergraph.Build: %v", err)
	}
	return cg
}

func TestBuild_ProducesBidirectionalEdgesAtFreeFlowWeight(t *testing.T) {
	a, b := neighboringClusters(t, geo.Coordinates{Latitude: 54.46, Longitude: 17.02})
	cg := buildClusterGraph(t, a, b)

	fwd, ok := cg.Edge(a.CellId, b.CellId)
	if !ok {
		t.Fatalf("expected edge %s->%s", a.CellId, b.CellId)
	}
	back, ok := cg.Edge(b.CellId, a.CellId)
	if !ok {
		t.Fatalf("expected edge %s->%s", b.CellId, a.CellId)
	}

	// Bottleneck speed is 40kph (the slower segment), capacity = min(2,1)*2200 = 2200.
	if got := fwd.State.PathData.MinMaxSpeed.KPH(); math.Abs(got-40) > 1e-9 {
		t.Errorf("MinMaxSpeed = %v kph, want 40", got)
	}
	if got := fwd.State.PathData.MaxCapacity(); got != 2200 {
		t.Errorf("MaxCapacity = %d, want 2200", got)
	}

	// At zero load, edge weight is free-flow travel time in minutes.
	wantMinutes := fwd.State.PathData.FreeFlowTravelTime().Minutes()
	if math.Abs(fwd.Weight-wantMinutes) > 1e-9 {
		t.Errorf("fwd.Weight = %v, want free-flow %v", fwd.Weight, wantMinutes)
	}
	if math.Abs(back.Weight-wantMinutes) > 1e-9 {
		t.Errorf("back.Weight = %v, want free-flow %v (symmetric lengths)", back.Weight, wantMinutes)
	}
}

func TestRefreshWeights_ReflectsAssignedLoad(t *testing.T) {
	a, b := neighboringClusters(t, geo.Coordinates{Latitude: 54.46, Longitude: 17.02})
	cg := buildClusterGraph(t, a, b)

	fwd, ok := cg.Edge(a.CellId, b.CellId)
	if !ok {
		t.Fatal("missing forward edge")
	}
	freeFlowWeight := fwd.Weight

	capacity := fwd.State.PathData.MaxCapacity()
	for i := 0; i < capacity; i++ {
		fwd.State.Assign(clustergraph.TravelId(i))
	}
	cg.RefreshWeights()

	if fwd.Weight <= freeFlowWeight {
		t.Errorf("weight after loading to capacity = %v, want > free-flow %v", fwd.Weight, freeFlowWeight)
	}
}
