package result_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanmobility/trafficsim/assign"
	"github.com/urbanmobility/trafficsim/atlas"
	"github.com/urbanmobility/trafficsim/cluster"
	"github.com/urbanmobility/trafficsim/clustergraph"
	"github.com/urbanmobility/trafficsim/demand"
	"github.com/urbanmobility/trafficsim/geo"
	"github.com/urbanmobility/trafficsim/h3cell"
	"github.com/urbanmobility/trafficsim/result"
	"github.com/urbanmobility/trafficsim/roadgraph"
)

const testResolution = 9

func adjacentPair(t *testing.T) (cluster.Cluster, cluster.Cluster) {
	t.Helper()
	seed := geo.Coordinates{Latitude: 54.5, Longitude: 18.6}
	aID := h3cell.PointToCell(seed, testResolution)
	ring, err := h3cell.KRing(aID, 1)
	require.NoError(t, err)

	var bID h3cell.CellId
	for _, id := range ring {
		if id != aID {
			bID = id
			break
		}
	}
	aCentre, err := h3cell.Centre(aID)
	require.NoError(t, err)
	bCentre, err := h3cell.Centre(bID)
	require.NoError(t, err)

	a := cluster.Cluster{CellId: aID, Centre: aCentre, Points: []geo.Coordinates{aCentre}}
	b := cluster.Cluster{CellId: bID, Centre: bCentre, Points: []geo.Coordinates{bCentre}}
	return a, b
}

func buildClusterGraph(t *testing.T, clusters []cluster.Cluster) *clustergraph.ClusterGraph {
	t.Helper()
	a, b := clusters[0], clusters[1]
	m := geo.Coordinates{Latitude: (a.Centre.Latitude + b.Centre.Latitude) / 2, Longitude: (a.Centre.Longitude + b.Centre.Longitude) / 2}
	nodes := []roadgraph.RoadNode{
		{ID: "ra", Coordinates: a.Centre},
		{ID: "rm", Coordinates: m},
		{ID: "rb", Coordinates: b.Centre},
	}
	edges := []roadgraph.RoadEdgeInput{
		{From: "ra", To: "rm", Length: geo.FromMeters(500), SpeedKPH: 50, Lanes: 1},
		{From: "rm", To: "ra", Length: geo.FromMeters(500), SpeedKPH: 50, Lanes: 1},
		{From: "rm", To: "rb", Length: geo.FromMeters(500), SpeedKPH: 50, Lanes: 1},
		{From: "rb", To: "rm", Length: geo.FromMeters(500), SpeedKPH: 50, Lanes: 1},
	}
	rg, err := roadgraph.New(nodes, edges)
	require.NoError(t, err)

	atl, _, err := atlas.Build(rg, clusters, testResolution)
	require.NoError(t, err)

	cg, err := clustergraph.Build(atl, rg, clusters, testResolution)
	require.NoError(t, err)
	return cg
}

func TestSummarize_ReflectsAssignedLoadAndSlowdown(t *testing.T) {
	a, b := adjacentPair(t)
	clusters := []cluster.Cluster{a, b}
	cg := buildClusterGraph(t, clusters)

	edge, ok := cg.Edge(a.CellId, b.CellId)
	require.True(t, ok, "expected edge %s->%s", a.CellId, b.CellId)

	edge.State.Assign(1)
	edge.State.Assign(2)
	cg.RefreshWeights()

	route := assign.Route{
		Travel:              demand.Travel{ID: 1, Start: a, End: b},
		EstimatedTravelTime: edge.State.TravelTime(),
		Nodes:               []cluster.ClusterId{a.CellId, b.CellId},
	}

	s := result.Summarize([]assign.Route{route}, cg, assign.Diagnostics{})

	assert.Equal(t, route.EstimatedTravelTime.Minutes(), s.MeanTravelTime.Minutes())
	assert.Zero(t, s.Dropped.Dropped)

	var found *result.EdgeView
	for i := range s.Edges {
		if s.Edges[i].Start == a.CellId && s.Edges[i].End == b.CellId {
			found = &s.Edges[i]
			break
		}
	}
	require.NotNil(t, found, "expected edge view %s->%s in summary", a.CellId, b.CellId)
	assert.Equal(t, 2, found.Volume)
	assert.Equal(t, edge.State.PathData.Path, found.Path)
	assert.Greater(t, found.TravelTime.Minutes(), found.FreeFlowTravelTime.Minutes())
	assert.Equal(t, found.TravelTime.Minutes()-found.FreeFlowTravelTime.Minutes(), found.TrafficSlowdown().Minutes())
}

func TestSummarize_EmptyRoutesYieldsZeroMean(t *testing.T) {
	rg, err := roadgraph.New(nil, nil)
	require.NoError(t, err)

	atl, _, err := atlas.Build(rg, nil, testResolution)
	require.NoError(t, err)

	cg, err := clustergraph.Build(atl, rg, nil, testResolution)
	require.NoError(t, err)

	s := result.Summarize(nil, cg, assign.Diagnostics{Dropped: 3})
	assert.Zero(t, s.MeanTravelTime.Minutes())
	assert.Empty(t, s.Edges)
	assert.Equal(t, 3, s.Dropped.Dropped)
}
