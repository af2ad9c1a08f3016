// Command trafficsim runs a single commuter traffic assignment over a
// population configuration and a road network, and prints the resulting
// load summary.
//
// Usage:
//
//	trafficsim -population config.json -network network.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"sort"

	"github.com/urbanmobility/trafficsim/assign"
	"github.com/urbanmobility/trafficsim/atlas"
	"github.com/urbanmobility/trafficsim/cluster"
	"github.com/urbanmobility/trafficsim/clustergraph"
	"github.com/urbanmobility/trafficsim/config"
	"github.com/urbanmobility/trafficsim/demand"
	"github.com/urbanmobility/trafficsim/geo"
	"github.com/urbanmobility/trafficsim/result"
	"github.com/urbanmobility/trafficsim/roadgraph"
	"github.com/urbanmobility/trafficsim/simlog"
)

var (
	populationPath = flag.String("population", "", "path to population config JSON (required)")
	networkPath    = flag.String("network", "", "path to road network JSON (required)")
	resolution     = flag.Int("resolution", 9, "H3 resolution for clustering and the cluster graph")
	centreStrategy = flag.String("centre-strategy", "HEXAGON_CENTER", "cluster centre strategy: MEAN or HEXAGON_CENTER")
	batchSize      = flag.Int("batch-size", 500, "travels routed per batch before weights refresh")
	iterations     = flag.Int("iterations", 1, "number of passes over the full batched demand")
	parallel       = flag.Bool("parallel", false, "run per-source shortest paths concurrently")
	seed           = flag.Int64("seed", 1, "random seed for population sampling and destination choice")
)

func main() {
	flag.Parse()

	logger := simlog.New(os.Stderr, slog.LevelInfo)

	if err := run(context.Background(), logger); err != nil {
		fmt.Fprintf(os.Stderr, "trafficsim: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	if *populationPath == "" || *networkPath == "" {
		flag.Usage()
		return fmt.Errorf("both -population and -network are required")
	}

	strategy, err := cluster.ParseCentreStrategy(*centreStrategy)
	if err != nil {
		return fmt.Errorf("centre strategy: %w", err)
	}

	popFile, err := os.Open(*populationPath)
	if err != nil {
		return fmt.Errorf("opening population config: %w", err)
	}
	defer popFile.Close()

	popConfig, err := config.Decode(popFile)
	if err != nil {
		return fmt.Errorf("decoding population config: %w", err)
	}

	netFile, err := os.Open(*networkPath)
	if err != nil {
		return fmt.Errorf("opening road network: %w", err)
	}
	defer netFile.Close()

	rg, err := roadgraph.DecodeNetwork(netFile)
	if err != nil {
		return fmt.Errorf("decoding road network: %w", err)
	}

	rng := rand.New(rand.NewSource(*seed))

	var points []geo.Coordinates
	for _, epicentre := range popConfig.Epicentres {
		sampled, err := epicentre.Sample(rng)
		if err != nil {
			return fmt.Errorf("sampling epicentre %q: %w", epicentre.Label, err)
		}
		points = append(points, sampled...)
	}

	clusters, err := cluster.Clusterize(points, *resolution, strategy)
	if err != nil {
		return fmt.Errorf("clustering population: %w", err)
	}

	consolidated, err := cluster.Consolidate(clusters, rg, *resolution)
	if err != nil {
		return fmt.Errorf("consolidating clusters: %w", err)
	}
	sortClusters(consolidated)

	ids := demand.NewIDSequence()
	travels, err := demand.Generate(consolidated, popConfig.TravelCoefficient, ids, rng)
	if err != nil {
		return fmt.Errorf("generating travel demand: %w", err)
	}

	assigner, err := assign.NewIncrementalBatched(*resolution, *batchSize, *iterations)
	if err != nil {
		return fmt.Errorf("configuring assigner: %w", err)
	}
	assigner.Parallel = *parallel

	routes, diag, err := assigner.AssignRoutes(ctx, travels, consolidated, rg)
	if err != nil {
		return fmt.Errorf("assigning routes: %w", err)
	}

	simlog.AssignmentDiagnostics(ctx, logger, diag.Dropped, len(travels))

	cg, err := replayClusterGraph(rg, consolidated, *resolution, routes)
	if err != nil {
		return fmt.Errorf("rebuilding cluster graph for reporting: %w", err)
	}

	summary := result.Summarize(routes, cg, diag)
	simlog.RunSummary(ctx, logger, len(points), len(travels), len(routes), summary.MeanTravelTime.Minutes())

	return json.NewEncoder(os.Stdout).Encode(reportOf(summary))
}

// wireEdgeView and wireSummary give the run's Summary a JSON shape: geo.Time
// carries no exported fields of its own (by design, see geo package doc),
// so the CLI boundary projects it to plain minute floats the way
// config/decode.go's wireEpicentre projects geo.Distance to bare meters.
type wireEdgeView struct {
	Start             string             `json:"start"`
	End               string             `json:"end"`
	TravelTimeMinutes float64            `json:"travel_time_minutes"`
	FreeFlowMinutes   float64            `json:"free_flow_travel_time_minutes"`
	SlowdownMinutes   float64            `json:"traffic_slowdown_minutes"`
	Capacity          int                `json:"capacity"`
	Volume            int                `json:"volume"`
	Path              []roadgraph.NodeId `json:"path"`
}

type wireSummary struct {
	MeanTravelTimeMinutes float64        `json:"mean_travel_time_minutes"`
	Edges                 []wireEdgeView `json:"edges"`
	Dropped               int            `json:"dropped"`
}

func reportOf(s result.Summary) wireSummary {
	edges := make([]wireEdgeView, 0, len(s.Edges))
	for _, e := range s.Edges {
		edges = append(edges, wireEdgeView{
			Start:             string(e.Start),
			End:               string(e.End),
			TravelTimeMinutes: e.TravelTime.Minutes(),
			FreeFlowMinutes:   e.FreeFlowTravelTime.Minutes(),
			SlowdownMinutes:   e.TrafficSlowdown().Minutes(),
			Capacity:          e.Capacity,
			Volume:            e.Volume,
			Path:              e.Path,
		})
	}

	return wireSummary{
		MeanTravelTimeMinutes: s.MeanTravelTime.Minutes(),
		Edges:                 edges,
		Dropped:               s.Dropped.Dropped,
	}
}

// sortClusters restores deterministic CellId order after Consolidate,
// whose map-keyed grouping does not guarantee output order.
func sortClusters(clusters []cluster.Cluster) {
	sort.Slice(clusters, func(i, j int) bool { return clusters[i].CellId < clusters[j].CellId })
}

// replayClusterGraph rebuilds a fresh ClusterGraph and replays the final
// routes' link assignments onto it, so result.Summarize has a load
// snapshot to report against. AssignRoutes owns and mutates its own
// internal ClusterGraph but does not expose it, by design (spec §5's
// read-only-after-termination rule applies to the engine's state, not to
// this reporting-only reconstruction).
func replayClusterGraph(rg roadgraph.RoadGraph, clusters []cluster.Cluster, resolution int, routes []assign.Route) (*clustergraph.ClusterGraph, error) {
	atl, _, err := atlas.Build(rg, clusters, resolution)
	if err != nil {
		return nil, err
	}

	cg, err := clustergraph.Build(atl, rg, clusters, resolution)
	if err != nil {
		return nil, err
	}

	for _, route := range routes {
		for i := 0; i+1 < len(route.Nodes); i++ {
			edge, ok := cg.Edge(route.Nodes[i], route.Nodes[i+1])
			if !ok {
				continue
			}
			edge.State.Assign(clustergraph.TravelId(route.Travel.ID))
		}
	}
	cg.RefreshWeights()

	return cg, nil
}
