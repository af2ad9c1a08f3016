package simlog

import (
	"context"
	"io"
	"log/slog"
)

// New builds a text-handler logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// AtlasDiagnostics logs the non-fatal counts atlas.Build produces.
func AtlasDiagnostics(ctx context.Context, logger *slog.Logger, degeneratePaths, unreachablePairs int) {
	if degeneratePaths == 0 && unreachablePairs == 0 {
		return
	}
	logger.WarnContext(ctx, "atlas built with gaps",
		"degenerate_paths", degeneratePaths,
		"unreachable_pairs", unreachablePairs,
	)
}

// AssignmentDiagnostics logs the non-fatal counts AssignRoutes produces.
func AssignmentDiagnostics(ctx context.Context, logger *slog.Logger, dropped, totalTravels int) {
	if dropped == 0 {
		return
	}
	logger.WarnContext(ctx, "some travels could not be routed",
		"dropped", dropped,
		"total_travels", totalTravels,
	)
}

// RunSummary logs the top-line result of a completed simulation run.
func RunSummary(ctx context.Context, logger *slog.Logger, populationCount, travelCount, routedCount int, meanTravelTimeMinutes float64) {
	logger.InfoContext(ctx, "simulation complete",
		"population_count", populationCount,
		"travel_count", travelCount,
		"routed_count", routedCount,
		"mean_travel_time_minutes", meanTravelTimeMinutes,
	)
}
