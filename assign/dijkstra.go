package assign

import (
	"container/heap"
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/urbanmobility/trafficsim/cluster"
	"github.com/urbanmobility/trafficsim/clustergraph"
)

// dijkstraFrom computes single-source shortest paths over cg from
// source, returning, for every reachable node other than source, the
// edge used to reach it on the shortest path.
//
// lvlath/dijkstra cannot be reused here: it operates on core.Graph's
// int64 weights, while ClusterGraph's BPR-derived weights are float64
// (see DESIGN.md). This is a small hand-written variant in the same
// spirit, a textbook container/heap priority queue.
func dijkstraFrom(cg *clustergraph.ClusterGraph, source cluster.ClusterId) map[cluster.ClusterId]*clustergraph.Edge {
	dist := map[cluster.ClusterId]float64{source: 0}
	prevEdge := make(map[cluster.ClusterId]*clustergraph.Edge)
	visited := make(map[cluster.ClusterId]bool)

	pq := &priorityQueue{{id: source, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(pqItem)
		if visited[cur.id] {
			continue
		}
		visited[cur.id] = true

		for _, e := range cg.Neighbors(cur.id) {
			next := dist[cur.id] + e.Weight
			if d, ok := dist[e.To]; !ok || next < d {
				dist[e.To] = next
				prevEdge[e.To] = e
				heap.Push(pq, pqItem{id: e.To, dist: next})
			}
		}
	}

	return prevEdge
}

// allPairsShortestPaths runs dijkstraFrom from every node in cg. When
// parallel is true, per-source runs are dispatched across a bounded
// goroutine pool via errgroup and collected into a source-indexed slice
// before assembly — deterministic regardless of completion order, per
// spec §5's requirement that parallel Dijkstra results be gathered
// deterministically before per-travel assignment begins.
func allPairsShortestPaths(ctx context.Context, cg *clustergraph.ClusterGraph, parallel bool) (map[cluster.ClusterId]map[cluster.ClusterId]*clustergraph.Edge, error) {
	sources := cg.Nodes()
	results := make([]map[cluster.ClusterId]*clustergraph.Edge, len(sources))

	if !parallel {
		for i, s := range sources {
			results[i] = dijkstraFrom(cg, s)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(runtime.GOMAXPROCS(0))
		for i, s := range sources {
			i, s := i, s
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				results[i] = dijkstraFrom(cg, s)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	out := make(map[cluster.ClusterId]map[cluster.ClusterId]*clustergraph.Edge, len(sources))
	for i, s := range sources {
		out[s] = results[i]
	}
	return out, nil
}

// routeEdges resolves the shortest-path edge sequence from start to end
// using the per-source results from allPairsShortestPaths.
//
// start == end is boundary scenario 1 (spec §8): a self-travel has an
// empty, zero-cost route rather than being unroutable.
func routeEdges(shortestPaths map[cluster.ClusterId]map[cluster.ClusterId]*clustergraph.Edge, start, end cluster.ClusterId) ([]*clustergraph.Edge, bool) {
	if start == end {
		return []*clustergraph.Edge{}, true
	}

	prevEdge, ok := shortestPaths[start]
	if !ok {
		return nil, false
	}
	if _, reached := prevEdge[end]; !reached {
		return nil, false
	}

	var reverse []*clustergraph.Edge
	for cur := end; cur != start; {
		e := prevEdge[cur]
		reverse = append(reverse, e)
		cur = e.From
	}

	edges := make([]*clustergraph.Edge, len(reverse))
	for i, e := range reverse {
		edges[len(reverse)-1-i] = e
	}
	return edges, true
}

type pqItem struct {
	id   cluster.ClusterId
	dist float64
}

// priorityQueue is a container/heap min-heap over pqItem, tie-broken by a
// stable cluster-id ordering so Dijkstra ties resolve deterministically
// (spec §4.5 "Determinism").
type priorityQueue []pqItem

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].id < pq[j].id
}
func (pq priorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *priorityQueue) Push(x any) {
	*pq = append(*pq, x.(pqItem))
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
