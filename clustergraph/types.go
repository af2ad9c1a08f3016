package clustergraph

import (
	"errors"
	"math"

	"github.com/urbanmobility/trafficsim/cluster"
	"github.com/urbanmobility/trafficsim/geo"
	"github.com/urbanmobility/trafficsim/roadgraph"
)

// ErrInvalidInput is returned when a road path cannot be lifted into a
// cluster-graph edge (an empty path, or one that crosses no valid cluster).
var ErrInvalidInput = errors.New("clustergraph: invalid input")

// TravelId identifies a Travel within the current assignment run.
type TravelId int

// PathData is the immutable, aggregated description of one inter-cluster
// road path: the bottleneck speed and lane count along it, its total
// length, and CrossesOtherClusters, which is true when the path's sequence
// of distinct tracked clusters is exactly [StartCluster, EndCluster] — that
// is, when it passes through no other tracked cluster on the way (per spec
// §4.3, grounded on original_source/pathing.py's PathData).
type PathData struct {
	StartCluster, EndCluster cluster.ClusterId
	MinMaxSpeed              geo.Speed // slowest posted speed along the path
	MinLaneCount             int       // narrowest segment's lane count
	Length                   geo.Distance
	CrossesOtherClusters     bool
	Path                     []roadgraph.NodeId // underlying road-node sequence, for reporting
}

// MaxCapacity is the BPR capacity of the link, in vehicles/hour.
func (p PathData) MaxCapacity() int {
	return p.MinLaneCount * 2200
}

// FreeFlowTravelTime is the travel time at zero load: length / bottleneck
// speed. The original Python's equivalent property was left unimplemented
// (original_source/pathing.py, PathData.free_flow_travel_time); this is
// the normative definition spec.md §9 states in its place.
func (p PathData) FreeFlowTravelTime() geo.Time {
	return p.MinMaxSpeed.TimeToCover(p.Length)
}

// LinkState is the mutable per-edge load: the multiset of travels
// currently routed across this link. TravelTime derives from PathData and
// the current load via the BPR function.
type LinkState struct {
	PathData      PathData
	CurrentVolume []TravelId
}

// TravelTime returns the current BPR-costed travel time for this link.
func (s *LinkState) TravelTime() geo.Time {
	return BPR(s.PathData.FreeFlowTravelTime(), len(s.CurrentVolume), s.PathData.MaxCapacity())
}

// Assign adds a travel to this link's current volume.
func (s *LinkState) Assign(id TravelId) {
	s.CurrentVolume = append(s.CurrentVolume, id)
}

// Unassign removes one occurrence of a travel from this link's current
// volume. It is a no-op if the travel is not present.
func (s *LinkState) Unassign(id TravelId) {
	for i, v := range s.CurrentVolume {
		if v == id {
			s.CurrentVolume = append(s.CurrentVolume[:i], s.CurrentVolume[i+1:]...)
			return
		}
	}
}

// BPR is the Bureau of Public Roads volume-delay function:
//
//	travel_time(v) = free_flow * (1 + 0.15 * (v/capacity)^4)
//
// A non-positive capacity degenerates to infinite travel time rather than
// dividing by zero, since a link with zero throughput is impassable under
// any load.
func BPR(freeFlow geo.Time, volume, capacity int) geo.Time {
	if capacity <= 0 {
		return geo.FromSeconds(math.Inf(1))
	}
	ratio := float64(volume) / float64(capacity)
	return geo.FromMinutes(freeFlow.Minutes() * (1 + 0.15*math.Pow(ratio, 4)))
}
