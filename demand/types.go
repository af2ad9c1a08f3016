package demand

import (
	"errors"

	"github.com/urbanmobility/trafficsim/cluster"
)

// ErrInvalidInput is returned for malformed generator input.
var ErrInvalidInput = errors.New("demand: invalid input")

// TravelId identifies a Travel within a single generator/engine run.
type TravelId int

// Travel is a single origin-destination demand unit.
type Travel struct {
	ID         TravelId
	Start, End cluster.Cluster
}

// IDSequence is an engine-scoped, monotonically increasing Travel id
// generator. The original Python implementation used a process-wide
// global counter (original_source/travel.py's travel_id_generator); per
// spec §9 that global mutable state is replaced with a value threaded
// explicitly through the generator, so concurrent or repeated runs never
// share id state.
type IDSequence struct {
	next TravelId
}

// NewIDSequence returns a fresh sequence starting at id 1.
func NewIDSequence() *IDSequence {
	return &IDSequence{}
}

// Next returns the next id in the sequence.
func (s *IDSequence) Next() TravelId {
	s.next++
	return s.next
}
