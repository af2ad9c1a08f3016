package assign

import "github.com/urbanmobility/trafficsim/demand"

// batches partitions travels into consecutive, input-order chunks of at
// most size elements each (the last chunk may be smaller), replacing
// original_source/utils.py's batched() itertools recipe.
func batches(travels []demand.Travel, size int) [][]demand.Travel {
	if len(travels) == 0 {
		return nil
	}
	out := make([][]demand.Travel, 0, (len(travels)+size-1)/size)
	for start := 0; start < len(travels); start += size {
		end := start + size
		if end > len(travels) {
			end = len(travels)
		}
		out = append(out, travels[start:end])
	}
	return out
}
