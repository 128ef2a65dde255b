package mcts

// Visit count and accumulated reward of a node. Every tree is owned by a
// single worker, so the counters are plain fields.
type NodeStats struct {
	n int32
	w float64
}

// Get number of visits to this node
func (stats *NodeStats) N() int32 {
	return stats.n
}

// Cumulated rewards for this node
func (stats *NodeStats) W() Result {
	return Result(stats.w)
}

// Average reward for this node, 0 if it was never visited
func (stats *NodeStats) AvgW() Result {
	if stats.n == 0 {
		return 0
	}
	return Result(stats.w / float64(stats.n))
}

// Add new outcome to this node, counting it as one visit
func (stats *NodeStats) Add(result Result) {
	stats.n++
	stats.w += float64(result)
}
