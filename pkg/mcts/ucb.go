package mcts

import "math"

// UCT selection:
//
//	W_child/N_child + C * sqrt(ln(N_parent)/N_child)
//
// Child rewards are stored from the perspective of the player who made the
// child's move, which is the player to move at the parent. Ties go to the
// lowest move, which is the first child.
type UCB1 struct {
	ExplorationParam float64
}

func NewUCB1(explorationParam float64) *UCB1 {
	return &UCB1{ExplorationParam: max(0, explorationParam)}
}

func (u *UCB1) SetExplorationParam(c float64) {
	u.ExplorationParam = max(0, c)
}

func (u *UCB1) Select(tree *Tree, parentId NodeID) NodeID {
	parent := tree.Node(parentId)
	if parent.Terminal() || len(parent.Children) == 0 {
		return parentId
	}

	best := math.Inf(-1)
	index := 0
	lnParentVisits := math.Log(float64(parent.Stats.N()))

	for i, id := range parent.Children {
		child := tree.Node(id)
		visits := float64(child.Stats.N())

		// Pick the unvisited one
		if visits == 0 {
			return id
		}

		ucb1 := float64(child.Stats.AvgW()) +
			u.ExplorationParam*math.Sqrt(lnParentVisits/visits)

		if ucb1 > best {
			best = ucb1
			index = i
		}
	}

	return parent.Children[index]
}
