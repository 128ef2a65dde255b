package mcts

import "github.com/IlikeChooros/go-uttt/pkg/uttt"

// Reward of the outcome for given player, 1 for a win, 0.5 for a draw, 0 for a loss
func reward(outcome uttt.Termination, player uttt.Player) Result {
	if outcome == uttt.TerminationDraw {
		return 0.5
	}
	if winner, ok := outcome.Winner(); ok && winner == player {
		return 1
	}
	return 0
}

// Walk from the node back to the root, adding one visit to each node and the
// reward for the player about to move at that node's parent
func Backpropagate(tree *Tree, id NodeID, outcome uttt.Termination) {
	/*
		source: https://en.wikipedia.org/wiki/Monte_Carlo_tree_search
			If white loses the simulation, all nodes along the selection incremented their simulation count (the denominator),
			but among them only the black nodes were credited with wins (the numerator). If instead white wins,
			all nodes along the selection would still increment their simulation count, but among them
			only the white nodes would be credited with wins. In games where draws are possible,
			a draw causes the numerator for both black and white to be incremented by 0.5 and the denominator by 1.
	*/

	for id != NoNode {
		node := tree.Node(id)
		// The player who made the node's move, turn already flipped in the node's position
		node.Stats.Add(reward(outcome, node.Position.Turn().Other()))
		id = node.Parent
	}
}
