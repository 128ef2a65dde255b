package mcts

import (
	"fmt"

	"github.com/IlikeChooros/go-uttt/pkg/uttt"
)

// Index of a node in the tree's arena
type NodeID int32

const NoNode NodeID = -1

// Single node of the search tree. Parent is a plain index used only to
// walk back up during backpropagation, the children are owned by the tree.
type Node struct {
	Stats    NodeStats
	Move     uttt.Move // move that produced this node, uttt.MoveNone for the root
	Position uttt.Position
	Parent   NodeID
	Children []NodeID    // ordered by move, since expansion always takes the lowest untried one
	Untried  []uttt.Move // ascending, only shrinks
}

func (node *Node) Terminal() bool {
	return node.Position.IsTerminated()
}

// Every legal move has a child
func (node *Node) Expanded() bool {
	return len(node.Untried) == 0
}

// Arena-allocated search tree, the root is always the first node
type Tree struct {
	nodes []Node
}

func NewTree(root uttt.Position) *Tree {
	tree := &Tree{nodes: make([]Node, 0, 1024)}
	tree.nodes = append(tree.nodes, newNode(root, uttt.MoveNone, NoNode))
	return tree
}

func newNode(pos uttt.Position, move uttt.Move, parent NodeID) Node {
	return Node{
		Move:     move,
		Position: pos,
		Parent:   parent,
		Untried:  append([]uttt.Move(nil), pos.GenerateMoves().Slice()...),
	}
}

func (tree *Tree) Root() NodeID {
	return 0
}

// Returns a pointer into the arena, valid until the next Expand call
func (tree *Tree) Node(id NodeID) *Node {
	return &tree.nodes[id]
}

// Number of nodes in the tree
func (tree *Tree) Size() int {
	return len(tree.nodes)
}

// Find the child created by given move
func (tree *Tree) Child(id NodeID, move uttt.Move) (NodeID, bool) {
	for _, child := range tree.nodes[id].Children {
		if tree.nodes[child].Move == move {
			return child, true
		}
	}
	return NoNode, false
}

// Create the child for the lowest untried move of given node
func (tree *Tree) Expand(id NodeID) (NodeID, error) {
	parent := &tree.nodes[id]
	if len(parent.Untried) == 0 {
		return NoNode, fmt.Errorf("%w: expanding fully expanded node %s", ErrInvariantViolation, parent.Move)
	}

	move := parent.Untried[0]
	pos, err := parent.Position.Apply(move)
	if err != nil {
		return NoNode, fmt.Errorf("%w: generated move rejected: %w", ErrInvariantViolation, err)
	}
	parent.Untried = parent.Untried[1:]

	childId := NodeID(len(tree.nodes))
	parent.Children = append(parent.Children, childId)
	// parent may be invalid after this append
	tree.nodes = append(tree.nodes, newNode(pos, move, id))
	return childId, nil
}

// Visit and reward totals of the root's children
func (tree *Tree) RootTable() Table {
	root := &tree.nodes[0]
	table := make(Table, len(root.Children))
	for _, id := range root.Children {
		child := &tree.nodes[id]
		table[child.Move] = MoveStats{
			Move:   child.Move,
			Visits: int(child.Stats.N()),
			Reward: float64(child.Stats.W()),
		}
	}
	return table
}
