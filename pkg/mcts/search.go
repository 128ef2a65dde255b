package mcts

import (
	"fmt"

	"github.com/IlikeChooros/go-uttt/pkg/uttt"
)

// Run a fresh search from 'root' for the given number of iterations and
// return the root table. With a fixed seed the result is reproducible.
func (e *Engine) Run(root uttt.Position, iterations uint32) (Table, error) {
	e.Reset(root)
	e.SetLimits(DefaultLimits().SetCycles(iterations))
	if err := e.Search(); err != nil {
		return nil, err
	}
	return e.Table(), nil
}

// Actual search function implementation, simply calls:
//
// 1. selection - to choose the most promising node
//
// 2. expansion - to add a child for the lowest untried move
//
// 3. rollout - to simulate the game, and get the result of a playout
//
// 4. backpropagate - to increment counters up to the root
//
// Until runs out of the allocated time or cycles, or gets the stop signal.
// Statistics gathered before the stop are kept. An error means the tree hit an
// internal defect and its statistics must not be used.
func (e *Engine) Search() error {
	e.Limiter.Reset()
	e.TreeStats = TreeStats{}

	if e.Root().Terminal() {
		e.Limiter.EvaluateStopReason(0)
		e.listener.invoke(e.listener.onStop, e)
		return nil
	}

	for e.Limiter.Ok(uint32(e.cycles)) {
		if err := e.iterate(); err != nil {
			e.Limiter.EvaluateStopReason(uint32(e.cycles))
			return err
		}

		e.cycles++
		if ms := e.Limiter.Elapsed().Milliseconds(); ms > 0 {
			e.cps = uint32(int64(e.cycles) * 1000 / ms)
		}
		e.listener.invokeCycle(e)
	}

	e.Limiter.EvaluateStopReason(uint32(e.cycles))
	e.listener.invoke(e.listener.onStop, e)
	return nil
}

func (e *Engine) iterate() error {
	id, depth := e.Selection()
	node := e.tree.Node(id)

	if !node.Terminal() && !node.Expanded() {
		child, err := e.tree.Expand(id)
		if err != nil {
			return err
		}
		id = child
		depth++
	}

	if depth > e.maxdepth {
		e.maxdepth = depth
		e.listener.invoke(e.listener.onDepth, e)
	}

	node = e.tree.Node(id)
	outcome := node.Position.Termination()
	if !node.Terminal() {
		var err error
		if outcome, err = e.rollout(node.Position, e.rand); err != nil {
			return err
		}
		if outcome == uttt.TerminationNone {
			return fmt.Errorf("%w: rollout ended in an ongoing position", ErrInvariantViolation)
		}
	}

	Backpropagate(e.tree, id, outcome)
	return nil
}

// Descend from the root through fully expanded nodes, stops on a node with
// untried moves or a terminal one. Returns the node and its depth.
func (e *Engine) Selection() (NodeID, int) {
	id := e.tree.Root()
	depth := 0

	for {
		node := e.tree.Node(id)
		if node.Terminal() || !node.Expanded() {
			return id, depth
		}
		next := e.selection.Select(e.tree, id)
		if next == id {
			return id, depth
		}
		id = next
		depth++
	}
}
