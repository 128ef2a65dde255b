package mcts

import (
	"fmt"
	"math/rand"

	"github.com/IlikeChooros/go-uttt/pkg/uttt"
)

// Play uniformly random moves until the game ends
func RandomRollout(pos uttt.Position, r *rand.Rand) (uttt.Termination, error) {
	var moves uttt.MoveList

	for !pos.IsTerminated() {
		pos.AppendMoves(&moves)
		if moves.Size() == 0 {
			return uttt.TerminationNone, fmt.Errorf("%w: no legal moves in ongoing position %s",
				ErrInvariantViolation, pos.Notation())
		}

		next, err := pos.Apply(moves.At(r.Intn(moves.Size())))
		if err != nil {
			return uttt.TerminationNone, fmt.Errorf("%w: generated move rejected: %w", ErrInvariantViolation, err)
		}
		pos = next
	}

	return pos.Termination(), nil
}
