package mcts

import (
	"math/rand"

	"github.com/IlikeChooros/go-uttt/pkg/uttt"
)

// Other types, which didn't fit to Engine or Node files

// Reward of a playout, from [0, 1] - 0 being a loss for the player who made
// the node's move and 1 being a win
type Result float64

// Plays the position until the end and returns the outcome, must only use
// the given random generator
type RolloutFunc func(pos uttt.Position, r *rand.Rand) (uttt.Termination, error)

type SeedGeneratorFnType func() int64
