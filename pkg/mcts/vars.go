package mcts

import (
	"math"
	"time"
)

// Main worker id, which has some privileges, like calling the listener during the search
const mainWorkerId = 0

// Exploration parameter used in UCB1 formula, higher values increase exploration
// while lower values increase exploitation
const DefaultExplorationParam float64 = math.Sqrt2

var SeedGeneratorFn SeedGeneratorFnType = func() int64 {
	return time.Now().UnixNano()
}

// Set custom seed generator function, used when the config doesn't
// specify a seed, by default uses current time in nanoseconds
func SetSeedGeneratorFn(f SeedGeneratorFnType) {
	if f != nil {
		SeedGeneratorFn = f
	}
}
