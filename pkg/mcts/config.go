package mcts

import (
	"encoding/json"
	"fmt"
	"math"
	"runtime"
	"strings"
	"time"
)

// Options consumed by the search
type Config struct {
	ExplorationParam float64       `json:"exploration_constant"`
	Workers          int           `json:"worker_count"`
	Seed             *int64        `json:"seed,omitempty"`
	Iterations       uint32        `json:"iterations,omitempty"`
	Movetime         time.Duration `json:"movetime,omitempty"`
}

// UCT constant of sqrt(2), one worker per core, no budget set
func DefaultConfig() Config {
	return Config{
		ExplorationParam: DefaultExplorationParam,
		Workers:          runtime.NumCPU(),
	}
}

func (c Config) WithSeed(seed int64) Config {
	c.Seed = &seed
	return c
}

func (c Config) WithIterations(iterations uint32) Config {
	c.Iterations = iterations
	return c
}

func (c Config) WithMovetime(movetime time.Duration) Config {
	c.Movetime = movetime
	return c
}

func (c Config) WithWorkers(workers int) Config {
	c.Workers = workers
	return c
}

func (c Config) Validate() error {
	if math.IsNaN(c.ExplorationParam) || c.ExplorationParam < 0 {
		return fmt.Errorf("%w: exploration constant %v must be non-negative", ErrInvalidConfig, c.ExplorationParam)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: worker count %d must be positive", ErrInvalidConfig, c.Workers)
	}
	if c.Iterations == 0 && c.Movetime <= 0 {
		return fmt.Errorf("%w: either iterations or movetime must be set", ErrInvalidConfig)
	}
	return nil
}

// Master seed, taken from SeedGeneratorFn if the config doesn't set one
func (c Config) MasterSeed() int64 {
	if c.Seed != nil {
		return *c.Seed
	}
	return SeedGeneratorFn()
}

// Limits of the whole search, the coordinator splits the cycles between workers
func (c Config) Limits() *Limits {
	limits := DefaultLimits().SetThreads(c.Workers)
	if c.Iterations > 0 {
		limits.SetCycles(c.Iterations)
	}
	if c.Movetime > 0 {
		limits.SetMovetime(int(c.Movetime.Milliseconds()))
	}
	return limits
}

func (c Config) String() string {
	builder := strings.Builder{}
	_ = json.NewEncoder(&builder).Encode(c)
	return strings.TrimSpace(builder.String())
}
