package mcts

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/IlikeChooros/go-uttt/pkg/uttt"
)

type TreeStats struct {
	maxdepth int
	cycles   int
	cps      uint32
}

// Single-threaded search over one tree. An engine and its tree are owned by
// one goroutine, only Stop may be called from another one.
type Engine struct {
	TreeStats
	Limiter   LimiterLike
	listener  StatsListener
	selection *UCB1
	rollout   RolloutFunc
	tree      *Tree
	rand      *rand.Rand
	id        int
}

// Create a new engine rooted at given position, rollouts will use a generator
// seeded with 'seed'
func NewEngine(root uttt.Position, explorationParam float64, seed int64) *Engine {
	return &Engine{
		Limiter:   NewLimiter(),
		listener:  NewStatsListener(),
		selection: NewUCB1(explorationParam),
		rollout:   RandomRollout,
		tree:      NewTree(root),
		rand:      rand.New(rand.NewSource(seed)),
	}
}

// Replace the rollout policy, nil restores RandomRollout
func (e *Engine) SetRollout(rollout RolloutFunc) {
	if rollout == nil {
		rollout = RandomRollout
	}
	e.rollout = rollout
}

func (e *Engine) SetListener(listener StatsListener) {
	e.listener = listener
}

func (e *Engine) StatsListener() *StatsListener {
	return &e.listener
}

func (e *Engine) SetExplorationParam(c float64) {
	e.selection.SetExplorationParam(c)
}

func (e *Engine) ExplorationParam() float64 {
	return e.selection.ExplorationParam
}

// Adds custom context to the limiter, enabling cancellation through it
func (e *Engine) SetContext(ctx context.Context) {
	e.Limiter.SetContext(ctx)
}

func (e *Engine) SetLimits(limits *Limits) {
	e.Limiter.SetLimits(limits)
}

func (e *Engine) Limits() *Limits {
	return e.Limiter.Limits()
}

// Stop the search, the current iteration is finished first
func (e *Engine) Stop() {
	e.Limiter.SetStop(true)
}

// Discard the tree and start over from given position
func (e *Engine) Reset(root uttt.Position) {
	e.tree = NewTree(root)
	e.TreeStats = TreeStats{}
}

func (e *Engine) Tree() *Tree {
	return e.tree
}

func (e *Engine) Root() *Node {
	return e.tree.Node(e.tree.Root())
}

// Maxiumum depth reached during the search
func (e *Engine) MaxDepth() int {
	return e.maxdepth
}

// Total number of iterations ran during the last search
func (e *Engine) Cycles() int {
	return e.cycles
}

// Get cycles per second statistic
func (e *Engine) Cps() uint32 {
	return e.cps
}

func (e *Engine) Size() int {
	return e.tree.Size()
}

// Get the reason why the search was stopped, valid after search ends
func (e *Engine) StopReason() StopReason {
	return e.Limiter.StopReason()
}

// Per-move statistics of the root
func (e *Engine) Table() Table {
	return e.tree.RootTable()
}

func (e *Engine) String() string {
	return fmt.Sprintf("Engine={Size=%d, Stats:{maxdepth=%d, cps=%d, cycles=%d}, Stop=%s}",
		e.Size(), e.MaxDepth(), e.Cps(), e.Cycles(), e.StopReason())
}
