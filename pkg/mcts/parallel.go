package mcts

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/IlikeChooros/go-uttt/pkg/uttt"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Summary of one worker's search
type WorkerReport struct {
	Worker     int
	Seed       int64
	Cycles     int
	MaxDepth   int
	Size       int
	StopReason StopReason
	Table      Table
	Err        *WorkerError
}

type SearchResult struct {
	BestMove   uttt.Move
	Best       MoveStats
	Table      Table // merged over all workers
	Workers    []WorkerReport
	Cycles     int
	Elapsed    time.Duration
	Cps        uint32
	StopReason StopReason // reasons of all workers combined
}

func (r SearchResult) String() string {
	return fmt.Sprintf("bestmove %s visits %d cycles %d cps %d workers %d time %s stop %s",
		r.BestMove, r.Best.Visits, r.Cycles, r.Cps, len(r.Workers), r.Elapsed.Round(time.Millisecond), r.StopReason)
}

// Creates the rollout policy of given worker
type RolloutFactory func(worker int) RolloutFunc

// Root-parallel search: every worker builds its own tree from the same root,
// with its own random generator, and the root tables are merged once all of
// them are done
type Coordinator struct {
	Config   Config
	Logger   zerolog.Logger
	listener *StatsListener
	rollouts RolloutFactory

	mu       sync.Mutex
	searchId uint64
	running  map[uint64]context.CancelFunc
}

func NewCoordinator(config Config) *Coordinator {
	return &Coordinator{
		Config: config,
		Logger: log.Logger,
	}
}

// Listener attached to the main worker only
func (c *Coordinator) SetListener(listener StatsListener) {
	c.listener = &listener
}

func (c *Coordinator) SetRolloutFactory(f RolloutFactory) {
	c.rollouts = f
}

// Signal the workers of every search currently running on this coordinator
// to stop after their current iteration, each search then returns the
// statistics gathered so far. Searches started after the call are not affected.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cancel := range c.running {
		cancel()
	}
}

// Register the search's cancel function, the returned func removes it
func (c *Coordinator) track(cancel context.CancelFunc) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running == nil {
		c.running = make(map[uint64]context.CancelFunc)
	}
	c.searchId++
	id := c.searchId
	c.running[id] = cancel

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.running, id)
	}
}

// Cycles of given worker, the remainder goes to the first workers
func workerCycles(total uint32, workers, id int) uint32 {
	cycles := total / uint32(workers)
	if uint32(id) < total%uint32(workers) {
		cycles++
	}
	return cycles
}

func (c *Coordinator) workerLimits(id int) *Limits {
	limits := c.Config.Limits().SetThreads(1)
	if c.Config.Iterations > 0 {
		limits.SetCycles(workerCycles(c.Config.Iterations, c.Config.Workers, id))
	}
	return limits
}

// Run the search from 'root' and choose the most visited move. Cancelling
// the context stops the workers, their partial statistics are still merged.
// If any worker fails, a *WorkerFailure is returned instead of a move.
func (c *Coordinator) Search(ctx context.Context, root uttt.Position) (SearchResult, error) {
	if err := c.Config.Validate(); err != nil {
		return SearchResult{BestMove: uttt.MoveNone}, err
	}
	if root.IsTerminated() {
		return SearchResult{BestMove: uttt.MoveNone}, fmt.Errorf("%w: %s", ErrGameOver, root.Termination())
	}

	logger := c.Logger.With().Str("search", uuid.NewString()).Logger()
	master := c.Config.MasterSeed()
	workers := c.Config.Workers
	reports := make([]WorkerReport, workers)
	start := time.Now()

	logger.Debug().
		Int("workers", workers).
		Int64("seed", master).
		Uint32("iterations", c.Config.Iterations).
		Dur("movetime", c.Config.Movetime).
		Str("position", root.Notation()).
		Msg("search-start")

	engines := make([]*Engine, workers)
	for id := range engines {
		engine := NewEngine(root, c.Config.ExplorationParam, master+int64(id))
		engine.id = id
		engine.SetLimits(c.workerLimits(id))
		if c.rollouts != nil {
			engine.SetRollout(c.rollouts(id))
		}
		if id == mainWorkerId && c.listener != nil {
			engine.SetListener(*c.listener)
		}
		engines[id] = engine
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer c.track(cancel)()

	g, gctx := errgroup.WithContext(ctx)
	for id, engine := range engines {
		g.Go(func() (err error) {
			report := &reports[id]
			report.Worker = id
			report.Seed = master + int64(id)

			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: %v", ErrWorkerPanic, r)
				}
				if err != nil {
					report.Err = &WorkerError{Worker: id, Cycles: engine.Cycles(), Err: err}
					err = report.Err
				}
			}()

			engine.SetContext(gctx)
			err = engine.Search()

			report.Cycles = engine.Cycles()
			report.MaxDepth = engine.MaxDepth()
			report.Size = engine.Size()
			report.StopReason = engine.StopReason()
			if err != nil {
				return err
			}
			report.Table = engine.Table()

			logger.Debug().
				Int("worker", id).
				Int("cycles", report.Cycles).
				Int("maxdepth", report.MaxDepth).
				Int("size", report.Size).
				Str("stop", report.StopReason.String()).
				Msg("worker-done")
			return nil
		})
	}

	// Every error is kept in the reports, so the first one isn't special
	_ = g.Wait()

	failure := &WorkerFailure{}
	for i := range reports {
		if reports[i].Err != nil {
			failure.Failures = append(failure.Failures, reports[i].Err)
		}
	}
	if len(failure.Failures) > 0 {
		logger.Error().Err(failure).Ints("workers", failure.Workers()).Msg("search-failed")
		return SearchResult{BestMove: uttt.MoveNone, Workers: reports}, failure
	}

	result := merge(reports)
	result.Elapsed = time.Since(start)
	if ms := result.Elapsed.Milliseconds(); ms > 0 {
		result.Cps = uint32(int64(result.Cycles) * 1000 / ms)
	}

	best, ok := result.Table.Best()
	if !ok {
		return result, ErrNoResult
	}

	// Never hand out a move the position doesn't accept
	if err := root.IsLegal(best.Move); err != nil {
		return result, fmt.Errorf("%w: merged best move: %w", ErrInvariantViolation, err)
	}
	result.BestMove = best.Move
	result.Best = best

	logger.Info().
		Str("bestmove", best.Move.String()).
		Int("visits", best.Visits).
		Float64("reward", best.AvgReward()).
		Int("cycles", result.Cycles).
		Uint32("cps", result.Cps).
		Msg("search-done")
	return result, nil
}

// Sum the per-move counters of all workers
func merge(reports []WorkerReport) SearchResult {
	result := SearchResult{
		BestMove: uttt.MoveNone,
		Table:    make(Table),
		Workers:  reports,
	}
	for i := range reports {
		result.Table.Merge(reports[i].Table)
		result.Cycles += reports[i].Cycles
		result.StopReason |= reports[i].StopReason
	}
	return result
}
