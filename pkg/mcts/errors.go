package mcts

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Internal defect, like an ongoing position without legal moves
	ErrInvariantViolation = errors.New("invariant violation")
	ErrWorkerPanic        = errors.New("worker panicked")
	ErrInvalidConfig      = errors.New("invalid config")
	ErrGameOver           = errors.New("game is over")
	ErrNoResult           = errors.New("search produced no statistics")
)

// Failure of a single search worker
type WorkerError struct {
	Worker int
	Cycles int // iterations completed before the failure
	Err    error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("worker %d failed after %d cycles: %v", e.Worker, e.Cycles, e.Err)
}

func (e *WorkerError) Unwrap() error {
	return e.Err
}

// Returned by the coordinator when at least one worker failed,
// the search result is discarded in that case
type WorkerFailure struct {
	Failures []*WorkerError
}

func (e *WorkerFailure) Error() string {
	ids := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		ids[i] = fmt.Sprint(f.Worker)
	}

	msg := fmt.Sprintf("engine failure: worker(s) %s failed", strings.Join(ids, ", "))
	if len(e.Failures) > 0 {
		msg += ": " + e.Failures[0].Err.Error()
	}
	return msg
}

func (e *WorkerFailure) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}

// Ids of the failed workers
func (e *WorkerFailure) Workers() []int {
	ids := make([]int, len(e.Failures))
	for i, f := range e.Failures {
		ids[i] = f.Worker
	}
	return ids
}
