package engine

import (
	"context"
	"fmt"

	"github.com/IlikeChooros/go-uttt/pkg/mcts"
	"github.com/IlikeChooros/go-uttt/pkg/uttt"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Game session: the current position, the moves that led to it and the
// search used to analyze it. Not safe for concurrent use, except for Stop.
type Engine struct {
	coordinator *mcts.Coordinator
	position    uttt.Position
	start       uttt.Position
	history     []uttt.Position // positions before each played move
	moves       []uttt.Move
	logger      zerolog.Logger
}

// Create a session at the starting position, fails if the config is invalid
func New(config mcts.Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		coordinator: mcts.NewCoordinator(config),
		position:    uttt.NewPosition(),
		start:       uttt.NewPosition(),
	}
	e.SetLogger(log.Logger)
	return e, nil
}

func (e *Engine) SetLogger(logger zerolog.Logger) {
	e.logger = logger.With().Str("component", "engine").Logger()
	e.coordinator.Logger = logger
}

func (e *Engine) Config() mcts.Config {
	return e.coordinator.Config
}

func (e *Engine) SetConfig(config mcts.Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	e.coordinator.Config = config
	return nil
}

// Listener for the main search worker
func (e *Engine) SetListener(listener mcts.StatsListener) {
	e.coordinator.SetListener(listener)
}

func (e *Engine) Position() uttt.Position {
	return e.position
}

// Moves played since the last SetNotation
func (e *Engine) Moves() []uttt.Move {
	return append([]uttt.Move(nil), e.moves...)
}

func (e *Engine) Termination() uttt.Termination {
	return e.position.Termination()
}

func (e *Engine) IsTerminated() bool {
	return e.position.IsTerminated()
}

// Play a move in the current position, illegal moves leave the session untouched
func (e *Engine) Play(m uttt.Move) error {
	next, err := e.position.Apply(m)
	if err != nil {
		return err
	}

	e.history = append(e.history, e.position)
	e.moves = append(e.moves, m)
	e.position = next

	e.logger.Debug().
		Str("move", m.String()).
		Int("ply", next.Ply()).
		Str("termination", next.Termination().String()).
		Msg("play")
	return nil
}

// Play a move given in notation, like "B2a3"
func (e *Engine) PlayString(move string) error {
	m, err := uttt.MoveFromString(move)
	if err != nil {
		return err
	}
	return e.Play(m)
}

// Take back the last move, returns false if there is nothing to undo
func (e *Engine) Undo() bool {
	if len(e.history) == 0 {
		return false
	}

	last := len(e.history) - 1
	e.position = e.history[last]
	e.history = e.history[:last]
	e.moves = e.moves[:last]
	return true
}

// Load a position, clearing the move history
func (e *Engine) SetNotation(notation string) error {
	pos, err := uttt.FromNotation(notation)
	if err != nil {
		return err
	}
	e.reset(pos)
	return nil
}

// Replay the moves from the starting position, the session is unchanged
// if any of them is illegal
func (e *Engine) SetMoves(moves []uttt.Move) error {
	session := Engine{position: uttt.NewPosition(), logger: zerolog.Nop()}
	for i, m := range moves {
		if err := session.Play(m); err != nil {
			return fmt.Errorf("move %d: %w", i+1, err)
		}
	}

	e.reset(uttt.NewPosition())
	e.position = session.position
	e.history = session.history
	e.moves = session.moves
	return nil
}

func (e *Engine) reset(pos uttt.Position) {
	e.start = pos
	e.position = pos
	e.history = e.history[:0]
	e.moves = e.moves[:0]
}

// Notation of the position the history starts from
func (e *Engine) StartNotation() string {
	return e.start.Notation()
}

// Search the current position and return the chosen move with its statistics
func (e *Engine) BestMove(ctx context.Context) (mcts.SearchResult, error) {
	return e.coordinator.Search(ctx, e.position)
}

// Search the current position and play the chosen move
func (e *Engine) PlayBest(ctx context.Context) (mcts.SearchResult, error) {
	result, err := e.BestMove(ctx)
	if err != nil {
		return result, err
	}
	if err := e.Play(result.BestMove); err != nil {
		return result, fmt.Errorf("%w: searched move rejected: %w", mcts.ErrInvariantViolation, err)
	}
	return result, nil
}

// Interrupt a running BestMove, which then returns the partial result
func (e *Engine) Stop() {
	e.coordinator.Stop()
}

func (e *Engine) String() string {
	return e.position.String()
}
