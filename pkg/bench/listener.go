package bench

import (
	"github.com/rs/zerolog"
)

// Receives the arena progress, called concurrently from every arena worker
type ListenerLike interface {
	OnMoveMade(info VersusWorkerInfo)
	OnFinishedGame(info VersusWorkerInfo)
	OnFinishedWork(info VersusWorkerInfo)
	Summary(summary VersusSummaryInfo)
}

// Logs finished games and the final summary
type DefaultListener struct {
	logger zerolog.Logger
}

func NewDefaultListener(logger zerolog.Logger) *DefaultListener {
	return &DefaultListener{logger: logger.With().Str("component", "arena").Logger()}
}

func (d *DefaultListener) OnMoveMade(info VersusWorkerInfo) {
	if len(info.Moves) == 0 {
		return
	}
	d.logger.Trace().
		Int("worker", info.WorkerID).
		Int("game", info.FinishedGames+1).
		Str("move", info.Moves[len(info.Moves)-1].String()).
		Msg("move")
}

func (d *DefaultListener) OnFinishedGame(info VersusWorkerInfo) {
	d.logger.Debug().
		Int("worker", info.WorkerID).
		Int("game", info.FinishedGames).
		Int("games", info.NGames).
		Int("moves", info.GameMoveNum).
		Bool("p1_first", info.P1WentFirst).
		Str("result", info.Result.String()).
		Str("termination", info.Position.Termination().String()).
		Msg("game-done")
}

func (d *DefaultListener) OnFinishedWork(info VersusWorkerInfo) {
	d.logger.Debug().
		Int("worker", info.WorkerID).
		Int("games", info.FinishedGames).
		Int("p1_wins", info.P1Wins).
		Int("p2_wins", info.P2Wins).
		Int("draws", info.Draws).
		Msg("worker-done")
}

func (d *DefaultListener) Summary(summary VersusSummaryInfo) {
	d.logger.Info().
		Str("player1", summary.P1Name).
		Str("player2", summary.P2Name).
		Int("games", summary.TotalGames).
		Int("p1_wins", summary.P1Wins).
		Int("p2_wins", summary.P2Wins).
		Int("draws", summary.Draws).
		Int("first_to_move_wins", summary.FirstToMoveWins).
		Int("second_to_move_wins", summary.SecondToMoveWins).
		Msg("arena-done")
}
