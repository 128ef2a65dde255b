package bench

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/IlikeChooros/go-uttt/pkg/engine"
	"github.com/IlikeChooros/go-uttt/pkg/mcts"
	"github.com/IlikeChooros/go-uttt/pkg/uttt"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

/*
Arena benchmark subpackage, allows to play a series of games between two
different search configurations.
*/

type VersusArena struct {
	VersusArenaStats
	Player1  mcts.Config
	Player2  mcts.Config
	P1Name   string
	P2Name   string
	NGames   int
	NThreads int
	Position uttt.Position
	Logger   zerolog.Logger
	ctx      context.Context
}

func NewVersusArena(player1, player2 mcts.Config) *VersusArena {
	return &VersusArena{
		Player1:  player1,
		Player2:  player2,
		P1Name:   "player1",
		P2Name:   "player2",
		NGames:   100,
		NThreads: 2,
		Position: uttt.NewPosition(),
		Logger:   log.Logger,
		ctx:      context.Background(),
	}
}

func (va *VersusArena) WithContext(ctx context.Context) *VersusArena {
	va.ctx = ctx
	return va
}

func (va *VersusArena) Setup(nGames, nThreads int) {
	va.NGames = nGames
	va.NThreads = max(nThreads, 1)
}

// Play all games, distributed equally between the worker goroutines, and
// block until they are done. Cancelling the context abandons the games in
// progress, the finished ones are still counted.
func (va *VersusArena) Run(listener ListenerLike) (VersusSummaryInfo, error) {
	if listener == nil {
		listener = NewDefaultListener(va.Logger)
	}
	for _, config := range []mcts.Config{va.Player1, va.Player2} {
		if err := config.Validate(); err != nil {
			return VersusSummaryInfo{}, err
		}
	}

	g, ctx := errgroup.WithContext(va.ctx)
	nGames := va.NGames / va.NThreads
	rest := va.NGames % va.NThreads

	for i := range va.NThreads {
		games := nGames
		if i < rest {
			games++
		}
		g.Go(func() error {
			return va.worker(ctx, i, games, listener)
		})
	}

	err := g.Wait()
	summary := VersusSummaryInfo{
		TotalGames:       va.Total(),
		P1Wins:           va.P1Wins(),
		P2Wins:           va.P2Wins(),
		FirstToMoveWins:  va.FirstToMoveWins(),
		SecondToMoveWins: va.SecondToMoveWins(),
		Draws:            va.Draws(),
		Workers:          va.NThreads,
		P1Name:           va.P1Name,
		P2Name:           va.P2Name,
	}
	listener.Summary(summary)
	return summary, err
}

func (va *VersusArena) newPlayer(config mcts.Config) (*engine.Engine, error) {
	e, err := engine.New(config)
	if err != nil {
		return nil, err
	}
	e.SetLogger(va.Logger)
	return e, nil
}

func (va *VersusArena) worker(ctx context.Context, id, nGames int, listener ListenerLike) error {
	r := rand.New(rand.NewSource(mcts.SeedGeneratorFn() + int64(id)))
	p1, err := va.newPlayer(va.Player1)
	if err != nil {
		return err
	}
	p2, err := va.newPlayer(va.Player2)
	if err != nil {
		return err
	}

	local := VersusWorkerInfo{WorkerID: id, NGames: nGames, P1Name: va.P1Name, P2Name: va.P2Name}

	for i := range nGames {
		p1WentFirst := r.Intn(2) == 0
		first, second := p1, p2
		if !p1WentFirst {
			first, second = p2, p1
		}

		info := local
		info.FinishedGames = i
		info.P1WentFirst = p1WentFirst

		pos, moves, err := va.playGame(ctx, first, second, listener, info)
		if err != nil {
			return err
		}
		if !pos.IsTerminated() {
			// cancelled mid-game
			break
		}

		outcome := computeOutcome(pos.Termination(), va.Position.Turn())
		result := toAgentResult(outcome, p1WentFirst)
		va.add(result, outcome)

		switch result {
		case VersusPl1Win:
			local.P1Wins++
		case VersusPl2Win:
			local.P2Wins++
		default:
			local.Draws++
		}
		local.FinishedGames = i + 1

		info = local
		info.Moves = moves
		info.GameMoveNum = len(moves)
		info.Position = pos
		info.Result = result
		info.P1WentFirst = p1WentFirst
		listener.OnFinishedGame(info)
	}

	listener.OnFinishedWork(local)
	return nil
}

// Play one game from the arena's position, 'first' moves first. Every
// searched move is checked against the game position before it is played.
func (va *VersusArena) playGame(
	ctx context.Context, first, second *engine.Engine,
	listener ListenerLike, info VersusWorkerInfo,
) (uttt.Position, []uttt.Move, error) {
	notation := va.Position.Notation()
	for _, player := range []*engine.Engine{first, second} {
		if err := player.SetNotation(notation); err != nil {
			return va.Position, nil, err
		}
	}

	pos := va.Position
	moves := make([]uttt.Move, 0, 81)
	toMove, waiting := first, second

	for !pos.IsTerminated() {
		if ctx.Err() != nil {
			return pos, moves, nil
		}

		result, err := toMove.BestMove(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return pos, moves, nil
			}
			return pos, moves, err
		}

		next, err := pos.Apply(result.BestMove)
		if err != nil {
			return pos, moves, fmt.Errorf("%w: engine played %s in %s: %w",
				mcts.ErrInvariantViolation, result.BestMove, pos.Notation(), err)
		}
		for _, player := range []*engine.Engine{toMove, waiting} {
			if err := player.Play(result.BestMove); err != nil {
				return pos, moves, err
			}
		}

		pos = next
		moves = append(moves, result.BestMove)
		toMove, waiting = waiting, toMove

		info.Moves = moves
		info.GameMoveNum = len(moves)
		info.Position = pos
		listener.OnMoveMade(info)
	}

	return pos, moves, nil
}
