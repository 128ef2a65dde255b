package bench

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/IlikeChooros/go-uttt/pkg/mcts"
	"github.com/IlikeChooros/go-uttt/pkg/uttt"
	"github.com/rs/zerolog"
)

func TestMain(m *testing.M) {
	mcts.SetSeedGeneratorFn(func() int64 {
		return 42
	})
	fmt.Printf("Using seed %d\n", mcts.SeedGeneratorFn())

	os.Exit(m.Run())
}

// Keeps every finished game
type recordingListener struct {
	*DefaultListener
	mu       sync.Mutex
	games    []VersusWorkerInfo
	moves    int
	summary  VersusSummaryInfo
	finished int
}

func (l *recordingListener) OnMoveMade(info VersusWorkerInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.moves++
}

func (l *recordingListener) OnFinishedGame(info VersusWorkerInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()
	info.Moves = append([]uttt.Move(nil), info.Moves...)
	l.games = append(l.games, info)
}

func (l *recordingListener) OnFinishedWork(info VersusWorkerInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.finished++
}

func (l *recordingListener) Summary(summary VersusSummaryInfo) {
	l.DefaultListener.Summary(summary)
	l.summary = summary
}

func newTestArena(t *testing.T) *VersusArena {
	strong := mcts.DefaultConfig().WithWorkers(1).WithIterations(300)
	weak := mcts.DefaultConfig().WithWorkers(1).WithIterations(20)

	arena := NewVersusArena(strong, weak)
	arena.P1Name, arena.P2Name = "strong", "weak"
	arena.Logger = zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.InfoLevel)
	return arena
}

func TestVersusArena(t *testing.T) {
	arena := newTestArena(t)
	arena.Setup(3, 2)

	listener := &recordingListener{DefaultListener: NewDefaultListener(arena.Logger)}
	summary, err := arena.Run(listener)
	if err != nil {
		t.Fatal(err)
	}

	if summary.TotalGames != 3 || summary.P1Wins+summary.P2Wins+summary.Draws != 3 {
		t.Errorf("summary = %+v, want 3 games", summary)
	}
	if summary.FirstToMoveWins+summary.SecondToMoveWins != summary.P1Wins+summary.P2Wins {
		t.Errorf("first/second to move wins don't add up: %+v", summary)
	}
	if listener.summary != summary || listener.finished != 2 {
		t.Errorf("listener got summary %+v, %d finished workers", listener.summary, listener.finished)
	}

	total := 0
	for _, game := range listener.games {
		total += game.GameMoveNum

		// Replaying the moves has to reach the same finished position
		pos, err := uttt.FromMoves(game.Moves)
		if err != nil {
			t.Fatalf("worker %d game replay: %v", game.WorkerID, err)
		}
		if pos != game.Position || !pos.IsTerminated() {
			t.Errorf("replayed position %s, want %s", pos.Notation(), game.Position.Notation())
		}

		outcome := computeOutcome(pos.Termination(), uttt.Cross)
		if got := toAgentResult(outcome, game.P1WentFirst); got != game.Result {
			t.Errorf("game result = %s, want %s", game.Result, got)
		}
	}
	if len(listener.games) != 3 || listener.moves != total {
		t.Errorf("recorded %d games with %d moves, OnMoveMade called %d times", len(listener.games), total, listener.moves)
	}
}

func TestVersusArenaCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	arena := newTestArena(t).WithContext(ctx)
	arena.Setup(4, 2)
	summary, err := arena.Run(nil)
	if err != nil {
		t.Fatal(err)
	}
	if summary.TotalGames != 0 {
		t.Errorf("cancelled arena played %d games", summary.TotalGames)
	}
}

func TestVersusArenaInvalidConfig(t *testing.T) {
	arena := NewVersusArena(mcts.DefaultConfig(), mcts.DefaultConfig().WithIterations(10))
	if _, err := arena.Run(nil); !errors.Is(err, mcts.ErrInvalidConfig) {
		t.Errorf("Run() err = %v, want ErrInvalidConfig", err)
	}
}

func TestToAgentResult(t *testing.T) {
	tests := []struct {
		termination uttt.Termination
		p1First     bool
		want        VersusMatchResult
	}{
		{uttt.TerminationCrossWon, true, VersusPl1Win},
		{uttt.TerminationCrossWon, false, VersusPl2Win},
		{uttt.TerminationCircleWon, true, VersusPl2Win},
		{uttt.TerminationCircleWon, false, VersusPl1Win},
		{uttt.TerminationDraw, true, VersusDraw},
	}

	for _, tt := range tests {
		outcome := computeOutcome(tt.termination, uttt.Cross)
		if got := toAgentResult(outcome, tt.p1First); got != tt.want {
			t.Errorf("%s, p1 first %v: got %s, want %s", tt.termination, tt.p1First, got, tt.want)
		}
	}
}
