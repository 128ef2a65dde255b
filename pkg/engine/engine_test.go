package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/IlikeChooros/go-uttt/pkg/mcts"
	"github.com/IlikeChooros/go-uttt/pkg/uttt"
	"github.com/rs/zerolog"
)

func newEngine(t *testing.T, config mcts.Config) *Engine {
	t.Helper()
	e, err := New(config)
	if err != nil {
		t.Fatal(err)
	}
	e.SetLogger(zerolog.New(zerolog.NewTestWriter(t)))
	return e
}

func testConfig() mcts.Config {
	return mcts.DefaultConfig().WithWorkers(2).WithSeed(42).WithIterations(2000)
}

func TestNewInvalidConfig(t *testing.T) {
	if _, err := New(mcts.DefaultConfig()); !errors.Is(err, mcts.ErrInvalidConfig) {
		t.Errorf("New() without budget err = %v, want ErrInvalidConfig", err)
	}
	e := newEngine(t, testConfig())
	if err := e.SetConfig(testConfig().WithWorkers(0)); !errors.Is(err, mcts.ErrInvalidConfig) {
		t.Errorf("SetConfig() err = %v", err)
	}
	if e.Config().Workers != 2 {
		t.Errorf("invalid config was applied: %s", e.Config())
	}
}

func TestPlayAndUndo(t *testing.T) {
	e := newEngine(t, testConfig())

	if err := e.PlayString("A3b2"); err != nil {
		t.Fatal(err)
	}
	if board, ok := e.Position().ForcedBoard(); !ok || board != 4 {
		t.Errorf("ForcedBoard() = %d, %v, want 4", board, ok)
	}

	t.Run("illegal move keeps the session", func(t *testing.T) {
		before := e.Position()
		err := e.Play(uttt.MakeMove(0, 0))

		var illegal *uttt.IllegalMoveError
		if !errors.As(err, &illegal) || illegal.Reason != uttt.ReasonWrongBoard {
			t.Errorf("Play() err = %v, want wrong board", err)
		}
		if e.Position() != before || len(e.Moves()) != 1 {
			t.Error("illegal move changed the session")
		}
	})

	if err := e.Play(uttt.MakeMove(4, 0)); err != nil {
		t.Fatal(err)
	}
	if got := len(e.Moves()); got != 2 {
		t.Fatalf("Moves() has %d moves, want 2", got)
	}

	if !e.Undo() || !e.Undo() {
		t.Fatal("Undo() failed")
	}
	if e.Undo() {
		t.Error("Undo() on the starting position succeeded")
	}
	if e.Position() != uttt.NewPosition() {
		t.Errorf("after undo got %s", e.Position().Notation())
	}

	if err := e.PlayString("Z9"); !errors.Is(err, uttt.ErrInvalidNotation) {
		t.Errorf("PlayString() err = %v, want ErrInvalidNotation", err)
	}
}

func TestSetNotation(t *testing.T) {
	e := newEngine(t, testConfig())
	_ = e.PlayString("A3b2")

	const notation = "oo7/9/9/9/xxx6/9/9/9/9 o -"
	if err := e.SetNotation(notation); err != nil {
		t.Fatal(err)
	}
	if e.Position().Notation() != notation || e.StartNotation() != notation {
		t.Errorf("Notation() = %s", e.Position().Notation())
	}
	if len(e.Moves()) != 0 || e.Undo() {
		t.Error("SetNotation() should clear the history")
	}

	if err := e.SetNotation("9/9/9 x -"); !errors.Is(err, uttt.ErrInvalidNotation) {
		t.Errorf("SetNotation() err = %v, want ErrInvalidNotation", err)
	}
	if e.Position().Notation() != notation {
		t.Error("invalid notation changed the position")
	}
}

func TestSetMoves(t *testing.T) {
	e := newEngine(t, testConfig())
	moves, err := uttt.ParseMoves("A3b2 B2a3")
	if err != nil {
		t.Fatal(err)
	}
	if err := e.SetMoves(moves); err != nil {
		t.Fatal(err)
	}
	if len(e.Moves()) != 2 || e.Position().Ply() != 2 {
		t.Errorf("SetMoves() ply = %d", e.Position().Ply())
	}

	before := e.Position()
	bad := []uttt.Move{uttt.MakeMove(0, 4), uttt.MakeMove(0, 0)}
	if err := e.SetMoves(bad); !errors.Is(err, uttt.ErrIllegalMove) {
		t.Errorf("SetMoves() err = %v, want ErrIllegalMove", err)
	}
	if e.Position() != before {
		t.Error("rejected move sequence changed the position")
	}
}

func TestPlayBest(t *testing.T) {
	e := newEngine(t, testConfig())
	ctx := context.Background()

	for e.Position().Ply() < 4 {
		before := e.Position()
		result, err := e.PlayBest(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if err := before.IsLegal(result.BestMove); err != nil {
			t.Fatalf("played illegal move %s: %v", result.BestMove, err)
		}
		if result.Cycles != 2000 {
			t.Errorf("cycles = %d, want 2000", result.Cycles)
		}
	}
}

func TestBestMoveGameOver(t *testing.T) {
	e := newEngine(t, testConfig())
	if err := e.SetNotation("xxx6/xxx6/xxx6/oo1oo4/oo1oo4/9/9/9/9 o -"); err != nil {
		t.Fatal(err)
	}
	if !e.IsTerminated() || e.Termination() != uttt.TerminationCrossWon {
		t.Fatalf("Termination() = %s", e.Termination())
	}
	if _, err := e.BestMove(context.Background()); !errors.Is(err, mcts.ErrGameOver) {
		t.Errorf("BestMove() err = %v, want ErrGameOver", err)
	}
}
