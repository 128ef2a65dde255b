package uttt

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func TestNotationRoundTrip(t *testing.T) {
	notations := []string{
		StartingPosition,
		"1x7/2o6/x8/9/9/9/9/9/9 o -",
		"9/9/9/7x1/4xo3/8x/9/4o4/o8 x 0",
		"xxx6/xxx6/xxx6/oo1oo4/oo1oo4/9/9/9/9 o -",
	}

	for _, notation := range notations {
		t.Run(strings.ReplaceAll(notation, "/", "|"), func(t *testing.T) {
			pos, err := FromNotation(notation)
			if err != nil {
				t.Fatal(err)
			}
			if got := pos.Notation(); got != notation {
				t.Errorf("Notation() = %q, want %q", got, notation)
			}
		})
	}
}

func TestStartposAlias(t *testing.T) {
	pos, err := FromNotation("startpos")
	if err != nil {
		t.Fatal(err)
	}
	if pos != NewPosition() {
		t.Errorf("startpos differs from NewPosition():\n%s", pos)
	}
}

func TestInvalidNotation(t *testing.T) {
	notations := []string{
		"",
		"9/9/9 x -",
		"9/9/9/9/9/9/9/9/9 z -",
		"9/9/9/9/9/9/9/9/8 x -",
		"9/9/9/9/9/9/9/9/9 x 9",
		"x9/9/9/9/9/9/9/9/9 o -",
		"9/9/9/9/9/9/9/9/9k x -",
		// cross to move, but cross already has a piece more
		"x8/9/9/9/9/9/9/9/9 x -",
	}

	for _, notation := range notations {
		t.Run(notation, func(t *testing.T) {
			if _, err := FromNotation(notation); !errors.Is(err, ErrInvalidNotation) {
				t.Errorf("FromNotation(%q) error = %v, want ErrInvalidNotation", notation, err)
			}
		})
	}
}

func TestMoveNotation(t *testing.T) {
	if s := MakeMove(7, 2).String(); s != "B1c3" {
		t.Errorf("MakeMove(7, 2).String() = %s, want B1c3", s)
	}

	for idx := 0; idx < 81; idx++ {
		m := MakeMove(idx/9, idx%9)
		parsed, err := MoveFromString(m.String())
		if err != nil {
			t.Fatal(err)
		}
		if parsed != m || parsed.Index() != idx {
			t.Fatalf("MoveFromString(%s) = %v, want %v", m, parsed, m)
		}
	}

	for _, str := range []string{"", "D1a1", "A4a1", "A1d1", "a1A1", "A1a"} {
		if _, err := MoveFromString(str); !errors.Is(err, ErrInvalidNotation) {
			t.Errorf("MoveFromString(%q) error = %v", str, err)
		}
	}
}

func TestMakeMoveOutOfRange(t *testing.T) {
	tests := []struct{ board, cell int }{
		{4, 20}, {16, 4}, {-1, 0}, {0, 9}, {9, 0}, {0, -1},
	}

	for _, tt := range tests {
		m := MakeMove(tt.board, tt.cell)
		if m != MoveNone || m.Valid() {
			t.Errorf("MakeMove(%d, %d) = %s (board %d, cell %d), want MoveNone",
				tt.board, tt.cell, m, m.Board(), m.Cell())
		}
		if _, err := NewPosition().Apply(m); !errors.Is(err, ErrIllegalMove) {
			t.Errorf("Apply(MakeMove(%d, %d)) error = %v, want ErrIllegalMove", tt.board, tt.cell, err)
		}
	}
}

func TestFromMoves(t *testing.T) {
	moves, err := ParseMoves("A3b2 B2a3")
	if err != nil {
		t.Fatal(err)
	}
	if moves[0] != MakeMove(0, 4) || moves[1] != MakeMove(4, 0) {
		t.Fatalf("ParseMoves = %v", moves)
	}

	pos, err := FromMoves(moves)
	if err != nil {
		t.Fatal(err)
	}
	if b, ok := pos.ForcedBoard(); !ok || b != 0 {
		t.Errorf("ForcedBoard() = %d, %v, want 0", b, ok)
	}

	_, err = FromMoves([]Move{MakeMove(0, 4), MakeMove(0, 0)})
	if !errors.Is(err, ErrIllegalMove) {
		t.Errorf("FromMoves with wrong board: error = %v", err)
	}
}

// Replaying a random game and reloading its notation after every move must
// reproduce the same meta-board and outcome
func TestNotationReplay(t *testing.T) {
	r := rand.New(rand.NewSource(3))

	for game := 0; game < 200; game++ {
		pos := NewPosition()
		history := make([]Move, 0, 81)

		for !pos.IsTerminated() {
			moves := pos.GenerateMoves()
			m := moves.At(r.Intn(moves.Size()))
			history = append(history, m)

			next, err := pos.Apply(m)
			if err != nil {
				t.Fatal(err)
			}
			pos = next

			loaded, err := FromNotation(pos.Notation())
			if err != nil {
				t.Fatalf("FromNotation(%q): %v", pos.Notation(), err)
			}
			if loaded.Meta() != pos.Meta() || loaded.Termination() != pos.Termination() {
				t.Fatalf("reloaded %q: meta %v/%v termination %s/%s",
					pos.Notation(), loaded.Meta(), pos.Meta(), loaded.Termination(), pos.Termination())
			}
			if loaded.Notation() != pos.Notation() {
				t.Fatalf("Notation() = %q, want %q", loaded.Notation(), pos.Notation())
			}
		}

		replayed, err := FromMoves(history)
		if err != nil {
			t.Fatal(err)
		}
		if replayed != pos {
			t.Fatalf("replayed position differs:\n%s\n%s", replayed, pos)
		}
	}
}
