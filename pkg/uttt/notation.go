package uttt

import (
	"fmt"
	"strconv"
	"strings"
)

// String notation for the ultimate tic tac toe position,
// much like the FEN representation of a chessboard:
//
//	X/X/X/X/X/X/X/X/X <turn> <forced board>
//
// where `X` is one local board, listing its cells 0..8 with 'x', 'o',
// and digits for runs of empty cells. For example the board
//
//	o | x | x
//	---------
//	x | o |
//	---------
//	o |   |
//
// is written as `oxxxo1o2`.
//
// <turn> - either 'o' or 'x'
//
// <forced board> - a digit 0-8, or '-' if the player can move anywhere
//
// Examples:
//
// * 9/9/9/9/9/9/9/9/9 x -
//
// * 9/9/9/7x1/4xo3/8x/9/4o4/o8 x 0
func (p Position) Notation() string {
	builder := strings.Builder{}

	for b := range p.boards {
		counter := 0
		for c := 0; c < 9; c++ {
			player, ok := p.boards[b].At(c)
			if !ok {
				counter++
				continue
			}
			if counter > 0 {
				builder.WriteString(strconv.Itoa(counter))
				counter = 0
			}
			builder.WriteString(player.String())
		}

		if counter > 0 {
			builder.WriteString(strconv.Itoa(counter))
		}
		if b != 8 {
			builder.WriteByte('/')
		}
	}

	builder.WriteByte(' ')
	builder.WriteString(p.turn.String())

	builder.WriteByte(' ')
	if p.forced == noForcedBoard {
		builder.WriteByte('-')
	} else {
		builder.WriteByte('0' + p.forced)
	}

	return builder.String()
}

func notationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidNotation, fmt.Sprintf(format, args...))
}

// Create the position from given notation string, "startpos" is an alias
// for the empty position. The loaded position must pass Validate.
func FromNotation(notation string) (Position, error) {
	if notation == "startpos" {
		notation = StartingPosition
	}

	sections := strings.Fields(notation)
	if len(sections) != 3 {
		return Position{}, notationError("expected 3 sections, got %d in %q", len(sections), notation)
	}

	squares := strings.Split(sections[0], "/")
	if len(squares) != 9 {
		return Position{}, notationError("expected 9 boards, got %d", len(squares))
	}

	pos := NewPosition()
	for b, square := range squares {
		cell := 0
		for i, v := range square {
			switch {
			case v == 'x' || v == 'o':
				if cell > 8 {
					return Position{}, notationError("too many cells within board %d", b)
				}
				player, _ := PlayerFromRune(v)
				pos.boards[b] = pos.boards[b].place(cell, player)
				cell++
			case '1' <= v && v <= '9':
				// Number, meaning skip given number of cells
				cell += int(v - '0')
				if cell > 9 {
					return Position{}, notationError("invalid number of skip cells %d in board %d at %d", cell, b, i)
				}
			default:
				return Position{}, notationError("invalid token %c in board %d", v, b)
			}
		}

		if cell != 9 {
			return Position{}, notationError("board %d has %d cells, expected 9", b, cell)
		}
		pos.ply += uint32(pos.boards[b].Count())
	}

	if len(sections[1]) != 1 {
		return Position{}, notationError("invalid side %q", sections[1])
	}
	turn, ok := PlayerFromRune(rune(sections[1][0]))
	if !ok {
		return Position{}, notationError("invalid side character %c", sections[1][0])
	}
	pos.turn = turn

	switch v := sections[2]; {
	case v == "-":
	case len(v) == 1 && v[0] >= '0' && v[0] <= '8':
		pos.forced = v[0] - '0'
	default:
		return Position{}, notationError("invalid forced board %q, expected a digit 0-8 or '-'", v)
	}

	pos.setupBoardState()
	if err := pos.Validate(); err != nil {
		return Position{}, fmt.Errorf("%w: %w", ErrInvalidNotation, err)
	}
	return pos, nil
}

// Replay the moves from the empty position
func FromMoves(moves []Move) (Position, error) {
	pos := NewPosition()
	for i, m := range moves {
		next, err := pos.Apply(m)
		if err != nil {
			return pos, fmt.Errorf("move %d: %w", i+1, err)
		}
		pos = next
	}
	return pos, nil
}

// Parse whitespace separated move notation, for example "B2b2 B2a3"
func ParseMoves(str string) ([]Move, error) {
	fields := strings.Fields(str)
	moves := make([]Move, 0, len(fields))
	for _, f := range fields {
		m, err := MoveFromString(f)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}
