package uttt

import (
	"fmt"
	"strings"
)

// Move packs (board index, cell index) as board<<4 | cell, so comparing
// two moves numerically orders them by board first, then by cell
type Move uint8

const (
	_moveBoardMask = 0b11110000
	_moveCellMask  = 0b1111

	MoveNone Move = 255
)

// Create a move, based on board and cell indexes. Indexes outside 0..8
// give MoveNone, which every position rejects.
func MakeMove(board, cell int) Move {
	if board < 0 || board > 8 || cell < 0 || cell > 8 {
		return MoveNone
	}
	return Move(cell | board<<4)
}

// Index of the local board this move is played on
func (m Move) Board() int {
	return int(m&_moveBoardMask) >> 4
}

// Index of the cell within the local board
func (m Move) Cell() int {
	return int(m & _moveCellMask)
}

// Linear index in 0..80, board*9 + cell
func (m Move) Index() int {
	return m.Board()*9 + m.Cell()
}

func (m Move) Valid() bool {
	return m.Board() < 9 && m.Cell() < 9
}

// Enum for the squares (same for the smaller ones)
const (
	A3 int = iota
	B3
	C3
	A2
	B2
	C2
	A1
	B1
	C1
)

// Get string representation of the move, will contain
// a/b/c 1/2/3 as coordinates, for example board = 7,
// cell = 2 -> <board part><cell part> -> B1c3
//
//	  A   B   C
//	  0 | 1 | 2  3
//	 -----------
//	  3 | 4 | 5  2
//	 -----------
//	  6 | 7 | 8  1
func (m Move) String() string {
	if !m.Valid() {
		return "(none)"
	}

	b, c := m.Board(), m.Cell()
	builder := strings.Builder{}
	builder.WriteByte('A' + byte(b%3))
	builder.WriteByte('3' - byte(b/3))
	builder.WriteByte('a' + byte(c%3))
	builder.WriteByte('3' - byte(c/3))
	return builder.String()
}

// Parse the move notation produced by Move.String
func MoveFromString(str string) (Move, error) {
	if len(str) != 4 {
		return MoveNone, fmt.Errorf("%w: move %q must have 4 characters", ErrInvalidNotation, str)
	}

	_cmp := func(i int, letter byte) bool {
		return (str[i] >= letter && str[i] <= letter+2) &&
			(str[i+1] >= '1' && str[i+1] <= '3')
	}

	if !_cmp(0, 'A') || !_cmp(2, 'a') {
		return MoveNone, fmt.Errorf("%w: move %q is out of range", ErrInvalidNotation, str)
	}

	return MakeMove(
		int((str[0]-'A')+('3'-str[1])*3),
		int((str[2]-'a')+('3'-str[3])*3)), nil
}

type MoveList struct {
	moves [9 * 9]Move
	size  uint8
}

func NewMoveList() *MoveList {
	return &MoveList{}
}

// Reset the movelist, simply sets the size to 0
func (ml *MoveList) Clear() {
	ml.size = 0
}

// Get the actual slice of valid moves
func (ml *MoveList) Slice() []Move {
	return ml.moves[0:ml.size]
}

func (ml *MoveList) Size() int {
	return int(ml.size)
}

// Get the i-th move, no bounds checking beyond the backing array
func (ml *MoveList) At(i int) Move {
	return ml.moves[i]
}

func (ml *MoveList) Append(board, cell int) {
	// Hot path, don't use MakeMove here
	ml.moves[ml.size] = Move((cell & _moveCellMask) | ((board << 4) & _moveBoardMask))
	ml.size++
}

func (ml *MoveList) Contains(m Move) bool {
	for _, v := range ml.Slice() {
		if v == m {
			return true
		}
	}
	return false
}

// Convert movelist into a string, uses move notation with space seperation
func (ml *MoveList) String() string {
	if ml.size == 0 {
		return "empty"
	}

	strMoves := make([]string, ml.size)
	for i, m := range ml.Slice() {
		strMoves[i] = m.String()
	}
	return strings.Join(strMoves, " ")
}
