package uttt

import (
	"fmt"
	"math/bits"
)

// Constants

const (
	StartingPosition string = "9/9/9/9/9/9/9/9/9 x -"

	// Stored in place of a board index when the side to move may play anywhere
	noForcedBoard uint8 = 15
)

// The full 9x9 position. Position is a value type: Apply returns a new
// position and never changes the receiver, so positions can be shared
// freely between search nodes and goroutines.
type Position struct {
	boards      [9]BitBoard
	meta        [9]BoardStatus // status of each local board
	forced      uint8
	turn        Player
	ply         uint32
	last        Move
	termination Termination
}

// Empty position, cross to move, free choice of the board
func NewPosition() Position {
	return Position{forced: noForcedBoard, last: MoveNone}
}

// Getters
func (p Position) Turn() Player {
	return p.turn
}

// Number of moves played (pieces on the board)
func (p Position) Ply() int {
	return int(p.ply)
}

// Last move applied, MoveNone for positions loaded from notation
func (p Position) LastMove() Move {
	return p.last
}

// Board the side to move must play in, false when it may choose any open board
func (p Position) ForcedBoard() (int, bool) {
	if p.forced == noForcedBoard {
		return -1, false
	}
	return int(p.forced), true
}

func (p Position) Board(index int) BitBoard {
	return p.boards[index]
}

// Get the meta-board, the status of every local board
func (p Position) Meta() [9]BoardStatus {
	return p.meta
}

func (p Position) Termination() Termination {
	return p.termination
}

func (p Position) IsTerminated() bool {
	return p.termination != TerminationNone
}

// Check if given move is legal, returns *IllegalMoveError if it's not
func (p Position) IsLegal(m Move) error {
	if !m.Valid() {
		return illegal(m, ReasonOutOfRange)
	}
	if p.termination != TerminationNone {
		return illegal(m, ReasonGameOver)
	}

	b := m.Board()
	if p.forced != noForcedBoard && b != int(p.forced) {
		return illegal(m, ReasonWrongBoard)
	}
	if p.meta[b] != BoardOpen {
		return illegal(m, ReasonBoardDecided)
	}
	if p.boards[b].Occupied()&(1<<m.Cell()) != 0 {
		return illegal(m, ReasonOccupied)
	}
	return nil
}

// Play the move for the side to move and return the resulting position.
// The receiver is a copy, so the caller's position stays untouched.
func (p Position) Apply(m Move) (Position, error) {
	if err := p.IsLegal(m); err != nil {
		return p, err
	}

	b, c := m.Board(), m.Cell()
	p.boards[b] = p.boards[b].place(c, p.turn)
	p.meta[b] = p.boards[b].Status()

	// Only a newly decided board can change the outcome
	if p.meta[b] != BoardOpen {
		p.termination = metaTermination(&p.meta)
	}

	// The opponent is sent to the board matching the cell we played,
	// unless that board is already decided
	p.forced = noForcedBoard
	if p.termination == TerminationNone && p.meta[c] == BoardOpen {
		p.forced = uint8(c)
	}

	p.turn = p.turn.Other()
	p.ply++
	p.last = m
	return p, nil
}

// Recompute every derived field from the cell masks alone, and compare it with
// the incrementally updated state
func (p Position) Validate() error {
	var cross, circle int
	for i := range p.boards {
		if p.boards[i].cells[Cross]&p.boards[i].cells[Circle] != 0 {
			return fmt.Errorf("%w: board %d has overlapping masks", ErrInvalidPosition, i)
		}
		cross += bits.OnesCount16(p.boards[i].cells[Cross])
		circle += bits.OnesCount16(p.boards[i].cells[Circle])
	}

	if cross+circle != int(p.ply) {
		return fmt.Errorf("%w: ply %d but %d pieces on the board", ErrInvalidPosition, p.ply, cross+circle)
	}

	// Cross moves first, so it's either equal or one piece ahead
	if diff := cross - circle; (p.turn == Cross && diff != 0) || (p.turn == Circle && diff != 1) {
		return fmt.Errorf("%w: %d cross and %d circle pieces with %s to move",
			ErrInvalidPosition, cross, circle, p.turn)
	}

	if meta := BatchStatus(&p.boards); meta != p.meta {
		return fmt.Errorf("%w: meta-board %v, rescan %v", ErrInvalidPosition, p.meta, meta)
	}

	if t := metaTermination(&p.meta); t != p.termination {
		return fmt.Errorf("%w: termination %s, rescan %s", ErrInvalidPosition, p.termination, t)
	}

	if p.forced != noForcedBoard {
		if p.forced > 8 || p.meta[p.forced] != BoardOpen || p.boards[p.forced].Empty() == 0 {
			return fmt.Errorf("%w: forced board %d is not playable", ErrInvalidPosition, p.forced)
		}
	}
	return nil
}

// Derive meta-board and termination from the cell masks, used after
// loading the position from the notation
func (p *Position) setupBoardState() {
	p.meta = BatchStatus(&p.boards)
	p.termination = metaTermination(&p.meta)

	// Don't allow playing on terminated ttt board
	if p.forced != noForcedBoard && (p.forced > 8 || p.meta[p.forced] != BoardOpen) {
		p.forced = noForcedBoard
	}
	if p.termination != TerminationNone {
		p.forced = noForcedBoard
	}
}
