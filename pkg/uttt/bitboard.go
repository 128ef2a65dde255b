package uttt

import (
	"fmt"
	"math/bits"
)

const fullBoardMask uint16 = 0b111111111

// horizontal, vertical and diagonal patterns as bitboards
var _winningBitboardPatterns = [8]uint16{
	0b111000000, 0b000111000, 0b000000111,
	0b100100100, 0b010010010, 0b001001001,
	0b100010001, 0b001010100,
}

// Single 3x3 board, one 9-bit mask per player. The masks are mutually exclusive.
type BitBoard struct {
	cells [2]uint16
}

// Build a board from raw player masks, fails if the masks overlap or
// use bits above the 9th cell
func NewBitBoard(cross, circle uint16) (BitBoard, error) {
	if (cross|circle)&^fullBoardMask != 0 {
		return BitBoard{}, fmt.Errorf("%w: masks %09b/%09b exceed 9 cells", ErrInvalidPosition, cross, circle)
	}
	if cross&circle != 0 {
		return BitBoard{}, fmt.Errorf("%w: masks %09b/%09b overlap", ErrInvalidPosition, cross, circle)
	}
	return BitBoard{cells: [2]uint16{cross, circle}}, nil
}

func (b BitBoard) Mask(p Player) uint16 {
	return b.cells[p]
}

func (b BitBoard) Occupied() uint16 {
	return b.cells[Cross] | b.cells[Circle]
}

func (b BitBoard) Empty() uint16 {
	return fullBoardMask &^ b.Occupied()
}

func (b BitBoard) Count() int {
	return bits.OnesCount16(b.Occupied())
}

// Returns the owner of the cell, if there is one
func (b BitBoard) At(cell int) (Player, bool) {
	bit := uint16(1) << cell
	switch {
	case b.cells[Cross]&bit != 0:
		return Cross, true
	case b.cells[Circle]&bit != 0:
		return Circle, true
	}
	return Cross, false
}

func lineWon(mask uint16) bool {
	for i := 0; i < 8; i++ {
		if mask&_winningBitboardPatterns[i] == _winningBitboardPatterns[i] {
			return true
		}
	}
	return false
}

// Status of the board, a line wins immediately, a full board without
// any line is a draw
func (b BitBoard) Status() BoardStatus {
	if lineWon(b.cells[Cross]) {
		return BoardCrossWon
	}
	if lineWon(b.cells[Circle]) {
		return BoardCircleWon
	}
	if b.Occupied() == fullBoardMask {
		return BoardDrawn
	}
	return BoardOpen
}

// Empty cells when the board is open, 0 otherwise
func (b BitBoard) LegalCells() uint16 {
	if b.Status() != BoardOpen {
		return 0
	}
	return b.Empty()
}

// Put player's piece on the cell, fails if the cell is taken or the board
// is already decided
func (b BitBoard) Place(cell int, p Player) (BitBoard, error) {
	if cell < 0 || cell > 8 {
		return b, fmt.Errorf("%w: cell %d: %s", ErrIllegalMove, cell, ReasonOutOfRange)
	}
	if b.Status() != BoardOpen {
		return b, fmt.Errorf("%w: cell %d: %s", ErrIllegalMove, cell, ReasonBoardDecided)
	}
	if b.Occupied()&(1<<cell) != 0 {
		return b, fmt.Errorf("%w: cell %d: %s", ErrIllegalMove, cell, ReasonOccupied)
	}
	return b.place(cell, p), nil
}

func (b BitBoard) place(cell int, p Player) BitBoard {
	b.cells[p] |= 1 << cell
	return b
}

// Batched evaluation of all nine boards. Each board takes a 16-bit lane,
// four lanes per word, so every winning pattern is tested against four
// boards with a single subtraction.
const (
	_laneLow  uint64 = 0x0001000100010001
	_laneHigh uint64 = 0x8000800080008000
)

var _laneWinPatterns = func() (p [8]uint64) {
	for i, pattern := range _winningBitboardPatterns {
		p[i] = uint64(pattern) * _laneLow
	}
	return p
}()

var _laneFull = uint64(fullBoardMask) * _laneLow

type lanes [3]uint64

func packLanes(boards *[9]BitBoard, owner func(BitBoard) uint16) (l lanes) {
	for i := range boards {
		l[i/4] |= uint64(owner(boards[i])) << (16 * (i % 4))
	}
	return l
}

// High bit of every lane that equals zero
func zeroLanes(w uint64) uint64 {
	return ^((w | _laneHigh) - _laneLow) & _laneHigh
}

// Collect the per-lane high bits into a 9-bit board mask
func (l lanes) boardMask() uint16 {
	var mask uint16
	for i := 0; i < 9; i++ {
		mask |= uint16((l[i/4]>>(16*(i%4)+15))&1) << i
	}
	return mask
}

func winLanes(l lanes) uint16 {
	var won lanes
	for _, pattern := range _laneWinPatterns {
		for w := range l {
			won[w] |= zeroLanes((l[w] & pattern) ^ pattern)
		}
	}
	return won.boardMask()
}

func fullLanes(l lanes) uint16 {
	var full lanes
	for w := range l {
		full[w] = zeroLanes(l[w] ^ _laneFull)
	}
	return full.boardMask()
}

// Evaluate the status of all nine boards at once
func BatchStatus(boards *[9]BitBoard) [9]BoardStatus {
	crossWon := winLanes(packLanes(boards, func(b BitBoard) uint16 { return b.cells[Cross] }))
	circleWon := winLanes(packLanes(boards, func(b BitBoard) uint16 { return b.cells[Circle] }))
	full := fullLanes(packLanes(boards, BitBoard.Occupied))

	var statuses [9]BoardStatus
	for i := range statuses {
		bit := uint16(1) << i
		switch {
		case crossWon&bit != 0:
			statuses[i] = BoardCrossWon
		case circleWon&bit != 0:
			statuses[i] = BoardCircleWon
		case full&bit != 0:
			statuses[i] = BoardDrawn
		default:
			statuses[i] = BoardOpen
		}
	}
	return statuses
}
