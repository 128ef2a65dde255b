package uttt

import (
	"math/bits"
)

// Generate all possible moves in given position, ordered by board then cell
func (p Position) GenerateMoves() *MoveList {
	movelist := NewMoveList()
	p.AppendMoves(movelist)
	return movelist
}

// Same as GenerateMoves, but writes into given list (after clearing it),
// so the rollouts don't allocate
func (p Position) AppendMoves(movelist *MoveList) {
	movelist.Clear()
	if p.termination != TerminationNone {
		return
	}

	if p.forced != noForcedBoard {
		appendBoardMoves(movelist, int(p.forced), p.boards[p.forced].Empty())
		return
	}

	for b := 0; b < 9; b++ {
		if p.meta[b] != BoardOpen {
			continue
		}
		appendBoardMoves(movelist, b, p.boards[b].Empty())
	}
}

func appendBoardMoves(movelist *MoveList, board int, free uint16) {
	for free != 0 {
		movelist.Append(board, bits.TrailingZeros16(free))
		free &= free - 1
	}
}

// Number of legal moves, without building the list
func (p Position) MoveCount() int {
	if p.termination != TerminationNone {
		return 0
	}
	if p.forced != noForcedBoard {
		return bits.OnesCount16(p.boards[p.forced].Empty())
	}

	count := 0
	for b := 0; b < 9; b++ {
		if p.meta[b] == BoardOpen {
			count += bits.OnesCount16(p.boards[b].Empty())
		}
	}
	return count
}
