package uttt

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalMove     = errors.New("illegal move")
	ErrInvalidNotation = errors.New("invalid notation")
	ErrInvalidPosition = errors.New("invalid position")
)

type IllegalReason uint8

const (
	ReasonOutOfRange IllegalReason = iota
	ReasonGameOver
	ReasonWrongBoard
	ReasonBoardDecided
	ReasonOccupied
)

func (r IllegalReason) String() string {
	switch r {
	case ReasonOutOfRange:
		return "index out of range"
	case ReasonGameOver:
		return "game is over"
	case ReasonWrongBoard:
		return "not the forced board"
	case ReasonBoardDecided:
		return "board already decided"
	case ReasonOccupied:
		return "cell is occupied"
	}
	return "unknown"
}

// Returned by Apply and Place, matches ErrIllegalMove with errors.Is
type IllegalMoveError struct {
	Move   Move
	Reason IllegalReason
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("move %s is illegal: %s", e.Move, e.Reason)
}

func (e *IllegalMoveError) Unwrap() error {
	return ErrIllegalMove
}

func illegal(m Move, reason IllegalReason) error {
	return &IllegalMoveError{Move: m, Reason: reason}
}
