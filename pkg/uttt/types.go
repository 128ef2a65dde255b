package uttt

// Type defines for the position
type Player uint8
type BoardStatus uint8
type Termination uint8

// Enum for the players, Cross always moves first from the empty position
const (
	Cross Player = iota
	Circle
)

// Status of a single 3x3 board, also used as the cells of the meta-board
const (
	BoardOpen BoardStatus = iota
	BoardDrawn
	BoardCrossWon
	BoardCircleWon
)

// Outcome of the whole position
const (
	TerminationNone Termination = iota
	TerminationCrossWon
	TerminationCircleWon
	TerminationDraw
)

// Get the opponent of this player
func (p Player) Other() Player {
	return p ^ 1
}

func (p Player) String() string {
	if p == Circle {
		return "o"
	}
	return "x"
}

// Create player from a rune, returns false if that's not 'x' or 'o'
func PlayerFromRune(r rune) (Player, bool) {
	switch r {
	case 'x':
		return Cross, true
	case 'o':
		return Circle, true
	}
	return Cross, false
}

// Board status meaning 'player' won that board
func wonBy(p Player) BoardStatus {
	if p == Circle {
		return BoardCircleWon
	}
	return BoardCrossWon
}

// Returns the winner of this board, if there is one
func (s BoardStatus) Winner() (Player, bool) {
	switch s {
	case BoardCrossWon:
		return Cross, true
	case BoardCircleWon:
		return Circle, true
	}
	return Cross, false
}

func (s BoardStatus) Decided() bool {
	return s != BoardOpen
}

func (s BoardStatus) String() string {
	switch s {
	case BoardDrawn:
		return "drawn"
	case BoardCrossWon:
		return "x"
	case BoardCircleWon:
		return "o"
	}
	return "open"
}

// Returns the winner, if the game ended with a win
func (t Termination) Winner() (Player, bool) {
	switch t {
	case TerminationCrossWon:
		return Cross, true
	case TerminationCircleWon:
		return Circle, true
	}
	return Cross, false
}

func (t Termination) Ongoing() bool {
	return t == TerminationNone
}

func (t Termination) String() string {
	switch t {
	case TerminationCrossWon:
		return "x won"
	case TerminationCircleWon:
		return "o won"
	case TerminationDraw:
		return "draw"
	}
	return "ongoing"
}
