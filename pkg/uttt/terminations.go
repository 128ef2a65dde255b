package uttt

// Evaluate the meta-board the same way as a single board: three boards won
// by the same player in a line win the game, drawn boards count for no one,
// and a meta-board with every board decided and no line is a draw
func metaTermination(meta *[9]BoardStatus) Termination {
	var cross, circle, decided uint16
	for i, s := range meta {
		switch s {
		case BoardCrossWon:
			cross |= 1 << i
		case BoardCircleWon:
			circle |= 1 << i
		}
		if s != BoardOpen {
			decided |= 1 << i
		}
	}

	if lineWon(cross) {
		return TerminationCrossWon
	}
	if lineWon(circle) {
		return TerminationCircleWon
	}
	if decided == fullBoardMask {
		return TerminationDraw
	}
	return TerminationNone
}

// Outcome of the position from its meta-board
func (p Position) Outcome() Termination {
	return metaTermination(&p.meta)
}
