package uttt

import (
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// Render the position as a 9x9 grid. Cross is drawn red, circle blue,
// decided boards are faint and the forced board is bold.
// Use termenv.Ascii profile for plain text.
func (p Position) Render(out *termenv.Output) string {
	crossColor := out.Color("1")
	circleColor := out.Color("4")
	builder := strings.Builder{}

	for row := 0; row < 9; row++ {
		if row > 0 && row%3 == 0 {
			builder.WriteString("------+-------+------\n")
		}

		for col := 0; col < 9; col++ {
			if col > 0 && col%3 == 0 {
				builder.WriteString("| ")
			}

			board := (row/3)*3 + col/3
			cell := (row%3)*3 + col%3

			var style termenv.Style
			if player, ok := p.boards[board].At(cell); ok {
				style = out.String(player.String())
				if player == Cross {
					style = style.Foreground(crossColor)
				} else {
					style = style.Foreground(circleColor)
				}
			} else {
				style = out.String(".")
			}

			if p.meta[board] != BoardOpen {
				style = style.Faint()
			} else if forced, ok := p.ForcedBoard(); ok && forced == board {
				style = style.Bold()
			}

			builder.WriteString(style.String())
			if col != 8 {
				builder.WriteByte(' ')
			}
		}
		builder.WriteByte('\n')
	}

	return builder.String()
}

// Plain text rendering
func (p Position) String() string {
	return p.Render(termenv.NewOutput(io.Discard, termenv.WithProfile(termenv.Ascii)))
}
