package game

import (
	"fmt"
	"strings"
)

func addText(lines []string, row int, hpad int, text string) {
	if row >= len(lines) {
		return
	}
	lines[row] = lines[row] + strings.Repeat(" ", hpad) + text
}

// ToDisplayText draws the board with the game state written beside it.
func (g *Game) ToDisplayText() string {
	bt := g.board.ToDisplayText()
	bts := strings.Split(bt, "\n")
	hpadding := 3
	// the first line is blank and the next two are the header.
	vpadding := 3

	for i, p := range []string{"X black", "O white"} {
		marker := " "
		if g.Playing() && int(g.onturn)-1 == i {
			marker = "->"
		}
		addText(bts, vpadding+i, hpadding, fmt.Sprintf("%-2s %s", marker, p))
	}

	dim := g.board.Dim()
	addText(bts, vpadding+3, hpadding, fmt.Sprintf("Turn %d", g.Turn()))
	if last := g.LastMove(); last.IsValid() {
		addText(bts, vpadding+4, hpadding, "Last move: "+last.ShortDescription(dim))
	}
	if !g.Playing() {
		addText(bts, vpadding+6, hpadding, "Game is over: "+g.result.String()+".")
	}
	return strings.Join(append(bts, g.board.Position()), "\n")
}
