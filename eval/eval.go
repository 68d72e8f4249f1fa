// Package eval scores a whole board for one player by summing line-pattern
// values over every stone.
package eval

import "github.com/domino14/gomoku/board"

// Pattern values.
const (
	Five       = 100000
	OpenFour   = 10000
	RushFour   = 1000
	OpenThree  = 1000
	SleepThree = 100
	OpenTwo    = 100
	SleepTwo   = 10
)

// PatternScore maps a run length and its number of blocked ends (0, 1 or
// 2) to a value. Five or more in a row is always worth Five; anything
// shorter with both ends blocked is worthless.
func PatternScore(length, blocked int) int {
	if length >= board.WinLength {
		return Five
	}
	if blocked >= 2 {
		return 0
	}
	switch length {
	case 4:
		if blocked == 0 {
			return OpenFour
		}
		return RushFour
	case 3:
		if blocked == 0 {
			return OpenThree
		}
		return SleepThree
	case 2:
		if blocked == 0 {
			return OpenTwo
		}
		return SleepTwo
	}
	return 0
}

// Totals returns the pattern sums for black and white. A stone in a run of
// n contributes that run's value once per direction, so a run is counted n
// times; multiple simultaneous threats therefore weigh heavily.
func Totals(b *board.Board) (black, white int) {
	dim := b.Dim()
	cells := b.Cells()
	for x := 0; x < dim; x++ {
		for y := 0; y < dim; y++ {
			c := cells[x*dim+y]
			if c == board.Empty {
				continue
			}
			s := stoneScore(b, x, y, c)
			if c == board.BlackStone {
				black += s
			} else {
				white += s
			}
		}
	}
	return black, white
}

// Evaluate is the static score of b from p's point of view: p's pattern
// total minus the opponent's.
func Evaluate(b *board.Board, p board.Player) int {
	black, white := Totals(b)
	if p == board.Black {
		return black - white
	}
	return white - black
}

// PlayerTotal is the pattern sum for p's stones alone.
func PlayerTotal(b *board.Board, p board.Player) int {
	black, white := Totals(b)
	if p == board.Black {
		return black
	}
	return white
}

func stoneScore(b *board.Board, x, y int, c board.Cell) int {
	score := 0
	for _, d := range board.Directions {
		length := 1
		blocked := 0
		for _, sign := range [2]int{1, -1} {
			dx, dy := d[0]*sign, d[1]*sign
			nx, ny := x+dx, y+dy
			for {
				if !b.InBounds(nx, ny) {
					blocked++
					break
				}
				other := b.At(nx, ny)
				if other == c {
					length++
					nx += dx
					ny += dy
					continue
				}
				if other != board.Empty {
					blocked++
				}
				break
			}
		}
		score += PatternScore(length, blocked)
	}
	return score
}
