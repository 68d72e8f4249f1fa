package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrBadPosition = errors.New("malformed position")

// MaxPositionDim is the largest board ParsePosition accepts.
const MaxPositionDim = 26

// Position returns a compact text form of the board. Rows run from y=0 to
// y=dim-1 and are separated by slashes; within a row X is a black stone, O a
// white stone, and a number is a run of empty cells. An empty 3x3 board is
// "3/3/3".
func (b *Board) Position() string {
	var sb strings.Builder
	for y := 0; y < b.dim; y++ {
		if y > 0 {
			sb.WriteByte('/')
		}
		empties := 0
		for x := 0; x < b.dim; x++ {
			c := b.occupant(x, y)
			if c == Empty {
				empties++
				continue
			}
			if empties > 0 {
				sb.WriteString(strconv.Itoa(empties))
				empties = 0
			}
			sb.WriteByte(c.Symbol())
		}
		if empties > 0 {
			sb.WriteString(strconv.Itoa(empties))
		}
	}
	return sb.String()
}

// ParsePosition is the inverse of Position. The board dimension is the
// number of rows, and every row must expand to that many cells.
func ParsePosition(pos string) (*Board, error) {
	rows := strings.Split(strings.TrimSpace(pos), "/")
	dim := len(rows)
	if dim > MaxPositionDim {
		return nil, fmt.Errorf("%w: %d rows, at most %d allowed", ErrBadPosition, dim, MaxPositionDim)
	}
	b := NewBoard(dim)
	for y, row := range rows {
		x := 0
		run := 0
		flush := func() {
			x += run
			run = 0
		}
		for i := 0; i < len(row); i++ {
			ch := row[i]
			switch {
			case ch >= '0' && ch <= '9':
				run = run*10 + int(ch-'0')
				if x+run > dim {
					return nil, fmt.Errorf("%w: row %d is longer than %d", ErrBadPosition, y+1, dim)
				}
			case ch == 'X' || ch == 'x' || ch == 'O' || ch == 'o':
				flush()
				if x >= dim {
					return nil, fmt.Errorf("%w: row %d is longer than %d", ErrBadPosition, y+1, dim)
				}
				p := Black
				if ch == 'O' || ch == 'o' {
					p = White
				}
				b.cells[x*dim+y] = p.Cell()
				b.stones++
				x++
			default:
				return nil, fmt.Errorf("%w: unexpected %q in row %d", ErrBadPosition, ch, y+1)
			}
		}
		flush()
		if x != dim {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrBadPosition, y+1, x, dim)
		}
	}
	return b, nil
}

// Symbol is the one-character notation for a cell.
func (c Cell) Symbol() byte {
	switch c {
	case BlackStone:
		return 'X'
	case WhiteStone:
		return 'O'
	}
	return '.'
}

// ToDisplayText draws the board with column letters across the top and
// 1-based row numbers down the side.
func (b *Board) ToDisplayText() string {
	var str strings.Builder
	n := b.dim
	str.WriteString("   ")
	for i := 0; i < n; i++ {
		if n <= 26 {
			str.WriteString(fmt.Sprintf("%c ", 'A'+i))
		} else {
			str.WriteString(fmt.Sprintf("%d ", i%10))
		}
	}
	str.WriteString("\n   " + strings.Repeat("-", n*2) + "\n")
	for y := 0; y < n; y++ {
		str.WriteString(fmt.Sprintf("%2d|", y+1))
		for x := 0; x < n; x++ {
			str.WriteByte(b.occupant(x, y).Symbol())
			str.WriteByte(' ')
		}
		str.WriteString("|\n")
	}
	str.WriteString("   " + strings.Repeat("-", n*2) + "\n")
	return "\n" + str.String()
}
