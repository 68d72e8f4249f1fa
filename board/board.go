// Package board holds the Gomoku grid: cell occupancy, stone placement and
// the five-in-a-row win oracle.
package board

import (
	"errors"
	"fmt"
)

// DefaultDim is the standard Gomoku board dimension.
const DefaultDim = 15

// WinLength is the number of contiguous stones needed to win.
const WinLength = 5

var (
	ErrOutOfBounds = errors.New("coordinates are off the board")
	ErrOccupied    = errors.New("square is already occupied")
	ErrBadPlayer   = errors.New("not a player")
)

// Cell is the state of a single intersection.
type Cell uint8

const (
	Empty Cell = iota
	BlackStone
	WhiteStone
)

// Player is one of the two stone colours. Player values coincide with the
// cell that their stone occupies.
type Player uint8

const (
	NoPlayer Player = iota
	Black
	White
)

func (p Player) String() string {
	switch p {
	case Black:
		return "black"
	case White:
		return "white"
	}
	return "none"
}

// Opponent returns the other colour.
func (p Player) Opponent() Player {
	if p == Black {
		return White
	}
	return Black
}

// Cell is the cell that this player's stone occupies.
func (p Player) Cell() Cell {
	return Cell(p)
}

func (p Player) Valid() bool {
	return p == Black || p == White
}

// PlayerFromString accepts "black"/"b"/"x" and "white"/"w"/"o".
func PlayerFromString(s string) (Player, error) {
	switch s {
	case "black", "Black", "BLACK", "b", "B", "x", "X":
		return Black, nil
	case "white", "White", "WHITE", "w", "W", "o", "O":
		return White, nil
	}
	return NoPlayer, fmt.Errorf("%w: %q", ErrBadPlayer, s)
}

// the four line directions: horizontal, vertical, and both diagonals.
var Directions = [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

// Board is a dim×dim Gomoku board. Cells are stored column by column, so
// index = x*dim + y.
type Board struct {
	dim    int
	cells  []Cell
	stones int
}

// NewBoard creates an empty dim×dim board.
func NewBoard(dim int) *Board {
	if dim < 1 {
		panic(fmt.Sprintf("invalid board dimension %d", dim))
	}
	return &Board{dim: dim, cells: make([]Cell, dim*dim)}
}

func (b *Board) Dim() int {
	return b.dim
}

// NumStones is how many stones are on the board.
func (b *Board) NumStones() int {
	return b.stones
}

// IsEmpty is true if no stone has been played yet.
func (b *Board) IsEmpty() bool {
	return b.stones == 0
}

// IsFull returns true iff no empty cell remains.
func (b *Board) IsFull() bool {
	return b.stones == len(b.cells)
}

func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.dim && y < b.dim
}

// At returns the cell at (x, y). It panics on out-of-range coordinates.
func (b *Board) At(x, y int) Cell {
	b.mustBeInBounds(x, y)
	return b.cells[x*b.dim+y]
}

// occupant is At without the bounds check.
func (b *Board) occupant(x, y int) Cell {
	return b.cells[x*b.dim+y]
}

// Place puts a stone for player p at (x, y). It rejects off-board and
// occupied squares; it never clamps.
func (b *Board) Place(x, y int, p Player) error {
	if !p.Valid() {
		return fmt.Errorf("place (%d,%d): %w", x, y, ErrBadPlayer)
	}
	if !b.InBounds(x, y) {
		return fmt.Errorf("place (%d,%d) on %dx%d board: %w", x, y, b.dim, b.dim, ErrOutOfBounds)
	}
	idx := x*b.dim + y
	if b.cells[idx] != Empty {
		return fmt.Errorf("place (%d,%d): %w", x, y, ErrOccupied)
	}
	b.cells[idx] = p.Cell()
	b.stones++
	return nil
}

// Unplace clears (x, y). It is the undo primitive for trial moves.
func (b *Board) Unplace(x, y int) {
	b.mustBeInBounds(x, y)
	idx := x*b.dim + y
	if b.cells[idx] != Empty {
		b.cells[idx] = Empty
		b.stones--
	}
}

// CheckWin reports whether the stone just played by p at (x, y) completes a
// line of WinLength or more in any direction. Runs are counted outward in
// both directions from (x, y) and never wrap around the board edge.
// Out-of-range coordinates are a caller bug and panic.
func (b *Board) CheckWin(x, y int, p Player) bool {
	b.mustBeInBounds(x, y)
	c := p.Cell()
	for _, d := range Directions {
		count := 1 + b.countDirection(x, y, d[0], d[1], c) +
			b.countDirection(x, y, -d[0], -d[1], c)
		if count >= WinLength {
			return true
		}
	}
	return false
}

// countDirection counts contiguous c stones starting one step away from
// (x, y) in direction (dx, dy).
func (b *Board) countDirection(x, y, dx, dy int, c Cell) int {
	count := 0
	nx, ny := x+dx, y+dy
	for b.InBounds(nx, ny) && b.occupant(nx, ny) == c {
		count++
		nx += dx
		ny += dy
	}
	return count
}

// Copy returns a deep copy of the board.
func (b *Board) Copy() *Board {
	n := &Board{dim: b.dim, stones: b.stones, cells: make([]Cell, len(b.cells))}
	copy(n.cells, b.cells)
	return n
}

// CopyFrom overwrites b with the contents of o. Both must have the same
// dimension.
func (b *Board) CopyFrom(o *Board) {
	if b.dim != o.dim {
		panic(fmt.Sprintf("cannot copy %dx%d board into %dx%d board", o.dim, o.dim, b.dim, b.dim))
	}
	copy(b.cells, o.cells)
	b.stones = o.stones
}

// Equals is true if both boards have the same dimension and stones.
func (b *Board) Equals(o *Board) bool {
	if b.dim != o.dim || b.stones != o.stones {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Clear removes every stone.
func (b *Board) Clear() {
	clear(b.cells)
	b.stones = 0
}

// Cells exposes the raw cell slice (x-major). Callers must not modify it.
func (b *Board) Cells() []Cell {
	return b.cells
}

func (b *Board) mustBeInBounds(x, y int) {
	if !b.InBounds(x, y) {
		panic(fmt.Sprintf("coordinates (%d,%d) off %dx%d board", x, y, b.dim, b.dim))
	}
}
