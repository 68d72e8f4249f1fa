package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/gomoku/board"
)

const bignum = 1<<63 - 2

// generate a zobrist hash for a Gomoku position.
// https://en.wikipedia.org/wiki/Zobrist_hashing
//
// There is no side-to-move key: positions are hashed only for leaf
// evaluation, which does not depend on whose turn it is.
type Zobrist struct {
	// posTable[x*dim+y][player-1]
	posTable [][2]uint64
	boardDim int
}

func (z *Zobrist) Initialize(boardDim int) {
	z.boardDim = boardDim
	z.posTable = make([][2]uint64, boardDim*boardDim)
	for i := range z.posTable {
		for j := 0; j < 2; j++ {
			z.posTable[i][j] = frand.Uint64n(bignum) + 1
		}
	}
}

func (z *Zobrist) BoardDim() int {
	return z.boardDim
}

// Hash computes the full hash of a board from scratch.
func (z *Zobrist) Hash(b *board.Board) uint64 {
	key := uint64(0)
	for i, c := range b.Cells() {
		if c == board.Empty {
			continue
		}
		key ^= z.posTable[i][c-1]
	}
	return key
}

// Toggle adds or removes a stone of player p at (x, y). Playing and then
// unplaying the same stone restores the original key.
func (z *Zobrist) Toggle(key uint64, x, y int, p board.Player) uint64 {
	return key ^ z.posTable[x*z.boardDim+y][p-1]
}
