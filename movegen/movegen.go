// Package movegen produces the candidate moves that the search explores.
// Only empty cells close to existing stones are considered, and on busy
// boards the list is cut down with a cheap static ranking.
package movegen

import (
	"sort"

	"github.com/samber/lo"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/move"
)

const (
	DefaultRadius = 2
	DefaultLimit  = 20

	neighborWeight = 10
)

// MoveGenerator returns the moves worth searching in a position.
type MoveGenerator interface {
	GenAll(b *board.Board) []move.Move
}

// ProximityGenerator generates every empty cell within Chebyshev distance
// radius of a stone. If there are more than limit of them, only the limit
// best by QuickScore are kept. A limit of 0 or less disables the cap.
type ProximityGenerator struct {
	radius int
	limit  int
}

func NewProximityGenerator(radius, limit int) *ProximityGenerator {
	if radius < 1 {
		radius = DefaultRadius
	}
	return &ProximityGenerator{radius: radius, limit: limit}
}

// NewDefaultGenerator uses radius 2 and a cap of 20.
func NewDefaultGenerator() *ProximityGenerator {
	return NewProximityGenerator(DefaultRadius, DefaultLimit)
}

func (g *ProximityGenerator) Radius() int { return g.radius }
func (g *ProximityGenerator) Limit() int  { return g.limit }

type scoredMove struct {
	m     move.Move
	score int
}

// GenAll returns the candidates for b. An empty board has exactly one
// candidate, the center; a full board has none.
//
// Candidates are enumerated x-major (x ascending, then y ascending). The
// ranking sort is stable, so equal QuickScores keep that order; this is the
// tie-break at the cap.
func (g *ProximityGenerator) GenAll(b *board.Board) []move.Move {
	dim := b.Dim()
	if b.IsEmpty() {
		return []move.Move{move.New(dim/2, dim/2)}
	}
	cells := b.Cells()
	near := make([]bool, len(cells))
	for x := 0; x < dim; x++ {
		for y := 0; y < dim; y++ {
			if cells[x*dim+y] == board.Empty {
				continue
			}
			for nx := max(0, x-g.radius); nx <= min(dim-1, x+g.radius); nx++ {
				for ny := max(0, y-g.radius); ny <= min(dim-1, y+g.radius); ny++ {
					near[nx*dim+ny] = true
				}
			}
		}
	}
	plays := []move.Move{}
	for idx, isNear := range near {
		if isNear && cells[idx] == board.Empty {
			plays = append(plays, move.New(idx/dim, idx%dim))
		}
	}
	if g.limit <= 0 || len(plays) <= g.limit {
		return plays
	}

	scored := lo.Map(plays, func(m move.Move, _ int) scoredMove {
		return scoredMove{m: m, score: QuickScore(b, m.X, m.Y)}
	})
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	return lo.Map(scored[:g.limit], func(s scoredMove, _ int) move.Move {
		return s.m
	})
}

// QuickScore is the pre-ranking heuristic: ten points per occupied
// neighbour (8-neighbourhood), plus dim minus the Manhattan distance to the
// center.
func QuickScore(b *board.Board, x, y int) int {
	dim := b.Dim()
	cells := b.Cells()
	score := 0
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if b.InBounds(nx, ny) && cells[nx*dim+ny] != board.Empty {
				score += neighborWeight
			}
		}
	}
	center := dim / 2
	score += dim - (abs(x-center) + abs(y-center))
	return score
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
