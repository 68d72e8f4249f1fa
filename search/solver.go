// Package search implements depth-limited minimax with alpha-beta pruning
// over the candidate moves of a Gomoku position.
package search

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/eval"
	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/movegen"
)

// thanks Wikipedia:
/**function alphabeta(node, depth, α, β, maximizingPlayer) is
    if depth = 0 or node is a terminal node then
        return the heuristic value of node
    if maximizingPlayer then
        value := −∞
        for each child of node do
            value := max(value, alphabeta(child, depth − 1, α, β, FALSE))
            α := max(α, value)
            if α ≥ β then
                break (* β cut-off *)
        return value
    else
        value := +∞
        for each child of node do
            value := min(value, alphabeta(child, depth − 1, α, β, TRUE))
            β := min(β, value)
            if α ≥ β then
                break (* α cut-off *)
        return value
**/

const (
	// WinScore is returned for a node where the side to move completes
	// five. It dominates any heuristic continuation.
	WinScore = eval.Five * 10
	// Infinity bounds every reachable score.
	Infinity = 1 << 30
)

// Solver searches a borrowed board in place. Every trial stone is removed
// again before a search call returns.
type Solver struct {
	board    *board.Board
	movegen  movegen.MoveGenerator
	aiPlayer board.Player

	disablePruning bool
	cache          *EvalCache
	hashKey        uint64

	nodes   uint64
	leaves  uint64
	cutoffs uint64
}

// Init points the solver at a board and the player it maximizes for.
func (s *Solver) Init(b *board.Board, gen movegen.MoveGenerator, aiPlayer board.Player) {
	s.board = b
	s.movegen = gen
	s.aiPlayer = aiPlayer
	s.nodes = 0
	s.leaves = 0
	s.cutoffs = 0
	if s.cache != nil {
		s.cache.ensureDim(b.Dim())
		s.hashKey = s.cache.Zobrist().Hash(b)
	}
}

// SetPruningDisabled turns the solver into plain minimax. Results must not
// change; only the amount of work does.
func (s *Solver) SetPruningDisabled(d bool) {
	s.disablePruning = d
}

// SetEvalCache attaches a leaf cache; nil detaches it. Call before Init.
func (s *Solver) SetEvalCache(c *EvalCache) {
	s.cache = c
}

func (s *Solver) EvalCache() *EvalCache {
	return s.cache
}

func (s *Solver) Nodes() uint64   { return s.nodes }
func (s *Solver) Leaves() uint64  { return s.leaves }
func (s *Solver) Cutoffs() uint64 { return s.cutoffs }

func (s *Solver) play(m move.Move, p board.Player) {
	// candidates are always empty in-bounds cells.
	if err := s.board.Place(m.X, m.Y, p); err != nil {
		panic(err)
	}
	if s.cache != nil {
		s.hashKey = s.cache.Zobrist().Toggle(s.hashKey, m.X, m.Y, p)
	}
}

func (s *Solver) unplay(m move.Move, p board.Player) {
	s.board.Unplace(m.X, m.Y)
	if s.cache != nil {
		s.hashKey = s.cache.Zobrist().Toggle(s.hashKey, m.X, m.Y, p)
	}
}

func (s *Solver) leafValue() int {
	s.leaves++
	if s.cache == nil {
		return eval.Evaluate(s.board, s.aiPlayer)
	}
	blackScore, ok := s.cache.lookup(s.hashKey)
	if !ok {
		blackScore = eval.Evaluate(s.board, board.Black)
		s.cache.store(s.hashKey, blackScore)
	}
	if s.aiPlayer == board.Black {
		return blackScore
	}
	return -blackScore
}

// Search returns the minimax value of the current position from the AI's
// point of view, searching depth more plies. maximizing is true when the AI
// is to move. A stone that completes five ends the line immediately with
// WinScore (or -WinScore for the opponent).
func (s *Solver) Search(depth, alpha, beta int, maximizing bool) int {
	s.nodes++
	if depth <= 0 {
		return s.leafValue()
	}
	plays := s.movegen.GenAll(s.board)
	if len(plays) == 0 {
		return s.leafValue()
	}

	if maximizing {
		best := -Infinity
		for _, m := range plays {
			s.play(m, s.aiPlayer)
			if s.board.CheckWin(m.X, m.Y, s.aiPlayer) {
				s.unplay(m, s.aiPlayer)
				return WinScore
			}
			score := s.Search(depth-1, alpha, beta, false)
			s.unplay(m, s.aiPlayer)

			best = max(best, score)
			alpha = max(alpha, best)
			if !s.disablePruning && beta <= alpha {
				s.cutoffs++
				break // beta cut-off
			}
		}
		return best
	}

	opp := s.aiPlayer.Opponent()
	best := Infinity
	for _, m := range plays {
		s.play(m, opp)
		if s.board.CheckWin(m.X, m.Y, opp) {
			s.unplay(m, opp)
			return -WinScore
		}
		score := s.Search(depth-1, alpha, beta, true)
		s.unplay(m, opp)

		best = min(best, score)
		beta = min(beta, best)
		if !s.disablePruning && beta <= alpha {
			s.cutoffs++
			break // alpha cut-off
		}
	}
	return best
}

// BestMove plays each root candidate for the AI in order and searches the
// reply tree depth-1 plies deep. The candidate with the strictly highest
// score wins, so the first one seen keeps a tie. A candidate that wins on
// the spot is returned at once with WinScore, and the candidates after it
// are not searched, even ones that would block an opposing four.
//
// With no candidates it returns move.Invalid and -Infinity.
func (s *Solver) BestMove(depth int) (move.Move, int) {
	tstart := time.Now()
	depth = max(depth, 1)
	plays := s.movegen.GenAll(s.board)

	best := move.Invalid
	bestScore := -Infinity
	alpha, beta := -Infinity, Infinity
	for _, m := range plays {
		s.play(m, s.aiPlayer)
		if s.board.CheckWin(m.X, m.Y, s.aiPlayer) {
			s.unplay(m, s.aiPlayer)
			log.Debug().Str("move", m.String()).Msg("root-immediate-win")
			return m, WinScore
		}
		score := s.Search(depth-1, alpha, beta, false)
		s.unplay(m, s.aiPlayer)
		if score > bestScore {
			best = m
			bestScore = score
		}
		alpha = max(alpha, bestScore)
	}

	log.Debug().
		Int("depth", depth).
		Int("candidates", len(plays)).
		Uint64("nodes", s.nodes).
		Uint64("leaves", s.leaves).
		Uint64("cutoffs", s.cutoffs).
		Bool("pruning", !s.disablePruning).
		Str("best", best.String()).
		Int("score", bestScore).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("alphabeta-search")
	return best, bestScore
}
