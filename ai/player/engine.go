// Package player is the automatic Gomoku opponent. An Engine answers one
// question: which move should this player make on this board.
package player

import (
	"encoding/binary"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/movegen"
	"github.com/domino14/gomoku/search"
)

const (
	MinDifficulty = 1
	MaxDifficulty = 3
)

// Randomizer is the random source used at the easiest difficulty.
type Randomizer interface {
	Intn(n int) int
}

type globalRandomizer struct{}

func (globalRandomizer) Intn(n int) int { return frand.Intn(n) }

// NewRandomizer returns a deterministic source for a non-zero seed, and the
// process-wide frand source for seed 0.
func NewRandomizer(seed int64) Randomizer {
	if seed == 0 {
		return globalRandomizer{}
	}
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], uint64(seed))
	return frand.NewCustom(key[:], 1024, 12)
}

// ClampDifficulty forces a difficulty into [MinDifficulty, MaxDifficulty].
func ClampDifficulty(d int) int {
	return max(MinDifficulty, min(MaxDifficulty, d))
}

// Engine owns a candidate generator, a solver and a random source. It is
// not safe for concurrent use; give each goroutine its own Engine.
type Engine struct {
	movegen    movegen.MoveGenerator
	solver     *search.Solver
	rng        Randomizer
	difficulty int
}

// NewEngine builds an engine from config, seeding its random source from
// the seed key.
func NewEngine(cfg *config.Config) *Engine {
	return NewEngineWithRandomizer(cfg, NewRandomizer(cfg.GetInt64(config.ConfigSeed)))
}

func NewEngineWithRandomizer(cfg *config.Config, rng Randomizer) *Engine {
	gen := movegen.NewProximityGenerator(
		cfg.GetInt(config.ConfigCandidateRadius),
		cfg.GetInt(config.ConfigCandidateLimit))
	solver := &search.Solver{}
	if cfg.GetBool(config.ConfigEvalCache) {
		solver.SetEvalCache(search.NewEvalCache(
			cfg.GetFloat64(config.ConfigEvalCacheMemoryFraction),
			cfg.GetInt(config.ConfigBoardSize)))
	}
	return &Engine{
		movegen:    gen,
		solver:     solver,
		rng:        rng,
		difficulty: ClampDifficulty(cfg.GetInt(config.ConfigDifficulty)),
	}
}

// Difficulty is the configured default difficulty, already clamped.
func (e *Engine) Difficulty() int {
	return e.difficulty
}

// Solver exposes the engine's solver, mostly for its counters.
func (e *Engine) Solver() *search.Solver {
	return e.solver
}

// ChooseMove returns the move aiPlayer should make on b. b is used as
// scratch space during the call but is identical to its input on return.
// It returns move.Invalid when there is nowhere left to play.
func (e *Engine) ChooseMove(b *board.Board, aiPlayer board.Player, difficulty int) move.Move {
	m, _ := e.ChooseMoveWithScore(b, aiPlayer, difficulty)
	return m
}

// ChooseMoveWithScore is ChooseMove plus the score that justified the
// choice. The opening move and the easiest difficulty score 0, except for
// an immediate win which scores search.WinScore.
func (e *Engine) ChooseMoveWithScore(b *board.Board, aiPlayer board.Player, difficulty int) (move.Move, int) {
	difficulty = ClampDifficulty(difficulty)
	if b.IsEmpty() {
		return move.New(b.Dim()/2, b.Dim()/2), 0
	}
	plays := e.movegen.GenAll(b)
	if len(plays) == 0 {
		return move.Invalid, 0
	}
	if difficulty == MinDifficulty {
		return e.easyMove(b, aiPlayer, plays)
	}
	e.solver.Init(b, e.movegen, aiPlayer)
	return e.solver.BestMove(difficulty)
}

// easyMove wins if it can, blocks if it must, and otherwise picks any
// candidate at random.
func (e *Engine) easyMove(b *board.Board, aiPlayer board.Player, plays []move.Move) (move.Move, int) {
	for _, m := range plays {
		if wouldWin(b, m, aiPlayer) {
			log.Debug().Str("move", m.String()).Msg("easy-win")
			return m, search.WinScore
		}
	}
	opp := aiPlayer.Opponent()
	for _, m := range plays {
		if wouldWin(b, m, opp) {
			log.Debug().Str("move", m.String()).Msg("easy-block")
			return m, 0
		}
	}
	m := plays[e.rng.Intn(len(plays))]
	log.Debug().Str("move", m.String()).Int("candidates", len(plays)).Msg("easy-random")
	return m, 0
}

func wouldWin(b *board.Board, m move.Move, p board.Player) bool {
	if err := b.Place(m.X, m.Y, p); err != nil {
		panic(err)
	}
	defer b.Unplace(m.X, m.Y)
	return b.CheckWin(m.X, m.Y, p)
}

// CheckWin reports whether p's stone at (x, y) completes five. It is the
// same rule the search uses.
func (e *Engine) CheckWin(b *board.Board, x, y int, p board.Player) bool {
	return b.CheckWin(x, y, p)
}
