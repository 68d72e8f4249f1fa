// Package automatic plays engine-vs-engine Gomoku games, for comparing
// difficulty settings and collecting statistics.
package automatic

import (
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/ai/player"
	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/game"
	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/movegen"
)

const (
	P1        = "p1"
	P2        = "p2"
	DrawLabel = "draw"
)

// GameResult is one finished game, as it appears in the CSV log.
type GameResult struct {
	GameID      string
	Black       string
	White       string
	Winner      string
	Moves       int
	Fingerprint uint64
}

var csvHeader = []string{"gameID", "black", "white", "winner", "moves", "fingerprint"}

func (g GameResult) record() []string {
	return []string{
		g.GameID, g.Black, g.White, g.Winner,
		strconv.Itoa(g.Moves),
		strconv.FormatUint(g.Fingerprint, 16),
	}
}

// randomChooser picks any candidate. It diversifies openings between
// otherwise deterministic engines.
type randomChooser struct {
	gen movegen.MoveGenerator
	rng player.Randomizer
}

func (c randomChooser) ChooseMove(b *board.Board, p board.Player, difficulty int) move.Move {
	plays := c.gen.GenAll(b)
	if len(plays) == 0 {
		return move.Invalid
	}
	return plays[c.rng.Intn(len(plays))]
}

// GameRunner plays games between two difficulty settings, P1 and P2, on a
// single engine. It is not safe for concurrent use.
type GameRunner struct {
	engine       *player.Engine
	opener       randomChooser
	difficulty   [2]int
	openingPlies int
	boardSize    int
	game         *game.Game
}

// NewGameRunner builds a runner from config. rng drives both the random
// opening plies and the easiest difficulty.
func NewGameRunner(cfg *config.Config, rng player.Randomizer) *GameRunner {
	d := player.ClampDifficulty(cfg.GetInt(config.ConfigDifficulty))
	return &GameRunner{
		engine: player.NewEngineWithRandomizer(cfg, rng),
		opener: randomChooser{
			gen: movegen.NewProximityGenerator(
				cfg.GetInt(config.ConfigCandidateRadius),
				cfg.GetInt(config.ConfigCandidateLimit)),
			rng: rng,
		},
		difficulty:   [2]int{d, d},
		openingPlies: cfg.GetInt(config.ConfigAutoplayOpeningPlies),
		boardSize:    cfg.GetInt(config.ConfigBoardSize),
	}
}

func (r *GameRunner) SetDifficulties(p1, p2 int) {
	r.difficulty = [2]int{player.ClampDifficulty(p1), player.ClampDifficulty(p2)}
}

// Game is the most recently played game.
func (r *GameRunner) Game() *game.Game {
	return r.game
}

// PlayGame plays one game to the end. If p1Black, P1 moves first.
func (r *GameRunner) PlayGame(p1Black bool) (GameResult, error) {
	r.game = game.NewGame(r.boardSize)
	names := map[board.Player]string{board.Black: P1, board.White: P2}
	slots := map[board.Player]int{board.Black: 0, board.White: 1}
	if !p1Black {
		names = map[board.Player]string{board.Black: P2, board.White: P1}
		slots = map[board.Player]int{board.Black: 1, board.White: 0}
	}

	for r.game.Playing() {
		var err error
		if r.game.Turn() < r.openingPlies {
			_, err = r.game.PlayAI(r.opener, 0)
		} else {
			d := r.difficulty[slots[r.game.PlayerOnTurn()]]
			_, err = r.game.PlayAI(r.engine, d)
		}
		if err != nil {
			return GameResult{}, err
		}
	}

	res := GameResult{
		GameID:      r.game.Uid(),
		Black:       names[board.Black],
		White:       names[board.White],
		Winner:      DrawLabel,
		Moves:       r.game.Turn(),
		Fingerprint: r.game.Fingerprint(),
	}
	if w := r.game.Winner(); w != board.NoPlayer {
		res.Winner = names[w]
	}
	log.Debug().Str("gameID", res.GameID).Str("winner", res.Winner).
		Int("moves", res.Moves).Msg("game-over")
	return res, nil
}
