package player

import (
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/search"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

type fixedRandomizer int

func (f fixedRandomizer) Intn(n int) int { return int(f) % n }

var allDifficulties = []int{1, 2, 3}

func newTestEngine() *Engine {
	return NewEngineWithRandomizer(config.DefaultConfig(), fixedRandomizer(0))
}

func TestOpeningIsCenter(t *testing.T) {
	is := is.New(t)
	e := newTestEngine()
	for _, dim := range []int{5, 8, 15, 19} {
		for _, d := range allDifficulties {
			b := board.NewBoard(dim)
			is.Equal(e.ChooseMove(b, board.Black, d), move.New(dim/2, dim/2))
			is.True(b.IsEmpty())
		}
	}
}

func TestConcreteScenario(t *testing.T) {
	is := is.New(t)
	e := newTestEngine()
	b := board.NewBoard(15)
	is.Equal(e.ChooseMove(b, board.Black, 2), move.New(7, 7))

	for y := 7; y <= 10; y++ {
		is.NoErr(b.Place(7, y, board.Black))
	}
	m := e.ChooseMove(b, board.Black, 1)
	is.True(m.Equals(move.New(7, 6)) || m.Equals(move.New(7, 11)))
	is.NoErr(b.Place(m.X, m.Y, board.Black))
	is.True(e.CheckWin(b, m.X, m.Y, board.Black))
}

func TestTakesImmediateWin(t *testing.T) {
	is := is.New(t)
	e := newTestEngine()
	// a diagonal four for white with black stones scattered around it.
	pos := []struct {
		x, y int
		p    board.Player
	}{
		{4, 4, board.White}, {5, 5, board.White}, {6, 6, board.White}, {7, 7, board.White},
		{3, 3, board.Black}, {7, 8, board.Black}, {8, 7, board.Black}, {6, 7, board.Black},
	}
	for _, d := range allDifficulties {
		b := board.NewBoard(15)
		for _, s := range pos {
			is.NoErr(b.Place(s.x, s.y, s.p))
		}
		orig := b.Copy()
		m, score := e.ChooseMoveWithScore(b, board.White, d)
		is.Equal(m, move.New(8, 8))
		is.Equal(score, search.WinScore)
		is.True(b.Equals(orig))
	}
}

func TestBlocksFour(t *testing.T) {
	is := is.New(t)
	e := newTestEngine()
	for _, d := range allDifficulties {
		b := board.NewBoard(15)
		is.NoErr(b.Place(7, 6, board.Black))
		for y := 7; y <= 10; y++ {
			is.NoErr(b.Place(7, y, board.White))
		}
		orig := b.Copy()
		is.Equal(e.ChooseMove(b, board.Black, d), move.New(7, 11))
		is.True(b.Equals(orig))
	}
}

func TestWinBeforeBlock(t *testing.T) {
	is := is.New(t)
	e := newTestEngine()
	b := board.NewBoard(15)
	// both sides have a four; the side to move wins instead of blocking.
	for y := 3; y <= 6; y++ {
		is.NoErr(b.Place(2, y, board.Black))
		is.NoErr(b.Place(10, y, board.White))
	}
	for _, d := range allDifficulties {
		m := e.ChooseMove(b, board.White, d)
		is.Equal(m.X, 10)
		is.True(m.Y == 2 || m.Y == 7)
	}
}

func TestEasyRandomUsesRandomizer(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard(15)
	is.NoErr(b.Place(7, 7, board.Black))
	e := NewEngineWithRandomizer(config.DefaultConfig(), fixedRandomizer(3))
	// the fourth-ranked candidate around a lone stone.
	is.Equal(e.ChooseMove(b, board.White, 1), move.New(8, 7))

	e = NewEngineWithRandomizer(config.DefaultConfig(), fixedRandomizer(0))
	is.Equal(e.ChooseMove(b, board.White, 1), move.New(6, 7))
}

func TestSeededEnginesAgree(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigSeed, 42)
	e1 := NewEngine(cfg)
	e2 := NewEngine(cfg)
	b := board.NewBoard(15)
	is.NoErr(b.Place(7, 7, board.Black))
	for i := 0; i < 20; i++ {
		m := e1.ChooseMove(b, board.White, 1)
		is.True(m.InBounds(15))
		is.Equal(m, e2.ChooseMove(b, board.White, 1))
	}
}

func TestFullBoardIsInvalid(t *testing.T) {
	is := is.New(t)
	e := newTestEngine()
	// no five anywhere: columns alternate in pairs.
	b, err := board.ParsePosition("XXOOX/OOXXO/XXOOX/OOXXO/XXOOX")
	is.NoErr(err)
	is.True(b.IsFull())
	for _, d := range allDifficulties {
		is.Equal(e.ChooseMove(b, board.Black, d), move.Invalid)
	}
}

func TestDifficultyClamp(t *testing.T) {
	is := is.New(t)
	is.Equal(ClampDifficulty(-4), 1)
	is.Equal(ClampDifficulty(0), 1)
	is.Equal(ClampDifficulty(2), 2)
	is.Equal(ClampDifficulty(9), 3)

	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigDifficulty, 7)
	is.Equal(NewEngine(cfg).Difficulty(), 3)

	// out-of-range tiers behave like the nearest valid one.
	e := NewEngineWithRandomizer(config.DefaultConfig(), fixedRandomizer(3))
	b := board.NewBoard(15)
	is.NoErr(b.Place(7, 7, board.Black))
	is.Equal(e.ChooseMove(b, board.White, 0), e.ChooseMove(b, board.White, 1))
	is.Equal(e.ChooseMove(b, board.White, 5), e.ChooseMove(b, board.White, 3))
}

func TestEvalCacheEngine(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigEvalCache, true)
	cfg.Set(config.ConfigEvalCacheMemoryFraction, 0.0)
	cached := NewEngine(cfg)
	is.True(cached.Solver().EvalCache() != nil)
	plain := newTestEngine()
	is.True(plain.Solver().EvalCache() == nil)

	b, err := board.ParsePosition("15/15/15/15/15/5XO8/6XO7/6OXX6/7X7/15/15/15/15/15/15")
	is.NoErr(err)
	for _, p := range []board.Player{board.Black, board.White} {
		m1, s1 := plain.ChooseMoveWithScore(b, p, 3)
		m2, s2 := cached.ChooseMoveWithScore(b, p, 3)
		is.Equal(m1, m2)
		is.Equal(s1, s2)
	}
}
