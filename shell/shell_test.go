package shell

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/game"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"autoplay -file /path/to/log.txt",
			&shellcmd{"autoplay", nil, map[string]string{"file": "/path/to/log.txt"}},
			nil},
		{"play H8",
			&shellcmd{"play", []string{"H8"}, map[string]string{}},
			nil},
		{"autoplay -p1 1 -p2 3 -games 10 ",
			&shellcmd{"autoplay", nil,
				map[string]string{"p1": "1", "p2": "3", "games": "10"}},
			nil,
		},
		{`load "5/5/2X2/5/5"`,
			&shellcmd{"load", []string{"5/5/2X2/5/5"}, map[string]string{}},
			nil},
		{"set difficulty -1",
			&shellcmd{"set", []string{"difficulty", "-1"}, map[string]string{}},
			nil},
		{"autoplay -p1 1 -file",
			nil, errWrongOptionSyntax},
	}
	for _, t := range cases {
		cmd, err := extractFields(t.line)
		is.Equal(cmd, t.expCmd)
		is.Equal(err, t.expErr)
	}
}

func testController() *ShellController {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigSeed, 1)
	return newController(cfg)
}

func run(sc *ShellController, line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	return sc.handle(cmd)
}

func TestNoGame(t *testing.T) {
	is := is.New(t)
	sc := testController()
	for _, line := range []string{"show", "play H8", "ai", "hint", "undo", "check H8"} {
		_, err := run(sc, line)
		is.Equal(err, errNoGame)
	}
	_, err := run(sc, "frobnicate")
	is.True(err != nil)
}

func TestPlayAgainstEngine(t *testing.T) {
	is := is.New(t)
	sc := testController()
	_, err := run(sc, "new 9")
	is.NoErr(err)

	_, err = run(sc, "play E5")
	is.NoErr(err)
	is.Equal(sc.game.Board().At(4, 4), board.BlackStone)

	_, err = run(sc, "play 4,4")
	is.True(err != nil) // occupied

	resp, err := run(sc, "ai 2")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "AI played"))
	is.Equal(sc.game.Turn(), 2)

	_, err = run(sc, "undo")
	is.NoErr(err)
	is.Equal(sc.game.Turn(), 1)
	is.Equal(sc.game.PlayerOnTurn(), board.White)
}

func TestAutoReply(t *testing.T) {
	is := is.New(t)
	sc := testController()
	_, err := run(sc, "set reply on")
	is.NoErr(err)
	_, err = run(sc, "new")
	is.NoErr(err)
	_, err = run(sc, "play H8")
	is.NoErr(err)
	is.Equal(sc.game.Turn(), 2)
	is.Equal(sc.game.PlayerOnTurn(), board.Black)
}

func TestLoadHintAndCheck(t *testing.T) {
	is := is.New(t)
	sc := testController()
	// black has four in a column and is on turn.
	_, err := run(sc, "load 9/1X7/1X5O1/1X7/1X7/9/4O4/6O2/O8")
	is.NoErr(err)
	is.Equal(sc.game.PlayerOnTurn(), board.Black)

	resp, err := run(sc, "hint 3")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "B1") || strings.Contains(resp.message, "B6"))

	_, err = run(sc, "ai 1")
	is.NoErr(err)
	is.Equal(sc.game.Result(), game.BlackWins)

	last := sc.game.LastMove()
	resp, err = run(sc, "check "+last.ShortDescription(9))
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "part of a five"))

	_, err = run(sc, "check A1")
	is.True(err != nil) // empty

	_, err = run(sc, "hint")
	is.Equal(err, game.ErrGameOver)

	resp, err = run(sc, "position")
	is.NoErr(err)
	is.Equal(resp.message, sc.game.Board().Position())
}

func TestSet(t *testing.T) {
	is := is.New(t)
	sc := testController()
	resp, err := run(sc, "set difficulty 7")
	is.NoErr(err)
	is.Equal(resp.message, "set difficulty to 3")
	is.Equal(sc.difficulty, 3)

	_, err = run(sc, "set size 3")
	is.True(err != nil)

	_, err = run(sc, "set cache on")
	is.NoErr(err)
	is.True(sc.engine.Solver().EvalCache() != nil)
	_, err = run(sc, "set cache off")
	is.NoErr(err)
	is.True(sc.engine.Solver().EvalCache() == nil)

	resp, err = run(sc, "set")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "difficulty  3"))

	_, err = run(sc, "set colour red")
	is.True(err != nil)
}

func TestAutoplayAndAnalyze(t *testing.T) {
	is := is.New(t)
	sc := testController()
	out := filepath.Join(t.TempDir(), "games.csv")
	_, err := run(sc, "set size 7")
	is.NoErr(err)
	resp, err := run(sc, "autoplay -p1 1 -p2 1 -games 4 -threads 2 -file "+out)
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "Games played: 4"))

	resp, err = run(sc, "analyze "+out)
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "Games played: 4"))
}

func TestHelp(t *testing.T) {
	is := is.New(t)
	sc := testController()
	resp, err := run(sc, "help")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "autoplay"))
	resp, err = run(sc, "help set")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "reply <on|off>"))
	_, err = run(sc, "help nothing")
	is.True(err != nil)
}

func TestCompleter(t *testing.T) {
	is := is.New(t)
	c := NewShellCompleter(testController())
	matches, n := c.Do([]rune("aut"), 3)
	is.Equal(n, 3)
	is.Equal(matches, [][]rune{[]rune("oplay")})

	matches, _ = c.Do([]rune("set cache "), 10)
	is.Equal(len(matches), 2)
}
