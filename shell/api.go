package shell

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/domino14/gomoku/ai/player"
	"github.com/domino14/gomoku/automatic"
	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/game"
	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/search"
)

const (
	minBoardSize = 5
	maxBoardSize = 25
)

func (sc *ShellController) gameDisplay() string {
	return sc.game.ToDisplayText()
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	size := sc.boardSize
	if len(cmd.args) > 0 {
		var err error
		size, err = strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
	}
	if size < minBoardSize || size > maxBoardSize {
		return nil, fmt.Errorf("board size must be between %d and %d", minBoardSize, maxBoardSize)
	}
	sc.game = game.NewGame(size)
	return msg(sc.gameDisplay()), nil
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: load <position>")
	}
	g, err := game.NewFromPosition(cmd.args[0])
	if err != nil {
		return nil, err
	}
	sc.game = g
	return msg(sc.gameDisplay()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return msg(sc.gameDisplay()), nil
}

func (sc *ShellController) position(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return msg(sc.game.Board().Position()), nil
}

func (sc *ShellController) parseDifficulty(cmd *shellcmd) (int, error) {
	if len(cmd.args) == 0 {
		return sc.difficulty, nil
	}
	d, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return 0, err
	}
	return player.ClampDifficulty(d), nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: play <coords>, e.g. play H8 or play 7,7")
	}
	m, err := move.FromString(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if err := sc.game.PlayMove(m); err != nil {
		return nil, err
	}
	if sc.autoReply && sc.game.Playing() {
		return sc.aiplay(&shellcmd{cmd: "ai"})
	}
	return msg(sc.gameDisplay()), nil
}

func (sc *ShellController) aiplay(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	d, err := sc.parseDifficulty(cmd)
	if err != nil {
		return nil, err
	}
	m, err := sc.game.PlayAI(sc.engine, d)
	if err != nil {
		return nil, err
	}
	dim := sc.game.Board().Dim()
	return msg(fmt.Sprintf("%s\nAI played %s", sc.gameDisplay(), m.ShortDescription(dim))), nil
}

func (sc *ShellController) hint(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if !sc.game.Playing() {
		return nil, game.ErrGameOver
	}
	d, err := sc.parseDifficulty(cmd)
	if err != nil {
		return nil, err
	}
	m, score := sc.engine.ChooseMoveWithScore(sc.game.Board(), sc.game.PlayerOnTurn(), d)
	if !m.IsValid() {
		return nil, game.ErrNoMove
	}
	dim := sc.game.Board().Dim()
	solver := sc.engine.Solver()
	s := fmt.Sprintf("%s: %s %v (score %d)", sc.game.PlayerOnTurn(), m.ShortDescription(dim), m, score)
	if d > player.MinDifficulty && score != search.WinScore {
		s += fmt.Sprintf("\nsearched %d nodes, %d leaves, %d cutoffs",
			solver.Nodes(), solver.Leaves(), solver.Cutoffs())
	}
	return msg(s), nil
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if err := sc.game.Undo(); err != nil {
		return nil, err
	}
	return msg(sc.gameDisplay()), nil
}

func (sc *ShellController) check(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: check <coords>")
	}
	m, err := move.FromString(cmd.args[0])
	if err != nil {
		return nil, err
	}
	b := sc.game.Board()
	if !m.InBounds(b.Dim()) {
		return nil, board.ErrOutOfBounds
	}
	var p board.Player
	switch b.At(m.X, m.Y) {
	case board.BlackStone:
		p = board.Black
	case board.WhiteStone:
		p = board.White
	default:
		return nil, fmt.Errorf("%s is empty", m.ShortDescription(b.Dim()))
	}
	if sc.engine.CheckWin(b, m.X, m.Y, p) {
		return msg(fmt.Sprintf("%s is part of a five for %s", m.ShortDescription(b.Dim()), p)), nil
	}
	return msg(fmt.Sprintf("%s does not complete five for %s", m.ShortDescription(b.Dim()), p)), nil
}

func (sc *ShellController) settings() map[string]string {
	cache := "off"
	if sc.engine.Solver().EvalCache() != nil {
		cache = "on"
	}
	reply := "off"
	if sc.autoReply {
		reply = "on"
	}
	return map[string]string{
		"difficulty": strconv.Itoa(sc.difficulty),
		"size":       strconv.Itoa(sc.boardSize),
		"cache":      cache,
		"reply":      reply,
	}
}

func onOff(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	}
	return false, fmt.Errorf("%q is not on or off", v)
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	settings := sc.settings()
	if len(cmd.args) == 0 {
		keys := make([]string, 0, len(settings))
		for k := range settings {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var sb strings.Builder
		for _, k := range keys {
			fmt.Fprintf(&sb, "%-12s%s\n", k, settings[k])
		}
		return msg(strings.TrimRight(sb.String(), "\n")), nil
	}
	opt := cmd.args[0]
	if len(cmd.args) == 1 {
		val, ok := settings[opt]
		if !ok {
			return nil, fmt.Errorf("unknown setting %q", opt)
		}
		return msg(val), nil
	}
	val := cmd.args[1]
	switch opt {
	case "difficulty":
		d, err := strconv.Atoi(val)
		if err != nil {
			return nil, err
		}
		sc.difficulty = player.ClampDifficulty(d)
	case "size":
		s, err := strconv.Atoi(val)
		if err != nil {
			return nil, err
		}
		if s < minBoardSize || s > maxBoardSize {
			return nil, fmt.Errorf("board size must be between %d and %d", minBoardSize, maxBoardSize)
		}
		sc.boardSize = s
		sc.config.Set(config.ConfigBoardSize, s)
	case "cache":
		on, err := onOff(val)
		if err != nil {
			return nil, err
		}
		if on {
			sc.engine.Solver().SetEvalCache(search.NewEvalCache(
				sc.config.GetFloat64(config.ConfigEvalCacheMemoryFraction), sc.boardSize))
		} else {
			sc.engine.Solver().SetEvalCache(nil)
		}
	case "reply":
		on, err := onOff(val)
		if err != nil {
			return nil, err
		}
		sc.autoReply = on
	default:
		return nil, fmt.Errorf("unknown setting %q", opt)
	}
	return msg(fmt.Sprintf("set %s to %s", opt, sc.settings()[opt])), nil
}

func optionInt(cmd *shellcmd, key string, def int) (int, error) {
	v, ok := cmd.options[key]
	if !ok {
		return def, nil
	}
	return strconv.Atoi(v)
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	p1, err := optionInt(cmd, "p1", sc.difficulty)
	if err != nil {
		return nil, err
	}
	p2, err := optionInt(cmd, "p2", sc.difficulty)
	if err != nil {
		return nil, err
	}
	games, err := optionInt(cmd, "games", sc.config.GetInt(config.ConfigAutoplayGames))
	if err != nil {
		return nil, err
	}
	threads, err := optionInt(cmd, "threads", sc.config.GetInt(config.ConfigAutoplayThreads))
	if err != nil {
		return nil, err
	}
	sc.config.Set(config.ConfigAutoplayGames, games)
	sc.config.Set(config.ConfigAutoplayThreads, threads)
	sc.config.Set(config.ConfigBoardSize, sc.boardSize)
	if f, ok := cmd.options["file"]; ok {
		sc.config.Set(config.ConfigAutoplayOutput, f)
	}
	summary, err := automatic.CompVsComp(context.Background(), sc.config,
		player.ClampDifficulty(p1), player.ClampDifficulty(p2))
	if err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("%sGame log written to %s",
		summary, sc.config.GetString(config.ConfigAutoplayOutput))), nil
}

func (sc *ShellController) analyze(cmd *shellcmd) (*Response, error) {
	path := sc.config.GetString(config.ConfigAutoplayOutput)
	if len(cmd.args) > 0 {
		path = cmd.args[0]
	}
	summary, err := automatic.AnalyzeLogFile(path)
	if err != nil {
		return nil, err
	}
	return msg(summary.String()), nil
}
