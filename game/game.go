// Package game is the record of a committed Gomoku game: the board, whose
// turn it is, the move history and the result. It is the turn controller
// that sits around the engine; the engine itself never commits moves.
package game

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/move"
)

var (
	ErrGameOver      = errors.New("the game is over")
	ErrNothingToUndo = errors.New("there is nothing to undo")
	ErrNoMove        = errors.New("no move available")
)

// Result of a game.
type Result int

const (
	Ongoing Result = iota
	BlackWins
	WhiteWins
	Draw
)

func (r Result) String() string {
	switch r {
	case Ongoing:
		return "ongoing"
	case BlackWins:
		return "black wins"
	case WhiteWins:
		return "white wins"
	case Draw:
		return "draw"
	}
	return "unknown"
}

func winFor(p board.Player) Result {
	if p == board.Black {
		return BlackWins
	}
	return WhiteWins
}

// MoveChooser picks a move for a player. An ai/player Engine is one.
type MoveChooser interface {
	ChooseMove(b *board.Board, p board.Player, difficulty int) move.Move
}

// Game holds everything about one game in progress. Black moves first.
type Game struct {
	uid     string
	board   *board.Board
	onturn  board.Player
	history []move.Move
	result  Result
	// the player on turn when the game was set up; undo never goes past it.
	firstPlayer board.Player
}

func newUid() string {
	return hex.EncodeToString(frand.Bytes(8))
}

// NewGame starts an empty game on a dim×dim board.
func NewGame(dim int) *Game {
	return &Game{
		uid:         newUid(),
		board:       board.NewBoard(dim),
		onturn:      board.Black,
		firstPlayer: board.Black,
	}
}

// NewFromPosition sets up a game from position notation. The player on turn
// is Black if both sides have the same number of stones, White otherwise.
// The setup itself is not part of the history.
func NewFromPosition(pos string) (*Game, error) {
	b, err := board.ParsePosition(pos)
	if err != nil {
		return nil, err
	}
	black, white := 0, 0
	for _, c := range b.Cells() {
		switch c {
		case board.BlackStone:
			black++
		case board.WhiteStone:
			white++
		}
	}
	onturn := board.Black
	if black > white {
		onturn = board.White
	}
	g := &Game{
		uid:         newUid(),
		board:       b,
		onturn:      onturn,
		firstPlayer: onturn,
	}
	if b.IsFull() {
		g.result = Draw
	}
	return g, nil
}

func (g *Game) Uid() string {
	return g.uid
}

func (g *Game) Board() *board.Board {
	return g.board
}

func (g *Game) PlayerOnTurn() board.Player {
	return g.onturn
}

func (g *Game) Result() Result {
	return g.result
}

// Playing is true until someone wins or the board fills up.
func (g *Game) Playing() bool {
	return g.result == Ongoing
}

// Winner is NoPlayer while playing and after a draw.
func (g *Game) Winner() board.Player {
	switch g.result {
	case BlackWins:
		return board.Black
	case WhiteWins:
		return board.White
	}
	return board.NoPlayer
}

// Turn is the number of moves played since the game was set up.
func (g *Game) Turn() int {
	return len(g.history)
}

// History returns a copy of the committed moves.
func (g *Game) History() []move.Move {
	h := make([]move.Move, len(g.history))
	copy(h, g.history)
	return h
}

// LastMove is move.Invalid before the first move.
func (g *Game) LastMove() move.Move {
	if len(g.history) == 0 {
		return move.Invalid
	}
	return g.history[len(g.history)-1]
}

// PlayMove commits a move for the player on turn, then checks for a win,
// then for a full board, and only then passes the turn.
func (g *Game) PlayMove(m move.Move) error {
	if !g.Playing() {
		return ErrGameOver
	}
	if err := g.board.Place(m.X, m.Y, g.onturn); err != nil {
		return err
	}
	g.history = append(g.history, m)
	switch {
	case g.board.CheckWin(m.X, m.Y, g.onturn):
		g.result = winFor(g.onturn)
	case g.board.IsFull():
		g.result = Draw
	default:
		g.onturn = g.onturn.Opponent()
	}
	log.Debug().Str("uid", g.uid).Str("move", m.String()).
		Str("onturn", g.onturn.String()).Str("result", g.result.String()).
		Msg("played-move")
	return nil
}

// PlayAI asks c for a move for the player on turn and commits it.
func (g *Game) PlayAI(c MoveChooser, difficulty int) (move.Move, error) {
	if !g.Playing() {
		return move.Invalid, ErrGameOver
	}
	m := c.ChooseMove(g.board, g.onturn, difficulty)
	if !m.IsValid() {
		return m, ErrNoMove
	}
	if err := g.PlayMove(m); err != nil {
		return m, fmt.Errorf("engine chose %v: %w", m, err)
	}
	return m, nil
}

// Undo takes back the last move and gives the turn back to whoever played
// it. A finished game becomes ongoing again.
func (g *Game) Undo() error {
	if len(g.history) == 0 {
		return ErrNothingToUndo
	}
	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.board.Unplace(last.X, last.Y)
	g.result = Ongoing
	g.onturn = g.firstPlayer
	if len(g.history)%2 == 1 {
		g.onturn = g.firstPlayer.Opponent()
	}
	return nil
}

// Fingerprint hashes the current position, so identical positions reached
// in different games or move orders compare equal.
func (g *Game) Fingerprint() uint64 {
	return xxhash.Sum64String(g.board.Position())
}
