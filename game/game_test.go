package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/move"
)

func playAll(is *is.I, g *Game, moves ...move.Move) {
	for _, m := range moves {
		is.NoErr(g.PlayMove(m))
	}
}

func TestTurnsAlternate(t *testing.T) {
	is := is.New(t)
	g := NewGame(15)
	is.Equal(g.PlayerOnTurn(), board.Black)
	is.NoErr(g.PlayMove(move.New(7, 7)))
	is.Equal(g.PlayerOnTurn(), board.White)
	is.Equal(g.Board().At(7, 7), board.BlackStone)
	is.NoErr(g.PlayMove(move.New(7, 8)))
	is.Equal(g.PlayerOnTurn(), board.Black)
	is.Equal(g.Board().At(7, 8), board.WhiteStone)
	is.Equal(g.Turn(), 2)
	is.Equal(g.LastMove(), move.New(7, 8))
	is.Equal(g.History(), []move.Move{move.New(7, 7), move.New(7, 8)})
	is.True(g.Playing())
	is.Equal(g.Winner(), board.NoPlayer)
}

func TestIllegalMoveKeepsTurn(t *testing.T) {
	is := is.New(t)
	g := NewGame(15)
	is.NoErr(g.PlayMove(move.New(7, 7)))
	err := g.PlayMove(move.New(7, 7))
	is.True(errors.Is(err, board.ErrOccupied))
	err = g.PlayMove(move.New(15, 0))
	is.True(errors.Is(err, board.ErrOutOfBounds))
	is.Equal(g.PlayerOnTurn(), board.White)
	is.Equal(g.Turn(), 1)
}

func TestWin(t *testing.T) {
	is := is.New(t)
	g := NewGame(15)
	playAll(is, g,
		move.New(3, 3), move.New(0, 0),
		move.New(4, 3), move.New(0, 1),
		move.New(5, 3), move.New(0, 2),
		move.New(6, 3), move.New(0, 3),
		move.New(7, 3))
	is.Equal(g.Result(), BlackWins)
	is.Equal(g.Winner(), board.Black)
	is.True(!g.Playing())
	// the winner stays on turn.
	is.Equal(g.PlayerOnTurn(), board.Black)
	is.Equal(g.PlayMove(move.New(10, 10)), ErrGameOver)
	is.True(strings.Contains(g.ToDisplayText(), "Game is over: black wins."))
}

func TestDraw(t *testing.T) {
	is := is.New(t)
	g := NewGame(3)
	// a 3x3 board can never hold five.
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			is.NoErr(g.PlayMove(move.New(x, y)))
		}
	}
	is.Equal(g.Result(), Draw)
	is.Equal(g.Winner(), board.NoPlayer)
	is.True(g.Board().IsFull())
}

func TestUndo(t *testing.T) {
	is := is.New(t)
	g := NewGame(15)
	is.Equal(g.Undo(), ErrNothingToUndo)
	playAll(is, g,
		move.New(3, 3), move.New(0, 0),
		move.New(4, 3), move.New(0, 1),
		move.New(5, 3), move.New(0, 2),
		move.New(6, 3), move.New(0, 3),
		move.New(7, 3))
	fp := g.Fingerprint()
	is.NoErr(g.Undo())
	is.True(g.Playing())
	is.Equal(g.PlayerOnTurn(), board.Black)
	is.Equal(g.Board().At(7, 3), board.Empty)
	is.True(g.Fingerprint() != fp)
	is.NoErr(g.Undo())
	is.Equal(g.PlayerOnTurn(), board.White)
	is.Equal(g.Turn(), 7)
	is.Equal(g.Board().NumStones(), 7)
}

func TestFromPosition(t *testing.T) {
	is := is.New(t)
	g, err := NewFromPosition("5/1XO2/2X2/5/5")
	is.NoErr(err)
	is.Equal(g.PlayerOnTurn(), board.White)
	is.Equal(g.Board().Dim(), 5)
	is.Equal(g.Undo(), ErrNothingToUndo)

	g, err = NewFromPosition("5/1XO2/5/5/5")
	is.NoErr(err)
	is.Equal(g.PlayerOnTurn(), board.Black)
	is.NoErr(g.PlayMove(move.New(2, 2)))
	is.NoErr(g.Undo())
	is.Equal(g.PlayerOnTurn(), board.Black)

	_, err = NewFromPosition("5/5/5")
	is.True(errors.Is(err, board.ErrBadPosition))
}

func TestFingerprintIgnoresMoveOrder(t *testing.T) {
	is := is.New(t)
	g1 := NewGame(15)
	playAll(is, g1, move.New(7, 7), move.New(8, 8), move.New(6, 6), move.New(9, 9))
	g2 := NewGame(15)
	playAll(is, g2, move.New(6, 6), move.New(9, 9), move.New(7, 7), move.New(8, 8))
	is.Equal(g1.Fingerprint(), g2.Fingerprint())
	is.True(g1.Uid() != g2.Uid())
}

type scriptedChooser struct {
	moves []move.Move
	asked []board.Player
}

func (s *scriptedChooser) ChooseMove(b *board.Board, p board.Player, difficulty int) move.Move {
	s.asked = append(s.asked, p)
	m := s.moves[0]
	s.moves = s.moves[1:]
	return m
}

func TestPlayAI(t *testing.T) {
	is := is.New(t)
	g := NewGame(15)
	c := &scriptedChooser{moves: []move.Move{move.New(7, 7), move.New(7, 7), move.Invalid}}
	m, err := g.PlayAI(c, 2)
	is.NoErr(err)
	is.Equal(m, move.New(7, 7))
	_, err = g.PlayAI(c, 2)
	is.True(errors.Is(err, board.ErrOccupied))
	_, err = g.PlayAI(c, 2)
	is.Equal(err, ErrNoMove)
	is.Equal(c.asked, []board.Player{board.Black, board.White, board.White})
}

func TestDisplay(t *testing.T) {
	is := is.New(t)
	g := NewGame(15)
	playAll(is, g, move.New(7, 7))
	txt := g.ToDisplayText()
	is.True(strings.Contains(txt, "-> O white"))
	is.True(strings.Contains(txt, "Last move: H8"))
	is.True(strings.HasSuffix(txt, g.Board().Position()))
}
