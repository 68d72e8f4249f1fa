// Package bot serves engine moves over NATS request/reply. A request is a
// JSON position; the reply is the move the engine would play there.
package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/bytedance/sonic"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/ai/player"
	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/game"
)

const connectAttempts = 5

// Request asks for a move. Player may be empty, in which case the side to
// move is inferred from the stone counts. A zero Difficulty means the
// configured default.
type Request struct {
	Position   string `json:"position"`
	Player     string `json:"player,omitempty"`
	Difficulty int    `json:"difficulty,omitempty"`
}

// Response is the engine's move. On a full board X and Y are -1. Win is
// true if the move completes five.
type Response struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Win   bool   `json:"win"`
	Error string `json:"error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Bot struct {
	config *config.Config

	// one engine serves every request, one request at a time.
	mu     sync.Mutex
	engine *player.Engine
}

func NewBot(cfg *config.Config) *Bot {
	return &Bot{config: cfg, engine: player.NewEngine(cfg)}
}

func errorReply(message string, err error) []byte {
	msg := message
	if err != nil {
		msg = fmt.Sprintf("%s: %s", msg, err.Error())
	}
	data, merr := sonic.Marshal(errorResponse{Error: msg})
	if merr != nil {
		// Should never happen, ideally.
		return []byte(`{"error":"could not encode error"}`)
	}
	return data
}

// Deserialize decodes a request into a game and the player and difficulty
// to move with.
func (bot *Bot) Deserialize(data []byte) (*game.Game, board.Player, int, error) {
	req := Request{}
	if err := sonic.Unmarshal(data, &req); err != nil {
		return nil, board.NoPlayer, 0, err
	}
	g, err := game.NewFromPosition(req.Position)
	if err != nil {
		return nil, board.NoPlayer, 0, err
	}
	p := g.PlayerOnTurn()
	if req.Player != "" {
		p, err = board.PlayerFromString(req.Player)
		if err != nil {
			return nil, board.NoPlayer, 0, err
		}
	}
	d := req.Difficulty
	if d == 0 {
		d = bot.engine.Difficulty()
	}
	return g, p, player.ClampDifficulty(d), nil
}

func (bot *Bot) handle(data []byte) []byte {
	g, p, difficulty, err := bot.Deserialize(data)
	if err != nil {
		return errorReply("could not parse request", err)
	}
	b := g.Board()

	bot.mu.Lock()
	m := bot.engine.ChooseMove(b, p, difficulty)
	bot.mu.Unlock()

	resp := Response{X: m.X, Y: m.Y}
	if m.IsValid() {
		if err := b.Place(m.X, m.Y, p); err != nil {
			return errorReply("engine chose an illegal move", err)
		}
		resp.Win = b.CheckWin(m.X, m.Y, p)
	}
	log.Info().Str("move", m.ShortDescription(b.Dim())).Str("player", p.String()).
		Int("difficulty", difficulty).Bool("win", resp.Win).Msg("generated-move")
	out, err := sonic.Marshal(resp)
	if err != nil {
		return errorReply("could not encode response", err)
	}
	return out
}

// Connect dials NATS, backing off between failed attempts.
func Connect(ctx context.Context, url string) (*nats.Conn, error) {
	var nc *nats.Conn
	err := retry.Do(
		func() error {
			var err error
			nc, err = nats.Connect(url, nats.Name("gomoku-bot"))
			return err
		},
		retry.Context(ctx),
		retry.Attempts(connectAttempts),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			log.Err(err).Uint("n", n).Str("url", url).Msg("nats-connect-failed-try-again")
			return retry.BackOffDelay(n, err, config)
		}),
	)
	if err != nil {
		return nil, err
	}
	return nc, nil
}

// Main answers requests on subject until ctx is done.
func Main(ctx context.Context, subject string, bot *Bot) error {
	nc, err := Connect(ctx, bot.config.GetString(config.ConfigNatsURL))
	if err != nil {
		return err
	}
	defer nc.Close()

	_, err = nc.Subscribe(subject, func(m *nats.Msg) {
		log.Debug().Int("bytes", len(m.Data)).Msg("recv")
		if err := m.Respond(bot.handle(m.Data)); err != nil {
			log.Err(err).Msg("respond-failed")
		}
	})
	if err != nil {
		return err
	}
	if err := nc.Flush(); err != nil {
		return err
	}
	if err := nc.LastError(); err != nil {
		return err
	}
	log.Info().Str("subject", subject).Msg("listening")

	<-ctx.Done()
	if err := nc.Drain(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
		return err
	}
	return nil
}
