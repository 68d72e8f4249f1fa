package bot

import (
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/move"
)

const requestTimeout = 10 * time.Second

type Client struct {
	nc      *nats.Conn
	subject string
}

func NewClient(nc *nats.Conn, subject string) *Client {
	return &Client{nc: nc, subject: subject}
}

// MakeRequest encodes a move request for b with p to move.
func MakeRequest(b *board.Board, p board.Player, difficulty int) ([]byte, error) {
	return sonic.Marshal(Request{
		Position:   b.Position(),
		Player:     p.String(),
		Difficulty: difficulty,
	})
}

// ParseResponse decodes a bot reply into a move and whether it wins.
func ParseResponse(data []byte) (move.Move, bool, error) {
	resp := Response{}
	if err := sonic.Unmarshal(data, &resp); err != nil {
		return move.Invalid, false, err
	}
	if resp.Error != "" {
		return move.Invalid, false, errors.New("bot returned: " + resp.Error)
	}
	return move.New(resp.X, resp.Y), resp.Win, nil
}

// RequestMove sends a position to the bot and waits for its move.
func (c *Client) RequestMove(b *board.Board, p board.Player, difficulty int) (move.Move, bool, error) {
	data, err := MakeRequest(b, p, difficulty)
	if err != nil {
		return move.Invalid, false, err
	}
	res, err := c.nc.Request(c.subject, data, requestTimeout)
	if err != nil {
		if c.nc.LastError() != nil {
			log.Error().Err(c.nc.LastError()).Msg("nats-last-error")
		}
		return move.Invalid, false, err
	}
	log.Debug().Str("res", string(res.Data)).Msg("bot-response")
	return ParseResponse(res.Data)
}
