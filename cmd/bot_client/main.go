// bot_client asks a running bot for a move:
//
//	bot_client [flags] <position> [player]
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/bot"
	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/game"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	positional := cfg.Args()
	if len(positional) == 0 {
		fmt.Fprintln(os.Stderr, "usage: bot_client [flags] <position> [player]")
		os.Exit(2)
	}
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	g, err := game.NewFromPosition(positional[0])
	if err != nil {
		log.Fatal().Err(err).Msg("bad-position")
	}
	p := g.PlayerOnTurn()
	if len(positional) > 1 {
		p, err = board.PlayerFromString(positional[1])
		if err != nil {
			log.Fatal().Err(err).Msg("bad-player")
		}
	}

	nc, err := bot.Connect(context.Background(), cfg.GetString(config.ConfigNatsURL))
	if err != nil {
		log.Fatal().Err(err).Msg("connect")
	}
	defer nc.Close()

	client := bot.NewClient(nc, cfg.GetString(config.ConfigBotSubject))
	m, win, err := client.RequestMove(g.Board(), p, cfg.GetInt(config.ConfigDifficulty))
	if err != nil {
		log.Fatal().Err(err).Msg("request")
	}
	fmt.Printf("%s plays %s %v", p, m.ShortDescription(g.Board().Dim()), m)
	if win {
		fmt.Print(" and wins")
	}
	fmt.Println()
}
