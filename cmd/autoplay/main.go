package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/automatic"
	"github.com/domino14/gomoku/config"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p1 := cfg.GetInt(config.ConfigAutoplayP1)
	p2 := cfg.GetInt(config.ConfigAutoplayP2)
	start := time.Now()
	summary, err := automatic.CompVsComp(ctx, cfg, p1, p2)
	if err != nil {
		log.Fatal().Err(err).Msg("autoplay-failed")
	}
	log.Info().Dur("elapsed", time.Since(start)).
		Str("log", cfg.GetString(config.ConfigAutoplayOutput)).Msg("autoplay-done")
	fmt.Print(summary)
}
