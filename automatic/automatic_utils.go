package automatic

// Data collection for automatic games: computer vs computer, many at once.

import (
	"context"
	"encoding/csv"
	"errors"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/gomoku/ai/player"
	"github.com/domino14/gomoku/config"
)

// workerRandomizer gives each worker its own source. With a fixed seed the
// whole run is reproducible per worker.
func workerRandomizer(seed int64, worker int) player.Randomizer {
	if seed == 0 {
		return player.NewRandomizer(0)
	}
	return player.NewRandomizer(seed + int64(worker))
}

// CompVsComp plays the configured number of games between difficulty p1
// and difficulty p2 on the configured number of threads, alternating who
// moves first. Every game is written to the CSV log as it finishes.
// Cancelling ctx stops new games from starting; games in progress finish
// and are included in the summary. A failed write to the log also stops
// new games, and its error is returned.
func CompVsComp(ctx context.Context, cfg *config.Config, p1, p2 int) (*Summary, error) {
	numGames := cfg.GetInt(config.ConfigAutoplayGames)
	threads := max(1, cfg.GetInt(config.ConfigAutoplayThreads))
	outputFilename := cfg.GetString(config.ConfigAutoplayOutput)
	seed := cfg.GetInt64(config.ConfigSeed)

	logfile, err := os.Create(outputFilename)
	if err != nil {
		return nil, err
	}
	defer logfile.Close()
	log.Info().Int("games", numGames).Int("threads", threads).
		Int("p1-difficulty", p1).Int("p2-difficulty", p2).
		Str("output", outputFilename).Msg("starting-autoplay")

	jobs := make(chan int, 100)
	results := make(chan GameResult, 100)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	workers, wctx := errgroup.WithContext(ctx)
	workers.Go(func() error {
		defer close(jobs)
		for i := 0; i < numGames; i++ {
			select {
			case jobs <- i:
			case <-wctx.Done():
				log.Info().Msg("got stop signal, exiting soon...")
				return nil
			}
		}
		log.Debug().Msg("finished-queueing-jobs")
		return nil
	})
	for t := 0; t < threads; t++ {
		t := t
		workers.Go(func() error {
			r := NewGameRunner(cfg, workerRandomizer(seed, t))
			r.SetDifficulties(p1, p2)
			for i := range jobs {
				res, err := r.PlayGame(i%2 == 0)
				if err != nil {
					return err
				}
				results <- res
			}
			return nil
		})
	}

	var collected []GameResult
	collector := errgroup.Group{}
	collector.Go(func() error {
		// results is drained to the end even after a failed write, or the
		// workers would block sending to it.
		var writeErr error
		w := csv.NewWriter(logfile)
		if err := w.Write(csvHeader); err != nil {
			writeErr = err
			cancel()
		}
		for res := range results {
			collected = append(collected, res)
			if len(collected)%100 == 0 {
				log.Info().Int("games", len(collected)).Msg("autoplay-progress")
			}
			if writeErr != nil {
				continue
			}
			if err := w.Write(res.record()); err != nil {
				log.Err(err).Str("output", outputFilename).Msg("autoplay-log-write-failed")
				writeErr = err
				cancel()
			}
		}
		if writeErr != nil {
			return writeErr
		}
		w.Flush()
		return w.Error()
	})

	werr := workers.Wait()
	close(results)
	cerr := collector.Wait()
	if werr != nil && !errors.Is(werr, context.Canceled) {
		return nil, werr
	}
	if cerr != nil {
		return nil, cerr
	}
	log.Info().Int("games", len(collected)).Msg("all-games-finished")
	return Summarize(collected), nil
}
