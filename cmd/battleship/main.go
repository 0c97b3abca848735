package main

import (
	"context"
	"errors"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"battleship-ai/internal/ai"
	"battleship-ai/internal/app"
	"battleship-ai/internal/config"
	"battleship-ai/internal/game"
	"battleship-ai/internal/logging"
	"battleship-ai/internal/zk"
)

func main() {
	cfg, err := config.Load(os.Args[0], os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	log := logging.New(os.Stderr, cfg.Verbose)
	zk.SetLogger(log, cfg.Verbose)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Debug().Int64("seed", seed).Bool("attest", cfg.Attest).Msg("starting")
	rng := rand.New(rand.NewSource(seed))

	own := game.NewBoard()
	if err := game.GenerateFleet(own, rng); err != nil {
		log.Fatal().Err(err).Msg("generate fleet")
	}
	opponent := game.NewOpponentBoard(game.Fleet)
	engine := ai.New(opponent, rng, log)

	var opts []app.Option
	if cfg.Verbose {
		a, err := app.NewAttestor(own, cfg.Attest, log)
		if err != nil {
			log.Fatal().Err(err).Msg("attestation")
		}
		opts = append(opts, app.WithAttestation(a))
	}
	ctrl := app.NewController(own, engine, os.Stdout, log, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		// unblock the pending stdin read on interrupt
		<-ctx.Done()
		os.Stdin.Close()
	}()

	if err := ctrl.Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("game aborted")
		os.Exit(1)
	}
}
