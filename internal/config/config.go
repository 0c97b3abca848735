package config

import (
	"flag"
	"io"
	"os"
	"strconv"
)

type Config struct {
	// Verbose enables diagnostic logging on stderr.
	Verbose bool
	// Attest proves every answered shot against the fleet commitment.
	// It implies Verbose.
	Attest bool
	// Seed for the random source; 0 means seed from the clock.
	Seed int64
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getenvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return def
}

// Load parses command line flags; environment variables provide the defaults.
func Load(name string, args []string, stderr io.Writer) (Config, error) {
	var cfg Config
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	verbose := getenvBool("BATTLESHIP_DEBUG", false)
	fs.BoolVar(&cfg.Verbose, "d", verbose, "verbose diagnostics on stderr")
	fs.BoolVar(&cfg.Verbose, "debug", verbose, "verbose diagnostics on stderr")
	fs.BoolVar(&cfg.Attest, "attest", getenvBool("BATTLESHIP_ATTEST", false), "prove every answered shot against the fleet commitment")
	fs.Int64Var(&cfg.Seed, "seed", getenvInt64("BATTLESHIP_SEED", 0), "random seed (0 = clock)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	// proofs are only published through the log
	if cfg.Attest {
		cfg.Verbose = true
	}
	return cfg, nil
}
