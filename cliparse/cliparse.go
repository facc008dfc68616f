// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/hershey108/HH-CountMeUp/store"
)

// Supported database backends
const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

type Config struct {
	Port              int
	DatabaseURL       string
	DatabaseType      string
	CandidateCount    int
	MaxVotes          int
	ResetOnStart      bool
	SimulationVotes   int
	SimulationWorkers int
	LogLevel          slog.Level
	LogSalt           string
	EnvFile           string
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var logLevel string

	flags := flag.NewFlagSet("countmeup", flag.ContinueOnError)

	// Network and storage (can be CLI args or env)
	flags.IntVar(&cfg.Port, "p", 0, "Server port")
	flags.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	flags.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Election settings
	flags.IntVar(&cfg.CandidateCount, "candidates", 0, "Number of candidates to seed")
	flags.IntVar(&cfg.MaxVotes, "max-votes", 0, "Maximum votes per voter")
	flags.BoolVar(&cfg.ResetOnStart, "reset", true, "Drop and recreate tables on start")

	// Simulation harness
	flags.IntVar(&cfg.SimulationVotes, "sim-votes", 0, "Votes cast by one simulation run")
	flags.IntVar(&cfg.SimulationWorkers, "sim-workers", 0, "Concurrent simulation workers")

	flags.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&cfg.LogSalt, "log-salt", "", "Salt for voter fingerprints in logs (prefer env)")
	flags.StringVar(&cfg.EnvFile, "env", ".env", "Optional dotenv file")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	// Only flags given on the command line beat the environment, so an
	// explicit zero is validated instead of read as "unset"
	set := make(map[string]bool)
	flags.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if err := LoadEnvFile(cfg.EnvFile); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	var err error
	if !set["p"] {
		if cfg.Port, err = envInt("PORT", 8080); err != nil {
			return Config{}, err
		}
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == DatabasePostgres {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "file:countmeup.db"
	}

	if !set["candidates"] {
		if cfg.CandidateCount, err = envInt("CANDIDATE_COUNT", 5); err != nil {
			return Config{}, err
		}
	}
	if cfg.CandidateCount < 1 {
		return Config{}, fmt.Errorf("%w: candidate count must be at least 1, got %d", store.ErrConfiguration, cfg.CandidateCount)
	}

	if !set["max-votes"] {
		if cfg.MaxVotes, err = envInt("MAX_VOTES", 3); err != nil {
			return Config{}, err
		}
	}
	if cfg.MaxVotes < 1 {
		return Config{}, fmt.Errorf("%w: max votes must be at least 1, got %d", store.ErrConfiguration, cfg.MaxVotes)
	}

	if v := os.Getenv("RESET_ON_START"); !set["reset"] && v != "" {
		if cfg.ResetOnStart, err = strconv.ParseBool(v); err != nil {
			return Config{}, errors.New("invalid RESET_ON_START env variable")
		}
	}

	if !set["sim-votes"] {
		if cfg.SimulationVotes, err = envInt("SIMULATION_VOTES", 10000); err != nil {
			return Config{}, err
		}
	}
	if !set["sim-workers"] {
		if cfg.SimulationWorkers, err = envInt("SIMULATION_WORKERS", 8); err != nil {
			return Config{}, err
		}
	}
	if cfg.SimulationVotes < 1 || cfg.SimulationWorkers < 1 {
		return Config{}, fmt.Errorf("%w: simulation votes and workers must be positive", store.ErrConfiguration)
	}

	if logLevel == "" {
		logLevel = os.Getenv("LOG_LEVEL")
	}
	if logLevel != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(strings.ToUpper(logLevel))); err != nil {
			return Config{}, fmt.Errorf("invalid log level %q", logLevel)
		}
	}

	if cfg.LogSalt == "" {
		cfg.LogSalt = os.Getenv("LOG_SALT")
	}

	return cfg, nil
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment.
// Variables that are already set win. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

func envInt(name string, def int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", name)
	}
	return n, nil
}
