package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
)

const (
	agentUser   = "user"
	agentEngine = "engine"
)

type config struct {
	addr   string
	agents [2]string
	dbname string
	level  log.Level
	turns  int
}

func lookupEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func validAgent(agent string) bool {
	return agent == agentUser || agent == agentEngine
}

func loadConfig(args []string) (config, error) {
	var cfg config
	var level string
	flags := flag.NewFlagSet("nboard", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.StringVar(&cfg.addr, "addr", "", "serve the HTTP API on this address")
	flags.StringVar(&cfg.agents[white], "white", agentUser, "white agent: user or engine")
	flags.StringVar(&cfg.agents[black], "black", agentEngine, "black agent: user or engine")
	flags.StringVar(&cfg.dbname, "db", lookupEnv("PGDATABASE", ""), "postgres database name, empty disables persistence")
	flags.StringVar(&level, "log-level", lookupEnv("LOG_LEVEL", "info"), "log level")
	flags.IntVar(&cfg.turns, "turns", 0, "stop after this many moves, 0 plays forever")
	if err := flags.Parse(args); err != nil {
		return config{}, err
	}
	for _, agent := range cfg.agents {
		if !validAgent(agent) {
			return config{}, fmt.Errorf("invalid agent %q", agent)
		}
	}
	if cfg.turns < 0 {
		return config{}, fmt.Errorf("invalid turns %d", cfg.turns)
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return config{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg.level = parsed
	return cfg, nil
}

func newController(agent string, s side, input tokenReader, out io.Writer) controller {
	if agent == agentEngine {
		return newEngine(s)
	}
	return newHuman(s, input, out)
}
