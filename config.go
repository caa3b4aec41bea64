package main

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds startup settings. Environment variables provide defaults and
// command line flags override them.
type Config struct {
	Debug       bool   `env:"CLIMBING_DEBUG" envDefault:"false"`
	Level       string `env:"CLIMBING_LEVEL" envDefault:"ledges.json"`
	TPS         int    `env:"CLIMBING_TPS" envDefault:"60"`
	DrawTraces  bool   `env:"CLIMBING_DRAW_TRACES" envDefault:"false"`
	BaseMonitor bool
}

func LoadConfig(args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}

	fs := flag.NewFlagSet("climbing", flag.ContinueOnError)
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug mode")
	fs.BoolVar(&cfg.BaseMonitor, "m", false, "use base monitor instead of primary (for multi-monitor setups)")
	fs.StringVar(&cfg.Level, "level", cfg.Level, "level name in levels/ (basename, .json optional)")
	fs.IntVar(&cfg.TPS, "tps", cfg.TPS, "simulation ticks per second")
	fs.BoolVar(&cfg.DrawTraces, "traces", cfg.DrawTraces, "draw ledge traces in the debug view")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("config: parse flags: %w", err)
	}

	if cfg.TPS <= 0 {
		return Config{}, fmt.Errorf("config: tps must be positive, got %d", cfg.TPS)
	}
	return cfg, nil
}
