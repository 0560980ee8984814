package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/fivecrowns/crowns"
	"github.com/lox/fivecrowns/internal/config"
	"github.com/lox/fivecrowns/internal/display"
	"github.com/lox/fivecrowns/internal/randutil"
)

// Globals are the flags shared by every command. Flags override the
// configuration file.
type Globals struct {
	Config   string `help:"HCL configuration file" default:"${config_file}" type:"path"`
	LogLevel string `help:"Log level (debug|info|warn|error)"`
	NoColor  bool   `help:"Disable coloured output"`
	Seed     int64  `help:"Random seed for tie-breaks and deals (0 uses the config file, then the clock)"`
	JSON     bool   `name:"json" help:"Print JSON instead of text"`

	Stdout io.Writer `kong:"-"`
	Stderr io.Writer `kong:"-"`
}

// env is the resolved configuration a command runs with.
type env struct {
	cfg    *config.Config
	logger *log.Logger
	seed   int64
	out    io.Writer
}

func (g *Globals) setup() (*env, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", g.Config, err)
	}

	if g.LogLevel != "" {
		cfg.Output.LogLevel = g.LogLevel
	}
	if g.NoColor {
		cfg.Output.Color = "never"
	}
	if g.JSON {
		cfg.Output.Format = "json"
	}
	if g.Seed != 0 {
		cfg.Advisor.Seed = g.Seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	display.SetColorMode(cfg.Output.Color)

	stderr := g.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	logger, err := newLogger(cfg.Output.LogLevel, stderr)
	if err != nil {
		return nil, err
	}

	seed := randutil.Seed(cfg.Advisor.Seed)
	logger.Debug("Loaded configuration", "file", g.Config, "seed", seed, "format", cfg.Output.Format)

	out := g.Stdout
	if out == nil {
		out = os.Stdout
	}
	return &env{cfg: cfg, logger: logger, seed: seed, out: out}, nil
}

func (e *env) jsonOutput() bool {
	return e.cfg.Output.Format == "json"
}

func (e *env) writeJSON(v any) error {
	enc := json.NewEncoder(e.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// HandArgs are the round and cards shared by the hand commands.
type HandArgs struct {
	Round int      `short:"r" required:"" help:"Round number (1-11); the wild rank is round+2"`
	Cards []string `arg:"" optional:"" help:"Cards in the hand, e.g. 3S 4S 5S J1 (ranks 3-9 X J Q K, suits S C D H T, jokers J1-J3)"`
}

func (h *HandArgs) hand() ([]crowns.Card, error) {
	if h.Round < crowns.MinRound || h.Round > crowns.MaxRound {
		return nil, fmt.Errorf("round must be between %d and %d, got %d", crowns.MinRound, crowns.MaxRound, h.Round)
	}
	var cards []crowns.Card
	for _, arg := range h.Cards {
		parsed, err := crowns.ParseHand(arg, h.Round)
		if err != nil {
			return nil, err
		}
		cards = append(cards, parsed...)
	}
	return cards, nil
}
