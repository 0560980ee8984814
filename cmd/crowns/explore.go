package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/fivecrowns/crowns"
	"github.com/lox/fivecrowns/internal/advisor"
	"github.com/lox/fivecrowns/internal/randutil"
	"github.com/lox/fivecrowns/internal/tui"
)

type ExploreCmd struct {
	Round   int    `short:"r" default:"1" help:"Starting round (1-11)"`
	LogFile string `help:"Write logs to this file while the explorer owns the terminal"`
}

func (c *ExploreCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}
	if c.Round < crowns.MinRound || c.Round > crowns.MaxRound {
		return fmt.Errorf("round must be between %d and %d, got %d", crowns.MinRound, crowns.MaxRound, c.Round)
	}

	// The explorer owns the terminal, so logs go to a file or nowhere.
	var sink io.Writer = io.Discard
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		sink = f
	}
	logger := log.NewWithOptions(sink, log.Options{
		Level:           e.logger.GetLevel(),
		ReportTimestamp: true,
	})

	model := tui.New(logger, advisor.New(randutil.New(e.seed), logger), c.Round)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running explorer: %w", err)
	}
	return nil
}
