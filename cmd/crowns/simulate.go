package main

import (
	"fmt"
	"io"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/fivecrowns/internal/display"
	"github.com/lox/fivecrowns/internal/fileutil"
	"github.com/lox/fivecrowns/internal/simulator"
)

type SimulateCmd struct {
	Games    int           `help:"Games per round (0 uses the config file)"`
	MaxTurns int           `help:"Turns before a game is abandoned (0 uses the config file)"`
	Rounds   []int         `help:"Rounds to simulate, comma separated (empty uses the config file)"`
	Budget   time.Duration `help:"Stop starting new games after this long (0 uses the config file)"`
	Out      string        `help:"Also write the JSON report to this file" type:"path"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}

	cfg := e.cfg.Simulation
	games, maxTurns, rounds := cfg.Games, cfg.MaxTurns, cfg.Rounds
	if c.Games != 0 {
		games = c.Games
	}
	if c.MaxTurns != 0 {
		maxTurns = c.MaxTurns
	}
	if len(c.Rounds) > 0 {
		rounds = c.Rounds
	}
	budget := c.Budget
	if budget == 0 {
		if budget, err = e.cfg.BudgetDuration(); err != nil {
			return err
		}
	}

	logger := e.logger.WithPrefix("simulate")
	ctx, stop := signalContext(logger)
	defer stop()

	sim := simulator.New(simulator.Config{
		Rounds:   rounds,
		Games:    games,
		MaxTurns: maxTurns,
		Seed:     e.seed,
		Budget:   budget,
		Logger:   logger,
		Clock:    quartz.NewReal(),
		Progress: func(done, total int) {
			if step := total / 10; step > 0 && done%step == 0 {
				logger.Info("Progress", "games", done, "total", total)
			}
		},
	})

	report, runErr := sim.Run(ctx)
	if report == nil {
		return runErr
	}
	if runErr != nil {
		logger.Warn("Reporting partial results", "error", runErr)
	}

	if c.Out != "" {
		data, err := report.JSON()
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		if err := fileutil.WriteFileAtomic(c.Out, data, 0644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		logger.Info("Wrote report", "file", c.Out)
	}

	if e.jsonOutput() {
		if err := e.writeJSON(report.Summary()); err != nil {
			return err
		}
	} else if _, err := io.WriteString(e.out, display.Report(report.Summary())); err != nil {
		return err
	}
	return runErr
}
