// Package simulator plays solitaire rounds of Five Crowns with the advisor
// making every draw and discard decision, and aggregates the outcomes.
package simulator

import (
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/fivecrowns/crowns"
	"github.com/lox/fivecrowns/internal/advisor"
	"github.com/lox/fivecrowns/internal/finder"
	"github.com/lox/fivecrowns/internal/randutil"
	"github.com/lox/fivecrowns/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds   []int // Rounds to play; empty means every round
	Games    int   // Games per round
	MaxTurns int   // Turns before a game is abandoned
	Seed     int64

	// Budget stops the run from starting new games once this much time has
	// elapsed on Clock. Zero means no limit.
	Budget time.Duration

	Logger *log.Logger
	Clock  quartz.Clock

	// Progress is called after every game with the number of games completed
	// and the total planned.
	Progress func(done, total int)
}

// Report is the outcome of a simulation run
type Report struct {
	Seed      int64
	Stats     *statistics.Statistics
	Elapsed   time.Duration
	Truncated bool // Budget ran out before every game was played
}

// Simulator runs Five Crowns self-play simulations
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if len(config.Rounds) == 0 {
		config.Rounds = AllRounds()
	}
	return &Simulator{config: config}
}

// AllRounds returns rounds 1 through 11
func AllRounds() []int {
	rounds := make([]int, 0, crowns.MaxRound)
	for r := crowns.MinRound; r <= crowns.MaxRound; r++ {
		rounds = append(rounds, r)
	}
	return rounds
}

func (s *Simulator) validate() error {
	if s.config.Games <= 0 {
		return fmt.Errorf("games must be positive, got %d", s.config.Games)
	}
	if s.config.MaxTurns <= 0 {
		return fmt.Errorf("max turns must be positive, got %d", s.config.MaxTurns)
	}
	for _, r := range s.config.Rounds {
		if r < crowns.MinRound || r > crowns.MaxRound {
			return fmt.Errorf("round %d out of range %d-%d", r, crowns.MinRound, crowns.MaxRound)
		}
	}
	return nil
}

// Run plays every configured game. A cancelled context stops the run and the
// games completed so far are returned with the context's error.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	clock := s.config.Clock
	start := clock.Now()
	report := &Report{Seed: s.config.Seed, Stats: &statistics.Statistics{}}
	total := len(s.config.Rounds) * s.config.Games
	done := 0

	s.config.Logger.Info("Starting simulation",
		"rounds", s.config.Rounds, "games", s.config.Games, "maxTurns", s.config.MaxTurns, "seed", s.config.Seed)

run:
	for _, round := range s.config.Rounds {
		for game := 0; game < s.config.Games; game++ {
			if err := ctx.Err(); err != nil {
				report.Elapsed = clock.Since(start)
				return report, fmt.Errorf("simulation interrupted after %d games: %w", done, err)
			}
			if s.config.Budget > 0 && clock.Since(start) >= s.config.Budget {
				report.Truncated = true
				s.config.Logger.Warn("Time budget exhausted", "budget", s.config.Budget, "games", done, "planned", total)
				break run
			}

			result := s.playGame(round, randutil.Derive(s.config.Seed, done))
			report.Stats.Add(result)
			done++
			if s.config.Progress != nil {
				s.config.Progress(done, total)
			}
		}

		if rs := report.Stats.Round(round); rs != nil {
			s.config.Logger.Debug("Round complete",
				"round", round,
				"games", rs.Games,
				"wentOut", rs.WentOut,
				"meanTurns", rs.Turns.Mean(),
				"meanScore", rs.Score.Mean())
		}
	}

	report.Elapsed = clock.Since(start)
	if report.Stats.Games > 0 {
		if err := report.Stats.Validate(); err != nil {
			return nil, fmt.Errorf("statistics validation failed: %w", err)
		}
	}
	return report, nil
}

// playGame deals a hand for round and plays turns until the hand goes out,
// the turn limit is reached or the deck runs dry.
func (s *Simulator) playGame(round int, seed int64) statistics.GameResult {
	rng := randutil.New(seed)
	deck := crowns.NewDeck(round, rng)
	adv := advisor.New(rng, s.config.Logger)

	hand := deck.Deal(crowns.HandSize(round))
	pile := make([]crowns.Card, 0, crowns.DeckSize)
	if top, ok := deck.DealOne(); ok {
		pile = append(pile, top)
	}

	turns := 0
	for ; turns < s.config.MaxTurns; turns++ {
		if finder.Analyze(hand).CanGoOut() {
			break
		}

		var drawn crowns.Card
		if n := len(pile); n > 0 && adv.ShouldDrawFromDiscard(hand, pile[n-1]) {
			drawn = pile[n-1]
			pile = pile[:n-1]
		} else {
			c, ok := deck.DealOne()
			if !ok {
				break
			}
			drawn = c
		}
		hand = append(hand, drawn)

		suggestion, ok := adv.Discard(hand)
		if !ok {
			break
		}
		if i := slices.Index(hand, suggestion.Card); i >= 0 {
			hand = slices.Delete(hand, i, i+1)
		}
		pile = append(pile, suggestion.Card)
	}

	final := finder.Analyze(hand)
	result := statistics.GameResult{
		Round:      round,
		Seed:       seed,
		Turns:      turns,
		WentOut:    final.CanGoOut(),
		Score:      final.Score(),
		BooksFirst: final.Order == finder.BooksFirst,
	}
	s.config.Logger.Debug("Game complete",
		"round", round, "seed", seed, "turns", turns, "wentOut", result.WentOut, "score", result.Score)
	return result
}
