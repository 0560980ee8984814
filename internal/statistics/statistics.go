package statistics

import (
	"fmt"
	"math"
	"slices"
	"sort"
)

// GameResult is the outcome of one simulated game of a single round
type GameResult struct {
	Round      int   // Round number (1-11)
	Seed       int64 // RNG seed for this game (for replay)
	Turns      int   // Turns played before going out or giving up
	WentOut    bool  // Did the hand go out?
	Score      int   // Leftover points when the game ended
	BooksFirst bool  // Was books-first the best order for the final hand?
}

// Sample accumulates running sums for one measured quantity
type Sample struct {
	N      int
	Sum    float64
	Sum2   float64   // Sum of squares for variance calculation
	Values []float64 // Store all values for median/percentile calculation
}

// Add records a value
func (s *Sample) Add(v float64) {
	s.N++
	s.Sum += v
	s.Sum2 += v * v
	s.Values = append(s.Values, v)
}

// Mean returns the arithmetic mean
func (s *Sample) Mean() float64 {
	if s.N == 0 {
		return 0
	}
	return s.Sum / float64(s.N)
}

// Variance returns the sample variance
func (s *Sample) Variance() float64 {
	if s.N < 2 {
		return 0
	}
	mean := s.Mean()
	v := (s.Sum2 - float64(s.N)*mean*mean) / float64(s.N-1)
	return math.Max(v, 0)
}

// StdDev returns the sample standard deviation
func (s *Sample) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Sample) StdError() float64 {
	if s.N == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.N))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Sample) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median value
func (s *Sample) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Sample) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// RoundStats tracks the games played for one round
type RoundStats struct {
	Round      int
	Games      int
	WentOut    int
	BooksFirst int
	RunsFirst  int
	Turns      Sample
	Score      Sample
}

// WentOutRate returns the fraction of games that went out
func (r *RoundStats) WentOutRate() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.WentOut) / float64(r.Games)
}

// Statistics aggregates simulated games across rounds
type Statistics struct {
	Games   int
	WentOut int
	Score   Sample

	rounds map[int]*RoundStats
}

// Add incorporates a game result into the statistics
func (s *Statistics) Add(result GameResult) {
	if s.rounds == nil {
		s.rounds = make(map[int]*RoundStats)
	}
	rs, ok := s.rounds[result.Round]
	if !ok {
		rs = &RoundStats{Round: result.Round}
		s.rounds[result.Round] = rs
	}

	s.Games++
	rs.Games++
	if result.WentOut {
		s.WentOut++
		rs.WentOut++
	}
	if result.BooksFirst {
		rs.BooksFirst++
	} else {
		rs.RunsFirst++
	}

	s.Score.Add(float64(result.Score))
	rs.Turns.Add(float64(result.Turns))
	rs.Score.Add(float64(result.Score))
}

// Round returns the stats for round, or nil when no game of that round was played
func (s *Statistics) Round(round int) *RoundStats {
	return s.rounds[round]
}

// Rounds returns the per-round stats ordered by round
func (s *Statistics) Rounds() []*RoundStats {
	out := make([]*RoundStats, 0, len(s.rounds))
	for _, rs := range s.rounds {
		out = append(out, rs)
	}
	slices.SortFunc(out, func(a, b *RoundStats) int { return a.Round - b.Round })
	return out
}

// Validate checks that the per-round tallies agree with the totals
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}
	if s.Score.N != s.Games {
		return fmt.Errorf("score samples (%d) do not match games count (%d)", s.Score.N, s.Games)
	}

	games, wentOut := 0, 0
	for _, rs := range s.rounds {
		if rs.BooksFirst+rs.RunsFirst != rs.Games {
			return fmt.Errorf("round %d: order picks (%d) do not match games (%d)",
				rs.Round, rs.BooksFirst+rs.RunsFirst, rs.Games)
		}
		if rs.WentOut > rs.Games {
			return fmt.Errorf("round %d: went out (%d) exceeds games (%d)", rs.Round, rs.WentOut, rs.Games)
		}
		games += rs.Games
		wentOut += rs.WentOut
	}
	if games != s.Games {
		return fmt.Errorf("round games total (%d) does not match total games (%d)", games, s.Games)
	}
	if wentOut != s.WentOut {
		return fmt.Errorf("round went out total (%d) does not match total (%d)", wentOut, s.WentOut)
	}
	return nil
}
