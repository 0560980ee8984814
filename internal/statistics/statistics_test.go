package statistics

import (
	"math"
	"testing"
)

func TestSample_Empty(t *testing.T) {
	s := &Sample{}

	if s.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty sample, got %f", s.Mean())
	}
	if s.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty sample, got %f", s.Variance())
	}
	if s.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty sample, got %f", s.StdError())
	}
	if s.Median() != 0 {
		t.Errorf("Expected median of 0 for empty sample, got %f", s.Median())
	}
}

func TestSample_MultipleValues(t *testing.T) {
	s := &Sample{}
	for _, v := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		s.Add(v)
	}

	if s.Mean() != 5 {
		t.Errorf("Expected mean of 5, got %f", s.Mean())
	}
	// Sample variance of the classic population-stddev-2 data set is 32/7.
	if math.Abs(s.Variance()-32.0/7.0) > 1e-9 {
		t.Errorf("Expected variance of %f, got %f", 32.0/7.0, s.Variance())
	}
	if s.Median() != 4.5 {
		t.Errorf("Expected median of 4.5, got %f", s.Median())
	}
	if s.Percentile(1) != 9 {
		t.Errorf("Expected 100th percentile of 9, got %f", s.Percentile(1))
	}
	if s.Percentile(0) != 2 {
		t.Errorf("Expected 0th percentile of 2, got %f", s.Percentile(0))
	}

	lo, hi := s.ConfidenceInterval95()
	if lo >= s.Mean() || hi <= s.Mean() {
		t.Errorf("Expected mean %f inside interval [%f, %f]", s.Mean(), lo, hi)
	}
}

func TestStatistics_Add(t *testing.T) {
	stats := &Statistics{}
	results := []GameResult{
		{Round: 1, Turns: 2, WentOut: true, Score: 0, BooksFirst: false},
		{Round: 1, Turns: 5, WentOut: false, Score: 12, BooksFirst: true},
		{Round: 3, Turns: 4, WentOut: true, Score: 0, BooksFirst: false},
	}
	for _, r := range results {
		stats.Add(r)
	}

	if stats.Games != 3 {
		t.Errorf("Expected 3 games, got %d", stats.Games)
	}
	if stats.WentOut != 2 {
		t.Errorf("Expected 2 went out, got %d", stats.WentOut)
	}
	if stats.Score.Mean() != 4 {
		t.Errorf("Expected mean score of 4, got %f", stats.Score.Mean())
	}

	r1 := stats.Round(1)
	if r1 == nil {
		t.Fatal("Expected stats for round 1")
	}
	if r1.Games != 2 || r1.BooksFirst != 1 || r1.RunsFirst != 1 {
		t.Errorf("Unexpected round 1 tallies: %+v", *r1)
	}
	if r1.Turns.Mean() != 3.5 {
		t.Errorf("Expected round 1 mean turns of 3.5, got %f", r1.Turns.Mean())
	}
	if r1.WentOutRate() != 0.5 {
		t.Errorf("Expected round 1 went out rate of 0.5, got %f", r1.WentOutRate())
	}
	if stats.Round(2) != nil {
		t.Error("Expected no stats for round 2")
	}

	rounds := stats.Rounds()
	if len(rounds) != 2 || rounds[0].Round != 1 || rounds[1].Round != 3 {
		t.Errorf("Expected rounds [1 3], got %d entries", len(rounds))
	}

	if err := stats.Validate(); err != nil {
		t.Errorf("Expected valid statistics, got %v", err)
	}
}

func TestStatistics_Validate(t *testing.T) {
	empty := &Statistics{}
	if err := empty.Validate(); err == nil {
		t.Error("Expected error for empty statistics")
	}

	stats := &Statistics{}
	stats.Add(GameResult{Round: 2, Turns: 1, WentOut: true})
	stats.Games++ // corrupt the total
	if err := stats.Validate(); err == nil {
		t.Error("Expected error when totals disagree")
	}
}
