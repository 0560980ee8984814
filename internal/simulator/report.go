package simulator

import (
	"encoding/json"
)

// RoundSummary is the serialisable view of one round's statistics.
type RoundSummary struct {
	Round       int     `json:"round"`
	Games       int     `json:"games"`
	WentOut     int     `json:"went_out"`
	WentOutRate float64 `json:"went_out_rate"`
	MeanTurns   float64 `json:"mean_turns"`
	StdDevTurns float64 `json:"stddev_turns"`
	MeanScore   float64 `json:"mean_score"`
	StdDevScore float64 `json:"stddev_score"`
	BooksFirst  int     `json:"books_first"`
	RunsFirst   int     `json:"runs_first"`
}

// Summary is the serialisable view of a Report.
type Summary struct {
	Seed      int64          `json:"seed"`
	Games     int            `json:"games"`
	WentOut   int            `json:"went_out"`
	MeanScore float64        `json:"mean_score"`
	ElapsedMS int64          `json:"elapsed_ms"`
	Truncated bool           `json:"truncated"`
	Rounds    []RoundSummary `json:"rounds"`
}

// Summary flattens the report for rendering.
func (r *Report) Summary() Summary {
	s := Summary{
		Seed:      r.Seed,
		Games:     r.Stats.Games,
		WentOut:   r.Stats.WentOut,
		MeanScore: r.Stats.Score.Mean(),
		ElapsedMS: r.Elapsed.Milliseconds(),
		Truncated: r.Truncated,
		Rounds:    []RoundSummary{},
	}
	for _, rs := range r.Stats.Rounds() {
		s.Rounds = append(s.Rounds, RoundSummary{
			Round:       rs.Round,
			Games:       rs.Games,
			WentOut:     rs.WentOut,
			WentOutRate: rs.WentOutRate(),
			MeanTurns:   rs.Turns.Mean(),
			StdDevTurns: rs.Turns.StdDev(),
			MeanScore:   rs.Score.Mean(),
			StdDevScore: rs.Score.StdDev(),
			BooksFirst:  rs.BooksFirst,
			RunsFirst:   rs.RunsFirst,
		})
	}
	return s
}

// JSON encodes the report summary, indented for files and terminals.
func (r *Report) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(r.Summary(), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
