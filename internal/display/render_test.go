package display

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lox/fivecrowns/crowns"
	"github.com/lox/fivecrowns/internal/advisor"
	"github.com/lox/fivecrowns/internal/finder"
	"github.com/lox/fivecrowns/internal/simulator"
	"github.com/lox/fivecrowns/internal/statistics"
)

func TestMain(m *testing.M) {
	SetColorMode("never")
	os.Exit(m.Run())
}

func TestCards(t *testing.T) {
	hand := crowns.MustParseHand("3S 7H XT J1", 1)
	assert.Equal(t, "[3S 7H XT J1]", Cards(hand))
	assert.Equal(t, "[]", Cards(nil))
	assert.Equal(t, "KD", Card(crowns.MustParseCard("KD", 1)))
}

func TestResult(t *testing.T) {
	res := finder.Evaluate(crowns.MustParseHand("4S 5S 6S 5C 5D", 11), finder.RunsFirst)
	out := Result(res)

	assert.Contains(t, out, "Order: runs-first")
	assert.Contains(t, out, "Books: none")
	assert.Contains(t, out, "Runs:\n  [4S 5S 6S]")
	assert.Contains(t, out, "Leftover: [5C 5D] (10 points)")
	assert.Contains(t, out, "0 single cards")
}

func TestResultGoesOut(t *testing.T) {
	res := finder.Analyze(crowns.MustParseHand("7H 8H XH", 5))
	out := Result(res)
	assert.Contains(t, out, "Goes out")
	assert.Contains(t, out, "(0 points)")
}

func TestSuggestion(t *testing.T) {
	out := Suggestion(advisor.Suggestion{
		Card:   crowns.MustParseCard("KC", 2),
		Reason: advisor.ReasonHighestSingle,
	})
	assert.Equal(t, "Discard KC (highest value single card)\n", out)
}

func TestDraw(t *testing.T) {
	take := Draw(advisor.DrawAdvice{FromDiscard: true, Discard: crowns.MustParseCard("6S", 1), SinglesBefore: 1, SinglesAfter: 1})
	assert.Contains(t, take, "Take the discard 6S")
	assert.Contains(t, take, "singles 1 -> 1")

	deck := Draw(advisor.DrawAdvice{FromDiscard: false, Discard: crowns.MustParseCard("KH", 1), SinglesBefore: 1, SinglesAfter: 2})
	assert.Contains(t, deck, "Draw from the deck")
	assert.NotContains(t, deck, "KH")
}

func TestReport(t *testing.T) {
	stats := &statistics.Statistics{}
	stats.Add(statistics.GameResult{Round: 3, Turns: 4, WentOut: true})
	stats.Add(statistics.GameResult{Round: 3, Turns: 6, Score: 18, BooksFirst: true})

	report := &simulator.Report{Seed: 11, Stats: stats, Elapsed: 1500 * time.Millisecond, Truncated: true}
	out := Report(report.Summary())

	assert.Contains(t, out, "Seed: 11")
	assert.Contains(t, out, "Elapsed: 1500ms")
	assert.Contains(t, out, "Time budget exhausted")
	assert.Contains(t, out, "Round")
	assert.Contains(t, out, "50.0")
	assert.Contains(t, out, "1/1")
}
