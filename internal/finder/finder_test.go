package finder

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/fivecrowns/crowns"
	"github.com/lox/fivecrowns/internal/meld"
	"github.com/lox/fivecrowns/internal/randutil"
)

func TestFindScenarios(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		hand         string
		round        int
		order        Order
		wantBooks    [][]string
		wantRuns     [][]string
		wantLeftover []string
		wantScore    int
	}{
		{
			name:     "wild threes fold into the only run",
			hand:     "3S 3C 3D 4S 5S 6S",
			round:    1,
			order:    RunsFirst,
			wantRuns: [][]string{{"4S", "5S", "6S", "3S", "3C", "3D"}},
		},
		{
			name:     "gap bridged by a wild seven",
			hand:     "7H 8H XH",
			round:    5,
			order:    RunsFirst,
			wantRuns: [][]string{{"8H", "XH", "7H"}},
		},
		{
			name:         "nothing groups",
			hand:         "3S 5C 9H",
			round:        2,
			order:        BooksFirst,
			wantLeftover: []string{"3S", "5C", "9H"},
			wantScore:    17,
		},
		{
			name:  "empty hand",
			hand:  "",
			round: 1,
			order: RunsFirst,
		},
		{
			name:      "run end relocated into a book",
			hand:      "4S 5S 6S 7S 7C 7D",
			round:     1,
			order:     RunsFirst,
			wantBooks: [][]string{{"7C", "7D", "7S"}},
			wantRuns:  [][]string{{"4S", "5S", "6S"}},
		},
		{
			name:      "same hand books first",
			hand:      "4S 5S 6S 7S 7C 7D",
			round:     1,
			order:     BooksFirst,
			wantBooks: [][]string{{"7C", "7D", "7S"}},
			wantRuns:  [][]string{{"4S", "5S", "6S"}},
		},
		{
			name:         "middle card is never relocated",
			hand:         "4S 5S 6S 5C 5D",
			round:        11,
			order:        RunsFirst,
			wantRuns:     [][]string{{"4S", "5S", "6S"}},
			wantLeftover: []string{"5C", "5D"},
			wantScore:    10,
		},
		{
			name:         "first partial takes the only wild",
			hand:         "5S 5C 8D 9D J1",
			round:        2,
			order:        RunsFirst,
			wantRuns:     [][]string{{"8D", "9D", "J1"}},
			wantLeftover: []string{"5S", "5C"},
			wantScore:    10,
		},
		{
			name:         "books first spends the wild on the pair",
			hand:         "5S 5C 8D 9D J1",
			round:        2,
			order:        BooksFirst,
			wantBooks:    [][]string{{"5S", "5C", "J1"}},
			wantLeftover: []string{"8D", "9D"},
			wantScore:    17,
		},
		{
			name:         "single plus two wilds then residual wild",
			hand:         "KS 9C J1 J2 3D",
			round:        1,
			order:        RunsFirst,
			wantBooks:    [][]string{{"9C", "J1", "J2", "3D"}},
			wantLeftover: []string{"KS"},
			wantScore:    13,
		},
		{
			name:      "three wilds make a book",
			hand:      "J1 J2 3S",
			round:     1,
			order:     BooksFirst,
			wantBooks: [][]string{{"J1", "J2", "3S"}},
		},
		{
			name:         "two wilds alone stay leftover",
			hand:         "J1 3S",
			round:        1,
			order:        BooksFirst,
			wantLeftover: []string{"J1", "3S"},
			wantScore:    jokerAndWild,
		},
		{
			name:     "duplicate runs from two decks",
			hand:     "5H 6H 7H 5H 6H 7H",
			round:    11,
			order:    RunsFirst,
			wantRuns: [][]string{{"5H", "6H", "7H"}, {"5H", "6H", "7H"}},
		},
		{
			name:         "gap is not bridged across suits",
			hand:         "8H XS QD",
			round:        10,
			order:        RunsFirst,
			wantLeftover: []string{"8H", "XS", "QD"},
			wantScore:    8 + 10 + 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			hand := crowns.MustParseHand(tt.hand, tt.round)
			res := Evaluate(hand, tt.order)

			assert.Equal(t, tt.order, res.Order)
			assert.Equal(t, orEmpty(tt.wantBooks), res.BookTokens(), "books")
			assert.Equal(t, orEmpty(tt.wantRuns), res.RunTokens(), "runs")
			assert.Equal(t, orEmptyStrings(tt.wantLeftover), res.LeftoverTokens(), "leftover")
			assert.Equal(t, tt.wantScore, res.Score(), "score")
			assert.Equal(t, len(hand), res.CardCount(), "every card accounted for")
			assert.Equal(t, len(tt.wantLeftover) == 0, res.CanGoOut())
		})
	}
}

// jokerAndWild is the score of one unused joker and one unused wild card.
const jokerAndWild = crowns.JokerValue + crowns.WildValue

func orEmpty(groups [][]string) [][]string {
	if groups == nil {
		return [][]string{}
	}
	return groups
}

func orEmptyStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func TestOrderChangesLeftovers(t *testing.T) {
	t.Parallel()
	// Three fives and two unrelated cards; runs first strands the fives in partials.
	hand := crowns.MustParseHand("4S 5S 5C 5D 6H", 11)

	books := Evaluate(hand, BooksFirst)
	runs := Evaluate(hand, RunsFirst)

	assert.Equal(t, []string{"4S", "6H"}, books.LeftoverTokens())
	assert.Equal(t, []string{"6H", "4S", "5S", "5C", "5D"}, runs.LeftoverTokens())
	assert.Less(t, books.LeftoverCount(), runs.LeftoverCount())
	assert.Equal(t, 10, books.Score())
	assert.Equal(t, 25, runs.Score())

	// The selection metric is single cards, not leftovers.
	assert.Equal(t, 2, books.SingleCount())
	assert.Equal(t, 1, runs.SingleCount())
	assert.Equal(t, RunsFirst, BestOrder(hand))
}

func TestBestOrderTieGoesToRuns(t *testing.T) {
	t.Parallel()
	hand := crowns.MustParseHand("3S 5C 9H", 2)
	assert.Equal(t, RunsFirst, BestOrder(hand))
}

func TestBestOrderPrefersBooks(t *testing.T) {
	t.Parallel()
	// Runs first uses 5S 6S 7S and strands 5C and 7C as singles. Books
	// first pairs the fives and sevens, leaving only 6S alone.
	hand := crowns.MustParseHand("5S 6S 7S 5C 7C", 11)

	books := Evaluate(hand, BooksFirst)
	runs := Evaluate(hand, RunsFirst)
	assert.Equal(t, []string{"6S"}, crowns.Tokens(books.Singles))
	assert.Equal(t, []string{"5C", "7C"}, crowns.Tokens(runs.Singles))

	best := Analyze(hand)
	assert.Equal(t, BooksFirst, best.Order)
	assert.Equal(t, BooksFirst, BestOrder(hand))
}

func TestFinderIsReusable(t *testing.T) {
	t.Parallel()
	f := New(crowns.MustParseHand("4S 5S 6S 7S 7C 7D", 1))
	first := f.Find(RunsFirst)
	second := f.Find(RunsFirst)
	assert.Equal(t, first.BookTokens(), second.BookTokens())
	assert.Equal(t, first.RunTokens(), second.RunTokens())
	assert.Equal(t, first.LeftoverTokens(), second.LeftoverTokens())
}

func TestUnknownOrderPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { New(nil).Find(Order(0)) })
}

func TestParseOrder(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]Order{
		"books": BooksFirst, "Books-First": BooksFirst, "runs": RunsFirst, " runs_first ": RunsFirst,
	} {
		got, err := ParseOrder(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseOrder("sideways")
	assert.Error(t, err)
	assert.Equal(t, "books-first", BooksFirst.String())
	assert.Equal(t, "runs-first", RunsFirst.String())
}

func TestDebugLogging(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	Evaluate(crowns.MustParseHand("4S 5S 6S 7S 7C 7D", 1), RunsFirst, WithLogger(logger))

	out := buf.String()
	assert.Contains(t, out, "committed")
	assert.Contains(t, out, "relocated card")
	assert.Contains(t, out, "grouped hand")
}

// TestRandomHandInvariants deals many seeded hands and checks the properties
// every grouping must hold.
func TestRandomHandInvariants(t *testing.T) {
	t.Parallel()
	for round := crowns.MinRound; round <= crowns.MaxRound; round++ {
		for seed := int64(1); seed <= 60; seed++ {
			deck := crowns.NewDeck(round, randutil.New(seed*100+int64(round)))
			hand := deck.Deal(crowns.HandSize(round))
			name := fmt.Sprintf("round %d seed %d %v", round, seed, crowns.Tokens(hand))

			books := Evaluate(hand, BooksFirst)
			runs := Evaluate(hand, RunsFirst)
			for _, res := range []*Result{books, runs} {
				require.Equal(t, len(hand), res.CardCount(), name)
				for _, b := range res.Books {
					require.True(t, meld.ValidBook(b), "%s: invalid book %v", name, crowns.Tokens(b))
				}
				for _, r := range res.Runs {
					require.True(t, meld.ValidRun(r), "%s: invalid run %v", name, crowns.Tokens(r))
				}
				require.Equal(t, crowns.Sum(res.Leftover), res.Score(), name)
				for _, c := range res.Singles {
					require.False(t, c.IsWild(), name)
				}
			}

			best := Analyze(hand)
			require.Equal(t, min(books.SingleCount(), runs.SingleCount()), best.SingleCount(), name)
		}
	}
}
