package grid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/fivecrowns/crowns"
)

func TestIncrementDecrement(t *testing.T) {
	t.Parallel()
	// Round 11 keeps every card below king non-wild.
	tbl := FromCards(crowns.MustParseHand("4S 4S 9H", 11))

	assert.Equal(t, 2, tbl.Count(crowns.Spades, crowns.Four))
	assert.Equal(t, 1, tbl.Count(crowns.Hearts, crowns.Nine))
	assert.Equal(t, 0, tbl.Count(crowns.Tridents, crowns.Queen))
	assert.Equal(t, 3, tbl.Total())

	tbl.DecrementAll(crowns.MustParseHand("4S 9H", 11))
	assert.Equal(t, 1, tbl.Count(crowns.Spades, crowns.Four))
	assert.Equal(t, 0, tbl.Count(crowns.Hearts, crowns.Nine))
	assert.Equal(t, 1, tbl.Total())
}

func TestLargestRunFrom(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		cards string
		suit  crowns.Suit
		start crowns.Rank
		want  []string
	}{
		{"consecutive", "4S 5S 6S 7S", crowns.Spades, crowns.Four, []string{"4S", "5S", "6S", "7S"}},
		{"starts mid run", "4S 5S 6S 7S", crowns.Spades, crowns.Six, []string{"6S", "7S"}},
		{"stops at gap", "4S 6S 7S", crowns.Spades, crowns.Four, []string{"4S"}},
		{"empty start cell", "4S 5S", crowns.Spades, crowns.Three, nil},
		{"other suit ignored", "4S 5C 6S", crowns.Spades, crowns.Four, []string{"4S"}},
		{"reaches king", "JD QD KD", crowns.Diamonds, crowns.Jack, []string{"JD", "QD", "KD"}},
		{"duplicates give one card per cell", "8T 8T 9T", crowns.Tridents, crowns.Eight, []string{"8T", "9T"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tbl := FromCards(crowns.MustParseHand(tt.cards, 1))
			got := tbl.LargestRunFrom(tt.suit, tt.start)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, crowns.Tokens(got))
			for _, c := range got {
				assert.False(t, c.IsWild())
			}
		})
	}
}

func TestDrain(t *testing.T) {
	t.Parallel()
	tbl := FromCards(crowns.MustParseHand("KS 5H 5C 5C 4T", 1))
	got := tbl.Drain()
	assert.Equal(t, []string{"4T", "5C", "5C", "5H", "KS"}, crowns.Tokens(got))
	assert.Equal(t, 0, tbl.Total())
	assert.Empty(t, tbl.Drain())
}

func TestInvariantViolationsPanic(t *testing.T) {
	t.Parallel()
	tbl := New()

	assert.Panics(t, func() { tbl.Increment(crowns.MustParseCard("3S", 1)) }, "wild card")
	assert.Panics(t, func() { tbl.Increment(crowns.NewJoker(1)) }, "joker")
	assert.Panics(t, func() { tbl.Decrement(crowns.MustParseCard("5S", 1)) }, "empty cell")
	assert.Panics(t, func() { tbl.Count(crowns.JokerSuit, crowns.Five) }, "joker suit")
	assert.Panics(t, func() { tbl.Count(crowns.Spades, crowns.Rank(2)) }, "rank below three")
}

func TestString(t *testing.T) {
	t.Parallel()
	tbl := FromCards(crowns.MustParseHand("3S KT", 10))
	out := tbl.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[1], "S |1|"))
	assert.True(t, strings.HasSuffix(lines[5], "|1|"))
}
