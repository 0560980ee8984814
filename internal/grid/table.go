// Package grid tracks how many unassigned non-wild copies of each
// (suit, rank) card remain while a hand is being grouped.
package grid

import (
	"fmt"
	"strings"

	"github.com/lox/fivecrowns/crowns"
)

// Table is a dense suit × rank counter. Wild cards never enter it.
type Table struct {
	cells [crowns.NumSuits][crowns.NumRanks]int
}

// New returns an empty table.
func New() *Table {
	return &Table{}
}

// FromCards returns a table counting cards, which must all be non-wild.
func FromCards(cards []crowns.Card) *Table {
	t := New()
	for _, c := range cards {
		t.Increment(c)
	}
	return t
}

func index(suit crowns.Suit, rank crowns.Rank) (int, int) {
	if !suit.IsReal() || !rank.Valid() {
		panic(fmt.Sprintf("grid: no cell for suit %v rank %v", suit, rank))
	}
	return suit.Index(), rank.Index()
}

// Increment adds one copy of card.
func (t *Table) Increment(card crowns.Card) {
	if card.IsWild() {
		panic(fmt.Sprintf("grid: wild card %v cannot be placed in the table", card))
	}
	s, r := index(card.Suit(), card.Rank())
	t.cells[s][r]++
}

// Decrement removes one copy of card.
func (t *Table) Decrement(card crowns.Card) {
	s, r := index(card.Suit(), card.Rank())
	if t.cells[s][r] <= 0 {
		panic(fmt.Sprintf("grid: no copies of %v left to remove", card))
	}
	t.cells[s][r]--
}

// DecrementAll removes one copy of each card.
func (t *Table) DecrementAll(cards []crowns.Card) {
	for _, c := range cards {
		t.Decrement(c)
	}
}

// Count returns the copies remaining at (suit, rank).
func (t *Table) Count(suit crowns.Suit, rank crowns.Rank) int {
	s, r := index(suit, rank)
	return t.cells[s][r]
}

// Card synthesizes the non-wild card for a cell.
func Card(suit crowns.Suit, rank crowns.Rank) crowns.Card {
	return crowns.NewCard(rank, suit, rank.Value(), false)
}

// LargestRunFrom walks up from start while cells are populated, returning one
// card per populated cell. The walk stops at the first empty cell, so a run
// with a hole (4S _ 6S) is never seen as spanning the hole.
func (t *Table) LargestRunFrom(suit crowns.Suit, start crowns.Rank) []crowns.Card {
	var run []crowns.Card
	for rank := start; rank <= crowns.MaxRank; rank++ {
		if t.Count(suit, rank) <= 0 {
			break
		}
		run = append(run, Card(suit, rank))
	}
	return run
}

// Drain empties the table, returning every remaining card rank by rank and
// suit by suit within a rank.
func (t *Table) Drain() []crowns.Card {
	var out []crowns.Card
	for rank := crowns.MinRank; rank <= crowns.MaxRank; rank++ {
		for suit := crowns.Spades; suit < crowns.NumSuits; suit++ {
			s, r := index(suit, rank)
			for t.cells[s][r] > 0 {
				out = append(out, Card(suit, rank))
				t.cells[s][r]--
			}
		}
	}
	return out
}

// Total returns the number of cards in the table.
func (t *Table) Total() int {
	n := 0
	for s := range t.cells {
		for r := range t.cells[s] {
			n += t.cells[s][r]
		}
	}
	return n
}

// String renders the counts as a small grid, ranks across and suits down.
func (t *Table) String() string {
	var b strings.Builder
	b.WriteString("  ")
	for rank := crowns.MinRank; rank <= crowns.MaxRank; rank++ {
		b.WriteString(" " + rank.String())
	}
	b.WriteByte('\n')
	for suit := crowns.Spades; suit < crowns.NumSuits; suit++ {
		b.WriteString(suit.String() + " |")
		for rank := crowns.MinRank; rank <= crowns.MaxRank; rank++ {
			fmt.Fprintf(&b, "%d|", t.Count(suit, rank))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
